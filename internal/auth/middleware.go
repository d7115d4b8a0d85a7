package auth

import (
	"context"
	"net/http"
	"strings"

	"songboard/internal/httpx"
)

type ctxClaimsKey struct{}

// RequireAdmin gates a route behind a valid bearer token. The claims are
// placed on the request context for the handler.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.claimsFromRequest(r)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), ctxClaimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) claimsFromRequest(r *http.Request) (*TokenClaims, error) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errMissingToken
	}
	return VerifyToken(parts[1], s.jwtSecret)
}

// ClaimsFromContext returns the claims RequireAdmin stored, or nil.
func ClaimsFromContext(ctx context.Context) *TokenClaims {
	claims, _ := ctx.Value(ctxClaimsKey{}).(*TokenClaims)
	return claims
}
