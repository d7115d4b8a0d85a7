package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"songboard/internal/httpx"
)

var errMissingToken = errors.New("missing bearer token")

const minPasswordLen = 6

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	var (
		admin Admin
		hash  string
	)
	err := s.db.QueryRow(r.Context(),
		`SELECT id, username, password_hash FROM admins WHERE username = $1`,
		username).Scan(&admin.ID, &admin.Username, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		log.Printf("songboard: login: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.issueToken(admin)
	if err != nil {
		log.Printf("songboard: login issue token: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"admin":   admin,
	})
}

// handleLogout only exists for API symmetry: tokens are stateless, the
// client drops its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
	})
}

// handleStatus reports whether the caller holds a valid token. Always 200;
// an absent or invalid token is a normal "not authenticated" answer here.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := s.claimsFromRequest(r)
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"admin": Admin{
			ID:       claims.AdminID,
			Username: claims.Username,
		},
	})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.OldPassword == "" || body.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "old and new passwords are required")
		return
	}
	if len(body.NewPassword) < minPasswordLen {
		httpx.WriteError(w, http.StatusBadRequest, "new password must be at least 6 characters")
		return
	}

	var hash string
	err := s.db.QueryRow(r.Context(),
		`SELECT password_hash FROM admins WHERE id = $1`, claims.AdminID).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		httpx.WriteError(w, http.StatusNotFound, "admin not found")
		return
	}
	if err != nil {
		log.Printf("songboard: change password fetch: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.OldPassword)); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "incorrect password")
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("songboard: change password hash: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := s.db.Exec(r.Context(),
		`UPDATE admins SET password_hash = $2 WHERE id = $1`,
		claims.AdminID, string(newHash)); err != nil {
		log.Printf("songboard: change password update: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "password changed",
	})
}
