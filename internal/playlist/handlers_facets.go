package playlist

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"songboard/internal/httpx"
)

const tagCloudCacheTTL = time.Minute

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := s.distinctValues(r.Context(), `SELECT DISTINCT language FROM songs ORDER BY language`)
	if err != nil {
		log.Printf("songboard: list languages: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"languages": languages,
	})
}

func (s *Server) handleFirstLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := s.distinctValues(r.Context(), `SELECT DISTINCT first_letter FROM songs ORDER BY first_letter COLLATE "C"`)
	if err != nil {
		log.Printf("songboard: list first letters: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"firstLetters": letters,
	})
}

// handleTagCloud bundles the three facet lists in one round trip. The bundle
// is cached in Redis for a minute when a client is configured; mutations
// invalidate it.
func (s *Server) handleTagCloud(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := s.cachedTagCloud(ctx); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	bundle, err := s.tagCloud(ctx)
	if err != nil {
		log.Printf("songboard: tag cloud: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.storeTagCloud(ctx, bundle)
	httpx.WriteJSON(w, http.StatusOK, bundle)
}

func (s *Server) tagCloud(ctx context.Context) (map[string]any, error) {
	languages, err := s.distinctValues(ctx, `SELECT DISTINCT language FROM songs ORDER BY language`)
	if err != nil {
		return nil, err
	}
	letters, err := s.distinctValues(ctx, `SELECT DISTINCT first_letter FROM songs ORDER BY first_letter COLLATE "C"`)
	if err != nil {
		return nil, err
	}
	categories, err := s.distinctValues(ctx, `SELECT DISTINCT category FROM songs ORDER BY category`)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"languages":    languages,
		"firstLetters": letters,
		"categories":   categories,
	}, nil
}

func (s *Server) distinctValues(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *Server) cachedTagCloud(ctx context.Context) ([]byte, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, tagCloudCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *Server) storeTagCloud(ctx context.Context, bundle map[string]any) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(bundle)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, tagCloudCacheKey, data, tagCloudCacheTTL).Err(); err != nil {
		log.Printf("songboard: cache tag cloud: %v", err)
	}
}
