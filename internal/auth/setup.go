package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"songboard/internal/httpx"
)

// installRequest is the one-shot setup payload: the admin account, the
// site_config singleton and the streamer record, created together.
type installRequest struct {
	AdminUsername string `json:"adminUsername"`
	AdminPassword string `json:"adminPassword"`

	SiteName            string          `json:"siteName"`
	SiteSubtitle        string          `json:"siteSubtitle"`
	DefaultPlaylistName string          `json:"defaultPlaylistName"`
	AvatarURL           string          `json:"avatarUrl"`
	BackgroundURL       string          `json:"backgroundUrl"`
	ThemeConfig         json.RawMessage `json:"themeConfig"`
	SEOKeywords         string          `json:"seoKeywords"`
	SEODescription      string          `json:"seoDescription"`

	StreamerName string `json:"streamerName"`
	BilibiliURL  string `json:"bilibiliUrl"`
}

// IsInstalled reports whether setup has run, which is defined as at least
// one admin account existing.
func IsInstalled(ctx context.Context, db DB) (bool, error) {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Server) handleSetupStatus(w http.ResponseWriter, r *http.Request) {
	installed, err := IsInstalled(r.Context(), s.db)
	if err != nil {
		log.Printf("songboard: setup status: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"installed": installed,
	})
}

// handleInstall creates admin, site config and streamer in one transaction:
// a half-installed site must be impossible.
func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	installed, err := IsInstalled(ctx, s.db)
	if err != nil {
		log.Printf("songboard: install check: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if installed {
		httpx.WriteError(w, http.StatusBadRequest, "already installed")
		return
	}

	var req installRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.AdminUsername = strings.TrimSpace(req.AdminUsername)
	req.SiteName = strings.TrimSpace(req.SiteName)
	req.DefaultPlaylistName = strings.TrimSpace(req.DefaultPlaylistName)
	req.StreamerName = strings.TrimSpace(req.StreamerName)

	switch {
	case req.AdminUsername == "":
		httpx.WriteError(w, http.StatusBadRequest, "adminUsername is required")
		return
	case len(req.AdminPassword) < minPasswordLen:
		httpx.WriteError(w, http.StatusBadRequest, "adminPassword must be at least 6 characters")
		return
	case req.SiteName == "":
		httpx.WriteError(w, http.StatusBadRequest, "siteName is required")
		return
	case req.DefaultPlaylistName == "":
		httpx.WriteError(w, http.StatusBadRequest, "defaultPlaylistName is required")
		return
	case req.StreamerName == "":
		httpx.WriteError(w, http.StatusBadRequest, "streamerName is required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("songboard: install hash: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	theme := req.ThemeConfig
	if len(theme) == 0 {
		theme = json.RawMessage("{}")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		log.Printf("songboard: install begin tx: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2)`,
		req.AdminUsername, string(hash)); err != nil {
		log.Printf("songboard: install admin: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO site_config (
			id, site_name, site_subtitle, default_playlist_name,
			avatar_url, background_url, theme_config_json,
			seo_keywords, seo_description
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)`,
		req.SiteName, req.SiteSubtitle, req.DefaultPlaylistName,
		req.AvatarURL, req.BackgroundURL, string(theme),
		req.SEOKeywords, req.SEODescription); err != nil {
		log.Printf("songboard: install site config: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO streamers (name, bilibili_url) VALUES ($1, $2)`,
		req.StreamerName, req.BilibiliURL); err != nil {
		log.Printf("songboard: install streamer: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("songboard: install commit: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "installed",
	})
}
