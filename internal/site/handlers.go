package site

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"songboard/internal/httpx"
)

// handleMeta serves the combined site document. Before setup has run there
// is no config row; the handler answers with an empty object rather than an
// error so the frontend can route to its setup page.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		meta  Meta
		theme string
	)
	err := s.db.QueryRow(ctx, `
		SELECT site_name, site_subtitle, default_playlist_name, avatar_url,
		       background_url, theme_config_json, seo_keywords, seo_description,
		       custom_css, custom_js, hidden_title, copy_mode,
		       hcaptcha_enabled, hcaptcha_site_key
		FROM site_config
		WHERE id = 1
	`).Scan(
		&meta.SiteName,
		&meta.SiteSubtitle,
		&meta.DefaultPlaylistName,
		&meta.AvatarURL,
		&meta.BackgroundURL,
		&theme,
		&meta.SEOKeywords,
		&meta.SEODescription,
		&meta.CustomCSS,
		&meta.CustomJS,
		&meta.HiddenTitle,
		&meta.CopyMode,
		&meta.HCaptchaEnabled,
		&meta.HCaptchaSiteKey,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{})
		return
	}
	if err != nil {
		log.Printf("songboard: site meta: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	meta.ThemeConfig = json.RawMessage(theme)
	if !json.Valid(meta.ThemeConfig) || len(meta.ThemeConfig) == 0 {
		meta.ThemeConfig = json.RawMessage("{}")
	}

	var streamer Streamer
	err = s.db.QueryRow(ctx,
		`SELECT name, bilibili_url FROM streamers ORDER BY id LIMIT 1`,
	).Scan(&streamer.Name, &streamer.BilibiliURL)
	switch {
	case err == nil:
		meta.Streamer = &streamer
	case errors.Is(err, pgx.ErrNoRows):
		// no streamer yet, meta.Streamer stays null
	default:
		log.Printf("songboard: site meta streamer: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meta)
}

// handleUpdateConfig full-replaces the singleton. There is no create path
// here: the row exists from setup, and the id=1 check constraint keeps it
// the only one.
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p configPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p.SiteName = strings.TrimSpace(p.SiteName)
	p.DefaultPlaylistName = strings.TrimSpace(p.DefaultPlaylistName)
	if p.SiteName == "" {
		httpx.WriteError(w, http.StatusBadRequest, "siteName is required")
		return
	}
	if p.DefaultPlaylistName == "" {
		httpx.WriteError(w, http.StatusBadRequest, "defaultPlaylistName is required")
		return
	}

	if p.CopyMode == "" {
		p.CopyMode = copyModeNormal
	}
	if p.CopyMode != copyModeNormal && p.CopyMode != copyModeSongRequest {
		httpx.WriteError(w, http.StatusBadRequest, `invalid copyMode (must be "normal" or "song-request")`)
		return
	}

	theme := p.ThemeConfig
	if len(theme) == 0 || !json.Valid(theme) {
		theme = json.RawMessage("{}")
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE site_config
		SET site_name = $1,
			site_subtitle = $2,
			default_playlist_name = $3,
			avatar_url = $4,
			background_url = $5,
			theme_config_json = $6,
			seo_keywords = $7,
			seo_description = $8,
			custom_css = $9,
			custom_js = $10,
			hidden_title = $11,
			copy_mode = $12,
			hcaptcha_enabled = $13,
			hcaptcha_site_key = $14,
			hcaptcha_secret_key = $15,
			updated_at = now()
		WHERE id = 1`,
		p.SiteName, p.SiteSubtitle, p.DefaultPlaylistName,
		p.AvatarURL, p.BackgroundURL, string(theme),
		p.SEOKeywords, p.SEODescription, p.CustomCSS, p.CustomJS,
		p.HiddenTitle, p.CopyMode,
		p.HCaptchaEnabled, p.HCaptchaSiteKey, p.HCaptchaSecretKey)
	if err != nil {
		log.Printf("songboard: update site config: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		httpx.WriteError(w, http.StatusNotFound, "site not configured")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "site config updated",
	})
}

func (s *Server) handleUpdateStreamer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body Streamer
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	body.BilibiliURL = strings.TrimSpace(body.BilibiliURL)
	if body.Name == "" || body.BilibiliURL == "" {
		httpx.WriteError(w, http.StatusBadRequest, "name and bilibiliUrl are required")
		return
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE streamers
		SET name = $1, bilibili_url = $2, updated_at = now()
		WHERE id = (SELECT id FROM streamers ORDER BY id LIMIT 1)`,
		body.Name, body.BilibiliURL)
	if err != nil {
		log.Printf("songboard: update streamer: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.db.Exec(ctx,
			`INSERT INTO streamers (name, bilibili_url) VALUES ($1, $2)`,
			body.Name, body.BilibiliURL); err != nil {
			log.Printf("songboard: insert streamer: %v", err)
			httpx.WriteError(w, http.StatusInternalServerError, "database error")
			return
		}
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "streamer updated",
	})
}
