package playlist

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"songboard/internal/httpx"
)

type listResponse struct {
	Songs      []Song `json:"songs"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

// handleListSongs serves the public, filterable, paginated song listing.
// Filters are conjunctive; a page past the end returns an empty songs array
// with the correct total.
func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opts := parseListOptions(r)

	where, args := opts.filterClause()

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM songs`+where, args...).Scan(&total); err != nil {
		log.Printf("songboard: count songs: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	pageArgs := append(args, opts.Limit, (opts.Page-1)*opts.Limit)
	rows, err := s.db.Query(ctx,
		`SELECT `+songColumns+` FROM songs`+where+defaultOrder+
			` LIMIT $`+strconv.Itoa(len(args)+1)+` OFFSET $`+strconv.Itoa(len(args)+2),
		pageArgs...)
	if err != nil {
		log.Printf("songboard: list songs: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	songs := []Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			log.Printf("songboard: list songs scan: %v", err)
			httpx.WriteError(w, http.StatusInternalServerError, "database error")
			return
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		log.Printf("songboard: list songs rows: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, listResponse{
		Songs:      songs,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: (total + opts.Limit - 1) / opts.Limit,
	})
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload SongPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	song, err := payload.toSong()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := scanSong(s.db.QueryRow(ctx, `
		INSERT INTO songs (song_name, singer, language, category, special, first_letter, clip_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+songColumns,
		song.Name, song.Singer, song.Language, song.Category, song.Special, song.FirstLetter, song.ClipURL))
	if err != nil {
		log.Printf("songboard: add song: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.invalidateTagCloud(ctx)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"song":    stored,
	})
}

// handleEditSong replaces every mutable field of a song. The sort key is
// recomputed from the submitted title unless the payload carries a valid
// explicit letter.
func (s *Server) handleEditSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	var payload SongPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	song, err := payload.toSong()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := scanSong(s.db.QueryRow(ctx, `
		UPDATE songs
		SET song_name = $2,
			singer = $3,
			language = $4,
			category = $5,
			special = $6,
			first_letter = $7,
			clip_url = $8,
			updated_at = now()
		WHERE id = $1
		RETURNING `+songColumns,
		id, song.Name, song.Singer, song.Language, song.Category, song.Special, song.FirstLetter, song.ClipURL))
	if errors.Is(err, pgx.ErrNoRows) {
		httpx.WriteError(w, http.StatusNotFound, "song not found")
		return
	}
	if err != nil {
		log.Printf("songboard: edit song: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.invalidateTagCloud(ctx)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"song":    stored,
	})
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		log.Printf("songboard: delete song: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		httpx.WriteError(w, http.StatusNotFound, "song not found")
		return
	}

	s.invalidateTagCloud(ctx)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "song deleted",
	})
}
