package playlist

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"

	"songboard/internal/httpx"
)

type importRequest struct {
	Songs         []SongPayload `json:"songs"`
	ClearExisting bool          `json:"clearExisting"`
}

// handleImport bulk-loads songs inside one transaction. The optional clear
// step commits or rolls back together with the inserts, so readers never see
// a cleared-but-empty collection if the import dies. Individual rows are
// best-effort: a malformed row is logged and skipped, the rest go through,
// and the response reports imported vs total.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Songs == nil {
		httpx.WriteError(w, http.StatusBadRequest, "songs must be an array")
		return
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		log.Printf("songboard: import begin tx: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback(ctx)

	if req.ClearExisting {
		if _, err := tx.Exec(ctx, `DELETE FROM songs`); err != nil {
			log.Printf("songboard: import clear: %v", err)
			httpx.WriteError(w, http.StatusInternalServerError, "database error")
			return
		}
	}

	imported := 0
	for i, payload := range req.Songs {
		song, err := payload.toSong()
		if err != nil {
			log.Printf("songboard: import row %d skipped: %v", i, err)
			continue
		}

		// Savepoint per row: a failed insert must not poison the
		// surrounding transaction.
		inner, err := tx.Begin(ctx)
		if err != nil {
			log.Printf("songboard: import row %d savepoint: %v", i, err)
			continue
		}
		if _, err := inner.Exec(ctx, `
			INSERT INTO songs (song_name, singer, language, category, special, first_letter, clip_url)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			song.Name, song.Singer, song.Language, song.Category, song.Special, song.FirstLetter, song.ClipURL,
		); err != nil {
			log.Printf("songboard: import row %d (%q) skipped: %v", i, song.Name, err)
			_ = inner.Rollback(ctx)
			continue
		}
		if err := inner.Commit(ctx); err != nil {
			log.Printf("songboard: import row %d commit: %v", i, err)
			continue
		}
		imported++
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("songboard: import commit: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.invalidateTagCloud(ctx)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"imported": imported,
		"total":    len(req.Songs),
	})
}

// handleExport dumps the whole collection in the interchange format, in the
// same order the listing uses, so exported files re-import byte-stable.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := s.db.Query(ctx,
		`SELECT song_name, singer, language, category, special, first_letter, clip_url FROM songs`+defaultOrder)
	if err != nil {
		log.Printf("songboard: export: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	songs := []ExportSong{}
	for rows.Next() {
		var s ExportSong
		if err := rows.Scan(&s.Name, &s.Singer, &s.Language, &s.Category, &s.Special, &s.FirstLetter, &s.ClipURL); err != nil {
			log.Printf("songboard: export scan: %v", err)
			httpx.WriteError(w, http.StatusInternalServerError, "database error")
			return
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		log.Printf("songboard: export rows: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"songs": songs,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := s.db.Exec(ctx, `DELETE FROM songs`); err != nil {
		log.Printf("songboard: clear: %v", err)
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.invalidateTagCloud(ctx)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "playlist cleared",
	})
}
