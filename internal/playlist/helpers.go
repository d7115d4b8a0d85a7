package playlist

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
)

const songColumns = `id, song_name, singer, language, category, special, first_letter, clip_url, created_at, updated_at`

func scanSong(row pgx.Row) (Song, error) {
	var s Song
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Singer,
		&s.Language,
		&s.Category,
		&s.Special,
		&s.FirstLetter,
		&s.ClipURL,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

const tagCloudCacheKey = "songboard:tag-cloud"

// invalidateTagCloud drops the cached facet bundle after a mutation.
// Best-effort: a cache miss is never worse than a stale read.
func (s *Server) invalidateTagCloud(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, tagCloudCacheKey).Err(); err != nil {
		log.Printf("songboard: invalidate tag cloud: %v", err)
	}
}
