package playlist

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS songs (
          id           BIGSERIAL PRIMARY KEY,
          song_name    TEXT NOT NULL,
          singer       TEXT NOT NULL,
          language     TEXT NOT NULL,
          category     TEXT NOT NULL,
          special      BOOLEAN NOT NULL DEFAULT FALSE,
          first_letter TEXT NOT NULL CHECK (first_letter ~ '^[A-Z#]$'),
          clip_url     TEXT NOT NULL DEFAULT '',
          created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	if err != nil {
		log.Printf("songboard: migrate songs: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_songs_first_letter ON songs(first_letter);
      CREATE INDEX IF NOT EXISTS idx_songs_language ON songs(language);
      CREATE INDEX IF NOT EXISTS idx_songs_special ON songs(special)
    `); err != nil {
		return err
	}

	return nil
}
