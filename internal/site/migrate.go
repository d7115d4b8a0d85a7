package site

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	// id = 1 check keeps site_config a singleton at the storage layer.
	_, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS site_config (
          id                    INT PRIMARY KEY CHECK (id = 1),
          site_name             TEXT NOT NULL,
          site_subtitle         TEXT NOT NULL DEFAULT '',
          default_playlist_name TEXT NOT NULL,
          avatar_url            TEXT NOT NULL DEFAULT '',
          background_url        TEXT NOT NULL DEFAULT '',
          theme_config_json     TEXT NOT NULL DEFAULT '{}',
          seo_keywords          TEXT NOT NULL DEFAULT '',
          seo_description       TEXT NOT NULL DEFAULT '',
          custom_css            TEXT NOT NULL DEFAULT '',
          custom_js             TEXT NOT NULL DEFAULT '',
          hidden_title          TEXT NOT NULL DEFAULT '',
          copy_mode             TEXT NOT NULL DEFAULT 'normal',
          hcaptcha_enabled      BOOLEAN NOT NULL DEFAULT FALSE,
          hcaptcha_site_key     TEXT NOT NULL DEFAULT '',
          hcaptcha_secret_key   TEXT NOT NULL DEFAULT '',
          created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	if err != nil {
		log.Printf("songboard: migrate site_config: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS streamers (
          id           BIGSERIAL PRIMARY KEY,
          name         TEXT NOT NULL,
          bilibili_url TEXT NOT NULL DEFAULT '',
          created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("songboard: migrate streamers: %v", err)
		return err
	}

	return nil
}
