// Package site owns the site_config singleton and the streamer record that
// the public frontend reads as one "meta" document.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the handlers use, so tests can inject
// a mock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Server struct {
	db DB
}

func NewServer(db DB) *Server {
	return &Server{db: db}
}

func (s *Server) Router(requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/meta", s.handleMeta)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Put("/config", s.handleUpdateConfig)
		r.Put("/streamer", s.handleUpdateStreamer)
	})

	return r
}
