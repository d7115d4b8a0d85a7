// Package auth owns admin credentials: login, token verification, password
// changes and the one-shot setup/install flow.
package auth

import (
	"context"
	"time"

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
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Server struct {
	db        DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewServer(db DB, jwtSecret []byte, tokenTTL time.Duration) *Server {
	return &Server{
		db:        db,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Get("/status", s.handleStatus)

	r.Group(func(r chi.Router) {
		r.Use(s.RequireAdmin)
		r.Post("/change-password", s.handleChangePassword)
	})

	return r
}

func (s *Server) SetupRouter() chi.Router {
	r := chi.NewRouter()

	r.Get("/status", s.handleSetupStatus)
	r.Post("/install", s.handleInstall)

	return r
}
