package playlist

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
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
	db  DB
	rdb *redis.Client
}

// NewServer wires the song collection handlers. rdb may be nil; the
// tag-cloud cache is skipped in that case.
func NewServer(db DB, rdb *redis.Client) *Server {
	return &Server{
		db:  db,
		rdb: rdb,
	}
}

// Router mounts the public browsing endpoints and, behind requireAdmin,
// the mutating ones.
func (s *Server) Router(requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.handleListSongs)
	r.Get("/languages", s.handleLanguages)
	r.Get("/first-letters", s.handleFirstLetters)
	r.Get("/tag-cloud", s.handleTagCloud)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)

		r.Post("/add", s.handleAddSong)
		r.Put("/edit/{id}", s.handleEditSong)
		r.Delete("/delete/{id}", s.handleDeleteSong)

		r.Post("/import", s.handleImport)
		r.Get("/export", s.handleExport)
		r.Delete("/clear", s.handleClear)
	})

	return r
}
