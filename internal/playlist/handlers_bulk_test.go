package playlist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"songboard/internal/pgmock"
)

// importHarness records what the import transaction did.
type importHarness struct {
	cleared   bool
	inserted  []string
	rollbacks int
	committed bool

	failInsert func(name string) bool
}

func (h *importHarness) mockDB() *pgmock.MockDB {
	inner := func() pgx.Tx {
		return &pgmock.MockTx{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				name := args[0].(string)
				if h.failInsert != nil && h.failInsert(name) {
					return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"}
				}
				h.inserted = append(h.inserted, name)
				return pgmock.Tag("INSERT 0 1"), nil
			},
			RollbackFunc: func(ctx context.Context) error {
				h.rollbacks++
				return nil
			},
		}
	}

	outer := &pgmock.MockTx{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			if strings.Contains(sql, "DELETE FROM songs") {
				if len(h.inserted) > 0 {
					panic("clear must run before any insert")
				}
				h.cleared = true
			}
			return pgmock.Tag("DELETE 5"), nil
		},
		BeginFunc: func(ctx context.Context) (pgx.Tx, error) {
			return inner(), nil
		},
		CommitFunc: func(ctx context.Context) error {
			h.committed = true
			return nil
		},
	}

	return &pgmock.MockDB{
		BeginTxFunc: func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
			return outer, nil
		},
	}
}

func doImport(t *testing.T, h *importHarness, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer(h.mockDB(), nil)
	req := httptest.NewRequest("POST", "/import", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleImport(w, req)
	return w
}

func TestHandleImport_PartialSuccess(t *testing.T) {
	h := &importHarness{}
	body := `{"songs":[
		{"songName":"Lemon","singer":"A","language":"Japanese","category":"Pop"},
		{"songName":"broken row","language":"Japanese","category":"Pop"},
		{"songName":"起风了","singer":"B","language":"Chinese","category":"Pop"}
	]}`

	w := doImport(t, h, body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success  bool `json:"success"`
		Imported int  `json:"imported"`
		Total    int  `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Imported != 2 || resp.Total != 3 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(h.inserted) != 2 || h.inserted[0] != "Lemon" || h.inserted[1] != "起风了" {
		t.Errorf("inserted = %v", h.inserted)
	}
	if h.cleared {
		t.Error("clearExisting=false must not clear")
	}
	if !h.committed {
		t.Error("transaction not committed")
	}
}

func TestHandleImport_ClearExisting(t *testing.T) {
	h := &importHarness{}
	body := `{"clearExisting":true,"songs":[
		{"songName":"Lemon","singer":"A","language":"Japanese","category":"Pop"}
	]}`

	w := doImport(t, h, body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !h.cleared {
		t.Error("expected existing songs cleared before import")
	}
	if len(h.inserted) != 1 {
		t.Errorf("inserted = %v", h.inserted)
	}
}

func TestHandleImport_FailedRowDoesNotPoisonRest(t *testing.T) {
	h := &importHarness{
		failInsert: func(name string) bool { return name == "dup" },
	}
	body := `{"songs":[
		{"songName":"Lemon","singer":"A","language":"Japanese","category":"Pop"},
		{"songName":"dup","singer":"A","language":"Japanese","category":"Pop"},
		{"songName":"Pretender","singer":"B","language":"Japanese","category":"Pop"}
	]}`

	w := doImport(t, h, body)

	var resp struct {
		Imported int `json:"imported"`
		Total    int `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Imported != 2 || resp.Total != 3 {
		t.Errorf("imported=%d total=%d, want 2 and 3", resp.Imported, resp.Total)
	}
	if h.rollbacks != 1 {
		t.Errorf("savepoint rollbacks = %d, want 1", h.rollbacks)
	}
	if !h.committed {
		t.Error("outer transaction must still commit")
	}
}

func TestHandleImport_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"songs": [`},
		{"missing songs", `{"clearExisting":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &importHarness{}
			w := doImport(t, h, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if h.committed || h.cleared {
				t.Error("bad request must not touch the database")
			}
		})
	}
}

func TestHandleImport_EmptyArrayIsNoop(t *testing.T) {
	h := &importHarness{}
	w := doImport(t, h, `{"songs":[]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Imported int `json:"imported"`
		Total    int `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Imported != 0 || resp.Total != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleExport(t *testing.T) {
	mockDB := &pgmock.MockDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			if !strings.Contains(sql, "ORDER BY first_letter") {
				t.Errorf("export must use the listing order: %s", sql)
			}
			return &pgmock.MockRows{Data: [][]any{
				{"Lemon", "米津玄師", "Japanese", "Pop", false, "L", ""},
				{"起风了", "买辣椒也用券", "Chinese", "Pop", true, "Q", "https://example.com/clip"},
			}}, nil
		},
	}
	srv := NewServer(mockDB, nil)

	req := httptest.NewRequest("GET", "/export", nil)
	w := httptest.NewRecorder()
	srv.handleExport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Songs []map[string]any `json:"songs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(resp.Songs))
	}

	if _, ok := resp.Songs[0]["id"]; ok {
		t.Error("export must not carry server-assigned ids")
	}
	if _, ok := resp.Songs[0]["bilibiliClipUrl"]; ok {
		t.Error("empty clip URL must be omitted")
	}
	if resp.Songs[1]["bilibiliClipUrl"] != "https://example.com/clip" {
		t.Errorf("clip URL lost: %v", resp.Songs[1])
	}
}

func TestHandleClear(t *testing.T) {
	var gotSQL string
	mockDB := &pgmock.MockDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotSQL = sql
			return pgmock.Tag("DELETE 12"), nil
		},
	}
	srv := NewServer(mockDB, nil)

	req := httptest.NewRequest("DELETE", "/clear", nil)
	w := httptest.NewRecorder()
	srv.handleClear(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(gotSQL, "DELETE FROM songs") {
		t.Errorf("unexpected SQL: %s", gotSQL)
	}
}
