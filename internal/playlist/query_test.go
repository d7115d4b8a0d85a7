package playlist

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestParseListOptionsDefaults(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"no params", "/playlist", 1, 50},
		{"valid", "/playlist?page=3&limit=20", 3, 20},
		{"zero page", "/playlist?page=0", 1, 50},
		{"negative page", "/playlist?page=-2", 1, 50},
		{"non-numeric", "/playlist?page=abc&limit=xyz", 1, 50},
		{"zero limit", "/playlist?limit=0", 1, 50},
		{"huge limit capped", "/playlist?limit=100000", 1, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := parseListOptions(httptest.NewRequest("GET", tt.url, nil))
			if opts.Page != tt.wantPage || opts.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d",
					opts.Page, opts.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestParseListOptionsSpecial(t *testing.T) {
	opts := parseListOptions(httptest.NewRequest("GET", "/playlist?special=true", nil))
	if opts.Special == nil || !*opts.Special {
		t.Errorf("special=true not parsed: %+v", opts.Special)
	}

	opts = parseListOptions(httptest.NewRequest("GET", "/playlist?special=false", nil))
	if opts.Special == nil || *opts.Special {
		t.Errorf("special=false not parsed: %+v", opts.Special)
	}

	opts = parseListOptions(httptest.NewRequest("GET", "/playlist?special=banana", nil))
	if opts.Special != nil {
		t.Errorf("garbage special should mean no filter, got %v", *opts.Special)
	}
}

func TestFilterClause(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name      string
		opts      listOptions
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			opts:      listOptions{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "first letter",
			opts:      listOptions{FirstLetter: "S"},
			wantWhere: " WHERE first_letter = $1",
			wantArgs:  []any{"S"},
		},
		{
			name:      "language and special",
			opts:      listOptions{Language: "Japanese", Special: boolPtr(true)},
			wantWhere: " WHERE language = $1 AND special = $2",
			wantArgs:  []any{"Japanese", true},
		},
		{
			name:      "search hits title and singer",
			opts:      listOptions{Search: "yoru"},
			wantWhere: " WHERE (song_name ILIKE $1 OR singer ILIKE $2)",
			wantArgs:  []any{"%yoru%", "%yoru%"},
		},
		{
			name:      "search escapes like wildcards",
			opts:      listOptions{Search: "100%_pure"},
			wantWhere: " WHERE (song_name ILIKE $1 OR singer ILIKE $2)",
			wantArgs:  []any{`%100\%\_pure%`, `%100\%\_pure%`},
		},
		{
			name: "all filters numbered in order",
			opts: listOptions{
				FirstLetter: "A",
				Language:    "Chinese",
				Special:     boolPtr(false),
				Search:      "love",
			},
			wantWhere: " WHERE first_letter = $1 AND language = $2 AND special = $3 AND (song_name ILIKE $4 OR singer ILIKE $5)",
			wantArgs:  []any{"A", "Chinese", false, "%love%", "%love%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.opts.filterClause()
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}
