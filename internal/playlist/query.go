package playlist

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 500
)

// listOptions are the optional conjunctive filters of the public listing
// endpoint plus pagination.
type listOptions struct {
	Page        int
	Limit       int
	FirstLetter string
	Language    string
	Special     *bool
	Search      string
}

// parseListOptions reads query parameters, normalizing malformed page/limit
// to the defaults instead of erroring: the public surface stays resilient
// to bad input.
func parseListOptions(r *http.Request) listOptions {
	q := r.URL.Query()

	opts := listOptions{
		Page:        defaultPage,
		Limit:       defaultLimit,
		FirstLetter: strings.TrimSpace(q.Get("firstLetter")),
		Language:    strings.TrimSpace(q.Get("language")),
		Search:      strings.TrimSpace(q.Get("search")),
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		opts.Page = n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		opts.Limit = n
		if opts.Limit > maxLimit {
			opts.Limit = maxLimit
		}
	}

	switch q.Get("special") {
	case "true":
		t := true
		opts.Special = &t
	case "false":
		f := false
		opts.Special = &f
	}

	return opts
}

// filterClause renders the active filters as a parameter-bound WHERE clause.
// An unset filter imposes no constraint; the active ones are ANDed.
func (o listOptions) filterClause() (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, vals ...any) {
		n := len(args)
		for i := range vals {
			cond = strings.Replace(cond, "$?", fmt.Sprintf("$%d", n+i+1), 1)
		}
		conds = append(conds, cond)
		args = append(args, vals...)
	}

	if o.FirstLetter != "" {
		add("first_letter = $?", o.FirstLetter)
	}
	if o.Language != "" {
		add("language = $?", o.Language)
	}
	if o.Special != nil {
		add("special = $?", *o.Special)
	}
	if o.Search != "" {
		pattern := "%" + escapeLike(o.Search) + "%"
		add("(song_name ILIKE $? OR singer ILIKE $?)", pattern, pattern)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// defaultOrder is the one ordering the collection is ever read in: sort key
// first, then title, both byte-wise ("C" collation) so pagination and export
// are stable across locales. "#" (0x23) sorts before "A". The id tiebreak
// keeps pages disjoint when two songs share a title.
const defaultOrder = ` ORDER BY first_letter COLLATE "C", song_name COLLATE "C", id`
