package playlist

import (
	"errors"
	"strings"
	"time"
)

// Song is one playlist entry. JSON field names follow the interchange format
// used by exported playlist files, so stored rows, API responses and
// import/export files all agree.
type Song struct {
	ID          int64     `json:"id"`
	Name        string    `json:"songName"`
	Singer      string    `json:"singer"`
	Language    string    `json:"language"`
	Category    string    `json:"category"`
	Special     bool      `json:"special"`
	FirstLetter string    `json:"firstLetter"`
	ClipURL     string    `json:"bilibiliClipUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExportSong is the interchange shape written by /export and accepted by
// /import: no server-assigned fields, optional clip URL omitted when empty.
type ExportSong struct {
	Name        string `json:"songName"`
	Singer      string `json:"singer"`
	Language    string `json:"language"`
	Category    string `json:"category"`
	Special     bool   `json:"special"`
	FirstLetter string `json:"firstLetter"`
	ClipURL     string `json:"bilibiliClipUrl,omitempty"`
}

// SongPayload is the request body for add, edit and import rows. Required
// fields are pointers so "missing" and "empty" stay distinguishable: singer
// must be present but may be the empty string.
type SongPayload struct {
	Name        *string `json:"songName"`
	Singer      *string `json:"singer"`
	Language    *string `json:"language"`
	Category    *string `json:"category"`
	Special     bool    `json:"special"`
	FirstLetter string  `json:"firstLetter"`
	ClipURL     string  `json:"bilibiliClipUrl"`
}

// toSong validates the payload and derives the sort key. The explicit
// firstLetter, when it is a single valid letter, overrides derivation.
func (p SongPayload) toSong() (Song, error) {
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		return Song{}, errors.New("songName is required")
	}
	if p.Singer == nil {
		return Song{}, errors.New("singer is required")
	}
	if p.Language == nil || strings.TrimSpace(*p.Language) == "" {
		return Song{}, errors.New("language is required")
	}
	if p.Category == nil || strings.TrimSpace(*p.Category) == "" {
		return Song{}, errors.New("category is required")
	}

	name := strings.TrimSpace(*p.Name)
	return Song{
		Name:        name,
		Singer:      strings.TrimSpace(*p.Singer),
		Language:    strings.TrimSpace(*p.Language),
		Category:    strings.TrimSpace(*p.Category),
		Special:     p.Special,
		FirstLetter: DeriveSortKey(name, p.FirstLetter),
		ClipURL:     strings.TrimSpace(p.ClipURL),
	}, nil
}
