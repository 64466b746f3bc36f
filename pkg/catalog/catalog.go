// Package catalog flattens media-server items into the records written by
// the exporter.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kataras/homelab-tools/pkg/plex"
)

// Library is the document written to disk: one ordered list per item kind.
type Library struct {
	Movies  []Movie `json:"movies"`
	TVShows []Show  `json:"tv_shows"`
}

// Movie is the exported view of a movie item.
type Movie struct {
	Type           string   `json:"type"`
	Title          string   `json:"title"`
	Year           *int     `json:"year"`
	Summary        string   `json:"summary"`
	Rating         *float64 `json:"rating"`
	ContentRating  string   `json:"content_rating"`
	Studio         string   `json:"studio"`
	TagsGenre      []string `json:"tags_genre"`
	TagsCollection []string `json:"tags_collection"`
}

// Show is the exported view of a TV series. Episodes are not exported.
type Show struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Year          *int     `json:"year"`
	Summary       string   `json:"summary"`
	Rating        *float64 `json:"rating"`
	ContentRating string   `json:"content_rating"`
	TagsGenre     []string `json:"tags_genre"`
	NumSeasons    int      `json:"num_seasons"`
	TotalEpisodes int      `json:"total_episodes"`
}

// New returns an empty library whose lists encode as [] rather than null.
func New() *Library {
	return &Library{Movies: []Movie{}, TVShows: []Show{}}
}

// NewMovie copies the exported fields of a movie item.
func NewMovie(m plex.Metadata) Movie {
	return Movie{
		Type:           plex.TypeMovie,
		Title:          m.Title,
		Year:           m.Year,
		Summary:        m.Summary,
		Rating:         m.Rating,
		ContentRating:  m.ContentRating,
		Studio:         m.Studio,
		TagsGenre:      plex.Tags(m.Genre),
		TagsCollection: plex.Tags(m.Collection),
	}
}

// NewShow copies the exported fields of a show item. Seasons and episodes are
// the server's child and leaf counts.
func NewShow(m plex.Metadata) Show {
	return Show{
		Type:          plex.TypeShow,
		Title:         m.Title,
		Year:          m.Year,
		Summary:       m.Summary,
		Rating:        m.Rating,
		ContentRating: m.ContentRating,
		TagsGenre:     plex.Tags(m.Genre),
		NumSeasons:    m.ChildCount,
		TotalEpisodes: m.LeafCount,
	}
}

// Add appends an item to the list matching kind and reports whether it was
// kept. Items of any other kind are ignored.
func (l *Library) Add(kind string, m plex.Metadata) bool {
	switch kind {
	case plex.TypeMovie:
		l.Movies = append(l.Movies, NewMovie(m))
	case plex.TypeShow:
		l.TVShows = append(l.TVShows, NewShow(m))
	default:
		return false
	}
	return true
}

// Encode renders the library as 4-space indented JSON. Non-ASCII text and
// HTML characters are kept as-is.
func Encode(l *Library) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("failed to encode library: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes l and writes it to path on fs, creating parent directories.
// Nothing is written if encoding fails.
func Write(fs afero.Fs, path string, l *Library) error {
	data, err := Encode(l)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
