// Package projection builds the whitelisted JSON views of catalog records.
// The whitelists are closed: anything not listed here, notably the track's
// file path, never leaves the system.
package projection

import (
	"errors"
	"fmt"

	"github.com/ojensen/musicd/internal/domain"
)

// ErrUnknownKind is returned by ProjectKind for a record type it does not
// know how to project.
var ErrUnknownKind = errors.New("projection: unknown record kind")

var trackWhitelist = []string{
	"id", "album_id", "title", "artist", "composer", "genre", "track",
	"original_year", "original_month", "original_day",
	"year", "month", "day", "length", "bitrate", "disc",
}

var albumWhitelist = []string{
	"id", "album", "albumartist", "disctotal", "genre",
	"original_year", "original_month", "original_day",
	"year", "month", "day",
}

// The whitelists are validated against the accessor tables once at startup;
// the accessors themselves are compile-checked against the structs.
func init() {
	for _, name := range trackWhitelist {
		if _, ok := domain.TrackFields[name]; !ok {
			panic(fmt.Sprintf("projection: track whitelist names unknown field %q", name))
		}
	}
	for _, name := range albumWhitelist {
		if _, ok := domain.AlbumFields[name]; !ok {
			panic(fmt.Sprintf("projection: album whitelist names unknown field %q", name))
		}
	}
}

// Track returns the whitelisted view of a track.
func Track(t *domain.Track) map[string]any {
	out := make(map[string]any, len(trackWhitelist))
	for _, name := range trackWhitelist {
		out[name] = domain.TrackFields[name](t)
	}
	return out
}

// Album returns the whitelisted view of an album.
func Album(a *domain.Album) map[string]any {
	out := make(map[string]any, len(albumWhitelist))
	for _, name := range albumWhitelist {
		out[name] = domain.AlbumFields[name](a)
	}
	return out
}

// Tracks projects a track slice, always returning a non-nil slice so empty
// results serialize as [] rather than null.
func Tracks(tracks []*domain.Track) []map[string]any {
	out := make([]map[string]any, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, Track(t))
	}
	return out
}

// Albums projects an album slice.
func Albums(albums []*domain.Album) []map[string]any {
	out := make([]map[string]any, 0, len(albums))
	for _, a := range albums {
		out = append(out, Album(a))
	}
	return out
}

// ProjectKind projects a record of dynamic type. Unknown kinds project to an
// empty map alongside ErrUnknownKind.
func ProjectKind(record any) (map[string]any, error) {
	switch r := record.(type) {
	case *domain.Track:
		return Track(r), nil
	case *domain.Album:
		return Album(r), nil
	default:
		return map[string]any{}, fmt.Errorf("%w: %T", ErrUnknownKind, record)
	}
}
