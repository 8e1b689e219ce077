package catalog

import (
	"context"
	"errors"

	"github.com/ojensen/musicd/internal/domain"
)

var (
	// ErrNotFound is returned when no record exists for the requested id.
	ErrNotFound = errors.New("catalog: record not found")

	// ErrUnknownField is returned by the distinct-value operations when the
	// field or sort field is not a recognized attribute of the record kind.
	ErrUnknownField = errors.New("catalog: unknown field")
)

// Catalog is the read-only store the HTTP layer is built against. Query
// strings are opaque to callers: their grammar is owned by the
// implementation, and unparseable ids or clauses degrade to empty results
// rather than errors.
type Catalog interface {
	// Track returns the track with the given id, or ErrNotFound.
	Track(ctx context.Context, id int) (*domain.Track, error)

	// Tracks returns every track in the catalog.
	Tracks(ctx context.Context) ([]*domain.Track, error)

	// TracksByIDs returns the tracks matching the given ids. Ids with no
	// match are silently dropped; the result carries no ordering guarantee.
	TracksByIDs(ctx context.Context, ids []int) ([]*domain.Track, error)

	// QueryTracks runs an ad-hoc query. The string is a `/`-separated list
	// of clauses; clause syntax is implementation-defined.
	QueryTracks(ctx context.Context, query string) ([]*domain.Track, error)

	// TrackValues returns the distinct values of field across all tracks,
	// ordered by sortField. Either name being unrecognized is
	// ErrUnknownField.
	TrackValues(ctx context.Context, field, sortField string) ([]any, error)

	Album(ctx context.Context, id int) (*domain.Album, error)
	Albums(ctx context.Context) ([]*domain.Album, error)
	AlbumsByIDs(ctx context.Context, ids []int) ([]*domain.Album, error)
	QueryAlbums(ctx context.Context, query string) ([]*domain.Album, error)
	AlbumValues(ctx context.Context, field, sortField string) ([]any, error)
}

// Inserter is the write side used by the library scanner. It is deliberately
// separate from Catalog: the HTTP surface stays read-only, and only the
// concrete implementations offer writes.
type Inserter interface {
	InsertTrack(ctx context.Context, t *domain.Track) error
	InsertAlbum(ctx context.Context, a *domain.Album) error
}
