package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/ojensen/musicd/internal/domain"
)

// Memory is an in-process catalog. It backs small deployments that rescan on
// startup, and it is the fixture implementation for tests. Listings preserve
// insertion order.
type Memory struct {
	mu       sync.RWMutex
	tracks   []*domain.Track
	albums   []*domain.Album
	trackIDs map[int]*domain.Track
	albumIDs map[int]*domain.Album
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		trackIDs: make(map[int]*domain.Track),
		albumIDs: make(map[int]*domain.Album),
	}
}

// InsertTrack adds a track, assigning the next free id when t.ID is zero.
// Re-inserting an existing id replaces the record.
func (m *Memory) InsertTrack(_ context.Context, t *domain.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.ID == 0 {
		t.ID = m.nextTrackID()
	}
	if old, ok := m.trackIDs[t.ID]; ok {
		for i, existing := range m.tracks {
			if existing == old {
				m.tracks[i] = t
				break
			}
		}
	} else {
		m.tracks = append(m.tracks, t)
	}
	m.trackIDs[t.ID] = t
	return nil
}

// InsertAlbum adds an album, assigning the next free id when a.ID is zero.
func (m *Memory) InsertAlbum(_ context.Context, a *domain.Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == 0 {
		a.ID = m.nextAlbumID()
	}
	if old, ok := m.albumIDs[a.ID]; ok {
		for i, existing := range m.albums {
			if existing == old {
				m.albums[i] = a
				break
			}
		}
	} else {
		m.albums = append(m.albums, a)
	}
	m.albumIDs[a.ID] = a
	return nil
}

func (m *Memory) nextTrackID() int {
	id := 1
	for m.trackIDs[id] != nil {
		id++
	}
	return id
}

func (m *Memory) nextAlbumID() int {
	id := 1
	for m.albumIDs[id] != nil {
		id++
	}
	return id
}

// Track returns the track with the given id.
func (m *Memory) Track(_ context.Context, id int) (*domain.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trackIDs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// Tracks returns all tracks in insertion order.
func (m *Memory) Tracks(_ context.Context) ([]*domain.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Track, len(m.tracks))
	copy(out, m.tracks)
	return out, nil
}

// TracksByIDs returns the tracks for the given ids, dropping any id without
// a match.
func (m *Memory) TracksByIDs(_ context.Context, ids []int) ([]*domain.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := m.trackIDs[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// QueryTracks filters tracks by the clause list parsed from query. An
// unknown field name in a clause matches nothing.
func (m *Memory) QueryTracks(_ context.Context, query string) ([]*domain.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clauses := splitClauses(query)
	out := make([]*domain.Track, 0)
	for _, t := range m.tracks {
		if trackMatches(t, clauses) {
			out = append(out, t)
		}
	}
	return out, nil
}

// TrackValues returns the distinct values of field across all tracks,
// ordered by the sortField value of each value's first occurrence.
func (m *Memory) TrackValues(_ context.Context, field, sortField string) ([]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	get, ok := domain.TrackFields[field]
	sortGet, sortOK := domain.TrackFields[sortField]
	if !ok || !sortOK {
		return nil, ErrUnknownField
	}

	values := make([]any, 0)
	sortKeys := make(map[any]any)
	for _, t := range m.tracks {
		v := get(t)
		if _, seen := sortKeys[v]; seen {
			continue
		}
		sortKeys[v] = sortGet(t)
		values = append(values, v)
	}
	sort.SliceStable(values, func(i, j int) bool {
		return compareValues(sortKeys[values[i]], sortKeys[values[j]]) < 0
	})
	return values, nil
}

// Album returns the album with the given id.
func (m *Memory) Album(_ context.Context, id int) (*domain.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.albumIDs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// Albums returns all albums in insertion order.
func (m *Memory) Albums(_ context.Context) ([]*domain.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Album, len(m.albums))
	copy(out, m.albums)
	return out, nil
}

// AlbumsByIDs returns the albums for the given ids, dropping any id without
// a match.
func (m *Memory) AlbumsByIDs(_ context.Context, ids []int) ([]*domain.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Album, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.albumIDs[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// QueryAlbums filters albums by the clause list parsed from query.
func (m *Memory) QueryAlbums(_ context.Context, query string) ([]*domain.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clauses := splitClauses(query)
	out := make([]*domain.Album, 0)
	for _, a := range m.albums {
		if albumMatches(a, clauses) {
			out = append(out, a)
		}
	}
	return out, nil
}

// AlbumValues returns the distinct values of field across all albums,
// ordered by sortField.
func (m *Memory) AlbumValues(_ context.Context, field, sortField string) ([]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	get, ok := domain.AlbumFields[field]
	sortGet, sortOK := domain.AlbumFields[sortField]
	if !ok || !sortOK {
		return nil, ErrUnknownField
	}

	values := make([]any, 0)
	sortKeys := make(map[any]any)
	for _, a := range m.albums {
		v := get(a)
		if _, seen := sortKeys[v]; seen {
			continue
		}
		sortKeys[v] = sortGet(a)
		values = append(values, v)
	}
	sort.SliceStable(values, func(i, j int) bool {
		return compareValues(sortKeys[values[i]], sortKeys[values[j]]) < 0
	})
	return values, nil
}

func trackMatches(t *domain.Track, clauses []clause) bool {
	for _, c := range clauses {
		if c.Field == "" {
			// Bare terms search the default text fields.
			if !valueMatches(t.Title, c.Term) && !valueMatches(t.Artist, c.Term) {
				return false
			}
			continue
		}
		get, ok := domain.TrackFields[c.Field]
		if !ok || !valueMatches(get(t), c.Term) {
			return false
		}
	}
	return true
}

func albumMatches(a *domain.Album, clauses []clause) bool {
	for _, c := range clauses {
		if c.Field == "" {
			if !valueMatches(a.Album, c.Term) && !valueMatches(a.AlbumArtist, c.Term) {
				return false
			}
			continue
		}
		get, ok := domain.AlbumFields[c.Field]
		if !ok || !valueMatches(get(a), c.Term) {
			return false
		}
	}
	return true
}
