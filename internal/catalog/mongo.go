package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ojensen/musicd/internal/domain"
)

const queryTimeout = 10 * time.Second

// Mongo is a catalog backed by a MongoDB database with `tracks` and `albums`
// collections keyed by integer _id.
type Mongo struct {
	tracks *mongo.Collection
	albums *mongo.Collection
}

// NewMongo creates a catalog over the given database.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		tracks: db.Collection("tracks"),
		albums: db.Collection("albums"),
	}
}

// InsertTrack upserts a track by id, so rescans are idempotent.
func (m *Mongo) InsertTrack(ctx context.Context, t *domain.Track) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := m.tracks.ReplaceOne(ctx, bson.M{"_id": t.ID}, t, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("insert track %d: %w", t.ID, err)
	}
	return nil
}

// InsertAlbum upserts an album by id.
func (m *Mongo) InsertAlbum(ctx context.Context, a *domain.Album) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := m.albums.ReplaceOne(ctx, bson.M{"_id": a.ID}, a, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("insert album %d: %w", a.ID, err)
	}
	return nil
}

// Track returns the track with the given id.
func (m *Mongo) Track(ctx context.Context, id int) (*domain.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t domain.Track
	err := m.tracks.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find track %d: %w", id, err)
	}
	return &t, nil
}

// Tracks returns every track in the catalog.
func (m *Mongo) Tracks(ctx context.Context) ([]*domain.Track, error) {
	return m.findTracks(ctx, bson.M{})
}

// TracksByIDs returns the tracks matching ids; missing ids are dropped by
// the $in filter.
func (m *Mongo) TracksByIDs(ctx context.Context, ids []int) ([]*domain.Track, error) {
	if len(ids) == 0 {
		return []*domain.Track{}, nil
	}
	return m.findTracks(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// QueryTracks filters tracks by the clause list parsed from query.
func (m *Mongo) QueryTracks(ctx context.Context, query string) ([]*domain.Track, error) {
	filter, ok := buildFilter(splitClauses(query), trackProbe, []string{"title", "artist"})
	if !ok {
		return []*domain.Track{}, nil
	}
	return m.findTracks(ctx, filter)
}

// TrackValues returns the distinct values of field across all tracks,
// ordered by sortField.
func (m *Mongo) TrackValues(ctx context.Context, field, sortField string) ([]any, error) {
	if _, ok := domain.TrackFields[field]; !ok {
		return nil, ErrUnknownField
	}
	if _, ok := domain.TrackFields[sortField]; !ok {
		return nil, ErrUnknownField
	}
	return distinctValues(ctx, m.tracks, field, sortField)
}

// Album returns the album with the given id.
func (m *Mongo) Album(ctx context.Context, id int) (*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var a domain.Album
	err := m.albums.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find album %d: %w", id, err)
	}
	return &a, nil
}

// Albums returns every album in the catalog.
func (m *Mongo) Albums(ctx context.Context) ([]*domain.Album, error) {
	return m.findAlbums(ctx, bson.M{})
}

// AlbumsByIDs returns the albums matching ids.
func (m *Mongo) AlbumsByIDs(ctx context.Context, ids []int) ([]*domain.Album, error) {
	if len(ids) == 0 {
		return []*domain.Album{}, nil
	}
	return m.findAlbums(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// QueryAlbums filters albums by the clause list parsed from query.
func (m *Mongo) QueryAlbums(ctx context.Context, query string) ([]*domain.Album, error) {
	filter, ok := buildFilter(splitClauses(query), albumProbe, []string{"album", "albumartist"})
	if !ok {
		return []*domain.Album{}, nil
	}
	return m.findAlbums(ctx, filter)
}

// AlbumValues returns the distinct values of field across all albums,
// ordered by sortField.
func (m *Mongo) AlbumValues(ctx context.Context, field, sortField string) ([]any, error) {
	if _, ok := domain.AlbumFields[field]; !ok {
		return nil, ErrUnknownField
	}
	if _, ok := domain.AlbumFields[sortField]; !ok {
		return nil, ErrUnknownField
	}
	return distinctValues(ctx, m.albums, field, sortField)
}

func (m *Mongo) findTracks(ctx context.Context, filter bson.M) ([]*domain.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cur, err := m.tracks.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find tracks: %w", err)
	}
	tracks := make([]*domain.Track, 0)
	if err := cur.All(ctx, &tracks); err != nil {
		return nil, fmt.Errorf("decode tracks: %w", err)
	}
	return tracks, nil
}

func (m *Mongo) findAlbums(ctx context.Context, filter bson.M) ([]*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cur, err := m.albums.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find albums: %w", err)
	}
	albums := make([]*domain.Album, 0)
	if err := cur.All(ctx, &albums); err != nil {
		return nil, fmt.Errorf("decode albums: %w", err)
	}
	return albums, nil
}

// distinctValues groups on field, keeping the first sortField value per
// group, then sorts on it. This mirrors SELECT DISTINCT field ... ORDER BY
// sort_field with an arbitrary-but-stable pick of the sort row.
func distinctValues(ctx context.Context, coll *mongo.Collection, field, sortField string) ([]any, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + bsonField(field)},
			{Key: "sort", Value: bson.D{{Key: "$first", Value: "$" + bsonField(sortField)}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "sort", Value: 1},
			{Key: "_id", Value: 1},
		}}},
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	var rows []struct {
		Value any `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode distinct %s: %w", field, err)
	}
	values := make([]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Value)
	}
	return values, nil
}

// trackProbe resolves a field name to its bson key and a zero-record sample
// value, used to decide between regex and numeric matching.
func trackProbe(field string) (string, any, bool) {
	get, ok := domain.TrackFields[field]
	if !ok {
		return "", nil, false
	}
	return bsonField(field), get(&domain.Track{}), true
}

func albumProbe(field string) (string, any, bool) {
	get, ok := domain.AlbumFields[field]
	if !ok {
		return "", nil, false
	}
	return bsonField(field), get(&domain.Album{}), true
}

// buildFilter translates clauses into a bson filter. The boolean result is
// false when a clause can never match (unknown field, non-numeric term on a
// numeric field), letting callers skip the round trip.
func buildFilter(clauses []clause, probe func(string) (string, any, bool), defaults []string) (bson.M, bool) {
	if len(clauses) == 0 {
		return bson.M{}, true
	}
	and := make(bson.A, 0, len(clauses))
	for _, c := range clauses {
		if c.Field == "" {
			or := make(bson.A, 0, len(defaults))
			for _, f := range defaults {
				or = append(or, bson.M{f: substringMatch(c.Term)})
			}
			and = append(and, bson.M{"$or": or})
			continue
		}
		key, sample, ok := probe(c.Field)
		if !ok {
			return nil, false
		}
		switch sample.(type) {
		case string:
			and = append(and, bson.M{key: substringMatch(c.Term)})
		case float64:
			f, err := strconv.ParseFloat(c.Term, 64)
			if err != nil {
				return nil, false
			}
			and = append(and, bson.M{key: f})
		default:
			n, err := strconv.Atoi(c.Term)
			if err != nil {
				return nil, false
			}
			and = append(and, bson.M{key: n})
		}
	}
	return bson.M{"$and": and}, true
}

func substringMatch(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
}

func bsonField(field string) string {
	if field == "id" {
		return "_id"
	}
	return field
}
