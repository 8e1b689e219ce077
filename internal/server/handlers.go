package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojensen/musicd/internal/catalog"
	"github.com/ojensen/musicd/internal/projection"
)

// listTracks handles GET /item/ and returns the full catalog.
func (s *Server) listTracks(c *gin.Context) {
	tracks, err := s.catalog.Tracks(c.Request.Context())
	if err != nil {
		s.serverError(c, "list tracks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": projection.Tracks(tracks)})
}

// tracksByIDs handles GET /item/<ids>. A single surviving match collapses to
// a bare object; zero or several matches stay wrapped. The collapse keys on
// the result count, not the request shape.
func (s *Server) tracksByIDs(c *gin.Context) {
	ids := s.parseIDs(c.Param("ids"))
	tracks, err := s.catalog.TracksByIDs(c.Request.Context(), ids)
	if err != nil {
		s.serverError(c, "tracks by ids", err)
		return
	}
	items := projection.Tracks(tracks)
	if len(items) == 1 {
		c.JSON(http.StatusOK, items[0])
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// trackValues handles GET /item/values/<key>, enumerating the distinct
// values of one field, sorted by the optional sort_key parameter.
func (s *Server) trackValues(c *gin.Context) {
	key := pathTail(c.Param("key"))
	sortKey := c.DefaultQuery("sort_key", key)

	values, err := s.catalog.TrackValues(c.Request.Context(), key, sortKey)
	if errors.Is(err, catalog.ErrUnknownField) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown field: " + key})
		return
	}
	if err != nil {
		s.serverError(c, "track values", err)
		return
	}
	c.JSON(http.StatusOK, ValuesResponse{Values: values})
}

// queryTracks handles GET /item/query/<query>. An empty query is an alias
// for the full listing.
func (s *Server) queryTracks(c *gin.Context) {
	query := pathTail(c.Param("query"))
	if query == "" {
		s.listTracks(c)
		return
	}
	tracks, err := s.catalog.QueryTracks(c.Request.Context(), query)
	if err != nil {
		s.serverError(c, "query tracks", err)
		return
	}
	c.JSON(http.StatusOK, ResultsResponse{Results: projection.Tracks(tracks)})
}

// listAlbums handles GET /album/. The wrapper key is "albums", matching the
// shape existing clients depend on.
func (s *Server) listAlbums(c *gin.Context) {
	albums, err := s.catalog.Albums(c.Request.Context())
	if err != nil {
		s.serverError(c, "list albums", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"albums": projection.Albums(albums)})
}

// albumsByIDs handles GET /album/<ids> with the same singleton collapse as
// the item route.
func (s *Server) albumsByIDs(c *gin.Context) {
	ids := s.parseIDs(c.Param("ids"))
	albums, err := s.catalog.AlbumsByIDs(c.Request.Context(), ids)
	if err != nil {
		s.serverError(c, "albums by ids", err)
		return
	}
	projected := projection.Albums(albums)
	if len(projected) == 1 {
		c.JSON(http.StatusOK, projected[0])
		return
	}
	c.JSON(http.StatusOK, gin.H{"albums": projected})
}

// albumValues handles GET /album/values/<key>.
func (s *Server) albumValues(c *gin.Context) {
	key := pathTail(c.Param("key"))
	sortKey := c.DefaultQuery("sort_key", key)

	values, err := s.catalog.AlbumValues(c.Request.Context(), key, sortKey)
	if errors.Is(err, catalog.ErrUnknownField) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown field: " + key})
		return
	}
	if err != nil {
		s.serverError(c, "album values", err)
		return
	}
	c.JSON(http.StatusOK, ValuesResponse{Values: values})
}

// queryAlbums handles GET /album/query/<query>.
func (s *Server) queryAlbums(c *gin.Context) {
	query := pathTail(c.Param("query"))
	if query == "" {
		s.listAlbums(c)
		return
	}
	albums, err := s.catalog.QueryAlbums(c.Request.Context(), query)
	if err != nil {
		s.serverError(c, "query albums", err)
		return
	}
	c.JSON(http.StatusOK, ResultsResponse{Results: projection.Albums(albums)})
}

func (s *Server) serverError(c *gin.Context, op string, err error) {
	slog.Error("Catalog operation failed", "op", op, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
