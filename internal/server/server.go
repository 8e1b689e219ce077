package server

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ojensen/musicd/config"
	"github.com/ojensen/musicd/internal/catalog"
)

// Server handles HTTP requests for the library catalog.
type Server struct {
	cfg     *config.Config
	catalog catalog.Catalog
	router  *gin.Engine

	idDelimiter string
	idList      *regexp.Regexp
}

// New creates a new HTTP server instance over the given catalog.
func New(cfg *config.Config, cat catalog.Catalog) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	delimiter := cfg.Server.IDDelimiter
	if delimiter == "" {
		delimiter = ","
	}

	server := &Server{
		cfg:         cfg,
		catalog:     cat,
		idDelimiter: delimiter,
		idList:      idListPattern(delimiter),
	}

	router := gin.Default()
	server.setupRoutes(router)
	server.router = router
	return server
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/health", s.healthCheck)

	item := router.Group("/item")
	{
		item.GET("/", s.listTracks)
		item.GET("/query/*query", s.queryTracks)
		item.GET("/values/*key", s.trackValues)
		item.GET("/:ids", s.tracksByIDs)
		item.GET("/:ids/file", s.trackFile)
		item.HEAD("/:ids/file", s.trackFile)
	}

	album := router.Group("/album")
	{
		album.GET("/", s.listAlbums)
		album.GET("/query/*query", s.queryAlbums)
		album.GET("/values/*key", s.albumValues)
		album.GET("/:ids", s.albumsByIDs)
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "musicd",
	})
}
