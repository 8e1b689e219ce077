package server

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ojensen/musicd/internal/catalog"
)

// byteRange is a half-open byte window [Start, End) within a file.
type byteRange struct {
	Start int64
	End   int64
}

// trackFile handles GET and HEAD /item/<id>/file: it resolves the track,
// then serves the underlying file with conditional-GET and single-range
// support. Only the first requested range is honored; multipart range
// responses are not supported.
func (s *Server) trackFile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ids"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid item id")
		return
	}

	track, err := s.catalog.Track(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.String(http.StatusNotFound, "File does not exist.")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "catalog error: %v", err)
		return
	}

	serveFile(c, track.Path)
}

// serveFile implements the response state machine for a single file. The
// handle is opened once per request and released on every exit path,
// including early 304/403/404/416 returns and aborted copies.
func serveFile(c *gin.Context, path string) {
	file, err := os.Open(path)
	if err != nil {
		switch {
		// A missing file fails the readability check the same way an
		// unreadable one does: the 404 is reserved for unknown ids.
		case errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist):
			c.String(http.StatusForbidden, "You do not have permission to access this file.")
		default:
			c.String(http.StatusInternalServerError, "cannot open file: %v", err)
		}
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		c.String(http.StatusInternalServerError, "cannot stat file: %v", err)
		return
	}
	size := info.Size()

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Length", strconv.FormatInt(size, 10))
	c.Header("Last-Modified", httpDate(info.ModTime()))
	c.Header("Date", httpDate(time.Now()))

	// Conditional GET: compare at second precision, flooring the file's
	// modification time the way HTTP dates do.
	if ims := c.GetHeader("If-Modified-Since"); ims != "" {
		ims = strings.TrimSpace(strings.SplitN(ims, ";", 2)[0])
		if t, err := http.ParseTime(ims); err == nil && !t.Before(info.ModTime().Truncate(time.Second)) {
			c.Status(http.StatusNotModified)
			return
		}
	}

	head := c.Request.Method == http.MethodHead

	c.Header("Accept-Ranges", "bytes")
	if rangeHeader := c.GetHeader("Range"); rangeHeader != "" {
		ranges := parseRangeHeader(rangeHeader, size)
		if len(ranges) == 0 {
			// Drop the headers built for the full-file response so the
			// declared length matches the error body actually sent.
			c.Header("Content-Length", "")
			c.Header("Content-Type", "")
			c.Header("Last-Modified", "")
			c.String(http.StatusRequestedRangeNotSatisfiable, "Requested Range Not Satisfiable")
			return
		}

		window := ranges[0]
		c.Header("Content-Range", fmt.Sprintf("bytes %d-%d/%d", window.Start, window.End-1, size))
		c.Header("Content-Length", strconv.FormatInt(window.End-window.Start, 10))
		c.Status(http.StatusPartialContent)
		if !head {
			io.Copy(c.Writer, io.NewSectionReader(file, window.Start, window.End-window.Start))
		}
		return
	}

	c.Status(http.StatusOK)
	if !head {
		io.Copy(c.Writer, file)
	}
}

// parseRangeHeader parses a Range header against the file size. Specs that
// do not parse are skipped rather than failing the whole header; an empty
// result means no satisfiable range.
func parseRangeHeader(header string, size int64) []byteRange {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return nil
	}

	var ranges []byteRange
	for _, spec := range strings.Split(header[len(prefix):], ",") {
		spec = strings.TrimSpace(spec)
		startStr, endStr, ok := strings.Cut(spec, "-")
		if !ok {
			continue
		}

		var start, end int64
		switch {
		case startStr == "":
			// Suffix form: the last N bytes.
			n, err := strconv.ParseInt(endStr, 10, 64)
			if err != nil {
				continue
			}
			start = size - n
			if start < 0 {
				start = 0
			}
			end = size
		case endStr == "":
			n, err := strconv.ParseInt(startStr, 10, 64)
			if err != nil {
				continue
			}
			start, end = n, size
		default:
			first, err := strconv.ParseInt(startStr, 10, 64)
			if err != nil {
				continue
			}
			last, err := strconv.ParseInt(endStr, 10, 64)
			if err != nil {
				continue
			}
			start = first
			end = last + 1
			if end > size {
				end = size
			}
		}

		if 0 <= start && start < end && end <= size {
			ranges = append(ranges, byteRange{Start: start, End: end})
		}
	}
	return ranges
}

func httpDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}
