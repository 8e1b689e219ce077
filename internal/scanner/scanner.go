// Package scanner populates a catalog from the audio files under a
// directory tree. It is the offline counterpart of the read-only HTTP API:
// writes happen here, through the catalog's Inserter side only.
package scanner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/h2non/filetype"

	"github.com/ojensen/musicd/internal/catalog"
	"github.com/ojensen/musicd/internal/domain"
)

// extensions accepted when the content sniff is inconclusive. Some valid
// audio containers (notably raw mp3 without an ID3 header) have no magic
// bytes at offset zero.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".wav":  true,
	".aiff": true,
}

// Scanner walks a directory and inserts the tracks and albums it finds.
type Scanner struct {
	inserter catalog.Inserter
}

// Stats summarizes a completed scan.
type Stats struct {
	Tracks  int
	Albums  int
	Skipped int
}

// New creates a scanner writing into the given catalog.
func New(inserter catalog.Inserter) *Scanner {
	return &Scanner{inserter: inserter}
}

// Scan walks root and inserts every audio file as a track, grouping albums
// by album title and artist. progress, when non-nil, is called once per
// accepted file.
func (s *Scanner) Scan(ctx context.Context, root string, progress func(path string)) (*Stats, error) {
	stats := &Stats{}
	albumIDs := make(map[string]int)
	nextTrackID, nextAlbumID := 1, 1

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !isAudioFile(path) {
			stats.Skipped++
			return nil
		}
		if progress != nil {
			progress(path)
		}

		track, albumTitle, albumArtist, discTotal := readTrack(path)
		track.ID = nextTrackID
		nextTrackID++

		if albumTitle != "" {
			key := albumTitle + "\x00" + albumArtist
			id, ok := albumIDs[key]
			if !ok {
				id = nextAlbumID
				nextAlbumID++
				albumIDs[key] = id
				album := &domain.Album{
					ID:          id,
					Album:       albumTitle,
					AlbumArtist: albumArtist,
					DiscTotal:   discTotal,
					Genre:       track.Genre,
					Year:        track.Year,
				}
				if err := s.inserter.InsertAlbum(ctx, album); err != nil {
					return fmt.Errorf("insert album %q: %w", albumTitle, err)
				}
				stats.Albums++
			}
			track.AlbumID = id
		}

		if err := s.inserter.InsertTrack(ctx, track); err != nil {
			return fmt.Errorf("insert track %q: %w", path, err)
		}
		stats.Tracks++
		return nil
	})
	if err != nil {
		return stats, err
	}

	slog.Info("Scan completed", "tracks", stats.Tracks, "albums", stats.Albums, "skipped", stats.Skipped)
	return stats, nil
}

// readTrack builds a track from a file's tags, falling back to
// filename-derived metadata when the file carries none.
func readTrack(path string) (track *domain.Track, albumTitle, albumArtist string, discTotal int) {
	track = &domain.Track{Path: path}

	f, err := os.Open(path)
	if err != nil {
		track.Title = titleFromFilename(path)
		return track, "", "", 0
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		track.Title = titleFromFilename(path)
		return track, "", "", 0
	}

	track.Title = m.Title()
	if track.Title == "" {
		track.Title = titleFromFilename(path)
	}
	track.Artist = m.Artist()
	track.Composer = m.Composer()
	track.Genre = m.Genre()
	track.Year = m.Year()
	track.Track, _ = m.Track()
	track.Disc, discTotal = m.Disc()

	albumArtist = m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}
	return track, m.Album(), albumArtist, discTotal
}

// isAudioFile sniffs the file header, falling back to the extension list.
func isAudioFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return false
	}
	if filetype.IsAudio(head[:n]) {
		return true
	}
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
