package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"
)

func trackFilePath(t *testing.T, s *Server) string {
	t.Helper()
	track, err := s.catalog.Track(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	return track.Path
}

func TestFileFullResponse(t *testing.T) {
	server := newTestServer(t)
	rr := doRequest(t, server, "GET", "/item/1/file", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/octet-stream" {
		t.Errorf("Expected octet-stream content type, got %q", got)
	}
	if got := rr.Header().Get("Content-Length"); got != "1000" {
		t.Errorf("Expected Content-Length 1000, got %q", got)
	}
	if got := rr.Header().Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Expected Accept-Ranges bytes, got %q", got)
	}
	if _, err := http.ParseTime(rr.Header().Get("Last-Modified")); err != nil {
		t.Errorf("Last-Modified is not a valid HTTP date: %v", err)
	}
	if _, err := http.ParseTime(rr.Header().Get("Date")); err != nil {
		t.Errorf("Date is not a valid HTTP date: %v", err)
	}
	if !bytes.Equal(rr.Body.Bytes(), testFileContent()) {
		t.Error("Body does not match the file content")
	}
}

func TestFileRangeRequest(t *testing.T) {
	server := newTestServer(t)
	content := testFileContent()

	tests := []struct {
		name         string
		rangeHeader  string
		contentRange string
		want         []byte
	}{
		{"middle window", "bytes=200-299", "bytes 200-299/1000", content[200:300]},
		{"first of multiple ranges", "bytes=200-299,400-499", "bytes 200-299/1000", content[200:300]},
		{"open ended", "bytes=950-", "bytes 950-999/1000", content[950:]},
		{"suffix", "bytes=-100", "bytes 900-999/1000", content[900:]},
		{"end clamped to size", "bytes=900-2000", "bytes 900-999/1000", content[900:]},
		{"single byte", "bytes=0-0", "bytes 0-0/1000", content[:1]},
		{"invalid spec before valid one", "bytes=banana-,300-399", "bytes 300-399/1000", content[300:400]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, server, "GET", "/item/1/file", http.Header{"Range": {tt.rangeHeader}})

			if rr.Code != http.StatusPartialContent {
				t.Fatalf("Expected status %d, got %d", http.StatusPartialContent, rr.Code)
			}
			if got := rr.Header().Get("Content-Range"); got != tt.contentRange {
				t.Errorf("Expected Content-Range %q, got %q", tt.contentRange, got)
			}
			if got, want := rr.Header().Get("Content-Length"), len(tt.want); got != strconv.Itoa(want) {
				t.Errorf("Expected Content-Length %d, got %q", want, got)
			}
			if !bytes.Equal(rr.Body.Bytes(), tt.want) {
				t.Errorf("Body window mismatch: got %d bytes", rr.Body.Len())
			}
		})
	}
}

func TestFileRangeNotSatisfiable(t *testing.T) {
	server := newTestServer(t)

	for _, header := range []string{
		"bytes=xyz",
		"bytes=1000-",
		"bytes=500-400",
		"bytes=-0",
		"items=0-100",
	} {
		rr := doRequest(t, server, "GET", "/item/1/file", http.Header{"Range": {header}})
		if rr.Code != http.StatusRequestedRangeNotSatisfiable {
			t.Errorf("Range %q: expected status %d, got %d", header, http.StatusRequestedRangeNotSatisfiable, rr.Code)
		}
		if got := rr.Header().Get("Content-Range"); got != "" {
			t.Errorf("Range %q: unexpected Content-Range %q on 416", header, got)
		}
	}
}

// The 416 body must be readable over a real connection: a leftover
// Content-Length from the full-file headers would truncate the response
// mid-body, which a recorder cannot detect.
func TestFileRangeNotSatisfiableOverHTTP(t *testing.T) {
	server := newTestServer(t)
	ts := httptest.NewServer(server.router)
	defer ts.Close()

	req, err := http.NewRequest("GET", ts.URL+"/item/1/file", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Range", "bytes=5000-6000")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusRequestedRangeNotSatisfiable {
		t.Fatalf("Expected status %d, got %d", http.StatusRequestedRangeNotSatisfiable, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Reading the 416 body failed: %v", err)
	}
	if resp.ContentLength >= 0 && resp.ContentLength != int64(len(body)) {
		t.Errorf("Content-Length %d does not match %d body bytes", resp.ContentLength, len(body))
	}
	if string(body) != "Requested Range Not Satisfiable" {
		t.Errorf("Unexpected 416 body %q", body)
	}
}

func TestFileConditionalGet(t *testing.T) {
	server := newTestServer(t)
	info, err := os.Stat(trackFilePath(t, server))
	if err != nil {
		t.Fatal(err)
	}
	modTime := info.ModTime().Truncate(time.Second)

	tests := []struct {
		name     string
		since    time.Time
		wantCode int
	}{
		{"same second", modTime, http.StatusNotModified},
		{"later", modTime.Add(time.Hour), http.StatusNotModified},
		{"earlier", modTime.Add(-time.Hour), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{"If-Modified-Since": {httpDate(tt.since)}}
			rr := doRequest(t, server, "GET", "/item/1/file", header)

			if rr.Code != tt.wantCode {
				t.Fatalf("Expected status %d, got %d", tt.wantCode, rr.Code)
			}
			if tt.wantCode == http.StatusNotModified && rr.Body.Len() != 0 {
				t.Errorf("304 must not carry a body, got %d bytes", rr.Body.Len())
			}
		})
	}
}

func TestFileHead(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "HEAD", "/item/1/file", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got := rr.Header().Get("Content-Length"); got != "1000" {
		t.Errorf("Expected Content-Length 1000, got %q", got)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("HEAD must not carry a body, got %d bytes", rr.Body.Len())
	}

	rr = doRequest(t, server, "HEAD", "/item/1/file", http.Header{"Range": {"bytes=200-299"}})
	if rr.Code != http.StatusPartialContent {
		t.Fatalf("Expected status %d, got %d", http.StatusPartialContent, rr.Code)
	}
	if got := rr.Header().Get("Content-Length"); got != "100" {
		t.Errorf("Expected Content-Length 100, got %q", got)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("HEAD must not carry a body, got %d bytes", rr.Body.Len())
	}
}

func TestFileErrors(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "GET", "/item/999/file", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Unknown id: expected status %d, got %d", http.StatusNotFound, rr.Code)
	}

	rr = doRequest(t, server, "GET", "/item/abc/file", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Non-numeric id: expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}

	// Track 2 exists in the catalog but has no file on disk; that fails
	// the readability check, not the id lookup.
	rr = doRequest(t, server, "GET", "/item/2/file", nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("Missing file: expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
	if got := rr.Body.String(); got != "You do not have permission to access this file." {
		t.Errorf("Missing file: unexpected body %q", got)
	}
}

func TestFilePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	server := newTestServer(t)
	path := trackFilePath(t, server)
	if err := os.Chmod(path, 0000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(path, 0644)

	rr := doRequest(t, server, "GET", "/item/1/file", nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Error("Expected a short text body on 403")
	}
}

func TestParseRangeHeader(t *testing.T) {
	tests := []struct {
		header string
		size   int64
		want   []byteRange
	}{
		{"bytes=0-499", 1000, []byteRange{{0, 500}}},
		{"bytes=500-", 1000, []byteRange{{500, 1000}}},
		{"bytes=-200", 1000, []byteRange{{800, 1000}}},
		{"bytes=-2000", 1000, []byteRange{{0, 1000}}},
		{"bytes=0-499,600-699", 1000, []byteRange{{0, 500}, {600, 700}}},
		{"bytes=junk,600-699", 1000, []byteRange{{600, 700}}},
		{"bytes=1000-1100", 1000, nil},
		{"bytes=5", 1000, nil},
		{"chunks=0-499", 1000, nil},
	}

	for _, tt := range tests {
		got := parseRangeHeader(tt.header, tt.size)
		if len(got) != len(tt.want) {
			t.Errorf("parseRangeHeader(%q): got %v, want %v", tt.header, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseRangeHeader(%q)[%d]: got %v, want %v", tt.header, i, got[i], tt.want[i])
			}
		}
	}
}
