package server

import (
	"testing"

	"github.com/ojensen/musicd/config"
	"github.com/ojensen/musicd/internal/catalog"
)

func TestParseIDs(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		input string
		want  []int
	}{
		{"1", []int{1}},
		{"1,2,3", []int{1, 2, 3}},
		{"007", []int{7}},
		{"", nil},
		{"1,,2", nil},
		{"1,a,2", nil},
		{"a", nil},
		{"-1", nil},
		{"1;2", nil},
	}

	for _, tt := range tests {
		got := server.parseIDs(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseIDs(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseIDs(%q)[%d] = %d, want %d", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseIDsCustomDelimiter(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{IDDelimiter: ";"},
	}
	server := New(cfg, catalog.NewMemory())

	if got := server.parseIDs("1;2;3"); len(got) != 3 {
		t.Errorf("parseIDs(\"1;2;3\") = %v, want three ids", got)
	}
	if got := server.parseIDs("1,2"); got != nil {
		t.Errorf("comma list with ';' delimiter should be empty, got %v", got)
	}
}

func TestPathTail(t *testing.T) {
	if got := pathTail("/genre"); got != "genre" {
		t.Errorf("pathTail(\"/genre\") = %q", got)
	}
	if got := pathTail("/"); got != "" {
		t.Errorf("pathTail(\"/\") = %q", got)
	}
}
