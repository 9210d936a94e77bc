// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing newline", "https://example.com/manuals/device123.pdf\n", "https://example.com/manuals/device123.pdf"},
		{"crlf", "https://example.com/a.pdf\r\n", "https://example.com/a.pdf"},
		{"query string", "https://example.com/a.pdf?download=1", "https://example.com/a.pdf"},
		{"fragment", "http://example.com/b.pdf#page=4", "http://example.com/b.pdf"},
		{"first marker wins", "https://example.com/x.pdf/y.pdf", "https://example.com/x.pdf"},
		{"already canonical", "https://example.com/c.pdf", "https://example.com/c.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !strings.HasPrefix(tt.input, got) || !strings.HasSuffix(got, Marker) {
				t.Errorf("Normalize(%q) = %q is not a prefix ending in %q", tt.input, got, Marker)
			}
		})
	}
}

func TestNormalize_MissingMarker(t *testing.T) {
	for _, input := range []string{"", "\n", "https://example.com/manual.html\n", "https://example.com/manual.PDF"} {
		got, err := Normalize(input)
		if !errors.Is(err, types.ErrInvalidURL) {
			t.Errorf("Normalize(%q) error = %v, want ErrInvalidURL", input, err)
		}
		if got != "" {
			t.Errorf("Normalize(%q) = %q, want empty", input, got)
		}
	}
}
