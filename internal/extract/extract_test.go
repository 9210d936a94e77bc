// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

// fakePages is an in-memory pageSource.
type fakePages struct {
	texts   []string
	failOn  int
	visited []int
}

func (f *fakePages) NumPage() int { return len(f.texts) }

func (f *fakePages) PageText(n int) (string, error) {
	f.visited = append(f.visited, n)
	if n == f.failOn {
		return "", errors.New("bad content stream")
	}
	return f.texts[n-1], nil
}

func TestConcatPages(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{"page order kept", []string{"A", "B", "C"}, "ABC"},
		{"no separators added", []string{"first page\n", "second page"}, "first page\nsecond page"},
		{"empty pages", []string{"", "x", ""}, "x"},
		{"zero pages", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := concatPages(&fakePages{texts: tt.texts})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConcatPages_StopsOnPageError(t *testing.T) {
	src := &fakePages{texts: []string{"A", "B", "C"}, failOn: 2}
	_, err := concatPages(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
	assert.Equal(t, []int{1, 2}, src.visited)
}

// writePDF renders one page per text with gofpdf.
func writePDF(t *testing.T, dir string, pages ...string) string {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	for _, text := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 14)
		doc.Cell(120, 10, text)
	}
	path := filepath.Join(dir, "manual.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func TestPDFExtractor_PageOrder(t *testing.T) {
	path := writePDF(t, t.TempDir(), "Alpha", "Bravo", "Charlie")

	text, err := (&PDFExtractor{}).Extract(path)
	require.NoError(t, err)

	a := strings.Index(text, "Alpha")
	b := strings.Index(text, "Bravo")
	c := strings.Index(text, "Charlie")
	require.True(t, a >= 0 && b >= 0 && c >= 0, "missing page text in %q", text)
	assert.True(t, a < b && b < c, "pages out of order in %q", text)
}

func TestPDFExtractor_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("<html>not a pdf</html>"), 0o644))

	_, err := (&PDFExtractor{}).Extract(path)
	assert.ErrorIs(t, err, types.ErrExtraction)
}

func TestPDFExtractor_Missing(t *testing.T) {
	_, err := (&PDFExtractor{}).Extract(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.ErrorIs(t, err, types.ErrExtraction)
}

func TestNew(t *testing.T) {
	ex, err := New(types.ExtractionConfig{Backend: types.BackendNative})
	require.NoError(t, err)
	assert.IsType(t, &PDFExtractor{}, ex)

	_, err = New(types.ExtractionConfig{Backend: "ocr"})
	assert.Error(t, err)
}
