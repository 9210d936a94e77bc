// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.DocumentRecord {
	return []types.DocumentRecord{
		{ID: 0, URL: "https://example.com/washer.pdf", Text: "Washing machine operating instructions", Language: "en", ExtractionDate: "01.02.2026 10:00:00"},
		{ID: 1, URL: "https://example.com/trockner.pdf", Text: "Bedienungsanleitung Wäschetrockner", Language: "de", ExtractionDate: "01.02.2026 10:00:05"},
		{ID: 2, URL: "https://example.com/dryer.pdf", Text: "Tumble dryer INSTRUCTIONS for use", Language: "en", ExtractionDate: "01.02.2026 10:00:09"},
	}
}

func TestSaveAndSearch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "manual_urls.txt", sampleRecords()))

	all, err := s.Search(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), all)

	en, err := s.Search(ctx, QueryOptions{Language: "en"})
	require.NoError(t, err)
	require.Len(t, en, 2)
	assert.Equal(t, 0, en[0].ID)
	assert.Equal(t, 2, en[1].ID)

	hits, err := s.Search(ctx, QueryOptions{Query: "instructions"})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "https://example.com/washer.pdf", hits[0].URL)

	limited, err := s.Search(ctx, QueryOptions{MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSearch_FoldsNonASCIICase(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "manual_urls.txt", sampleRecords()))

	hits, err := s.Search(ctx, QueryOptions{Query: "WÄSCHETROCKNER"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].ID)

	limited, err := s.Search(ctx, QueryOptions{Query: "instructions", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 0, limited[0].ID)
}

func TestRuns_CorruptTimestamp(t *testing.T) {
	s := testStore(t)
	_, err := s.db.Exec(`INSERT INTO runs (id, input_file, created_at, documents) VALUES (?, ?, ?, ?)`,
		"run-bad", "manual_urls.txt", "yesterday", 0)
	require.NoError(t, err)

	_, err = s.Runs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run-bad")
}

func TestSearch_EmptyCatalog(t *testing.T) {
	s := testStore(t)
	got, err := s.Search(context.Background(), QueryOptions{Query: "anything"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRuns_NewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	var n int
	s.newID = func() string {
		n++
		return fmt.Sprintf("run-%d", n)
	}
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base.Add(time.Duration(n) * time.Minute) }

	require.NoError(t, s.Save(ctx, "first.txt", sampleRecords()[:1]))
	require.NoError(t, s.Save(ctx, "second.txt", sampleRecords()))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "second.txt", runs[0].InputFile)
	assert.Equal(t, 3, runs[0].Documents)
	assert.Equal(t, "run-1", runs[1].ID)

	latest, err := s.Search(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, latest, 3)

	older, err := s.Search(ctx, QueryOptions{RunID: "run-1"})
	require.NoError(t, err)
	assert.Len(t, older, 1)
}

func TestSave_DefaultRunIDIsUUID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "manual_urls.txt", nil))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	_, err = uuid.Parse(runs[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, runs[0].Documents)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "manual_urls.txt", sampleRecords()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Search(ctx, QueryOptions{Language: "de"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bedienungsanleitung Wäschetrockner", got[0].Text)
}
