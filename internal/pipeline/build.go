// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"

	"github.com/pdiddy/manual-extractor/internal/catalog"
	"github.com/pdiddy/manual-extractor/internal/extract"
	"github.com/pdiddy/manual-extractor/internal/fetch"
	"github.com/pdiddy/manual-extractor/internal/language"
	"github.com/pdiddy/manual-extractor/internal/record"
	"github.com/pdiddy/manual-extractor/pkg/types"
)

// FromConfig wires the production stages described by cfg. The returned
// close function releases the catalog, if one is configured, and must be
// called once the run is over.
func FromConfig(cfg types.PipelineConfig, w io.Writer) (*Pipeline, func() error, error) {
	noop := func() error { return nil }
	if err := cfg.Validate(); err != nil {
		return nil, noop, err
	}

	extractor, err := extract.New(cfg.Extraction)
	if err != nil {
		return nil, noop, fmt.Errorf("setting up extractor: %w", err)
	}
	classifier, err := language.NewLinguaClassifier(cfg.Classifier.Languages)
	if err != nil {
		return nil, noop, fmt.Errorf("setting up classifier: %w", err)
	}
	writer, err := NewWriter(cfg.OutputFormat, cfg.OutputPath)
	if err != nil {
		return nil, noop, err
	}

	stages := Stages{
		Fetcher:    fetch.NewFetcher(fetch.NewHTTPTransport(cfg.HTTP), fetch.NewDirCache(cfg.CacheDir), w),
		Extractor:  extractor,
		Classifier: classifier,
		Builder:    record.NewBuilder(cfg.SupportedLanguages),
		Writer:     writer,
	}

	closeFn := noop
	if cfg.CatalogPath != "" {
		store, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			return nil, noop, fmt.Errorf("opening catalog: %w", err)
		}
		stages.Sinks = append(stages.Sinks, store)
		closeFn = store.Close
	}

	return New(cfg.InputFile, stages, w), closeFn, nil
}
