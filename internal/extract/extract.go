// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns downloaded PDF documents into plain text with
// pluggable backends.
package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manual-extractor/internal/container"
	"github.com/pdiddy/manual-extractor/pkg/types"
)

// Extractor returns the text of the document at path. Page texts are
// concatenated in page order with nothing inserted between them.
type Extractor interface {
	Extract(path string) (string, error)
}

// pageSource is a paginated document whose pages are numbered from 1.
type pageSource interface {
	NumPage() int
	PageText(n int) (string, error)
}

// concatPages joins the text of every page of src in order.
func concatPages(src pageSource) (string, error) {
	var b strings.Builder
	for n := 1; n <= src.NumPage(); n++ {
		text, err := src.PageText(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n, err)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// New returns the extractor selected by cfg.Backend.
func New(cfg types.ExtractionConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		return &PDFExtractor{}, nil
	case types.BackendContainer:
		rt, err := container.Detect()
		if err != nil {
			return nil, err
		}
		image := cfg.Image
		if image == "" {
			image = types.DefaultExtractImage
		}
		ex, err := NewContainerExtractor(rt, image, cfg.Args)
		if err != nil {
			return nil, err
		}
		return ex, nil
	default:
		return nil, fmt.Errorf("unknown extraction backend %q", cfg.Backend)
	}
}
