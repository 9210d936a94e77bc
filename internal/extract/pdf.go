// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

// PDFExtractor reads the embedded text layer with github.com/ledongthuc/pdf.
// Image-only pages contribute no text.
type PDFExtractor struct{}

// Extract implements Extractor.
func (e *PDFExtractor) Extract(path string) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: parsing %s: %v", types.ErrExtraction, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %w", types.ErrExtraction, path, err)
	}
	defer f.Close()

	text, err = concatPages(&pdfPages{r: r, fonts: make(map[string]*pdf.Font)})
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", types.ErrExtraction, path, err)
	}
	return text, nil
}

// pdfPages adapts a pdf.Reader to pageSource, sharing decoded fonts across pages.
type pdfPages struct {
	r     *pdf.Reader
	fonts map[string]*pdf.Font
}

func (p *pdfPages) NumPage() int { return p.r.NumPage() }

func (p *pdfPages) PageText(n int) (string, error) {
	page := p.r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	for _, name := range page.Fonts() {
		if _, ok := p.fonts[name]; !ok {
			font := page.Font(name)
			p.fonts[name] = &font
		}
	}
	return page.GetPlainText(p.fonts)
}
