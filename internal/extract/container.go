// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/manual-extractor/internal/container"
	"github.com/pdiddy/manual-extractor/pkg/types"
)

// ContainerExtractor pipes the PDF through a pdftotext-style container
// image. The image reads the document on stdin and writes its text to
// stdout, ending every page with a form feed.
type ContainerExtractor struct {
	runtime container.Runtime
	image   string
	args    []string
}

// NewContainerExtractor checks that image is available in rt before returning.
func NewContainerExtractor(rt container.Runtime, image string, args []string) (*ContainerExtractor, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("extraction image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerExtractor{runtime: rt, image: image, args: args}, nil
}

// Extract implements Extractor.
func (c *ContainerExtractor) Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %w", types.ErrExtraction, path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(c.image, c.args, f, &out); err != nil {
		return "", fmt.Errorf("%w: %s: %w", types.ErrExtraction, path, err)
	}
	return concatPages(formFeedPages(strings.Split(out.String(), "\f")))
}

// formFeedPages treats each form-feed separated chunk as a page.
type formFeedPages []string

func (p formFeedPages) NumPage() int { return len(p) }

func (p formFeedPages) PageText(n int) (string, error) { return p[n-1], nil }
