// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package record assembles validated DocumentRecords.
package record

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

// Builder constructs DocumentRecords, rejecting any that fail validation.
type Builder struct {
	supported map[string]bool

	// Now supplies the extraction timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewBuilder returns a Builder that accepts records in the given languages.
func NewBuilder(supported []string) *Builder {
	set := make(map[string]bool, len(supported))
	for _, code := range supported {
		set[strings.ToLower(strings.TrimSpace(code))] = true
	}
	return &Builder{supported: set, Now: time.Now}
}

// Build validates its inputs and returns the record. The extraction date is
// taken from b.Now at the moment of the call. On failure it returns a
// *types.ValidationError naming the offending field.
func (b *Builder) Build(id int, rawURL, text, language string) (types.DocumentRecord, error) {
	if id < 0 {
		return types.DocumentRecord{}, &types.ValidationError{
			Field: "id", Value: strconv.Itoa(id), Reason: "must be non-negative",
		}
	}
	if reason := checkURL(rawURL); reason != "" {
		return types.DocumentRecord{}, &types.ValidationError{
			Field: "url", Value: rawURL, Reason: reason,
		}
	}
	if !b.supported[language] {
		return types.DocumentRecord{}, &types.ValidationError{
			Field: "language", Value: language, Reason: "not a supported language",
		}
	}

	return types.DocumentRecord{
		ID:             id,
		URL:            rawURL,
		Text:           text,
		Language:       language,
		ExtractionDate: b.Now().Format(types.DateLayout),
	}, nil
}

// checkURL returns why rawURL is not an absolute http(s) URL, or "".
func checkURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err.Error()
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return "scheme must be http or https"
	case u.Host == "":
		return "missing host"
	}
	return ""
}
