// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize trims raw input lines down to canonical document URLs.
package normalize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

// Marker is the file-extension marker a canonical URL ends with.
const Marker = ".pdf"

// Normalize returns the prefix of line that ends with the first occurrence
// of Marker, dropping query strings, fragments and line terminators after
// it. A line without the marker is rejected with types.ErrInvalidURL.
// Well-formedness of the URL is checked later by the record builder.
func Normalize(line string) (string, error) {
	idx := strings.Index(line, Marker)
	if idx < 0 {
		return "", fmt.Errorf("%w: no %q marker in %q", types.ErrInvalidURL, Marker, strings.TrimSpace(line))
	}
	return line[:idx+len(Marker)], nil
}
