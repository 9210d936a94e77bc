// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DateLayout is the format of DocumentRecord.ExtractionDate (DD.MM.YYYY HH:MM:SS).
const DateLayout = "02.01.2006 15:04:05"

// DocumentRecord is the validated output for one input document. Records are
// produced by the record builder and treated as values from then on.
type DocumentRecord struct {
	// ID is the zero-based line number of the URL in the input file.
	ID int `json:"id" yaml:"id"`

	// URL is the normalized document URL.
	URL string `json:"url" yaml:"url"`

	// Text is the concatenated text of every page, possibly empty.
	Text string `json:"text" yaml:"text"`

	// Language is the ISO 639-1 code of the dominant language.
	Language string `json:"language" yaml:"language"`

	// ExtractionDate is the wall-clock time the record was built, in DateLayout.
	ExtractionDate string `json:"extraction_date" yaml:"extraction_date"`
}
