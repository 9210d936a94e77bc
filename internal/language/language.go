// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package language classifies the dominant language of extracted text.
package language

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

// Classifier returns the ISO 639-1 code of the dominant language of text.
type Classifier interface {
	Classify(text string) (string, error)
}

// LinguaClassifier is a Classifier backed by github.com/pemistahl/lingua-go.
type LinguaClassifier struct {
	detector lingua.LanguageDetector
}

// NewLinguaClassifier builds a detector that chooses among codes. At least
// two distinct known codes are required.
func NewLinguaClassifier(codes []string) (*LinguaClassifier, error) {
	langs, err := languagesFor(codes)
	if err != nil {
		return nil, err
	}
	if len(langs) < 2 {
		return nil, fmt.Errorf("language detector needs at least two languages, got %v", codes)
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()
	return &LinguaClassifier{detector: detector}, nil
}

// Classify implements Classifier. Blank text, or text the detector cannot
// decide on, yields types.ErrClassification.
func (c *LinguaClassifier) Classify(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text to classify", types.ErrClassification)
	}
	lang, ok := c.detector.DetectLanguageOf(text)
	if !ok {
		return "", fmt.Errorf("%w: language could not be determined", types.ErrClassification)
	}
	return Code(lang), nil
}

// Code returns the lower-case ISO 639-1 code of lang.
func Code(lang lingua.Language) string {
	return strings.ToLower(lang.IsoCode639_1().String())
}

// languagesFor maps ISO 639-1 codes to lingua languages, dropping duplicates.
func languagesFor(codes []string) ([]lingua.Language, error) {
	byCode := make(map[string]lingua.Language)
	for _, l := range lingua.AllLanguages() {
		byCode[Code(l)] = l
	}

	seen := make(map[lingua.Language]bool)
	var langs []lingua.Language
	for _, code := range codes {
		l, ok := byCode[strings.ToLower(strings.TrimSpace(code))]
		if !ok {
			return nil, fmt.Errorf("unknown language code %q", code)
		}
		if !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	return langs, nil
}
