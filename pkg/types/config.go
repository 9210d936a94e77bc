// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Default values applied when a setting is not configured.
const (
	DefaultInputFile    = "./manual_urls.txt"
	DefaultCacheDir     = "./downloaded_pdfs"
	DefaultOutputPath   = "./pdf_data.json"
	DefaultTimeout      = 60 * time.Second
	DefaultUserAgent    = "manual-extractor/0.1"
	DefaultExtractImage = "pdftotext:latest"
)

// DefaultSupportedLanguages is the set of language codes a record may carry.
var DefaultSupportedLanguages = []string{"de", "en"}

// DefaultDetectorLanguages is the set of languages the classifier chooses
// from. It is wider than the supported set so that documents in other
// languages are recognised and rejected instead of misfiled.
var DefaultDetectorLanguages = []string{"de", "en", "fr", "es", "it", "nl"}

// HTTPConfig holds HTTP settings for the document fetcher.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every download.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendNative    ExtractionBackend = "native"
	BackendContainer ExtractionBackend = "container"
)

// ExtractionConfig holds settings for the text extractor.
type ExtractionConfig struct {
	// Backend selects the extractor: native or container.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// Image is the container image used by the container backend. It must
	// read a PDF on stdin and write plain text to stdout.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Args are passed to the container image after its name.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// ClassifierConfig holds settings for the language classifier.
type ClassifierConfig struct {
	// Languages lists the ISO 639-1 codes the detector distinguishes between.
	Languages []string `json:"languages" yaml:"languages"`
}

// OutputFormat selects the serialization of the final record collection.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// PipelineConfig groups everything the pipeline driver needs for one run.
type PipelineConfig struct {
	// InputFile is the text file with one document URL per line.
	InputFile string `json:"input_file" yaml:"input_file"`

	// CacheDir is where downloaded documents are kept between runs.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// OutputPath is overwritten with the full record collection at the end of a run.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// OutputFormat selects json (default) or yaml.
	OutputFormat OutputFormat `json:"output_format" yaml:"output_format"`

	// SupportedLanguages is the closed set of codes accepted in a record.
	SupportedLanguages []string `json:"supported_languages" yaml:"supported_languages"`

	// CatalogPath is an optional SQLite database indexing every run. Empty disables it.
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"`

	HTTP       HTTPConfig       `json:"http" yaml:"http"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
}

// DefaultPipelineConfig returns a configuration populated with the defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		InputFile:          DefaultInputFile,
		CacheDir:           DefaultCacheDir,
		OutputPath:         DefaultOutputPath,
		OutputFormat:       FormatJSON,
		SupportedLanguages: append([]string(nil), DefaultSupportedLanguages...),
		HTTP: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Extraction: ExtractionConfig{
			Backend: BackendNative,
			Image:   DefaultExtractImage,
		},
		Classifier: ClassifierConfig{
			Languages: append([]string(nil), DefaultDetectorLanguages...),
		},
	}
}

// Validate reports the first setting that would prevent a run from starting.
func (c PipelineConfig) Validate() error {
	switch {
	case c.InputFile == "":
		return fmt.Errorf("input file is not set")
	case c.CacheDir == "":
		return fmt.Errorf("cache directory is not set")
	case c.OutputPath == "":
		return fmt.Errorf("output path is not set")
	case len(c.SupportedLanguages) == 0:
		return fmt.Errorf("no supported languages configured")
	}
	switch c.OutputFormat {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.OutputFormat)
	}
	switch c.Extraction.Backend {
	case BackendNative, BackendContainer:
	default:
		return fmt.Errorf("unknown extraction backend %q", c.Extraction.Backend)
	}
	for _, code := range c.SupportedLanguages {
		detectable := slices.ContainsFunc(c.Classifier.Languages, func(l string) bool {
			return strings.EqualFold(l, code)
		})
		if !detectable {
			return fmt.Errorf("supported language %q is not in the classifier languages %v", code, c.Classifier.Languages)
		}
	}
	return nil
}
