// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

// Config keys, as used in manual-extractor.yaml. Environment variables use
// the MANUAL_EXTRACTOR_ prefix with dots replaced by underscores.
const (
	keyInputFile          = "input_file"
	keyCacheDir           = "cache_dir"
	keyOutputPath         = "output_path"
	keyOutputFormat       = "output_format"
	keySupportedLanguages = "supported_languages"
	keyCatalogPath        = "catalog_path"
	keyHTTPTimeout        = "http.timeout"
	keyHTTPUserAgent      = "http.user_agent"
	keyExtractionBackend  = "extraction.backend"
	keyExtractionImage    = "extraction.image"
	keyExtractionArgs     = "extraction.args"
	keyClassifierLangs    = "classifier.languages"
)

// setDefaults registers the built-in defaults with v.
func setDefaults(v *viper.Viper) {
	d := types.DefaultPipelineConfig()
	v.SetDefault(keyInputFile, d.InputFile)
	v.SetDefault(keyCacheDir, d.CacheDir)
	v.SetDefault(keyOutputPath, d.OutputPath)
	v.SetDefault(keyOutputFormat, string(d.OutputFormat))
	v.SetDefault(keySupportedLanguages, d.SupportedLanguages)
	v.SetDefault(keyCatalogPath, d.CatalogPath)
	v.SetDefault(keyHTTPTimeout, d.HTTP.Timeout)
	v.SetDefault(keyHTTPUserAgent, d.HTTP.UserAgent)
	v.SetDefault(keyExtractionBackend, string(d.Extraction.Backend))
	v.SetDefault(keyExtractionImage, d.Extraction.Image)
	v.SetDefault(keyClassifierLangs, d.Classifier.Languages)
}

// loadPipelineConfig resolves a PipelineConfig from v.
func loadPipelineConfig(v *viper.Viper) types.PipelineConfig {
	return types.PipelineConfig{
		InputFile:          v.GetString(keyInputFile),
		CacheDir:           v.GetString(keyCacheDir),
		OutputPath:         v.GetString(keyOutputPath),
		OutputFormat:       types.OutputFormat(v.GetString(keyOutputFormat)),
		SupportedLanguages: stringList(v, keySupportedLanguages),
		CatalogPath:        v.GetString(keyCatalogPath),
		HTTP: types.HTTPConfig{
			Timeout:   v.GetDuration(keyHTTPTimeout),
			UserAgent: v.GetString(keyHTTPUserAgent),
		},
		Extraction: types.ExtractionConfig{
			Backend: types.ExtractionBackend(v.GetString(keyExtractionBackend)),
			Image:   v.GetString(keyExtractionImage),
			Args:    stringList(v, keyExtractionArgs),
		},
		Classifier: types.ClassifierConfig{
			Languages: stringList(v, keyClassifierLangs),
		},
	}
}

// stringList reads a list setting. Environment variables carry lists as a
// single string, so each element is also split on commas.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, elem := range v.GetStringSlice(key) {
		for _, part := range strings.Split(elem, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
