// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manual-extractor/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every URL in the input file and write the records",
	Long: `Run reads the input file line by line, normalizes each URL, downloads the
document unless it is already cached, extracts its text, classifies its
language, and writes all records to the output file at the end.

The first failing document stops the run; in that case no output file is
written. Cached documents are kept.`,
	RunE: runRun,
}

func init() {
	flags := runCmd.Flags()
	flags.String("input", "", "file with one PDF URL per line (default ./manual_urls.txt)")
	flags.String("cache-dir", "", "directory for downloaded PDFs (default ./downloaded_pdfs)")
	flags.String("output", "", "output file, overwritten on success (default ./pdf_data.json)")
	flags.String("format", "", "output format: json or yaml (default json)")
	flags.StringSlice("languages", nil, "language codes accepted in records (default de,en)")
	flags.String("catalog", "", "SQLite catalog to index the run into (disabled when empty)")
	flags.Duration("timeout", 0, "HTTP request timeout (default 60s)")
	flags.String("backend", "", "extraction backend: native or container (default native)")

	for key, flag := range map[string]string{
		keyInputFile:          "input",
		keyCacheDir:           "cache-dir",
		keyOutputPath:         "output",
		keyOutputFormat:       "format",
		keySupportedLanguages: "languages",
		keyCatalogPath:        "catalog",
		keyHTTPTimeout:        "timeout",
		keyExtractionBackend:  "backend",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	setDefaults(viper.GetViper())

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) (err error) {
	cfg := loadPipelineConfig(viper.GetViper())

	p, closeFn, err := pipeline.FromConfig(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closeWith(&err, closeFn, "closing catalog")

	if _, err := p.Run(cmd.Context()); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Output written to %s\n", cfg.OutputPath)
	return nil
}

// closeWith runs closeFn and reports its error through errp unless an
// earlier error is already there.
func closeWith(errp *error, closeFn func() error, what string) {
	if cerr := closeFn(); cerr != nil && *errp == nil {
		*errp = fmt.Errorf("%s: %w", what, cerr)
	}
}
