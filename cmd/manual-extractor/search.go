// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manual-extractor/internal/catalog"
	"github.com/pdiddy/manual-extractor/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the record catalog of past runs",
	Long: `Search looks up records in the SQLite catalog written by "run --catalog".
By default it searches the latest run; --run selects an earlier one and
--runs lists them.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("catalog", "", "SQLite catalog path (default: catalog_path from config)")
	searchCmd.Flags().String("language", "", "filter by language code")
	searchCmd.Flags().String("run", "", "run ID to search (default latest)")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = default 20)")
	searchCmd.Flags().Bool("runs", false, "list recorded runs instead of searching")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = viper.GetString(keyCatalogPath)
	}
	if path == "" {
		return fmt.Errorf("no catalog configured: pass --catalog or set catalog_path")
	}

	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if listRuns, _ := cmd.Flags().GetBool("runs"); listRuns {
		runs, err := store.Runs(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return encodeJSON(runs)
		}
		for _, r := range runs {
			fmt.Fprintf(os.Stdout, "%s  %s  %4d  %s\n",
				r.ID, r.CreatedAt.Local().Format(types.DateLayout), r.Documents, r.InputFile)
		}
		return nil
	}

	lang, _ := cmd.Flags().GetString("language")
	runID, _ := cmd.Flags().GetString("run")
	limit, _ := cmd.Flags().GetInt("limit")

	results, err := store.Search(cmd.Context(), catalog.QueryOptions{
		Query:      strings.Join(args, " "),
		Language:   lang,
		RunID:      runID,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}
	if jsonOutput {
		if results == nil {
			results = []types.DocumentRecord{}
		}
		return encodeJSON(results)
	}
	return formatSearchOutput(results)
}

func formatSearchOutput(results []types.DocumentRecord) error {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-4s  %-19s  %-60s  %s\n", "ID", "Lang", "Extracted", "URL", "Chars")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range results {
		url := r.URL
		if len(url) > 60 {
			url = "..." + url[len(url)-57:]
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-4s  %-19s  %-60s  %d\n",
			r.ID, r.Language, r.ExtractionDate, url, len(r.Text))
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func encodeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
