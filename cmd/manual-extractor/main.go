// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the manual-extractor CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// configName is the base name of the config file searched in the working
// directory and in ~/.config/manual-extractor.
const configName = "manual-extractor"

var configUsage = fmt.Sprintf("config file (default: ./%[1]s.yaml or ~/.config/manual-extractor/%[1]s.yaml)", configName)

// rootCmd is the base command for the manual-extractor CLI.
var rootCmd = &cobra.Command{
	Use:   "manual-extractor",
	Short: "Build a text corpus from PDF manuals",
	Long: `manual-extractor reads a list of PDF manual URLs, downloads each document
into a local cache, extracts its text, detects its language, and writes one
record per document to a JSON file.

Settings come from flags, MANUAL_EXTRACTOR_* environment variables (a .env
file in the working directory is loaded first), and manual-extractor.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", configUsage)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "manual-extractor"))
		}
	}

	viper.SetEnvPrefix("MANUAL_EXTRACTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
