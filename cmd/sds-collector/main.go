// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sds-collector CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sds-collector/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the sds-collector CLI.
var rootCmd = &cobra.Command{
	Use:   "sds-collector",
	Short: "Collect Safety Data Sheet PDFs from the vendor document API",
	Long: `sds-collector retrieves Safety Data Sheet metadata from the vendor
document search API page by page, downloads every linked PDF to local
storage, and validates the downloaded files, removing corrupt ones.

Each pipeline stage is also available as its own subcommand: fetch prints
the document links for a page range, validate re-runs the validation pass
over a directory, and catalog inspects the optional SQLite document
catalog.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sds-collector.yaml or ~/.config/sds-collector/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sds-collector")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sds-collector"))
		}
	}

	viper.SetEnvPrefix("SDS_COLLECTOR")
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
