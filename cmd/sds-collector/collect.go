// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sds-collector/internal/catalog"
	"github.com/pdiddy/sds-collector/internal/collect"
	"github.com/pdiddy/sds-collector/internal/secrets"
	"github.com/pdiddy/sds-collector/pkg/types"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run the full pipeline: fetch metadata, download PDFs, validate",
	Long: `Collect iterates the configured page range of the vendor search API,
downloads every linked PDF that is not already on disk, then validates all
PDFs under the output directory and removes corrupt ones. Per-page and
per-link failures are logged and skipped; the run always completes and
exits 0.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().String("output-dir", types.DefaultOutputDir, "directory PDFs are written to")
	collectCmd.Flags().String("endpoint", types.DefaultEndpoint, "SDS document search endpoint")
	collectCmd.Flags().Int("page-size", types.DefaultPageSize, "records requested per page")
	collectCmd.Flags().Int("first-page", types.DefaultFirstPage, "first result page (1-based, inclusive)")
	collectCmd.Flags().Int("last-page", types.DefaultLastPage, "last result page (inclusive)")
	collectCmd.Flags().Duration("timeout", types.DefaultTimeout, "HTTP request timeout")
	collectCmd.Flags().Duration("page-retry-delay", types.DefaultPageRetryDelay, "pause after a failed page fetch")
	collectCmd.Flags().Duration("link-retry-delay", types.DefaultLinkRetryDelay, "pause after an unexpected download error")
	collectCmd.Flags().String("catalog", "", "SQLite catalog path (empty disables recording)")
	collectCmd.Flags().String("report", "", "write a YAML run report to this path")

	rootCmd.AddCommand(collectCmd)
}

// collectConfig resolves the run configuration from defaults, the viper
// config file, and command flags, in increasing precedence.
func collectConfig(cmd *cobra.Command) types.CollectConfig {
	cfg := types.DefaultCollectConfig()

	if viper.IsSet("endpoint") {
		cfg.Fetch.Endpoint = viper.GetString("endpoint")
	}
	if viper.IsSet("page_size") {
		cfg.Fetch.PageSize = viper.GetInt("page_size")
	}
	if viper.IsSet("output_dir") {
		cfg.Download.OutputDir = viper.GetString("output_dir")
	}
	if viper.IsSet("first_page") {
		cfg.FirstPage = viper.GetInt("first_page")
	}
	if viper.IsSet("last_page") {
		cfg.LastPage = viper.GetInt("last_page")
	}
	if viper.IsSet("timeout") {
		cfg.Fetch.Timeout = viper.GetDuration("timeout")
		cfg.Download.Timeout = viper.GetDuration("timeout")
	}
	if viper.IsSet("catalog") {
		cfg.CatalogPath = viper.GetString("catalog")
	}

	if f := cmd.Flags(); f != nil {
		if f.Changed("endpoint") {
			cfg.Fetch.Endpoint, _ = f.GetString("endpoint")
		}
		if f.Changed("page-size") {
			cfg.Fetch.PageSize, _ = f.GetInt("page-size")
		}
		if f.Changed("output-dir") {
			cfg.Download.OutputDir, _ = f.GetString("output-dir")
		}
		if f.Changed("first-page") {
			cfg.FirstPage, _ = f.GetInt("first-page")
		}
		if f.Changed("last-page") {
			cfg.LastPage, _ = f.GetInt("last-page")
		}
		if f.Changed("timeout") {
			var d time.Duration
			d, _ = f.GetDuration("timeout")
			cfg.Fetch.Timeout = d
			cfg.Download.Timeout = d
		}
		if f.Changed("page-retry-delay") {
			cfg.PageRetryDelay, _ = f.GetDuration("page-retry-delay")
		}
		if f.Changed("link-retry-delay") {
			cfg.LinkRetryDelay, _ = f.GetDuration("link-retry-delay")
		}
		if f.Changed("catalog") {
			cfg.CatalogPath, _ = f.GetString("catalog")
		}
	}

	cfg.Fetch.APIKey = loadedSecrets[secrets.APIKeyName]
	return cfg
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := collectConfig(cmd)

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		var err error
		cat, err = catalog.Open(cfg.CatalogPath)
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	client := &http.Client{Timeout: cfg.Download.Timeout}
	report := collect.Run(context.Background(), client, cfg, cat, os.Stdout)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := collect.WriteReport(report, reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "[WARNING] %v\n", err)
		}
	}

	// Per-item failures are part of a completed run; the process exits 0.
	if report.HasFailures() {
		fmt.Fprintf(os.Stderr, "[WARNING] run finished with %d failed pages and %d failed downloads\n",
			report.PagesFailed, report.Failed)
	}
	return nil
}
