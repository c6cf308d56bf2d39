// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sds-collector/internal/catalog"
	"github.com/pdiddy/sds-collector/internal/collect"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate downloaded PDFs and remove corrupt ones",
	Long: `Validate runs the validation pass over a directory (default: the
configured output directory): every .pdf is opened, files that cannot be
read or have no pages are deleted, and surviving files with uppercase
names get an informational notice.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("catalog", "", "SQLite catalog path to update (optional)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := collectConfig(cmd)
	dir := cfg.Download.OutputDir
	if len(args) == 1 {
		dir = args[0]
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("cannot access %s: %w", dir, err)
	}

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		var err error
		cat, err = catalog.Open(cfg.CatalogPath)
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	validated, removed := collect.ValidateDir(dir, cat, os.Stdout)
	fmt.Fprintf(os.Stdout, "[INFO] validation complete: %d valid, %d removed\n", validated, removed)
	return nil
}
