// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sds-collector/internal/catalog"
	"github.com/pdiddy/sds-collector/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the document catalog (list, stats, export)",
	Long: `Catalog inspects the SQLite record of document links seen by previous
collection runs. The catalog is informational; it is never used to decide
what to download.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently seen documents",
	RunE:  runCatalogList,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document counts by status",
	RunE:  runCatalogStats,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all catalog rows as YAML",
	RunE:  runCatalogExport,
}

func init() {
	catalogCmd.PersistentFlags().String("db", "sds-catalog.db", "catalog database path")
	catalogListCmd.Flags().Int("limit", 50, "maximum rows to list")

	catalogCmd.AddCommand(catalogListCmd, catalogStatsCmd, catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("db")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog database %s: %w", path, err)
	}
	return catalog.Open(path)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	docs, err := cat.List(limit)
	if err != nil {
		return err
	}

	for _, d := range docs {
		name := d.Filename
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s  page %-3d  %-40s  %s\n", d.Status, d.Page, name, d.URL)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d documents\n", len(docs))
	return nil
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()

	stats, err := cat.Stats()
	if err != nil {
		return err
	}

	statuses := make([]string, 0, len(stats))
	for s := range stats {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	total := 0
	for _, s := range statuses {
		n := stats[types.DocumentStatus(s)]
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d\n", s, n)
		total += n
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d\n", "total", total)
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()

	return cat.ExportYAML(cmd.OutOrStdout())
}
