// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sds-collector/internal/fetch"
	"github.com/pdiddy/sds-collector/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [pages...]",
	Short: "Fetch metadata pages and print the extracted document links",
	Long: `Fetch queries the vendor search API for the given page numbers (or the
configured page range when none are given) and prints every extracted
document link to stdout, one per line. Nothing is downloaded.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("endpoint", types.DefaultEndpoint, "SDS document search endpoint")
	fetchCmd.Flags().Int("page-size", types.DefaultPageSize, "records requested per page")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := collectConfig(cmd)

	var pages []int
	for _, arg := range args {
		p, err := strconv.Atoi(arg)
		if err != nil || p < 1 {
			return fmt.Errorf("invalid page number %q", arg)
		}
		pages = append(pages, p)
	}
	if len(pages) == 0 {
		for p := cfg.FirstPage; p <= cfg.LastPage; p++ {
			pages = append(pages, p)
		}
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	for _, page := range pages {
		body, err := fetch.Page(context.Background(), client, page, cfg.Fetch)
		if err != nil {
			return fmt.Errorf("fetching page %d: %w", page, err)
		}
		links, err := fetch.ExtractLinks(body)
		if err != nil {
			return fmt.Errorf("processing page %d: %w", page, err)
		}
		for _, link := range links {
			fmt.Fprintln(cmd.OutOrStdout(), link)
		}
	}
	return nil
}
