// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect runs the SDS collection pipeline: paginate the vendor
// search API, download every linked PDF, then validate the downloaded
// files and remove the corrupt ones. Execution is strictly sequential;
// every per-page and per-link error is logged and the unit of work
// abandoned after a fixed delay, so a run always completes its page plan.
package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sds-collector/internal/catalog"
	"github.com/pdiddy/sds-collector/internal/download"
	"github.com/pdiddy/sds-collector/internal/fetch"
	"github.com/pdiddy/sds-collector/internal/validate"
	"github.com/pdiddy/sds-collector/pkg/types"
)

// Run executes the full pipeline and returns the run summary. cat may be
// nil, in which case no catalog rows are written. Failures never abort the
// run; they are logged to w and counted in the report.
func Run(ctx context.Context, client *http.Client, cfg types.CollectConfig, cat *catalog.Catalog, w io.Writer) types.RunReport {
	var report types.RunReport

	for page := cfg.FirstPage; page <= cfg.LastPage; page++ {
		fmt.Fprintf(w, "[INFO] fetching SDS metadata (page %d)...\n", page)

		links, err := fetchLinks(ctx, client, page, cfg.Fetch)
		if err != nil {
			fmt.Fprintf(w, "[ERROR] failed to fetch or process page %d: %v\n", page, err)
			report.PagesFailed++
			time.Sleep(cfg.PageRetryDelay)
			continue
		}
		report.PagesFetched++
		report.LinksFound += len(links)
		fmt.Fprintf(w, "[INFO] found %d PDF links on page %d\n", len(links), page)

		for _, link := range links {
			status, name, err := download.Fetch(ctx, client, link, cfg.Download, w)
			if err != nil {
				// Distinct from the handled HTTP-failure path inside the
				// downloader: local filesystem trouble gets a longer pause.
				fmt.Fprintf(w, "[ERROR] unexpected error while downloading %s: %v\n", link, err)
				time.Sleep(cfg.LinkRetryDelay)
			}

			switch status {
			case types.StatusDownloaded:
				report.Downloaded++
			case types.StatusSkipped:
				report.Skipped++
			case types.StatusFailed:
				report.Failed++
			case types.StatusUnusable:
				report.Unusable++
			}

			recordDocument(cat, types.Document{
				URL:      link,
				Filename: name,
				Page:     page,
				Status:   status,
				SeenAt:   time.Now().UTC(),
			}, w)
		}
	}

	report.Validated, report.InvalidRemoved = ValidateDir(cfg.Download.OutputDir, cat, w)

	fmt.Fprintf(w, "\n[INFO] run complete: %d downloaded, %d skipped, %d failed, %d unusable (%d links, %d invalid removed)\n",
		report.Downloaded, report.Skipped, report.Failed, report.Unusable, report.Total(), report.InvalidRemoved)
	return report
}

// fetchLinks fetches one metadata page and extracts its document links.
func fetchLinks(ctx context.Context, client *http.Client, page int, cfg types.FetchConfig) ([]string, error) {
	body, err := fetch.Page(ctx, client, page, cfg)
	if err != nil {
		return nil, err
	}
	return fetch.ExtractLinks(body)
}

// ValidateDir checks every .pdf under dir, deletes the invalid ones, and
// emits a notice for surviving files with uppercase names. It returns the
// number of files that passed validation and the number removed. Problems
// are logged to w rather than returned; the pass is best-effort.
func ValidateDir(dir string, cat *catalog.Catalog, w io.Writer) (validated, removed int) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(w, "[ERROR] cannot access output directory %s: %v\n", dir, err)
		return 0, 0
	}

	paths, err := validate.ListPDFs(dir)
	if err != nil {
		fmt.Fprintf(w, "[ERROR] listing downloaded PDFs: %v\n", err)
		return 0, 0
	}
	fmt.Fprintf(w, "[INFO] validating %d downloaded PDFs...\n", len(paths))

	for _, path := range paths {
		name := filepath.Base(path)
		pages, ok := validate.CheckPDF(path, w)
		if !ok {
			fmt.Fprintf(w, "[WARNING] removing invalid PDF: %s\n", path)
			if err := os.Remove(path); err != nil {
				fmt.Fprintf(w, "[ERROR] could not remove %s: %v\n", path, err)
			}
			removed++
			if cat != nil {
				if err := cat.MarkInvalid(name); err != nil {
					fmt.Fprintf(w, "[WARNING] catalog update failed: %v\n", err)
				}
			}
			continue
		}

		validated++
		if cat != nil {
			if err := cat.SetPageCount(name, pages); err != nil {
				fmt.Fprintf(w, "[WARNING] catalog update failed: %v\n", err)
			}
		}
		if validate.HasUppercase(name) {
			fmt.Fprintf(w, "[NOTICE] filename contains uppercase letters (may cause issues): %s\n", path)
		}
	}
	return validated, removed
}

func recordDocument(cat *catalog.Catalog, doc types.Document, w io.Writer) {
	if cat == nil {
		return
	}
	if err := cat.Record(doc); err != nil {
		fmt.Fprintf(w, "[WARNING] catalog update failed: %v\n", err)
	}
}

// WriteReport writes the run summary to path as YAML.
func WriteReport(report types.RunReport, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report: %w", err)
	}
	return nil
}
