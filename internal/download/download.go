// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download derives safe local filenames for SDS documents and
// streams the referenced PDFs to disk.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pdiddy/sds-collector/pkg/types"
)

// chunkSize is the copy buffer size for streaming downloads.
const chunkSize = 8192

// Fetch downloads the PDF at rawURL into cfg.OutputDir, creating the
// directory if needed. The filename is derived with SanitizeFilename; an
// unusable name skips the document without a network call, and an existing
// file of the same name skips the download entirely (at-most-once, no
// freshness check). HTTP and transport failures are handled here: they are
// logged as warnings and reported through the returned status. A non-nil
// error indicates an unexpected local failure the caller may want to back
// off from.
func Fetch(ctx context.Context, client *http.Client, rawURL string, cfg types.DownloadConfig, w io.Writer) (types.DocumentStatus, string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return types.StatusFailed, "", fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		fmt.Fprintf(w, "[WARNING] skipped download (unparseable url): %s\n", rawURL)
		return types.StatusUnusable, "", nil
	}

	name := SanitizeFilename(u.Path)
	if name == "" {
		fmt.Fprintf(w, "[WARNING] skipped download (unusable filename): %s\n", rawURL)
		return types.StatusUnusable, "", nil
	}

	savePath := filepath.Join(cfg.OutputDir, name)
	if _, err := os.Stat(savePath); err == nil {
		fmt.Fprintf(w, "[INFO] skipped download (file already exists): %s\n", savePath)
		return types.StatusSkipped, name, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		fmt.Fprintf(w, "[WARNING] failed to download PDF from %s: %v\n", rawURL, err)
		return types.StatusFailed, name, nil
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(w, "[WARNING] failed to download PDF from %s: %v\n", rawURL, err)
		return types.StatusFailed, name, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fmt.Fprintf(w, "[WARNING] failed to download PDF from %s: HTTP %d\n", rawURL, resp.StatusCode)
		return types.StatusFailed, name, nil
	}

	// Stream to a temp file and rename on success so a broken transfer
	// never leaves a truncated .pdf behind.
	tmpFile, err := os.CreateTemp(cfg.OutputDir, ".download-*.tmp")
	if err != nil {
		return types.StatusFailed, name, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	buf := make([]byte, chunkSize)
	_, copyErr := io.CopyBuffer(tmpFile, resp.Body, buf)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		fmt.Fprintf(w, "[WARNING] failed to download PDF from %s: %v\n", rawURL, copyErr)
		return types.StatusFailed, name, nil
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return types.StatusFailed, name, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, savePath); err != nil {
		os.Remove(tmpPath)
		return types.StatusFailed, name, fmt.Errorf("renaming temp file: %w", err)
	}

	fmt.Fprintf(w, "[SUCCESS] downloaded and saved PDF: %s\n", savePath)
	return types.StatusDownloaded, name, nil
}
