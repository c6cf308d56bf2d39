// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DocumentStatus records the outcome of processing one document link.
type DocumentStatus string

const (
	// StatusDownloaded means the PDF was fetched and written to disk.
	StatusDownloaded DocumentStatus = "downloaded"

	// StatusSkipped means a file with the same name already existed.
	StatusSkipped DocumentStatus = "skipped"

	// StatusFailed means the HTTP download did not succeed.
	StatusFailed DocumentStatus = "failed"

	// StatusUnusable means the URL yields no usable filename.
	StatusUnusable DocumentStatus = "unusable"

	// StatusInvalid means the downloaded file failed PDF validation
	// and was removed.
	StatusInvalid DocumentStatus = "invalid"
)

// Document holds the catalog record for one SDS document link.
type Document struct {
	// URL is the source document link as returned by the search API.
	URL string `json:"url" yaml:"url"`

	// Filename is the sanitized local filename, empty when unusable.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`

	// Page is the 1-based search result page the link came from.
	Page int `json:"page" yaml:"page"`

	// Status is the processing outcome.
	Status DocumentStatus `json:"status" yaml:"status"`

	// PageCount is the validated PDF page count, zero until validation.
	PageCount int `json:"page_count,omitempty" yaml:"page_count,omitempty"`

	// SeenAt is when the link was last processed.
	SeenAt time.Time `json:"seen_at" yaml:"seen_at"`
}

// RunReport summarizes one collection run.
type RunReport struct {
	PagesFetched   int `json:"pages_fetched" yaml:"pages_fetched"`
	PagesFailed    int `json:"pages_failed" yaml:"pages_failed"`
	LinksFound     int `json:"links_found" yaml:"links_found"`
	Downloaded     int `json:"downloaded" yaml:"downloaded"`
	Skipped        int `json:"skipped" yaml:"skipped"`
	Failed         int `json:"failed" yaml:"failed"`
	Unusable       int `json:"unusable" yaml:"unusable"`
	Validated      int `json:"validated" yaml:"validated"`
	InvalidRemoved int `json:"invalid_removed" yaml:"invalid_removed"`
}

// Total returns the number of links processed.
func (r RunReport) Total() int {
	return r.Downloaded + r.Skipped + r.Failed + r.Unusable
}

// HasFailures reports whether any page fetch or download failed.
func (r RunReport) HasFailures() bool {
	return r.PagesFailed > 0 || r.Failed > 0
}
