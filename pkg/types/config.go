// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Default values mirror the original collection constants.
const (
	DefaultEndpoint  = "https://api.cytivalifesciences.com/ap-doc-search/v1/sds-document"
	DefaultPageSize  = 5000
	DefaultFirstPage = 1
	DefaultLastPage  = 5
	DefaultOutputDir = "./PDFs"
	DefaultUserAgent = "sds-collector/0.1"

	DefaultTimeout        = 60 * time.Second
	DefaultPageRetryDelay = 10 * time.Second
	DefaultLinkRetryDelay = 30 * time.Second
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "sds-collector/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the metadata fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the SDS document search endpoint.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// PageSize is the number of records requested per page.
	PageSize int `json:"page_size" yaml:"page_size"`

	// APIKey is an optional vendor API key sent as X-Api-Key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir is the directory PDFs are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// CollectConfig groups the stage configurations for a collection run.
type CollectConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Download DownloadConfig `json:"download" yaml:"download"`

	// FirstPage and LastPage bound the inclusive page range.
	FirstPage int `json:"first_page" yaml:"first_page"`
	LastPage  int `json:"last_page" yaml:"last_page"`

	// PageRetryDelay is the pause after a failed page fetch before moving on.
	PageRetryDelay time.Duration `json:"page_retry_delay" yaml:"page_retry_delay"`

	// LinkRetryDelay is the pause after an unexpected download error.
	LinkRetryDelay time.Duration `json:"link_retry_delay" yaml:"link_retry_delay"`

	// CatalogPath is the SQLite catalog location. Empty disables recording.
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"`
}

// DefaultCollectConfig returns a CollectConfig with every field set to the
// original collection defaults.
func DefaultCollectConfig() CollectConfig {
	return CollectConfig{
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent},
			Endpoint:   DefaultEndpoint,
			PageSize:   DefaultPageSize,
		},
		Download: DownloadConfig{
			HTTPConfig: HTTPConfig{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent},
			OutputDir:  DefaultOutputDir,
		},
		FirstPage:      DefaultFirstPage,
		LastPage:       DefaultLastPage,
		PageRetryDelay: DefaultPageRetryDelay,
		LinkRetryDelay: DefaultLinkRetryDelay,
	}
}
