package types

import "time"

// HTTPConfig holds the HTTP settings shared by every API call.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "kaggle-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the Kaggle API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIBase is the root of the Kaggle REST API
	// (default "https://www.kaggle.com/api/v1").
	APIBase string `json:"api_base" yaml:"api_base"`
}

// DownloadConfig holds settings for a single file download.
type DownloadConfig struct {
	// Path is the destination directory. Empty means the working directory.
	Path string `json:"path" yaml:"path"`

	// Force downloads the file even when the local copy is up to date.
	Force bool `json:"force" yaml:"force"`

	// Quiet suppresses per-file status lines.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// LedgerConfig holds settings for the local download history.
type LedgerConfig struct {
	// Path is the SQLite database file
	// (default $XDG_DATA_HOME/kaggle-fetch/history.db).
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default number of rows returned by a listing (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
