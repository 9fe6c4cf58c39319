package types

import "time"

// DatasetFile describes one file published in a dataset version.
type DatasetFile struct {
	// Name is the file name within the dataset (e.g. "sample-data.csv").
	Name string `json:"name" yaml:"name"`

	// TotalBytes is the uncompressed size reported by the API.
	TotalBytes int64 `json:"totalBytes" yaml:"total_bytes"`

	// CreationDate is when the file was uploaded.
	CreationDate string `json:"creationDate" yaml:"creation_date"`
}

// DownloadRecord is the outcome of one file download request.
type DownloadRecord struct {
	// ID is the ledger row id; zero until recorded.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// Dataset is the dataset reference as "owner/name" or "owner/name/version".
	Dataset string `json:"dataset" yaml:"dataset"`

	// File is the requested file name.
	File string `json:"file" yaml:"file"`

	// Path is the local filesystem path of the artifact.
	Path string `json:"path" yaml:"path"`

	// SourceURL is the final URL the bytes were served from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Bytes is the number of bytes written. Zero when skipped.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// SHA256 is the hex digest of the written bytes. Empty when skipped.
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`

	// MIMEType is the sniffed content type (e.g. "text/csv", "application/zip").
	MIMEType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`

	// Skipped reports that the local copy was up to date and nothing was written.
	Skipped bool `json:"skipped" yaml:"skipped"`

	// At is when the request completed.
	At time.Time `json:"at" yaml:"at"`
}
