// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kaggle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatasetRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DatasetRef
		wantErr string
	}{
		{"owner and name", "cclark/product-item-data", DatasetRef{Owner: "cclark", Name: "product-item-data"}, ""},
		{"pinned version", "cclark/product-item-data/3", DatasetRef{Owner: "cclark", Name: "product-item-data", Version: 3}, ""},
		{"bare name uses default owner", "my-data", DatasetRef{Owner: "alice", Name: "my-data"}, ""},
		{"whitespace trimmed", "  cclark/x  ", DatasetRef{Owner: "cclark", Name: "x"}, ""},
		{"empty", "", DatasetRef{}, "owner/dataset-name"},
		{"empty owner", "/x", DatasetRef{}, "owner/dataset-name"},
		{"empty name", "cclark/", DatasetRef{}, "owner/dataset-name"},
		{"too many segments", "a/b/1/c", DatasetRef{}, "owner/dataset-name"},
		{"version not a number", "a/b/latest", DatasetRef{}, "positive integer"},
		{"version zero", "a/b/0", DatasetRef{}, "positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDatasetRef(tt.input, "alice")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDatasetRef_BareNameWithoutDefaultOwner(t *testing.T) {
	_, err := ParseDatasetRef("my-data", "")
	assert.Error(t, err)
}

func TestDatasetRefString(t *testing.T) {
	assert.Equal(t, "cclark/product-item-data", DatasetRef{Owner: "cclark", Name: "product-item-data"}.String())
	assert.Equal(t, "cclark/product-item-data/2", DatasetRef{Owner: "cclark", Name: "product-item-data", Version: 2}.String())
}

func TestDownloadURL(t *testing.T) {
	ref := DatasetRef{Owner: "cclark", Name: "product-item-data"}
	assert.Equal(t, "https://api.test/v1/datasets/download/cclark/product-item-data/sample-data.csv",
		downloadURL("https://api.test/v1/", ref, "sample-data.csv"))

	ref.Version = 4
	assert.Equal(t, "https://api.test/v1/datasets/download/cclark/product-item-data/my%20file.csv?datasetVersionNumber=4",
		downloadURL("https://api.test/v1", ref, "my file.csv"))
}

func TestListURL(t *testing.T) {
	ref := DatasetRef{Owner: "cclark", Name: "product-item-data"}
	assert.Equal(t, "https://api.test/v1/datasets/list/cclark/product-item-data", listURL("https://api.test/v1", ref, ""))
	assert.Equal(t, "https://api.test/v1/datasets/list/cclark/product-item-data?pageToken=abc", listURL("https://api.test/v1", ref, "abc"))
}

func TestSafeBase(t *testing.T) {
	tests := map[string]string{
		"sample-data.csv":        "sample-data.csv",
		"../../etc/passwd":       "passwd",
		`dir\evil.csv`:           "evil.csv",
		"/datasets/download/a/b": "b",
		"..":                     "",
		"":                       "",
		"/":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeBase(in), "safeBase(%q)", in)
	}
}
