// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kaggle-fetch/internal/secrets"
	"github.com/pdiddy/kaggle-fetch/pkg/types"
)

const sampleCSV = "id,description\n1,Active classic boxers\n"

type requestLog struct {
	mu    sync.Mutex
	paths []string
}

func (l *requestLog) add(p string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, p)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.paths...)
}

func newAPIServer(t *testing.T, reqs *requestLog) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs.add(r.URL.Path)
		if u, k, ok := r.BasicAuth(); !ok || u != "alice" || k != "k3y" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/datasets/download/cclark/product-item-data/sample-data.csv":
			fmt.Fprint(w, sampleCSV)
		case "/datasets/list/cclark/product-item-data":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"datasetFiles":[{"name":"sample-data.csv","totalBytes":43}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setCredentials(t *testing.T, apiBase string) {
	t.Setenv("KAGGLE_FETCH_API_BASE", apiBase)
	t.Setenv("KAGGLE_USERNAME", "alice")
	t.Setenv("KAGGLE_KEY", "k3y")
}

func TestDownloadDefaults(t *testing.T) {
	var reqs requestLog
	ts := newAPIServer(t, &reqs)
	setCredentials(t, ts.URL)

	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "history.db")

	out, err := execute(t, "download", "--path", dir, "--ledger", db)
	require.NoError(t, err)
	assert.Contains(t, out, "saved: "+filepath.Join(dir, "sample-data.csv"))
	assert.Equal(t, []string{"/datasets/download/cclark/product-item-data/sample-data.csv"}, reqs.all())

	data, err := os.ReadFile(filepath.Join(dir, "sample-data.csv"))
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(data))

	out, err = execute(t, "history", "--ledger", db, "--format", "json")
	require.NoError(t, err)
	var recs []types.DownloadRecord
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "cclark/product-item-data", recs[0].Dataset)
	assert.Equal(t, int64(len(sampleCSV)), recs[0].Bytes)
}

func TestDownloadWithoutCredentialsMakesNoRequest(t *testing.T) {
	var reqs requestLog
	ts := newAPIServer(t, &reqs)
	t.Setenv("KAGGLE_FETCH_API_BASE", ts.URL)
	t.Setenv("KAGGLE_USERNAME", "")
	t.Setenv("KAGGLE_KEY", "")
	t.Setenv("KAGGLE_CONFIG_DIR", t.TempDir())

	_, err := execute(t, "download", "--path", t.TempDir(), "--no-history")
	require.ErrorIs(t, err, secrets.ErrNotFound)
	assert.Empty(t, reqs.all())
}

func TestDownloadMissingFileFails(t *testing.T) {
	var reqs requestLog
	ts := newAPIServer(t, &reqs)
	setCredentials(t, ts.URL)

	dir := t.TempDir()
	_, err := execute(t, "download", "cclark/product-item-data", "nope.csv", "--path", dir, "--no-history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFilesCommand(t *testing.T) {
	var reqs requestLog
	ts := newAPIServer(t, &reqs)
	setCredentials(t, ts.URL)

	out, err := execute(t, "files", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "sample-data.csv")
	assert.Contains(t, out, "43")

	out, err = execute(t, "files", "cclark/product-item-data", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: sample-data.csv")

	_, err = execute(t, "files", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "kaggle-fetch dev\n", out)
}
