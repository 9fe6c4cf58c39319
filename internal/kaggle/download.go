// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kaggle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/kaggle-fetch/pkg/types"
)

// sniffLen is how many leading bytes are kept for content detection.
const sniffLen = 3072

// DownloadFile fetches one file from a dataset into cfg.Path. The response
// body is written verbatim; a zip served by the API stays a zip. When the
// local file is at least as new as the response's Last-Modified and
// cfg.Force is false, nothing is written and the record is marked Skipped.
// Status lines go to w unless cfg.Quiet is set.
func (c *Client) DownloadFile(ctx context.Context, ref DatasetRef, fileName string, cfg types.DownloadConfig, w io.Writer) (*types.DownloadRecord, error) {
	if fileName == "" {
		return nil, fmt.Errorf("download from %s: file name is required", ref)
	}
	if cfg.Quiet || w == nil {
		w = io.Discard
	}

	resp, err := c.get(ctx, downloadURL(c.cfg.APIBase, ref, fileName))
	if err != nil {
		return nil, fmt.Errorf("downloading %s from %s: %w", fileName, ref, err)
	}
	defer resp.Body.Close()

	dir := cfg.Path
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	outPath := filepath.Join(dir, outputName(resp, fileName))

	rec := &types.DownloadRecord{
		Dataset:   ref.String(),
		File:      fileName,
		Path:      outPath,
		SourceURL: resp.Request.URL.String(),
	}
	log := c.log.WithFields(logrus.Fields{"dataset": rec.Dataset, "file": fileName, "path": outPath})

	remoteMod, hasMod := lastModified(resp)
	if !cfg.Force && hasMod && upToDate(outPath, remoteMod) {
		log.Info("local copy is up to date")
		fmt.Fprintf(w, "skipped: %s (up to date)\n", outPath)
		rec.Skipped = true
		rec.At = time.Now().UTC()
		return rec, nil
	}

	fmt.Fprintf(w, "downloading: %s from %s\n", fileName, rec.Dataset)
	n, sum, sniff, err := writeAtomic(resp.Body, outPath)
	if err != nil {
		return nil, fmt.Errorf("downloading %s from %s: %w", fileName, ref, err)
	}
	if hasMod {
		if err := os.Chtimes(outPath, remoteMod, remoteMod); err != nil {
			log.WithError(err).Warn("could not set modification time")
		}
	}

	rec.Bytes = n
	rec.SHA256 = sum
	rec.MIMEType = mimetype.Detect(sniff).String()
	rec.At = time.Now().UTC()
	log.WithFields(logrus.Fields{"bytes": n, "mime": rec.MIMEType}).Info("saved")
	fmt.Fprintf(w, "saved: %s (%d bytes, %s)\n", outPath, n, rec.MIMEType)
	return rec, nil
}

// outputName picks the local file name: the Content-Disposition filename,
// then the last segment of the final request URL, then the requested name.
func outputName(resp *http.Response, requested string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := safeBase(params["filename"]); name != "" {
				return name
			}
		}
	}
	if resp.Request != nil && resp.Request.URL != nil {
		if name := safeBase(resp.Request.URL.Path); name != "" {
			return name
		}
	}
	if name := safeBase(requested); name != "" {
		return name
	}
	return "download"
}

func lastModified(resp *http.Response) (time.Time, bool) {
	v := resp.Header.Get("Last-Modified")
	if v == "" {
		return time.Time{}, false
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// upToDate reports whether path exists and is not older than remote.
func upToDate(path string, remote time.Time) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return !info.ModTime().Before(remote)
}

// prefixWriter keeps the first cap(buf) bytes written to it.
type prefixWriter struct {
	buf []byte
}

func (p *prefixWriter) Write(b []byte) (int, error) {
	if room := cap(p.buf) - len(p.buf); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		p.buf = append(p.buf, b[:room]...)
	}
	return len(b), nil
}

// writeAtomic streams r to a temp file next to destPath and renames it into
// place on success. It returns the byte count, hex SHA-256 and leading bytes.
func writeAtomic(r io.Reader, destPath string) (int64, string, []byte, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".kaggle-fetch-*.tmp")
	if err != nil {
		return 0, "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	h := sha256.New()
	sniff := &prefixWriter{buf: make([]byte, 0, sniffLen)}
	n, copyErr := io.Copy(io.MultiWriter(tmpFile, h, sniff), r)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, "", nil, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, "", nil, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, hex.EncodeToString(h.Sum(nil)), sniff.buf, nil
}
