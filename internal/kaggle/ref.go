// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kaggle

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// DatasetRef identifies a dataset, optionally pinned to a version.
type DatasetRef struct {
	Owner string
	Name  string
	// Version is the dataset version number; zero means latest.
	Version int
}

// String renders the reference as "owner/name" or "owner/name/version".
func (r DatasetRef) String() string {
	if r.Version > 0 {
		return fmt.Sprintf("%s/%s/%d", r.Owner, r.Name, r.Version)
	}
	return r.Owner + "/" + r.Name
}

// ParseDatasetRef parses "owner/name", "owner/name/version", or a bare
// "name" which is owned by defaultOwner.
func ParseDatasetRef(s, defaultOwner string) (DatasetRef, error) {
	s = strings.TrimSpace(s)
	invalid := fmt.Errorf("invalid dataset %q: dataset must be specified in the form owner/dataset-name", s)
	if s == "" {
		return DatasetRef{}, invalid
	}

	parts := strings.Split(s, "/")
	var ref DatasetRef
	switch len(parts) {
	case 1:
		ref = DatasetRef{Owner: defaultOwner, Name: parts[0]}
	case 2:
		ref = DatasetRef{Owner: parts[0], Name: parts[1]}
	case 3:
		v, err := strconv.Atoi(parts[2])
		if err != nil || v <= 0 {
			return DatasetRef{}, fmt.Errorf("invalid dataset %q: version must be a positive integer", s)
		}
		ref = DatasetRef{Owner: parts[0], Name: parts[1], Version: v}
	default:
		return DatasetRef{}, invalid
	}

	if ref.Owner == "" || ref.Name == "" {
		return DatasetRef{}, invalid
	}
	return ref, nil
}

// downloadURL returns the single-file download endpoint for ref.
func downloadURL(base string, ref DatasetRef, fileName string) string {
	u := strings.TrimRight(base, "/") + "/datasets/download/" +
		url.PathEscape(ref.Owner) + "/" + url.PathEscape(ref.Name) + "/" + url.PathEscape(fileName)
	if ref.Version > 0 {
		u += "?datasetVersionNumber=" + strconv.Itoa(ref.Version)
	}
	return u
}

// listURL returns the file listing endpoint for ref and an optional page token.
func listURL(base string, ref DatasetRef, pageToken string) string {
	u := strings.TrimRight(base, "/") + "/datasets/list/" +
		url.PathEscape(ref.Owner) + "/" + url.PathEscape(ref.Name)
	q := url.Values{}
	if ref.Version > 0 {
		q.Set("datasetVersionNumber", strconv.Itoa(ref.Version))
	}
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// safeBase returns the final element of name if it is usable as a local
// file name, or "" otherwise.
func safeBase(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	base := path.Base(name)
	if base == "." || base == ".." || base == "/" || base == "" {
		return ""
	}
	return base
}
