// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the Kaggle API credentials used to authenticate.
//
// Credentials come from, in order: explicit values, the KAGGLE_USERNAME and
// KAGGLE_KEY environment variables, a .secrets/ directory of plain-text files
// (kaggle-username, kaggle-key), and finally a kaggle.json file.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Key file names read from a secrets directory.
const (
	UsernameFile = "kaggle-username"
	KeyFile      = "kaggle-key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, log logrus.FieldLogger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("secret", name).Warn("could not read secret")
			}
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}
	return out, nil
}
