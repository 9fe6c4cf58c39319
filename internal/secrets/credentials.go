// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

const configFileName = "kaggle.json"

// ErrNotFound is returned when no credential source yields a username and key.
var ErrNotFound = errors.New("kaggle credentials not found")

// Credentials identify a Kaggle account for basic auth.
type Credentials struct {
	Username string
	Key      string
	// Source names where the credentials came from ("explicit", "env",
	// "secrets", or the kaggle.json path).
	Source string
}

// Options controls where Resolve looks. Zero-valued fields fall back to the
// process environment and the user's home directory.
type Options struct {
	// Username and Key are explicit values (flags or config file). Both must
	// be set to take effect.
	Username string
	Key      string

	// Secrets is the map returned by Load.
	Secrets map[string]string

	// Getenv defaults to os.Getenv.
	Getenv func(string) string

	// ConfigDirs overrides the kaggle.json search path.
	ConfigDirs []string

	Log logrus.FieldLogger
}

// Resolve returns the first complete set of credentials.
func Resolve(opts Options) (Credentials, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if opts.Username != "" && opts.Key != "" {
		return Credentials{Username: opts.Username, Key: opts.Key, Source: "explicit"}, nil
	}
	if u, k := getenv("KAGGLE_USERNAME"), getenv("KAGGLE_KEY"); u != "" && k != "" {
		return Credentials{Username: u, Key: k, Source: "env"}, nil
	}
	if u, k := opts.Secrets[UsernameFile], opts.Secrets[KeyFile]; u != "" && k != "" {
		return Credentials{Username: u, Key: k, Source: "secrets"}, nil
	}

	dirs := opts.ConfigDirs
	if len(dirs) == 0 {
		dirs = DefaultConfigDirs(getenv)
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return readConfigFile(path, opts.Log)
	}

	return Credentials{}, fmt.Errorf("%w: looked for %s in %s, or set KAGGLE_USERNAME and KAGGLE_KEY",
		ErrNotFound, configFileName, strings.Join(dirs, ", "))
}

// DefaultConfigDirs lists the kaggle.json search path: $KAGGLE_CONFIG_DIR
// alone when set, otherwise ~/.kaggle then $XDG_CONFIG_HOME/kaggle.
func DefaultConfigDirs(getenv func(string) string) []string {
	if dir := getenv("KAGGLE_CONFIG_DIR"); dir != "" {
		return []string{dir}
	}
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".kaggle"))
	}
	return append(dirs, filepath.Join(xdg.ConfigHome, "kaggle"))
}

func readConfigFile(path string, log logrus.FieldLogger) (Credentials, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode().Perm()&0o077 != 0 && log != nil {
		log.WithField("path", path).Warnf("kaggle API key is readable by other users; run 'chmod 600 %s'", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg struct {
		Username string `json:"username"`
		Key      string `json:"key"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Credentials{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Username == "" {
		return Credentials{}, fmt.Errorf("missing username in configuration %s", path)
	}
	if cfg.Key == "" {
		return Credentials{}, fmt.Errorf("missing key in configuration %s", path)
	}
	return Credentials{Username: cfg.Username, Key: cfg.Key, Source: path}, nil
}
