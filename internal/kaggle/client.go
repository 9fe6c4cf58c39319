// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kaggle is a minimal client for the Kaggle dataset API: credential
// authentication, dataset file listing, and single-file download.
package kaggle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/kaggle-fetch/internal/httputil"
	"github.com/pdiddy/kaggle-fetch/internal/secrets"
	"github.com/pdiddy/kaggle-fetch/pkg/types"
)

// DefaultAPIBase is the public Kaggle REST endpoint.
const DefaultAPIBase = "https://www.kaggle.com/api/v1"

// ErrNotAuthenticated is returned by API calls made before Authenticate.
var ErrNotAuthenticated = errors.New("kaggle client is not authenticated")

// Client talks to the Kaggle API. It is not safe for concurrent
// Authenticate calls.
type Client struct {
	http *http.Client
	cfg  types.ClientConfig
	log  logrus.FieldLogger
	auth httputil.Auth
}

// NewClient returns an unauthenticated client. A nil httpClient uses one
// with cfg.Timeout; a nil log discards diagnostics.
func NewClient(httpClient *http.Client, cfg types.ClientConfig, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Client{http: httpClient, cfg: cfg, log: log}
}

// Authenticate installs creds for subsequent calls. It does not contact the
// API; bad credentials surface as a 401 on the first request.
func (c *Client) Authenticate(creds secrets.Credentials) error {
	if creds.Username == "" {
		return fmt.Errorf("authenticate: missing username")
	}
	if creds.Key == "" {
		return fmt.Errorf("authenticate: missing key")
	}
	c.auth = httputil.Auth{Username: creds.Username, Password: creds.Key}
	c.log.WithFields(logrus.Fields{"user": creds.Username, "source": creds.Source}).Debug("authenticated")
	return nil
}

// Username returns the authenticated user, or "" before Authenticate.
func (c *Client) Username() string {
	return c.auth.Username
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if c.auth.Username == "" {
		return nil, ErrNotAuthenticated
	}
	req, err := httputil.NewRequest(ctx, http.MethodGet, url, c.cfg.UserAgent, c.auth)
	if err != nil {
		return nil, err
	}
	c.log.WithField("url", url).Debug("GET")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if err := httputil.CheckResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// listResponse is the datasets/list payload.
type listResponse struct {
	DatasetFiles  []types.DatasetFile `json:"datasetFiles"`
	ErrorMessage  string              `json:"errorMessage"`
	NextPageToken string              `json:"nextPageToken"`
}

// ListFiles returns every file in the dataset, following page tokens.
func (c *Client) ListFiles(ctx context.Context, ref DatasetRef) ([]types.DatasetFile, error) {
	var files []types.DatasetFile
	seen := map[string]bool{}
	token := ""
	for {
		resp, err := c.get(ctx, listURL(c.cfg.APIBase, ref, token))
		if err != nil {
			return nil, fmt.Errorf("listing files of %s: %w", ref, err)
		}

		var page listResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing file list of %s: %w", ref, err)
		}
		if page.ErrorMessage != "" {
			return nil, fmt.Errorf("listing files of %s: %s", ref, page.ErrorMessage)
		}

		files = append(files, page.DatasetFiles...)
		if page.NextPageToken == "" || seen[page.NextPageToken] {
			return files, nil
		}
		seen[page.NextPageToken] = true
		token = page.NextPageToken
	}
}
