// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the Kaggle API calls.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is read into memory.
const maxErrorBody = 64 << 10

// Auth carries HTTP basic auth credentials. A zero Auth sends no
// Authorization header.
type Auth struct {
	Username string
	Password string
}

// NewRequest builds a request bound to ctx with the User-Agent header and,
// when auth is non-zero, basic auth set.
func NewRequest(ctx context.Context, method, url, userAgent string, auth Auth) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if auth.Username != "" || auth.Password != "" {
		req.SetBasicAuth(auth.Username, auth.Password)
	}
	return req, nil
}

// StatusError is returned for any non-2xx API response.
type StatusError struct {
	StatusCode int
	// Message is the API's "message" field when the body was JSON,
	// otherwise the trimmed body text.
	Message string
	URL     string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if e.Message != "" {
		return fmt.Sprintf("%d - %s: %s", e.StatusCode, text, e.Message)
	}
	return fmt.Sprintf("%d - %s", e.StatusCode, text)
}

// CheckResponse returns nil for 2xx responses. For anything else it reads
// and closes the body and returns a *StatusError.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{StatusCode: resp.StatusCode}
	if resp.Request != nil && resp.Request.URL != nil {
		se.URL = resp.Request.URL.String()
	}

	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		se.Message = apiErr.Message
	} else if !strings.HasPrefix(strings.TrimSpace(resp.Header.Get("Content-Type")), "text/html") {
		se.Message = strings.TrimSpace(string(body))
	}
	return se
}
