// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package webclient

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// Maximum number of bytes of an error body which are included in an error message.
const maxErrorBodySize = 512

// StatusError is returned for responses which are not 2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("query returned error code %d (%s)", e.StatusCode, e.Body)
}

// IsServerError is true for 5xx responses, which may be retried.
func (e *StatusError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode <= 599
}

func ParseJsonResponse(resp *http.Response, v any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	m, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || m != "application/json" {
		return fmt.Errorf("invalid content type %s", resp.Header.Get("Content-Type"))
	}

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode json response: %w", err)
	}
	return nil
}
