/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"time"
	"unicode/utf8"
)

// maxBodyInError bounds how much of a body is quoted in decode errors.
const maxBodyInError = 256

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
	// Request is the request as sent, its body has been consumed.
	Request     *http.Request
	TraceParent string
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		body := truncate(r.String(), maxBodyInError)

		return fmt.Errorf("decoding %d response %q (trace ID: %s): %w", r.StatusCode, body, r.TraceID(), err)
	}

	return nil
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n] + "..."
}

// String returns the body as text.
func (r *Response) String() string {
	return string(r.Body)
}

// IsJSON reports whether the content type is JSON, ignoring parameters.
func (r *Response) IsJSON() bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return mediaType == ContentTypeJSON
}

// TraceID identifies the request in service logs.
func (r *Response) TraceID() string {
	return extractTraceID(r.TraceParent)
}
