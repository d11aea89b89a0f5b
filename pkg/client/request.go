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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

const (
	ContentTypeJSON = "application/json"

	// TokenCookie carries the auth token on mutating requests.
	TokenCookie = "token"
)

// Request accumulates headers, cookies, query and body for one call.  The
// first builder error is held and returned by Send.
type Request struct {
	client  *Client
	header  http.Header
	cookies []*http.Cookie
	query   url.Values
	body    []byte
	user    string
	pass    string
	basic   bool
	err     error
}

// BaseRequest sends and accepts JSON.
func (c *Client) BaseRequest() *Request {
	header := http.Header{}
	header.Set("Content-Type", ContentTypeJSON)
	header.Set("Accept", ContentTypeJSON)

	return &Request{
		client: c,
		header: header,
		query:  url.Values{},
	}
}

// AuthenticatedRequest is a base request carrying the token cookie.
func (c *Client) AuthenticatedRequest(token string) *Request {
	return c.BaseRequest().WithCookie(TokenCookie, token)
}

// BasicAuthRequest is a base request with HTTP basic credentials.
func (c *Client) BasicAuthRequest(username, password string) *Request {
	r := c.BaseRequest()
	r.user = username
	r.pass = password
	r.basic = true

	return r
}

// WithBody sets a JSON encoded body.
func (r *Request) WithBody(body any) *Request {
	data, err := json.Marshal(body)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("marshaling request body: %w", err)
	}

	r.body = data

	return r
}

// WithRawBody sends data as is, an empty content type removes the header.
func (r *Request) WithRawBody(data []byte, contentType string) *Request {
	r.body = data

	if contentType == "" {
		r.header.Del("Content-Type")
	} else {
		r.header.Set("Content-Type", contentType)
	}

	return r
}

// WithQuery adds parameters from a struct with url tags.
func (r *Request) WithQuery(params any) *Request {
	values, err := query.Values(params)
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("encoding query: %w", err)
		}

		return r
	}

	for key, list := range values {
		for _, value := range list {
			r.query.Add(key, value)
		}
	}

	return r
}

func (r *Request) WithHeader(key, value string) *Request {
	r.header.Set(key, value)

	return r
}

func (r *Request) WithCookie(name, value string) *Request {
	r.cookies = append(r.cookies, &http.Cookie{
		Name:  name,
		Value: value,
	})

	return r
}

func (r *Request) WithoutAccept() *Request {
	r.header.Del("Accept")

	return r
}

// Send issues the request.  A non-nil error means no response was received,
// any status code is returned in the Response.
func (r *Request) Send(ctx context.Context, method, path string) (*Response, error) {
	if r.err != nil {
		return nil, r.err
	}

	c := r.client

	fullURL := c.baseURL + path
	if len(r.query) > 0 {
		fullURL += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header = r.header.Clone()

	if r.body == nil && req.Header.Get("Content-Type") == ContentTypeJSON {
		req.Header.Del("Content-Type")
	}

	traceParent := createTraceParent()
	req.Header.Set(HeaderTraceParent, traceParent)
	req.Header.Set(HeaderTraceState, "test-automation=ginkgo")
	req.Header.Set(HeaderCorrelationID, uuid.NewString())
	req.Header.Set("User-Agent", c.userAgent)

	for _, cookie := range r.cookies {
		req.AddCookie(cookie)
	}

	if r.basic {
		req.SetBasicAuth(r.user, r.pass)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.log.Error(err, "http request failed", "method", method, "path", path, "duration", duration.String(), "traceID", extractTraceID(traceParent))

		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error(err, "reading response body", "method", method, "path", path, "status", resp.StatusCode, "traceID", extractTraceID(traceParent))

		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.logging && len(respBody) > 0 {
		c.log.V(1).Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	response := &Response{
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		Body:        respBody,
		Duration:    duration,
		Request:     req,
		TraceParent: traceParent,
	}

	return response, nil
}
