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

// Package client is a thin HTTP orchestrator for the booking API.  It
// never retries and never turns a status code into an error, scenarios
// assert on the returned Response.
package client

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	HeaderTraceParent   = "Traceparent"
	HeaderTraceState    = "Tracestate"
	HeaderCorrelationID = "X-Correlation-Id"
)

type Client struct {
	baseURL   string
	client    *http.Client
	endpoints *Endpoints
	log       logr.Logger
	logging   bool
	userAgent string
}

func New(baseURL string, opts ...Option) *Client {
	o := newOptions(opts...)

	transport := o.transport
	if transport == nil {
		transport = newTransport(o.connectionTimeout, o.socketTimeout)
	}

	if o.logging {
		transport = &loggingTransport{
			transport: transport,
			log:       o.log,
		}
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout:   o.requestTimeout,
			Transport: transport,
		},
		endpoints: NewEndpoints(),
		log:       o.log,
		logging:   o.logging,
		userAgent: o.userAgent,
	}
}

func newTransport(connection, socket time.Duration) *http.Transport {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		transport = &http.Transport{}
	}

	transport = transport.Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connection,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = connection
	transport.ResponseHeaderTimeout = socket

	return transport
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Endpoints() *Endpoints {
	return c.endpoints
}

// loggingTransport logs one line per round trip.
type loggingTransport struct {
	transport http.RoundTripper
	log       logr.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.transport.RoundTrip(req)

	values := []any{
		"method", req.Method,
		"url", req.URL.String(),
		"duration", time.Since(start).String(),
		"traceID", extractTraceID(req.Header.Get(HeaderTraceParent)),
	}

	if err != nil {
		t.log.Error(err, "outgoing request failed", values...)

		return nil, err
	}

	t.log.Info("outgoing request", append(values, "status", resp.StatusCode)...)

	return resp, nil
}

// generateTraceID creates a new W3C trace ID, one per request so a failure
// can be found in the service logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}
