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
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "restful-booker-e2e"
)

// Option configures a client.
type Option func(o *options)

type options struct {
	requestTimeout    time.Duration
	connectionTimeout time.Duration
	socketTimeout     time.Duration
	log               logr.Logger
	logging           bool
	transport         http.RoundTripper
	userAgent         string
}

func newOptions(opts ...Option) *options {
	o := &options{
		requestTimeout:    DefaultTimeout,
		connectionTimeout: DefaultTimeout,
		socketTimeout:     DefaultTimeout,
		log:               logr.Discard(),
		userAgent:         DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithTimeouts sets the whole request, dial and response header timeouts.
// Zero values leave the default in place.
func WithTimeouts(request, connection, socket time.Duration) Option {
	return func(o *options) {
		if request > 0 {
			o.requestTimeout = request
		}

		if connection > 0 {
			o.connectionTimeout = connection
		}

		if socket > 0 {
			o.socketTimeout = socket
		}
	}
}

func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithLogging toggles per request logging.  Failures are always logged.
func WithLogging(enabled bool) Option {
	return func(o *options) {
		o.logging = enabled
	}
}

// WithTransport replaces the HTTP transport, timeouts other than the
// request timeout are then the transport's concern.
func WithTransport(transport http.RoundTripper) Option {
	return func(o *options) {
		o.transport = transport
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}
