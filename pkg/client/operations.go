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
	"context"
	"net/http"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"
)

// RequestOption adds credentials or headers to a typed call.
type RequestOption func(r *Request)

// WithToken sends the token cookie.
func WithToken(token string) RequestOption {
	return func(r *Request) {
		r.WithCookie(TokenCookie, token)
	}
}

// WithBasicAuth sends HTTP basic credentials.
func WithBasicAuth(username, password string) RequestOption {
	return func(r *Request) {
		r.user = username
		r.pass = password
		r.basic = true
	}
}

// WithRequestHeader sets an arbitrary header.
func WithRequestHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.WithHeader(key, value)
	}
}

func (c *Client) request(opts []RequestOption) *Request {
	r := c.BaseRequest()

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// HealthCheck pings the service, a healthy service returns 201.
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	return c.BaseRequest().Send(ctx, http.MethodGet, c.endpoints.Ping())
}

// CreateToken exchanges credentials for a token.  Bad credentials are
// still a 200 with a reason in the body.
func (c *Client) CreateToken(ctx context.Context, credentials booker.AuthRequest) (*Response, error) {
	return c.BaseRequest().WithBody(credentials).Send(ctx, http.MethodPost, c.endpoints.Auth())
}

// ListBookings returns the ids of bookings matching the filter.
func (c *Client) ListBookings(ctx context.Context, filter booker.BookingFilter) (*Response, error) {
	return c.BaseRequest().WithQuery(filter).Send(ctx, http.MethodGet, c.endpoints.Bookings())
}

func (c *Client) GetBooking(ctx context.Context, id int, opts ...RequestOption) (*Response, error) {
	return c.request(opts).Send(ctx, http.MethodGet, c.endpoints.Booking(id))
}

func (c *Client) CreateBooking(ctx context.Context, booking booker.Booking, opts ...RequestOption) (*Response, error) {
	return c.request(opts).WithBody(booking).Send(ctx, http.MethodPost, c.endpoints.Bookings())
}

// UpdateBooking replaces every field of a booking.
func (c *Client) UpdateBooking(ctx context.Context, id int, booking booker.Booking, opts ...RequestOption) (*Response, error) {
	return c.request(opts).WithBody(booking).Send(ctx, http.MethodPut, c.endpoints.Booking(id))
}

// PartialUpdateBooking sends only the given fields, typically a map from
// the generator or a sparsely populated Booking.
func (c *Client) PartialUpdateBooking(ctx context.Context, id int, fields any, opts ...RequestOption) (*Response, error) {
	return c.request(opts).WithBody(fields).Send(ctx, http.MethodPatch, c.endpoints.Booking(id))
}

// DeleteBooking removes a booking, success is 201.
func (c *Client) DeleteBooking(ctx context.Context, id int, opts ...RequestOption) (*Response, error) {
	return c.request(opts).Send(ctx, http.MethodDelete, c.endpoints.Booking(id))
}
