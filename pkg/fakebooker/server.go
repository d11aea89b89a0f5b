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

// Package fakebooker is an in-memory implementation of the booking API so
// the suites can run without the public deployment.
package fakebooker

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bookerqa/restful-booker-e2e/pkg/generator"
)

const HeaderCorrelationID = "X-Correlation-Id"

var ErrInvalidOptions = errors.New("invalid options")

type Server struct {
	options Options
	store   *Store
	handler *Handler
	log     zerolog.Logger
}

// New creates a server and seeds its store with generated bookings.
func New(options Options, log zerolog.Logger) (*Server, error) {
	if options.TokenSecret == "" {
		return nil, fmt.Errorf("%w: token secret must be set", ErrInvalidOptions)
	}

	if options.TokenTTL <= 0 {
		return nil, fmt.Errorf("%w: token ttl must be positive", ErrInvalidOptions)
	}

	store := NewStore()

	g := generator.New(options.Seed)

	for range options.SeedBookings {
		if _, err := store.Create(g.RandomBooking()); err != nil {
			return nil, err
		}
	}

	s := &Server{
		options: options,
		store:   store,
		log:     log,
	}

	s.handler = NewHandler(&s.options, store, NewIssuer(options.TokenSecret, options.TokenTTL))

	return s, nil
}

func (s *Server) Store() *Store {
	return s.store
}

// Router returns the HTTP handler for the API.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(s.correlation)
	router.Use(s.accessLog)
	router.Use(middleware.Recoverer)

	router.Get("/ping", s.handler.Ping)
	router.Post("/auth", s.handler.CreateToken)

	router.Get("/booking", s.handler.ListBookings)
	router.Post("/booking", s.handler.CreateBooking)
	router.Get("/booking/{id}", s.handler.GetBooking)
	router.Put("/booking/{id}", s.handler.UpdateBooking)
	router.Patch("/booking/{id}", s.handler.PartialUpdateBooking)
	router.Delete("/booking/{id}", s.handler.DeleteBooking)

	return router
}

// correlation propagates or mints a correlation ID and attaches a request
// scoped logger to the context.
func (s *Server) correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderCorrelationID)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderCorrelationID, id)

		log := s.log.With().Str("correlationId", id).Logger()

		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		zerolog.Ctx(r.Context()).Info().
			Str("label", "incoming-request").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("code", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Float64("duration", time.Since(start).Seconds()).
			Msg("")
	})
}
