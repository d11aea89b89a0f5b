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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/bookerqa/restful-booker-e2e/pkg/fakebooker"
)

const shutdownTimeout = 10 * time.Second

func newLogger(level string) zerolog.Logger {
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		l = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).Level(l).With().Timestamp().Str("service", "restful-booker-fake").Logger()
}

func serve(httpServer *http.Server, logger *zerolog.Logger) int {
	done := make(chan error, 1)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Msg("Listening on address " + httpServer.Addr)

		done <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-done:
		logger.Error().Err(err).Msg("Server failed")

		return 1
	case <-stop:
	}

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Shutdown failed")

		return 1
	}

	if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("Server failed")

		return 1
	}

	return 0
}

func main() {
	// Loaded before flags are registered so the environment feeds the defaults.
	_ = godotenv.Load(".env")

	options := fakebooker.DefaultOptions()

	options.AddFlags(pflag.CommandLine)

	pflag.Parse()

	logger := newLogger(os.Getenv("LOG_LEVEL"))

	server, err := fakebooker.New(options, logger)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger.Info().Int("bookings", server.Store().Len()).Int64("seed", options.Seed).Msg("store seeded")

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", options.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	os.Exit(serve(httpServer, &logger))
}
