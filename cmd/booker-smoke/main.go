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
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"
	"github.com/bookerqa/restful-booker-e2e/pkg/client"
	"github.com/bookerqa/restful-booker-e2e/pkg/config"
	"github.com/bookerqa/restful-booker-e2e/pkg/generator"
	"github.com/bookerqa/restful-booker-e2e/pkg/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMismatch         = errors.New("booking mismatch")
)

type options struct {
	propertiesFile string
	baseURL        string
	username       string
	password       string
	timeout        time.Duration
	readyTimeout   time.Duration
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.propertiesFile, "properties", "", "Properties file to read, defaults to searching for config.properties.")
	f.StringVar(&o.baseURL, "base-url", "", "Base URL of the booking API.")
	f.StringVar(&o.username, "username", "", "Username used to obtain a token.")
	f.StringVar(&o.password, "password", "", "Password used to obtain a token.")
	f.DurationVar(&o.timeout, "timeout", 0, "Per request timeout.")
	f.DurationVar(&o.readyTimeout, "ready-timeout", time.Minute, "How long to wait for the API to answer its health check.")
}

// resolver loads configuration, with any flags given taking precedence over
// the environment and properties file.
func (o *options) resolver(f *pflag.FlagSet) (*config.Resolver, error) {
	paths := config.DefaultPropertiesPaths
	if o.propertiesFile != "" {
		paths = []string{o.propertiesFile}
	}

	r, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}

	if f.Changed("base-url") {
		r.Set(config.KeyBaseURL, o.baseURL)
	}

	if f.Changed("username") {
		r.Set(config.KeyUsername, o.username)
	}

	if f.Changed("password") {
		r.Set(config.KeyPassword, o.password)
	}

	if f.Changed("timeout") {
		r.Set(config.KeyRequestTimeout, strconv.FormatInt(o.timeout.Milliseconds(), 10))
	}

	return r, nil
}

type smoke struct {
	log       logr.Logger
	client    *client.Client
	validator *openapi.Validator
}

func (s *smoke) check(ctx context.Context, step string, resp *client.Response, err error, status int) error {
	if err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}

	if resp.StatusCode != status {
		return fmt.Errorf("%w: %s returned %d, expected %d (trace ID: %s)", ErrUnexpectedStatus, step, resp.StatusCode, status, resp.TraceID())
	}

	if s.validator != nil {
		if err := s.validator.ValidateResponse(ctx, resp.Request, resp.StatusCode, resp.Header, resp.Body); err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
	}

	s.log.Info("step passed", "step", step, "status", resp.StatusCode, "duration", resp.Duration)

	return nil
}

func (s *smoke) run(ctx context.Context, r *config.Resolver) error {
	resp, err := s.client.HealthCheck(ctx)
	if err := s.check(ctx, "health check", resp, err, http.StatusCreated); err != nil {
		return err
	}

	resp, err = s.client.CreateToken(ctx, booker.NewAuthRequest(r.Username(), r.Password()))
	if err := s.check(ctx, "create token", resp, err, http.StatusOK); err != nil {
		return err
	}

	var auth booker.AuthResponse
	if err := resp.DecodeJSON(&auth); err != nil {
		return err
	}

	if auth.Token == "" {
		return fmt.Errorf("%w: no token issued, reason %q", ErrUnexpectedStatus, auth.Reason)
	}

	payload := generator.NewRandom().RandomBooking()

	resp, err = s.client.CreateBooking(ctx, payload)
	if err := s.check(ctx, "create booking", resp, err, http.StatusOK); err != nil {
		return err
	}

	var created booker.BookingResponse
	if err := resp.DecodeJSON(&created); err != nil {
		return err
	}

	resp, err = s.client.GetBooking(ctx, created.BookingID)
	if err := s.check(ctx, "get booking", resp, err, http.StatusOK); err != nil {
		return err
	}

	var fetched booker.Booking
	if err := resp.DecodeJSON(&fetched); err != nil {
		return err
	}

	if !fetched.Equal(payload) {
		return fmt.Errorf("%w: booking %d", ErrMismatch, created.BookingID)
	}

	resp, err = s.client.DeleteBooking(ctx, created.BookingID, client.WithToken(auth.Token))
	if err := s.check(ctx, "delete booking", resp, err, http.StatusCreated); err != nil {
		return err
	}

	resp, err = s.client.GetBooking(ctx, created.BookingID)
	if err := s.check(ctx, "get deleted booking", resp, err, http.StatusNotFound); err != nil {
		return err
	}

	return nil
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	zapOptions := zap.Options{
		Development: true,
	}

	goflags := flag.NewFlagSet("zap", flag.ExitOnError)
	zapOptions.BindFlags(goflags)
	pflag.CommandLine.AddGoFlagSet(goflags)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("smoke")

	ctx := signals.SetupSignalHandler()

	config.LoadEnvFile(logger, ".env")

	r, err := o.resolver(pflag.CommandLine)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger.Info("smoke test starting", "baseURL", r.BaseURL(), "properties", r.Source())

	s := &smoke{
		log: logger,
		client: client.New(r.BaseURL(),
			client.WithTimeouts(r.RequestTimeout(), r.ConnectionTimeout(), r.SocketTimeout()),
			client.WithLogger(log.Log.WithName("client")),
			client.WithLogging(r.LoggingEnabled()),
		),
	}

	if r.SchemaValidation() {
		if s.validator, err = openapi.NewValidator(ctx); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	if err := s.client.WaitForReady(ctx, 2*time.Second, o.readyTimeout); err != nil {
		logger.Error(err, "service not ready")
		os.Exit(1)
	}

	if err := s.run(ctx, r); err != nil {
		logger.Error(err, "smoke test failed")
		os.Exit(1)
	}

	logger.Info("smoke test passed")
}
