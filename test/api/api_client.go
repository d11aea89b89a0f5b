/*
Copyright 2024-2025 the Unikorn Authors.

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

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/bookerqa/restful-booker-e2e/pkg/client"
	"github.com/bookerqa/restful-booker-e2e/pkg/generator"
	"github.com/bookerqa/restful-booker-e2e/pkg/openapi"
	"github.com/bookerqa/restful-booker-e2e/pkg/tokencache"
)

// NewAPIClient returns an orchestrator configured from the suite settings,
// logging to the ginkgo writer.
func NewAPIClient(config *TestConfig) *client.Client {
	return client.New(config.BaseURL,
		client.WithTimeouts(config.RequestTimeout, config.ConnectionTimeout, config.SocketTimeout),
		client.WithLogger(ginkgo.GinkgoLogr.WithName("client")),
		client.WithLogging(config.LoggingEnabled),
	)
}

// Suite bundles everything a scenario needs.
type Suite struct {
	Config        *TestConfig
	Client        *client.Client
	Authenticator *Authenticator
	Generator     *generator.Generator
	Validator     *openapi.Validator
}

// NewSuite wires the suite together from configuration.
func NewSuite(ctx context.Context, config *TestConfig) (*Suite, error) {
	apiClient := NewAPIClient(config)

	cache, err := tokencache.New(config.TokenCacheURL)
	if err != nil {
		return nil, fmt.Errorf("creating token cache: %w", err)
	}

	validator, err := openapi.NewValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating schema validator: %w", err)
	}

	authenticator := NewAuthenticator(apiClient, cache, AuthenticatorOptions{
		Username: config.Username,
		Password: config.Password,
		CacheKey: CacheKey(config.BaseURL, config.Username),
		TTL:      config.TokenTTL,
		Log:      ginkgo.GinkgoLogr.WithName("auth"),
	})

	ginkgo.GinkgoWriter.Printf("Using %s with data seed %d\n", config.BaseURL, config.Seed)

	s := &Suite{
		Config:        config,
		Client:        apiClient,
		Authenticator: authenticator,
		Generator:     generator.New(config.Seed),
		Validator:     validator,
	}

	return s, nil
}

// WaitForReady blocks until the service answers its health check.
func (s *Suite) WaitForReady(ctx context.Context) error {
	return s.Client.WaitForReady(ctx, 2*time.Second, s.Config.ReadyTimeout)
}
