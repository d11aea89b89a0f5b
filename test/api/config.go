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
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/bookerqa/restful-booker-e2e/pkg/config"
)

type TestConfig struct {
	// Resolver is the source of the values below, kept for keys
	// without a typed field.
	Resolver *config.Resolver

	BaseURL           string
	Username          string
	Password          string
	RequestTimeout    time.Duration
	ConnectionTimeout time.Duration
	SocketTimeout     time.Duration
	LoggingEnabled    bool
	SchemaValidation  bool
	TokenCacheURL     string
	TokenTTL          time.Duration
	ReadyTimeout      time.Duration
	Seed              int64
	// MissingBookingMutationStatus is what the deployment returns for a
	// PUT or DELETE on an unknown id, the public deployment uses 405.
	MissingBookingMutationStatus int
}

// LoadTestConfig loads configuration from the properties file, environment
// variables and .env files.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	resolver, err := config.Load(config.DefaultPropertiesPaths...)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return NewTestConfig(resolver), nil
}

// NewTestConfig derives suite settings from a resolver.
func NewTestConfig(resolver *config.Resolver) *TestConfig {
	return &TestConfig{
		Resolver:                     resolver,
		BaseURL:                      resolver.BaseURL(),
		Username:                     resolver.Username(),
		Password:                     resolver.Password(),
		RequestTimeout:               resolver.RequestTimeout(),
		ConnectionTimeout:            resolver.ConnectionTimeout(),
		SocketTimeout:                resolver.SocketTimeout(),
		LoggingEnabled:               resolver.LoggingEnabled(),
		SchemaValidation:             resolver.SchemaValidation(),
		TokenCacheURL:                resolver.TokenCacheURL(),
		TokenTTL:                     getDurationWithDefault("TOKEN_TTL", 10*time.Minute),
		ReadyTimeout:                 getDurationWithDefault("READY_TIMEOUT", 2*time.Minute),
		Seed:                         getSeed(),
		MissingBookingMutationStatus: getIntWithDefault("MISSING_BOOKING_MUTATION_STATUS", 405),
	}
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getIntWithDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return value
}

// getSeed uses TEST_SEED when set so a failing run can be replayed, and
// ginkgo's random seed otherwise.
func getSeed() int64 {
	if seed, err := strconv.ParseInt(os.Getenv("TEST_SEED"), 10, 64); err == nil {
		return seed
	}

	suiteConfig, _ := ginkgo.GinkgoConfiguration()

	return suiteConfig.RandomSeed
}

func loadEnvFile() {
	config.LoadEnvFile(ginkgo.GinkgoLogr,
		".env",
		"../../../test/.env", // From test/api/suites directory
	)
}
