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

// Package config resolves suite settings from explicit overrides, the
// process environment and a properties file, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
)

const (
	KeyBaseURL           = "base.url"
	KeyRequestTimeout    = "request.timeout"
	KeyConnectionTimeout = "connection.timeout"
	KeySocketTimeout     = "socket.timeout"
	KeyLoggingEnabled    = "logging.enabled"
	KeyUsername          = "auth.username"
	KeyPassword          = "auth.password"
	KeyTokenCacheURL     = "token.cache.url"
	KeySchemaValidation  = "schema.validation"

	DefaultBaseURL        = "https://restful-booker.herokuapp.com"
	DefaultRequestTimeout = 30 * time.Second
	DefaultUsername       = "admin"
	DefaultPassword       = "password123"
)

// DefaultPropertiesPaths are searched by callers that do not name a file,
// relative to the package directories that run suites.
//
//nolint:gochecknoglobals
var DefaultPropertiesPaths = []string{
	"config.properties",
	"../config.properties",
	"../../config.properties",
	"../../../test/config.properties",
}

// Resolver looks up configuration values.  It is safe for concurrent use.
type Resolver struct {
	lock       sync.RWMutex
	overrides  map[string]string
	properties map[string]string
	source     string
}

// New returns a resolver with no properties file, only the environment
// and defaults apply.
func New() *Resolver {
	return &Resolver{
		overrides:  map[string]string{},
		properties: map[string]string{},
	}
}

// Load reads the first of paths that exists.  A missing file is not an error,
// one that exists but cannot be read or parsed is.
func Load(paths ...string) (*Resolver, error) {
	r := New()

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("failed to stat properties file %s: %w", path, err)
		}

		properties, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read properties file %s: %w", path, err)
		}

		r.properties = properties

		if abs, err := filepath.Abs(path); err == nil {
			r.source = abs
		} else {
			r.source = path
		}

		break
	}

	return r, nil
}

// Source returns the properties file that was loaded, if any.
func (r *Resolver) Source() string {
	return r.source
}

// EnvName maps a property key to its environment variable, base.url
// becomes BASE_URL.
func EnvName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Set overrides a key for the life of the resolver.
func (r *Resolver) Set(key, value string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.overrides[key] = value
}

// Get returns the value for key and whether any source defined it.
func (r *Resolver) Get(key string) (string, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if value, ok := r.overrides[key]; ok {
		return value, true
	}

	if value, ok := os.LookupEnv(EnvName(key)); ok {
		return value, true
	}

	value, ok := r.properties[key]

	return value, ok
}

// GetDefault returns the value for key, or def when no source defines it.
func (r *Resolver) GetDefault(key, def string) string {
	if value, ok := r.Get(key); ok {
		return value
	}

	return def
}

// getMillis reads a millisecond count, falling back to def when absent or
// not a positive integer.
func (r *Resolver) getMillis(key string, def time.Duration) time.Duration {
	value, ok := r.Get(key)
	if !ok {
		return def
	}

	millis, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || millis <= 0 {
		return def
	}

	return time.Duration(millis) * time.Millisecond
}

func (r *Resolver) getBool(key string, def bool) bool {
	value, ok := r.Get(key)
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}

	return b
}

func (r *Resolver) BaseURL() string {
	return strings.TrimRight(r.GetDefault(KeyBaseURL, DefaultBaseURL), "/")
}

func (r *Resolver) RequestTimeout() time.Duration {
	return r.getMillis(KeyRequestTimeout, DefaultRequestTimeout)
}

// ConnectionTimeout bounds dialing, it defaults to the request timeout.
func (r *Resolver) ConnectionTimeout() time.Duration {
	return r.getMillis(KeyConnectionTimeout, r.RequestTimeout())
}

// SocketTimeout bounds waiting for response headers, it defaults to the
// request timeout.
func (r *Resolver) SocketTimeout() time.Duration {
	return r.getMillis(KeySocketTimeout, r.RequestTimeout())
}

func (r *Resolver) LoggingEnabled() bool {
	return r.getBool(KeyLoggingEnabled, true)
}

func (r *Resolver) Username() string {
	return r.GetDefault(KeyUsername, DefaultUsername)
}

func (r *Resolver) Password() string {
	return r.GetDefault(KeyPassword, DefaultPassword)
}

// TokenCacheURL is a redis URL, empty selects an in-process cache.
func (r *Resolver) TokenCacheURL() string {
	return r.GetDefault(KeyTokenCacheURL, "")
}

func (r *Resolver) SchemaValidation() bool {
	return r.getBool(KeySchemaValidation, true)
}

// LoadEnvFile loads the first existing .env file into the process
// environment without replacing variables that are already set.  Not
// finding one is normal in CI where variables are set directly.
func LoadEnvFile(log logr.Logger, paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			log.Info("failed to load .env file", "path", path, "error", err.Error())
		}

		return
	}
}
