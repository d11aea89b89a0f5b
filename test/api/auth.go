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

//go:generate mockgen -source=auth.go -destination=mock/interfaces.go -package=mock

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"
	"github.com/bookerqa/restful-booker-e2e/pkg/client"
	"github.com/bookerqa/restful-booker-e2e/pkg/tokencache"
)

var ErrAuthenticationFailed = errors.New("authentication failed")

// TokenSource exchanges credentials for a token, client.Client implements it.
type TokenSource interface {
	CreateToken(ctx context.Context, credentials booker.AuthRequest) (*client.Response, error)
}

type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticating
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Unauthenticated:
		return "Unauthenticated"
	case Authenticating:
		return "Authenticating"
	case Authenticated:
		return "Authenticated"
	}

	return fmt.Sprintf("AuthState(%d)", int(s))
}

type AuthenticatorOptions struct {
	Username string
	Password string
	// CacheKey scopes the shared token, typically to the base URL and user.
	CacheKey string
	// TTL is how long a cached token is trusted.
	TTL time.Duration
	Log logr.Logger
}

// Authenticator obtains a token once and hands it out until Reset.  A 403
// on a later call does not trigger re-authentication.
type Authenticator struct {
	lock       sync.Mutex
	source     TokenSource
	cache      tokencache.Store
	options    AuthenticatorOptions
	state      AuthState
	token      string
	bypassRead bool
}

func NewAuthenticator(source TokenSource, cache tokencache.Store, options AuthenticatorOptions) *Authenticator {
	return &Authenticator{
		source:  source,
		cache:   cache,
		options: options,
	}
}

// CacheKey derives a cache key for a deployment and user.
func CacheKey(baseURL, username string) string {
	return fmt.Sprintf("restful-booker:token:%s@%s", username, baseURL)
}

func (a *Authenticator) State() AuthState {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.state
}

// Reset drops the held token.  The next Token call authenticates against the
// service and overwrites the cached token.
func (a *Authenticator) Reset() {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.state = Unauthenticated
	a.token = ""
	a.bypassRead = true
}

// Token returns the held token, then a cached one, then a freshly issued one.
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.state == Authenticated && a.token != "" {
		return a.token, nil
	}

	a.state = Authenticating

	if !a.bypassRead {
		token, err := a.cache.Get(ctx, a.options.CacheKey)
		if err == nil && token != "" {
			a.authenticated(token)

			return token, nil
		}

		if err != nil && !errors.Is(err, tokencache.ErrNotFound) {
			a.options.Log.Info("token cache read failed", "error", err.Error())
		}
	}

	token, err := a.authenticate(ctx)
	if err != nil {
		a.state = Unauthenticated

		return "", err
	}

	if err := a.cache.Set(ctx, a.options.CacheKey, token, a.options.TTL); err != nil {
		a.options.Log.Info("token cache write failed", "error", err.Error())
	}

	a.authenticated(token)

	return token, nil
}

func (a *Authenticator) authenticated(token string) {
	a.token = token
	a.state = Authenticated
	a.bypassRead = false
}

func (a *Authenticator) authenticate(ctx context.Context) (string, error) {
	resp, err := a.source.CreateToken(ctx, booker.NewAuthRequest(a.options.Username, a.options.Password))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d (trace ID: %s)", ErrAuthenticationFailed, resp.StatusCode, resp.TraceID())
	}

	var auth booker.AuthResponse
	if err := resp.DecodeJSON(&auth); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	if auth.Token == "" {
		return "", fmt.Errorf("%w: no token issued, reason %q", ErrAuthenticationFailed, auth.Reason)
	}

	a.options.Log.Info("authenticated", "username", a.options.Username)

	return auth.Token, nil
}
