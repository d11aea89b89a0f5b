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

// Package tokencache shares authentication tokens between suite processes.
package tokencache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("token not found in cache")

// Store is a string key/value cache with expiry.
type Store interface {
	// Get returns ErrNotFound for an absent or expired key.
	Get(ctx context.Context, key string) (string, error)
	// Set stores a value, a zero ttl never expires.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// New returns a redis backed store when url is set, otherwise a memory store.
func New(url string) (Store, error) {
	if url == "" {
		return NewMemory(), nil
	}

	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token cache url: %w", err)
	}

	return NewRedis(redis.NewClient(options)), nil
}

type entry struct {
	value   string
	expires time.Time
}

// Memory is a process local store.
type Memory struct {
	lock    sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

var _ Store = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		entries: map[string]entry{},
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}

	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)

		return "", ErrNotFound
	}

	return e.value, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	e := entry{
		value: value,
	}

	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}

	m.entries[key] = e

	return nil
}

// Redis stores tokens in a shared redis instance.
type Redis struct {
	redis *redis.Client
}

var _ Store = &Redis{}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		redis: client,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("failed to get token from cache: %w", err)
	}

	return value, nil
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var err error

	if ttl > 0 {
		err = r.redis.SetEx(ctx, key, value, ttl).Err()
	} else {
		err = r.redis.Set(ctx, key, value, 0).Err()
	}

	if err != nil {
		return fmt.Errorf("failed to store token in cache: %w", err)
	}

	return nil
}
