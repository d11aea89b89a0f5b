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

package fakebooker

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// Options control the fake service.  Defaults come from the environment so
// the same binary works in a container and on the command line.
type Options struct {
	Port         int
	Username     string
	Password     string
	Seed         int64
	SeedBookings int
	TokenSecret  string
	TokenTTL     time.Duration
}

func envString(key, def string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return def
}

func envInt(key string, def int) int {
	value, err := strconv.Atoi(envString(key, ""))
	if err != nil {
		return def
	}

	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	value, err := time.ParseDuration(envString(key, ""))
	if err != nil {
		return def
	}

	return value
}

// DefaultOptions returns options from the environment, falling back to
// built in defaults.
func DefaultOptions() Options {
	return Options{
		Port:         envInt("PORT", 3001),
		Username:     "admin",
		Password:     "password123",
		Seed:         int64(envInt("FAKE_SEED", 1)),
		SeedBookings: envInt("FAKE_SEED_BOOKINGS", 10),
		TokenSecret:  envString("FAKE_TOKEN_SECRET", "restful-booker-fake"),
		TokenTTL:     envDuration("FAKE_TOKEN_TTL", time.Hour),
	}
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	d := DefaultOptions()

	f.IntVar(&o.Port, "port", d.Port, "Port to listen on")
	f.StringVar(&o.Username, "username", d.Username, "Username accepted by the auth endpoint")
	f.StringVar(&o.Password, "password", d.Password, "Password accepted by the auth endpoint")
	f.Int64Var(&o.Seed, "seed", d.Seed, "Seed for generated bookings")
	f.IntVar(&o.SeedBookings, "seed-bookings", d.SeedBookings, "Number of bookings to create at start up")
	f.StringVar(&o.TokenSecret, "token-secret", d.TokenSecret, "HMAC secret used to sign tokens")
	f.DurationVar(&o.TokenTTL, "token-ttl", d.TokenTTL, "Lifetime of issued tokens")
}
