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

// Package api provides integration test utilities for the booking API.
//
// # Separate Client Implementation
//
// The suites drive the service through the hand written orchestrator in
// pkg/client rather than a client generated from the OpenAPI description in
// pkg/openapi.  Responses are validated against that description instead, so
// the two act as a triangulation on API correctness: a legitimate change to
// the API needs a compensating change in both places.
//
// The orchestrator includes features tailored for integration testing:
//   - W3C trace context and correlation IDs on every request
//   - Error logging with trace IDs for debugging
//   - Direct access to HTTP status codes and response bodies
//
// # Fixtures
//
// Every scenario creates the bookings it needs and registers their deletion
// with DeferCleanup, so scenarios can run in any order or in parallel.  The
// token is obtained once per process by the Authenticator and shared across
// processes through the token cache when one is configured.
//
// # Running Locally
//
// Point BASE_URL at a running restful-booker-fake to run hermetically:
//
//	go run ./cmd/restful-booker-fake &
//	BASE_URL=http://localhost:3001 ginkgo -p ./test/api/suites
package api
