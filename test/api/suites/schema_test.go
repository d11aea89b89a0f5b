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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"
	"github.com/bookerqa/restful-booker-e2e/pkg/client"
	"github.com/bookerqa/restful-booker-e2e/test/api"
)

var _ = Describe("Response Schema", func() {
	BeforeEach(func() {
		if !config.SchemaValidation {
			Skip("schema validation disabled")
		}
	})

	Context("When calling every operation successfully", func() {
		It("should return documents matching the API description", func() {
			token := suite.Token(ctx)
			payload := api.NewBookingPayload(generate).Build()

			resp, err := bookings.CreateBooking(ctx, payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			suite.ExpectSchemaValid(ctx, resp)

			var created booker.BookingResponse
			Expect(resp.DecodeJSON(&created)).To(Succeed())

			DeferCleanup(func(ctx SpecContext) {
				_, _ = bookings.DeleteBooking(ctx, created.BookingID, client.WithToken(suite.Token(ctx)))
			})

			calls := []struct {
				name   string
				status int
				call   func() (*client.Response, error)
			}{
				{"ping", http.StatusCreated, func() (*client.Response, error) { return bookings.HealthCheck(ctx) }},
				{"auth", http.StatusOK, func() (*client.Response, error) {
					return bookings.CreateToken(ctx, generate.ValidAuthRequest(config.Username, config.Password))
				}},
				{"bad auth", http.StatusOK, func() (*client.Response, error) {
					return bookings.CreateToken(ctx, generate.InvalidAuthRequest())
				}},
				{"list", http.StatusOK, func() (*client.Response, error) { return bookings.ListBookings(ctx, booker.BookingFilter{}) }},
				{"search", http.StatusOK, func() (*client.Response, error) {
					return bookings.ListBookings(ctx, booker.BookingFilter{FirstName: *payload.FirstName})
				}},
				{"get", http.StatusOK, func() (*client.Response, error) { return bookings.GetBooking(ctx, created.BookingID) }},
				{"put", http.StatusOK, func() (*client.Response, error) {
					return bookings.UpdateBooking(ctx, created.BookingID, api.FromBooking(payload).WithTotalPrice(999).Build(), client.WithToken(token))
				}},
				{"patch", http.StatusOK, func() (*client.Response, error) {
					return bookings.PartialUpdateBooking(ctx, created.BookingID, map[string]any{"depositpaid": false}, client.WithToken(token))
				}},
				{"delete", http.StatusCreated, func() (*client.Response, error) {
					return bookings.DeleteBooking(ctx, created.BookingID, client.WithToken(token))
				}},
			}

			for _, c := range calls {
				By(c.name)

				resp, err := c.call()
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(c.status), "%s: %s", c.name, resp.String())
				suite.ExpectSchemaValid(ctx, resp)
			}
		})
	})

	Context("When a response is checked against the wrong shape", func() {
		It("should report a violation", func() {
			resp, err := bookings.ListBookings(ctx, booker.BookingFilter{})
			Expect(err).NotTo(HaveOccurred())

			err = suite.Validator.ValidateResponse(ctx, resp.Request, resp.StatusCode, resp.Header, []byte(`{"bookingid": "not-a-list"}`))
			Expect(err).To(HaveOccurred())
		})
	})
})
