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

// createAdversarial sends a payload that may or may not be accepted, removing
// it again if it was.
func createAdversarial(payload booker.Booking) *client.Response {
	resp, err := bookings.CreateBooking(ctx, payload)
	Expect(err).NotTo(HaveOccurred())

	if resp.StatusCode == http.StatusOK {
		var created booker.BookingResponse
		Expect(resp.DecodeJSON(&created)).To(Succeed())

		DeferCleanup(func(ctx SpecContext) {
			_, _ = bookings.DeleteBooking(ctx, created.BookingID, client.WithToken(suite.Token(ctx)))
		})
	}

	return resp
}

var _ = Describe("Boundary Values", func() {
	Context("When creating bookings at date boundaries", func() {
		DescribeTable("should accept and round trip the booking",
			func(payload func() booker.Booking) {
				expected := payload()

				bookingID, _ := suite.CreateBookingWithCleanup(ctx, expected)
				api.VerifyBookingMatches(suite.GetBooking(ctx, bookingID), expected)
			},
			Entry("checking in and out on the same day", func() booker.Booking { return generate.BookingWithSameDates() }),
			Entry("with dates in the past", func() booker.Booking { return generate.BookingWithPastDates() }),
			Entry("with dates years ahead", func() booker.Booking { return generate.BookingWithFutureDates() }),
		)

		Describe("Given check out before check in", func() {
			It("should be handled without a server fault leaking markup", func() {
				api.VerifyHandledSafely(createAdversarial(generate.BookingWithInvalidDates()))
			})
		})
	})

	Context("When creating bookings at value boundaries", func() {
		Describe("Given only the required fields", func() {
			It("should accept the booking without additional needs", func() {
				expected := generate.MinimalBooking()

				bookingID, created := suite.CreateBookingWithCleanup(ctx, expected)
				Expect(created.AdditionalNeeds).To(BeNil())
				api.VerifyBookingMatches(suite.GetBooking(ctx, bookingID), expected)
			})
		})

		Describe("Given extreme values", func() {
			It("should preserve long strings and the largest price", func() {
				expected := generate.BookingWithExtremeValues()

				resp := createAdversarial(expected)
				api.VerifyHandledSafely(resp)

				if resp.StatusCode != http.StatusOK {
					Skip("deployment rejects extreme values")
				}

				var created booker.BookingResponse
				Expect(resp.DecodeJSON(&created)).To(Succeed())
				api.VerifyBookingMatches(created.Booking, expected)
			})
		})

		Describe("Given special characters", func() {
			It("should round trip accents, quotes and punctuation", func() {
				expected := generate.BookingWithSpecialCharacters()

				bookingID, _ := suite.CreateBookingWithCleanup(ctx, expected)
				api.VerifyBookingMatches(suite.GetBooking(ctx, bookingID), expected)
			})
		})
	})
})

var _ = Describe("Input Security", func() {
	Context("When payloads carry injection attempts", func() {
		Describe("Given SQL and script fragments", func() {
			It("should store them as plain data", func() {
				payload := generate.BookingWithSQLInjection()

				resp := createAdversarial(payload)
				api.VerifyHandledSafely(resp)

				if resp.StatusCode != http.StatusOK {
					return
				}

				var created booker.BookingResponse
				Expect(resp.DecodeJSON(&created)).To(Succeed())
				api.VerifyBookingMatches(suite.GetBooking(ctx, created.BookingID), payload)
			})

			It("should keep serving other bookings afterwards", func() {
				bookingID, expected := suite.CreateRandomBookingWithCleanup(ctx)

				api.VerifyHandledSafely(createAdversarial(generate.BookingWithSQLInjection()))
				api.VerifyBookingMatches(suite.GetBooking(ctx, bookingID), expected)
			})
		})

		Describe("Given injection in a search filter", func() {
			It("should not fail the search", func() {
				resp, err := bookings.ListBookings(ctx, booker.BookingFilter{FirstName: "' OR 1=1 --"})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(resp.IsJSON()).To(BeTrue())
			})
		})
	})

	Context("When the request body is malformed", func() {
		DescribeTable("should reject it",
			func(body string) {
				resp, err := bookings.BaseRequest().
					WithRawBody([]byte(body), client.ContentTypeJSON).
					Send(ctx, http.MethodPost, bookings.Endpoints().Bookings())
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(BeElementOf(http.StatusBadRequest, http.StatusInternalServerError))
				Expect(resp.Header.Get("Content-Type")).NotTo(ContainSubstring("text/html"))
			},
			Entry("truncated JSON", `{"firstname": "Jim", "lastname": `),
			Entry("a JSON array", `[1, 2, 3]`),
			Entry("wrongly typed fields", `{"firstname": 1, "lastname": true, "totalprice": "lots", "depositpaid": "yes", "bookingdates": []}`),
			Entry("not JSON at all", `firstname=Jim&lastname=Brown`),
		)
	})

	Context("When mutating with a tampered token", func() {
		It("should reject a token with its first character changed", func() {
			bookingID, expected := suite.CreateRandomBookingWithCleanup(ctx)

			token := suite.Token(ctx)
			replacement := "x"
			if token[0] == 'x' {
				replacement = "y"
			}

			tampered := replacement + token[1:]

			resp, err := bookings.DeleteBooking(ctx, bookingID, client.WithToken(tampered))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))

			api.VerifyBookingMatches(suite.GetBooking(ctx, bookingID), expected)
		})
	})
})
