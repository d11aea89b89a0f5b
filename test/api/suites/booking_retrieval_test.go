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
	"github.com/bookerqa/restful-booker-e2e/test/api"
)

var _ = Describe("Booking Retrieval", func() {
	Context("When listing bookings", func() {
		Describe("Given at least one booking exists", func() {
			var bookingID int

			BeforeEach(func() {
				bookingID, _ = suite.CreateRandomBookingWithCleanup(ctx)
			})

			It("should return booking identifiers", func() {
				resp, err := bookings.ListBookings(ctx, booker.BookingFilter{})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(resp.IsJSON()).To(BeTrue())

				var ids []booker.BookingIdentifier
				Expect(resp.DecodeJSON(&ids)).To(Succeed())
				Expect(ids).NotTo(BeEmpty())

				api.VerifyBookingPresence(booker.BookingIDs(ids), bookingID)
				suite.ExpectSchemaValid(ctx, resp)
			})

			It("should respond within the request timeout", func() {
				resp, err := bookings.ListBookings(ctx, booker.BookingFilter{})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Duration).To(BeNumerically("<", config.RequestTimeout))
			})
		})
	})

	Context("When retrieving a specific booking", func() {
		Describe("Given the booking exists", func() {
			It("should return every field", func() {
				bookingID, payload := suite.CreateRandomBookingWithCleanup(ctx)

				booking := suite.GetBooking(ctx, bookingID)

				Expect(booking.FirstName).NotTo(BeNil())
				Expect(booking.LastName).NotTo(BeNil())
				Expect(booking.TotalPrice).NotTo(BeNil())
				Expect(booking.DepositPaid).NotTo(BeNil())
				Expect(booking.BookingDates).NotTo(BeNil())
				api.VerifyBookingMatches(booking, payload)
			})

			It("should return JSON", func() {
				bookingID, _ := suite.CreateRandomBookingWithCleanup(ctx)

				resp, err := bookings.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("application/json"))
			})
		})

		Describe("Given the booking does not exist", func() {
			It("should return 404 Not Found", func() {
				resp, err := bookings.GetBooking(ctx, 999999999)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			})

			It("should return 404 Not Found for a malformed id", func() {
				resp, err := bookings.BaseRequest().Send(ctx, http.MethodGet, bookings.Endpoints().BookingRaw("not-a-number"))
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			})
		})
	})

	Context("When searching bookings", func() {
		var (
			bookingID int
			payload   booker.Booking
		)

		BeforeEach(func() {
			payload = api.NewBookingPayload(generate).
				WithLastName(api.GenerateTestID()).
				Build()

			bookingID, _ = suite.CreateBookingWithCleanup(ctx, payload)
		})

		Describe("Given a name filter", func() {
			It("should find the booking by first name", func() {
				ids := suite.SearchBookings(ctx, booker.BookingFilter{FirstName: *payload.FirstName})
				api.VerifyBookingPresence(ids, bookingID)
			})

			It("should find the booking by last name", func() {
				ids := suite.SearchBookings(ctx, booker.BookingFilter{LastName: *payload.LastName})
				api.VerifyBookingPresence(ids, bookingID)
			})

			It("should find the booking by both names", func() {
				ids := suite.SearchBookings(ctx, booker.BookingFilter{
					FirstName: *payload.FirstName,
					LastName:  *payload.LastName,
				})
				api.VerifyBookingPresence(ids, bookingID)
			})

			It("should not match a different last name", func() {
				ids := suite.SearchBookings(ctx, booker.BookingFilter{
					FirstName: *payload.FirstName,
					LastName:  api.GenerateTestID(),
				})
				api.VerifyBookingAbsence(ids, bookingID)
			})
		})

		Describe("Given a date filter", func() {
			It("should accept a check-in filter", func() {
				ids := suite.SearchBookings(ctx, booker.BookingFilter{CheckIn: payload.CheckIn().AddDays(-1).String()})
				Expect(ids).NotTo(BeNil())
			})

			It("should accept a check-out filter", func() {
				ids := suite.SearchBookings(ctx, booker.BookingFilter{CheckOut: payload.CheckOut().AddDays(1).String()})
				Expect(ids).NotTo(BeNil())
			})

			It("should combine name and date filters", func() {
				ids := suite.SearchBookings(ctx, booker.BookingFilter{
					FirstName: *payload.FirstName,
					CheckIn:   payload.CheckIn().AddDays(-1).String(),
				})
				Expect(ids).NotTo(BeNil())
			})
		})
	})
})
