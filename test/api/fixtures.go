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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"
	"github.com/bookerqa/restful-booker-e2e/pkg/client"
)

// Token returns the suite token, failing the spec if none can be obtained.
func (s *Suite) Token(ctx context.Context) string {
	token, err := s.Authenticator.Token(ctx)
	Expect(err).NotTo(HaveOccurred(), "obtaining auth token")

	return token
}

// CreateBookingWithCleanup creates a booking and schedules its deletion.  The
// cleanup tolerates the scenario having deleted it already.
func (s *Suite) CreateBookingWithCleanup(ctx context.Context, payload booker.Booking) (int, booker.Booking) {
	resp, err := s.Client.CreateBooking(ctx, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "create booking: %s (trace ID: %s)", resp.String(), resp.TraceID())

	var created booker.BookingResponse
	Expect(resp.DecodeJSON(&created)).To(Succeed())
	Expect(created.BookingID).To(BeNumerically(">", 0))

	GinkgoWriter.Printf("Created booking with ID: %d\n", created.BookingID)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func(ctx SpecContext) {
		resp, err := s.Client.DeleteBooking(ctx, created.BookingID, client.WithToken(s.Token(ctx)))
		if err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete booking %d: %v\n", created.BookingID, err)
			return
		}

		switch resp.StatusCode {
		case http.StatusCreated:
			GinkgoWriter.Printf("Successfully deleted booking: %d\n", created.BookingID)
		case s.Config.MissingBookingMutationStatus, http.StatusNotFound:
		default:
			GinkgoWriter.Printf("Warning: Failed to delete booking %d: status %d\n", created.BookingID, resp.StatusCode)
		}
	})

	return created.BookingID, created.Booking
}

// CreateRandomBookingWithCleanup creates a fresh random booking.
func (s *Suite) CreateRandomBookingWithCleanup(ctx context.Context) (int, booker.Booking) {
	payload := NewBookingPayload(s.Generator).Build()

	id, _ := s.CreateBookingWithCleanup(ctx, payload)

	return id, payload
}

// GetBooking fetches and decodes a booking that must exist.
func (s *Suite) GetBooking(ctx context.Context, id int) booker.Booking {
	resp, err := s.Client.GetBooking(ctx, id)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "get booking %d (trace ID: %s)", id, resp.TraceID())

	s.ExpectSchemaValid(ctx, resp)

	var b booker.Booking
	Expect(resp.DecodeJSON(&b)).To(Succeed())

	return b
}

// SearchBookings runs a filtered search and returns the ids.
func (s *Suite) SearchBookings(ctx context.Context, filter booker.BookingFilter) []int {
	resp, err := s.Client.ListBookings(ctx, filter)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "search bookings (trace ID: %s)", resp.TraceID())

	s.ExpectSchemaValid(ctx, resp)

	var ids []booker.BookingIdentifier
	Expect(resp.DecodeJSON(&ids)).To(Succeed())

	return booker.BookingIDs(ids)
}

// ExpectSchemaValid checks the response against the API description when
// schema validation is enabled.
func (s *Suite) ExpectSchemaValid(ctx context.Context, resp *client.Response) {
	if !s.Config.SchemaValidation {
		return
	}

	err := s.Validator.ValidateResponse(ctx, resp.Request, resp.StatusCode, resp.Header, resp.Body)
	Expect(err).NotTo(HaveOccurred(), "schema validation (trace ID: %s)", resp.TraceID())
}

// VerifyBookingMatches checks every field of actual equals expected.
func VerifyBookingMatches(actual, expected booker.Booking) {
	Expect(actual.FirstName).To(Equal(expected.FirstName), "firstname")
	Expect(actual.LastName).To(Equal(expected.LastName), "lastname")
	Expect(actual.TotalPrice).To(Equal(expected.TotalPrice), "totalprice")
	Expect(actual.DepositPaid).To(Equal(expected.DepositPaid), "depositpaid")
	Expect(actual.BookingDates).To(Equal(expected.BookingDates), "bookingdates")
	Expect(actual.AdditionalNeeds).To(Equal(expected.AdditionalNeeds), "additionalneeds")
}

// VerifyBookingPresence verifies that bookings are present in a search result.
func VerifyBookingPresence(ids []int, expectedIDs ...int) {
	missing := set.New[int](expectedIDs...).Difference(set.New[int](ids...))

	Expect(slices.Collect(missing.All())).To(BeEmpty(), "Expected booking IDs to be present in the list")
}

// VerifyBookingAbsence verifies that bookings are not present in a search result.
func VerifyBookingAbsence(ids []int, unexpectedIDs ...int) {
	present := set.New[int](unexpectedIDs...).Intersection(set.New[int](ids...))

	Expect(slices.Collect(present.All())).To(BeEmpty(), "Expected booking IDs to be absent from the list")
}

// VerifyHandledSafely checks an adversarial payload was handled, either
// accepted as data or rejected, and never reflected as anything but JSON.
func VerifyHandledSafely(resp *client.Response) {
	Expect(resp.StatusCode).To(BeElementOf(http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError))

	if resp.StatusCode == http.StatusOK {
		Expect(resp.IsJSON()).To(BeTrue(), "accepted payload must be returned as JSON, got %q", resp.Header.Get("Content-Type"))
	}

	Expect(resp.Header.Get("Content-Type")).NotTo(ContainSubstring("text/html"))
}
