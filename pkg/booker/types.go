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

package booker

import (
	"k8s.io/utils/ptr"
)

// Booking is a reservation as accepted and returned by the booking API.
// Every field is optional so payloads can omit or zero values independently,
// nothing is validated on the client side.
type Booking struct {
	FirstName       *string       `json:"firstname,omitempty"`
	LastName        *string       `json:"lastname,omitempty"`
	TotalPrice      *int          `json:"totalprice,omitempty"`
	DepositPaid     *bool         `json:"depositpaid,omitempty"`
	BookingDates    *BookingDates `json:"bookingdates,omitempty"`
	AdditionalNeeds *string       `json:"additionalneeds,omitempty"`
}

// BookingDates carries no ordering guarantee, check-out may precede check-in.
type BookingDates struct {
	CheckIn  Date `json:"checkin"`
	CheckOut Date `json:"checkout"`
}

// BookingResponse is returned by a successful create.
type BookingResponse struct {
	BookingID int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

// BookingIdentifier is an element of the search result list.
type BookingIdentifier struct {
	BookingID int `json:"bookingid"`
}

// BookingFilter narrows a booking search, empty fields are not sent.
type BookingFilter struct {
	FirstName string `url:"firstname,omitempty"`
	LastName  string `url:"lastname,omitempty"`
	CheckIn   string `url:"checkin,omitempty"`
	CheckOut  string `url:"checkout,omitempty"`
}

// AuthRequest is the credential pair posted to the auth endpoint.  A nil
// field is serialized as null.
type AuthRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// AuthResponse holds either a token or, on failure, a reason.
type AuthResponse struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// BadCredentials is the failure reason the auth endpoint reports.
const BadCredentials = "Bad credentials"

// NewBooking builds a fully populated booking.  An empty additionalNeeds
// leaves the field absent.
func NewBooking(firstName, lastName string, totalPrice int, depositPaid bool, checkIn, checkOut Date, additionalNeeds string) Booking {
	b := Booking{
		FirstName:   ptr.To(firstName),
		LastName:    ptr.To(lastName),
		TotalPrice:  ptr.To(totalPrice),
		DepositPaid: ptr.To(depositPaid),
		BookingDates: &BookingDates{
			CheckIn:  checkIn,
			CheckOut: checkOut,
		},
	}

	if additionalNeeds != "" {
		b.AdditionalNeeds = ptr.To(additionalNeeds)
	}

	return b
}

// NewAuthRequest returns credentials with both fields set.
func NewAuthRequest(username, password string) AuthRequest {
	return AuthRequest{
		Username: ptr.To(username),
		Password: ptr.To(password),
	}
}

// Clone returns a deep copy.
func (b Booking) Clone() Booking {
	out := Booking{}

	if b.FirstName != nil {
		out.FirstName = ptr.To(*b.FirstName)
	}

	if b.LastName != nil {
		out.LastName = ptr.To(*b.LastName)
	}

	if b.TotalPrice != nil {
		out.TotalPrice = ptr.To(*b.TotalPrice)
	}

	if b.DepositPaid != nil {
		out.DepositPaid = ptr.To(*b.DepositPaid)
	}

	if b.BookingDates != nil {
		out.BookingDates = ptr.To(*b.BookingDates)
	}

	if b.AdditionalNeeds != nil {
		out.AdditionalNeeds = ptr.To(*b.AdditionalNeeds)
	}

	return out
}

// Equal compares bookings field by field, absent and present fields differ.
func (b Booking) Equal(o Booking) bool {
	return ptr.Equal(b.FirstName, o.FirstName) &&
		ptr.Equal(b.LastName, o.LastName) &&
		ptr.Equal(b.TotalPrice, o.TotalPrice) &&
		ptr.Equal(b.DepositPaid, o.DepositPaid) &&
		ptr.Equal(b.BookingDates, o.BookingDates) &&
		ptr.Equal(b.AdditionalNeeds, o.AdditionalNeeds)
}

// CheckIn returns the check-in date, or the zero date when dates are absent.
func (b Booking) CheckIn() Date {
	if b.BookingDates == nil {
		return Date{}
	}

	return b.BookingDates.CheckIn
}

// CheckOut returns the check-out date, or the zero date when dates are absent.
func (b Booking) CheckOut() Date {
	if b.BookingDates == nil {
		return Date{}
	}

	return b.BookingDates.CheckOut
}

// BookingIDs flattens a search result.
func BookingIDs(identifiers []BookingIdentifier) []int {
	ids := make([]int, len(identifiers))

	for i := range identifiers {
		ids[i] = identifiers[i].BookingID
	}

	return ids
}
