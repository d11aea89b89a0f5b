package api

import (
	"fmt"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"
	"github.com/bookerqa/restful-booker-e2e/pkg/generator"

	"k8s.io/apimachinery/pkg/util/rand"
	"k8s.io/utils/ptr"
)

// generateRandomName appends a random suffix so concurrent runs searching by
// name only find their own fixtures.
func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s%s", prefix, rand.String(8))
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// BookingPayloadBuilder builds booking payloads for testing.
type BookingPayloadBuilder struct {
	booking booker.Booking
}

// NewBookingPayload starts from a random valid booking with a unique
// first name.
func NewBookingPayload(g *generator.Generator) *BookingPayloadBuilder {
	booking := g.RandomBooking()
	booking.FirstName = ptr.To(generateRandomName(*booking.FirstName))

	return &BookingPayloadBuilder{
		booking: booking,
	}
}

// FromBooking starts from an existing payload, which is copied.
func FromBooking(booking booker.Booking) *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		booking: booking.Clone(),
	}
}

func (b *BookingPayloadBuilder) WithFirstName(name string) *BookingPayloadBuilder {
	b.booking.FirstName = ptr.To(name)
	return b
}

func (b *BookingPayloadBuilder) WithLastName(name string) *BookingPayloadBuilder {
	b.booking.LastName = ptr.To(name)
	return b
}

func (b *BookingPayloadBuilder) WithTotalPrice(price int) *BookingPayloadBuilder {
	b.booking.TotalPrice = ptr.To(price)
	return b
}

func (b *BookingPayloadBuilder) WithDepositPaid(paid bool) *BookingPayloadBuilder {
	b.booking.DepositPaid = ptr.To(paid)
	return b
}

func (b *BookingPayloadBuilder) WithDates(checkIn, checkOut booker.Date) *BookingPayloadBuilder {
	b.booking.BookingDates = &booker.BookingDates{
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}

	return b
}

// WithAdditionalNeeds sets the extras, an empty string omits the field.
func (b *BookingPayloadBuilder) WithAdditionalNeeds(needs string) *BookingPayloadBuilder {
	if needs == "" {
		b.booking.AdditionalNeeds = nil
	} else {
		b.booking.AdditionalNeeds = ptr.To(needs)
	}

	return b
}

// Build returns a copy of the payload so the builder can be reused.
func (b *BookingPayloadBuilder) Build() booker.Booking {
	return b.booking.Clone()
}
