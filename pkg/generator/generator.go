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

// Package generator produces booking and credential payloads for the
// suites, covering valid, boundary and adversarial input classes.
//
// A Generator is seeded, the same seed yields the same sequence of values
// for a given current date, so failing runs can be replayed by logging
// the seed.
package generator

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"

	"k8s.io/utils/ptr"
)

// AdditionalNeedsOptions are the extras a random booking picks from.  The
// empty entry means "none selected" and leaves the field absent.
//
//nolint:gochecknoglobals
var AdditionalNeedsOptions = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Late checkout",
	"Extra towels",
	"",
}

const (
	// SQLInjectionFirstName and friends are the adversarial strings sent by
	// the injection variant.
	SQLInjectionFirstName = "'; DROP TABLE bookings; --"
	SQLInjectionLastName  = "1' OR '1'='1"
	ScriptInjectionNotes  = "<script>alert('xss')</script>"

	SpecialCharactersNotes = `Special chars: @#$%^&*()_+{}|:<>?[]\;'",./`
)

// Generator produces booking and auth payloads.  Given the same seed and
// today it produces the same sequence.  It is not safe for concurrent use.
type Generator struct {
	seed  int64
	rng   *rand.Rand
	faker *gofakeit.Faker
	today func() booker.Date
}

// New returns a generator with a fixed seed.
func New(seed int64) *Generator {
	s := uint64(seed) //nolint:gosec

	rng := rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)) //nolint:gosec

	// gofakeit picks a random seed when given zero.
	fakerSeed := rng.Uint64()
	if fakerSeed == 0 {
		fakerSeed = 1
	}

	return &Generator{
		seed:  seed,
		rng:   rng,
		faker: gofakeit.New(fakerSeed),
		today: booker.Today,
	}
}

// NewRandom returns a generator seeded from the clock.
func NewRandom() *Generator {
	return New(time.Now().UnixNano())
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// WithToday pins the reference date used for relative dates.
func (g *Generator) WithToday(today booker.Date) *Generator {
	g.today = func() booker.Date { return today }

	return g
}

// intRange returns a value in [minimum, maximum).
func (g *Generator) intRange(minimum, maximum int) int {
	return minimum + g.rng.IntN(maximum-minimum)
}

func (g *Generator) additionalNeeds() string {
	return AdditionalNeedsOptions[g.rng.IntN(len(AdditionalNeedsOptions))]
}

// RandomBooking returns a valid booking: real looking names, a price in
// [50,2000), check-in 1 to 29 days out and a stay of 1 to 13 nights.
func (g *Generator) RandomBooking() booker.Booking {
	checkIn := g.today().AddDays(g.intRange(1, 30))
	checkOut := checkIn.AddDays(g.intRange(1, 14))

	return booker.NewBooking(
		g.faker.FirstName(),
		g.faker.LastName(),
		g.intRange(50, 2000),
		g.faker.Bool(),
		checkIn,
		checkOut,
		g.additionalNeeds(),
	)
}

// Booking returns a booking with every field given explicitly.
func (g *Generator) Booking(firstName, lastName string, totalPrice int, depositPaid bool, checkIn, checkOut booker.Date, additionalNeeds string) booker.Booking {
	return booker.NewBooking(firstName, lastName, totalPrice, depositPaid, checkIn, checkOut, additionalNeeds)
}

// InvalidBooking combines empty names, a negative price, no deposit flag and
// an inverted date range.
func (g *Generator) InvalidBooking() booker.Booking {
	checkIn := g.today().AddDays(10)

	return booker.Booking{
		FirstName:  ptr.To(""),
		LastName:   ptr.To(""),
		TotalPrice: ptr.To(-100),
		BookingDates: &booker.BookingDates{
			CheckIn:  checkIn,
			CheckOut: checkIn.AddDays(-5),
		},
		AdditionalNeeds: ptr.To("Invalid booking data"),
	}
}

// BookingWithInvalidDates is otherwise valid but checks out five days
// before it checks in.
func (g *Generator) BookingWithInvalidDates() booker.Booking {
	checkIn := g.today().AddDays(10)

	return booker.NewBooking(
		g.faker.FirstName(),
		g.faker.LastName(),
		g.intRange(50, 2000),
		g.faker.Bool(),
		checkIn,
		checkIn.AddDays(-5),
		g.faker.Phrase(),
	)
}

// BookingWithSameDates checks in and out on the same day.
func (g *Generator) BookingWithSameDates() booker.Booking {
	day := g.today().AddDays(5)

	return booker.NewBooking(
		g.faker.FirstName(),
		g.faker.LastName(),
		g.intRange(50, 500),
		g.faker.Bool(),
		day,
		day,
		"Same day booking",
	)
}

// BookingWithPastDates checks in between 5 and 29 days ago.
func (g *Generator) BookingWithPastDates() booker.Booking {
	checkIn := g.today().AddDays(-g.intRange(5, 30))

	return booker.NewBooking(
		g.faker.FirstName(),
		g.faker.LastName(),
		g.intRange(50, 1000),
		g.faker.Bool(),
		checkIn,
		checkIn.AddDays(g.intRange(1, 7)),
		"Historical booking",
	)
}

// BookingWithFutureDates checks in between one and three years out.
func (g *Generator) BookingWithFutureDates() booker.Booking {
	checkIn := g.today().AddDays(g.intRange(365, 1095))

	return booker.NewBooking(
		g.faker.FirstName(),
		g.faker.LastName(),
		g.intRange(100, 3000),
		g.faker.Bool(),
		checkIn,
		checkIn.AddDays(g.intRange(1, 21)),
		"Future booking",
	)
}

// MinimalBooking sets only the fields the API requires.
func (g *Generator) MinimalBooking() booker.Booking {
	checkIn := g.today().AddDays(1)

	return booker.NewBooking("John", "Doe", 100, true, checkIn, checkIn.AddDays(1), "")
}

// BookingWithExtremeValues uses the largest price a 32 bit server accepts
// and very long strings.
func (g *Generator) BookingWithExtremeValues() booker.Booking {
	checkIn := g.today().AddDays(1)

	return booker.NewBooking(
		strings.Repeat("A", 100),
		strings.Repeat("B", 100),
		math.MaxInt32,
		true,
		checkIn,
		checkIn.AddDays(1),
		strings.Repeat("X", 500),
	)
}

// BookingWithSpecialCharacters uses accented, hyphenated and quoted names.
func (g *Generator) BookingWithSpecialCharacters() booker.Booking {
	checkIn := g.today().AddDays(1)

	return booker.NewBooking("José-María", "O'Connor-Smith", 150, false, checkIn, checkIn.AddDays(2), SpecialCharactersNotes)
}

// BookingWithSQLInjection carries SQL shaped names and a script tag in the notes.
func (g *Generator) BookingWithSQLInjection() booker.Booking {
	checkIn := g.today().AddDays(1)

	return booker.NewBooking(SQLInjectionFirstName, SQLInjectionLastName, 100, true, checkIn, checkIn.AddDays(1), ScriptInjectionNotes)
}

// RandomPrice returns a price in [minimum, maximum].
func (g *Generator) RandomPrice(minimum, maximum int) int {
	return g.intRange(minimum, maximum+1)
}

// RandomFutureDate returns a date between minDays and maxDays from today inclusive.
func (g *Generator) RandomFutureDate(minDays, maxDays int) booker.Date {
	return g.today().AddDays(g.intRange(minDays, maxDays+1))
}

// RandomFirstName returns a name from the name corpus.
func (g *Generator) RandomFirstName() string {
	return g.faker.FirstName()
}

// RandomLastName returns a surname from the name corpus.
func (g *Generator) RandomLastName() string {
	return g.faker.LastName()
}
