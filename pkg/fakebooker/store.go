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
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"
)

var (
	// ErrNotFound is returned when a booking does not exist.
	ErrNotFound = errors.New("booking not found")

	// ErrIncomplete is returned when a booking lacks a required field.
	ErrIncomplete = errors.New("booking incomplete")
)

// Filter selects bookings.  Date bounds are inclusive, check-in on or
// after CheckIn and check-out on or before CheckOut.
type Filter struct {
	FirstName string
	LastName  string
	CheckIn   booker.Date
	CheckOut  booker.Date
}

func (f *Filter) matches(b *booker.Booking) bool {
	if f.FirstName != "" && (b.FirstName == nil || *b.FirstName != f.FirstName) {
		return false
	}

	if f.LastName != "" && (b.LastName == nil || *b.LastName != f.LastName) {
		return false
	}

	if !f.CheckIn.IsZero() && (b.BookingDates == nil || b.CheckIn().Before(f.CheckIn)) {
		return false
	}

	if !f.CheckOut.IsZero() && (b.BookingDates == nil || b.CheckOut().After(f.CheckOut)) {
		return false
	}

	return true
}

// Store holds bookings in memory with sequential identifiers.
type Store struct {
	lock     sync.RWMutex
	bookings map[int]booker.Booking
	nextID   int
}

func NewStore() *Store {
	return &Store{
		bookings: map[int]booker.Booking{},
		nextID:   1,
	}
}

// Complete checks every required field is present.
func Complete(b *booker.Booking) error {
	var missing []string

	if b.FirstName == nil {
		missing = append(missing, "firstname")
	}

	if b.LastName == nil {
		missing = append(missing, "lastname")
	}

	if b.TotalPrice == nil {
		missing = append(missing, "totalprice")
	}

	if b.DepositPaid == nil {
		missing = append(missing, "depositpaid")
	}

	if b.BookingDates == nil {
		missing = append(missing, "bookingdates")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrIncomplete, missing)
	}

	return nil
}

// Create stores a copy of the booking and returns its identifier.
func (s *Store) Create(b booker.Booking) (int, error) {
	if err := Complete(&b); err != nil {
		return 0, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++

	s.bookings[id] = b.Clone()

	return id, nil
}

func (s *Store) Get(id int) (booker.Booking, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return booker.Booking{}, ErrNotFound
	}

	return b.Clone(), nil
}

// List returns matching identifiers in ascending order.
func (s *Store) List(filter Filter) []int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := make([]int, 0, len(s.bookings))

	for id, b := range s.bookings {
		if filter.matches(&b) {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	return ids
}

// Replace overwrites every field of an existing booking.
func (s *Store) Replace(id int, b booker.Booking) (booker.Booking, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return booker.Booking{}, ErrNotFound
	}

	if err := Complete(&b); err != nil {
		return booker.Booking{}, err
	}

	s.bookings[id] = b.Clone()

	return b.Clone(), nil
}

// Patch merges a JSON document into an existing booking, fields absent
// from the document are left as they are.  A patch that nulls a required
// field is rejected and the stored booking is unchanged.
func (s *Store) Patch(id int, patch []byte) (booker.Booking, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	existing, ok := s.bookings[id]
	if !ok {
		return booker.Booking{}, ErrNotFound
	}

	updated := existing.Clone()

	if err := json.Unmarshal(patch, &updated); err != nil {
		return booker.Booking{}, fmt.Errorf("failed to apply patch: %w", err)
	}

	if err := Complete(&updated); err != nil {
		return booker.Booking{}, err
	}

	s.bookings[id] = updated

	return updated.Clone(), nil
}

func (s *Store) Delete(id int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}

	delete(s.bookings, id)

	return nil
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.bookings)
}
