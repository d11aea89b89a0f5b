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

package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"

	"k8s.io/utils/ptr"
)

var (
	// ErrUnknownField is returned when a mutation names a field that is not
	// one of the mutable booking fields.
	ErrUnknownField = errors.New("unknown booking field")

	// ErrFieldType is returned when a mutation value has the wrong type for
	// the field.
	ErrFieldType = errors.New("wrong value type for booking field")
)

// Field is the wire name of a mutable booking field.
type Field string

const (
	FieldFirstName       Field = "firstname"
	FieldLastName        Field = "lastname"
	FieldTotalPrice      Field = "totalprice"
	FieldDepositPaid     Field = "depositpaid"
	FieldAdditionalNeeds Field = "additionalneeds"
)

// ParseField normalises a field name, accepting any case so "firstName"
// and "FIRSTNAME" both resolve to FieldFirstName.
func ParseField(name string) (Field, error) {
	field := Field(strings.ToLower(strings.TrimSpace(name)))

	switch field {
	case FieldFirstName, FieldLastName, FieldTotalPrice, FieldDepositPaid, FieldAdditionalNeeds:
		return field, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// ValidAuthRequest returns credentials as configured.
func (g *Generator) ValidAuthRequest(username, password string) booker.AuthRequest {
	return booker.NewAuthRequest(username, password)
}

// InvalidAuthRequest returns credentials the service will not recognise.
func (g *Generator) InvalidAuthRequest() booker.AuthRequest {
	return booker.NewAuthRequest("invalid_user", "wrong_password")
}

// EmptyAuthRequest returns empty string credentials.
func (g *Generator) EmptyAuthRequest() booker.AuthRequest {
	return booker.NewAuthRequest("", "")
}

// NullAuthRequest returns credentials that serialise as JSON nulls.
func (g *Generator) NullAuthRequest() booker.AuthRequest {
	return booker.AuthRequest{}
}

func stringValue(field Field, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects string, got %T", ErrFieldType, field, value)
	}

	return s, nil
}

func intValue(field Field, value any) (int, error) {
	switch t := value.(type) {
	case int:
		return t, nil
	case int32:
		return int(t), nil
	case int64:
		return int(t), nil
	}

	return 0, fmt.Errorf("%w: %s expects integer, got %T", ErrFieldType, field, value)
}

func boolValue(field Field, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s expects bool, got %T", ErrFieldType, field, value)
	}

	return b, nil
}

// UpdateBookingField returns a copy of original with one field replaced.
// The original is never modified.
func (g *Generator) UpdateBookingField(original booker.Booking, name string, value any) (booker.Booking, error) {
	field, err := ParseField(name)
	if err != nil {
		return booker.Booking{}, err
	}

	updated := original.Clone()

	switch field {
	case FieldFirstName:
		s, err := stringValue(field, value)
		if err != nil {
			return booker.Booking{}, err
		}

		updated.FirstName = ptr.To(s)
	case FieldLastName:
		s, err := stringValue(field, value)
		if err != nil {
			return booker.Booking{}, err
		}

		updated.LastName = ptr.To(s)
	case FieldTotalPrice:
		i, err := intValue(field, value)
		if err != nil {
			return booker.Booking{}, err
		}

		updated.TotalPrice = ptr.To(i)
	case FieldDepositPaid:
		b, err := boolValue(field, value)
		if err != nil {
			return booker.Booking{}, err
		}

		updated.DepositPaid = ptr.To(b)
	case FieldAdditionalNeeds:
		s, err := stringValue(field, value)
		if err != nil {
			return booker.Booking{}, err
		}

		updated.AdditionalNeeds = ptr.To(s)
	}

	return updated, nil
}

// PartialUpdate returns a single field PATCH payload.  The value is type
// checked the same way as UpdateBookingField.
func (g *Generator) PartialUpdate(name string, value any) (map[string]any, error) {
	field, err := ParseField(name)
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldFirstName, FieldLastName, FieldAdditionalNeeds:
		if _, err := stringValue(field, value); err != nil {
			return nil, err
		}
	case FieldTotalPrice:
		if _, err := intValue(field, value); err != nil {
			return nil, err
		}
	case FieldDepositPaid:
		if _, err := boolValue(field, value); err != nil {
			return nil, err
		}
	}

	return map[string]any{string(field): value}, nil
}
