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

package client

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint paths.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

func (e *Endpoints) Ping() string {
	return "/ping"
}

func (e *Endpoints) Auth() string {
	return "/auth"
}

func (e *Endpoints) Bookings() string {
	return "/booking"
}

// Booking is the path of a single booking.
func (e *Endpoints) Booking(id int) string {
	param, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		param = strconv.Itoa(id)
	}

	return fmt.Sprintf("/booking/%s", param)
}

// BookingRaw is the path of a booking with an arbitrary, possibly
// malformed, identifier.
func (e *Endpoints) BookingRaw(id string) string {
	return fmt.Sprintf("/booking/%s", url.PathEscape(id))
}
