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
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/bookerqa/restful-booker-e2e/pkg/booker"

	"k8s.io/utils/ptr"
)

// Handler implements the booking API operations.
type Handler struct {
	options *Options
	store   *Store
	issuer  *Issuer
}

func NewHandler(options *Options, store *Store, issuer *Issuer) *Handler {
	return &Handler{
		options: options,
		store:   store,
		issuer:  issuer,
	}
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	_, _ = w.Write([]byte(text))
}

func writeStatus(w http.ResponseWriter, status int) {
	writeText(w, status, http.StatusText(status))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal response")
		writeStatus(w, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_, _ = w.Write(data)
}

func acceptsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}

	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])

		switch mediaType {
		case "application/json", "application/*", "*/*":
			return true
		}
	}

	return false
}

// authorized accepts either the token cookie or the configured basic
// credentials.
func (h *Handler) authorized(r *http.Request) bool {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if err := h.issuer.Validate(cookie.Value); err == nil {
			return true
		}
	}

	if username, password, ok := r.BasicAuth(); ok {
		return username == h.options.Username && password == h.options.Password
	}

	return false
}

func bookingID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}

	return id, true
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusCreated)
}

// CreateToken never fails credentials with an error status, only a reason.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	var request booker.AuthRequest

	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &request); err != nil {
			writeStatus(w, http.StatusBadRequest)
			return
		}
	}

	username := ptr.Deref(request.Username, "")
	password := ptr.Deref(request.Password, "")

	if username == "" || username != h.options.Username || password != h.options.Password {
		writeJSON(w, r, http.StatusOK, booker.AuthResponse{Reason: booker.BadCredentials})
		return
	}

	token, err := h.issuer.Issue(username)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to issue token")
		writeStatus(w, http.StatusInternalServerError)

		return
	}

	writeJSON(w, r, http.StatusOK, booker.AuthResponse{Token: token})
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := Filter{
		FirstName: query.Get("firstname"),
		LastName:  query.Get("lastname"),
	}

	for key, date := range map[string]*booker.Date{"checkin": &filter.CheckIn, "checkout": &filter.CheckOut} {
		value := query.Get(key)
		if value == "" {
			continue
		}

		parsed, err := booker.ParseDate(value)
		if err != nil {
			writeStatus(w, http.StatusBadRequest)
			return
		}

		*date = parsed
	}

	ids := h.store.List(filter)

	result := make([]booker.BookingIdentifier, len(ids))
	for i, id := range ids {
		result[i] = booker.BookingIdentifier{BookingID: id}
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	if !acceptsJSON(r) {
		writeStatus(w, http.StatusTeapot)
		return
	}

	id, ok := bookingID(r)
	if !ok {
		writeStatus(w, http.StatusNotFound)
		return
	}

	booking, err := h.store.Get(id)
	if err != nil {
		writeStatus(w, http.StatusNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, booking)
}

// CreateBooking reports an incomplete booking as a server error.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking booker.Booking

	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	id, err := h.store.Create(booking)
	if err != nil {
		zerolog.Ctx(r.Context()).Info().Err(err).Msg("rejected booking")
		writeStatus(w, http.StatusInternalServerError)

		return
	}

	writeJSON(w, r, http.StatusOK, booker.BookingResponse{BookingID: id, Booking: booking})
}

// mutationTarget checks credentials and existence in that order, an
// unknown booking is reported as 405.
func (h *Handler) mutationTarget(w http.ResponseWriter, r *http.Request) (int, bool) {
	if !h.authorized(r) {
		writeStatus(w, http.StatusForbidden)
		return 0, false
	}

	id, ok := bookingID(r)
	if !ok {
		writeStatus(w, http.StatusMethodNotAllowed)
		return 0, false
	}

	if _, err := h.store.Get(id); err != nil {
		writeStatus(w, http.StatusMethodNotAllowed)
		return 0, false
	}

	return id, true
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}

	var booking booker.Booking

	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	updated, err := h.store.Replace(id, booking)
	if err != nil {
		h.mutationError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) PartialUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}

	updated, err := h.store.Patch(id, body)
	if err != nil {
		h.mutationError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.mutationError(w, err)
		return
	}

	writeStatus(w, http.StatusCreated)
}

// mutationError maps store errors, a booking deleted between the existence
// check and the write is still a 405.
func (h *Handler) mutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeStatus(w, http.StatusMethodNotAllowed)
		return
	}

	writeStatus(w, http.StatusBadRequest)
}
