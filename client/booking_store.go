package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
)

// BookingDetail is a booking together with the actions the server says
// are currently valid for it.
type BookingDetail struct {
	models.Booking
	Actions []domain.Action `json:"actions"`
}

// BookingStore holds the booking state a frontend observes. All state
// changes happen after the server acknowledges; failed mutations leave
// the collection untouched and surface through Error.
type BookingStore struct {
	client *Client

	mu       sync.Mutex
	inFlight map[int64]bool

	Bookings   []models.Booking
	Pagination domain.Pagination
	Current    *BookingDetail
	Loading    bool
	Error      string
}

func NewBookingStore(c *Client) *BookingStore {
	return &BookingStore{client: c, inFlight: map[int64]bool{}}
}

// Fetch loads one booking with its actions. A second Fetch for the same
// id while the first is still running is dropped.
func (s *BookingStore) Fetch(ctx context.Context, id int64) error {
	s.mu.Lock()
	if s.inFlight[id] {
		s.mu.Unlock()
		return nil
	}
	s.inFlight[id] = true
	s.Loading = true
	s.mu.Unlock()

	var detail BookingDetail
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/api/bookings/%d", id), nil, &detail)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
	s.Loading = false
	if err != nil {
		s.Error = err.Error()
		return err
	}
	s.Current = &detail
	s.Error = ""
	return nil
}

// FetchUser loads the caller's bookings, optionally filtered by status.
func (s *BookingStore) FetchUser(ctx context.Context, status string, page, limit int) error {
	s.mu.Lock()
	s.Loading = true
	s.mu.Unlock()

	// normalized statuses contain spaces, so the query must be escaped
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if status != "" {
		q.Set("status", string(domain.NormalizeStatus(status)))
	}
	path := "/api/bookings/user?" + q.Encode()
	var list []models.Booking
	result := &listResult{Items: &list}
	err := s.client.do(ctx, http.MethodGet, path, nil, result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loading = false
	if err != nil {
		s.Error = err.Error()
		return err
	}
	s.Bookings = list
	s.Pagination = result.Pagination
	s.Error = ""
	return nil
}

func (s *BookingStore) Create(ctx context.Context, in models.CreateBookingInput) (models.Booking, error) {
	var b models.Booking
	err := s.client.do(ctx, http.MethodPost, "/api/bookings", in, &b)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return models.Booking{}, err
	}
	s.Bookings = append([]models.Booking{b}, s.Bookings...)
	s.Error = ""
	return b, nil
}

type cancelPayload struct {
	Reason string `json:"reason,omitempty"`
}

// Cancel asks the server to cancel; the local record changes only when
// the server agrees the transition is legal.
func (s *BookingStore) Cancel(ctx context.Context, id int64, reason string) error {
	var b models.Booking
	err := s.client.do(ctx, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", id),
		cancelPayload{Reason: reason}, &b)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return err
	}
	s.replace(b)
	if s.Current != nil && s.Current.ID == id {
		s.Current.Booking = b
		s.Current.Actions = domain.AvailableActions(domain.NormalizeStatus(b.Status), false, "")
	}
	s.Error = ""
	return nil
}

// Patch sends a partial update (allocation details, status moves).
func (s *BookingStore) Patch(ctx context.Context, id int64, p models.BookingPatch) (models.Booking, error) {
	var b models.Booking
	err := s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/api/bookings/%d", id), p, &b)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return models.Booking{}, err
	}
	s.replace(b)
	if s.Current != nil && s.Current.ID == id {
		s.Current.Booking = b
	}
	s.Error = ""
	return b, nil
}

// Delete removes a cancelled booking. The entry leaves the collection
// only on a 2xx response.
func (s *BookingStore) Delete(ctx context.Context, id int64) error {
	err := s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", id), nil, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.Error = err.Error()
		return err
	}
	kept := s.Bookings[:0]
	for _, b := range s.Bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.Bookings = kept
	if s.Current != nil && s.Current.ID == id {
		s.Current = nil
	}
	s.Error = ""
	return nil
}

func (s *BookingStore) replace(b models.Booking) {
	for i := range s.Bookings {
		if s.Bookings[i].ID == b.ID {
			s.Bookings[i] = b
			return
		}
	}
}
