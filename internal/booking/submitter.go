package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"parkfront/internal/backend"
)

// MinDuration is the shortest bookable window.
const MinDuration = 30 * time.Minute

// API is the slice of the reservation client the submitter needs.
type API interface {
	ListSpots(ctx context.Context, location string, userID int) ([]backend.ParkingSpot, error)
	Book(ctx context.Context, booking backend.BookingRequest) (*backend.BookingResponse, error)
}

// Form is the booking form as the user submitted it. SelectedSpot is the
// hidden field filled by the picker; Floor is the floor recorded with the
// confirmed selection, nil when the location has no floors.
type Form struct {
	UserID       int
	Location     string
	StartTime    string
	EndTime      string
	SelectedSpot string
	Floor        *int
}

type OutcomeKind int

const (
	// OutcomeFieldErrors blocks submission with per-field messages.
	OutcomeFieldErrors OutcomeKind = iota
	// OutcomeSpotToast is the dedicated "pick a spot" notification shown
	// when everything but the spot is filled in.
	OutcomeSpotToast
	// OutcomePastDate and OutcomeTooShort open their respective modals.
	OutcomePastDate
	OutcomeTooShort
	// OutcomeSpotUnavailable means the re-fetched catalog no longer lists
	// the chosen spot as available; nothing was posted.
	OutcomeSpotUnavailable
	// OutcomeBooked is a confirmed booking.
	OutcomeBooked
	// OutcomeOccupied is a 409 from the booking endpoint.
	OutcomeOccupied
	// OutcomeServerError is any other non-2xx answer.
	OutcomeServerError
	// OutcomeNetworkError is a transport or decode failure.
	OutcomeNetworkError
)

type Outcome struct {
	Kind        OutcomeKind
	FieldErrors map[string]string
	Message     string
	BookingID   int
	SpotNumber  int
	Amount      float64
}

// Submitter runs the pre-submit validation chain and posts the booking.
type Submitter struct {
	api API
	now func() time.Time
}

func NewSubmitter(api API) *Submitter {
	return &Submitter{api: api, now: time.Now}
}

// datetime-local values come without seconds; tolerate both.
func parseLocalTime(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", value)
}

// Submit validates the form in order, re-checks availability against a fresh
// catalog and posts the booking. Every early exit maps to exactly one
// user-facing outcome; no outcome leaves the form blocked.
func (s *Submitter) Submit(ctx context.Context, form Form) Outcome {
	fieldErrors := map[string]string{}
	otherFieldsFilled := true

	if form.Location == "" {
		fieldErrors["location"] = "Please choose a location."
		otherFieldsFilled = false
	}
	if form.StartTime == "" {
		fieldErrors["start_datetime"] = "Please choose a start date and time."
		otherFieldsFilled = false
	}
	if form.EndTime == "" {
		fieldErrors["end_datetime"] = "Please choose an end date and time."
		otherFieldsFilled = false
	}
	if form.SelectedSpot == "" {
		if otherFieldsFilled {
			return Outcome{Kind: OutcomeSpotToast, Message: "Please pick a parking spot"}
		}
		fieldErrors["selected_spot"] = "Please pick a parking spot."
	}
	if len(fieldErrors) > 0 {
		return Outcome{Kind: OutcomeFieldErrors, FieldErrors: fieldErrors}
	}

	start, errStart := parseLocalTime(form.StartTime)
	end, errEnd := parseLocalTime(form.EndTime)
	if errStart != nil || errEnd != nil {
		if errStart != nil {
			fieldErrors["start_datetime"] = "Please enter a valid start date and time."
		}
		if errEnd != nil {
			fieldErrors["end_datetime"] = "Please enter a valid end date and time."
		}
		return Outcome{Kind: OutcomeFieldErrors, FieldErrors: fieldErrors}
	}

	now := s.now()
	if start.Before(now) || end.Before(now) {
		return Outcome{Kind: OutcomePastDate}
	}
	if end.Sub(start) < MinDuration {
		return Outcome{Kind: OutcomeTooShort}
	}

	spotNumber, err := strconv.Atoi(form.SelectedSpot)
	if err != nil {
		return Outcome{
			Kind:        OutcomeFieldErrors,
			FieldErrors: map[string]string{"selected_spot": "Please pick a parking spot."},
		}
	}

	// The cached catalog is treated as stale: re-fetch and trust only the
	// fresh snapshot before posting.
	spots, err := s.api.ListSpots(ctx, form.Location, form.UserID)
	if err != nil {
		return Outcome{
			Kind:    OutcomeNetworkError,
			Message: fmt.Sprintf("Could not verify spot availability: %v", err),
		}
	}

	hasFloors := backend.HasFloors(spots)
	spot, found := findAvailable(spots, spotNumber, form.Floor, hasFloors)
	if !found {
		floorStr := "without a floor"
		if hasFloors && form.Floor != nil {
			floorStr = fmt.Sprintf("on floor %d", *form.Floor)
		}
		return Outcome{
			Kind:    OutcomeSpotUnavailable,
			Message: fmt.Sprintf("Spot %d %s is no longer available. Please pick another spot.", spotNumber, floorStr),
		}
	}

	parts := strings.SplitN(form.Location, "|", 2)
	address := parts[0]
	if len(parts) == 2 {
		address = strings.TrimSpace(parts[1])
	}

	request := backend.BookingRequest{
		UserID:     form.UserID,
		Address:    address,
		SpotNumber: spotNumber,
		StartTime:  form.StartTime,
		EndTime:    form.EndTime,
	}
	if form.Floor != nil && hasFloors {
		floor := *spot.Floor
		request.Floor = &floor
	}

	resp, err := s.api.Book(ctx, request)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Status == 409 {
				return Outcome{Kind: OutcomeOccupied}
			}
			detail := apiErr.Detail
			if detail == "" {
				detail = "Unknown error"
			}
			return Outcome{
				Kind:    OutcomeServerError,
				Message: fmt.Sprintf("Booking error: %s", detail),
			}
		}
		return Outcome{
			Kind:    OutcomeNetworkError,
			Message: fmt.Sprintf("Failed to submit booking: %v", err),
		}
	}
	if resp.BookingID == 0 {
		return Outcome{Kind: OutcomeServerError, Message: "Booking failed. Please try again."}
	}

	return Outcome{
		Kind:       OutcomeBooked,
		BookingID:  resp.BookingID,
		SpotNumber: resp.SpotNumber,
		Amount:     resp.Amount,
	}
}

// findAvailable matches by spot number, floor (only when the location has
// floors and a floor was recorded) and availability.
func findAvailable(spots []backend.ParkingSpot, number int, floor *int, hasFloors bool) (backend.ParkingSpot, bool) {
	for _, s := range spots {
		if s.SpotNumber != number || !s.IsAvailable {
			continue
		}
		if hasFloors && floor != nil {
			if s.Floor != nil && *s.Floor == *floor {
				return s, true
			}
			continue
		}
		if s.Floor == nil {
			return s, true
		}
	}
	return backend.ParkingSpot{}, false
}
