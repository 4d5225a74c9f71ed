package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkfront/internal/backend"
)

type fakeAPI struct {
	spots     []backend.ParkingSpot
	listErr   error
	listCalls int

	bookResp  *backend.BookingResponse
	bookErr   error
	bookCalls int
	lastBook  backend.BookingRequest
}

func (f *fakeAPI) ListSpots(ctx context.Context, location string, userID int) ([]backend.ParkingSpot, error) {
	f.listCalls++
	return f.spots, f.listErr
}

func (f *fakeAPI) Book(ctx context.Context, booking backend.BookingRequest) (*backend.BookingResponse, error) {
	f.bookCalls++
	f.lastBook = booking
	return f.bookResp, f.bookErr
}

func newTestSubmitter(api *fakeAPI, now time.Time) *Submitter {
	s := NewSubmitter(api)
	s.now = func() time.Time { return now }
	return s
}

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.Local)

func validForm() Form {
	return Form{
		UserID:       3,
		Location:     "53.19,45.01|Kuraeva St. 10",
		StartTime:    "2026-08-01T13:00",
		EndTime:      "2026-08-01T15:00",
		SelectedSpot: "7",
	}
}

func TestSubmitEmptyFormReportsFieldErrors(t *testing.T) {
	api := &fakeAPI{}
	s := newTestSubmitter(api, testNow)

	outcome := s.Submit(context.Background(), Form{})

	require.Equal(t, OutcomeFieldErrors, outcome.Kind)
	assert.Contains(t, outcome.FieldErrors, "location")
	assert.Contains(t, outcome.FieldErrors, "start_datetime")
	assert.Contains(t, outcome.FieldErrors, "end_datetime")
	assert.Contains(t, outcome.FieldErrors, "selected_spot")
	assert.Zero(t, api.listCalls)
	assert.Zero(t, api.bookCalls)
}

func TestSubmitMissingSpotAloneRaisesToast(t *testing.T) {
	api := &fakeAPI{}
	s := newTestSubmitter(api, testNow)

	form := validForm()
	form.SelectedSpot = ""
	outcome := s.Submit(context.Background(), form)

	assert.Equal(t, OutcomeSpotToast, outcome.Kind)
	assert.Equal(t, "Please pick a parking spot", outcome.Message)
	assert.Zero(t, api.bookCalls)
}

func TestSubmitPastDates(t *testing.T) {
	api := &fakeAPI{}
	s := newTestSubmitter(api, testNow)

	form := validForm()
	form.StartTime = "2026-07-31T10:00"
	form.EndTime = "2026-07-31T11:00"
	outcome := s.Submit(context.Background(), form)

	assert.Equal(t, OutcomePastDate, outcome.Kind)
	assert.Zero(t, api.bookCalls)
}

func TestSubmitTooShortWindow(t *testing.T) {
	api := &fakeAPI{}
	s := newTestSubmitter(api, testNow)

	form := validForm()
	form.StartTime = "2026-08-01T13:00"
	form.EndTime = "2026-08-01T13:20"
	outcome := s.Submit(context.Background(), form)

	assert.Equal(t, OutcomeTooShort, outcome.Kind)
	assert.Zero(t, api.listCalls, "validation fails before the re-fetch")
	assert.Zero(t, api.bookCalls)
}

func TestSubmitRefetchFindsSpotTaken(t *testing.T) {
	api := &fakeAPI{spots: []backend.ParkingSpot{
		{SpotNumber: 7, IsAvailable: false},
	}}
	s := newTestSubmitter(api, testNow)

	outcome := s.Submit(context.Background(), validForm())

	require.Equal(t, OutcomeSpotUnavailable, outcome.Kind)
	assert.Contains(t, outcome.Message, "Spot 7")
	assert.Equal(t, 1, api.listCalls)
	assert.Zero(t, api.bookCalls, "nothing is posted for a stale spot")
}

func TestSubmitRefetchFailure(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("connection refused")}
	s := newTestSubmitter(api, testNow)

	outcome := s.Submit(context.Background(), validForm())

	assert.Equal(t, OutcomeNetworkError, outcome.Kind)
	assert.Contains(t, outcome.Message, "Could not verify spot availability")
	assert.Zero(t, api.bookCalls)
}

func TestSubmitSuccess(t *testing.T) {
	api := &fakeAPI{
		spots:    []backend.ParkingSpot{{SpotNumber: 7, IsAvailable: true, Price: 150}},
		bookResp: &backend.BookingResponse{BookingID: 42, SpotNumber: 7, Amount: 300},
	}
	s := newTestSubmitter(api, testNow)

	outcome := s.Submit(context.Background(), validForm())

	require.Equal(t, OutcomeBooked, outcome.Kind)
	assert.Equal(t, 42, outcome.BookingID)
	assert.Equal(t, 7, outcome.SpotNumber)
	assert.Equal(t, 300.0, outcome.Amount)

	assert.Equal(t, "Kuraeva St. 10", api.lastBook.Address, "address is the part after the pipe")
	assert.Equal(t, 7, api.lastBook.SpotNumber)
	assert.Nil(t, api.lastBook.Floor)
}

func TestSubmitIncludesFloorWhenRecorded(t *testing.T) {
	floor := 2
	api := &fakeAPI{
		spots:    []backend.ParkingSpot{{SpotNumber: 7, Floor: &floor, IsAvailable: true}},
		bookResp: &backend.BookingResponse{BookingID: 8, SpotNumber: 7},
	}
	s := newTestSubmitter(api, testNow)

	form := validForm()
	form.Floor = &floor
	outcome := s.Submit(context.Background(), form)

	require.Equal(t, OutcomeBooked, outcome.Kind)
	require.NotNil(t, api.lastBook.Floor)
	assert.Equal(t, 2, *api.lastBook.Floor)
}

func TestSubmitConflictOpensOccupiedModal(t *testing.T) {
	api := &fakeAPI{
		spots:   []backend.ParkingSpot{{SpotNumber: 7, IsAvailable: true}},
		bookErr: &backend.APIError{Status: 409, Detail: "spot already booked"},
	}
	s := newTestSubmitter(api, testNow)

	outcome := s.Submit(context.Background(), validForm())

	assert.Equal(t, OutcomeOccupied, outcome.Kind)
}

func TestSubmitServerError(t *testing.T) {
	api := &fakeAPI{
		spots:   []backend.ParkingSpot{{SpotNumber: 7, IsAvailable: true}},
		bookErr: &backend.APIError{Status: 500, Detail: "boom"},
	}
	s := newTestSubmitter(api, testNow)

	outcome := s.Submit(context.Background(), validForm())

	assert.Equal(t, OutcomeServerError, outcome.Kind)
	assert.Equal(t, "Booking error: boom", outcome.Message)
}

func TestSubmitMissingBookingIDIsAFailure(t *testing.T) {
	api := &fakeAPI{
		spots:    []backend.ParkingSpot{{SpotNumber: 7, IsAvailable: true}},
		bookResp: &backend.BookingResponse{},
	}
	s := newTestSubmitter(api, testNow)

	outcome := s.Submit(context.Background(), validForm())

	assert.Equal(t, OutcomeServerError, outcome.Kind)
	assert.Equal(t, "Booking failed. Please try again.", outcome.Message)
}
