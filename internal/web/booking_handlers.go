package web

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"parkfront/internal/booking"
	"parkfront/internal/view"
)

// MainPage renders the booking page. Prices are loaded fresh on every visit;
// a failure leaves the page usable behind an alert.
func (s *Server) MainPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	state := sess.State

	prices, err := s.api.Prices(r.Context())
	if err != nil {
		log.Printf("Failed to load parking prices: %v", err)
		state.Flash("Could not load parking prices.")
	} else {
		state.Prices = prices
	}

	s.render(w, "booking.tmpl", view.Render(state, s.schemes, time.Now()))
}

func (s *Server) SetLocation(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.State.SetLocation(r.FormValue("location"))
	s.backToBooking(w, r, sess.State.UserID)
}

func (s *Server) SetTimes(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.State.SetTimes(r.FormValue("start_datetime"), r.FormValue("end_datetime"))
	s.backToBooking(w, r, sess.State.UserID)
}

// OpenSpotPicker fetches the spot catalog for the chosen location and opens
// the picker. The catalog slot is versioned so a stale response can never
// overwrite a newer one.
func (s *Server) OpenSpotPicker(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	state := sess.State
	captureViewport(sess, r)

	if state.Location == "" {
		state.Flash("Please choose a location.")
		s.backToBooking(w, r, state.UserID)
		return
	}

	version := state.BeginSpotLoad()
	spots, err := s.api.ListSpots(r.Context(), state.Location, state.UserID)
	if err != nil {
		log.Printf("Failed to load parking spots: %v", err)
		state.Flash(fmt.Sprintf("Could not load parking spots: %v", err))
		s.backToBooking(w, r, state.UserID)
		return
	}
	if state.ApplySpots(version, spots) {
		state.Modals.Show(view.ModalSpotPicker)
	}
	s.backToBooking(w, r, state.UserID)
}

func (s *Server) PrevFloor(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.State.Gallery.Prev()
	s.backToBooking(w, r, sess.State.UserID)
}

func (s *Server) NextFloor(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.State.Gallery.Next()
	s.backToBooking(w, r, sess.State.UserID)
}

// SelectSpot records the clicked row as the current selection.
func (s *Server) SelectSpot(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	state := sess.State

	number, err := strconv.Atoi(r.FormValue("spot_number"))
	if err == nil {
		var floor *int
		if raw := r.FormValue("floor"); raw != "" && raw != "null" {
			if f, err := strconv.Atoi(raw); err == nil {
				floor = &f
			}
		}
		if spot, found := state.FindSpot(number, floor); found {
			state.SelectSpot(spot)
		}
	}
	s.backToBooking(w, r, state.UserID)
}

func (s *Server) ConfirmSpot(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.State.ConfirmSelection(time.Now())
	s.backToBooking(w, r, sess.State.UserID)
}

func (s *Server) CloseSpotPicker(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.State.ClosePicker()
	s.backToBooking(w, r, sess.State.UserID)
}

// CloseModal dismisses any named modal.
func (s *Server) CloseModal(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.State.Modals.Close(r.FormValue("modal"))
	s.backToBooking(w, r, sess.State.UserID)
}

// SubmitBooking runs the validation pipeline and dispatches the outcome to
// modals, toasts or alerts. Every path leaves the form usable.
func (s *Server) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	state := sess.State
	captureViewport(sess, r)
	state.SetTimes(r.FormValue("start_datetime"), r.FormValue("end_datetime"))

	var floor *int
	if state.Selection != nil {
		floor = state.Selection.Floor
	}
	form := booking.Form{
		UserID:       state.UserID,
		Location:     state.Location,
		StartTime:    state.StartTime,
		EndTime:      state.EndTime,
		SelectedSpot: state.SelectedSpotField,
		Floor:        floor,
	}

	outcome := booking.NewSubmitter(s.api).Submit(r.Context(), form)
	now := time.Now()
	switch outcome.Kind {
	case booking.OutcomeFieldErrors:
		for _, message := range outcome.FieldErrors {
			state.Flash(message)
		}
	case booking.OutcomeSpotToast:
		state.SetToast(outcome.Message, now, time.Second)
	case booking.OutcomePastDate:
		state.Modals.Show(view.ModalPastDate)
	case booking.OutcomeTooShort:
		state.Modals.Show(view.ModalTimeDifference)
	case booking.OutcomeSpotUnavailable, booking.OutcomeServerError, booking.OutcomeNetworkError:
		state.Flash(outcome.Message)
	case booking.OutcomeOccupied:
		state.Modals.Show(view.ModalOccupied)
	case booking.OutcomeBooked:
		state.BookingInfo = fmt.Sprintf("Your parking spot: %d. Full booking details are on your profile page after payment.", outcome.SpotNumber)
		state.Modals.Show(view.ModalBookingInfo)
	}
	s.backToBooking(w, r, state.UserID)
}

// AckBooking closes the confirmation modal and moves on to payment.
func (s *Server) AckBooking(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.State.Modals.Close(view.ModalBookingInfo)
	http.Redirect(w, r, "/pay/"+strconv.Itoa(sess.State.UserID), http.StatusSeeOther)
}
