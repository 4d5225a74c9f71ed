package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"parkfront/internal/backend"
)

type accountPageData struct {
	UserID         int
	SuccessNotice  bool
	DeletingNotice bool
	ErrorModal     bool
}

func (s *Server) AccountPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "account.tmpl", accountPageData{UserID: pathID(r, "user_id")})
}

// BookingDetails looks a booking up before navigating to it. A booking that
// disappeared in the meantime shows the short "being deleted" notice.
func (s *Server) BookingDetails(w http.ResponseWriter, r *http.Request) {
	userID := pathID(r, "user_id")
	bookingID, _ := strconv.Atoi(r.FormValue("booking_id"))

	details, err := s.api.BookingDetails(r.Context(), bookingID)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			s.render(w, "account.tmpl", accountPageData{UserID: userID, DeletingNotice: true})
			return
		}
		log.Printf("Failed to load booking %d: %v", bookingID, err)
		s.render(w, "account.tmpl", accountPageData{UserID: userID, ErrorModal: true})
		return
	}

	s.render(w, "details.tmpl", details)
}

// CancelBooking removes a booking after the confirm modal.
func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID := pathID(r, "user_id")
	bookingID, _ := strconv.Atoi(r.FormValue("booking_id"))

	if err := s.api.CancelBooking(r.Context(), bookingID); err != nil {
		log.Printf("Failed to cancel booking %d: %v", bookingID, err)
		s.render(w, "account.tmpl", accountPageData{UserID: userID, ErrorModal: true})
		return
	}
	s.render(w, "account.tmpl", accountPageData{UserID: userID, SuccessNotice: true})
}
