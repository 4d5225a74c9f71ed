package web

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"parkfront/internal/backend"
)

// Car numbers are 6-10 letters and digits (local plates use Cyrillic).
var carNumberPattern = regexp.MustCompile(`^[0-9а-яА-Я]{6,10}$`)

type paymentPageData struct {
	UserID     int
	Notice     string
	PayURL     string
	CarNumber  string
	CarBrand   string
	FieldError string
}

func (s *Server) PaymentPage(w http.ResponseWriter, r *http.Request) {
	userID := pathID(r, "user_id")
	s.render(w, "payment.tmpl", paymentPageData{UserID: userID})
}

// SubmitPayment validates the car form, saves the car and starts the payment
// hand-off. The submit control is request-scoped here, so it can never stay
// stuck disabled.
func (s *Server) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	userID := pathID(r, "user_id")
	carNumber := r.FormValue("car_number")
	carBrand := r.FormValue("car_brand")

	data := paymentPageData{UserID: userID, CarNumber: carNumber, CarBrand: carBrand}

	if !carNumberPattern.MatchString(carNumber) {
		data.FieldError = "Car number must be 6-10 characters (letters and digits)."
		s.render(w, "payment.tmpl", data)
		return
	}
	if carBrand == "" {
		data.FieldError = "Please choose a car brand."
		s.render(w, "payment.tmpl", data)
		return
	}

	car := backend.CarRequest{CarNumber: carNumber, CarBrand: carBrand, UserID: userID}
	if err := s.api.AddCar(r.Context(), car); err != nil {
		log.Printf("Failed to save car for user %d: %v", userID, err)
		data.Notice = "Error: " + errDetail(err, "could not save the car")
		s.render(w, "payment.tmpl", data)
		return
	}

	result, err := s.api.Pay(r.Context(), userID)
	if err != nil {
		log.Printf("Payment request failed for user %d: %v", userID, err)
		data.Notice = "Error: " + errDetail(err, "payment failed")
		s.render(w, "payment.tmpl", data)
		return
	}
	if result.RedirectURL != "" {
		http.Redirect(w, r, result.RedirectURL, http.StatusSeeOther)
		return
	}
	if result.TelegramURL == "" {
		data.Notice = "Error: could not get the payment link"
		s.render(w, "payment.tmpl", data)
		return
	}

	// Hand the payment link to the user and move on to the waiting page.
	data.PayURL = result.TelegramURL
	s.render(w, "payment.tmpl", data)
}

// CancelPendingBooking aborts the unpaid booking from the payment page.
func (s *Server) CancelPendingBooking(w http.ResponseWriter, r *http.Request) {
	userID := pathID(r, "user_id")
	if err := s.api.AbortPendingBooking(r.Context(), userID); err != nil {
		data := paymentPageData{
			UserID: userID,
			Notice: "Cancellation error: " + errDetail(err, "could not cancel the booking"),
		}
		s.render(w, "payment.tmpl", data)
		return
	}
	s.backToBooking(w, r, userID)
}

type waitingPageData struct {
	UserID  int
	Seconds int
	Target  string
}

// WaitingPage shows the post-payment countdown and then returns the user to
// the booking page.
func (s *Server) WaitingPage(w http.ResponseWriter, r *http.Request) {
	userID := pathID(r, "user_id")
	s.render(w, "waiting.tmpl", waitingPageData{
		UserID:  userID,
		Seconds: 3,
		Target:  "/main_page?user_id=" + strconv.Itoa(userID),
	})
}

func errDetail(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if err != nil {
		return fallback
	}
	return fallback
}
