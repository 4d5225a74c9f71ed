package web

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"parkfront/internal/auth"
	"parkfront/internal/charts"
	"parkfront/internal/session"
	"parkfront/internal/view"
)

// SpotActions is the capability handed to the spot-row actions: whoever
// holds it may reserve or free spots, nothing else.
type SpotActions interface {
	Reserve(ctx context.Context, spotID int) (string, error)
	Free(ctx context.Context, spotID int) (string, error)
}

func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	s.render(w, "admin.tmpl", view.RenderAdmin(sess.Admin, time.Now()))
}

func (s *Server) backToAdmin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// RefreshUsers reloads the users table.
func (s *Server) RefreshUsers(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	admin := s.api.Admin(auth.TokenFromContext(r.Context()))

	users, err := admin.Users(r.Context())
	if err != nil {
		log.Printf("Failed to load users: %v", err)
		sess.Admin.Notify("Error: "+errDetail(err, "could not load users"), time.Now())
	} else {
		sess.Admin.SetUsers(users)
		sess.Admin.Notify("Users table refreshed", time.Now())
	}
	s.backToAdmin(w, r)
}

// SetUserStatus toggles a user between the white and black lists.
func (s *Server) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	admin := s.api.Admin(auth.TokenFromContext(r.Context()))
	userID := pathID(r, "id")

	if err := admin.SetUserStatus(r.Context(), userID, r.FormValue("status")); err != nil {
		log.Printf("Failed to update status for user %d: %v", userID, err)
		sess.Admin.Notify("Error: "+errDetail(err, "could not update the user"), time.Now())
		s.backToAdmin(w, r)
		return
	}
	sess.Admin.Notify("User status updated", time.Now())

	// Re-fetch so the table reflects the change.
	if users, err := admin.Users(r.Context()); err == nil {
		sess.Admin.SetUsers(users)
	}
	s.backToAdmin(w, r)
}

func (s *Server) ShowUserBookings(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	admin := s.api.Admin(auth.TokenFromContext(r.Context()))
	userID := pathID(r, "id")

	bookings, err := admin.UserBookings(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to load bookings for user %d: %v", userID, err)
		sess.Admin.Notify("Error: "+errDetail(err, "could not load bookings"), time.Now())
		s.backToAdmin(w, r)
		return
	}
	sess.Admin.ShowBookings(bookings)
	s.backToAdmin(w, r)
}

func (s *Server) CloseBookings(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.Admin.CloseBookings()
	s.backToAdmin(w, r)
}

// AdminSelectLocation loads the spot tables for a parking location.
func (s *Server) AdminSelectLocation(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	admin := s.api.Admin(auth.TokenFromContext(r.Context()))

	locationID, err := strconv.Atoi(r.FormValue("location_id"))
	if err != nil {
		sess.Admin.SelectLocation(0, nil)
		s.backToAdmin(w, r)
		return
	}

	page, err := admin.Spots(r.Context(), locationID)
	if err != nil {
		log.Printf("Failed to load spots for location %d: %v", locationID, err)
		sess.Admin.Notify("Error: "+errDetail(err, "could not load spots"), time.Now())
		s.backToAdmin(w, r)
		return
	}
	sess.Admin.SelectLocation(locationID, page)
	s.backToAdmin(w, r)
}

func (s *Server) AdminSelectFloor(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	var floor *int
	if raw := r.FormValue("floor"); raw != "" && raw != "null" {
		if f, err := strconv.Atoi(raw); err == nil {
			floor = &f
		}
	}
	sess.Admin.SelectFloor(floor)
	s.backToAdmin(w, r)
}

// UpdateSpotPrice saves an inline price edit and re-fetches the table.
func (s *Server) UpdateSpotPrice(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	admin := s.api.Admin(auth.TokenFromContext(r.Context()))
	spotID := pathID(r, "id")

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		sess.Admin.Notify("Please enter a valid price", time.Now())
		s.backToAdmin(w, r)
		return
	}

	message, err := admin.UpdateSpotPrice(r.Context(), spotID, price)
	if err != nil {
		log.Printf("Failed to update price for spot %d: %v", spotID, err)
		sess.Admin.Notify("Error: "+errDetail(err, "could not update the price"), time.Now())
		s.backToAdmin(w, r)
		return
	}
	sess.Admin.Notify(message, time.Now())
	s.reloadAdminSpots(r, sess)
	s.backToAdmin(w, r)
}

func (s *Server) ReserveSpot(w http.ResponseWriter, r *http.Request) {
	s.manageSpot(w, r, func(actions SpotActions, ctx context.Context, spotID int) (string, error) {
		return actions.Reserve(ctx, spotID)
	})
}

func (s *Server) FreeSpot(w http.ResponseWriter, r *http.Request) {
	s.manageSpot(w, r, func(actions SpotActions, ctx context.Context, spotID int) (string, error) {
		return actions.Free(ctx, spotID)
	})
}

func (s *Server) manageSpot(w http.ResponseWriter, r *http.Request, act func(SpotActions, context.Context, int) (string, error)) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	var actions SpotActions = s.api.Admin(auth.TokenFromContext(r.Context()))
	spotID := pathID(r, "id")

	message, err := act(actions, r.Context(), spotID)
	if err != nil {
		log.Printf("Spot %d action failed: %v", spotID, err)
		sess.Admin.Notify("Error: "+errDetail(err, "unknown server error"), time.Now())
		s.backToAdmin(w, r)
		return
	}
	sess.Admin.Notify(message, time.Now())
	s.reloadAdminSpots(r, sess)
	s.backToAdmin(w, r)
}

// reloadAdminSpots re-fetches the current location so the table reflects a
// just-made change, keeping the active floor selection.
func (s *Server) reloadAdminSpots(r *http.Request, sess *session.Session) {
	if sess.Admin.LocationID == 0 {
		return
	}
	admin := s.api.Admin(auth.TokenFromContext(r.Context()))
	page, err := admin.Spots(r.Context(), sess.Admin.LocationID)
	if err != nil {
		log.Printf("Failed to reload spots for location %d: %v", sess.Admin.LocationID, err)
		return
	}
	sess.Admin.SelectLocation(sess.Admin.LocationID, page)
}

func (s *Server) analyticsError(sess *session.Session, err error) {
	log.Printf("Failed to load analytics: %v", err)
	sess.Admin.Notify("Error: "+errDetail(err, "could not load analytics"), time.Now())
}

// LoadAnalytics fetches the three analytics series and rebuilds the charts.
func (s *Server) LoadAnalytics(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.Lock()
	defer sess.Unlock()
	admin := s.api.Admin(auth.TokenFromContext(r.Context()))

	startDate := r.FormValue("start_date")
	endDate := r.FormValue("end_date")
	if startDate == "" || endDate == "" {
		sess.Admin.Notify("Please choose both dates", time.Now())
		s.backToAdmin(w, r)
		return
	}

	parkings, err := admin.ParkingsAnalytics(r.Context(), startDate, endDate)
	if err != nil {
		s.analyticsError(sess, err)
		s.backToAdmin(w, r)
		return
	}
	spots, err := admin.SpotsAnalytics(r.Context(), startDate, endDate)
	if err != nil {
		s.analyticsError(sess, err)
		s.backToAdmin(w, r)
		return
	}
	revenue, err := admin.RevenueAnalytics(r.Context(), startDate, endDate)
	if err != nil {
		s.analyticsError(sess, err)
		s.backToAdmin(w, r)
		return
	}

	sess.Admin.SetCharts(
		charts.ParkingsChart(parkings),
		charts.SpotsChart(spots),
		charts.RevenueChart(revenue),
		startDate, endDate,
	)
	s.backToAdmin(w, r)
}
