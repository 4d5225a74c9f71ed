package view

import (
	"fmt"
	"time"

	"parkfront/internal/backend"
	"parkfront/internal/charts"
)

// AdminState is the dashboard's state container: users tab, spots tab with
// floor buttons, bookings modal and the analytics charts.
type AdminState struct {
	Users    []backend.AdminUser
	Bookings []backend.AdminBooking

	LocationID  int
	SpotsPage   *backend.AdminSpotsPage
	activeFloor *int
	floorSet    bool

	StartDate string
	EndDate   string
	Parkings  charts.BarChart
	Spots     charts.BarChart
	Revenue   charts.BarChart
	HasCharts bool

	BookingsOpen bool
	Notice       Notice
}

func NewAdminState() *AdminState {
	return &AdminState{}
}

func (a *AdminState) SetUsers(users []backend.AdminUser) {
	a.Users = users
}

// ShowBookings loads a user's bookings into the modal and opens it.
func (a *AdminState) ShowBookings(bookings []backend.AdminBooking) {
	a.Bookings = bookings
	a.BookingsOpen = true
}

func (a *AdminState) CloseBookings() {
	a.BookingsOpen = false
}

// SelectLocation installs a freshly fetched spots page and activates the
// first floor button when there is more than one floor bucket.
func (a *AdminState) SelectLocation(locationID int, page *backend.AdminSpotsPage) {
	a.LocationID = locationID
	a.SpotsPage = page
	a.activeFloor = nil
	a.floorSet = false
	if page != nil && len(distinctFloors(page.Floors)) > 1 && len(page.Floors) > 0 {
		a.SelectFloor(page.Floors[0])
	}
}

func (a *AdminState) SelectFloor(floor *int) {
	a.activeFloor = floor
	a.floorSet = true
}

func (a *AdminState) SetCharts(parkings, spots, revenue charts.BarChart, startDate, endDate string) {
	a.Parkings = parkings
	a.Spots = spots
	a.Revenue = revenue
	a.StartDate = startDate
	a.EndDate = endDate
	a.HasCharts = true
}

func (a *AdminState) Notify(message string, now time.Time) {
	a.Notice = Notice{Message: message, Until: now.Add(2 * time.Second)}
}

func distinctFloors(floors []*int) []*int {
	var out []*int
	for _, f := range floors {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// Admin view tree.

type AdminUserRow struct {
	UserID      int
	Username    string
	Email       string
	StatusLabel string
	Blacklisted bool
}

type FloorButton struct {
	Label  string
	Value  string // floor number or "null"
	Active bool
}

type AdminSpotRow struct {
	SpotID          int
	SpotNumber      int
	FloorLabel      string
	Price           string
	StatusLabel     string
	ReserveDisabled bool
	FreeDisabled    bool
}

type AdminBookingRow struct {
	BookingID  int
	Address    string
	FloorLabel string
	StartTime  string
	EndTime    string
	CarBrand   string
	CarNumber  string
}

type AdminPage struct {
	Users           []AdminUserRow
	NoUsers         bool
	FloorButtons    []FloorButton
	ShowFloorColumn bool
	SpotRows        []AdminSpotRow
	LocationID      int
	Bookings        []AdminBookingRow
	NoBookings      bool
	BookingsOpen    bool
	StartDate       string
	EndDate         string
	HasCharts       bool
	Parkings        charts.BarChart
	Spots           charts.BarChart
	Revenue         charts.BarChart
	Notice          string
}

// RenderAdmin derives the dashboard view from the admin state.
func RenderAdmin(a *AdminState, now time.Time) AdminPage {
	page := AdminPage{
		LocationID:   a.LocationID,
		BookingsOpen: a.BookingsOpen,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		HasCharts:    a.HasCharts,
		Parkings:     a.Parkings,
		Spots:        a.Spots,
		Revenue:      a.Revenue,
	}
	if a.Notice.Active(now) {
		page.Notice = a.Notice.Message
	}

	for _, user := range a.Users {
		if user.RoleName == "Admin" {
			continue
		}
		row := AdminUserRow{
			UserID:      user.UserID,
			Username:    user.Username,
			Email:       user.Email,
			StatusLabel: "Whitelisted",
			Blacklisted: user.Status != "White",
		}
		if row.Blacklisted {
			row.StatusLabel = "Blacklisted"
		}
		page.Users = append(page.Users, row)
	}
	page.NoUsers = len(page.Users) == 0

	for _, b := range a.Bookings {
		page.Bookings = append(page.Bookings, AdminBookingRow{
			BookingID:  b.BookingID,
			Address:    b.Address,
			FloorLabel: floorLabel(b.Floor),
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			CarBrand:   orDash(b.CarBrand),
			CarNumber:  orDash(b.CarNumber),
		})
	}
	page.NoBookings = len(page.Bookings) == 0

	if a.SpotsPage != nil {
		renderAdminSpots(a, &page)
	}
	return page
}

// renderAdminSpots builds the floor buttons and the spot table. A location
// with at most one distinct floor gets a single flat table and no buttons.
func renderAdminSpots(a *AdminState, page *AdminPage) {
	multiFloor := len(distinctFloors(a.SpotsPage.Floors)) > 1
	if multiFloor {
		for _, floor := range a.SpotsPage.Floors {
			button := FloorButton{Label: "No floor", Value: "null"}
			if floor != nil {
				button.Label = fmt.Sprintf("Floor %d", *floor)
				button.Value = fmt.Sprintf("%d", *floor)
			}
			button.Active = a.floorSet && sameFloor(a.activeFloor, floor)
			page.FloorButtons = append(page.FloorButtons, button)
		}
	}

	for _, spot := range a.SpotsPage.Spots {
		if multiFloor && a.floorSet && !sameFloor(spot.Floor, a.activeFloor) {
			continue
		}
		page.ShowFloorColumn = multiFloor && a.activeFloor != nil
		page.SpotRows = append(page.SpotRows, AdminSpotRow{
			SpotID:          spot.SpotID,
			SpotNumber:      spot.SpotNumber,
			FloorLabel:      floorLabel(spot.Floor),
			Price:           fmt.Sprintf("%.2f", spot.Price),
			StatusLabel:     spotStatus(spot.IsAvailable),
			ReserveDisabled: !spot.IsAvailable,
			FreeDisabled:    spot.IsAvailable,
		})
	}
}

func spotStatus(available bool) string {
	if available {
		return "Available"
	}
	return "Reserved"
}

func floorLabel(floor *int) string {
	if floor == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *floor)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
