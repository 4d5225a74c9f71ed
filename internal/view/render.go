package view

import (
	"fmt"
	"time"

	"parkfront/internal/backend"
)

// View tree for the booking page. Handlers mutate State; Render derives the
// whole page from it in one pass, so there is no side-channel between the
// two.

type SpotRow struct {
	SpotNumber int
	Floor      *int
	FloorLabel string
	Status     string
	Price      string
	Selected   bool
	Disabled   bool
}

type SchemeView struct {
	ImagePath   string
	Placeholder bool
}

type GalleryView struct {
	Visible      bool
	FloorLabel   string
	PrevDisabled bool
	NextDisabled bool
}

type PickerView struct {
	ShowFloorColumn bool
	Rows            []SpotRow
	Gallery         GalleryView
	Scheme          SchemeView
	ConfirmEnabled  bool
}

type BookingForm struct {
	Location     string
	StartTime    string
	EndTime      string
	SelectedSpot string
	PriceDisplay string
}

type Page struct {
	UserID int
	Lock   Lock
	Form   BookingForm
	Map    MapView
	Picker *PickerView
	Modals map[string]bool
	Prices []backend.PriceInfo
	Info   string
	Toast  string
	Alerts []string
}

// Render builds the booking page from the state. It is the only producer of
// view trees for the customer flow; templates consume its output verbatim.
func Render(s *State, schemes *SchemeResolver, now time.Time) Page {
	page := Page{
		UserID: s.UserID,
		Lock:   s.Modals.Lock(),
		Form: BookingForm{
			Location:     s.Location,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			SelectedSpot: s.SelectedSpotField,
			PriceDisplay: s.PriceDisplay,
		},
		Map: s.Map,
		Modals: map[string]bool{
			ModalSpotPicker:     s.Modals.IsOpen(ModalSpotPicker),
			ModalPastDate:       s.Modals.IsOpen(ModalPastDate),
			ModalTimeDifference: s.Modals.IsOpen(ModalTimeDifference),
			ModalOccupied:       s.Modals.IsOpen(ModalOccupied),
			ModalBookingInfo:    s.Modals.IsOpen(ModalBookingInfo),
		},
		Prices: s.Prices,
		Info:   s.BookingInfo,
		Alerts: s.DrainAlerts(),
	}
	if s.Toast.Active(now) {
		page.Toast = s.Toast.Message
	}
	if s.Modals.IsOpen(ModalSpotPicker) {
		picker := renderPicker(s, schemes)
		page.Picker = &picker
	}
	return page
}

func renderPicker(s *State, schemes *SchemeResolver) PickerView {
	picker := PickerView{
		ShowFloorColumn: s.HasFloors,
		ConfirmEnabled:  s.CanConfirm(),
	}

	var floorPtr *int
	if floor, ok := s.Gallery.Current(); ok {
		f := floor
		floorPtr = &f
		picker.Gallery = GalleryView{
			Visible:      true,
			FloorLabel:   fmt.Sprintf("Floor %d", floor),
			PrevDisabled: s.Gallery.AtFirst(),
			NextDisabled: s.Gallery.AtLast(),
		}
	}

	address := s.Address()
	if path, ok := schemes.Resolve(address, floorPtr); ok {
		picker.Scheme = SchemeView{ImagePath: path}
	} else {
		picker.Scheme = SchemeView{Placeholder: true}
	}

	for _, spot := range s.Gallery.SpotsOnCurrentFloor(s.Spots) {
		picker.Rows = append(picker.Rows, renderSpotRow(spot, s.Selection, s.HasFloors))
	}
	return picker
}

func renderSpotRow(spot backend.ParkingSpot, selection *backend.ParkingSpot, hasFloors bool) SpotRow {
	row := SpotRow{
		SpotNumber: spot.SpotNumber,
		Floor:      spot.Floor,
		Status:     "Available",
		Price:      fmt.Sprintf("%.2f", spot.Price),
		Disabled:   !spot.IsAvailable,
	}
	if !spot.IsAvailable {
		row.Status = "Occupied"
	}
	if spot.Floor != nil {
		row.FloorLabel = fmt.Sprintf("%d", *spot.Floor)
	} else {
		row.FloorLabel = "No floor"
	}
	if selection != nil && spot.IsAvailable && selection.SpotNumber == spot.SpotNumber {
		if !hasFloors || sameFloor(selection.Floor, spot.Floor) {
			row.Selected = true
		}
	}
	return row
}

func sameFloor(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
