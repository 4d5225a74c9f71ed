package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"parkfront/internal/backend"
)

// PricePlaceholder is shown in the read-only price field until a spot is
// confirmed.
const PricePlaceholder = "Select a spot"

// Modal ids used by the booking page.
const (
	ModalSpotPicker     = "spotModal"
	ModalPastDate       = "pastDateModal"
	ModalTimeDifference = "timeDifferenceModal"
	ModalOccupied       = "occupiedParkingModal"
	ModalBookingInfo    = "bookingInfoModal"
)

// Notice is a transient message with an auto-dismiss deadline.
type Notice struct {
	Message string
	Until   time.Time
}

func (n Notice) Active(now time.Time) bool {
	return n.Message != "" && now.Before(n.Until)
}

// MapView is the map panel state: center, marker and address caption. Tile
// rendering belongs to the mapping library; we only carry the coordinates.
type MapView struct {
	Lat     float64
	Lng     float64
	Address string
}

// State is the explicit per-visitor UI state container. Every mutation goes
// through a method; handlers never touch fields of other slots directly.
type State struct {
	UserID int

	// Booking form fields, kept as submitted.
	Location  string // composite "lat,lng|address"
	StartTime string
	EndTime   string

	// Hidden selected-spot field and the read-only price display.
	SelectedSpotField string
	PriceDisplay      string

	// Spot catalog slot. The version guards against a stale response
	// overwriting a newer one when fetches overlap.
	Spots          []backend.ParkingSpot
	HasFloors      bool
	issuedVersion  uint64
	appliedVersion uint64

	Gallery   *Gallery
	Selection *backend.ParkingSpot

	Modals *Modals
	Map    MapView
	Prices []backend.PriceInfo

	BookingInfo string // confirmation modal body, set on a successful booking

	Toast  Notice
	alerts []string
}

func NewState(userID int) *State {
	return &State{
		UserID:       userID,
		PriceDisplay: PricePlaceholder,
		Modals:       NewModals(),
		Gallery:      NewGallery(nil),
	}
}

// SplitLocation breaks a composite "lat,lng|address" value apart.
func SplitLocation(location string) (lat, lng float64, address string) {
	parts := strings.SplitN(location, "|", 2)
	if len(parts) == 2 {
		address = strings.TrimSpace(parts[1])
	}
	coords := strings.SplitN(parts[0], ",", 2)
	if len(coords) == 2 {
		lat, _ = strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		lng, _ = strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
	}
	return lat, lng, address
}

// SetLocation records a new location and resets everything tied to the old
// one: selection, hidden field, price display and the map marker.
func (s *State) SetLocation(location string) {
	s.Location = location
	s.Selection = nil
	s.SelectedSpotField = ""
	s.PriceDisplay = PricePlaceholder
	lat, lng, address := SplitLocation(location)
	s.Map = MapView{Lat: lat, Lng: lng, Address: address}
}

func (s *State) Address() string {
	_, _, address := SplitLocation(s.Location)
	return address
}

func (s *State) SetTimes(start, end string) {
	s.StartTime = start
	s.EndTime = end
}

// BeginSpotLoad issues a new version for the catalog slot. The caller tags
// its in-flight fetch with the returned value.
func (s *State) BeginSpotLoad() uint64 {
	s.issuedVersion++
	return s.issuedVersion
}

// ApplySpots installs a fetched catalog only if it belongs to the latest
// issued load; a response that lost the race is dropped.
func (s *State) ApplySpots(version uint64, spots []backend.ParkingSpot) bool {
	if version != s.issuedVersion || version <= s.appliedVersion {
		return false
	}
	s.appliedVersion = version
	s.Spots = spots
	s.HasFloors = backend.HasFloors(spots)
	s.Gallery = NewGallery(spots)
	return true
}

// SelectSpot records the clicked spot and reflects its price. Only available
// spots are selectable; rows for occupied spots are rendered disabled.
func (s *State) SelectSpot(spot backend.ParkingSpot) bool {
	if !spot.IsAvailable {
		return false
	}
	copied := spot
	s.Selection = &copied
	s.PriceDisplay = fmt.Sprintf("%.2f", spot.Price)
	return true
}

// FindSpot locates a spot in the loaded catalog by number and floor.
func (s *State) FindSpot(number int, floor *int) (backend.ParkingSpot, bool) {
	for _, spot := range s.Spots {
		if spot.SpotNumber != number {
			continue
		}
		if floor == nil && spot.Floor == nil {
			return spot, true
		}
		if floor != nil && spot.Floor != nil && *spot.Floor == *floor {
			return spot, true
		}
	}
	return backend.ParkingSpot{}, false
}

// CanConfirm mirrors the confirm control: disabled whenever nothing is
// selected.
func (s *State) CanConfirm() bool {
	return s.Selection != nil
}

// ConfirmSelection copies the selection into the hidden form field, raises
// the one-second confirmation toast and closes the picker.
func (s *State) ConfirmSelection(now time.Time) bool {
	if s.Selection == nil {
		return false
	}
	s.SelectedSpotField = strconv.Itoa(s.Selection.SpotNumber)
	s.PriceDisplay = fmt.Sprintf("%.2f", s.Selection.Price)
	message := fmt.Sprintf("Selected spot #%d", s.Selection.SpotNumber)
	if s.Selection.Floor != nil {
		message += fmt.Sprintf(", floor %d", *s.Selection.Floor)
	}
	s.Toast = Notice{Message: message, Until: now.Add(time.Second)}
	s.Modals.Close(ModalSpotPicker)
	return true
}

// ClosePicker dismisses the spot picker. An unconfirmed selection survives
// only if a spot was confirmed earlier; otherwise it is cleared along with
// the price display.
func (s *State) ClosePicker() {
	s.Modals.Close(ModalSpotPicker)
	if s.SelectedSpotField == "" {
		s.Selection = nil
		s.PriceDisplay = PricePlaceholder
	}
}

// Flash queues an alert for the next render.
func (s *State) Flash(message string) {
	s.alerts = append(s.alerts, message)
}

// DrainAlerts hands out the queued alerts and clears the queue.
func (s *State) DrainAlerts() []string {
	alerts := s.alerts
	s.alerts = nil
	return alerts
}

// SetToast raises a transient notification with the given lifetime.
func (s *State) SetToast(message string, now time.Time, ttl time.Duration) {
	s.Toast = Notice{Message: message, Until: now.Add(ttl)}
}
