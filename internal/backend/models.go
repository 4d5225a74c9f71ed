package backend

import "net/http"

// ParkingSpot is one parking space as returned by the spot-listing endpoints.
// Floor is nil for single-level locations.
type ParkingSpot struct {
	SpotNumber  int     `json:"spot_number"`
	Floor       *int    `json:"floor"`
	IsAvailable bool    `json:"is_available"`
	Price       float64 `json:"price"`
}

// HasFloors reports whether any spot in the catalog carries a floor number.
func HasFloors(spots []ParkingSpot) bool {
	for _, s := range spots {
		if s.Floor != nil {
			return true
		}
	}
	return false
}

// BookingRequest is the payload for POST /book. Floor is omitted entirely
// when the location has no floors.
type BookingRequest struct {
	UserID     int    `json:"user_id"`
	Address    string `json:"address"`
	SpotNumber int    `json:"spot_number"`
	Floor      *int   `json:"floor,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type BookingResponse struct {
	BookingID  int     `json:"booking_id"`
	SpotNumber int     `json:"spot_number"`
	Amount     float64 `json:"amount"`
}

type PriceInfo struct {
	Address string  `json:"address"`
	Price   float64 `json:"price"`
}

type CarRequest struct {
	CarNumber string `json:"car_number"`
	CarBrand  string `json:"car_brand"`
	UserID    int    `json:"user_id"`
}

// PayResult carries whichever continuation the payment endpoint returned:
// an external payment link or a plain redirect.
type PayResult struct {
	TelegramURL string `json:"telegram_url"`
	RedirectURL string `json:"-"`
}

type BookingDetails struct {
	BookingID  int     `json:"booking_id"`
	Address    string  `json:"address"`
	SpotNumber int     `json:"spot_number"`
	Floor      *int    `json:"floor"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// AuthResult is the outcome of a register/login form post. The backend
// answers successful attempts with a redirect and a session cookie.
type AuthResult struct {
	RedirectURL string
	Cookies     []*http.Cookie
}

// Admin payloads. Field casing follows the admin API wire format.

type AdminUser struct {
	UserID   int    `json:"UserID"`
	Username string `json:"Username"`
	Email    string `json:"Email"`
	Status   string `json:"Status"`
	RoleName string `json:"RoleName"`
}

type AdminBooking struct {
	BookingID int    `json:"bookingId"`
	Address   string `json:"address"`
	Floor     *int   `json:"floor"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CarBrand  string `json:"carBrand"`
	CarNumber string `json:"carNumber"`
}

type AdminSpot struct {
	SpotID      int     `json:"SpotID"`
	SpotNumber  int     `json:"SpotNumber"`
	Floor       *int    `json:"Floor"`
	Price       float64 `json:"Price"`
	IsAvailable bool    `json:"IsAvailable"`
}

type AdminSpotsPage struct {
	Floors []*int      `json:"floors"`
	Spots  []AdminSpot `json:"spots"`
}

type ParkingAnalytics struct {
	Address      string `json:"address"`
	BookingCount int    `json:"booking_count"`
}

type SpotAnalytics struct {
	SpotNumber int     `json:"spot_number"`
	Address    string  `json:"address"`
	Floor      *int    `json:"floor"`
	AvgHours   float64 `json:"avg_hours"`
}

type RevenueAnalytics struct {
	Date    string  `json:"date"`
	Address string  `json:"address"`
	Revenue float64 `json:"revenue"`
}
