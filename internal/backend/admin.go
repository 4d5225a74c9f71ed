package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Admin exposes the protected endpoints with a bearer token bound in, so
// callers hold a capability rather than re-threading credentials.
type Admin struct {
	client *Client
	token  string
}

func (c *Client) Admin(token string) *Admin {
	return &Admin{client: c, token: token}
}

func (a *Admin) Users(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	if err := a.client.getJSON(ctx, "/admin/users", nil, a.token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *Admin) SetUserStatus(ctx context.Context, userID int, status string) error {
	body := map[string]string{"status": status}
	return a.client.sendJSON(ctx, http.MethodPost, "/admin/users/"+strconv.Itoa(userID)+"/status", body, nil, a.token)
}

func (a *Admin) UserBookings(ctx context.Context, userID int) ([]AdminBooking, error) {
	var bookings []AdminBooking
	if err := a.client.getJSON(ctx, "/admin/users/"+strconv.Itoa(userID)+"/bookings", nil, a.token, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (a *Admin) Spots(ctx context.Context, locationID int) (*AdminSpotsPage, error) {
	var page AdminSpotsPage
	if err := a.client.getJSON(ctx, "/admin/spots/"+strconv.Itoa(locationID), nil, a.token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *Admin) UpdateSpotPrice(ctx context.Context, spotID int, price float64) (string, error) {
	body := map[string]float64{"price": price}
	var resp struct {
		Message string `json:"message"`
	}
	err := a.client.sendJSON(ctx, http.MethodPost, "/admin/spots/"+strconv.Itoa(spotID)+"/update_price", body, &resp, a.token)
	return resp.Message, err
}

func (a *Admin) manageSpot(ctx context.Context, spotID int, action string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := a.client.sendJSON(ctx, http.MethodPost, "/admin/spots/"+strconv.Itoa(spotID)+"/"+action, nil, &resp, a.token)
	return resp.Message, err
}

func (a *Admin) Reserve(ctx context.Context, spotID int) (string, error) {
	return a.manageSpot(ctx, spotID, "reserve")
}

func (a *Admin) Free(ctx context.Context, spotID int) (string, error) {
	return a.manageSpot(ctx, spotID, "free")
}

func (a *Admin) analytics(ctx context.Context, kind, startDate, endDate string, out interface{}) error {
	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	return a.client.getJSON(ctx, "/admin/analytics/"+kind, q, a.token, out)
}

// Analytics date bounds are day-granular; the API expects full timestamps.
func analyticsRange(startDate, endDate string) (string, string) {
	return startDate + "T00:00:00", endDate + "T23:59:59"
}

func (a *Admin) ParkingsAnalytics(ctx context.Context, startDate, endDate string) ([]ParkingAnalytics, error) {
	start, end := analyticsRange(startDate, endDate)
	var rows []ParkingAnalytics
	if err := a.analytics(ctx, "parkings", start, end, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *Admin) SpotsAnalytics(ctx context.Context, startDate, endDate string) ([]SpotAnalytics, error) {
	start, end := analyticsRange(startDate, endDate)
	var rows []SpotAnalytics
	if err := a.analytics(ctx, "spots", start, end, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *Admin) RevenueAnalytics(ctx context.Context, startDate, endDate string) ([]RevenueAnalytics, error) {
	start, end := analyticsRange(startDate, endDate)
	var rows []RevenueAnalytics
	if err := a.analytics(ctx, "revenue", start, end, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
