package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the reservation API. The API reports
// failures as {"detail": "..."} bodies.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("reservation API returned status %d", e.Status)
}

// Client talks to the reservation API.
type Client struct {
	baseURL string
	http    *http.Client
	// bare never follows redirects; auth and payment endpoints answer
	// successful form posts with a redirect we must hand to the browser.
	bare *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		bare: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	} else if len(body) > 0 {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	return apiErr
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, token string, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out interface{}, token string) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListSpots fetches the spot catalog for a composite "lat,lng|address"
// location value.
func (c *Client) ListSpots(ctx context.Context, location string, userID int) ([]ParkingSpot, error) {
	q := url.Values{}
	q.Set("location", location)
	q.Set("user_id", strconv.Itoa(userID))
	var spots []ParkingSpot
	if err := c.getJSON(ctx, "/api/parking_spots", q, "", &spots); err != nil {
		return nil, err
	}
	if spots == nil {
		return nil, fmt.Errorf("expected an array of parking spots")
	}
	return spots, nil
}

// ListSpotsByAddress fetches the catalog keyed by bare address.
func (c *Client) ListSpotsByAddress(ctx context.Context, address string) ([]ParkingSpot, error) {
	q := url.Values{}
	q.Set("address", address)
	var spots []ParkingSpot
	if err := c.getJSON(ctx, "/parking_spots", q, "", &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

func (c *Client) Prices(ctx context.Context) ([]PriceInfo, error) {
	var prices []PriceInfo
	if err := c.getJSON(ctx, "/parking_prices", nil, "", &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// Book posts a booking. Conflicts come back as an *APIError with Status 409.
func (c *Client) Book(ctx context.Context, booking BookingRequest) (*BookingResponse, error) {
	var resp BookingResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/book", booking, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddCar(ctx context.Context, car CarRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/cars", car, nil, "")
}

// Pay starts the payment hand-off for the user's pending booking.
func (c *Client) Pay(ctx context.Context, userID int) (*PayResult, error) {
	body, _ := json.Marshal(map[string]int{"user_id": userID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pay", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.bare.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return &PayResult{RedirectURL: resp.Header.Get("Location")}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}
	var result PayResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelBooking removes a booking (account page flow).
func (c *Client) CancelBooking(ctx context.Context, bookingID int) error {
	return c.sendJSON(ctx, http.MethodDelete, "/cancel_booking/"+strconv.Itoa(bookingID), nil, nil, "")
}

// AbortPendingBooking cancels the not-yet-paid booking from the payment page.
func (c *Client) AbortPendingBooking(ctx context.Context, userID int) error {
	return c.sendJSON(ctx, http.MethodPost, "/cancel_booking/"+strconv.Itoa(userID), nil, nil, "")
}

func (c *Client) BookingDetails(ctx context.Context, bookingID int) (*BookingDetails, error) {
	var details BookingDetails
	if err := c.getJSON(ctx, "/booking_details/"+strconv.Itoa(bookingID), nil, "", &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*AuthResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.bare.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return &AuthResult{
			RedirectURL: resp.Header.Get("Location"),
			Cookies:     resp.Cookies(),
		}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}
	// 2xx without a redirect means the backend did not open a session.
	return &AuthResult{Cookies: resp.Cookies()}, nil
}

func (c *Client) Register(ctx context.Context, username, email, phone, password string) (*AuthResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("email", email)
	form.Set("phone", phone)
	form.Set("password", password)
	return c.postForm(ctx, "/register", form)
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	return c.postForm(ctx, "/login", form)
}
