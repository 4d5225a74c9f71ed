package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkfront/internal/backend"
)

func TestRenderAdminFiltersAdminsAndLabelsStatus(t *testing.T) {
	a := NewAdminState()
	a.SetUsers([]backend.AdminUser{
		{UserID: 1, Username: "root", Status: "White", RoleName: "Admin"},
		{UserID: 2, Username: "alice", Status: "White", RoleName: "User"},
		{UserID: 3, Username: "bob", Status: "Black", RoleName: "User"},
	})

	page := RenderAdmin(a, time.Now())

	require.Len(t, page.Users, 2, "admin accounts are hidden")
	assert.Equal(t, "Whitelisted", page.Users[0].StatusLabel)
	assert.False(t, page.Users[0].Blacklisted)
	assert.Equal(t, "Blacklisted", page.Users[1].StatusLabel)
	assert.True(t, page.Users[1].Blacklisted)
	assert.False(t, page.NoUsers)
}

func TestRenderAdminEmptyTables(t *testing.T) {
	a := NewAdminState()
	a.ShowBookings(nil)

	page := RenderAdmin(a, time.Now())

	assert.True(t, page.NoUsers)
	assert.True(t, page.BookingsOpen)
	assert.True(t, page.NoBookings)
}

func TestRenderAdminBookingRows(t *testing.T) {
	floor := 2
	a := NewAdminState()
	a.ShowBookings([]backend.AdminBooking{
		{BookingID: 5, Address: "Kuraeva St. 10", Floor: &floor, StartTime: "2026-08-01 13:00", EndTime: "2026-08-01 15:00"},
	})

	page := RenderAdmin(a, time.Now())

	require.Len(t, page.Bookings, 1)
	row := page.Bookings[0]
	assert.Equal(t, "2", row.FloorLabel)
	assert.Equal(t, "-", row.CarBrand, "missing car data shows a dash")
	assert.Equal(t, "-", row.CarNumber)
}

func TestSelectLocationMultiFloorActivatesFirst(t *testing.T) {
	f1, f2 := 1, 2
	a := NewAdminState()
	a.SelectLocation(2, &backend.AdminSpotsPage{
		Floors: []*int{&f1, &f2},
		Spots: []backend.AdminSpot{
			{SpotID: 10, SpotNumber: 1, Floor: &f1, Price: 100, IsAvailable: true},
			{SpotID: 11, SpotNumber: 2, Floor: &f2, Price: 150, IsAvailable: false},
		},
	})

	page := RenderAdmin(a, time.Now())

	require.Len(t, page.FloorButtons, 2)
	assert.True(t, page.FloorButtons[0].Active)
	assert.Equal(t, "Floor 1", page.FloorButtons[0].Label)
	assert.Equal(t, "1", page.FloorButtons[0].Value)

	// Only the active floor's spots are listed.
	require.Len(t, page.SpotRows, 1)
	assert.Equal(t, 1, page.SpotRows[0].SpotNumber)
}

func TestRenderAdminSingleFloorFlatTable(t *testing.T) {
	a := NewAdminState()
	a.SelectLocation(1, &backend.AdminSpotsPage{
		Floors: []*int{nil},
		Spots: []backend.AdminSpot{
			{SpotID: 1, SpotNumber: 1, Price: 100, IsAvailable: true},
			{SpotID: 2, SpotNumber: 2, Price: 100, IsAvailable: false},
		},
	})

	page := RenderAdmin(a, time.Now())

	assert.Empty(t, page.FloorButtons, "no buttons for a single floor bucket")
	require.Len(t, page.SpotRows, 2)
	assert.False(t, page.ShowFloorColumn)
}

func TestRenderAdminSpotRowActions(t *testing.T) {
	a := NewAdminState()
	a.SelectLocation(1, &backend.AdminSpotsPage{
		Spots: []backend.AdminSpot{
			{SpotID: 1, SpotNumber: 1, Price: 100, IsAvailable: true},
			{SpotID: 2, SpotNumber: 2, Price: 80, IsAvailable: false},
		},
	})

	page := RenderAdmin(a, time.Now())

	require.Len(t, page.SpotRows, 2)
	free := page.SpotRows[0]
	assert.Equal(t, "Available", free.StatusLabel)
	assert.False(t, free.ReserveDisabled)
	assert.True(t, free.FreeDisabled)
	assert.Equal(t, "100.00", free.Price)

	taken := page.SpotRows[1]
	assert.Equal(t, "Reserved", taken.StatusLabel)
	assert.True(t, taken.ReserveDisabled)
	assert.False(t, taken.FreeDisabled)
}

func TestAdminNoticeExpires(t *testing.T) {
	now := time.Now()
	a := NewAdminState()
	a.Notify("Users table refreshed", now)

	page := RenderAdmin(a, now)
	assert.Equal(t, "Users table refreshed", page.Notice)

	later := RenderAdmin(a, now.Add(3*time.Second))
	assert.Empty(t, later.Notice)
}
