package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkfront/internal/backend"
)

func TestRenderPlainPage(t *testing.T) {
	s := NewState(3)
	s.SetLocation("53.19,45.01|Kuraeva St. 10")
	s.SetTimes("2026-08-01T13:00", "2026-08-01T15:00")

	page := Render(s, NewSchemeResolver(DefaultSchemes(), allExist), time.Now())

	assert.Equal(t, 3, page.UserID)
	assert.False(t, page.Lock.Locked)
	assert.Nil(t, page.Picker)
	assert.Equal(t, "Kuraeva St. 10", page.Map.Address)
	assert.Equal(t, PricePlaceholder, page.Form.PriceDisplay)
	assert.False(t, page.Modals[ModalSpotPicker])
}

func TestRenderOpenPickerWithFloors(t *testing.T) {
	floor1, floor2 := 1, 2
	s := NewState(3)
	s.SetLocation("53.19,45.01|Kuraeva St. 10")
	s.ApplySpots(s.BeginSpotLoad(), []backend.ParkingSpot{
		{SpotNumber: 1, Floor: &floor1, IsAvailable: true, Price: 100},
		{SpotNumber: 2, Floor: &floor1, IsAvailable: false, Price: 100},
		{SpotNumber: 3, Floor: &floor2, IsAvailable: true, Price: 150},
	})
	s.Modals.Show(ModalSpotPicker)

	page := Render(s, NewSchemeResolver(DefaultSchemes(), allExist), time.Now())

	assert.True(t, page.Lock.Locked)
	require.NotNil(t, page.Picker)
	picker := page.Picker

	assert.True(t, picker.ShowFloorColumn)
	assert.True(t, picker.Gallery.Visible)
	assert.Equal(t, "Floor 1", picker.Gallery.FloorLabel)
	assert.True(t, picker.Gallery.PrevDisabled)
	assert.False(t, picker.Gallery.NextDisabled)
	assert.Equal(t, "/images/parking_schemes/kuraeva_floor1.png", picker.Scheme.ImagePath)

	// Only the current floor's spots are listed.
	require.Len(t, picker.Rows, 2)
	assert.Equal(t, "Available", picker.Rows[0].Status)
	assert.False(t, picker.Rows[0].Disabled)
	assert.Equal(t, "Occupied", picker.Rows[1].Status)
	assert.True(t, picker.Rows[1].Disabled)

	assert.False(t, picker.ConfirmEnabled, "nothing selected yet")
}

func TestRenderMarksSelectedRow(t *testing.T) {
	floor := 1
	s := NewState(3)
	s.SetLocation("53.19,45.01|Kuraeva St. 10")
	s.ApplySpots(s.BeginSpotLoad(), []backend.ParkingSpot{
		{SpotNumber: 1, Floor: &floor, IsAvailable: true, Price: 100},
		{SpotNumber: 2, Floor: &floor, IsAvailable: true, Price: 100},
	})
	s.Modals.Show(ModalSpotPicker)
	spot, _ := s.FindSpot(2, &floor)
	require.True(t, s.SelectSpot(spot))

	page := Render(s, NewSchemeResolver(DefaultSchemes(), allExist), time.Now())

	require.NotNil(t, page.Picker)
	assert.False(t, page.Picker.Rows[0].Selected)
	assert.True(t, page.Picker.Rows[1].Selected)
	assert.True(t, page.Picker.ConfirmEnabled)
}

func TestRenderSchemePlaceholder(t *testing.T) {
	s := NewState(3)
	s.SetLocation("1,2|Nowhere St. 1")
	s.ApplySpots(s.BeginSpotLoad(), []backend.ParkingSpot{
		{SpotNumber: 1, IsAvailable: true},
	})
	s.Modals.Show(ModalSpotPicker)

	page := Render(s, NewSchemeResolver(DefaultSchemes(), allExist), time.Now())

	require.NotNil(t, page.Picker)
	assert.True(t, page.Picker.Scheme.Placeholder)
	assert.False(t, page.Picker.Gallery.Visible, "floorless catalog hides the gallery")
	assert.False(t, page.Picker.ShowFloorColumn)
}

func TestRenderToastExpiry(t *testing.T) {
	now := time.Now()
	s := NewState(3)
	s.SetToast("Selected spot #4", now, time.Second)

	page := Render(s, NewSchemeResolver(DefaultSchemes(), allExist), now)
	assert.Equal(t, "Selected spot #4", page.Toast)

	later := Render(s, NewSchemeResolver(DefaultSchemes(), allExist), now.Add(2*time.Second))
	assert.Empty(t, later.Toast)
}

func TestRenderDrainsAlertsOnce(t *testing.T) {
	s := NewState(3)
	s.Flash("Could not load parking prices.")

	page := Render(s, NewSchemeResolver(DefaultSchemes(), allExist), time.Now())
	assert.Equal(t, []string{"Could not load parking prices."}, page.Alerts)

	again := Render(s, NewSchemeResolver(DefaultSchemes(), allExist), time.Now())
	assert.Empty(t, again.Alerts)
}
