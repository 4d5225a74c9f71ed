package charts

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkfront/internal/backend"
)

func TestParkingsChart(t *testing.T) {
	chart := ParkingsChart([]backend.ParkingAnalytics{
		{Address: "Kuraeva St. 10", BookingCount: 12},
		{Address: "Volodarskogo St. 11", BookingCount: 4},
	})

	assert.Equal(t, []string{"Kuraeva St. 10", "Volodarskogo St. 11"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, "Bookings", chart.Datasets[0].Label)
	assert.Equal(t, []float64{12, 4}, chart.Datasets[0].Data)
}

func TestSpotsChartLabels(t *testing.T) {
	floor := 3
	chart := SpotsChart([]backend.SpotAnalytics{
		{SpotNumber: 7, Address: "Kuraeva St. 10", Floor: &floor, AvgHours: 2.5},
		{SpotNumber: 1, Address: "Volodarskogo St. 11", AvgHours: 1},
	})

	assert.Equal(t, []string{"7 (Kuraeva St. 10, fl. 3)", "1 (Volodarskogo St. 11)"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, []float64{2.5, 1}, chart.Datasets[0].Data)
}

func TestRevenueChartGroupsByAddressAndDate(t *testing.T) {
	chart := RevenueChart([]backend.RevenueAnalytics{
		{Date: "2026-08-02", Address: "Kuraeva St. 10", Revenue: 200},
		{Date: "2026-08-01", Address: "Kuraeva St. 10", Revenue: 100},
		{Date: "2026-08-01", Address: "Volodarskogo St. 11", Revenue: 50},
	})

	// One column per distinct date, ascending.
	assert.Equal(t, []string{"2026-08-01", "2026-08-02"}, chart.Labels)
	// One dataset per distinct address.
	require.Len(t, chart.Datasets, 2)

	byLabel := map[string][]float64{}
	for _, ds := range chart.Datasets {
		byLabel[ds.Label] = ds.Data
	}
	assert.Equal(t, []float64{100, 200}, byLabel["Kuraeva St. 10"])
	// Missing (date, address) pairs are zero-filled.
	assert.Equal(t, []float64{50, 0}, byLabel["Volodarskogo St. 11"])
}

func TestRevenueChartEmpty(t *testing.T) {
	chart := RevenueChart(nil)
	assert.Empty(t, chart.Labels)
	assert.Empty(t, chart.Datasets)
}

func TestRandomColor(t *testing.T) {
	pattern := regexp.MustCompile(`^#[0-9A-F]{6}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, RandomColor())
	}
}
