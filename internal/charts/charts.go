package charts

import (
	"fmt"
	"math/rand"
	"sort"

	"parkfront/internal/backend"
)

// Dataset and BarChart mirror the structure the charting library consumes.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

type BarChart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ParkingsChart is the per-location booking-count bar chart.
func ParkingsChart(rows []backend.ParkingAnalytics) BarChart {
	chart := BarChart{}
	data := make([]float64, 0, len(rows))
	for _, row := range rows {
		chart.Labels = append(chart.Labels, row.Address)
		data = append(data, float64(row.BookingCount))
	}
	chart.Datasets = []Dataset{{
		Label:           "Bookings",
		Data:            data,
		BackgroundColor: "#3498db",
		BorderColor:     "#2980b9",
		BorderWidth:     1,
	}}
	return chart
}

// SpotsChart is the per-spot average booking duration bar chart.
func SpotsChart(rows []backend.SpotAnalytics) BarChart {
	chart := BarChart{}
	data := make([]float64, 0, len(rows))
	for _, row := range rows {
		label := fmt.Sprintf("%d (%s", row.SpotNumber, row.Address)
		if row.Floor != nil {
			label += fmt.Sprintf(", fl. %d", *row.Floor)
		}
		label += ")"
		chart.Labels = append(chart.Labels, label)
		data = append(data, row.AvgHours)
	}
	chart.Datasets = []Dataset{{
		Label:           "Average booking time (hours)",
		Data:            data,
		BackgroundColor: "#2ecc71",
		BorderColor:     "#27ae60",
		BorderWidth:     1,
	}}
	return chart
}

// RevenueChart groups revenue by date and location: one dataset per distinct
// address, one column per distinct date sorted ascending, zero for missing
// (date, address) pairs. Series colors are drawn at random.
func RevenueChart(rows []backend.RevenueAnalytics) BarChart {
	var dates []string
	seenDates := map[string]bool{}
	var addresses []string
	seenAddresses := map[string]bool{}
	revenue := map[string]map[string]float64{}

	for _, row := range rows {
		if !seenDates[row.Date] {
			seenDates[row.Date] = true
			dates = append(dates, row.Date)
		}
		if !seenAddresses[row.Address] {
			seenAddresses[row.Address] = true
			addresses = append(addresses, row.Address)
			revenue[row.Address] = map[string]float64{}
		}
		revenue[row.Address][row.Date] = row.Revenue
	}
	sort.Strings(dates)

	chart := BarChart{Labels: dates}
	for _, address := range addresses {
		data := make([]float64, len(dates))
		for i, date := range dates {
			data[i] = revenue[address][date]
		}
		chart.Datasets = append(chart.Datasets, Dataset{
			Label:           address,
			Data:            data,
			BackgroundColor: RandomColor(),
			BorderColor:     RandomColor(),
			BorderWidth:     1,
		})
	}
	return chart
}

// RandomColor returns a random #RRGGBB hex color.
func RandomColor() string {
	const letters = "0123456789ABCDEF"
	color := make([]byte, 7)
	color[0] = '#'
	for i := 1; i < 7; i++ {
		color[i] = letters[rand.Intn(len(letters))]
	}
	return string(color)
}
