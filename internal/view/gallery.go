package view

import (
	"sort"

	"parkfront/internal/backend"
)

// Gallery pages through the distinct floors of the current location, one
// scheme image and spot table at a time.
type Gallery struct {
	floors []int
	index  int
}

// NewGallery collects the distinct non-nil floors in ascending order and
// positions the cursor on the first one. A floorless catalog yields an
// empty gallery.
func NewGallery(spots []backend.ParkingSpot) *Gallery {
	seen := map[int]bool{}
	var floors []int
	for _, s := range spots {
		if s.Floor != nil && !seen[*s.Floor] {
			seen[*s.Floor] = true
			floors = append(floors, *s.Floor)
		}
	}
	sort.Ints(floors)
	return &Gallery{floors: floors}
}

func (g *Gallery) HasFloors() bool {
	return len(g.floors) > 0
}

// Current returns the floor under the cursor; ok is false for a floorless
// gallery.
func (g *Gallery) Current() (int, bool) {
	if len(g.floors) == 0 {
		return 0, false
	}
	return g.floors[g.index], true
}

// Prev moves one floor back. At the first floor it is a no-op.
func (g *Gallery) Prev() bool {
	if g.index > 0 {
		g.index--
		return true
	}
	return false
}

// Next moves one floor forward. At the last floor it is a no-op.
func (g *Gallery) Next() bool {
	if g.index < len(g.floors)-1 {
		g.index++
		return true
	}
	return false
}

func (g *Gallery) AtFirst() bool {
	return g.index == 0
}

func (g *Gallery) AtLast() bool {
	return len(g.floors) == 0 || g.index == len(g.floors)-1
}

func (g *Gallery) Floors() []int {
	return g.floors
}

// SpotsOnCurrentFloor filters the catalog to the floor under the cursor.
// Floorless galleries pass the whole catalog through.
func (g *Gallery) SpotsOnCurrentFloor(spots []backend.ParkingSpot) []backend.ParkingSpot {
	floor, ok := g.Current()
	if !ok {
		return spots
	}
	var filtered []backend.ParkingSpot
	for _, s := range spots {
		if s.Floor != nil && *s.Floor == floor {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
