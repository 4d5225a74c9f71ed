package view

import (
	"os"
	"path/filepath"
	"strconv"
)

// SchemeResolver maps (address, floor) to a parking scheme image. Lookups
// never fail hard: a missing mapping or a missing file just means the page
// shows the "no scheme" placeholder.
type SchemeResolver struct {
	catalog map[string]map[string]string
	exists  func(path string) bool
}

func NewSchemeResolver(catalog map[string]map[string]string, exists func(string) bool) *SchemeResolver {
	if exists == nil {
		exists = fileExists
	}
	return &SchemeResolver{catalog: catalog, exists: exists}
}

func fileExists(path string) bool {
	info, err := os.Stat(filepath.Join("static", filepath.FromSlash(path)))
	return err == nil && !info.IsDir()
}

// Resolve returns the image path for the address and floor, using the
// "default" entry for floorless locations. ok is false when no usable
// image exists.
func (r *SchemeResolver) Resolve(address string, floor *int) (string, bool) {
	byFloor, found := r.catalog[address]
	if !found {
		return "", false
	}
	key := "default"
	if floor != nil {
		key = strconv.Itoa(*floor)
	}
	path, found := byFloor[key]
	if !found || !r.exists(path) {
		return "", false
	}
	return path, true
}

// DefaultSchemes is the shipped scheme catalog for the known locations.
func DefaultSchemes() map[string]map[string]string {
	return map[string]map[string]string{
		"Volodarskogo St. 11": {
			"default": "/images/parking_schemes/volodarskogo.png",
		},
		"Kuraeva St. 10": {
			"1": "/images/parking_schemes/kuraeva_floor1.png",
			"2": "/images/parking_schemes/kuraeva_floor2.png",
			"3": "/images/parking_schemes/kuraeva_floor3.png",
			"4": "/images/parking_schemes/kuraeva_floor4.png",
			"5": "/images/parking_schemes/kuraeva_floor5.png",
		},
		"Maksima Gorkogo St. 52": {
			"default": "/images/parking_schemes/maksima_gorkogo.png",
		},
	}
}
