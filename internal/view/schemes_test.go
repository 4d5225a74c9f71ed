package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allExist(string) bool { return true }

func TestResolveFloorlessUsesDefault(t *testing.T) {
	r := NewSchemeResolver(DefaultSchemes(), allExist)

	path, ok := r.Resolve("Volodarskogo St. 11", nil)
	assert.True(t, ok)
	assert.Equal(t, "/images/parking_schemes/volodarskogo.png", path)
}

func TestResolveByFloor(t *testing.T) {
	r := NewSchemeResolver(DefaultSchemes(), allExist)

	floor := 3
	path, ok := r.Resolve("Kuraeva St. 10", &floor)
	assert.True(t, ok)
	assert.Equal(t, "/images/parking_schemes/kuraeva_floor3.png", path)
}

func TestResolveMisses(t *testing.T) {
	r := NewSchemeResolver(DefaultSchemes(), allExist)

	_, ok := r.Resolve("Nowhere St. 1", nil)
	assert.False(t, ok, "unknown address")

	floor := 99
	_, ok = r.Resolve("Kuraeva St. 10", &floor)
	assert.False(t, ok, "unknown floor")

	// A floorless lookup against a floored catalog has no default entry.
	_, ok = r.Resolve("Kuraeva St. 10", nil)
	assert.False(t, ok)
}

func TestResolveMissingFile(t *testing.T) {
	r := NewSchemeResolver(DefaultSchemes(), func(string) bool { return false })

	_, ok := r.Resolve("Volodarskogo St. 11", nil)
	assert.False(t, ok, "a mapping without a file falls back to the placeholder")
}
