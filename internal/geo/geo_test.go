package geo

import (
	"math"
	"testing"

	"github.com/example/fare-engine/internal/models"
)

func TestHaversineZero(t *testing.T) {
	p := models.Coordinates{Latitude: 12.9352, Longitude: 77.6245}
	if d := HaversineKm(p, p); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Koramangala to Whitefield, roughly 14 km as the crow flies.
	a := models.Coordinates{Latitude: 12.9352, Longitude: 77.6245}
	b := models.Coordinates{Latitude: 12.9698, Longitude: 77.7500}
	d := HaversineKm(a, b)
	if d < 13 || d > 15 {
		t.Fatalf("expected ~14km, got %f", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := models.Coordinates{Latitude: 12.9784, Longitude: 77.6408}
	b := models.Coordinates{Latitude: 12.8416, Longitude: 77.6602}
	if diff := math.Abs(HaversineKm(a, b) - HaversineKm(b, a)); diff > 1e-9 {
		t.Fatalf("expected symmetric distance, diff=%g", diff)
	}
}
