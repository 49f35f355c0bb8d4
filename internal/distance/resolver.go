package distance

import (
	"context"
	"log/slog"

	"github.com/example/fare-engine/internal/geo"
	"github.com/example/fare-engine/internal/models"
	"github.com/example/fare-engine/internal/observability"
)

// Correction factors, one named constant per purpose. Routed network
// distances understate real-world driving by roughly 20%; a straight-line
// estimate understates it more.
const (
	DefaultRoutedCorrection = 1.2
	DefaultDirectCorrection = 1.3
	DefaultUrbanSpeedKmh    = 30
)

// Leg is a resolved point-to-point travel estimate.
type Leg struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

// Provider is the external routed-distance source.
type Provider interface {
	Route(ctx context.Context, from, to models.Coordinates) (Leg, error)
}

// Resolver resolves travel legs, preferring the routed provider and falling
// back to a corrected great-circle estimate. Resolve never fails: provider
// errors are recovered locally and are invisible to callers.
type Resolver struct {
	Provider Provider // optional; nil means geometric only
	Cache    *Cache   // optional

	RoutedCorrection float64
	DirectCorrection float64
	UrbanSpeedKmh    float64

	Logger *slog.Logger
}

func (r *Resolver) Resolve(ctx context.Context, origin, dest models.Coordinates) Leg {
	if r.Cache != nil {
		if leg, ok := r.Cache.Get(origin, dest); ok {
			return leg
		}
	}

	leg, routed := r.routed(ctx, origin, dest)
	if !routed {
		leg = r.geometric(origin, dest)
	}
	if leg.DurationMin == 0 && leg.DistanceKm > 0 {
		leg.DurationMin = leg.DistanceKm / r.urbanSpeed() * 60
	}
	if r.Cache != nil {
		r.Cache.Set(origin, dest, leg)
	}
	return leg
}

func (r *Resolver) routed(ctx context.Context, origin, dest models.Coordinates) (Leg, bool) {
	if r.Provider == nil {
		return Leg{}, false
	}
	leg, err := r.Provider.Route(ctx, origin, dest)
	if err != nil {
		observability.DistanceFallbacks.Inc()
		if r.Logger != nil {
			r.Logger.Debug("routed distance unavailable, using geometric fallback", "error", err)
		}
		return Leg{}, false
	}
	leg.DistanceKm *= r.routedCorrection()
	return leg, true
}

func (r *Resolver) geometric(origin, dest models.Coordinates) Leg {
	d := geo.HaversineKm(origin, dest) * r.directCorrection()
	return Leg{DistanceKm: d}
}

func (r *Resolver) routedCorrection() float64 {
	if r.RoutedCorrection > 0 {
		return r.RoutedCorrection
	}
	return DefaultRoutedCorrection
}

func (r *Resolver) directCorrection() float64 {
	if r.DirectCorrection > 0 {
		return r.DirectCorrection
	}
	return DefaultDirectCorrection
}

func (r *Resolver) urbanSpeed() float64 {
	if r.UrbanSpeedKmh > 0 {
		return r.UrbanSpeedKmh
	}
	return DefaultUrbanSpeedKmh
}
