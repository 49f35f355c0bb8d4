// Package engine composes the pipeline: resolve distances, classify the
// demand/supply window, price the ride, score driver fit, and admit the
// resulting notification into the lifecycle machine.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/fare-engine/internal/classify"
	"github.com/example/fare-engine/internal/compat"
	"github.com/example/fare-engine/internal/distance"
	"github.com/example/fare-engine/internal/fare"
	"github.com/example/fare-engine/internal/feed"
	"github.com/example/fare-engine/internal/geo"
	"github.com/example/fare-engine/internal/incentive"
	"github.com/example/fare-engine/internal/lifecycle"
	"github.com/example/fare-engine/internal/models"
	"github.com/example/fare-engine/internal/observability"
	"github.com/example/fare-engine/internal/store"
)

// Deps carries the engine's collaborators. Archive, Feed and Events are
// optional; a nil value disables that output path.
type Deps struct {
	Drivers  store.DriverStore
	Rides    store.RideStore
	Resolver *distance.Resolver
	Fares    *fare.Calculator
	Ledger   incentive.Ledger
	Machine  *lifecycle.Machine
	Archive  store.NotificationStore
	Feed     *feed.WSRegistry
	Events   *feed.Publisher
	Logger   *slog.Logger
}

type Engine struct {
	deps Deps
}

// New wires the engine and registers its lifecycle hooks: points are
// credited exactly once when a ride completes, and every committed
// transition is archived and published.
func New(deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	e := &Engine{deps: deps}

	deps.Machine.OnCompleted(func(n models.Notification) {
		total, err := deps.Ledger.Credit(context.Background(), n.Fare.PointsEarned)
		if err != nil {
			deps.Logger.Error("credit points", "ride_id", n.RideID, "error", err)
			return
		}
		observability.PointsCredited.Add(float64(n.Fare.PointsEarned))
		deps.Logger.Info("points credited",
			"ride_id", n.RideID, "driver_id", n.DriverID,
			"points", n.Fare.PointsEarned, "total", total)
	})

	deps.Machine.OnTransition(func(n models.Notification, from models.Status) {
		if deps.Archive != nil {
			if err := deps.Archive.UpdateStatus(n.RideID, n.Status); err != nil {
				deps.Logger.Warn("archive status", "ride_id", n.RideID, "error", err)
			}
		}
		if deps.Events != nil {
			deps.Events.Publish(context.Background(), feed.Event{
				RideID:   n.RideID,
				DriverID: n.DriverID,
				From:     from,
				To:       n.Status,
				At:       time.Now(),
			})
		}
		if deps.Feed != nil {
			_ = deps.Feed.Push(n.DriverID, n)
		}
	})

	return e
}

// ProcessRideRequest runs the full pipeline for one ride/driver pair and
// returns the admitted pending notification.
func (e *Engine) ProcessRideRequest(ctx context.Context, rideID, driverID string) (models.Notification, error) {
	d := e.deps

	ride, err := d.Rides.Ride(ctx, rideID)
	if err != nil {
		return models.Notification{}, fmt.Errorf("ride %s: %w", rideID, err)
	}
	driver, err := d.Drivers.Driver(ctx, driverID)
	if err != nil {
		return models.Notification{}, fmt.Errorf("driver %s: %w", driverID, err)
	}

	// Trip leg resolution may hit the routing service; overlap it with the
	// dead-mileage leg and classification.
	tripCh := make(chan distance.Leg, 1)
	go func() {
		tripCh <- d.Resolver.Resolve(ctx, ride.PickupCoord, ride.DestinationCoord)
	}()

	pickupKm := geo.HaversineKm(driver.Location, ride.PickupCoord)
	deadLeg := d.Resolver.Resolve(ctx, driver.Location, ride.PickupCoord)
	classification := classify.Classify(ride.Demand, ride.Supply, pickupKm)
	trip := <-tripCh

	breakdown := d.Fares.Compute(fare.Input{
		VehicleType:   driver.VehicleType,
		DistanceKm:    trip.DistanceKm,
		WaitMinutes:   ride.WaitMinutes,
		DeadMileageKm: deadLeg.DistanceKm,
	}, classification)

	compatibility := compat.Score(driver, classification, pickupKm)

	n := models.Notification{
		RideID:         ride.ID,
		DriverID:       driver.ID,
		Pickup:         ride.Pickup,
		Destination:    ride.Destination,
		Classification: classification,
		Fare:           breakdown,
		Compatibility:  compatibility,
		Message: fmt.Sprintf("New %s ride request from %s to %s",
			driver.VehicleType, ride.Pickup, ride.Destination),
	}
	snapshot, err := d.Machine.Admit(n)
	if err != nil {
		return snapshot, fmt.Errorf("ride %s: %w", ride.ID, err)
	}

	if d.Archive != nil {
		if err := d.Archive.SaveNotification(snapshot); err != nil {
			d.Logger.Warn("archive notification", "ride_id", snapshot.RideID, "error", err)
		}
	}
	if d.Feed != nil {
		if err := d.Feed.Push(snapshot.DriverID, snapshot); err == nil {
			d.Logger.Debug("notification pushed", "driver_id", snapshot.DriverID)
		}
	}

	d.Logger.Info("ride processed",
		"ride_id", snapshot.RideID, "driver_id", snapshot.DriverID,
		"category", classification.Category,
		"fare", breakdown.TotalFare, "score", compatibility.Score,
		"trip_km", trip.DistanceKm, "dead_km", deadLeg.DistanceKm)
	return snapshot, nil
}
