// Package fare computes per-ride fare breakdowns from resolved distances,
// wait time, and the classification's surge value.
package fare

import (
	"math"

	"github.com/example/fare-engine/internal/incentive"
	"github.com/example/fare-engine/internal/models"
	"github.com/example/fare-engine/internal/observability"
)

// Rates holds the per-vehicle-tier rate table, in rupees.
type Rates struct {
	BaseFare          int
	PerKm             int
	PerMinute         int
	MileageKmPerLiter float64
}

var rateTable = map[models.VehicleType]Rates{
	models.VehicleAuto:    {BaseFare: 30, PerKm: 12, PerMinute: 2, MileageKmPerLiter: 35},
	models.VehicleCar:     {BaseFare: 50, PerKm: 15, PerMinute: 3, MileageKmPerLiter: 15},
	models.VehiclePremium: {BaseFare: 100, PerKm: 20, PerMinute: 4, MileageKmPerLiter: 10},
}

const (
	FuelPricePerLiter = 100

	// DemandMultiplier is fixed at 1.0 in the surge-only model; surge is a
	// flat bonus from the classification, not a multiplier.
	DemandMultiplier = 1.0
)

// RatesFor returns the rate table for a vehicle tier.
func RatesFor(v models.VehicleType) Rates { return rateTable[v] }

// Calculator computes fare breakdowns. PlatformFeePct is the fraction of
// total fare taken by the platform (0..1), configured rather than hard-coded.
type Calculator struct {
	PlatformFeePct float64
}

// Input captures the resolved quantities a fare depends on.
type Input struct {
	VehicleType   models.VehicleType
	DistanceKm    float64
	WaitMinutes   float64
	DeadMileageKm float64 // driver-to-pickup leg, informational in pricing
}

// Compute builds the full breakdown. Zero distance still yields base plus
// wait fare; a negative profit is clamped to zero, never an error.
func (c *Calculator) Compute(in Input, classification models.ClassificationResult) models.FareBreakdown {
	r, ok := rateTable[in.VehicleType]
	if !ok {
		r = rateTable[models.VehicleAuto]
	}

	distanceFare := int(math.Floor(in.DistanceKm * float64(r.PerKm)))
	waitTimeFare := int(math.Floor(in.WaitMinutes * float64(r.PerMinute)))
	preSurge := int(math.Floor(float64(r.BaseFare+distanceFare+waitTimeFare) * DemandMultiplier))

	split := incentive.Allocate(classification.Surge)
	totalFare := preSurge + split.FareComponent

	fuelCost := int(math.Round((in.DistanceKm + in.DeadMileageKm) / r.MileageKmPerLiter * FuelPricePerLiter))
	platformFee := int(math.Floor(float64(totalFare) * c.PlatformFeePct))
	profit := totalFare - platformFee - fuelCost
	if profit < 0 {
		profit = 0
	}

	observability.FaresComputed.Inc()

	return models.FareBreakdown{
		BaseFare:                 r.BaseFare,
		DistanceFare:             distanceFare,
		WaitTimeFare:             waitTimeFare,
		SurgeTotal:               classification.Surge,
		FareIncentiveComponent:   split.FareComponent,
		PointsIncentiveComponent: split.PointsComponent,
		PointsEarned:             split.PointsEarned,
		DemandMultiplier:         DemandMultiplier,
		FuelCost:                 fuelCost,
		EstimatedProfit:          profit,
		TotalFare:                totalFare,
	}
}
