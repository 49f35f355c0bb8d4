// Package incentive splits surge value between an immediate fare payout and
// a loyalty-points component, and keeps the process-wide points ledger.
package incentive

import "math"

const (
	// FareShare of the surge is paid out with the fare; PointsShare becomes
	// loyalty points.
	FareShare   = 0.75
	PointsShare = 0.25

	// PointUnit rupees of points component convert to one loyalty point.
	PointUnit = 10

	// RewardThreshold is a display constant for the UI collaborator; the
	// ledger enforces no cap.
	RewardThreshold = 10
)

// Split is the allocation of a surge total.
type Split struct {
	FareComponent   int `json:"fare_component"`
	PointsComponent int `json:"points_component"`
	PointsEarned    int `json:"points_earned"`
}

// Allocate splits a surge total: floor(75%) into fare, floor(25%) into the
// points component, which converts to points at 10 rupees each with
// round-half-up (a component of 5 earns 1 point, 4 earns none).
func Allocate(surgeTotal int) Split {
	fc := int(math.Floor(float64(surgeTotal) * FareShare))
	pc := int(math.Floor(float64(surgeTotal) * PointsShare))
	return Split{
		FareComponent:   fc,
		PointsComponent: pc,
		PointsEarned:    pointsFor(pc),
	}
}

// pointsFor rounds half-up in integer arithmetic.
func pointsFor(pointsComponent int) int {
	if pointsComponent <= 0 {
		return 0
	}
	return (pointsComponent + PointUnit/2) / PointUnit
}
