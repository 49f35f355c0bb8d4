package models

import "time"

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Level buckets a demand or supply signal.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

type VehicleType string

const (
	VehicleAuto    VehicleType = "auto"
	VehicleCar     VehicleType = "car"
	VehiclePremium VehicleType = "premium"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// Persona is a coarse driver-behavior archetype used to bias which ride
// categories count as a good match.
type Persona string

const (
	PersonaSurgeHunter   Persona = "surge_hunter"
	PersonaLongHaul      Persona = "long_haul"
	PersonaSteadyEarner  Persona = "steady_earner"
	PersonaCityNavigator Persona = "city_navigator"
)

// RideRequest is immutable once created; one arrives per simulated ride.
type RideRequest struct {
	ID               string      `json:"ride_id"`
	Pickup           string      `json:"pickup"`
	Destination      string      `json:"destination"`
	PickupCoord      Coordinates `json:"pickup_coord"`
	DestinationCoord Coordinates `json:"destination_coord"`
	Demand           Level       `json:"demand"`
	Supply           Level       `json:"supply"`
	TimeOfDay        TimeOfDay   `json:"time_of_day"`
	WaitMinutes      float64     `json:"wait_minutes"`
}

type DriverProfile struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Rating          float64     `json:"rating"` // 0..5
	VehicleType     VehicleType `json:"vehicle_type"`
	ExperienceYears int         `json:"experience_years"`
	Location        Coordinates `json:"location"`
	PreferredAreas  []string    `json:"preferred_areas,omitempty"`
	Persona         Persona     `json:"persona"`
}

// Category is one of the nine demand×supply classifications.
type Category string

const (
	CategoryHighLow    Category = "high_demand_low_supply"
	CategoryHighMedium Category = "high_demand_medium_supply"
	CategoryHighHigh   Category = "high_demand_high_supply"
	CategoryMediumLow  Category = "medium_demand_low_supply"
	CategoryMediumMed  Category = "medium_demand_medium_supply"
	CategoryMediumHigh Category = "medium_demand_high_supply"
	CategoryLowLow     Category = "low_demand_low_supply"
	CategoryLowMedium  Category = "low_demand_medium_supply"
	CategoryLowHigh    Category = "low_demand_high_supply"
)

type ClassificationResult struct {
	Category Category `json:"category"`
	Reason   string   `json:"reason"`
	Surge    int      `json:"surge"` // fixed currency bonus, not scaled by distance
}

// FareBreakdown is computed fresh per ride. All currency values are whole
// rupees.
type FareBreakdown struct {
	BaseFare                 int     `json:"base_fare"`
	DistanceFare             int     `json:"distance_fare"`
	WaitTimeFare             int     `json:"wait_time_fare"`
	SurgeTotal               int     `json:"surge_total"`
	FareIncentiveComponent   int     `json:"fare_incentive_component"`
	PointsIncentiveComponent int     `json:"points_incentive_component"`
	PointsEarned             int     `json:"points_earned"`
	DemandMultiplier         float64 `json:"demand_multiplier"`
	FuelCost                 int     `json:"fuel_cost"`
	EstimatedProfit          int     `json:"estimated_profit"`
	TotalFare                int     `json:"total_fare"`
}

type CompatibilityResult struct {
	Score  int    `json:"score"` // 0..100
	Reason string `json:"reason"`
}

// Status is a notification's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
)

// Notification is the lifecycle-owning entity handed to the driver. Mutated
// only through the state machine; never deleted, only reaches a terminal
// status.
type Notification struct {
	RideID         string               `json:"ride_id"`
	DriverID       string               `json:"driver_id"`
	Pickup         string               `json:"pickup"`
	Destination    string               `json:"destination"`
	Classification ClassificationResult `json:"classification"`
	Fare           FareBreakdown        `json:"fare"`
	Compatibility  CompatibilityResult  `json:"compatibility"`
	Message        string               `json:"message"`
	CreatedAt      time.Time            `json:"created_at"`
	ExpiresAt      time.Time            `json:"expires_at"`
	Status         Status               `json:"status"`
}
