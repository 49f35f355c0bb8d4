package store

import "github.com/example/fare-engine/internal/models"

// Seed loads the Bangalore demo fixtures so the service answers requests
// without any external profile or market-state service attached.
func Seed(c *MemoryCatalog) {
	for _, d := range []models.DriverProfile{
		{
			ID: "12345", Name: "John Doe", Rating: 4.8,
			VehicleType: models.VehicleCar, ExperienceYears: 3,
			Location:       models.Coordinates{Latitude: 12.9352, Longitude: 77.6245},
			PreferredAreas: []string{"Koramangala", "Indiranagar"},
			Persona:        models.PersonaSurgeHunter,
		},
		{
			ID: "67890", Name: "Priya Singh", Rating: 4.9,
			VehicleType: models.VehiclePremium, ExperienceYears: 5,
			Location:       models.Coordinates{Latitude: 12.9784, Longitude: 77.6408},
			PreferredAreas: []string{"Indiranagar", "MG Road"},
			Persona:        models.PersonaLongHaul,
		},
		{
			ID: "24680", Name: "Raj Kumar", Rating: 4.6,
			VehicleType: models.VehicleAuto, ExperienceYears: 2,
			Location:       models.Coordinates{Latitude: 12.9116, Longitude: 77.6741},
			PreferredAreas: []string{"HSR Layout", "Koramangala"},
			Persona:        models.PersonaCityNavigator,
		},
	} {
		c.UpsertDriver(d)
	}

	for _, r := range []models.RideRequest{
		{
			ID: "5678", Pickup: "Koramangala", Destination: "Whitefield",
			PickupCoord:      models.Coordinates{Latitude: 12.9352, Longitude: 77.6245},
			DestinationCoord: models.Coordinates{Latitude: 12.9698, Longitude: 77.7500},
			Demand:           models.LevelHigh, Supply: models.LevelLow,
			TimeOfDay: models.Morning, WaitMinutes: 5,
		},
		{
			ID: "1234", Pickup: "Indiranagar", Destination: "Electronic City",
			PickupCoord:      models.Coordinates{Latitude: 12.9784, Longitude: 77.6408},
			DestinationCoord: models.Coordinates{Latitude: 12.8416, Longitude: 77.6602},
			Demand:           models.LevelMedium, Supply: models.LevelMedium,
			TimeOfDay: models.Evening, WaitMinutes: 5,
		},
		{
			ID: "9876", Pickup: "MG Road", Destination: "Airport",
			PickupCoord:      models.Coordinates{Latitude: 12.9767, Longitude: 77.5713},
			DestinationCoord: models.Coordinates{Latitude: 13.1989, Longitude: 77.7068},
			Demand:           models.LevelLow, Supply: models.LevelHigh,
			TimeOfDay: models.Night, WaitMinutes: 5,
		},
	} {
		c.UpsertRide(r)
	}
}
