// Package classify maps demand/supply signals into one of nine ride
// categories, each carrying a fixed surge value in rupees. Surge is a flat
// bonus, never scaled by distance.
package classify

import "github.com/example/fare-engine/internal/models"

// ProximityKm is the pickup-distance threshold under which balanced
// categories earn a proximity note (and extra compatibility points).
const ProximityKm = 3.0

var categoryFor = map[models.Level]map[models.Level]models.Category{
	models.LevelHigh: {
		models.LevelLow:    models.CategoryHighLow,
		models.LevelMedium: models.CategoryHighMedium,
		models.LevelHigh:   models.CategoryHighHigh,
	},
	models.LevelMedium: {
		models.LevelLow:    models.CategoryMediumLow,
		models.LevelMedium: models.CategoryMediumMed,
		models.LevelHigh:   models.CategoryMediumHigh,
	},
	models.LevelLow: {
		models.LevelLow:    models.CategoryLowLow,
		models.LevelMedium: models.CategoryLowMedium,
		models.LevelHigh:   models.CategoryLowHigh,
	},
}

// surgeTable holds the fixed surge value per category, 30 rupees max.
var surgeTable = map[models.Category]int{
	models.CategoryHighLow:    30,
	models.CategoryHighMedium: 25,
	models.CategoryHighHigh:   0,
	models.CategoryMediumLow:  20,
	models.CategoryMediumMed:  0,
	models.CategoryMediumHigh: 10,
	models.CategoryLowLow:     0,
	models.CategoryLowMedium:  5,
	models.CategoryLowHigh:    0,
}

var reasonTable = map[models.Category]string{
	models.CategoryHighLow:    "Severe driver shortage: high demand and low supply in this area",
	models.CategoryHighMedium: "Driver shortage: high demand outpacing supply",
	models.CategoryHighHigh:   "High demand fully covered by supply, no surge",
	models.CategoryMediumLow:  "Moderate shortage: medium demand with low supply",
	models.CategoryMediumMed:  "Balanced demand and supply",
	models.CategoryMediumHigh: "Mild oversupply offset: medium demand with high supply",
	models.CategoryLowLow:     "Balanced low-activity period",
	models.CategoryLowMedium:  "Mild imbalance: low demand with medium supply",
	models.CategoryLowHigh:    "Low demand and plenty of drivers, no surge",
}

// balanced categories are eligible for the proximity note.
var balanced = map[models.Category]bool{
	models.CategoryMediumMed: true,
	models.CategoryLowLow:    true,
}

// CategoryFor returns the category for a demand/supply pair.
func CategoryFor(demand, supply models.Level) models.Category {
	return categoryFor[demand][supply]
}

// Surge returns the fixed surge value for a category.
func Surge(c models.Category) int {
	return surgeTable[c]
}

// Balanced reports whether the category is one of the two balanced ones
// handled via the proximity bonus instead of surge.
func Balanced(c models.Category) bool {
	return balanced[c]
}

// Classify buckets a ride into its demand/supply category. Deterministic:
// identical inputs always yield an identical result. pickupDistanceKm is the
// driver's direct distance to the pickup point; for balanced categories under
// ProximityKm it only augments the reason, the surge value is unaffected.
func Classify(demand, supply models.Level, pickupDistanceKm float64) models.ClassificationResult {
	cat := CategoryFor(demand, supply)
	reason := reasonTable[cat]
	if Balanced(cat) && pickupDistanceKm < ProximityKm {
		reason += "; pickup is close to your current location"
	}
	return models.ClassificationResult{
		Category: cat,
		Reason:   reason,
		Surge:    surgeTable[cat],
	}
}
