// Package compat scores how well a classified ride suits a driver profile.
package compat

import (
	"fmt"
	"math"
	"strings"

	"github.com/example/fare-engine/internal/models"
)

// Component caps. The four components sum to at most 100.
const (
	maxRatingPoints      = 20.0
	maxExperiencePoints  = 20.0
	maxProximityPoints   = 20.0
	personaMatchPoints   = 40.0
	personaPartialCredit = 15.0

	ratingWeight     = 4.0
	experienceWeight = 4.0
	proximityDecay   = 4.0 // points lost per km; zero beyond 5 km
)

// personaCategories maps each persona to its compatible-category set.
var personaCategories = map[models.Persona]map[models.Category]bool{
	models.PersonaSurgeHunter: {
		models.CategoryHighLow:    true,
		models.CategoryHighMedium: true,
		models.CategoryMediumLow:  true,
	},
	models.PersonaLongHaul: {
		models.CategoryHighHigh:   true,
		models.CategoryMediumHigh: true,
		models.CategoryLowHigh:    true,
	},
	models.PersonaSteadyEarner: {
		models.CategoryHighHigh:   true,
		models.CategoryMediumMed:  true,
		models.CategoryMediumHigh: true,
		models.CategoryMediumLow:  true,
	},
	models.PersonaCityNavigator: {
		models.CategoryLowLow:    true,
		models.CategoryLowMedium: true,
		models.CategoryMediumMed: true,
	},
}

// PersonaMatches reports whether the category is in the persona's
// compatible set.
func PersonaMatches(p models.Persona, c models.Category) bool {
	return personaCategories[p][c]
}

// Score rates driver-ride compatibility on 0..100. Additive: rating,
// persona match, experience, and proximity components, clamped and rounded.
func Score(driver models.DriverProfile, classification models.ClassificationResult, pickupDistanceKm float64) models.CompatibilityResult {
	var reasons []string

	rating := math.Min(driver.Rating*ratingWeight, maxRatingPoints)
	if rating < 0 {
		rating = 0
	}

	persona := personaPartialCredit
	if PersonaMatches(driver.Persona, classification.Category) {
		persona = personaMatchPoints
		reasons = append(reasons, fmt.Sprintf("ride category suits your %s profile", personaLabel(driver.Persona)))
	}

	experience := math.Min(float64(driver.ExperienceYears)*experienceWeight, maxExperiencePoints)
	if experience < 0 {
		experience = 0
	}
	if driver.ExperienceYears >= 3 {
		reasons = append(reasons, fmt.Sprintf("%d years of experience", driver.ExperienceYears))
	}

	proximity := math.Max(0, maxProximityPoints-pickupDistanceKm*proximityDecay)
	if proximity > 0 {
		reasons = append(reasons, fmt.Sprintf("pickup only %.1f km away", pickupDistanceKm))
	}

	if classification.Surge > 0 {
		reasons = append(reasons, "extra earnings from the current demand surge")
	}

	total := rating + persona + experience + proximity
	score := int(math.Round(math.Min(math.Max(total, 0), 100)))

	reason := "matches your profile"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return models.CompatibilityResult{Score: score, Reason: reason}
}

// Band buckets a score for display. Purely presentational.
func Band(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}

func personaLabel(p models.Persona) string {
	switch p {
	case models.PersonaSurgeHunter:
		return "Surge Hunter"
	case models.PersonaLongHaul:
		return "Long Haul Specialist"
	case models.PersonaSteadyEarner:
		return "Steady Earner"
	case models.PersonaCityNavigator:
		return "City Navigator"
	default:
		return string(p)
	}
}
