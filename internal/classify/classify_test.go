package classify

import (
	"strings"
	"testing"

	"github.com/example/fare-engine/internal/models"
)

func TestSurgeTable(t *testing.T) {
	cases := []struct {
		demand, supply models.Level
		surge          int
	}{
		{models.LevelHigh, models.LevelLow, 30},
		{models.LevelHigh, models.LevelMedium, 25},
		{models.LevelHigh, models.LevelHigh, 0},
		{models.LevelMedium, models.LevelLow, 20},
		{models.LevelMedium, models.LevelMedium, 0},
		{models.LevelMedium, models.LevelHigh, 10},
		{models.LevelLow, models.LevelLow, 0},
		{models.LevelLow, models.LevelMedium, 5},
		{models.LevelLow, models.LevelHigh, 0},
	}
	for _, tc := range cases {
		got := Classify(tc.demand, tc.supply, 10)
		if got.Surge != tc.surge {
			t.Errorf("classify(%s,%s).surge = %d, want %d", tc.demand, tc.supply, got.Surge, tc.surge)
		}
	}
}

func TestProximityNoteOnBalancedCategories(t *testing.T) {
	near := Classify(models.LevelMedium, models.LevelMedium, 2)
	if !strings.Contains(near.Reason, "close") {
		t.Fatalf("expected proximity note in reason, got %q", near.Reason)
	}
	if near.Surge != 0 {
		t.Fatalf("proximity must not change surge, got %d", near.Surge)
	}

	far := Classify(models.LevelMedium, models.LevelMedium, 4)
	if strings.Contains(far.Reason, "close") {
		t.Fatalf("no proximity note expected beyond %v km, got %q", ProximityKm, far.Reason)
	}

	// Proximity note applies only to balanced categories.
	surge := Classify(models.LevelHigh, models.LevelLow, 1)
	if strings.Contains(surge.Reason, "close") {
		t.Fatalf("unbalanced category should not carry proximity note, got %q", surge.Reason)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	a := Classify(models.LevelLow, models.LevelLow, 2.5)
	b := Classify(models.LevelLow, models.LevelLow, 2.5)
	if a != b {
		t.Fatalf("classification must be deterministic: %+v vs %+v", a, b)
	}
}

func TestAllNineCategoriesDistinct(t *testing.T) {
	seen := map[models.Category]bool{}
	for _, d := range []models.Level{models.LevelLow, models.LevelMedium, models.LevelHigh} {
		for _, s := range []models.Level{models.LevelLow, models.LevelMedium, models.LevelHigh} {
			c := CategoryFor(d, s)
			if c == "" {
				t.Fatalf("missing category for %s/%s", d, s)
			}
			if seen[c] {
				t.Fatalf("duplicate category %s", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != 9 {
		t.Fatalf("expected 9 categories, got %d", len(seen))
	}
}
