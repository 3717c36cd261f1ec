package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spots-server/models"
)

func intPtr(v int) *int                                 { return &v }
func floatPtr(v float64) *float64                       { return &v }
func strPtr(v string) *string                           { return &v }
func catPtr(c models.CategoryType) *models.CategoryType { return &c }

func allDay() models.WeeklyHours {
	var w models.WeeklyHours
	for d := range w {
		w[d] = models.DayHours{Open: "00:00:00", Close: "24:00:00"}
	}
	return w
}

func fixtureSpots() []models.StudySpot {
	return []models.StudySpot{
		{
			ID: "1", Name: "Koerner Library", Description: "Silent study floors",
			Categories: []models.CategoryType{models.CategoryLibrary, models.CategoryQuiet},
			Amenities:  []string{"outlets", "wifi"},
			Noise:      1, Wifi: 5, Seating: 4, Rating: 4.6,
			Hours: models.SpotHours{OpeningHours: allDay()},
		},
		{
			ID: "2", Name: "Loafe Cafe", Description: "Coffee and pastries",
			Categories: []models.CategoryType{models.CategoryCafe},
			Amenities:  []string{"food", "wifi"},
			Noise:      3, Wifi: 3, Seating: 2, Rating: 4.1,
			Hours: models.SpotHours{OpeningHours: models.SentinelWeek()},
		},
		{
			ID: "3", Name: "Nest Atrium", Description: "Busy group tables near the LIBRARY shuttle",
			Categories: []models.CategoryType{models.CategoryGroup},
			Amenities:  []string{"outlets", "food", "wifi"},
			Noise:      5, Wifi: 4, Seating: 5, Rating: 3.5,
			Hours: models.SpotHours{OpeningHours: allDay()},
		},
		{
			ID: "4", Name: "Rose Garden", Description: "Outdoor benches",
			Categories: []models.CategoryType{models.CategoryOutdoor},
			Amenities:  []string{},
			Noise:      2, Wifi: 1, Seating: 1, Rating: 4.8,
			Hours: models.SpotHours{OpeningHours: models.SentinelWeek()},
		},
	}
}

func ids(spots []models.StudySpot) []string {
	out := []string{}
	for _, s := range spots {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterSpots(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter models.Filter
		want   []string
	}{
		{"empty filter", models.Filter{}, []string{"1", "2", "3", "4"}},
		{"category", models.Filter{Category: catPtr(models.CategoryCafe)}, []string{"2"}},
		{"noise is a ceiling", models.Filter{Noise: intPtr(2)}, []string{"1", "4"}},
		{"wifi is a floor", models.Filter{Wifi: intPtr(4)}, []string{"1", "3"}},
		{"seating is a floor", models.Filter{Seating: intPtr(4)}, []string{"1", "3"}},
		{"rating is a floor", models.Filter{Rating: floatPtr(4.5)}, []string{"1", "4"}},
		{"amenities all required", models.Filter{Amenities: []string{"outlets", "food"}}, []string{"3"}},
		{"search name case insensitive", models.Filter{Search: strPtr("koerner")}, []string{"1"}},
		{"search description", models.Filter{Search: strPtr("library")}, []string{"1", "3"}},
		{"open now", models.Filter{OpenAt: &now}, []string{"1", "3"}},
		{"conjunction", models.Filter{Wifi: intPtr(3), Noise: intPtr(3), Amenities: []string{"wifi"}}, []string{"1", "2"}},
		{"nothing matches", models.Filter{Category: catPtr(models.CategoryOutdoor), Wifi: intPtr(5)}, []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, ids(FilterSpots(fixtureSpots(), test.filter)))
		})
	}
}

func TestFilterSpots_SoundAndComplete(t *testing.T) {
	spots := fixtureSpots()
	f := models.Filter{Noise: intPtr(3), Amenities: []string{"wifi"}}

	result := FilterSpots(spots, f)
	kept := map[string]bool{}
	for _, s := range result {
		kept[s.ID] = true
		assert.True(t, matchesFilter(&s, f), "kept spot %s must satisfy the filter", s.ID)
	}
	for _, s := range spots {
		if matchesFilter(&s, f) {
			assert.True(t, kept[s.ID], "matching spot %s must be kept", s.ID)
		}
	}
}

func TestFilterSpots_Idempotent(t *testing.T) {
	f := models.Filter{Wifi: intPtr(3), Search: strPtr("a")}
	once := FilterSpots(fixtureSpots(), f)
	twice := FilterSpots(once, f)
	assert.Equal(t, once, twice)
}

func TestFilterSpots_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterSpots(nil, models.Filter{Wifi: intPtr(1)}))
	assert.Empty(t, FilterSpots([]models.StudySpot{}, models.Filter{}))
}

func TestToggleCategoryRestoresFilter(t *testing.T) {
	spots := fixtureSpots()
	base := models.Filter{Wifi: intPtr(3)}

	toggled := base.ToggleCategory(models.CategoryCafe)
	assert.Equal(t, []string{"2"}, ids(FilterSpots(spots, toggled)))

	restored := toggled.ToggleCategory(models.CategoryCafe)
	assert.Equal(t, ids(FilterSpots(spots, base)), ids(FilterSpots(spots, restored)))
}
