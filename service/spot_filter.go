package services

import (
	"strings"

	"spots-server/models"
	"spots-server/util"
)

// FilterSpots keeps the spots matching every constraint of f, in input order.
// Noise is a ceiling (quieter passes); wifi and seating are floors.
func FilterSpots(spots []models.StudySpot, f models.Filter) []models.StudySpot {
	if f.IsEmpty() {
		return spots
	}
	out := make([]models.StudySpot, 0, len(spots))
	for i := range spots {
		if matchesFilter(&spots[i], f) {
			out = append(out, spots[i])
		}
	}
	return out
}

func matchesFilter(s *models.StudySpot, f models.Filter) bool {
	if f.Category != nil && !s.HasCategory(*f.Category) {
		return false
	}
	if f.Noise != nil && s.Noise > *f.Noise {
		return false
	}
	if f.Wifi != nil && s.Wifi < *f.Wifi {
		return false
	}
	if f.Seating != nil && s.Seating < *f.Seating {
		return false
	}
	if f.Rating != nil && s.Rating < *f.Rating {
		return false
	}
	for _, a := range f.Amenities {
		if !s.HasAmenity(a) {
			return false
		}
	}
	if f.Search != nil {
		q := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Description), q) {
			return false
		}
	}
	if f.OpenAt != nil && !util.IsOpenAt(s.Hours.OpeningHours, *f.OpenAt) {
		return false
	}
	return true
}
