package models

// Location is where a study spot sits.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// SpotHours groups the weekly schedule with the free-text peak hour ranges.
type SpotHours struct {
	OpeningHours WeeklyHours `json:"opening_hours"`
	PeakHours    []string    `json:"peak_hours"`
}

// StudySpot is a study_spots row denormalized with all of its child rows.
type StudySpot struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Categories  []CategoryType `json:"categories"`
	Location    Location       `json:"location"`
	Images      []string       `json:"images"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`

	// 1 silent .. 5 loud
	Noise int `json:"noise"`
	// 1 none .. 5 excellent
	Wifi int `json:"wifi"`
	// 1 limited .. 5 abundant
	Seating int `json:"seating"`

	Hours     SpotHours `json:"hours"`
	Amenities []string  `json:"amenities"`
}

func (s *StudySpot) HasCategory(c CategoryType) bool {
	for _, sc := range s.Categories {
		if sc == c {
			return true
		}
	}
	return false
}

func (s *StudySpot) HasAmenity(id string) bool {
	for _, a := range s.Amenities {
		if a == id {
			return true
		}
	}
	return false
}

// MinLevel and MaxLevel bound the noise, wifi and seating metrics.
const (
	MinLevel = 1
	MaxLevel = 5
)

// ClampLevel forces a metric read from storage into [MinLevel, MaxLevel].
func ClampLevel(v int) int {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}
