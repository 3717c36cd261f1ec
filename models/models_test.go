package models

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceCategoryType(t *testing.T) {
	tests := []struct {
		in   string
		want CategoryType
	}{
		{"library", CategoryLibrary},
		{"cafe", CategoryCafe},
		{"quiet", CategoryQuiet},
		{"outdoor", CategoryOutdoor},
		{"group", CategoryGroup},
		{"quiet-zone-x", CategoryLibrary},
		{"", CategoryLibrary},
		{"Library", CategoryLibrary},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceCategoryType(tt.in))
		})
	}

	_, ok := ValidateCategoryType("quiet-zone-x")
	assert.False(t, ok)
}

func TestParseIcon(t *testing.T) {
	assert.Equal(t, IconBook, ParseIcon("Book"))
	assert.Equal(t, IconParkingCircle, ParseIcon("ParkingCircle"))
	assert.Equal(t, IconUnknown, ParseIcon("Rocket"))
	assert.Equal(t, IconUnknown, ParseIcon("Unknown"))

	assert.Equal(t, "Wifi", IconWifi.String())
	assert.Equal(t, "☕", IconCoffee.Glyph())
	assert.Equal(t, "Unknown", Icon(99).String())

	raw, err := json.Marshal(Category{ID: CategoryCafe, Icon: IconCoffee})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"icon":"Coffee"`)

	var c Category
	require.NoError(t, json.Unmarshal(raw, &c))
	assert.Equal(t, IconCoffee, c.Icon)
}

func TestWeeklyHours_JSON(t *testing.T) {
	w := SentinelWeek()
	w[time.Monday] = DayHours{Open: "08:00:00", Close: "22:00:00"}

	raw, err := json.Marshal(w)
	require.NoError(t, err)

	var flat map[string]string
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Len(t, flat, 14)
	assert.Equal(t, "08:00:00", flat["monday_open"])
	assert.Equal(t, "0", flat["sunday_close"])

	var back WeeklyHours
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, w, back)
}

func TestReviewSubmission_Validate(t *testing.T) {
	valid := ReviewSubmission{
		SpotID:  "1",
		Ratings: ReviewRatings{Overall: 4, Comfort: 3, Noise: 2, Amenities: 5},
		Comment: "Great spot",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(s *ReviewSubmission)
		field   string
		message string
	}{
		{"missing overall", func(s *ReviewSubmission) { s.Ratings.Overall = 0 }, "overall", "Please provide an overall rating"},
		{"missing comfort", func(s *ReviewSubmission) { s.Ratings.Comfort = 0 }, "comfort", "Please provide a comfort rating"},
		{"missing noise", func(s *ReviewSubmission) { s.Ratings.Noise = 0 }, "noise", "Please provide a noise rating"},
		{"missing amenities", func(s *ReviewSubmission) { s.Ratings.Amenities = 0 }, "amenities", "Please provide an amenities rating"},
		{"blank comment", func(s *ReviewSubmission) { s.Comment = "   " }, "comment", "Please provide a comment"},
		{"out of range", func(s *ReviewSubmission) { s.Ratings.Noise = 7 }, "noise", "The noise rating must be between 1 and 5"},
		{"first missing wins", func(s *ReviewSubmission) { s.Ratings.Overall = 0; s.Comment = "" }, "overall", "Please provide an overall rating"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			err := s.Validate()

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Error())
		})
	}
}

func TestParseFilter(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

	f, err := ParseFilter(url.Values{}, now)
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())

	vals := url.Values{}
	vals.Set("category", "cafe")
	vals.Set("noise", "3")
	vals.Set("wifi", "4")
	vals.Set("seating", "2")
	vals.Set("rating", "3.5")
	vals.Set("amenities", "wifi, outlets,,")
	vals.Set("search", "Koerner")
	vals.Set("open", "true")

	f, err = ParseFilter(vals, now)
	require.NoError(t, err)
	require.NotNil(t, f.Category)
	assert.Equal(t, CategoryCafe, *f.Category)
	assert.Equal(t, 3, *f.Noise)
	assert.Equal(t, 4, *f.Wifi)
	assert.Equal(t, 2, *f.Seating)
	assert.Equal(t, 3.5, *f.Rating)
	assert.Equal(t, []string{"wifi", "outlets"}, f.Amenities)
	assert.Equal(t, "Koerner", *f.Search)
	assert.Equal(t, now, *f.OpenAt)

	assert.Equal(t, "wifi,outlets", f.ToValues().Get("amenities"))
	assert.Equal(t, "true", f.ToValues().Get("open"))

	back, err := ParseFilter(f.ToValues(), now)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestParseFilter_Invalid(t *testing.T) {
	tests := []struct {
		arg, value string
	}{
		{"category", "quiet-zone-x"},
		{"noise", "0"},
		{"wifi", "6"},
		{"seating", "lots"},
		{"rating", "-1"},
		{"open", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			_, err := ParseFilter(url.Values{tt.arg: {tt.value}}, time.Now())

			var ferr *FilterError
			require.True(t, errors.As(err, &ferr))
			assert.Equal(t, tt.arg, ferr.Arg)
		})
	}
}

func TestFilter_ToggleCategory(t *testing.T) {
	var f Filter

	f = f.ToggleCategory(CategoryLibrary)
	require.NotNil(t, f.Category)
	assert.Equal(t, CategoryLibrary, *f.Category)

	f = f.ToggleCategory(CategoryCafe)
	assert.Equal(t, CategoryCafe, *f.Category)

	f = f.ToggleCategory(CategoryCafe)
	assert.Nil(t, f.Category)
	assert.True(t, f.IsEmpty())

	noise := 2
	f = Filter{Noise: &noise}.ToggleCategory(CategoryQuiet).Clear()
	assert.True(t, f.IsEmpty())
}
