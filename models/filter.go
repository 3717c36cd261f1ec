package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query args understood by ParseFilter and produced by ToValues.
const (
	CATEGORY_QUERY_ARG  = "category"
	NOISE_QUERY_ARG     = "noise"
	WIFI_QUERY_ARG      = "wifi"
	SEATING_QUERY_ARG   = "seating"
	RATING_QUERY_ARG    = "rating"
	AMENITIES_QUERY_ARG = "amenities"
	SEARCH_QUERY_ARG    = "search"
	OPEN_QUERY_ARG      = "open"
)

// Filter narrows a spot list. A nil field (or empty Amenities) places no
// constraint on that dimension.
type Filter struct {
	Category  *CategoryType // exact tag
	Noise     *int          // maximum; 1 is the strictest
	Wifi      *int          // minimum
	Seating   *int          // minimum
	Rating    *float64      // minimum aggregate rating
	Amenities []string      // all must be present
	Search    *string       // case-insensitive, name or description
	OpenAt    *time.Time    // spot must be open at this instant
}

// IsEmpty reports whether the filter constrains nothing.
func (f Filter) IsEmpty() bool {
	return f.Category == nil && f.Noise == nil && f.Wifi == nil && f.Seating == nil &&
		f.Rating == nil && len(f.Amenities) == 0 && f.Search == nil && f.OpenAt == nil
}

// ToggleCategory selects c, or clears the category when c is already selected.
func (f Filter) ToggleCategory(c CategoryType) Filter {
	if f.Category != nil && *f.Category == c {
		f.Category = nil
		return f
	}
	f.Category = &c
	return f
}

// Clear drops every constraint.
func (f Filter) Clear() Filter {
	return Filter{}
}

// FilterError is returned by ParseFilter for malformed query args.
type FilterError struct {
	Arg    string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Arg, e.Reason)
}

// ParseFilter builds a Filter from query args. now is used when open=true.
func ParseFilter(vals url.Values, now time.Time) (Filter, error) {
	var f Filter

	if v := vals.Get(CATEGORY_QUERY_ARG); v != "" {
		c, ok := ValidateCategoryType(v)
		if !ok {
			return Filter{}, &FilterError{Arg: CATEGORY_QUERY_ARG, Reason: "unknown category " + strconv.Quote(v)}
		}
		f.Category = &c
	}

	levels := []struct {
		arg string
		dst **int
	}{
		{NOISE_QUERY_ARG, &f.Noise},
		{WIFI_QUERY_ARG, &f.Wifi},
		{SEATING_QUERY_ARG, &f.Seating},
	}
	for _, l := range levels {
		v := vals.Get(l.arg)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < MinLevel || n > MaxLevel {
			return Filter{}, &FilterError{Arg: l.arg, Reason: fmt.Sprintf("must be an integer between %d and %d", MinLevel, MaxLevel)}
		}
		*l.dst = &n
	}

	if v := vals.Get(RATING_QUERY_ARG); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 || r > MaxLevel {
			return Filter{}, &FilterError{Arg: RATING_QUERY_ARG, Reason: fmt.Sprintf("must be a number between 0 and %d", MaxLevel)}
		}
		f.Rating = &r
	}

	for _, a := range strings.Split(vals.Get(AMENITIES_QUERY_ARG), ",") {
		if a = strings.TrimSpace(a); a != "" {
			f.Amenities = append(f.Amenities, a)
		}
	}

	if v := vals.Get(SEARCH_QUERY_ARG); v != "" {
		f.Search = &v
	}

	if v := vals.Get(OPEN_QUERY_ARG); v != "" {
		open, err := strconv.ParseBool(v)
		if err != nil {
			return Filter{}, &FilterError{Arg: OPEN_QUERY_ARG, Reason: "must be a boolean"}
		}
		if open {
			f.OpenAt = &now
		}
	}

	return f, nil
}

// ToValues is the inverse of ParseFilter. OpenAt becomes open=true.
func (f Filter) ToValues() url.Values {
	q := url.Values{}

	if f.Category != nil {
		q.Set(CATEGORY_QUERY_ARG, string(*f.Category))
	}
	if f.Noise != nil {
		q.Set(NOISE_QUERY_ARG, strconv.Itoa(*f.Noise))
	}
	if f.Wifi != nil {
		q.Set(WIFI_QUERY_ARG, strconv.Itoa(*f.Wifi))
	}
	if f.Seating != nil {
		q.Set(SEATING_QUERY_ARG, strconv.Itoa(*f.Seating))
	}
	if f.Rating != nil {
		q.Set(RATING_QUERY_ARG, strconv.FormatFloat(*f.Rating, 'f', -1, 64))
	}
	if len(f.Amenities) > 0 {
		q.Set(AMENITIES_QUERY_ARG, strings.Join(f.Amenities, ","))
	}
	if f.Search != nil {
		q.Set(SEARCH_QUERY_ARG, *f.Search)
	}
	if f.OpenAt != nil {
		q.Set(OPEN_QUERY_ARG, "true")
	}

	return q
}
