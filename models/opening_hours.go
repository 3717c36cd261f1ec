package models

import (
	"encoding/json"
	"strings"
	"time"
)

// ClosedHoursSentinel fills every slot of a schedule that has no stored row.
const ClosedHoursSentinel = "0"

// DayHours is one day's open/close pair as stored, "HH:MM:SS".
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WeeklyHours is indexed by time.Weekday, Sunday first.
type WeeklyHours [7]DayHours

// SentinelWeek is substituted when a spot has no opening hours row.
func SentinelWeek() WeeklyHours {
	var w WeeklyHours
	for d := range w {
		w[d] = DayHours{Open: ClosedHoursSentinel, Close: ClosedHoursSentinel}
	}
	return w
}

func (w WeeklyHours) Day(d time.Weekday) DayHours {
	return w[d]
}

// OpenColumn and CloseColumn name the spot_opening_hours columns for a day,
// e.g. "monday_open".
func OpenColumn(d time.Weekday) string {
	return strings.ToLower(d.String()) + "_open"
}

func CloseColumn(d time.Weekday) string {
	return strings.ToLower(d.String()) + "_close"
}

// MarshalJSON flattens the week into {"monday_open": ..., "monday_close": ...}.
func (w WeeklyHours) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, 14)
	for d := time.Sunday; d <= time.Saturday; d++ {
		flat[OpenColumn(d)] = w[d].Open
		flat[CloseColumn(d)] = w[d].Close
	}
	return json.Marshal(flat)
}

func (w *WeeklyHours) UnmarshalJSON(data []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		w[d] = DayHours{Open: flat[OpenColumn(d)], Close: flat[CloseColumn(d)]}
	}
	return nil
}

// DayLabel is one formatted line of a weekly schedule.
type DayLabel struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// SpotStatus is derived on every request from the stored schedule.
type SpotStatus struct {
	SpotID string     `json:"spot_id"`
	Open   bool       `json:"open"`
	Today  string     `json:"today"`
	Week   []DayLabel `json:"week"`
}
