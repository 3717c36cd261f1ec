package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"spots-server/models"
)

const (
	OPEN_ALL_DAY_LABEL = "Open all day"
	CLOSED_LABEL       = "Closed"
)

// TodayHours picks the pair for now's weekday.
func TodayHours(w models.WeeklyHours, now time.Time) models.DayHours {
	return w.Day(now.Weekday())
}

// parseClock turns "HH:MM[:SS]" into fractional hours. Seconds are ignored.
func parseClock(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}

// IsOpenAt reports whether now falls inside today's open/close pair. A close
// earlier than open means the range runs past midnight. Open is inclusive,
// close exclusive. Unparseable values, like the "0" sentinel, read as closed.
func IsOpenAt(w models.WeeklyHours, now time.Time) bool {
	today := TodayHours(w, now)
	open, ok := parseClock(today.Open)
	if !ok {
		return false
	}
	closing, ok := parseClock(today.Close)
	if !ok {
		return false
	}

	current := float64(now.Hour()) + float64(now.Minute())/60
	if closing < open {
		return current >= open || current < closing
	}
	return current >= open && current < closing
}

// FormatTimeRange renders a day's pair for display.
func FormatTimeRange(open, closing string) string {
	switch {
	case open == "00:00:00" && closing == "24:00:00":
		return OPEN_ALL_DAY_LABEL
	case open == "00:00:00" && closing == "00:00:00":
		return CLOSED_LABEL
	// spots with no opening hours row read as closed, not "12 AM - 12 AM"
	case open == models.ClosedHoursSentinel && closing == models.ClosedHoursSentinel:
		return CLOSED_LABEL
	}
	return FormatTime(open) + " - " + FormatTime(closing)
}

// FormatTime renders "HH:MM:SS" on a 12 hour clock, e.g. "9 AM" or "5:30 PM".
// Minutes are shown only when non-zero.
func FormatTime(s string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, ":")
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return s
	}
	minutes := 0
	if len(parts) > 1 {
		minutes, _ = strconv.Atoi(parts[1])
	}

	// 24:00 closes at midnight, so it reads "12 AM" and never "12 PM"
	hours %= 24
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	if minutes > 0 {
		return fmt.Sprintf("%d:%02d %s", display, minutes, period)
	}
	return fmt.Sprintf("%d %s", display, period)
}

// BuildSpotStatus derives the open flag and formatted schedule, Sunday first.
func BuildSpotStatus(spot models.StudySpot, now time.Time) models.SpotStatus {
	w := spot.Hours.OpeningHours
	today := TodayHours(w, now)

	week := make([]models.DayLabel, 0, len(w))
	for d := time.Sunday; d <= time.Saturday; d++ {
		week = append(week, models.DayLabel{
			Day:   d.String(),
			Hours: FormatTimeRange(w[d].Open, w[d].Close),
		})
	}

	return models.SpotStatus{
		SpotID: spot.ID,
		Open:   IsOpenAt(w, now),
		Today:  FormatTimeRange(today.Open, today.Close),
		Week:   week,
	}
}
