package bulkimport

import (
	"strings"
	"time"
)

// TimeOfDay is the part of day a fragrance was worn.
type TimeOfDay string

const (
	TimeDay   TimeOfDay = "day"
	TimeNight TimeOfDay = "night"
)

// ParseTimeOfDay converts a string into a known TimeOfDay.
func ParseTimeOfDay(value string) (TimeOfDay, bool) {
	switch TimeOfDay(strings.ToLower(strings.TrimSpace(value))) {
	case TimeDay:
		return TimeDay, true
	case TimeNight:
		return TimeNight, true
	}
	return "", false
}

// Weather is the coarse weather context of a wearing.
type Weather string

const (
	WeatherHot  Weather = "hot"
	WeatherCold Weather = "cold"
	WeatherMild Weather = "mild"
)

// ParseWeather converts a string into a known Weather.
func ParseWeather(value string) (Weather, bool) {
	switch Weather(strings.ToLower(strings.TrimSpace(value))) {
	case WeatherHot:
		return WeatherHot, true
	case WeatherCold:
		return WeatherCold, true
	case WeatherMild:
		return WeatherMild, true
	}
	return "", false
}

// ParsedEntry is one candidate usage-log record derived from one input line.
//
// Validity is never stored: IsValid derives it from the current match and date
// so edits can never leave a stale flag behind.
type ParsedEntry struct {
	ID                     string
	RawLine                string
	Date                   *time.Time
	FragranceName          string
	MatchedFragranceID     *int64
	MatchedUserFragranceID *int64
	MatchConfidence        float64
	TimeOfDay              *TimeOfDay
	Weather                *Weather
	Enjoyment              *int
	Notes                  *string
}

// IsValid reports whether the entry can be committed: the name resolved to a
// catalog item and a date is present.
func (e ParsedEntry) IsValid() bool {
	return e.MatchedFragranceID != nil && e.Date != nil
}

// DateString formats the entry date as YYYY-MM-DD, or "" when unset.
func (e ParsedEntry) DateString() string {
	if e.Date == nil {
		return ""
	}
	return e.Date.Format("2006-01-02")
}
