package bulkimport

import (
	"fmt"
	"time"

	"scentlog/internal/catalog"
)

// FieldEdit is one validated change to a single entry field. The concrete
// types below form a closed union over the editable fields; each carries its
// own validation so the session never needs to know field internals. A nil
// value inside an edit clears the field.
type FieldEdit interface {
	apply(*ParsedEntry) error
}

// DateEdit sets or clears the entry date.
type DateEdit struct {
	Date *time.Time
}

func (e DateEdit) apply(entry *ParsedEntry) error {
	if e.Date == nil {
		entry.Date = nil
		return nil
	}
	date := truncateToDay(*e.Date)
	entry.Date = &date
	return nil
}

// NameEdit replaces the cleaned fragrance name without touching the match;
// pair it with a MatchEdit when re-resolving.
type NameEdit struct {
	Name string
}

func (e NameEdit) apply(entry *ParsedEntry) error {
	entry.FragranceName = e.Name
	return nil
}

// MatchEdit sets or clears the resolved catalog match and its confidence.
type MatchEdit struct {
	Match *catalog.Match
}

func (e MatchEdit) apply(entry *ParsedEntry) error {
	if e.Match == nil {
		entry.MatchedFragranceID = nil
		entry.MatchedUserFragranceID = nil
		entry.MatchConfidence = 0
		return nil
	}
	fragranceID := e.Match.Entry.FragranceID
	userFragranceID := e.Match.Entry.UserFragranceID
	entry.MatchedFragranceID = &fragranceID
	entry.MatchedUserFragranceID = &userFragranceID
	entry.MatchConfidence = e.Match.Confidence
	return nil
}

// TimeOfDayEdit sets or clears the time-of-day.
type TimeOfDayEdit struct {
	Value *TimeOfDay
}

func (e TimeOfDayEdit) apply(entry *ParsedEntry) error {
	if e.Value != nil {
		if _, ok := ParseTimeOfDay(string(*e.Value)); !ok {
			return fmt.Errorf("time of day must be %q or %q", TimeDay, TimeNight)
		}
	}
	entry.TimeOfDay = e.Value
	return nil
}

// WeatherEdit sets or clears the weather.
type WeatherEdit struct {
	Value *Weather
}

func (e WeatherEdit) apply(entry *ParsedEntry) error {
	if e.Value != nil {
		if _, ok := ParseWeather(string(*e.Value)); !ok {
			return fmt.Errorf("weather must be %q, %q, or %q", WeatherHot, WeatherCold, WeatherMild)
		}
	}
	entry.Weather = e.Value
	return nil
}

// EnjoymentEdit sets or clears the enjoyment rating.
type EnjoymentEdit struct {
	Value *int
}

func (e EnjoymentEdit) apply(entry *ParsedEntry) error {
	if e.Value != nil && (*e.Value < 1 || *e.Value > 10) {
		return fmt.Errorf("enjoyment must be between 1 and 10, got %d", *e.Value)
	}
	entry.Enjoyment = e.Value
	return nil
}

// NotesEdit sets or clears the notes.
type NotesEdit struct {
	Value *string
}

func (e NotesEdit) apply(entry *ParsedEntry) error {
	entry.Notes = e.Value
	return nil
}
