package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"scentlog/internal/bulkimport"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatConfidence(confidence float64) string {
	if confidence <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", confidence*100)
}

func formatEnjoyment(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

func formatOptional[T ~string](value *T) string {
	if value == nil {
		return "-"
	}
	return string(*value)
}

func formatNotes(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}

// entryStatus distinguishes committable entries, entries whose name did not
// resolve, and entries still missing a date.
func entryStatus(entry bulkimport.ParsedEntry) string {
	switch {
	case entry.IsValid():
		return "ok"
	case entry.MatchedFragranceID == nil:
		return "no match"
	default:
		return "no date"
	}
}

func parseDateFlag(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", value)
	}
	return date, nil
}
