package bulkimport

import (
	"strconv"
	"strings"
	"time"

	"scentlog/internal/textutil"
)

// Weekday vocabulary for day-header lines, Spanish and English,
// matched after lowercasing and diacritic stripping.
var weekdayNames = func() map[string]struct{} {
	names := []string{
		"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}()

// ParseDayHeader reports whether line is a day header (a weekday name,
// optionally followed by a 1-2 digit day-of-month) and, if so, the inferred
// calendar date.
//
// Without a day number the header means today. With one, a day greater than
// today's day-of-month is assumed to fall in the previous month (rolling over
// the year at January); otherwise the current month is used. Journals that
// span more than one month boundary will be inferred wrong; this is a
// best-effort heuristic, not a calendar parser.
func ParseDayHeader(line string, today time.Time) (time.Time, bool) {
	fields := strings.Fields(textutil.NormalizeMatchKey(line))
	if len(fields) == 0 || len(fields) > 2 {
		return time.Time{}, false
	}
	if _, ok := weekdayNames[fields[0]]; !ok {
		return time.Time{}, false
	}

	if len(fields) == 1 {
		return truncateToDay(today), true
	}

	if len(fields[1]) > 2 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	year, month := today.Year(), today.Month()
	if day > today.Day() {
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}
	return time.Date(year, month, day, 0, 0, 0, 0, today.Location()), true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
