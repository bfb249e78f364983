package bulkimport

import (
	"regexp"
	"strings"
)

// Keyword vocabularies are bilingual (English and Spanish) because the
// journals this tool ingests freely mix both. Night keywords are checked
// before day keywords so lines mentioning both lean night; weather is checked
// hot, cold, mild in that order.
var (
	nightKeywords = []string{"night", "noche", "evening", "bed", "cena", "dinner"}
	dayKeywords   = []string{"day", "dia", "día", "morning", "mañana", "tarde", "afternoon", "almuerzo"}

	hotKeywords  = []string{"hot", "caliente", "calor"}
	coldKeywords = []string{"cold", "frio", "frío"}
	mildKeywords = []string{"mild", "templado", "warm"}
)

var keywordPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, set := range [][]string{nightKeywords, dayKeywords, hotKeywords, coldKeywords, mildKeywords} {
		for _, keyword := range set {
			patterns[keyword] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		}
	}
	return patterns
}()

func extractTimeOfDay(line string) *TimeOfDay {
	lowered := strings.ToLower(line)
	if containsAny(lowered, nightKeywords) {
		value := TimeNight
		return &value
	}
	if containsAny(lowered, dayKeywords) {
		value := TimeDay
		return &value
	}
	return nil
}

func extractWeather(line string) *Weather {
	lowered := strings.ToLower(line)
	if containsAny(lowered, hotKeywords) {
		value := WeatherHot
		return &value
	}
	if containsAny(lowered, coldKeywords) {
		value := WeatherCold
		return &value
	}
	if containsAny(lowered, mildKeywords) {
		value := WeatherMild
		return &value
	}
	return nil
}

func containsAny(lowered string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func timeOfDayKeywords(value TimeOfDay) []string {
	if value == TimeNight {
		return nightKeywords
	}
	return dayKeywords
}

func weatherKeywords(value Weather) []string {
	switch value {
	case WeatherHot:
		return hotKeywords
	case WeatherCold:
		return coldKeywords
	default:
		return mildKeywords
	}
}

// stripKeywords removes whole-word, case-insensitive occurrences of the given
// keywords from text.
func stripKeywords(text string, keywords []string) string {
	for _, keyword := range keywords {
		if pattern, ok := keywordPatterns[keyword]; ok {
			text = pattern.ReplaceAllString(text, "")
		}
	}
	return text
}
