package bulkimport

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"scentlog/internal/catalog"
)

var (
	trailingRatingPattern = regexp.MustCompile(`\b([1-9]|10)\b\s*$`)
	anywhereRatingPattern = regexp.MustCompile(`\b([1-9]|10)\b`)
)

// Options tunes parser behavior. The zero value uses the default match
// threshold and the trailing-only rating rule.
type Options struct {
	// MatchThreshold is the exclusive minimum fuzzy-match confidence.
	// Non-positive values fall back to catalog.DefaultMatchThreshold.
	MatchThreshold float64
	// RatingAnywhere extracts the first standalone 1-10 anywhere in the line
	// instead of only a trailing token.
	RatingAnywhere bool
	// Now supplies the reference date for day-header inference. Defaults to
	// time.Now.
	Now func() time.Time
}

// Parser turns raw journal text into parsed entries.
type Parser struct {
	matcher        *catalog.Matcher
	ratingAnywhere bool
	now            func() time.Time
}

// NewParser builds a parser with the given options.
func NewParser(opts Options) *Parser {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Parser{
		matcher:        catalog.NewMatcher(opts.MatchThreshold),
		ratingAnywhere: opts.RatingAnywhere,
		now:            now,
	}
}

// Matcher exposes the parser's fuzzy matcher so callers can re-resolve names
// after manual edits.
func (p *Parser) Matcher() *catalog.Matcher {
	return p.matcher
}

// Parse splits text into lines and folds them into entries, threading the
// date cursor set by day-header lines through as an explicit accumulator.
// Header lines emit no entry; every other non-blank line emits exactly one,
// valid or not, in source order.
func (p *Parser) Parse(text string, entries []catalog.Entry) []ParsedEntry {
	today := p.now()
	var current *time.Time
	var parsed []ParsedEntry
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if date, ok := ParseDayHeader(line, today); ok {
			cursor := date
			current = &cursor
			continue
		}
		parsed = append(parsed, p.parseLine(line, current, entries))
	}
	return parsed
}

// parseLine extracts one entry from a non-header line. The part before the
// first colon names the fragrance; anything after it is context that feeds
// the notes. Metadata keywords and the rating are detected on the whole line.
func (p *Parser) parseLine(line string, date *time.Time, entries []catalog.Entry) ParsedEntry {
	fragrancePart := line
	contextPart := ""
	if idx := strings.Index(line, ":"); idx >= 0 {
		fragrancePart = strings.TrimSpace(line[:idx])
		contextPart = strings.TrimSpace(line[idx+1:])
	}

	timeOfDay := extractTimeOfDay(line)
	weather := extractWeather(line)
	enjoyment := p.extractRating(line)

	name := cleanFragranceName(fragrancePart, timeOfDay, weather, enjoyment)
	match := p.matcher.Match(name, entries)
	notes := buildNotes(contextPart, timeOfDay, weather, enjoyment)

	entry := ParsedEntry{
		ID:            uuid.NewString(),
		RawLine:       line,
		Date:          date,
		FragranceName: name,
		TimeOfDay:     timeOfDay,
		Weather:       weather,
		Enjoyment:     enjoyment,
		Notes:         notes,
	}
	if match != nil {
		fragranceID := match.Entry.FragranceID
		userFragranceID := match.Entry.UserFragranceID
		entry.MatchedFragranceID = &fragranceID
		entry.MatchedUserFragranceID = &userFragranceID
		entry.MatchConfidence = match.Confidence
	}
	return entry
}

func (p *Parser) extractRating(line string) *int {
	pattern := trailingRatingPattern
	if p.ratingAnywhere {
		pattern = anywhereRatingPattern
	}
	groups := pattern.FindStringSubmatch(line)
	if groups == nil {
		return nil
	}
	rating, err := strconv.Atoi(groups[1])
	if err != nil || rating < 1 || rating > 10 {
		return nil
	}
	return &rating
}

func cleanFragranceName(fragrancePart string, timeOfDay *TimeOfDay, weather *Weather, rating *int) string {
	cleaned := fragrancePart
	if rating != nil {
		trailing := regexp.MustCompile(`\b` + strconv.Itoa(*rating) + `\b\s*$`)
		cleaned = strings.TrimSpace(trailing.ReplaceAllString(cleaned, ""))
	}
	if timeOfDay != nil {
		cleaned = stripKeywords(cleaned, timeOfDayKeywords(*timeOfDay))
	}
	if weather != nil {
		cleaned = stripKeywords(cleaned, weatherKeywords(*weather))
	}
	return strings.TrimSpace(cleaned)
}

func buildNotes(contextPart string, timeOfDay *TimeOfDay, weather *Weather, rating *int) *string {
	if contextPart == "" {
		return nil
	}
	notes := contextPart
	if timeOfDay != nil {
		notes = stripKeywords(notes, timeOfDayKeywords(*timeOfDay))
	}
	if weather != nil {
		notes = stripKeywords(notes, weatherKeywords(*weather))
	}
	if rating != nil {
		anywhere := regexp.MustCompile(`\b` + strconv.Itoa(*rating) + `\b`)
		notes = anywhere.ReplaceAllString(notes, "")
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil
	}
	return &notes
}
