package bulkimport

import (
	"testing"
	"time"

	"scentlog/internal/catalog"
)

func testCatalog() []catalog.Entry {
	return []catalog.Entry{
		{FragranceID: 1, UserFragranceID: 10, House: "Creed", Name: "Aventus"},
		{FragranceID: 2, UserFragranceID: 20, House: "Chanel", Name: "Coromandel"},
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestParseBilingualJournal(t *testing.T) {
	parser := NewParser(Options{Now: fixedNow(date(2024, time.January, 30))})
	entries := parser.Parse("Lunes 29\nAventus: noche\nCoromandel", testCatalog())

	if len(entries) != 2 {
		t.Fatalf("parsed %d entries, want 2", len(entries))
	}
	for i, entry := range entries {
		if entry.DateString() != "2024-01-29" {
			t.Errorf("entry %d date = %q, want 2024-01-29", i, entry.DateString())
		}
		if !entry.IsValid() {
			t.Errorf("entry %d should be valid", i)
		}
	}

	first := entries[0]
	if first.FragranceName != "Aventus" {
		t.Errorf("first name = %q, want Aventus", first.FragranceName)
	}
	if first.MatchedFragranceID == nil || *first.MatchedFragranceID != 1 {
		t.Errorf("first matched %v, want fragrance 1", first.MatchedFragranceID)
	}
	if first.TimeOfDay == nil || *first.TimeOfDay != TimeNight {
		t.Errorf("first time of day = %v, want night", first.TimeOfDay)
	}
	if first.Notes != nil {
		t.Errorf("first notes = %q, want nil once the keyword is stripped", *first.Notes)
	}

	second := entries[1]
	if second.MatchedFragranceID == nil || *second.MatchedFragranceID != 2 {
		t.Errorf("second matched %v, want fragrance 2", second.MatchedFragranceID)
	}
	if second.MatchedUserFragranceID == nil || *second.MatchedUserFragranceID != 20 {
		t.Errorf("second ownership %v, want 20", second.MatchedUserFragranceID)
	}
}

func TestParseLineMetadata(t *testing.T) {
	parser := NewParser(Options{Now: fixedNow(date(2024, time.March, 10))})

	entries := parser.Parse("Monday 5\nAventus: dia calor, lovely 9", testCatalog())
	if len(entries) != 1 {
		t.Fatalf("parsed %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.TimeOfDay == nil || *entry.TimeOfDay != TimeDay {
		t.Errorf("time of day = %v, want day", entry.TimeOfDay)
	}
	if entry.Weather == nil || *entry.Weather != WeatherHot {
		t.Errorf("weather = %v, want hot", entry.Weather)
	}
	if entry.Enjoyment == nil || *entry.Enjoyment != 9 {
		t.Errorf("enjoyment = %v, want 9", entry.Enjoyment)
	}
	if entry.Notes == nil || *entry.Notes != ", lovely" {
		t.Errorf("notes = %v, want %q", entry.Notes, ", lovely")
	}
	if entry.DateString() != "2024-03-05" {
		t.Errorf("date = %q, want 2024-03-05", entry.DateString())
	}
}

func TestParseSplitsOnFirstColon(t *testing.T) {
	parser := NewParser(Options{Now: fixedNow(date(2024, time.March, 10))})
	entries := parser.Parse("Aventus: scent: smoky pineapple", testCatalog())
	if len(entries) != 1 {
		t.Fatalf("parsed %d entries, want 1", len(entries))
	}
	if entries[0].FragranceName != "Aventus" {
		t.Errorf("name = %q, want Aventus", entries[0].FragranceName)
	}
	if entries[0].Notes == nil || *entries[0].Notes != "scent: smoky pineapple" {
		t.Errorf("notes = %v, want the full remainder after the first colon", entries[0].Notes)
	}
}

func TestParseKeepsInvalidEntries(t *testing.T) {
	parser := NewParser(Options{Now: fixedNow(date(2024, time.March, 10))})
	entries := parser.Parse("Aventus\n\nSomething Unrecognizable Entirely", testCatalog())

	if len(entries) != 2 {
		t.Fatalf("parsed %d entries, want 2 (blank line skipped)", len(entries))
	}
	// No day header appeared, so even the matched line has no date.
	if entries[0].MatchedFragranceID == nil {
		t.Error("first entry should match the catalog")
	}
	if entries[0].IsValid() {
		t.Error("first entry should be invalid without a date")
	}
	if entries[1].MatchedFragranceID != nil {
		t.Error("second entry should not match anything")
	}
	if entries[1].IsValid() {
		t.Error("second entry should be invalid")
	}
	if entries[1].RawLine != "Something Unrecognizable Entirely" {
		t.Errorf("raw line = %q", entries[1].RawLine)
	}
}

func TestParseTrailingRatingOnlyByDefault(t *testing.T) {
	parser := NewParser(Options{Now: fixedNow(date(2024, time.March, 10))})
	entries := parser.Parse("Monday 5\nAventus: 7 sprays in the morning", testCatalog())
	if len(entries) != 1 {
		t.Fatalf("parsed %d entries, want 1", len(entries))
	}
	if entries[0].Enjoyment != nil {
		t.Errorf("enjoyment = %v, want nil for a mid-line number", *entries[0].Enjoyment)
	}

	anywhere := NewParser(Options{Now: fixedNow(date(2024, time.March, 10)), RatingAnywhere: true})
	entries = anywhere.Parse("Monday 5\nAventus: 7 sprays in the rain", testCatalog())
	if entries[0].Enjoyment == nil || *entries[0].Enjoyment != 7 {
		t.Errorf("enjoyment = %v, want 7 with RatingAnywhere", entries[0].Enjoyment)
	}
}

func TestParseEntryIDsAreUnique(t *testing.T) {
	parser := NewParser(Options{Now: fixedNow(date(2024, time.March, 10))})
	entries := parser.Parse("Aventus\nAventus\nAventus", testCatalog())
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			t.Fatal("entry id is empty")
		}
		if _, dup := seen[entry.ID]; dup {
			t.Fatalf("duplicate entry id %q", entry.ID)
		}
		seen[entry.ID] = struct{}{}
	}
}
