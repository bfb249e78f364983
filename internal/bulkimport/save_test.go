package bulkimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validEntry(id string, fragranceID, userFragranceID int64) ParsedEntry {
	when := date(2024, time.March, 5)
	return ParsedEntry{
		ID:                     id,
		RawLine:                "entry " + id,
		Date:                   &when,
		FragranceName:          "Aventus",
		MatchedFragranceID:     &fragranceID,
		MatchedUserFragranceID: &userFragranceID,
		MatchConfidence:        1,
	}
}

func TestExecutorContinuesPastFailures(t *testing.T) {
	entries := make([]ParsedEntry, 0, 5)
	for i := 1; i <= 5; i++ {
		entries = append(entries, validEntry(fmt.Sprintf("e%d", i), int64(i), int64(i*10)))
	}

	var attempts int
	create := func(ctx context.Context, req LogRequest) error {
		attempts++
		if attempts == 3 {
			return errors.New("disk full")
		}
		return nil
	}

	var snapshots []SaveProgress
	report := func(p SaveProgress) { snapshots = append(snapshots, p) }

	progress := NewExecutor(create, report, discardLogger()).Run(context.Background(), entries)

	if attempts != 5 {
		t.Errorf("attempts = %d, want every entry attempted once", attempts)
	}
	if progress.Total != 5 || progress.Completed != 4 || progress.Failed != 1 {
		t.Errorf("progress = %+v, want total 5, completed 4, failed 1", progress)
	}
	if !progress.Done() {
		t.Error("final progress should report done")
	}
	if len(progress.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(progress.Errors))
	}
	if progress.Errors[0].EntryID != "e3" {
		t.Errorf("failed entry = %q, want e3", progress.Errors[0].EntryID)
	}
	if progress.Errors[0].Message != "disk full" {
		t.Errorf("message = %q, want the create error text", progress.Errors[0].Message)
	}

	// One initial snapshot plus one per attempt.
	if len(snapshots) != 6 {
		t.Fatalf("snapshots = %d, want 6", len(snapshots))
	}
	if snapshots[0].Total != 5 || snapshots[0].Completed != 0 || snapshots[0].Failed != 0 {
		t.Errorf("initial snapshot = %+v, want zero progress", snapshots[0])
	}
	for i := 1; i < len(snapshots); i++ {
		prev, curr := snapshots[i-1], snapshots[i]
		if curr.Completed+curr.Failed != prev.Completed+prev.Failed+1 {
			t.Errorf("snapshot %d did not advance by one attempt: %+v -> %+v", i, prev, curr)
		}
	}
}

func TestExecutorRequestFields(t *testing.T) {
	entry := validEntry("e1", 7, 70)
	night := TimeNight
	hot := WeatherHot
	rating := 8
	notes := "smoky"
	entry.TimeOfDay = &night
	entry.Weather = &hot
	entry.Enjoyment = &rating
	entry.Notes = &notes

	var got LogRequest
	create := func(ctx context.Context, req LogRequest) error {
		got = req
		return nil
	}
	NewExecutor(create, nil, discardLogger()).Run(context.Background(), []ParsedEntry{entry})

	if got.FragranceID != 7 || got.UserFragranceID != 70 {
		t.Errorf("ids = %d/%d, want 7/70", got.FragranceID, got.UserFragranceID)
	}
	if got.LogDate != "2024-03-05" {
		t.Errorf("log date = %q, want 2024-03-05", got.LogDate)
	}
	if got.TimeOfDay == nil || *got.TimeOfDay != TimeNight {
		t.Errorf("time of day = %v, want night", got.TimeOfDay)
	}
	if got.Weather == nil || *got.Weather != WeatherHot {
		t.Errorf("weather = %v, want hot", got.Weather)
	}
	if got.Enjoyment == nil || *got.Enjoyment != 8 {
		t.Errorf("enjoyment = %v, want 8", got.Enjoyment)
	}
	if got.Notes == nil || *got.Notes != "smoky" {
		t.Errorf("notes = %v, want smoky", got.Notes)
	}
}

func TestExecutorEmptyErrorMessageFallback(t *testing.T) {
	create := func(ctx context.Context, req LogRequest) error {
		return errors.New("   ")
	}
	progress := NewExecutor(create, nil, discardLogger()).Run(context.Background(), []ParsedEntry{validEntry("e1", 1, 10)})
	if len(progress.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(progress.Errors))
	}
	if progress.Errors[0].Message != "unknown error" {
		t.Errorf("message = %q, want the fallback", progress.Errors[0].Message)
	}
}

func TestExecutorEmptyBatch(t *testing.T) {
	create := func(ctx context.Context, req LogRequest) error {
		t.Fatal("create should not be called")
		return nil
	}
	var reports int
	progress := NewExecutor(create, func(SaveProgress) { reports++ }, discardLogger()).Run(context.Background(), nil)
	if progress.Total != 0 || !progress.Done() {
		t.Errorf("progress = %+v, want empty and done", progress)
	}
	if reports != 1 {
		t.Errorf("reports = %d, want just the initial snapshot", reports)
	}
}
