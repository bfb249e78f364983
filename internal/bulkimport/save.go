package bulkimport

import (
	"context"
	"log/slog"
	"strings"
)

// LogRequest carries the fields of one usage log to create.
type LogRequest struct {
	FragranceID     int64
	UserFragranceID int64
	LogDate         string // YYYY-MM-DD
	TimeOfDay       *TimeOfDay
	Weather         *Weather
	Enjoyment       *int
	Notes           *string
}

// CreateLogFunc persists a single usage log. Implementations must tolerate
// being called repeatedly across entries; there is no transaction spanning
// the batch.
type CreateLogFunc func(ctx context.Context, req LogRequest) error

// ProgressFunc observes save progress snapshots as the batch advances.
type ProgressFunc func(SaveProgress)

// Executor commits valid entries one at a time, in order, through an external
// create-log operation. One entry's failure never stops the rest: every entry
// is attempted exactly once, failures are recorded per entry, and nothing is
// retried or rolled back.
type Executor struct {
	create CreateLogFunc
	report ProgressFunc
	logger *slog.Logger
}

// NewExecutor builds an executor. report may be nil when the caller does not
// need live progress.
func NewExecutor(create CreateLogFunc, report ProgressFunc, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{create: create, report: report, logger: logger}
}

// Run saves the given entries sequentially and returns the final progress.
// The initial zero-progress state is reported before the first commit, an
// updated snapshot after every attempt, and Run returns exactly once, after
// all entries have been attempted.
func (x *Executor) Run(ctx context.Context, entries []ParsedEntry) SaveProgress {
	progress := SaveProgress{Total: len(entries)}
	x.emit(progress)

	for _, entry := range entries {
		err := x.create(ctx, requestFromEntry(entry))
		if err != nil {
			progress.Failed++
			message := strings.TrimSpace(err.Error())
			if message == "" {
				message = "unknown error"
			}
			progress.Errors = append(progress.Errors, EntryError{EntryID: entry.ID, Message: message})
			x.logger.Warn("entry save failed",
				slog.String("entry_id", entry.ID),
				slog.String("fragrance", entry.FragranceName),
				slog.Any("error", err))
		} else {
			progress.Completed++
		}
		x.emit(progress)
	}

	x.logger.Info("bulk save finished",
		slog.Int("total", progress.Total),
		slog.Int("completed", progress.Completed),
		slog.Int("failed", progress.Failed))
	return progress
}

func (x *Executor) emit(progress SaveProgress) {
	if x.report == nil {
		return
	}
	snapshot := progress
	if len(progress.Errors) > 0 {
		snapshot.Errors = make([]EntryError, len(progress.Errors))
		copy(snapshot.Errors, progress.Errors)
	}
	x.report(snapshot)
}

func requestFromEntry(entry ParsedEntry) LogRequest {
	req := LogRequest{
		LogDate:   entry.DateString(),
		TimeOfDay: entry.TimeOfDay,
		Weather:   entry.Weather,
		Enjoyment: entry.Enjoyment,
		Notes:     entry.Notes,
	}
	if entry.MatchedFragranceID != nil {
		req.FragranceID = *entry.MatchedFragranceID
	}
	if entry.MatchedUserFragranceID != nil {
		req.UserFragranceID = *entry.MatchedUserFragranceID
	}
	return req
}
