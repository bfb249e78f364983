package store

import (
	"context"
	"fmt"
	"time"
)

// CreateLog validates and inserts one usage log. When MarkGone is set the
// owning collection row is flipped to had/emptied in the same transaction, so
// a failed update never strands a half-recorded wearing.
func (s *Store) CreateLog(ctx context.Context, log NewLog) (int64, error) {
	ctx = ensureContext(ctx)
	if err := validateNewLog(log); err != nil {
		return 0, err
	}

	var logID int64
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin log tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			`INSERT INTO fragrance_logs
			 (fragrance_id, user_fragrance_id, log_date, time_of_day, weather, enjoyment, notes)
			 VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, 0), NULLIF(?, ''))`,
			log.FragranceID, log.UserFragranceID, log.LogDate,
			log.TimeOfDay, log.Weather, log.Enjoyment, log.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert log: %w", err)
		}
		logID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("log id: %w", err)
		}

		if log.MarkGone {
			if _, err := tx.ExecContext(ctx,
				`UPDATE user_fragrances
				 SET status = ?, had_details = 'emptied', gone_date = ?
				 WHERE id = ?`,
				StatusHad, log.LogDate, log.UserFragranceID,
			); err != nil {
				return fmt.Errorf("mark bottle gone: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return logID, nil
}

// ListLogs returns the most recent logs joined with their fragrance names.
// A non-positive limit returns everything.
func (s *Store) ListLogs(ctx context.Context, limit int) ([]LogRow, error) {
	ctx = ensureContext(ctx)
	query := `
		SELECT l.id, l.log_date, f.house || ' ' || f.name, l.user_fragrance_id,
		       COALESCE(l.time_of_day, ''), COALESCE(l.weather, ''),
		       COALESCE(l.enjoyment, 0), COALESCE(l.notes, '')
		FROM fragrance_logs l
		INNER JOIN fragrances f ON f.id = l.fragrance_id
		ORDER BY l.log_date DESC, l.id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select logs: %w", err)
	}
	defer rows.Close()

	var logs []LogRow
	for rows.Next() {
		var row LogRow
		if err := rows.Scan(&row.ID, &row.LogDate, &row.FragranceFullName, &row.UserFragranceID,
			&row.TimeOfDay, &row.Weather, &row.Enjoyment, &row.Notes); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, row)
	}
	return logs, rows.Err()
}

func validateNewLog(log NewLog) error {
	if log.FragranceID <= 0 || log.UserFragranceID <= 0 {
		return fmt.Errorf("%w: fragrance and collection ids are required", ErrValidation)
	}
	if err := validateDate(log.LogDate); err != nil {
		return fmt.Errorf("%w: log date: %v", ErrValidation, err)
	}
	switch log.TimeOfDay {
	case "", "day", "night":
	default:
		return fmt.Errorf("%w: unknown time of day %q", ErrValidation, log.TimeOfDay)
	}
	switch log.Weather {
	case "", "hot", "cold", "mild":
	default:
		return fmt.Errorf("%w: unknown weather %q", ErrValidation, log.Weather)
	}
	if log.Enjoyment != 0 && (log.Enjoyment < 1 || log.Enjoyment > 10) {
		return fmt.Errorf("%w: enjoyment must be between 1 and 10, got %d", ErrValidation, log.Enjoyment)
	}
	return nil
}

func validateDate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD, got %q", value)
	}
	return nil
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
