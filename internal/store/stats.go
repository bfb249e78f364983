package store

import (
	"context"
	"fmt"
)

// Stats aggregates the full log history: totals, date range, the most-worn
// fragrances, and wear counts by time of day and weather.
func (s *Store) Stats(ctx context.Context, mostWornLimit int) (*UsageStats, error) {
	ctx = ensureContext(ctx)
	if mostWornLimit <= 0 {
		mostWornLimit = 10
	}

	stats := &UsageStats{
		ByTimeOfDay: make(map[string]int),
		ByWeather:   make(map[string]int),
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1), COUNT(DISTINCT fragrance_id),
		       COALESCE(MIN(log_date), ''), COALESCE(MAX(log_date), '')
		FROM fragrance_logs`,
	).Scan(&stats.TotalLogs, &stats.DistinctFragrances, &stats.FirstLogDate, &stats.LastLogDate)
	if err != nil {
		return nil, fmt.Errorf("select log totals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.house || ' ' || f.name, COUNT(1), MAX(l.log_date),
		       COALESCE(AVG(l.enjoyment), 0)
		FROM fragrance_logs l
		INNER JOIN fragrances f ON f.id = l.fragrance_id
		GROUP BY l.fragrance_id
		ORDER BY COUNT(1) DESC, MAX(l.log_date) DESC
		LIMIT ?`, mostWornLimit)
	if err != nil {
		return nil, fmt.Errorf("select most worn: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var row MostWornRow
		if err := rows.Scan(&row.FragranceFullName, &row.WearCount, &row.LastWorn, &row.AvgEnjoyment); err != nil {
			return nil, fmt.Errorf("scan most worn: %w", err)
		}
		stats.MostWorn = append(stats.MostWorn, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.countsByColumn(ctx, "time_of_day", stats.ByTimeOfDay); err != nil {
		return nil, err
	}
	if err := s.countsByColumn(ctx, "weather", stats.ByWeather); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) countsByColumn(ctx context.Context, column string, dst map[string]int) error {
	// column is one of two literals above, never user input.
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s, COUNT(1) FROM fragrance_logs WHERE %s IS NOT NULL GROUP BY %s`,
		column, column, column))
	if err != nil {
		return fmt.Errorf("select %s counts: %w", column, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("scan %s count: %w", column, err)
		}
		dst[key] = count
	}
	return rows.Err()
}
