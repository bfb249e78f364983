package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"scentlog/internal/catalog"
)

// AddFragrance inserts a fragrance if it does not exist and returns its id.
func (s *Store) AddFragrance(ctx context.Context, house, name string) (int64, error) {
	ctx = ensureContext(ctx)
	house = strings.TrimSpace(house)
	name = strings.TrimSpace(name)
	if house == "" || name == "" {
		return 0, fmt.Errorf("%w: house and name are required", ErrValidation)
	}

	if _, err := s.execWithRetry(ctx,
		"INSERT INTO fragrances (house, name) VALUES (?, ?) ON CONFLICT (house, name) DO NOTHING",
		house, name,
	); err != nil {
		return 0, fmt.Errorf("insert fragrance: %w", err)
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM fragrances WHERE house = ? AND name = ?", house, name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("select fragrance id: %w", err)
	}
	return id, nil
}

// AddToCollection records ownership of a fragrance, creating the fragrance row
// when needed. The (fragrance, decant) pair is unique per collection.
func (s *Store) AddToCollection(ctx context.Context, house, name string, isDecant bool, acquiredDate string) (*CollectionItem, error) {
	ctx = ensureContext(ctx)
	fragranceID, err := s.AddFragrance(ctx, house, name)
	if err != nil {
		return nil, err
	}

	if acquiredDate != "" {
		if err := validateDate(acquiredDate); err != nil {
			return nil, fmt.Errorf("%w: acquired date: %v", ErrValidation, err)
		}
	}

	res, err := s.execWithRetry(ctx,
		`INSERT INTO user_fragrances (fragrance_id, is_decant, acquired_date)
		 VALUES (?, ?, NULLIF(?, ''))`,
		fragranceID, boolToInt(isDecant), acquiredDate,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("%w: %s %s is already in the collection", ErrValidation, house, name)
		}
		return nil, fmt.Errorf("insert collection item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("collection item id: %w", err)
	}
	return s.CollectionItem(ctx, id)
}

// CollectionItem fetches one collection row by id.
func (s *Store) CollectionItem(ctx context.Context, id int64) (*CollectionItem, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, collectionSelect+" WHERE uf.id = ?", id)
	item, err := scanCollectionItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: collection item %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select collection item: %w", err)
	}
	return item, nil
}

// Collection lists every collection row, current and gone, in catalog order.
func (s *Store) Collection(ctx context.Context) ([]CollectionItem, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, collectionSelect+" ORDER BY f.house, f.name, uf.id")
	if err != nil {
		return nil, fmt.Errorf("select collection: %w", err)
	}
	defer rows.Close()

	var items []CollectionItem
	for rows.Next() {
		item, err := scanCollectionItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// LogOptions returns the catalog the import matcher resolves against: every
// still-owned fragrance, ordered by house, name, then ownership id.
func (s *Store) LogOptions(ctx context.Context) ([]catalog.Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.house, f.name, f.id, uf.id, uf.is_decant
		 FROM user_fragrances uf
		 INNER JOIN fragrances f ON f.id = uf.fragrance_id
		 WHERE uf.status = ?
		 ORDER BY f.house, f.name, uf.id`, StatusHave)
	if err != nil {
		return nil, fmt.Errorf("select log options: %w", err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var entry catalog.Entry
		var isDecant int
		if err := rows.Scan(&entry.House, &entry.Name, &entry.FragranceID, &entry.UserFragranceID, &isDecant); err != nil {
			return nil, fmt.Errorf("scan log option: %w", err)
		}
		entry.IsDecant = isDecant != 0
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MarkGone flips a collection row to "had" with the given reason and date.
func (s *Store) MarkGone(ctx context.Context, userFragranceID int64, details, goneDate string) error {
	ctx = ensureContext(ctx)
	details = strings.ToLower(strings.TrimSpace(details))
	if _, ok := hadDetailValues[details]; !ok {
		return fmt.Errorf("%w: unknown had-details %q", ErrValidation, details)
	}
	if goneDate != "" {
		if err := validateDate(goneDate); err != nil {
			return fmt.Errorf("%w: gone date: %v", ErrValidation, err)
		}
	}

	res, err := s.execWithRetry(ctx,
		`UPDATE user_fragrances
		 SET status = ?, had_details = ?, gone_date = NULLIF(?, '')
		 WHERE id = ?`,
		StatusHad, details, goneDate, userFragranceID,
	)
	if err != nil {
		return fmt.Errorf("mark gone: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark gone rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: collection item %d", ErrNotFound, userFragranceID)
	}
	return nil
}

const collectionSelect = `
	SELECT uf.id, uf.fragrance_id, f.house, f.name, uf.is_decant, uf.status,
	       COALESCE(uf.had_details, ''), COALESCE(uf.acquired_date, ''),
	       COALESCE(uf.gone_date, ''), uf.created_at
	FROM user_fragrances uf
	INNER JOIN fragrances f ON f.id = uf.fragrance_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCollectionItem(row rowScanner) (*CollectionItem, error) {
	var item CollectionItem
	var isDecant int
	var createdAt string
	if err := row.Scan(&item.ID, &item.FragranceID, &item.House, &item.Name, &isDecant,
		&item.Status, &item.HadDetails, &item.AcquiredDate, &item.GoneDate, &createdAt); err != nil {
		return nil, err
	}
	item.IsDecant = isDecant != 0
	item.CreatedAt = parseTimestamp(createdAt)
	return &item, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
