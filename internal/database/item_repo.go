package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/frabrice/insightium/internal/models"
)

// ItemRepository is the local cache of the mirrored catalog.
type ItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// UpsertItems inserts or refreshes a batch of items in one transaction.
func (r *ItemRepository) UpsertItems(items []models.MediaItem) error {
	tx, err := r.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO media_items
			(id, kind, title, description, category, duration, publish_date,
			 view_count, rating, featured, is_new, media_url, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			duration = excluded.duration,
			publish_date = excluded.publish_date,
			view_count = excluded.view_count,
			rating = excluded.rating,
			featured = excluded.featured,
			is_new = excluded.is_new,
			media_url = excluded.media_url,
			fetched_at = excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		fetchedAt := item.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = time.Now()
		}
		_, err := stmt.Exec(
			item.ID, string(item.Kind), item.Title, item.Description,
			item.Category, item.Duration, item.PublishDate, item.ViewCount,
			item.Rating, item.Featured, item.IsNew, item.MediaURL, fetchedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}
	return nil
}

// GetItemByID returns one item or ErrNotFound.
func (r *ItemRepository) GetItemByID(id string) (*models.MediaItem, error) {
	row := r.db.conn.QueryRow(`
		SELECT id, kind, title, description, category, duration, publish_date,
		       view_count, rating, featured, is_new, media_url, fetched_at
		FROM media_items WHERE id = ?`, id)

	item, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItemsByKind returns all cached items of a kind in catalog order
// (insertion order, which is the upstream's page order).
func (r *ItemRepository) ListItemsByKind(kind models.Kind) ([]models.MediaItem, error) {
	rows, err := r.db.conn.Query(`
		SELECT id, kind, title, description, category, duration, publish_date,
		       view_count, rating, featured, is_new, media_url, fetched_at
		FROM media_items WHERE kind = ? ORDER BY rowid`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return items, nil
}

// Categories returns the distinct non-empty categories of a kind,
// sorted alphabetically.
func (r *ItemRepository) Categories(kind models.Kind) ([]string, error) {
	rows, err := r.db.conn.Query(`
		SELECT DISTINCT category FROM media_items
		WHERE kind = ? AND category != ''
		ORDER BY category`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return categories, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.MediaItem, error) {
	var item models.MediaItem
	var kind string
	err := row.Scan(
		&item.ID, &kind, &item.Title, &item.Description, &item.Category,
		&item.Duration, &item.PublishDate, &item.ViewCount, &item.Rating,
		&item.Featured, &item.IsNew, &item.MediaURL, &item.FetchedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Kind = models.Kind(kind)
	return &item, nil
}
