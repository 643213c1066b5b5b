package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/bookmark-comb/internal/corerrors"
	"github.com/lysyi3m/bookmark-comb/internal/model"
)

// BookmarkRepository handles bookmark persistence keyed by normalized URL.
type BookmarkRepository struct {
	db *DB
}

func NewBookmarkRepository(db *DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// UpsertResult reports whether the write created a new row or updated an
// existing one, mirroring the newBookmarks/updatedBookmarks counters C9
// tracks per import.
type UpsertResult struct {
	Bookmark *model.Bookmark
	Created  bool
}

// Upsert inserts a bookmark by normalized URL or updates its mutable
// fields if a row with that URL already exists.
func (r *BookmarkRepository) Upsert(b *model.Bookmark) (UpsertResult, error) {
	now := time.Now().UTC()

	existing, err := r.GetByURL(b.URL)
	if err != nil && err != sql.ErrNoRows {
		return UpsertResult{}, err
	}

	if existing != nil {
		b.ID = existing.ID
		b.CreatedAt = existing.CreatedAt
		b.UpdatedAt = now

		_, execErr := r.db.Exec(`
			UPDATE bookmark SET
				title = ?, description = ?, source_folder = ?, category_id = ?,
				meta_title = ?, meta_description = ?, og_title = ?, og_description = ?, og_image = ?,
				keywords = ?, summary = ?, suggested_label = ?, confidence = ?, updated_at = ?
			WHERE id = ?
		`, b.Title, b.Description, b.SourceFolder, nullableID(b.CategoryID),
			b.MetaTitle, b.MetaDescription, b.OGTitle, b.OGDescription, b.OGImage,
			strings.Join(b.Keywords, ","), b.Summary, b.SuggestedLabel, b.Confidence, now, b.ID)
		if execErr != nil {
			return UpsertResult{}, fmt.Errorf("store: failed to update bookmark: %w", execErr)
		}
		return UpsertResult{Bookmark: b, Created: false}, nil
	}

	b.ID = uuid.New().String()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, execErr := r.db.Exec(`
		INSERT INTO bookmark (
			id, url, title, description, source_folder, category_id,
			meta_title, meta_description, og_title, og_description, og_image,
			keywords, summary, suggested_label, confidence, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			source_folder = excluded.source_folder,
			category_id = excluded.category_id,
			meta_title = excluded.meta_title,
			meta_description = excluded.meta_description,
			og_title = excluded.og_title,
			og_description = excluded.og_description,
			og_image = excluded.og_image,
			keywords = excluded.keywords,
			summary = excluded.summary,
			suggested_label = excluded.suggested_label,
			confidence = excluded.confidence,
			updated_at = excluded.updated_at
	`, b.ID, b.URL, b.Title, b.Description, b.SourceFolder, nullableID(b.CategoryID),
		b.MetaTitle, b.MetaDescription, b.OGTitle, b.OGDescription, b.OGImage,
		strings.Join(b.Keywords, ","), b.Summary, b.SuggestedLabel, b.Confidence, b.CreatedAt, b.UpdatedAt)
	if execErr != nil {
		return UpsertResult{}, fmt.Errorf("%w: %v", corerrors.ErrStorageConflict, execErr)
	}

	return UpsertResult{Bookmark: b, Created: true}, nil
}

// GetByURL returns sql.ErrNoRows when no bookmark has that normalized URL.
func (r *BookmarkRepository) GetByURL(url string) (*model.Bookmark, error) {
	return r.scanOne(r.db.QueryRow(bookmarkSelect+` WHERE url = ?`, url))
}

// SetCategoryID reassigns every bookmark currently pointing at fromID to
// toID (an empty toID clears the link).
func (r *BookmarkRepository) SetCategoryID(fromID, toID string) (int64, error) {
	res, err := r.db.Exec(`UPDATE bookmark SET category_id = ? WHERE category_id = ?`, nullableID(toID), fromID)
	if err != nil {
		return 0, fmt.Errorf("store: failed to reassign bookmark category: %w", err)
	}
	return res.RowsAffected()
}

// ListAll returns every bookmark, used by the exporter's consistent
// snapshot read.
func (r *BookmarkRepository) ListAll() ([]*model.Bookmark, error) {
	rows, err := r.db.Query(bookmarkSelect)
	if err != nil {
		return nil, fmt.Errorf("store: failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var out []*model.Bookmark
	for rows.Next() {
		b, err := scanBookmarkRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Count returns the total number of persisted bookmarks, for the stats
// endpoint.
func (r *BookmarkRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM bookmark`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: failed to count bookmarks: %w", err)
	}
	return n, nil
}

const bookmarkSelect = `
	SELECT id, url, title, description, source_folder, COALESCE(category_id, ''),
	       meta_title, meta_description, og_title, og_description, og_image,
	       keywords, summary, suggested_label, confidence, created_at, updated_at
	FROM bookmark`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *BookmarkRepository) scanOne(row rowScanner) (*model.Bookmark, error) {
	return scanBookmarkRow(row)
}

func scanBookmarkRow(row rowScanner) (*model.Bookmark, error) {
	var b model.Bookmark
	var keywordsCSV string
	if err := row.Scan(
		&b.ID, &b.URL, &b.Title, &b.Description, &b.SourceFolder, &b.CategoryID,
		&b.MetaTitle, &b.MetaDescription, &b.OGTitle, &b.OGDescription, &b.OGImage,
		&keywordsCSV, &b.Summary, &b.SuggestedLabel, &b.Confidence, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if keywordsCSV != "" {
		b.Keywords = strings.Split(keywordsCSV, ",")
	}
	return &b, nil
}
