package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/bookmark-comb/internal/model"
)

// SessionRepository records the outcome of each import run.
type SessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create writes a session row exactly once, at the end of a run.
func (r *SessionRepository) Create(s *model.ImportSession) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO import_session (
			id, file_name, total_parsed, successful, failed, skipped,
			new_bookmarks, updated_bookmarks, duplicates_in_file,
			custom_categories_created, ai_assignments, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.FileName, s.TotalParsed, s.Successful, s.Failed, s.Skipped,
		s.NewBookmarks, s.UpdatedBookmarks, s.DuplicatesInFile,
		s.CustomCategoriesCreated, s.AIAssignments, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: failed to write import session: %w", err)
	}
	return nil
}
