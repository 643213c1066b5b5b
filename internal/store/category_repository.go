package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lysyi3m/bookmark-comb/internal/classify"
	"github.com/lysyi3m/bookmark-comb/internal/corerrors"
	"github.com/lysyi3m/bookmark-comb/internal/model"
)

// CategoryRepository handles category persistence: slug-keyed upsert,
// parent-first bulk creation, and merges.
type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// EnsureCategory returns the category with slug(name), creating it (and,
// recursively, its built-in parent) if absent.
func (r *CategoryRepository) EnsureCategory(name string) (*model.Category, error) {
	slug := Slugify(name)

	if existing, err := r.GetBySlug(slug); err == nil {
		return existing, nil
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	parentSlug, err := r.templateParentSlug(slug)
	if err != nil {
		return nil, err
	}

	var parentID string
	if parentSlug != "" {
		parent, err := r.ensureTemplateCategory(parentSlug)
		if err != nil {
			return nil, err
		}
		parentID = parent.ID
	}

	cat := &model.Category{
		ID:         uuid.New().String(),
		Slug:       slug,
		Name:       name,
		ParentSlug: parentSlug,
	}

	_, err = r.db.Exec(`
		INSERT INTO category (id, slug, name, description, parent_id, keywords)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cat.ID, cat.Slug, cat.Name, cat.Description, nullableID(parentID), "[]")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", corerrors.ErrStorageConflict, err)
	}

	return cat, nil
}

func (r *CategoryRepository) ensureTemplateCategory(slug string) (*model.Category, error) {
	if existing, err := r.GetBySlug(slug); err == nil {
		return existing, nil
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	var name string
	var parentSlug string
	err := r.db.QueryRow(`SELECT name, parent_slug FROM category_template WHERE slug = ?`, slug).Scan(&name, &parentSlug)
	if err != nil {
		return nil, fmt.Errorf("store: no template for built-in category %q: %w", slug, err)
	}

	return r.EnsureCategory(name)
}

func (r *CategoryRepository) templateParentSlug(slug string) (string, error) {
	var parentSlug string
	err := r.db.QueryRow(`SELECT parent_slug FROM category_template WHERE slug = ?`, slug).Scan(&parentSlug)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: failed to read category template: %w", err)
	}
	return parentSlug, nil
}

// GetBySlug returns sql.ErrNoRows when no category has that slug.
func (r *CategoryRepository) GetBySlug(slug string) (*model.Category, error) {
	row := r.db.QueryRow(`
		SELECT c.id, c.slug, c.name, c.description, COALESCE(p.slug, ''), c.keywords
		FROM category c
		LEFT JOIN category p ON p.id = c.parent_id
		WHERE c.slug = ?
	`, slug)

	var cat model.Category
	var keywordsJSON string
	if err := row.Scan(&cat.ID, &cat.Slug, &cat.Name, &cat.Description, &cat.ParentSlug, &keywordsJSON); err != nil {
		return nil, err
	}
	cat.Keywords = unmarshalKeywords(keywordsJSON)
	return &cat, nil
}

// GetByID returns sql.ErrNoRows when no category has that id.
func (r *CategoryRepository) GetByID(id string) (*model.Category, error) {
	row := r.db.QueryRow(`
		SELECT c.id, c.slug, c.name, c.description, COALESCE(p.slug, ''), c.keywords
		FROM category c
		LEFT JOIN category p ON p.id = c.parent_id
		WHERE c.id = ?
	`, id)

	var cat model.Category
	var keywordsJSON string
	if err := row.Scan(&cat.ID, &cat.Slug, &cat.Name, &cat.Description, &cat.ParentSlug, &keywordsJSON); err != nil {
		return nil, err
	}
	cat.Keywords = unmarshalKeywords(keywordsJSON)
	return &cat, nil
}

// Count returns the total number of persisted categories, for the stats
// endpoint.
func (r *CategoryRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: failed to count categories: %w", err)
	}
	return n, nil
}

// EnsureDefaults seeds the built-in taxonomy (and its template table) if no
// category yet exists. Idempotent: a no-op when any category is present.
func (r *CategoryRepository) EnsureDefaults() error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&count); err != nil {
		return fmt.Errorf("store: failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	defs, err := classify.BuiltinTaxonomy()
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("store: failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, def := range defs {
		kwJSON, _ := json.Marshal(def.Keywords)
		if _, err := tx.Exec(`
			INSERT INTO category_template (slug, name, parent_slug, keywords) VALUES (?, ?, ?, ?)
			ON CONFLICT (slug) DO NOTHING
		`, def.Slug, def.Name, def.ParentSlug, string(kwJSON)); err != nil {
			return fmt.Errorf("store: failed to seed category template %q: %w", def.Slug, err)
		}
	}

	// Parent-first: roots (no ParentSlug) before children.
	ordered := make([]classify.CategoryDef, 0, len(defs))
	for _, d := range defs {
		if d.ParentSlug == "" {
			ordered = append(ordered, d)
		}
	}
	for _, d := range defs {
		if d.ParentSlug != "" {
			ordered = append(ordered, d)
		}
	}

	idBySlug := map[string]string{}
	for _, def := range ordered {
		var parentID string
		if def.ParentSlug != "" {
			parentID = idBySlug[def.ParentSlug]
		}
		id := uuid.New().String()
		kwJSON, _ := json.Marshal(def.Keywords)
		if _, err := tx.Exec(`
			INSERT INTO category (id, slug, name, description, parent_id, keywords)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, def.Slug, def.Name, "", nullableID(parentID), string(kwJSON)); err != nil {
			return fmt.Errorf("store: failed to seed category %q: %w", def.Slug, err)
		}
		idBySlug[def.Slug] = id
	}

	return tx.Commit()
}

// CreateCategoriesBulk persists a DiscoveredCategory forest parent-first,
// mapping temp ids to real slugs. If replaceExisting is set, every
// bookmark's category is nulled and all existing categories are deleted
// first, inside the same transaction.
func (r *CategoryRepository) CreateCategoriesBulk(roots []*model.DiscoveredCategory, replaceExisting bool) (map[string]string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if replaceExisting {
		if _, err := tx.Exec(`UPDATE bookmark SET category_id = NULL`); err != nil {
			return nil, fmt.Errorf("store: failed to clear bookmark categories: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM category`); err != nil {
			return nil, fmt.Errorf("store: failed to clear categories: %w", err)
		}
	}

	tempToSlug := map[string]string{}
	if err := insertForestTx(tx, roots, tempToSlug); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: failed to commit bulk category create: %w", err)
	}

	return tempToSlug, nil
}

func insertForestTx(tx *sql.Tx, nodes []*model.DiscoveredCategory, tempToSlug map[string]string) error {
	for _, n := range nodes {
		var parentID string
		if n.ParentTempID != "" {
			parentSlug := tempToSlug[n.ParentTempID]
			row := tx.QueryRow(`SELECT id FROM category WHERE slug = ?`, parentSlug)
			if err := row.Scan(&parentID); err != nil {
				return fmt.Errorf("store: parent category %q not found during bulk create: %w", parentSlug, err)
			}
		}

		id := uuid.New().String()
		kwJSON, _ := json.Marshal(n.Keywords)
		_, err := tx.Exec(`
			INSERT INTO category (id, slug, name, description, parent_id, keywords)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (slug) DO UPDATE SET name = excluded.name, description = excluded.description, keywords = excluded.keywords
		`, id, n.Slug, n.Name, n.Description, nullableID(parentID), string(kwJSON))
		if err != nil {
			return fmt.Errorf("store: failed to insert category %q: %w", n.Slug, err)
		}
		tempToSlug[n.TempID] = n.Slug

		if err := insertForestTx(tx, n.Children, tempToSlug); err != nil {
			return err
		}
	}
	return nil
}

// Merge unions sourceSlug's keywords into targetSlug, reparents source's
// children and bookmarks to target, and deletes source. Both categories
// must exist and differ.
func (r *CategoryRepository) Merge(sourceSlug, targetSlug string) (*model.Category, int, error) {
	if sourceSlug == targetSlug {
		return nil, 0, fmt.Errorf("store: cannot merge a category into itself")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("store: failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var sourceID, sourceKeywordsJSON string
	if err := tx.QueryRow(`SELECT id, keywords FROM category WHERE slug = ?`, sourceSlug).Scan(&sourceID, &sourceKeywordsJSON); err != nil {
		return nil, 0, fmt.Errorf("store: source category %q not found: %w", sourceSlug, err)
	}

	var targetID, targetKeywordsJSON, targetName, targetDescription string
	var targetParentID sql.NullString
	if err := tx.QueryRow(`SELECT id, keywords, name, description, parent_id FROM category WHERE slug = ?`, targetSlug).
		Scan(&targetID, &targetKeywordsJSON, &targetName, &targetDescription, &targetParentID); err != nil {
		return nil, 0, fmt.Errorf("store: target category %q not found: %w", targetSlug, err)
	}

	merged := mergeKeywordSets(unmarshalKeywords(sourceKeywordsJSON), unmarshalKeywords(targetKeywordsJSON))
	mergedJSON, _ := json.Marshal(merged)

	if _, err := tx.Exec(`UPDATE category SET keywords = ? WHERE id = ?`, string(mergedJSON), targetID); err != nil {
		return nil, 0, fmt.Errorf("store: failed to update merged keywords: %w", err)
	}

	if _, err := tx.Exec(`UPDATE category SET parent_id = ? WHERE parent_id = ?`, targetID, sourceID); err != nil {
		return nil, 0, fmt.Errorf("store: failed to reparent children: %w", err)
	}

	res, err := tx.Exec(`UPDATE bookmark SET category_id = ? WHERE category_id = ?`, targetID, sourceID)
	if err != nil {
		return nil, 0, fmt.Errorf("store: failed to reassign bookmarks: %w", err)
	}
	movedRows, _ := res.RowsAffected()

	if _, err := tx.Exec(`DELETE FROM category WHERE id = ?`, sourceID); err != nil {
		return nil, 0, fmt.Errorf("store: failed to delete source category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("store: failed to commit merge: %w", err)
	}

	return &model.Category{ID: targetID, Slug: targetSlug, Name: targetName, Description: targetDescription, Keywords: merged}, int(movedRows), nil
}

func mergeKeywordSets(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range [][]string{a, b} {
		for _, kw := range list {
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}

func unmarshalKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var kws []string
	_ = json.Unmarshal([]byte(raw), &kws)
	return kws
}

func nullableID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}

// Slugify lowercases and replaces non-alphanumeric runs with single
// hyphens, matching the taxonomy discoverer's own slug function.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
