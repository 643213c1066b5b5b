package store

import (
	"testing"

	"github.com/lysyi3m/bookmark-comb/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsureCategory_IdempotentAcrossCalls(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	first, err := repo.EnsureCategory("Technology")
	if err != nil {
		t.Fatalf("EnsureCategory() error = %v", err)
	}

	second, err := repo.EnsureCategory("Technology")
	if err != nil {
		t.Fatalf("EnsureCategory() second call error = %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("EnsureCategory() returned different rows across calls: %q vs %q", first.ID, second.ID)
	}
}

func TestEnsureCategory_LinksBuiltinParent(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	if err := repo.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults() error = %v", err)
	}

	child, err := repo.EnsureCategory("Web Development")
	if err != nil {
		t.Fatalf("EnsureCategory() error = %v", err)
	}
	if child.ParentSlug != "technology" {
		t.Errorf("ParentSlug = %q, want %q", child.ParentSlug, "technology")
	}
}

func TestEnsureDefaults_NoOpWhenCategoryExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	if _, err := repo.EnsureCategory("Custom"); err != nil {
		t.Fatalf("EnsureCategory() error = %v", err)
	}
	if err := repo.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults() error = %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 1 {
		t.Errorf("category count = %d, want 1 (EnsureDefaults should be a no-op)", count)
	}
}

func TestBookmarkUpsert_CreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookmarkRepository(db)

	b := &model.Bookmark{URL: "https://example.com", Title: "First"}
	res, err := repo.Upsert(b)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !res.Created {
		t.Error("expected Created = true on first upsert")
	}

	b2 := &model.Bookmark{URL: "https://example.com", Title: "Updated"}
	res2, err := repo.Upsert(b2)
	if err != nil {
		t.Fatalf("Upsert() second call error = %v", err)
	}
	if res2.Created {
		t.Error("expected Created = false on second upsert of the same URL")
	}

	stored, err := repo.GetByURL("https://example.com")
	if err != nil {
		t.Fatalf("GetByURL() error = %v", err)
	}
	if stored.Title != "Updated" {
		t.Errorf("Title = %q, want %q", stored.Title, "Updated")
	}
}

func TestCategoryMerge_UnionsKeywordsAndReassignsBookmarks(t *testing.T) {
	db := newTestDB(t)
	catRepo := NewCategoryRepository(db)
	bmRepo := NewBookmarkRepository(db)

	a, err := catRepo.EnsureCategory("Source Category")
	if err != nil {
		t.Fatalf("EnsureCategory(a) error = %v", err)
	}
	b, err := catRepo.EnsureCategory("Target Category")
	if err != nil {
		t.Fatalf("EnsureCategory(b) error = %v", err)
	}

	db.Exec(`UPDATE category SET keywords = '["x","y"]' WHERE id = ?`, a.ID)
	db.Exec(`UPDATE category SET keywords = '["y","z"]' WHERE id = ?`, b.ID)

	bm, err := bmRepo.Upsert(&model.Bookmark{URL: "https://a.example", CategoryID: a.ID})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	merged, moved, err := catRepo.Merge(a.Slug, b.Slug)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}
	if len(merged.Keywords) != 3 {
		t.Errorf("merged keywords = %v, want 3 entries (union of x,y,y,z)", merged.Keywords)
	}

	if _, err := catRepo.GetBySlug(a.Slug); err == nil {
		t.Error("expected source category to be deleted after merge")
	}

	updated, err := bmRepo.GetByURL(bm.Bookmark.URL)
	if err != nil {
		t.Fatalf("GetByURL() error = %v", err)
	}
	if updated.CategoryID != merged.ID {
		t.Errorf("CategoryID = %q, want %q (bookmark should follow its category to target)", updated.CategoryID, merged.ID)
	}
}

func TestCategoryMerge_RejectsSameSlug(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	a, _ := repo.EnsureCategory("Same")

	if _, _, err := repo.Merge(a.Slug, a.Slug); err == nil {
		t.Error("Merge() with source == target should return an error")
	}
}

func TestCreateCategoriesBulk_ParentFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	child := &model.DiscoveredCategory{TempID: "child", Name: "Child", Slug: "child"}
	root := &model.DiscoveredCategory{TempID: "root", Name: "Root", Slug: "root", Children: []*model.DiscoveredCategory{child}}
	child.ParentTempID = "root"

	tempToSlug, err := repo.CreateCategoriesBulk([]*model.DiscoveredCategory{root}, false)
	if err != nil {
		t.Fatalf("CreateCategoriesBulk() error = %v", err)
	}
	if tempToSlug["root"] != "root" || tempToSlug["child"] != "child" {
		t.Errorf("tempToSlug = %v", tempToSlug)
	}

	childRow, err := repo.GetBySlug("child")
	if err != nil {
		t.Fatalf("GetBySlug(child) error = %v", err)
	}
	if childRow.ParentSlug != "root" {
		t.Errorf("child ParentSlug = %q, want %q", childRow.ParentSlug, "root")
	}
}

func TestSessionRepository_CreateWritesOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	s := &model.ImportSession{FileName: "bookmarks.html", TotalParsed: 5, Successful: 5}
	if err := repo.Create(s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID == "" {
		t.Error("expected Create() to assign an ID")
	}
}
