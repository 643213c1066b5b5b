package importer

import (
	"log/slog"

	"github.com/lysyi3m/bookmark-comb/internal/assign"
	"github.com/lysyi3m/bookmark-comb/internal/classify"
	"github.com/lysyi3m/bookmark-comb/internal/model"
	"github.com/lysyi3m/bookmark-comb/internal/store"
	"github.com/lysyi3m/bookmark-comb/internal/textproc"
)

// runPathB drives the custom-taxonomy fast path: no metadata fetch. Every
// bookmark gets the LLM's batch-assigned category if present, else the
// rule classifier's keyword fallback, else the configured fallback slug.
func (p *Pipeline) runPathB(r *run, items []item) (*counters, int) {
	cnt := &counters{}
	total := len(items)

	indexed := make([]assign.IndexedBookmark, len(items))
	for i, it := range items {
		indexed[i] = assign.IndexedBookmark{Index: i, Title: it.raw.Title, Host: hostOf(it.raw.URL)}
	}

	categories, err := p.flattenedCategories()
	if err != nil {
		slog.Error("importer: failed to load taxonomy for assignment", "error", err)
	}

	r.emit(EventStatus, StatusData{Phase: "assigning", Message: "assigning bookmarks via AI batch classification"})

	result := assign.Assign(r.ctx, p.LLM, categories, indexed, func(done, total int) {
		r.emit(EventProgress, ProgressData{Processed: done, Total: total, Percent: pct(done, total), Phase: "assigning"})
	})

	processed := 0
	for i, it := range items {
		if r.ctx.Err() != nil {
			return cnt, len(result.Assignments)
		}

		categoryName, assignedByAI := result.Assignments[i]
		var category *model.Category
		var err error

		switch {
		case assignedByAI:
			category, err = p.Categories.EnsureCategory(categoryName)
		default:
			fallbackResult := p.classifyFast(it)
			if fallbackResult.CategoryName == classify.OtherLabel {
				category, err = p.resolveFallback(r.fallbackSlug)
			} else {
				category, err = p.Categories.EnsureCategory(fallbackResult.CategoryName)
				categoryName = fallbackResult.CategoryName
			}
		}

		if err != nil {
			slog.Error("importer: ensure_category failed in fast path", "url", it.raw.URL, "error", err)
			cnt.addFailed()
			processed++
			continue
		}

		bm := &model.Bookmark{
			URL:            it.normalized,
			Title:          it.raw.Title,
			Description:    it.raw.Description,
			SourceFolder:   it.raw.SourceFolder,
			CategoryID:     category.ID,
			SuggestedLabel: categoryName,
		}

		upserted, err := p.Bookmarks.Upsert(bm)
		if err != nil {
			slog.Error("importer: upsert failed in fast path", "url", it.raw.URL, "error", err)
			cnt.addFailed()
			processed++
			continue
		}
		if upserted.Created {
			cnt.addNew()
		} else {
			cnt.addUpdated()
		}

		processed++
		if processed%fastPathProgressEvery == 0 || processed == total {
			newB, updated, skipped, failed := cnt.snapshot()
			r.emit(EventProgress, ProgressData{
				Processed:        processed,
				Total:            total,
				Percent:          pct(processed, total),
				NewBookmarks:     newB,
				UpdatedBookmarks: updated,
				Skipped:          skipped,
				Failed:           failed,
				Phase:            "importing",
			})
		}
	}

	return cnt, len(result.Assignments)
}

// classifyFast runs the rule classifier against title/description/URL
// only, without any fetched metadata, matching path B's no-fetch
// contract.
func (p *Pipeline) classifyFast(it item) classify.Result {
	text := it.raw.Title + " " + it.raw.Description
	keywords := textproc.ExtractSemanticKeywords(text, textproc.DefaultConfig())
	keywords = append(keywords, textproc.DomainHints(it.raw.URL)...)

	return p.Classifier.Classify(classify.Input{
		URL:         it.raw.URL,
		Host:        hostOf(it.raw.URL),
		Title:       it.raw.Title,
		Description: it.raw.Description,
		Keywords:    keywords,
	})
}

// flattenedCategories loads the persisted taxonomy (just created by
// CreateCategoriesBulk) as an indexed list for assign.Assign.
func (p *Pipeline) flattenedCategories() ([]assign.IndexedCategory, error) {
	roots, err := p.Categories.ListCategories()
	if err != nil {
		return nil, err
	}

	var out []assign.IndexedCategory
	idx := 0
	var walk func([]*store.CategoryNode)
	walk = func(nodes []*store.CategoryNode) {
		for _, n := range nodes {
			out = append(out, assign.IndexedCategory{Index: idx, Name: n.Category.Name})
			idx++
			walk(n.Children)
		}
	}
	walk(roots)
	return out, nil
}

func pct(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}
