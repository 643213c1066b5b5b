package importer

import (
	"log/slog"
	"time"

	"github.com/lysyi3m/bookmark-comb/internal/classify"
	"github.com/lysyi3m/bookmark-comb/internal/model"
	"github.com/lysyi3m/bookmark-comb/internal/textproc"
)

// runPathA drives the default-taxonomy path: validate -> fetch ->
// classify -> ensure_category -> upsert, dispatched in batches of
// p.WorkerCount with a polite inter-batch sleep.
func (p *Pipeline) runPathA(r *run, items []item) *counters {
	cnt := &counters{}
	total := len(items)
	processed := 0

	for start := 0; start < total; start += p.WorkerCount {
		if r.ctx.Err() != nil {
			return cnt
		}

		end := start + p.WorkerCount
		if end > total {
			end = total
		}
		batch := items[start:end]

		results := make(chan struct{}, len(batch))
		for i := range batch {
			go func(it item) {
				p.processOne(r, it, cnt)
				results <- struct{}{}
			}(batch[i])
		}
		for range batch {
			<-results
			processed++
			newB, updated, skipped, failed := cnt.snapshot()
			percent := 0
			if total > 0 {
				percent = processed * 100 / total
			}
			r.emit(EventProgress, ProgressData{
				Processed:        processed,
				Total:            total,
				Percent:          percent,
				NewBookmarks:     newB,
				UpdatedBookmarks: updated,
				Skipped:          skipped,
				Failed:           failed,
				Phase:            "importing",
			})
		}

		if end < total {
			select {
			case <-time.After(jitterSleep()):
			case <-r.ctx.Done():
				return cnt
			}
		}
	}

	return cnt
}

// processOne runs one bookmark through validate/fetch/classify/persist.
// Any failure is caught and counted; it never propagates.
func (p *Pipeline) processOne(r *run, it item, cnt *counters) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("importer: panic processing bookmark", "url", it.raw.URL, "recover", rec)
			cnt.addFailed()
		}
	}()

	host := hostOf(it.raw.URL)

	if !p.Fetcher.Validate(r.ctx, it.raw.URL) {
		cnt.addSkipped()
		r.emit(EventSkipped, SkippedData{URL: it.raw.URL, Reason: "Invalid URL"})
		return
	}

	bm := &model.Bookmark{
		URL:          it.normalized,
		Title:        it.raw.Title,
		Description:  it.raw.Description,
		SourceFolder: it.raw.SourceFolder,
	}

	meta := p.Fetcher.Fetch(r.ctx, it.raw.URL)
	if meta != nil {
		bm.MetaTitle = meta.Title
		bm.MetaDescription = meta.Description
		bm.OGTitle = meta.OGTitle
		bm.OGDescription = meta.OGDescription
		bm.OGImage = meta.OGImage
		bm.Summary = meta.BodySnippet
	}

	combinedText := combineEnrichmentText(bm)
	keywords := textproc.ExtractSemanticKeywords(combinedText, textproc.DefaultConfig())
	keywords = append(keywords, textproc.DomainHints(it.raw.URL)...)
	bm.Keywords = keywords

	result := p.Classifier.Classify(classify.Input{
		URL:         it.raw.URL,
		Host:        host,
		Title:       bm.Title,
		Description: bm.Description,
		Keywords:    keywords,
	})

	categoryName := result.CategoryName
	var category *model.Category
	var err error
	if categoryName == classify.OtherLabel {
		category, err = p.resolveFallback(r.fallbackSlug)
	} else {
		category, err = p.Categories.EnsureCategory(categoryName)
	}
	if err != nil {
		slog.Error("importer: ensure_category failed", "url", it.raw.URL, "category", categoryName, "error", err)
		cnt.addFailed()
		return
	}

	bm.CategoryID = category.ID
	bm.SuggestedLabel = categoryName
	bm.Confidence = clampConfidence(result.Score)

	upserted, err := p.Bookmarks.Upsert(bm)
	if err != nil {
		slog.Error("importer: upsert failed", "url", it.raw.URL, "error", err)
		cnt.addFailed()
		return
	}

	if upserted.Created {
		cnt.addNew()
	} else {
		cnt.addUpdated()
	}
}

func combineEnrichmentText(bm *model.Bookmark) string {
	return bm.Title + " " + bm.Description + " " + bm.MetaTitle + " " + bm.MetaDescription + " " + bm.OGTitle + " " + bm.OGDescription + " " + bm.Summary
}

func clampConfidence(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
