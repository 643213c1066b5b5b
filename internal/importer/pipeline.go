// Package importer drives the end-to-end import pipeline: parse, dedupe,
// classify (default or custom taxonomy), persist, and stream progress
// events back to the caller. It is the orchestrator component (C9) the
// rest of the core feeds into.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/lysyi3m/bookmark-comb/internal/bookmarkhtml"
	"github.com/lysyi3m/bookmark-comb/internal/classify"
	"github.com/lysyi3m/bookmark-comb/internal/corerrors"
	"github.com/lysyi3m/bookmark-comb/internal/enrich"
	"github.com/lysyi3m/bookmark-comb/internal/llmclient"
	"github.com/lysyi3m/bookmark-comb/internal/model"
	"github.com/lysyi3m/bookmark-comb/internal/store"
	"github.com/lysyi3m/bookmark-comb/internal/urlnorm"
)

const (
	// batchSize is both the default-taxonomy path's worker count and the
	// dispatch batch width the inter-batch sleep paces.
	batchSize = 5

	batchSleepMin = 500 * time.Millisecond
	batchSleepJit = 500 * time.Millisecond

	fastPathProgressEvery = 10
)

// BookmarkRepository is the subset of store.BookmarkRepository the
// pipeline needs, narrowed for testability.
type BookmarkRepository interface {
	Upsert(b *model.Bookmark) (store.UpsertResult, error)
}

// CategoryRepository is the subset of store.CategoryRepository the
// pipeline needs.
type CategoryRepository interface {
	EnsureCategory(name string) (*model.Category, error)
	GetBySlug(slug string) (*model.Category, error)
	CreateCategoriesBulk(roots []*model.DiscoveredCategory, replaceExisting bool) (map[string]string, error)
	ListCategories() ([]*store.CategoryNode, error)
}

// SessionRepository persists the terminal ImportSession record.
type SessionRepository interface {
	Create(s *model.ImportSession) error
}

// Fetcher validates reachability and fetches enrichment metadata.
type Fetcher interface {
	Validate(ctx context.Context, rawURL string) bool
	Fetch(ctx context.Context, rawURL string) *enrich.Metadata
}

// Pipeline wires every component the orchestrator drives: parsing is a
// free function (bookmarkhtml.Parse) so it isn't listed here.
type Pipeline struct {
	Bookmarks  BookmarkRepository
	Categories CategoryRepository
	Sessions   SessionRepository
	Fetcher    Fetcher
	Classifier *classify.Classifier
	LLM        *llmclient.Client

	WorkerCount int
}

// NewPipeline builds a Pipeline, defaulting WorkerCount to batchSize when
// unset.
func NewPipeline(bookmarks BookmarkRepository, categories CategoryRepository, sessions SessionRepository, fetcher Fetcher, classifier *classify.Classifier, llm *llmclient.Client, workerCount int) *Pipeline {
	if workerCount <= 0 {
		workerCount = batchSize
	}
	return &Pipeline{
		Bookmarks:   bookmarks,
		Categories:  categories,
		Sessions:    sessions,
		Fetcher:     fetcher,
		Classifier:  classifier,
		LLM:         llm,
		WorkerCount: workerCount,
	}
}

// counters tallies the run's outcome under a single mutex, shared across
// the worker pool per spec.md §9.
type counters struct {
	mu               sync.Mutex
	newBookmarks     int
	updatedBookmarks int
	skipped          int
	failed           int
}

func (c *counters) addNew()     { c.mu.Lock(); c.newBookmarks++; c.mu.Unlock() }
func (c *counters) addUpdated() { c.mu.Lock(); c.updatedBookmarks++; c.mu.Unlock() }
func (c *counters) addSkipped() { c.mu.Lock(); c.skipped++; c.mu.Unlock() }
func (c *counters) addFailed()  { c.mu.Lock(); c.failed++; c.mu.Unlock() }

func (c *counters) snapshot() (newB, updated, skipped, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.newBookmarks, c.updatedBookmarks, c.skipped, c.failed
}

// run carries per-invocation state: the caller's event sink and
// cancellation context.
type run struct {
	ctx          context.Context
	sink         chan<- Event
	fallbackSlug string
}

func (r *run) emit(name string, data interface{}) {
	select {
	case r.sink <- Event{Name: name, Data: data}:
	case <-r.ctx.Done():
	}
}

// Run drives one import end to end. It returns the channel the caller
// reads events from; the channel is closed after the terminal event
// (complete or error) is sent.
func (p *Pipeline) Run(ctx context.Context, req Request) <-chan Event {
	out := make(chan Event, 16)
	go p.run(ctx, req, out)
	return out
}

func (p *Pipeline) run(ctx context.Context, req Request, sink chan Event) {
	defer close(sink)
	r := &run{ctx: ctx, sink: sink, fallbackSlug: req.FallbackSlug}

	r.emit(EventStatus, StatusData{Phase: "parsing", Message: "parsing bookmark archive"})

	parsed, err := bookmarkhtml.Parse(req.HTML)
	if err != nil {
		slog.Error("importer: parse failed", "file", req.FileName, "error", err)
		r.emit(EventError, ErrorData{Message: err.Error()})
		return
	}

	items, duplicates := dedupe(parsed)
	r.emit(EventInit, InitData{
		TotalInFile:      len(parsed),
		UniqueBookmarks:  len(items),
		DuplicatesInFile: duplicates,
	})

	session := &model.ImportSession{
		FileName:         req.FileName,
		TotalParsed:      len(parsed),
		DuplicatesInFile: duplicates,
	}

	var cnt *counters
	var aiAssignments, customCategoriesCreated int

	if len(req.CustomCategories) > 0 {
		r.emit(EventStatus, StatusData{Phase: "categorizing", Message: "creating custom taxonomy"})
		tempToSlug, err := p.Categories.CreateCategoriesBulk(req.CustomCategories, false)
		if err != nil {
			slog.Error("importer: bulk category create failed", "error", err)
			r.emit(EventError, ErrorData{Message: err.Error()})
			p.writeSession(session, 0, 0, len(items), duplicates)
			return
		}
		customCategoriesCreated = len(tempToSlug)
		cnt, aiAssignments = p.runPathB(r, items)
	} else {
		cnt = p.runPathA(r, items)
	}

	newB, updated, skipped, failed := cnt.snapshot()
	successful := len(items) - failed - skipped
	// Fold in-file duplicates into the session's skipped count so
	// successful + failed + skipped == uniqueBookmarks + duplicatesInFile.
	skipped += duplicates

	if ctx.Err() != nil {
		session.Successful = successful
		session.Failed = failed
		session.Skipped = skipped
		session.NewBookmarks = newB
		session.UpdatedBookmarks = updated
		session.CustomCategoriesCreated = customCategoriesCreated
		session.AIAssignments = aiAssignments
		p.writeSessionRecord(session)
		r.emit(EventError, ErrorData{Message: corerrors.ErrCancelled.Error()})
		return
	}

	session.Successful = successful
	session.Failed = failed
	session.Skipped = skipped
	session.NewBookmarks = newB
	session.UpdatedBookmarks = updated
	session.CustomCategoriesCreated = customCategoriesCreated
	session.AIAssignments = aiAssignments

	if err := p.writeSessionRecord(session); err != nil {
		r.emit(EventError, ErrorData{Message: err.Error()})
		return
	}

	r.emit(EventComplete, CompleteData{
		ImportSessionID:         session.ID,
		TotalInFile:             session.TotalParsed,
		UniqueBookmarks:         len(items),
		DuplicatesInFile:        session.DuplicatesInFile,
		NewBookmarks:            session.NewBookmarks,
		UpdatedBookmarks:        session.UpdatedBookmarks,
		SuccessfulBookmarks:     session.Successful,
		FailedBookmarks:         session.Failed,
		SkippedBookmarks:        session.Skipped,
		CustomCategoriesCreated: session.CustomCategoriesCreated,
		AIAssignments:           session.AIAssignments,
	})
}

// writeSession is used on the terminal-error-before-classification path,
// where every unique bookmark is counted as failed and in-file duplicates
// as skipped.
func (p *Pipeline) writeSession(session *model.ImportSession, newB, updated, failed, skipped int) {
	session.NewBookmarks = newB
	session.UpdatedBookmarks = updated
	session.Failed = failed
	session.Skipped = skipped
	_ = p.writeSessionRecord(session)
}

func (p *Pipeline) writeSessionRecord(session *model.ImportSession) error {
	if err := p.Sessions.Create(session); err != nil {
		slog.Error("importer: failed to write import session", "error", err)
		return fmt.Errorf("%w: %v", corerrors.ErrStorageUnavailable, err)
	}
	return nil
}

// dedupe normalizes every parsed bookmark's URL and keeps the first
// occurrence of each normalized form, dropping entries with an empty URL.
func dedupe(parsed []bookmarkhtml.Bookmark) ([]item, int) {
	seen := map[string]bool{}
	var items []item
	duplicates := 0

	for _, b := range parsed {
		if strings.TrimSpace(b.URL) == "" {
			continue
		}
		normalized := urlnorm.Normalize(b.URL)
		if seen[normalized] {
			duplicates++
			continue
		}
		seen[normalized] = true
		items = append(items, item{
			raw: parsedBookmark{
				URL:          b.URL,
				Title:        b.Title,
				Description:  b.Description,
				SourceFolder: b.SourceFolder,
			},
			normalized: normalized,
		})
	}

	return items, duplicates
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func jitterSleep() time.Duration {
	return batchSleepMin + time.Duration(rand.Int63n(int64(batchSleepJit)))
}

// resolveFallback returns the category to use when neither the LLM nor
// the rule classifier produced a usable result: configuredSlug if set
// (caller-configured, from Request.FallbackSlug), else "uncategorized",
// else "other", created as a plain category if neither already exists.
func (p *Pipeline) resolveFallback(configuredSlug string) (*model.Category, error) {
	for _, slug := range []string{configuredSlug, "uncategorized", "other"} {
		if slug == "" {
			continue
		}
		if cat, err := p.Categories.GetBySlug(slug); err == nil {
			return cat, nil
		}
	}
	return p.Categories.EnsureCategory("Uncategorized")
}
