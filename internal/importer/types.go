package importer

import "github.com/lysyi3m/bookmark-comb/internal/model"

// Event is a single progress notification emitted to the caller's sink.
// Name identifies the shape of Data, framed as an SSE "event: <Name>" by
// the HTTP layer.
type Event struct {
	Name string
	Data interface{}
}

const (
	EventStatus   = "status"
	EventInit     = "init"
	EventProgress = "progress"
	EventSkipped  = "skipped"
	EventComplete = "complete"
	EventError    = "error"
)

type StatusData struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
}

type InitData struct {
	TotalInFile      int `json:"totalInFile"`
	UniqueBookmarks  int `json:"uniqueBookmarks"`
	DuplicatesInFile int `json:"duplicatesInFile"`
}

type ProgressData struct {
	Processed        int    `json:"processed"`
	Total            int    `json:"total"`
	Percent          int    `json:"percent"`
	CurrentBookmark  string `json:"currentBookmark"`
	NewBookmarks     int    `json:"newBookmarks"`
	UpdatedBookmarks int    `json:"updatedBookmarks"`
	Skipped          int    `json:"skipped"`
	Failed           int    `json:"failed"`
	Phase            string `json:"phase,omitempty"`
}

type SkippedData struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

type CompleteData struct {
	ImportSessionID         string `json:"importSessionId"`
	TotalInFile             int    `json:"totalInFile"`
	UniqueBookmarks         int    `json:"uniqueBookmarks"`
	DuplicatesInFile        int    `json:"duplicatesInFile"`
	NewBookmarks            int    `json:"newBookmarks"`
	UpdatedBookmarks        int    `json:"updatedBookmarks"`
	SuccessfulBookmarks     int    `json:"successfulBookmarks"`
	FailedBookmarks         int    `json:"failedBookmarks"`
	SkippedBookmarks        int    `json:"skippedBookmarks"`
	CustomCategoriesCreated int    `json:"customCategoriesCreated"`
	AIAssignments           int    `json:"aiAssignments"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// Request describes one import run. CustomCategories, when non-empty,
// selects the bulk-assign fast path (path B); otherwise the run follows
// the default-taxonomy fetch-and-classify path (path A).
type Request struct {
	FileName         string
	HTML             string
	CustomCategories []*model.DiscoveredCategory
	FallbackSlug     string
}

type item struct {
	raw         parsedBookmark
	normalized  string
	isDuplicate bool
}

type parsedBookmark struct {
	URL          string
	Title        string
	Description  string
	SourceFolder string
}
