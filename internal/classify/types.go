// Package classify scores a bookmark against a weighted taxonomy and
// picks the highest-scoring category above a minimum threshold.
package classify

import "regexp"

const (
	// DefaultThreshold is the minimum winning score below which a
	// bookmark falls back to the sentinel "Other" label.
	DefaultThreshold = 4

	urlRegexPoints       = 10
	domainHitPoints      = 15
	contentIndicatorMul  = 2
	semanticOverlapMul   = 3
	semanticIndicatorMul = 2

	// OtherLabel is the sentinel returned when no category clears the
	// threshold. Callers map it to a real "other"/"uncategorized" slug.
	OtherLabel = "Other"
)

// CategoryDef is one taxonomy entry: a canonical name plus the signals the
// scorer checks for it.
type CategoryDef struct {
	Name                string
	Slug                string
	ParentSlug          string
	Weight              int
	Keywords            []string
	RequireWordBoundary bool
	URLPatterns         []*regexp.Regexp
	ContentIndicators   []string
	Exclusions          []string
	Domains             map[string]string // host -> category slug; a leading "www." on the bookmark host is ignored when the exact host is absent
}

// Input is what the scorer needs about one bookmark. Text fields are
// combined for substring/regex matching; Keywords are C3's pre-extracted
// semantic keywords.
type Input struct {
	URL         string
	Host        string
	Title       string
	Description string
	Keywords    []string
}

// Result is the winning category, or the OtherLabel sentinel.
type Result struct {
	CategoryName string
	Score        int
}
