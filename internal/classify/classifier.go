package classify

import (
	"regexp"
	"strings"
)

// Classifier scores bookmarks against a fixed, ordered taxonomy. Taxonomy
// order is the tie-break order, matching app/feed/filterer.go's
// first-match-wins semantics generalized to per-category scoring.
type Classifier struct {
	taxonomy  []CategoryDef
	threshold int
}

// New builds a Classifier over taxonomy, preserving its declaration order
// for tie-breaking. threshold <= 0 uses DefaultThreshold.
func New(taxonomy []CategoryDef, threshold int) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Classifier{taxonomy: taxonomy, threshold: threshold}
}

// Classify scores in against every taxonomy entry and returns the
// highest-scoring category name, or OtherLabel if no score clears the
// threshold.
func (c *Classifier) Classify(in Input) Result {
	combined := strings.ToLower(strings.Join([]string{in.URL, in.Title, in.Description}, " "))
	host := strings.ToLower(in.Host)

	best := Result{CategoryName: OtherLabel, Score: 0}
	bestScore := 0
	any := false

	for _, def := range c.taxonomy {
		score := c.score(def, combined, host, in.Keywords)
		if !any || score > bestScore {
			bestScore = score
			best = Result{CategoryName: def.Name, Score: score}
			any = true
		}
	}

	if bestScore < c.threshold {
		return Result{CategoryName: OtherLabel, Score: bestScore}
	}
	return best
}

func (c *Classifier) score(def CategoryDef, combined, host string, semanticKeywords []string) int {
	for _, ex := range def.Exclusions {
		if strings.Contains(combined, strings.ToLower(ex)) {
			return 0
		}
	}

	score := 0

	for _, re := range def.URLPatterns {
		if re.MatchString(combined) {
			score += urlRegexPoints * def.Weight
		}
	}

	slug, ok := def.Domains[host]
	if !ok {
		slug, ok = def.Domains[strings.TrimPrefix(host, "www.")]
	}
	if ok && slug == def.Slug {
		score += domainHitPoints
	}

	for _, kw := range def.Keywords {
		if matchKeyword(combined, kw, def.RequireWordBoundary) {
			score += def.Weight
		}
	}

	for _, ind := range def.ContentIndicators {
		if strings.Contains(combined, strings.ToLower(ind)) {
			score += contentIndicatorMul * def.Weight
		}
	}

	for _, kw := range semanticKeywords {
		kw = strings.ToLower(kw)
		if containsAny(def.Keywords, kw) {
			score += semanticOverlapMul * def.Weight
		}
		if containsAny(def.ContentIndicators, kw) {
			score += semanticIndicatorMul * def.Weight
		}
	}

	return score
}

func matchKeyword(combined, keyword string, requireWordBoundary bool) bool {
	keyword = strings.ToLower(keyword)
	if !requireWordBoundary {
		return strings.Contains(combined, keyword)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	return re.MatchString(combined)
}

func containsAny(list []string, term string) bool {
	for _, item := range list {
		if strings.Contains(strings.ToLower(item), term) || strings.Contains(term, strings.ToLower(item)) {
			return true
		}
	}
	return false
}
