// Package assign maps bookmarks to an existing taxonomy via LLM batch
// calls, chunked to respect prompt size limits, with tolerant parsing of
// truncated responses.
package assign

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lysyi3m/bookmark-comb/internal/llmclient"
)

const batchSize = 50

const assignSystemPrompt = "You map bookmarks to the closest category index. Respond with strict JSON only: a compact array of [bookmarkIndex, categoryIndex] pairs, no markdown fences, no commentary."

// IndexedCategory is (i, name) from the flattened persisted taxonomy.
type IndexedCategory struct {
	Index int
	Name  string
}

// IndexedBookmark is (j, title, host) from the bookmark list being
// assigned.
type IndexedBookmark struct {
	Index int
	Title string
	Host  string
}

// ProgressFunc is invoked after each batch with the running assigned count
// and the total bookmark count.
type ProgressFunc func(assigned, total int)

// Result maps a bookmark index to a category name. Indices absent from
// the map are unassigned and the caller should run them through the rule
// classifier's keyword fallback.
type Result struct {
	Assignments map[int]string
	Unassigned  []int
}

// Assign batches bookmarks through client in groups of 50, asking it to
// map each to a category index. A nil client (no LLM configured) yields
// every bookmark unassigned without dialing out; progress is still
// reported once per batch.
func Assign(ctx context.Context, client *llmclient.Client, categories []IndexedCategory, bookmarks []IndexedBookmark, onProgress ProgressFunc) Result {
	result := Result{Assignments: map[int]string{}}

	assigned := 0
	total := len(bookmarks)

	for start := 0; start < len(bookmarks); start += batchSize {
		end := start + batchSize
		if end > len(bookmarks) {
			end = len(bookmarks)
		}
		batch := bookmarks[start:end]

		var pairs map[int]int
		if client != nil {
			pairs = assignBatch(ctx, client, categories, batch)
		}
		for j, i := range pairs {
			if name, ok := categoryName(categories, i); ok {
				result.Assignments[j] = name
			}
		}

		for _, b := range batch {
			if _, ok := result.Assignments[b.Index]; !ok {
				result.Unassigned = append(result.Unassigned, b.Index)
			}
		}

		assigned += len(batch)
		if onProgress != nil {
			onProgress(assigned, total)
		}
	}

	return result
}

func categoryName(categories []IndexedCategory, i int) (string, bool) {
	for _, c := range categories {
		if c.Index == i {
			return c.Name, true
		}
	}
	return "", false
}

// assignBatch sends one batch and returns bookmarkIndex -> categoryIndex.
// Any LLM failure for this batch leaves every bookmark in it unassigned
// rather than aborting the whole run.
func assignBatch(ctx context.Context, client *llmclient.Client, categories []IndexedCategory, batch []IndexedBookmark) map[int]int {
	prompt := buildAssignPrompt(categories, batch)

	raw, err := client.CompleteForAssignment(ctx, assignSystemPrompt, prompt)
	if err != nil {
		return nil
	}

	return parsePairsTolerant(raw)
}

func buildAssignPrompt(categories []IndexedCategory, batch []IndexedBookmark) string {
	var b strings.Builder

	b.WriteString("Categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "%d: %s\n", c.Index, c.Name)
	}

	b.WriteString("\nBookmarks:\n")
	for _, bm := range batch {
		fmt.Fprintf(&b, "%d: title=%q host=%q\n", bm.Index, bm.Title, bm.Host)
	}

	b.WriteString("\nRespond with a JSON array like [[0,3],[1,7]] mapping each bookmark index to its best category index. Omit a bookmark if none fit well.")
	return b.String()
}

// parsePairsTolerant parses a `[[j,i],...]` array, trimming to the last
// complete inner pair when the JSON is truncated mid-array. It never
// returns an error; a pair it cannot parse is simply dropped.
func parsePairsTolerant(raw string) map[int]int {
	pairs := map[int]int{}

	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	depth := 0
	var cur strings.Builder
	var chunks []string
	for _, r := range s {
		switch r {
		case '[':
			depth++
			cur.WriteRune(r)
		case ']':
			depth--
			cur.WriteRune(r)
			if depth == 0 {
				chunks = append(chunks, cur.String())
				cur.Reset()
			}
		default:
			if depth > 0 {
				cur.WriteRune(r)
			}
		}
	}

	for _, chunk := range chunks {
		inner := strings.TrimSuffix(strings.TrimPrefix(chunk, "["), "]")
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) != 2 {
			continue
		}
		j, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		i, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			continue
		}
		pairs[j] = i
	}

	return pairs
}
