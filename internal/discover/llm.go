package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lysyi3m/bookmark-comb/internal/llmclient"
	"github.com/lysyi3m/bookmark-comb/internal/model"
)

const discoverySystemPrompt = "You are a librarian organizing a bookmark collection into a small topical taxonomy. Respond with strict JSON only, no markdown fences, no commentary."

type llmResponse struct {
	Categories []llmCategory `json:"categories"`
	Reasoning  string        `json:"reasoning"`
}

type llmCategory struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Keywords       []string `json:"keywords"`
	ParentName     *string  `json:"parentName"`
	EstimatedCount int      `json:"estimatedCount"`
}

// discoverViaLLM builds a prompt from the sample and stats, sends it, and
// parses the strict-JSON response into a forest. It returns an error for
// any LLM or parse failure; the caller falls back to clustering.
func discoverViaLLM(ctx context.Context, client *llmclient.Client, sample []BookmarkSample, stats Stats) ([]*model.DiscoveredCategory, error) {
	prompt := buildDiscoveryPrompt(sample, stats)

	raw, err := client.CompleteForDiscovery(ctx, discoverySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed llmResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("discover: failed to parse LLM response: %w", err)
	}
	if len(parsed.Categories) == 0 {
		return nil, fmt.Errorf("discover: LLM response had no categories")
	}

	return buildForest(parsed.Categories), nil
}

func buildDiscoveryPrompt(sample []BookmarkSample, stats Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Here is a sample of %d bookmarks from a user's archive:\n\n", len(sample))
	for i, bm := range sample {
		folder := bm.SourceFolder
		if folder == "" {
			folder = "(none)"
		}
		fmt.Fprintf(&b, "%d. title=%q host=%q folder=%q\n", i, bm.Title, bm.Host, folder)
	}

	b.WriteString("\nTop hosts by frequency:\n")
	for _, h := range stats.TopHosts {
		fmt.Fprintf(&b, "- %s (%d)\n", h.Host, h.Count)
	}

	b.WriteString("\nFolder histogram:\n")
	for _, f := range stats.FolderCounts {
		fmt.Fprintf(&b, "- %s (%d)\n", f.Folder, f.Count)
	}

	b.WriteString("\nPropose a taxonomy with between 6 and 10 root categories and a maximum depth of 4 levels. ")
	b.WriteString("Respond with a strict JSON object of the shape:\n")
	b.WriteString(`{"categories":[{"name":"...","description":"...","keywords":["...","...","..."],"parentName":null,"estimatedCount":0}],"reasoning":"..."}`)
	b.WriteString("\nEach category needs 3 to 5 keywords. parentName is null for a root category, or the exact name of its parent otherwise.")

	return b.String()
}

// buildForest assigns each LLM category a temp id and links parents by
// exact name match, generalized from xtruder's markdown-fence stripping
// response cleanup to strict structural parsing.
func buildForest(cats []llmCategory) []*model.DiscoveredCategory {
	byName := make(map[string]*model.DiscoveredCategory, len(cats))
	order := make([]*model.DiscoveredCategory, 0, len(cats))

	for _, c := range cats {
		node := &model.DiscoveredCategory{
			TempID:         uuid.New().String(),
			Name:           c.Name,
			Slug:           slugify(c.Name),
			Description:    c.Description,
			Keywords:       c.Keywords,
			EstimatedCount: c.EstimatedCount,
		}
		byName[c.Name] = node
		order = append(order, node)
	}

	var roots []*model.DiscoveredCategory
	for i, c := range cats {
		node := order[i]
		if c.ParentName == nil || *c.ParentName == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := byName[*c.ParentName]
		if !ok {
			roots = append(roots, node)
			continue
		}
		node.ParentTempID = parent.TempID
		parent.Children = append(parent.Children, node)
	}

	assignLevels(roots, 0)
	return roots
}

func assignLevels(nodes []*model.DiscoveredCategory, level int) {
	for _, n := range nodes {
		n.Level = level
		assignLevels(n.Children, level+1)
	}
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "category-" + strconv.FormatInt(int64(len(name)), 10)
	}
	return out
}
