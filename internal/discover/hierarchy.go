package discover

import (
	"fmt"

	"github.com/lysyi3m/bookmark-comb/internal/model"
)

// flattenOverDepth walks the forest and, for any node whose children would
// sit past maxDepth, promotes its grandchildren to be its direct children
// and drops the intermediate level. Levels are recomputed afterward.
func flattenOverDepth(roots []*model.DiscoveredCategory) {
	for _, root := range roots {
		flattenNode(root, 0)
	}
	assignLevels(roots, 0)
}

func flattenNode(node *model.DiscoveredCategory, level int) {
	// Grandchildren of a node at this level would sit at level+2, which
	// is out of bounds once it reaches maxDepth.
	if level >= maxDepth-2 {
		var promoted []*model.DiscoveredCategory
		for _, child := range node.Children {
			promoted = append(promoted, child.Children...)
		}
		node.Children = promoted
		for _, p := range node.Children {
			p.ParentTempID = node.TempID
		}
	}

	for _, child := range node.Children {
		flattenNode(child, level+1)
	}
}

// validateSlugs walks the forest and returns an error the first time it
// finds a slug already used by an earlier node.
func validateSlugs(roots []*model.DiscoveredCategory) error {
	seen := map[string]bool{}
	var walk func([]*model.DiscoveredCategory) error
	walk = func(nodes []*model.DiscoveredCategory) error {
		for _, n := range nodes {
			if seen[n.Slug] {
				return fmt.Errorf("discover: duplicate category slug %q", n.Slug)
			}
			seen[n.Slug] = true
			if err := walk(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(roots)
}

// dedupeSlugs appends a numeric suffix to any slug collision instead of
// failing, used by the clustering fallback which has no LLM-side
// uniqueness guarantee to rely on.
func dedupeSlugs(roots []*model.DiscoveredCategory) {
	seen := map[string]int{}
	var walk func([]*model.DiscoveredCategory)
	walk = func(nodes []*model.DiscoveredCategory) {
		for _, n := range nodes {
			seen[n.Slug]++
			if seen[n.Slug] > 1 {
				n.Slug = fmt.Sprintf("%s-%d", n.Slug, seen[n.Slug])
			}
			walk(n.Children)
		}
	}
	walk(roots)
}
