package store

import "github.com/lysyi3m/bookmark-comb/internal/model"

// CategoryNode is an in-memory assembly of the persisted category forest,
// reconstructed by parent-slug lookup per spec.md §9's flat-list-plus-
// reconstruction approach.
type CategoryNode struct {
	Category *model.Category
	Children []*CategoryNode
}

// ListCategories returns every category row, assembled into a forest by
// ParentSlug.
func (r *CategoryRepository) ListCategories() ([]*CategoryNode, error) {
	rows, err := r.db.Query(`
		SELECT c.id, c.slug, c.name, c.description, COALESCE(p.slug, ''), c.keywords
		FROM category c
		LEFT JOIN category p ON p.id = c.parent_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nodes := map[string]*CategoryNode{}
	var order []*model.Category

	for rows.Next() {
		var cat model.Category
		var keywordsJSON string
		if err := rows.Scan(&cat.ID, &cat.Slug, &cat.Name, &cat.Description, &cat.ParentSlug, &keywordsJSON); err != nil {
			return nil, err
		}
		cat.Keywords = unmarshalKeywords(keywordsJSON)
		c := cat
		order = append(order, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range order {
		nodes[c.Slug] = &CategoryNode{Category: c}
	}

	var roots []*CategoryNode
	for _, c := range order {
		node := nodes[c.Slug]
		if c.ParentSlug == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[c.ParentSlug]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}
