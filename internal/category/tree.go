package category

import "github.com/fekuna/omnipos-backoffice-service/internal/model"

// BuildTree nests a flat list under its parents. Categories whose parent is
// not in the list become roots. Sibling order follows the input order.
func BuildTree(flat []model.Category) []model.Category {
	present := make(map[string]bool, len(flat))
	for _, c := range flat {
		present[c.ID] = true
	}

	children := make(map[string][]model.Category)
	var roots []model.Category
	for _, c := range flat {
		if c.ParentID != nil && present[*c.ParentID] && *c.ParentID != c.ID {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var attach func(nodes []model.Category, depth int) []model.Category
	attach = func(nodes []model.Category, depth int) []model.Category {
		out := make([]model.Category, len(nodes))
		for i, n := range nodes {
			if depth < len(flat) {
				n.Children = attach(children[n.ID], depth+1)
			}
			out[i] = n
		}
		return out
	}
	return attach(roots, 0)
}
