package catalog

// Category is one node of the server-provided category hierarchy. The tree
// is immutable for the duration of a page view; traversals never mutate it.
type Category struct {
	ID       int64       `json:"id"`
	Label    string      `json:"name"`
	Slug     string      `json:"slug,omitempty"`
	Children []*Category `json:"children,omitempty"`
}

// FindBySlug returns the first node (depth-first) whose slug matches.
func FindBySlug(root *Category, slug string) *Category {
	if root == nil || slug == "" {
		return nil
	}
	if root.Slug == slug {
		return root
	}
	for _, child := range root.Children {
		if n := FindBySlug(child, slug); n != nil {
			return n
		}
	}
	return nil
}

// FindByLabel returns the first node (depth-first) whose display label
// matches exactly, case-sensitive.
func FindByLabel(root *Category, label string) *Category {
	if root == nil {
		return nil
	}
	if root.Label == label {
		return root
	}
	for _, child := range root.Children {
		if n := FindByLabel(child, label); n != nil {
			return n
		}
	}
	return nil
}

// PathByID returns the root-to-node chain ending at the node with the given
// id, or an empty slice when the id is absent.
func PathByID(root *Category, id int64) []*Category {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return []*Category{root}
	}
	for _, child := range root.Children {
		if path := PathByID(child, id); len(path) > 0 {
			return append([]*Category{root}, path...)
		}
	}
	return nil
}
