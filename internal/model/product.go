package model

// Category represents a product category managed in the CMS.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order *int   `json:"order,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

// Product represents a flower arrangement in the catalog.
// Categories is never nil once the product has been normalized.
type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Price        int        `json:"price"`
	Image        string     `json:"image"`
	Images       []string   `json:"images,omitempty"`
	Description  string     `json:"description,omitempty"`
	Description2 string     `json:"description2,omitempty"`
	Rank         *int       `json:"rank,omitempty"`
	Categories   []Category `json:"categories"`
}

// Gallery returns the primary image followed by the additional images,
// without duplicates.
func (p Product) Gallery() []string {
	gallery := make([]string, 0, len(p.Images)+1)
	seen := make(map[string]struct{}, len(p.Images)+1)
	for _, url := range append([]string{p.Image}, p.Images...) {
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		gallery = append(gallery, url)
	}
	return gallery
}

// InCategory reports whether the product belongs to the given category.
func (p Product) InCategory(categoryID string) bool {
	for _, c := range p.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}

// Catalog is one snapshot of the products and categories.
type Catalog struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
}
