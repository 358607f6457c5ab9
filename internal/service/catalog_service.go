package service

import (
	"context"
	"sort"

	"flowershop/internal/model"

	"github.com/rs/zerolog"
)

// CatalogReader is the read-through source of catalog snapshots.
type CatalogReader interface {
	Catalog(ctx context.Context) (*model.Catalog, error)
	Invalidate()
}

// Storefront is the catalog arranged for one page render.
type Storefront struct {
	Categories []model.Category
	Selected   string
	Products   []model.Product
	All        []model.Product
	Detail     *model.Product
}

// catalogService implements CatalogService.
type catalogService struct {
	reader CatalogReader
	logger zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(reader CatalogReader, logger zerolog.Logger) CatalogService {
	return &catalogService{
		reader: reader,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) Catalog(ctx context.Context) (*model.Catalog, error) {
	return s.reader.Catalog(ctx)
}

func (s *catalogService) Storefront(ctx context.Context, categoryID, productID string) (*Storefront, error) {
	snap, err := s.reader.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	all := SortByRank(snap.Products)
	categories := SortCategories(snap.Categories)

	selected := ""
	for _, c := range categories {
		if c.ID == categoryID {
			selected = categoryID
			break
		}
	}
	if categoryID != "" && selected == "" {
		s.logger.Debug().Str("category_id", categoryID).Msg("unknown category, showing all")
	}

	view := &Storefront{
		Categories: categories,
		Selected:   selected,
		Products:   FilterByCategory(all, selected),
		All:        all,
	}

	if productID != "" {
		for i := range all {
			if all[i].ID == productID {
				view.Detail = &all[i]
				break
			}
		}
	}

	return view, nil
}

func (s *catalogService) Revalidate() {
	s.reader.Invalidate()
}

// FilterByCategory returns the products in categoryID, or all products
// when categoryID is empty.
func FilterByCategory(products []model.Product, categoryID string) []model.Product {
	if categoryID == "" {
		return products
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.InCategory(categoryID) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortByRank returns a copy with ranked products first by ascending rank;
// unranked products keep their CMS order after them.
func SortByRank(products []model.Product) []model.Product {
	sorted := append([]model.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Rank, sorted[j].Rank
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri < *rj
		}
	})
	return sorted
}

// SortCategories returns a copy ordered by the CMS sort order; categories
// without one go last.
func SortCategories(categories []model.Category) []model.Category {
	sorted := append([]model.Category(nil), categories...)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := sorted[i].Order, sorted[j].Order
		switch {
		case oi == nil:
			return false
		case oj == nil:
			return true
		default:
			return *oi < *oj
		}
	})
	return sorted
}
