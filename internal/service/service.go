package service

import (
	"context"

	"flowershop/internal/model"
)

// CatalogService defines read operations over the shop catalog.
type CatalogService interface {
	// Catalog returns the current catalog snapshot.
	Catalog(ctx context.Context) (*model.Catalog, error)

	// Storefront returns the catalog arranged for the storefront page,
	// filtered by categoryID ("" for all) with productID opened in the
	// detail overlay when it exists.
	Storefront(ctx context.Context, categoryID, productID string) (*Storefront, error)

	// Revalidate forces the next read to refetch from the content API.
	Revalidate()
}

// RelayService defines the submission relay.
type RelayService interface {
	// Submit validates the submission and forwards it to every applicable
	// outbound channel.
	Submit(ctx context.Context, s model.Submission) error
}
