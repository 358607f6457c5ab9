package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flowershop/internal/metrics"
	"flowershop/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Reader serves catalog snapshots, refetching from the source when the
// last successful fetch is older than the revalidation window. A failed
// fetch is returned to the caller; no stale snapshot is served for it.
type Reader struct {
	source Source
	window time.Duration
	now    func() time.Time
	logger zerolog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	snapshot  *model.Catalog
	fetchedAt time.Time
}

// NewReader creates a revalidating reader over source. A zero window
// refetches on every call.
func NewReader(source Source, window time.Duration, logger zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		window: window,
		now:    time.Now,
		logger: logger.With().Str("component", "catalog-reader").Logger(),
	}
}

// Catalog returns the current snapshot. Callers must not modify it.
func (r *Reader) Catalog(ctx context.Context) (*model.Catalog, error) {
	if snap := r.fresh(); snap != nil {
		return snap, nil
	}

	// The fetch is shared by every waiting caller, so it must not end
	// with the first caller's request. The client timeout bounds it.
	v, err, shared := r.group.Do("catalog", func() (interface{}, error) {
		return r.fetch(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	if shared {
		r.logger.Debug().Msg("joined in-flight catalog fetch")
	}

	return v.(*model.Catalog), nil
}

// Invalidate makes the next Catalog call refetch.
func (r *Reader) Invalidate() {
	r.mu.Lock()
	r.fetchedAt = time.Time{}
	r.mu.Unlock()

	r.logger.Info().Msg("catalog invalidated")
}

func (r *Reader) fresh() *model.Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snapshot == nil || r.fetchedAt.IsZero() {
		return nil
	}
	if r.now().Sub(r.fetchedAt) >= r.window {
		return nil
	}
	return r.snapshot
}

func (r *Reader) fetch(ctx context.Context) (*model.Catalog, error) {
	start := r.now()

	var (
		products   []model.Product
		categories []model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = r.source.Products(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = r.source.Categories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.RecordCatalogFetch(err)
		r.logger.Error().Err(err).Msg("failed to fetch catalog")
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	metrics.RecordCatalogFetch(nil)

	snap := &model.Catalog{Products: products, Categories: categories}

	r.mu.Lock()
	r.snapshot = snap
	r.fetchedAt = r.now()
	r.mu.Unlock()

	r.logger.Info().
		Int("products", len(products)).
		Int("categories", len(categories)).
		Dur("duration", r.now().Sub(start)).
		Msg("catalog fetched")

	return snap, nil
}
