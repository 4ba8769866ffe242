package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/repository"
	"github.com/guttosm/pack-pricing-service/internal/service/cache"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// DefaultBundleMissTTL is how long a bundle miss is cached. Saves through this service clear
// it at once; other instances see a new bundle after at most this long.
const DefaultBundleMissTTL = 30 * time.Second

// SharedCache is the cache tier shared between service instances.
type SharedCache[V any] interface {
	// Get returns cache.ErrCacheMiss when the id is not cached.
	Get(ctx context.Context, id string) (V, error)
	Set(ctx context.Context, id string, value V) error
	Delete(ctx context.Context, id string) error
}

// SearchResult holds the published products and packs matching a storefront search.
type SearchResult struct {
	Products []model.Product
	Bundles  []model.Bundle
}

// CatalogService reads and maintains products and pack definitions.
type CatalogService interface {
	ComponentLookup
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetBundle(ctx context.Context, id string) (*model.Bundle, error)
	Search(ctx context.Context, query string, limit int) (*SearchResult, error)
	UpsertProduct(ctx context.Context, p model.Product) (*model.Product, error)
	SaveBundle(ctx context.Context, b model.Bundle) (*model.Bundle, error)
	PublishBundle(ctx context.Context, id string) (*model.Bundle, error)
	UnpublishBundle(ctx context.Context, id string) (*model.Bundle, error)
	CacheMetrics() cache.Metrics
	Stop()
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithProductCache replaces the default in-process product cache.
func WithProductCache(c cache.CacheWithMetrics[model.Product]) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if c != nil {
			s.productCache = c
		}
	}
}

// WithBundleCache replaces the default in-process bundle cache.
func WithBundleCache(c cache.CacheWithMetrics[model.Bundle]) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if c != nil {
			s.bundleCache = c
		}
	}
}

// WithSharedCache adds a second cache tier consulted after the in-process one.
func WithSharedCache(products SharedCache[model.Product], bundles SharedCache[model.Bundle]) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.sharedProducts = products
		s.sharedBundles = bundles
	}
}

// WithBundleMissTTL sets how long an unknown bundle id is remembered, so adding a plain
// product does not query the bundle store every time. Zero disables it.
func WithBundleMissTTL(d time.Duration) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if d >= 0 {
			s.bundleMissTTL = d
		}
	}
}

// WithCatalogClock sets the clock used for timestamps.
func WithCatalogClock(now func() time.Time) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// CatalogServiceImpl implements CatalogService. Reads go through the in-process cache, the
// shared cache and finally the repository; concurrent misses for the same ids share one
// repository call. Writes invalidate both cache tiers.
type CatalogServiceImpl struct {
	products       repository.ProductRepositoryInterface
	bundles        repository.BundleRepositoryInterface
	productCache   cache.CacheWithMetrics[model.Product]
	bundleCache    cache.CacheWithMetrics[model.Bundle]
	sharedProducts SharedCache[model.Product]
	sharedBundles  SharedCache[model.Bundle]
	// bundleMisses remembers ids with no bundle; nil when disabled.
	bundleMisses  *ShardedCache[struct{}]
	bundleMissTTL time.Duration
	group         singleflight.Group
	now           func() time.Time
}

// NewCatalogService creates a catalog service.
func NewCatalogService(
	products repository.ProductRepositoryInterface,
	bundles repository.BundleRepositoryInterface,
	opts ...CatalogOption,
) CatalogService {
	s := &CatalogServiceImpl{
		products:      products,
		bundles:       bundles,
		bundleMissTTL: DefaultBundleMissTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.productCache == nil {
		s.productCache = NewShardedCache[model.Product](1000, 5*time.Minute, 16)
	}
	if s.bundleCache == nil {
		s.bundleCache = NewShardedCache[model.Bundle](1000, 5*time.Minute, 16)
	}
	if s.bundleMissTTL > 0 {
		s.bundleMisses = NewShardedCache[struct{}](1000, s.bundleMissTTL, 16)
	}
	return s
}

// LookupProducts resolves ids to products. Unknown ids are absent from the result.
func (s *CatalogServiceImpl) LookupProducts(ctx context.Context, ids []string) (map[string]model.Product, error) {
	if s.products == nil {
		return nil, ErrRepositoryNotConfigured
	}

	found := make(map[string]model.Product, len(ids))
	var misses []string
	for _, id := range ids {
		if _, done := found[id]; done || slices.Contains(misses, id) {
			continue
		}
		if p, ok := s.productCache.Get(id); ok {
			found[id] = p
			continue
		}
		if s.sharedProducts != nil {
			p, err := s.sharedProducts.Get(ctx, id)
			if err == nil {
				s.productCache.Set(id, p)
				found[id] = p
				continue
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Warn().Err(err).Str("product_id", id).Msg("Shared cache read failed")
			}
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return found, nil
	}

	slices.Sort(misses)
	v, err, _ := s.group.Do("products:"+strings.Join(misses, ","), func() (any, error) {
		loaded, err := s.products.GetMany(ctx, misses)
		if err != nil {
			return nil, err
		}
		for id, p := range loaded {
			s.productCache.Set(id, p)
			s.writeSharedProduct(ctx, p)
		}
		return loaded, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for id, p := range v.(map[string]model.Product) {
		found[id] = p
	}
	return found, nil
}

// GetProduct returns model.ErrProductNotFound for unknown ids. Unpublished products are returned.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	found, err := s.LookupProducts(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p, ok := found[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrProductNotFound, id)
	}
	return &p, nil
}

// GetBundle returns model.ErrBundleNotFound for unknown ids. The result is a private copy.
func (s *CatalogServiceImpl) GetBundle(ctx context.Context, id string) (*model.Bundle, error) {
	if s.bundles == nil {
		return nil, ErrRepositoryNotConfigured
	}

	if b, ok := s.bundleCache.Get(id); ok {
		out := b.Clone()
		return &out, nil
	}
	if s.bundleMisses != nil {
		if _, ok := s.bundleMisses.Get(id); ok {
			return nil, fmt.Errorf("%w: %s", model.ErrBundleNotFound, id)
		}
	}
	if s.sharedBundles != nil {
		b, err := s.sharedBundles.Get(ctx, id)
		if err == nil {
			s.bundleCache.Set(id, b)
			out := b.Clone()
			return &out, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("bundle_id", id).Msg("Shared cache read failed")
		}
	}

	v, err, _ := s.group.Do("bundle:"+id, func() (any, error) {
		b, err := s.bundles.Get(ctx, id)
		if err != nil {
			if s.bundleMisses != nil && errors.Is(err, model.ErrBundleNotFound) {
				s.bundleMisses.Set(id, struct{}{})
			}
			return nil, err
		}
		s.bundleCache.Set(id, *b)
		s.writeSharedBundle(ctx, *b)
		return *b, nil
	})
	if err != nil {
		return nil, err
	}
	out := v.(model.Bundle).Clone()
	return &out, nil
}

// Search returns published products and packs whose name contains query.
func (s *CatalogServiceImpl) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	if s.products == nil || s.bundles == nil {
		return nil, ErrRepositoryNotConfigured
	}

	products, err := s.products.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	bundles, err := s.bundles.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search bundles: %w", err)
	}
	return &SearchResult{Products: products, Bundles: bundles}, nil
}

// UpsertProduct creates or replaces a product. A product used by a published pack cannot be
// unpublished.
func (s *CatalogServiceImpl) UpsertProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if s.products == nil || s.bundles == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if p.ID == "" {
		return nil, fmt.Errorf("%w: product id is required", model.ErrInvalidConfiguration)
	}
	if p.ListPrice.IsNegative() || p.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: product %s has a negative price or tax rate", model.ErrInvalidConfiguration, p.ID)
	}

	if !p.Published {
		using, err := s.bundles.PublishedUsing(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("check packs using %s: %w", p.ID, err)
		}
		if len(using) > 0 {
			return nil, fmt.Errorf("%w: %s is a component of %s", model.ErrPublishedInBundle, p.ID, using[0].ID)
		}
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.products.Upsert(ctx, &p); err != nil {
		return nil, err
	}
	s.invalidateProduct(ctx, p.ID)

	log.Info().Str("product_id", p.ID).Bool("published", p.Published).Msg("Product saved")
	return &p, nil
}

// SaveBundle creates or updates a pack definition. Drafts may be saved without a pricing mode;
// a published pack keeps its mode and must stay valid.
func (s *CatalogServiceImpl) SaveBundle(ctx context.Context, b model.Bundle) (*model.Bundle, error) {
	if s.bundles == nil || s.products == nil {
		return nil, ErrRepositoryNotConfigured
	}

	existing, err := s.bundles.Get(ctx, b.ID)
	switch {
	case errors.Is(err, model.ErrBundleNotFound):
		b.Version = 0
		b.Published = false
		b.CreatedAt = s.now().UTC()
	case err != nil:
		return nil, err
	default:
		if existing.Published && b.Mode != existing.Mode {
			return nil, fmt.Errorf("%w: %s is published with mode %s", model.ErrBundleModeLocked, b.ID, existing.Mode)
		}
		b.Version = existing.Version
		b.Published = existing.Published
		b.CreatedAt = existing.CreatedAt
	}

	if b.Published {
		if _, err := ResolveStrategy(b); err != nil {
			return nil, err
		}
		if err := s.requirePublishedComponents(ctx, b); err != nil {
			return nil, err
		}
	} else if err := b.ValidateDraft(); err != nil {
		return nil, err
	}

	b.UpdatedAt = s.now().UTC()
	if err := s.bundles.Save(ctx, &b); err != nil {
		return nil, err
	}
	s.invalidateBundle(ctx, b.ID)

	log.Info().Str("bundle_id", b.ID).Str("mode", string(b.Mode)).Int("version", b.Version).Msg("Pack saved")
	return &b, nil
}

// PublishBundle makes a pack sellable once its mode is set and all its components are published.
func (s *CatalogServiceImpl) PublishBundle(ctx context.Context, id string) (*model.Bundle, error) {
	return s.setPublished(ctx, id, true)
}

// UnpublishBundle withdraws a pack from the storefront.
func (s *CatalogServiceImpl) UnpublishBundle(ctx context.Context, id string) (*model.Bundle, error) {
	return s.setPublished(ctx, id, false)
}

func (s *CatalogServiceImpl) setPublished(ctx context.Context, id string, published bool) (*model.Bundle, error) {
	if s.bundles == nil || s.products == nil {
		return nil, ErrRepositoryNotConfigured
	}

	b, err := s.bundles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Published == published {
		return b, nil
	}
	if published {
		if _, err := ResolveStrategy(*b); err != nil {
			return nil, err
		}
		if err := s.requirePublishedComponents(ctx, *b); err != nil {
			return nil, err
		}
	}

	b.Published = published
	b.UpdatedAt = s.now().UTC()
	if err := s.bundles.Save(ctx, b); err != nil {
		return nil, err
	}
	s.invalidateBundle(ctx, id)

	log.Info().Str("bundle_id", id).Bool("published", published).Msg("Pack publication changed")
	return b, nil
}

// requirePublishedComponents reads the repository directly so a stale cache entry cannot let
// an unpublished component through.
func (s *CatalogServiceImpl) requirePublishedComponents(ctx context.Context, b model.Bundle) error {
	found, err := s.products.GetMany(ctx, b.ComponentIDs())
	if err != nil {
		return fmt.Errorf("load components of %s: %w", b.ID, err)
	}
	for _, id := range b.ComponentIDs() {
		p, ok := found[id]
		if !ok {
			return fmt.Errorf("%w: %s does not exist", model.ErrUnpublishedComponent, id)
		}
		if !p.Published {
			return fmt.Errorf("%w: %s", model.ErrUnpublishedComponent, id)
		}
	}
	return nil
}

// CacheMetrics reports the combined in-process cache metrics.
func (s *CatalogServiceImpl) CacheMetrics() cache.Metrics {
	p := s.productCache.Metrics()
	b := s.bundleCache.Metrics()
	return cache.Metrics{
		Hits:      p.Hits + b.Hits,
		Misses:    p.Misses + b.Misses,
		Evictions: p.Evictions + b.Evictions,
		Size:      p.Size + b.Size,
		Capacity:  p.Capacity + b.Capacity,
	}
}

// Stop releases the in-process caches.
func (s *CatalogServiceImpl) Stop() {
	s.productCache.Stop()
	s.bundleCache.Stop()
	if s.bundleMisses != nil {
		s.bundleMisses.Stop()
	}
}

// Shared cache write failures only cost a later miss.
func (s *CatalogServiceImpl) writeSharedProduct(ctx context.Context, p model.Product) {
	if s.sharedProducts == nil {
		return
	}
	if err := s.sharedProducts.Set(ctx, p.ID, p); err != nil {
		log.Warn().Err(err).Str("product_id", p.ID).Msg("Shared cache write failed")
	}
}

func (s *CatalogServiceImpl) writeSharedBundle(ctx context.Context, b model.Bundle) {
	if s.sharedBundles == nil {
		return
	}
	if err := s.sharedBundles.Set(ctx, b.ID, b); err != nil {
		log.Warn().Err(err).Str("bundle_id", b.ID).Msg("Shared cache write failed")
	}
}

func (s *CatalogServiceImpl) invalidateProduct(ctx context.Context, id string) {
	s.productCache.Invalidate(id)
	if s.sharedProducts != nil {
		if err := s.sharedProducts.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("product_id", id).Msg("Shared cache invalidation failed")
		}
	}
}

func (s *CatalogServiceImpl) invalidateBundle(ctx context.Context, id string) {
	s.bundleCache.Invalidate(id)
	if s.bundleMisses != nil {
		s.bundleMisses.Invalidate(id)
	}
	if s.sharedBundles != nil {
		if err := s.sharedBundles.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("bundle_id", id).Msg("Shared cache invalidation failed")
		}
	}
}
