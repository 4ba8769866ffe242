package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// MemoryStore keeps products, bundles and carts in process. It is used when MongoDB is
// disabled and behaves like the Mongo repositories, version checks included.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]model.Product
	bundles  map[string]model.Bundle
	carts    map[string]*model.Cart
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]model.Product),
		bundles:  make(map[string]model.Bundle),
		carts:    make(map[string]*model.Cart),
	}
}

// Products returns the product repository view of the store.
func (s *MemoryStore) Products() *MemoryProductRepository { return &MemoryProductRepository{s} }

// Bundles returns the bundle repository view of the store.
func (s *MemoryStore) Bundles() *MemoryBundleRepository { return &MemoryBundleRepository{s} }

// Carts returns the cart repository view of the store.
func (s *MemoryStore) Carts() *MemoryCartRepository { return &MemoryCartRepository{s} }

// MemoryProductRepository implements ProductRepositoryInterface in memory.
type MemoryProductRepository struct{ s *MemoryStore }

func (r *MemoryProductRepository) Get(_ context.Context, id string) (*model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrProductNotFound, id)
	}
	return &p, nil
}

func (r *MemoryProductRepository) GetMany(_ context.Context, ids []string) (map[string]model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *MemoryProductRepository) Search(_ context.Context, query string, limit int) ([]model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Product{}
	for _, p := range r.s.products {
		if p.Published && nameMatches(p.Name, query) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b model.Product) int { return strings.Compare(a.Name, b.Name) })
	return truncate(out, limit), nil
}

func (r *MemoryProductRepository) Upsert(_ context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.UpdatedAt = time.Now().UTC()
	r.s.products[p.ID] = *p
	return nil
}

func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.products)), nil
}

// MemoryBundleRepository implements BundleRepositoryInterface in memory.
type MemoryBundleRepository struct{ s *MemoryStore }

func (r *MemoryBundleRepository) Get(_ context.Context, id string) (*model.Bundle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bundles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrBundleNotFound, id)
	}
	b.Components = slices.Clone(b.Components)
	return &b, nil
}

func (r *MemoryBundleRepository) Search(_ context.Context, query string, limit int) ([]model.Bundle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Bundle{}
	for _, b := range r.s.bundles {
		if b.Published && nameMatches(b.Name, query) {
			b.Components = slices.Clone(b.Components)
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b model.Bundle) int { return strings.Compare(a.Name, b.Name) })
	return truncate(out, limit), nil
}

func (r *MemoryBundleRepository) Save(_ context.Context, b *model.Bundle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, exists := r.s.bundles[b.ID]
	switch {
	case b.Version == 0 && exists:
		return fmt.Errorf("%w: bundle %s already exists", model.ErrBundleConflict, b.ID)
	case b.Version != 0 && (!exists || current.Version != b.Version):
		return fmt.Errorf("%w: bundle %s changed since version %d", model.ErrBundleConflict, b.ID, b.Version)
	}

	now := time.Now().UTC()
	next := *b
	next.Components = slices.Clone(b.Components)
	next.Version++
	next.UpdatedAt = now
	if !exists {
		next.CreatedAt = now
	}
	r.s.bundles[b.ID] = next
	*b = next
	b.Components = slices.Clone(next.Components)
	return nil
}

func (r *MemoryBundleRepository) PublishedUsing(_ context.Context, productID string) ([]model.Bundle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Bundle{}
	for _, b := range r.s.bundles {
		if !b.Published {
			continue
		}
		if slices.ContainsFunc(b.Components, func(c model.BundleComponent) bool { return c.ProductID == productID }) {
			out = append(out, b)
		}
	}
	return out, nil
}

// MemoryCartRepository implements CartRepositoryInterface in memory.
type MemoryCartRepository struct{ s *MemoryStore }

func (r *MemoryCartRepository) Get(_ context.Context, sessionID string) (*model.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (r *MemoryCartRepository) Save(_ context.Context, cart *model.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := 0
	if c, ok := r.s.carts[cart.SessionID]; ok {
		stored = c.Version
	}
	if stored != cart.Version {
		return fmt.Errorf("%w: session %s at version %d", model.ErrCartConflict, cart.SessionID, cart.Version)
	}

	cart.Version++
	cart.UpdatedAt = time.Now().UTC()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = cart.UpdatedAt
	}
	r.s.carts[cart.SessionID] = cart.Clone()
	return nil
}

func nameMatches(name, query string) bool {
	return query == "" || strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
