package repository

import (
	"context"
	"errors"

	"github.com/guttosm/pack-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// ErrStoreUnavailable is returned while the breaker in front of the store is open.
var ErrStoreUnavailable = errors.New("store temporarily unavailable")

func guard[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = fn()
		return cbErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return result, errors.Join(ErrStoreUnavailable, err)
	}
	return result, err
}

// ProductRepositoryWithCircuitBreaker wraps a product repository with circuit breaker protection.
type ProductRepositoryWithCircuitBreaker struct {
	repo           ProductRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProductRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProductRepositoryWithCircuitBreaker(repo ProductRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ProductRepositoryWithCircuitBreaker {
	return &ProductRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *ProductRepositoryWithCircuitBreaker) Get(ctx context.Context, id string) (*model.Product, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.Product, error) { return r.repo.Get(ctx, id) })
}

func (r *ProductRepositoryWithCircuitBreaker) GetMany(ctx context.Context, ids []string) (map[string]model.Product, error) {
	return guard(ctx, r.circuitBreaker, func() (map[string]model.Product, error) { return r.repo.GetMany(ctx, ids) })
}

func (r *ProductRepositoryWithCircuitBreaker) Search(ctx context.Context, query string, limit int) ([]model.Product, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.Product, error) { return r.repo.Search(ctx, query, limit) })
}

func (r *ProductRepositoryWithCircuitBreaker) Upsert(ctx context.Context, p *model.Product) error {
	_, err := guard(ctx, r.circuitBreaker, func() (struct{}, error) { return struct{}{}, r.repo.Upsert(ctx, p) })
	return err
}

func (r *ProductRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	return guard(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.Count(ctx) })
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ProductRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// BundleRepositoryWithCircuitBreaker wraps a bundle repository with circuit breaker protection.
type BundleRepositoryWithCircuitBreaker struct {
	repo           BundleRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewBundleRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewBundleRepositoryWithCircuitBreaker(repo BundleRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *BundleRepositoryWithCircuitBreaker {
	return &BundleRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *BundleRepositoryWithCircuitBreaker) Get(ctx context.Context, id string) (*model.Bundle, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.Bundle, error) { return r.repo.Get(ctx, id) })
}

func (r *BundleRepositoryWithCircuitBreaker) Search(ctx context.Context, query string, limit int) ([]model.Bundle, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.Bundle, error) { return r.repo.Search(ctx, query, limit) })
}

func (r *BundleRepositoryWithCircuitBreaker) Save(ctx context.Context, b *model.Bundle) error {
	_, err := guard(ctx, r.circuitBreaker, func() (struct{}, error) { return struct{}{}, r.repo.Save(ctx, b) })
	return err
}

func (r *BundleRepositoryWithCircuitBreaker) PublishedUsing(ctx context.Context, productID string) ([]model.Bundle, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.Bundle, error) { return r.repo.PublishedUsing(ctx, productID) })
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *BundleRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// CartRepositoryWithCircuitBreaker wraps a cart repository with circuit breaker protection.
type CartRepositoryWithCircuitBreaker struct {
	repo           CartRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCartRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCartRepositoryWithCircuitBreaker(repo CartRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CartRepositoryWithCircuitBreaker {
	return &CartRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *CartRepositoryWithCircuitBreaker) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.Cart, error) { return r.repo.Get(ctx, sessionID) })
}

func (r *CartRepositoryWithCircuitBreaker) Save(ctx context.Context, cart *model.Cart) error {
	_, err := guard(ctx, r.circuitBreaker, func() (struct{}, error) { return struct{}{}, r.repo.Save(ctx, cart) })
	return err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CartRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
// Writes are dropped while the circuit is open; logs are not worth failing a request for.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores a single log entry.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guard(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) { return r.repo.Query(ctx, opts) })
}

// Count returns the count of log entries.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guard(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.Count(ctx, opts) })
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
