package repository

import (
	"context"
	"errors"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// ProductRepositoryInterface stores catalog products.
type ProductRepositoryInterface interface {
	// Get returns model.ErrProductNotFound when the product does not exist.
	Get(ctx context.Context, id string) (*model.Product, error)
	// GetMany returns the products that exist among ids, keyed by id.
	GetMany(ctx context.Context, ids []string) (map[string]model.Product, error)
	Search(ctx context.Context, query string, limit int) ([]model.Product, error)
	Upsert(ctx context.Context, p *model.Product) error
	Count(ctx context.Context) (int64, error)
}

// BundleRepositoryInterface stores pack definitions.
type BundleRepositoryInterface interface {
	// Get returns model.ErrBundleNotFound when the bundle does not exist.
	Get(ctx context.Context, id string) (*model.Bundle, error)
	Search(ctx context.Context, query string, limit int) ([]model.Bundle, error)
	// Save inserts the bundle when b.Version is zero, otherwise replaces the stored
	// document only if it still has b.Version. The stored version is written back to b.
	Save(ctx context.Context, b *model.Bundle) error
	// PublishedUsing returns the published bundles that list productID as a component.
	PublishedUsing(ctx context.Context, productID string) ([]model.Bundle, error)
}

// CartRepositoryInterface stores session carts.
type CartRepositoryInterface interface {
	// Get returns nil without error when the session has no cart yet.
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	// Save writes the cart with optimistic versioning and returns model.ErrCartConflict
	// when the stored version moved.
	Save(ctx context.Context, cart *model.Cart) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

// IsExpectedError reports domain answers that must not trip a circuit breaker.
func IsExpectedError(err error) bool {
	return errors.Is(err, model.ErrProductNotFound) ||
		errors.Is(err, model.ErrBundleNotFound) ||
		errors.Is(err, model.ErrCartConflict) ||
		errors.Is(err, model.ErrBundleConflict)
}
