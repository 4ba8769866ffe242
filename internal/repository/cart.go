package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// CartRepository persists session carts.
type CartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *MongoDB) *CartRepository {
	return &CartRepository{collection: db.Carts}
}

// Get returns the stored cart of the session, or nil when there is none.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	var c model.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if c.Lines == nil {
		c.Lines = []model.OrderLine{}
	}
	return &c, nil
}

// Save writes the cart if the stored version still equals cart.Version, then bumps it.
func (r *CartRepository) Save(ctx context.Context, cart *model.Cart) error {
	expected := cart.Version
	next := *cart
	next.Version = expected + 1
	next.UpdatedAt = time.Now().UTC()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = next.UpdatedAt
	}

	if expected == 0 {
		if _, err := r.collection.InsertOne(ctx, &next); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("%w: session %s", model.ErrCartConflict, cart.SessionID)
			}
			return err
		}
		*cart = next
		return nil
	}

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cart.SessionID, "version": expected}, &next)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: session %s at version %d", model.ErrCartConflict, cart.SessionID, expected)
	}
	*cart = next
	return nil
}
