package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// BundleRepository provides methods for pack definition operations.
type BundleRepository struct {
	collection *mongo.Collection
}

// NewBundleRepository creates a new bundle repository.
func NewBundleRepository(db *MongoDB) *BundleRepository {
	return &BundleRepository{collection: db.Bundles}
}

// Get returns the bundle with the given id.
func (r *BundleRepository) Get(ctx context.Context, id string) (*model.Bundle, error) {
	var b model.Bundle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", model.ErrBundleNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Search returns published bundles whose name contains query.
func (r *BundleRepository) Search(ctx context.Context, query string, limit int) ([]model.Bundle, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, searchFilter(query), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	bundles := []model.Bundle{}
	if err := cursor.All(ctx, &bundles); err != nil {
		return nil, err
	}
	return bundles, nil
}

// Save inserts or replaces the bundle with a version check.
func (r *BundleRepository) Save(ctx context.Context, b *model.Bundle) error {
	now := time.Now().UTC()
	expected := b.Version
	next := *b
	next.Version = expected + 1
	next.UpdatedAt = now

	if expected == 0 {
		next.CreatedAt = now
		if _, err := r.collection.InsertOne(ctx, &next); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("%w: bundle %s already exists", model.ErrBundleConflict, b.ID)
			}
			return err
		}
		*b = next
		return nil
	}

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": b.ID, "version": expected}, &next)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: bundle %s changed since version %d", model.ErrBundleConflict, b.ID, expected)
	}
	*b = next
	return nil
}

// PublishedUsing returns published bundles containing productID.
func (r *BundleRepository) PublishedUsing(ctx context.Context, productID string) ([]model.Bundle, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"components.product_id": productID, "published": true})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	bundles := []model.Bundle{}
	if err := cursor.All(ctx, &bundles); err != nil {
		return nil, err
	}
	return bundles, nil
}
