package model

import "errors"

var (
	// ErrInvalidConfiguration is returned when a bundle cannot be priced as configured.
	ErrInvalidConfiguration = errors.New("invalid pack configuration")
	// ErrComponentUnavailable is returned when a component cannot be resolved in the catalog.
	ErrComponentUnavailable = errors.New("pack component unavailable")
	// ErrInvalidQuantity is returned for quantities below the allowed minimum.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductUnavailable is returned when an unpublished product is added to a cart.
	ErrProductUnavailable = errors.New("product not available")
	// ErrBundleNotFound is returned when a bundle does not exist.
	ErrBundleNotFound = errors.New("bundle not found")
	// ErrBundleModeLocked is returned when the pricing mode of a published bundle is changed.
	ErrBundleModeLocked = errors.New("pricing mode of a published bundle cannot change")
	// ErrUnpublishedComponent is returned when publishing a bundle with unpublished components.
	ErrUnpublishedComponent = errors.New("bundle has unpublished components")
	// ErrPublishedInBundle is returned when unpublishing a product used by a published bundle.
	ErrPublishedInBundle = errors.New("product is a component of a published bundle")
	// ErrLineNotFound is returned when a cart line does not exist.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrComponentLineLocked is returned when a component line is changed on its own.
	ErrComponentLineLocked = errors.New("component lines follow their pack line")
	// ErrCartConflict is returned when a cart was modified by another writer.
	ErrCartConflict = errors.New("cart was modified concurrently")
	// ErrSessionRequired is returned when a cart command has no session.
	ErrSessionRequired = errors.New("session required")
	// ErrBundleConflict is returned when a bundle was saved from a stale version.
	ErrBundleConflict = errors.New("bundle was modified concurrently")
)
