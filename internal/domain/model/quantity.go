package model

import (
	"fmt"
	"math"
)

// MaxQuantity is the largest quantity accepted for a cart line, a pack request or a pack
// component. Deployments may configure a lower cart limit, never a higher one.
const MaxQuantity = 10000

// MulQuantity returns a*b for positive quantities, or ErrInvalidQuantity when the product
// does not fit in an int.
func MulQuantity(a, b int) (int, error) {
	if a < 1 || b < 1 {
		return 0, fmt.Errorf("%w: %d x %d", ErrInvalidQuantity, a, b)
	}
	if a > math.MaxInt/b {
		return 0, fmt.Errorf("%w: %d x %d overflows", ErrInvalidQuantity, a, b)
	}
	return a * b, nil
}
