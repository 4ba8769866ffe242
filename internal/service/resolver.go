package service

import (
	"fmt"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// Strategy is the line expansion the composer applies to a bundle.
type Strategy int

const (
	// StrategyDisplayComponents prices each component line; the pack line is informational.
	StrategyDisplayComponents Strategy = iota + 1
	// StrategyIgnoreComponents prices the pack line; component lines are listed at zero.
	StrategyIgnoreComponents
	// StrategyAllocateToComponents splits the pack price across component lines.
	StrategyAllocateToComponents
	// StrategyAggregate emits the pack line only.
	StrategyAggregate
)

// String returns the strategy name used in logs.
func (s Strategy) String() string {
	switch s {
	case StrategyDisplayComponents:
		return "display_components"
	case StrategyIgnoreComponents:
		return "ignore_components"
	case StrategyAllocateToComponents:
		return "allocate_to_components"
	case StrategyAggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}

// ExpandsComponents reports whether component lines are emitted.
func (s Strategy) ExpandsComponents() bool {
	return s != StrategyAggregate
}

// ResolveStrategy validates the bundle and maps its pricing mode to a strategy.
// It fails with model.ErrInvalidConfiguration for unset or unknown modes and for
// structurally invalid bundles; it never guesses a default.
func ResolveStrategy(b model.Bundle) (Strategy, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}

	switch b.Mode {
	case model.ModeDetailedDisplayed:
		return StrategyDisplayComponents, nil
	case model.ModeDetailedIgnored:
		return StrategyIgnoreComponents, nil
	case model.ModeDetailedTotalized:
		return StrategyAllocateToComponents, nil
	case model.ModeNonDetailedTotalized:
		return StrategyAggregate, nil
	default:
		return 0, fmt.Errorf("%w: bundle %s has unknown pricing mode %q", model.ErrInvalidConfiguration, b.ID, b.Mode)
	}
}
