package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/metrics"
)

// DefaultPrecision is the number of decimal places of the shop currency.
const DefaultPrecision int32 = 2

// ComponentLookup resolves component product ids. Ids that do not exist are absent from the
// returned map; an error means the lookup itself failed.
type ComponentLookup interface {
	LookupProducts(ctx context.Context, ids []string) (map[string]model.Product, error)
}

// Composer expands bundles into order lines.
type Composer interface {
	Compose(ctx context.Context, bundle model.Bundle, quantity int) (model.Composition, error)
	// UnitPrice returns the price of one pack.
	UnitPrice(ctx context.Context, bundle model.Bundle) (decimal.Decimal, error)
}

// ComposerOption configures a ComposerService.
type ComposerOption func(*ComposerService)

// WithPrecision sets the currency precision used for line amounts.
func WithPrecision(precision int32) ComposerOption {
	return func(s *ComposerService) {
		if precision >= 0 {
			s.precision = precision
		}
	}
}

// ComposerService implements Composer. Apart from the catalog lookup it is a pure function of
// its inputs, so composing the same bundle twice yields equal lines.
type ComposerService struct {
	lookup    ComponentLookup
	precision int32
}

// NewComposerService creates a composer backed by lookup.
func NewComposerService(lookup ComponentLookup, opts ...ComposerOption) *ComposerService {
	s := &ComposerService{
		lookup:    lookup,
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// pricedComponent is one resolved component of a single pack.
type pricedComponent struct {
	spec    model.BundleComponent
	product model.Product
	unit    decimal.Decimal
	// perPack is unit times the component quantity of one pack.
	perPack decimal.Decimal
}

// pricedBundle is a bundle whose components have been resolved against the catalog.
type pricedBundle struct {
	strategy   Strategy
	components []pricedComponent
	unitPrice  decimal.Decimal
}

// Compose expands quantity packs of bundle into a parent line followed by component lines.
// Nothing is returned unless every line could be built.
func (s *ComposerService) Compose(ctx context.Context, bundle model.Bundle, quantity int) (model.Composition, error) {
	start := time.Now()
	comp, err := s.compose(ctx, bundle, quantity)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordComposition(time.Since(start), string(bundle.Mode), status)
	if err != nil {
		log.Debug().Err(err).Str("bundle_id", bundle.ID).Int("quantity", quantity).Msg("Pack composition failed")
	}
	return comp, err
}

func (s *ComposerService) compose(ctx context.Context, bundle model.Bundle, quantity int) (model.Composition, error) {
	if quantity < 1 || quantity > model.MaxQuantity {
		return model.Composition{}, fmt.Errorf("%w: %d packs of %s", model.ErrInvalidQuantity, quantity, bundle.ID)
	}

	pb, err := s.price(ctx, bundle)
	if err != nil {
		return model.Composition{}, err
	}

	qty := decimal.NewFromInt(int64(quantity))
	total := pb.unitPrice.Mul(qty)

	parent := model.OrderLine{
		ProductID: bundle.ID,
		Name:      bundle.Name,
		Quantity:  quantity,
		UnitPrice: decimal.Zero,
		Subtotal:  decimal.Zero,
		TaxRate:   bundle.TaxRate,
		BundleID:  bundle.ID,
		Mode:      bundle.Mode,
	}
	if pb.strategy == StrategyIgnoreComponents || pb.strategy == StrategyAggregate {
		parent.UnitPrice = pb.unitPrice
		parent.Subtotal = total
	}

	lines := make([]model.OrderLine, 0, len(pb.components)+1)
	lines = append(lines, parent)

	if pb.strategy.ExpandsComponents() {
		var shares []decimal.Decimal
		if pb.strategy == StrategyAllocateToComponents {
			shares = allocate(total, allocationWeights(pb.components), s.precision)
		}

		for i, c := range pb.components {
			lineQty, err := model.MulQuantity(c.spec.Quantity, quantity)
			if err != nil {
				return model.Composition{}, fmt.Errorf("component %s of %s: %w", c.spec.ProductID, bundle.ID, err)
			}
			line := model.OrderLine{
				ProductID:   c.product.ID,
				Name:        c.product.Name,
				Quantity:    lineQty,
				UnitPrice:   decimal.Zero,
				Subtotal:    decimal.Zero,
				TaxRate:     c.product.TaxRate,
				IsComponent: true,
				BundleID:    bundle.ID,
				Mode:        bundle.Mode,
			}
			switch pb.strategy {
			case StrategyDisplayComponents:
				line.UnitPrice = c.unit
				line.Subtotal = model.RoundMoney(c.unit.Mul(decimal.NewFromInt(int64(lineQty))), s.precision)
			case StrategyAllocateToComponents:
				line.Subtotal = shares[i]
				line.UnitPrice = shares[i].DivRound(decimal.NewFromInt(int64(lineQty)), s.precision+2)
			}
			lines = append(lines, line)
		}
	}

	comp := model.Composition{
		BundleID:  bundle.ID,
		Mode:      bundle.Mode,
		Quantity:  quantity,
		UnitPrice: pb.unitPrice,
		Total:     total,
		Lines:     lines,
	}
	if pb.strategy == StrategyDisplayComponents {
		// Component lines are rounded individually; their sum is authoritative.
		comp.Total = comp.LinesTotal()
	}
	return comp, nil
}

// UnitPrice returns the price of a single pack.
func (s *ComposerService) UnitPrice(ctx context.Context, bundle model.Bundle) (decimal.Decimal, error) {
	pb, err := s.price(ctx, bundle)
	if err != nil {
		return decimal.Zero, err
	}
	return pb.unitPrice, nil
}

func (s *ComposerService) price(ctx context.Context, bundle model.Bundle) (pricedBundle, error) {
	strategy, err := ResolveStrategy(bundle)
	if err != nil {
		return pricedBundle{}, err
	}

	products, err := s.lookup.LookupProducts(ctx, bundle.ComponentIDs())
	if err != nil {
		return pricedBundle{}, fmt.Errorf("lookup components of %s: %w", bundle.ID, err)
	}

	components := make([]pricedComponent, len(bundle.Components))
	sum := decimal.Zero
	for i, spec := range bundle.Components {
		p, ok := products[spec.ProductID]
		if !ok {
			return pricedBundle{}, fmt.Errorf("%w: %s in %s does not exist", model.ErrComponentUnavailable, spec.ProductID, bundle.ID)
		}
		if !p.Published {
			return pricedBundle{}, fmt.Errorf("%w: %s in %s is not published", model.ErrComponentUnavailable, spec.ProductID, bundle.ID)
		}

		unit := p.ListPrice
		if spec.UnitPrice != nil {
			unit = *spec.UnitPrice
		}
		if unit.IsNegative() {
			return pricedBundle{}, fmt.Errorf("%w: %s in %s has a negative price", model.ErrInvalidConfiguration, spec.ProductID, bundle.ID)
		}
		perPack := unit.Mul(decimal.NewFromInt(int64(spec.Quantity)))
		sum = sum.Add(perPack)
		components[i] = pricedComponent{spec: spec, product: p, unit: unit, perPack: perPack}
	}

	unitPrice := sum
	if bundle.FixedPrice != nil && strategy != StrategyDisplayComponents {
		unitPrice = *bundle.FixedPrice
	}

	return pricedBundle{
		strategy:   strategy,
		components: components,
		unitPrice:  model.RoundMoney(unitPrice, s.precision),
	}, nil
}

// allocationWeights uses the list value of each component, falling back to quantities when
// every component is free.
func allocationWeights(components []pricedComponent) []decimal.Decimal {
	weights := make([]decimal.Decimal, len(components))
	allZero := true
	for i, c := range components {
		weights[i] = c.perPack
		if !c.perPack.IsZero() {
			allZero = false
		}
	}
	if allZero {
		for i, c := range components {
			weights[i] = decimal.NewFromInt(int64(c.spec.Quantity))
		}
	}
	return weights
}

// allocate splits total proportionally to weights using the largest remainder method, so the
// shares are multiples of the currency unit and sum exactly to total. Ties go to the earlier
// component. total must already be rounded to precision and weights must not all be zero.
func allocate(total decimal.Decimal, weights []decimal.Decimal, precision int32) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	if len(weights) == 0 {
		return shares
	}

	sumW := decimal.Sum(decimal.Zero, weights...)
	if sumW.IsZero() {
		shares[0] = total
		return shares
	}

	type remainder struct {
		index int
		value decimal.Decimal
	}
	remainders := make([]remainder, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		raw := total.Mul(w).DivRound(sumW, precision+12)
		share := raw.RoundFloor(precision)
		shares[i] = share
		allocated = allocated.Add(share)
		remainders[i] = remainder{index: i, value: raw.Sub(share)}
	}

	slices.SortStableFunc(remainders, func(a, b remainder) int {
		return cmp.Compare(0, a.value.Cmp(b.value))
	})

	unit := decimal.New(1, -precision)
	left := total.Sub(allocated).Div(unit).IntPart()
	for i := int64(0); i < left; i++ {
		r := remainders[int(i)%len(remainders)]
		shares[r.index] = shares[r.index].Add(unit)
	}
	return shares
}
