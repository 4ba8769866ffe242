package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/metrics"
	"github.com/guttosm/pack-pricing-service/internal/repository"
)

var (
	// ErrCartServiceStopped is returned for commands submitted after Stop.
	ErrCartServiceStopped = errors.New("cart service stopped")
	// ErrCartCommandFailed is returned when a command panicked inside the session actor.
	ErrCartCommandFailed = errors.New("cart command failed")
)

// maxConflictRetries bounds how often a command is re-applied to a freshly loaded cart after a
// concurrent write from another instance.
const maxConflictRetries = 1

// CartService applies storefront cart commands. All mutations of one session's cart are
// executed by a single goroutine in submission order.
type CartService interface {
	AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*model.Cart, error)
	UpdateLineQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*model.Cart, error)
	RemoveLine(ctx context.Context, sessionID, lineID string) (*model.Cart, error)
	GetCart(ctx context.Context, sessionID string) (*model.Cart, error)
	ClearCart(ctx context.Context, sessionID string) (*model.Cart, error)
	ActiveSessions() int
	Stop()
}

// CartCatalog is the part of the catalog the cart reads.
type CartCatalog interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetBundle(ctx context.Context, id string) (*model.Bundle, error)
}

// CartEventPublisher is notified after every committed cart change.
type CartEventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *model.Cart, action string) error
}

// AuditSink receives cart audit entries. Log must not block.
type AuditSink interface {
	Log(entry *model.LogEntry) bool
}

// CartOption configures a CartServiceImpl.
type CartOption func(*CartServiceImpl)

// WithCartPrecision sets the currency precision used for totals.
func WithCartPrecision(precision int32) CartOption {
	return func(s *CartServiceImpl) {
		if precision >= 0 {
			s.precision = precision
		}
	}
}

// WithIdleTimeout sets how long a session actor lives without commands.
func WithIdleTimeout(d time.Duration) CartOption {
	return func(s *CartServiceImpl) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// WithOperationTimeout bounds the storage and catalog work of a single command.
func WithOperationTimeout(d time.Duration) CartOption {
	return func(s *CartServiceImpl) {
		if d > 0 {
			s.opTimeout = d
		}
	}
}

// WithMaxQuantity lowers the largest quantity a cart line may reach. Values outside
// 1..model.MaxQuantity are ignored.
func WithMaxQuantity(n int) CartOption {
	return func(s *CartServiceImpl) {
		if n >= 1 && n <= model.MaxQuantity {
			s.maxQuantity = n
		}
	}
}

// WithEventPublisher sets the cart.updated publisher.
func WithEventPublisher(p CartEventPublisher) CartOption {
	return func(s *CartServiceImpl) { s.publisher = p }
}

// WithAuditSink sets where cart audit entries go.
func WithAuditSink(a AuditSink) CartOption {
	return func(s *CartServiceImpl) { s.audit = a }
}

// WithCartClock sets the clock used for timestamps.
func WithCartClock(now func() time.Time) CartOption {
	return func(s *CartServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLineIDs sets the line id generator.
func WithLineIDs(next func() string) CartOption {
	return func(s *CartServiceImpl) {
		if next != nil {
			s.newID = next
		}
	}
}

// CartServiceImpl implements CartService with one actor goroutine per active session.
// Actors are started on demand and retire after the idle timeout.
type CartServiceImpl struct {
	catalog     CartCatalog
	composer    Composer
	carts       repository.CartRepositoryInterface
	publisher   CartEventPublisher
	audit       AuditSink
	precision   int32
	idleTimeout time.Duration
	opTimeout   time.Duration
	maxQuantity int
	now         func() time.Time
	newID       func() string

	mu      sync.Mutex
	actors  map[string]*sessionActor
	stopped bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

type sessionActor struct {
	sessionID string
	inbox     chan cartCommand
	// done is closed once the actor no longer reads its inbox.
	done chan struct{}
}

type cartCommand struct {
	ctx    context.Context
	action string
	// apply mutates a private copy of the cart; nil for reads.
	apply func(ctx context.Context, cart *model.Cart) error
	reply chan cartResult
}

type cartResult struct {
	cart *model.Cart
	err  error
}

// NewCartService creates a cart service.
func NewCartService(
	catalog CartCatalog,
	composer Composer,
	carts repository.CartRepositoryInterface,
	opts ...CartOption,
) CartService {
	s := &CartServiceImpl{
		catalog:     catalog,
		composer:    composer,
		carts:       carts,
		precision:   DefaultPrecision,
		idleTimeout: 5 * time.Minute,
		opTimeout:   5 * time.Second,
		maxQuantity: model.MaxQuantity,
		now:         time.Now,
		newID:       uuid.NewString,
		actors:      make(map[string]*sessionActor),
		quit:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddToCart adds quantity units of a product or pack. Adding something already in the cart
// raises the quantity of its line; packs are composed again for the new quantity.
// Either every line of a pack is added or none is.
func (s *CartServiceImpl) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*model.Cart, error) {
	if quantity < 1 || quantity > s.maxQuantity {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidQuantity, quantity)
	}

	return s.submit(ctx, sessionID, model.ActionCartAdd, func(ctx context.Context, cart *model.Cart) error {
		i := cart.FindTopLevelByProduct(productID)
		total := quantity
		if i >= 0 {
			// Both terms are at most maxQuantity, so the sum cannot overflow.
			total += cart.Lines[i].Quantity
			if total > s.maxQuantity {
				return fmt.Errorf("%w: %s would reach %d, limit is %d", model.ErrInvalidQuantity, productID, total, s.maxQuantity)
			}
		}

		lines, err := s.linesFor(ctx, productID, total)
		if err != nil {
			return err
		}
		if i >= 0 {
			s.assignIDs(lines, cart.Lines[i].ID)
			cart.ReplaceBundle(i, lines)
			return nil
		}
		s.assignIDs(lines, "")
		cart.Lines = append(cart.Lines, lines...)
		return nil
	})
}

// UpdateLineQuantity sets the quantity of a top level line. A pack line is composed again and
// its component lines replaced; quantity 0 removes the line with its components.
func (s *CartServiceImpl) UpdateLineQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*model.Cart, error) {
	if quantity < 0 || quantity > s.maxQuantity {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidQuantity, quantity)
	}

	return s.submit(ctx, sessionID, model.ActionCartUpdate, func(ctx context.Context, cart *model.Cart) error {
		i, err := topLevelLine(cart, lineID)
		if err != nil {
			return err
		}
		if quantity == 0 {
			cart.RemoveLine(lineID)
			return nil
		}

		lines, err := s.linesFor(ctx, cart.Lines[i].ProductID, quantity)
		if err != nil {
			return err
		}
		s.assignIDs(lines, lineID)
		cart.ReplaceBundle(i, lines)
		return nil
	})
}

// RemoveLine removes a top level line and its component lines.
func (s *CartServiceImpl) RemoveLine(ctx context.Context, sessionID, lineID string) (*model.Cart, error) {
	return s.submit(ctx, sessionID, model.ActionCartRemove, func(_ context.Context, cart *model.Cart) error {
		if _, err := topLevelLine(cart, lineID); err != nil {
			return err
		}
		cart.RemoveLine(lineID)
		return nil
	})
}

// GetCart returns the session cart, empty when nothing was added yet.
func (s *CartServiceImpl) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	return s.submit(ctx, sessionID, "", nil)
}

// ClearCart removes every line.
func (s *CartServiceImpl) ClearCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	return s.submit(ctx, sessionID, model.ActionCartClear, func(_ context.Context, cart *model.Cart) error {
		cart.Lines = []model.OrderLine{}
		return nil
	})
}

// ActiveSessions returns the number of live session actors.
func (s *CartServiceImpl) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actors)
}

// Stop retires every actor and waits for in-flight commands to finish.
func (s *CartServiceImpl) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.quit)
	s.mu.Unlock()

	s.wg.Wait()
}

func topLevelLine(cart *model.Cart, lineID string) (int, error) {
	i := cart.FindLine(lineID)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", model.ErrLineNotFound, lineID)
	}
	if cart.Lines[i].IsComponent {
		return -1, fmt.Errorf("%w: %s belongs to pack line %s", model.ErrComponentLineLocked, lineID, cart.Lines[i].ParentLineID)
	}
	return i, nil
}

// linesFor prices quantity units of productID. Packs take precedence over plain products.
func (s *CartServiceImpl) linesFor(ctx context.Context, productID string, quantity int) ([]model.OrderLine, error) {
	b, err := s.catalog.GetBundle(ctx, productID)
	switch {
	case err == nil:
		if !b.Published {
			return nil, fmt.Errorf("%w: pack %s", model.ErrProductUnavailable, productID)
		}
		comp, err := s.composer.Compose(ctx, *b, quantity)
		if err != nil {
			return nil, err
		}
		return comp.Lines, nil
	case !errors.Is(err, model.ErrBundleNotFound):
		return nil, err
	}

	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, fmt.Errorf("%w: %s", model.ErrProductUnavailable, productID)
	}
	return []model.OrderLine{{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: p.ListPrice,
		Subtotal:  model.RoundMoney(p.ListPrice.Mul(decimal.NewFromInt(int64(quantity))), s.precision),
		TaxRate:   p.TaxRate,
	}}, nil
}

// assignIDs gives lines[0] parentID, or a new id when empty, and links the remaining lines to it.
func (s *CartServiceImpl) assignIDs(lines []model.OrderLine, parentID string) {
	if parentID == "" {
		parentID = s.newID()
	}
	lines[0].ID = parentID
	for i := 1; i < len(lines); i++ {
		lines[i].ID = s.newID()
		lines[i].ParentLineID = parentID
	}
}

// submit hands cmd to the session actor and waits for its reply. An actor that retires while
// the command is pending is replaced by a new one.
func (s *CartServiceImpl) submit(
	ctx context.Context,
	sessionID, action string,
	apply func(context.Context, *model.Cart) error,
) (*model.Cart, error) {
	if sessionID == "" {
		return nil, model.ErrSessionRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd := cartCommand{
		ctx:    ctx,
		action: action,
		apply:  apply,
		reply:  make(chan cartResult, 1),
	}

	for {
		a, err := s.actor(sessionID)
		if err != nil {
			return nil, err
		}

		select {
		case a.inbox <- cmd:
			select {
			case res := <-cmd.reply:
				return res.cart, res.err
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		case <-a.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// actor returns the live actor for the session, starting one when needed.
func (s *CartServiceImpl) actor(sessionID string) (*sessionActor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, ErrCartServiceStopped
	}
	if a, ok := s.actors[sessionID]; ok {
		return a, nil
	}

	a := &sessionActor{
		sessionID: sessionID,
		inbox:     make(chan cartCommand),
		done:      make(chan struct{}),
	}
	s.actors[sessionID] = a
	metrics.ActiveCartSessions.Set(float64(len(s.actors)))

	s.wg.Add(1)
	go s.run(a)
	return a, nil
}

func (s *CartServiceImpl) retire(a *sessionActor) {
	s.mu.Lock()
	if s.actors[a.sessionID] == a {
		delete(s.actors, a.sessionID)
	}
	metrics.ActiveCartSessions.Set(float64(len(s.actors)))
	s.mu.Unlock()
	close(a.done)
}

// run is the actor loop. cart caches the last committed state between commands.
func (s *CartServiceImpl) run(a *sessionActor) {
	defer s.wg.Done()
	defer s.retire(a)

	idle := time.NewTimer(s.idleTimeout)
	defer idle.Stop()

	var cart *model.Cart
	for {
		select {
		case cmd := <-a.inbox:
			var res cartResult
			cart, res = s.execute(a.sessionID, cart, cmd)
			cmd.reply <- res
			idle.Reset(s.idleTimeout)
		case <-idle.C:
			log.Debug().Str("session_id", a.sessionID).Msg("Cart session idle, actor retired")
			return
		case <-s.quit:
			return
		}
	}
}

// execute runs one command against a private copy of the cart and commits it with a version
// check. It returns the state to cache, nil when it must be reloaded, and the reply.
// A command whose caller has gone away is not committed. A panic fails the command only;
// the cart is reloaded before the next one.
func (s *CartServiceImpl) execute(sessionID string, cached *model.Cart, cmd cartCommand) (state *model.Cart, res cartResult) {
	ctx, cancel := context.WithTimeout(cmd.ctx, s.opTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("session_id", sessionID).
				Str("action", cmd.action).
				Bytes("stack", debug.Stack()).
				Msg("PANIC recovered in cart actor")
			err := fmt.Errorf("%w: %v", ErrCartCommandFailed, r)
			s.recordFailure(sessionID, cmd.action, err)
			state, res = nil, cartResult{err: err}
		}
	}()

	for attempt := 0; ; attempt++ {
		current := cached
		if current == nil {
			loaded, err := s.load(ctx, sessionID)
			if err != nil {
				return nil, cartResult{err: err}
			}
			current = loaded
		}
		if cmd.apply == nil {
			return current, cartResult{cart: current.Clone()}
		}

		next := current.Clone()
		if err := cmd.apply(ctx, next); err != nil {
			s.recordFailure(sessionID, cmd.action, err)
			return current, cartResult{err: err}
		}
		next.Recompute(s.precision)
		next.UpdatedAt = s.now().UTC()

		if err := ctx.Err(); err != nil {
			s.recordFailure(sessionID, cmd.action, err)
			return current, cartResult{err: err}
		}
		if err := s.carts.Save(ctx, next); err != nil {
			if errors.Is(err, model.ErrCartConflict) && attempt < maxConflictRetries {
				log.Debug().Str("session_id", sessionID).Msg("Cart changed elsewhere, reapplying command")
				cached = nil
				continue
			}
			s.recordFailure(sessionID, cmd.action, err)
			return nil, cartResult{err: err}
		}

		s.committed(ctx, next, cmd.action)
		return next, cartResult{cart: next.Clone()}
	}
}

func (s *CartServiceImpl) load(ctx context.Context, sessionID string) (*model.Cart, error) {
	if s.carts == nil {
		return nil, ErrRepositoryNotConfigured
	}
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		cart = model.NewCart(sessionID, s.now().UTC())
	}
	return cart, nil
}

func (s *CartServiceImpl) committed(ctx context.Context, cart *model.Cart, action string) {
	metrics.RecordCartOperation(action, "success")
	log.Info().
		Str("session_id", cart.SessionID).
		Str("action", action).
		Int("lines", len(cart.Lines)).
		Str("total", cart.Total.String()).
		Msg("Cart updated")

	if s.audit != nil {
		entry := &model.LogEntry{
			Timestamp:  s.now().UTC(),
			Level:      "info",
			Message:    "Cart updated",
			SessionID:  cart.SessionID,
			ActionType: action,
		}
		entry.WithFields(map[string]any{
			"version": cart.Version,
			"lines":   len(cart.Lines),
			"items":   cart.ItemCount(),
			"total":   cart.Total.String(),
		})
		s.audit.Log(entry)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCartUpdated(ctx, cart, action); err != nil {
			log.Warn().Err(err).Str("session_id", cart.SessionID).Msg("Failed to publish cart event")
		}
	}
}

func (s *CartServiceImpl) recordFailure(sessionID, action string, err error) {
	metrics.RecordCartOperation(action, "error")
	log.Debug().Err(err).Str("session_id", sessionID).Str("action", action).Msg("Cart command rejected")

	if s.audit != nil {
		s.audit.Log(&model.LogEntry{
			Timestamp:  s.now().UTC(),
			Level:      "warn",
			Message:    "Cart command rejected",
			SessionID:  sessionID,
			ActionType: action,
			Error:      err.Error(),
		})
	}
}
