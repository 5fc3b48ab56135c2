package storefront

import (
	"context"
	"errors"
	"sync"

	"github.com/mallow/storefront/pkg/logger"
)

// CartAPI is the subset of Client the shared cart state drives
type CartAPI interface {
	CreateCart(ctx context.Context) (CartIdentifier, error)
	FetchCart(ctx context.Context, id CartIdentifier) (Cart, error)
	AddItem(ctx context.Context, id CartIdentifier, productID string, quantity int) (Cart, error)
	SetQuantity(ctx context.Context, id CartIdentifier, productID string, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, id CartIdentifier, productID string) (Cart, error)
}

// Phase is the identifier lifecycle of a CartState
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseCreating
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseCreating:
		return "creating"
	case PhaseReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Snapshot is what every consumer of the shared cart sees
type Snapshot struct {
	ID      CartIdentifier
	Cart    Cart
	Pending bool
	Phase   Phase
}

// CartState is the single shared cart of the process. Mutations go through
// its methods; readers use Snapshot or Subscribe.
//
// Each mutation takes a sequence number when it is issued. A response is
// applied only if no later-issued request has been applied already, so an
// overtaken response never overwrites a newer cart.
type CartState struct {
	api   CartAPI
	store IdentityStore
	log   *logger.Logger

	mu        sync.Mutex
	activated bool
	phase     Phase
	id        CartIdentifier
	cart      Cart
	inFlight  int
	issued    uint64
	applied   uint64
	subs      map[int]chan Snapshot
	nextSub   int
}

func NewCartState(api CartAPI, store IdentityStore) *CartState {
	return &CartState{
		api:   api,
		store: store,
		log:   logger.Get().Component("cart_state"),
		cart:  EmptyCart(),
		subs:  make(map[int]chan Snapshot),
	}
}

// Activate runs the identifier lifecycle once. Later calls are no-ops.
// Failures degrade to a usable, server-disconnected empty cart.
func (s *CartState) Activate(ctx context.Context) {
	s.mu.Lock()
	if s.activated {
		s.mu.Unlock()
		return
	}
	s.activated = true
	s.mu.Unlock()

	stored, ok := s.store.Load(ctx)
	if !ok {
		s.create(ctx)
		return
	}

	cart, err := s.api.FetchCart(ctx, stored)
	switch {
	case err == nil:
		s.mu.Lock()
		s.id = stored
		s.cart = cart
		s.phase = PhaseReady
		s.publishLocked()
		s.mu.Unlock()

		s.log.Info("Cart restored", map[string]interface{}{
			"cart_id":    string(stored),
			"item_count": cart.ItemCount,
		})
	case errors.Is(err, ErrNotFound):
		s.log.Info("Stored cart no longer exists, creating a new one", map[string]interface{}{
			"cart_id": string(stored),
		})
		s.create(ctx)
	default:
		s.log.Warn("Failed to restore cart, continuing with empty cart", map[string]interface{}{
			"cart_id": string(stored),
			"error":   err.Error(),
		})
		s.mu.Lock()
		s.cart = EmptyCart()
		s.publishLocked()
		s.mu.Unlock()
	}
}

func (s *CartState) create(ctx context.Context) {
	s.mu.Lock()
	predecessor := s.phase
	s.phase = PhaseCreating
	s.id = ""
	s.publishLocked()
	s.mu.Unlock()

	id, err := s.api.CreateCart(ctx)
	if err != nil {
		s.log.Error("Failed to create cart, continuing with empty cart", err)
		s.mu.Lock()
		s.phase = predecessor
		s.cart = EmptyCart()
		s.publishLocked()
		s.mu.Unlock()
		return
	}

	if err := s.store.Save(ctx, id); err != nil {
		s.log.Warn("Failed to persist new cart id", map[string]interface{}{
			"cart_id": string(id),
			"error":   err.Error(),
		})
	}

	s.mu.Lock()
	s.id = id
	s.cart = EmptyCart()
	s.phase = PhaseReady
	s.publishLocked()
	s.mu.Unlock()

	s.log.Info("Cart created", map[string]interface{}{
		"cart_id": string(id),
	})
}

// AddToCart adds quantity units of productID. It reports whether the call
// succeeded; on failure the shared cart is left untouched.
func (s *CartState) AddToCart(ctx context.Context, productID string, quantity int) (bool, error) {
	return s.mutate(ctx, "add to cart", true, func(ctx context.Context, id CartIdentifier) (Cart, error) {
		return s.api.AddItem(ctx, id, productID, quantity)
	})
}

// UpdateQuantity sets the quantity of productID; zero removes the line
func (s *CartState) UpdateQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	return s.mutate(ctx, "update quantity", true, func(ctx context.Context, id CartIdentifier) (Cart, error) {
		return s.api.SetQuantity(ctx, id, productID, quantity)
	})
}

// RemoveFromCart removes productID from the cart
func (s *CartState) RemoveFromCart(ctx context.Context, productID string) (bool, error) {
	return s.mutate(ctx, "remove from cart", true, func(ctx context.Context, id CartIdentifier) (Cart, error) {
		return s.api.RemoveItem(ctx, id, productID)
	})
}

// RefreshCart re-reads the cart from the server. It is ordered with the
// mutations but does not mark the cart pending.
func (s *CartState) RefreshCart(ctx context.Context) (bool, error) {
	return s.mutate(ctx, "refresh cart", false, s.api.FetchCart)
}

// ClearCart resets the local cart to the empty default without contacting
// the server. Only used right after a confirmed payment.
func (s *CartState) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// anything issued before the clear is now stale
	s.applied = s.issued
	s.cart = EmptyCart()
	s.publishLocked()
}

// mutate issues one sequenced cart call. tracked calls count towards
// Pending while they are in flight.
func (s *CartState) mutate(ctx context.Context, op string, tracked bool, call func(context.Context, CartIdentifier) (Cart, error)) (bool, error) {
	s.mu.Lock()
	id := s.id
	if id == "" {
		s.mu.Unlock()
		s.log.Warn("Cart operation without cart", map[string]interface{}{"op": op})
		return false, ErrNoCart
	}
	s.issued++
	seq := s.issued
	if tracked {
		s.inFlight++
		s.publishLocked()
	}
	s.mu.Unlock()

	cart, err := call(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if tracked {
		s.inFlight--
	}

	if err != nil {
		s.publishLocked()
		s.log.Warn("Cart operation failed", map[string]interface{}{
			"op":      op,
			"cart_id": string(id),
			"error":   err.Error(),
		})
		return false, err
	}

	if seq <= s.applied {
		s.publishLocked()
		s.log.Debug("Discarding overtaken cart response", map[string]interface{}{
			"op":      op,
			"seq":     seq,
			"applied": s.applied,
		})
		return true, nil
	}

	s.applied = seq
	s.cart = cart.Clone()
	s.publishLocked()
	s.log.Debug("Cart replaced", map[string]interface{}{
		"op":         op,
		"cart_id":    string(id),
		"item_count": cart.ItemCount,
		"total":      cart.Total,
	})
	return true, nil
}

// Snapshot returns the current shared view
func (s *CartState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ID returns the current identifier, empty until a cart is known
func (s *CartState) ID() CartIdentifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Subscribe returns a channel that receives the current snapshot and every
// later change. A slow reader only ever holds the latest snapshot. Call the
// returned func to unsubscribe.
func (s *CartState) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, key)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

func (s *CartState) snapshotLocked() Snapshot {
	return Snapshot{
		ID:      s.id,
		Cart:    s.cart.Clone(),
		Pending: s.inFlight > 0,
		Phase:   s.phase,
	}
}

// publishLocked replaces whatever a subscriber has not read yet
func (s *CartState) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
