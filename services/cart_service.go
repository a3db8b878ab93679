package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/climbsoft/climb-delivery-api/models"
)

// CartService owns the authoritative in-memory cart for one ordering session.
// Every mutation recomputes the derived totals synchronously, notifies
// subscribers, and writes the full snapshot to the cart store. Store writes
// are best-effort: a failed write is logged and never rolls back the
// in-memory mutation.
type CartService struct {
	sessionID   string
	cart        models.Cart
	store       CartStore
	subscribers []func(models.Cart)
	submitting  bool
	mu          sync.Mutex
}

// NewCartService creates a cart service for the session, restoring the last
// persisted snapshot. A snapshot that is missing or fails to decode is
// discarded silently and the session starts with an empty cart.
func NewCartService(store CartStore, sessionID string) *CartService {
	svc := &CartService{
		sessionID: sessionID,
		cart:      models.NewCart(),
		store:     store,
	}

	if store != nil {
		cart, ok, err := store.Load(context.Background(), sessionID)
		if err != nil {
			log.Printf("warning: discarding unreadable cart snapshot for session %s: %v", sessionID, err)
		} else if ok {
			cart.Recalculate()
			svc.cart = cart
		}
	}
	return svc
}

// SessionID returns the session this cart belongs to
func (s *CartService) SessionID() string {
	return s.sessionID
}

// Cart returns a snapshot of the current cart
func (s *CartService) Cart() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Subscribe registers a callback invoked with a snapshot after every mutation
func (s *CartService) Subscribe(fn func(models.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AddLine validates and appends a new line for the product. Selections must
// satisfy every referenced additive group's bounds and every required group's
// minimum; on any violation the cart is left untouched.
func (s *CartService) AddLine(product models.Product, quantity int, selections []models.CartSelection, note string) (models.CartLine, error) {
	if quantity < 1 {
		return models.CartLine{}, models.NewValidationError("quantity", "quantity must be at least 1")
	}
	if !product.Available {
		return models.CartLine{}, models.NewValidationError("product", fmt.Sprintf("product %q is not available", product.Name))
	}
	if err := validateSelections(product, selections); err != nil {
		return models.CartLine{}, err
	}

	line := models.CartLine{
		ID: uuid.NewString(),
		Product: models.ProductSnapshot{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
		},
		Quantity:   quantity,
		Note:       note,
		Selections: selections,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Lines = append(s.cart.Lines, line)
	s.afterMutation()
	return s.cart.Lines[len(s.cart.Lines)-1], nil
}

// RemoveLine removes the line with the given id, or returns NotFoundError
// when it is no longer in the cart
func (s *CartService) RemoveLine(lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.cart.Lines {
		if line.ID == lineID {
			s.cart.Lines = append(s.cart.Lines[:i], s.cart.Lines[i+1:]...)
			s.afterMutation()
			return nil
		}
	}
	return models.NewNotFoundError("cart line", lineID)
}

// UpdateLineQuantity changes the quantity of an existing line
func (s *CartService) UpdateLineQuantity(lineID string, quantity int) error {
	if quantity < 1 {
		return models.NewValidationError("quantity", "quantity must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart.Lines {
		if s.cart.Lines[i].ID == lineID {
			s.cart.Lines[i].Quantity = quantity
			s.afterMutation()
			return nil
		}
	}
	return models.NewNotFoundError("cart line", lineID)
}

// SetDeliveryFee overwrites the delivery fee and recomputes the total
func (s *CartService) SetDeliveryFee(fee float64) error {
	if fee < 0 {
		return models.NewValidationError("delivery_fee", "delivery fee cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.DeliveryFee = fee
	s.afterMutation()
	return nil
}

// Clear resets the session to an empty cart
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = models.NewCart()
	s.afterMutation()
}

// BeginSubmit marks an order submission as in flight. A second submission
// attempted while one is pending is rejected, not queued.
func (s *CartService) BeginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return models.ErrSubmitInFlight
	}
	if len(s.cart.Lines) == 0 {
		return models.NewValidationError("cart", "cannot submit an empty cart")
	}
	s.submitting = true
	return nil
}

// FinishSubmit clears the in-flight flag. On success the cart is emptied;
// on failure it is left intact so the customer can retry.
func (s *CartService) FinishSubmit(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitting = false
	if success {
		s.cart = models.NewCart()
		s.afterMutation()
	}
}

// afterMutation recomputes totals, notifies subscribers and persists the
// snapshot. Callers must hold the mutex.
func (s *CartService) afterMutation() {
	s.cart.Recalculate()
	snapshot := s.cart.Clone()

	for _, fn := range s.subscribers {
		fn(snapshot)
	}

	if s.store != nil {
		if err := s.store.Save(context.Background(), s.sessionID, snapshot); err != nil {
			log.Printf("warning: failed to persist cart snapshot for session %s: %v", s.sessionID, err)
		}
	}
}

// validateSelections checks the committed selections against the product's
// additive groups: each referenced group must belong to the product, each
// additive to its group, selection counts must respect the group bounds, and
// every required (or minimum-bearing) group must reach its minimum.
func validateSelections(product models.Product, selections []models.CartSelection) error {
	groups := make(map[uint]models.AdditiveGroup, len(product.AdditiveGroups))
	for _, pg := range product.AdditiveGroups {
		groups[pg.AdditiveGroupID] = pg.AdditiveGroup
	}

	counts := make(map[uint]int, len(selections))
	for _, sel := range selections {
		g, ok := groups[sel.GroupID]
		if !ok {
			return models.NewValidationError("selections", fmt.Sprintf("product %q does not offer additive group %d", product.Name, sel.GroupID))
		}

		seen := make(map[uint]bool, len(sel.Additives))
		for _, a := range sel.Additives {
			if !groupHasAdditive(g, a.AdditiveID) {
				return models.NewValidationError("selections", fmt.Sprintf("additive %d does not belong to group %q", a.AdditiveID, g.Name))
			}
			if seen[a.AdditiveID] {
				return models.NewValidationError("selections", fmt.Sprintf("additive %d selected twice in group %q", a.AdditiveID, g.Name))
			}
			seen[a.AdditiveID] = true
		}

		counts[sel.GroupID] += len(sel.Additives)
		if g.Mode == models.SelectionSingle && counts[sel.GroupID] > 1 {
			return models.NewValidationError(g.Name, fmt.Sprintf("group %q allows only one selection", g.Name))
		}
		if counts[sel.GroupID] > g.MaxSelect {
			return models.NewValidationError(g.Name, fmt.Sprintf("group %q allows at most %d selection(s)", g.Name, g.MaxSelect))
		}
	}

	for _, g := range groups {
		min := g.MinSelect
		if g.Required && min == 0 {
			min = 1
		}
		if min > 0 && counts[g.ID] < min {
			return models.NewValidationError(g.Name, fmt.Sprintf("group %q requires at least %d selection(s)", g.Name, min))
		}
	}
	return nil
}

func groupHasAdditive(g models.AdditiveGroup, additiveID uint) bool {
	for _, a := range g.Additives {
		if a.ID == additiveID {
			return true
		}
	}
	return false
}
