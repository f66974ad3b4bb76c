// Package store holds the in-memory cart and order state for one client
// session. A Store is created at session start, mutated by user actions,
// and discarded at session end; nothing in it survives the session.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
)

// Observer receives a state snapshot after every mutation. Observers are
// invoked synchronously inside the mutation's critical section and must not
// call back into the Store.
type Observer func(Snapshot)

// Snapshot is a consistent read of the store at one point in time.
type Snapshot struct {
	Items        []domain.CartItem
	Total        decimal.Decimal
	ItemCount    int
	Orders       []domain.Order
	CurrentOrder *domain.Order
}

// OrderDraft carries everything the caller supplies to create an order.
type OrderDraft struct {
	UserID          string
	Items           []domain.CartItem
	Total           decimal.Decimal
	ShippingAddress domain.Address
	PaymentInfo     domain.PaymentInfo
}

// Store keeps cart items in insertion order and orders in creation order.
// The aggregates (total, itemCount) are recomputed in the same critical
// section as every item mutation, so readers never observe them out of sync
// with the item list. All lookups are linear scans; carts hold tens of
// items at most.
type Store struct {
	mu             sync.Mutex
	items          []domain.CartItem
	total          decimal.Decimal
	itemCount      int
	orders         []domain.Order
	currentOrderID string
	observers      []Observer
	lastStamp      time.Time
	now            func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		total: decimal.Zero,
		now:   time.Now,
	}
}

// Subscribe registers an observer notified on every mutation.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Store) notifyLocked() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, fn := range s.observers {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Items:     domain.CopyItems(s.items),
		Total:     s.total,
		ItemCount: s.itemCount,
		Orders:    copyOrders(s.orders),
	}
	if o, ok := s.findOrderLocked(s.currentOrderID); ok {
		cp := *o
		cp.Items = domain.CopyItems(o.Items)
		snap.CurrentOrder = &cp
	}
	return snap
}

// Snapshot returns a consistent copy of the full store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// stamp returns a timestamp that strictly advances between calls, so two
// orders created back to back never share a creation time.
func (s *Store) stamp() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Nanosecond)
	}
	s.lastStamp = t
	return t
}

func (s *Store) findItemLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddProduct puts a product in the cart. Adding a product that is already
// present increments its quantity instead of appending a duplicate entry.
func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.findItemLocked(p.ID); i >= 0 {
		s.items[i].Quantity++
		s.items[i].Subtotal = s.items[i].Price.Mul(decimal.NewFromInt(int64(s.items[i].Quantity)))
	} else {
		s.items = append(s.items, domain.CartItem{
			Product:  p,
			Quantity: 1,
			Subtotal: p.Price,
		})
	}
	s.itemCount++
	s.total = s.total.Add(p.Price)
	s.notifyLocked()
}

// RemoveProduct drops a cart item entirely. Unknown ids are a no-op.
func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findItemLocked(id)
	if i < 0 {
		return
	}
	item := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.itemCount -= item.Quantity
	s.total = s.total.Sub(item.Subtotal)
	s.notifyLocked()
}

// IncrQuantity raises an item's quantity by one. Unknown ids are a no-op.
func (s *Store) IncrQuantity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findItemLocked(id)
	if i < 0 {
		return
	}
	s.items[i].Quantity++
	s.items[i].Subtotal = s.items[i].Price.Mul(decimal.NewFromInt(int64(s.items[i].Quantity)))
	s.itemCount++
	s.total = s.total.Add(s.items[i].Price)
	s.notifyLocked()
}

// DecrQuantity lowers an item's quantity by one; an item at quantity 1 is
// removed rather than kept at zero. Unknown ids are a no-op.
func (s *Store) DecrQuantity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findItemLocked(id)
	if i < 0 {
		return
	}
	price := s.items[i].Price
	if s.items[i].Quantity == 1 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity--
		s.items[i].Subtotal = price.Mul(decimal.NewFromInt(int64(s.items[i].Quantity)))
	}
	s.itemCount--
	s.total = s.total.Sub(price)
	s.notifyLocked()
}

// UpdateQuantity sets an item's quantity directly. Quantities below 1 are
// rejected with domain.ErrInvalidQuantity; unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findItemLocked(id)
	if i < 0 {
		return nil
	}
	diff := quantity - s.items[i].Quantity
	s.items[i].Quantity = quantity
	s.items[i].Subtotal = s.items[i].Price.Mul(decimal.NewFromInt(int64(quantity)))
	s.itemCount += diff
	s.total = s.total.Add(s.items[i].Price.Mul(decimal.NewFromInt(int64(diff))))
	s.notifyLocked()
	return nil
}

// GetProduct returns the cart item for a product id, or domain.ErrNotFound.
func (s *Store) GetProduct(id string) (domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.findItemLocked(id); i >= 0 {
		return s.items[i], nil
	}
	return domain.CartItem{}, domain.ErrNotFound
}

// IsInCart reports whether a product is in the cart.
func (s *Store) IsInCart(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findItemLocked(id) >= 0
}

// ClearCart resets the cart to its empty state. Orders are untouched.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.total = decimal.Zero
	s.itemCount = 0
	s.notifyLocked()
}

// Items returns a copy of the cart items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CopyItems(s.items)
}

// Total returns the aggregate cart total.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ItemCount returns the sum of all item quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCount
}

// CreateOrder materializes a draft into a pending order, appends it to the
// order list and marks it current. The draft's item slice is copied so the
// stored order stays independent of the caller's (and the cart's) slice.
func (s *Store) CreateOrder(draft OrderDraft) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          draft.UserID,
		Items:           domain.CopyItems(draft.Items),
		Total:           draft.Total,
		Status:          domain.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		ShippingAddress: draft.ShippingAddress,
		PaymentInfo:     draft.PaymentInfo,
	}
	s.orders = append(s.orders, order)
	s.currentOrderID = order.ID
	s.notifyLocked()

	order.Items = domain.CopyItems(order.Items)
	return order
}

func (s *Store) findOrderLocked(id string) (*domain.Order, bool) {
	if id == "" {
		return nil, false
	}
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], true
		}
	}
	return nil, false
}

// UpdateOrderStatus moves an order to a new status, stamping UpdatedAt.
// Unknown ids are a no-op; illegal transitions return
// domain.ErrInvalidTransition and leave the order untouched.
func (s *Store) UpdateOrderStatus(orderID string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.findOrderLocked(orderID)
	if !ok {
		return nil
	}
	if !domain.CanTransition(o.Status, status) {
		return domain.ErrInvalidTransition
	}
	o.Status = status
	o.UpdatedAt = s.stamp()
	s.notifyLocked()
	return nil
}

// CancelOrder moves an order to cancelled. Terminal orders reject the
// transition; unknown ids are a no-op.
func (s *Store) CancelOrder(orderID string) error {
	return s.UpdateOrderStatus(orderID, domain.OrderCancelled)
}

// GetOrderByID returns a copy of the matching order.
func (s *Store) GetOrderByID(orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.findOrderLocked(orderID)
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	cp := *o
	cp.Items = domain.CopyItems(o.Items)
	return cp, nil
}

// GetUserOrders returns the orders owned by a user, in creation order.
func (s *Store) GetUserOrders(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Order
	for i := range s.orders {
		if s.orders[i].UserID != userID {
			continue
		}
		cp := s.orders[i]
		cp.Items = domain.CopyItems(cp.Items)
		out = append(out, cp)
	}
	return out
}

// Orders returns a copy of every order, in creation order.
func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyOrders(s.orders)
}

// CurrentOrder returns the most recently created or explicitly selected
// order, if any.
func (s *Store) CurrentOrder() (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.findOrderLocked(s.currentOrderID)
	if !ok {
		return domain.Order{}, false
	}
	cp := *o
	cp.Items = domain.CopyItems(o.Items)
	return cp, true
}

// SetCurrentOrder selects an existing order as current.
func (s *Store) SetCurrentOrder(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findOrderLocked(orderID); !ok {
		return domain.ErrNotFound
	}
	s.currentOrderID = orderID
	s.notifyLocked()
	return nil
}

// ClearCurrentOrder drops the current order selection.
func (s *Store) ClearCurrentOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentOrderID = ""
	s.notifyLocked()
}

func copyOrders(orders []domain.Order) []domain.Order {
	if orders == nil {
		return nil
	}
	out := make([]domain.Order, len(orders))
	for i := range orders {
		out[i] = orders[i]
		out[i].Items = domain.CopyItems(orders[i].Items)
	}
	return out
}
