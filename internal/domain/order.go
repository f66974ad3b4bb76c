package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through the fulfillment lifecycle.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a status string from an external caller.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// next maps each status to the single forward step in the normal flow.
var next = map[OrderStatus]OrderStatus{
	OrderPending:    OrderProcessing,
	OrderProcessing: OrderShipped,
	OrderShipped:    OrderDelivered,
}

// CanTransition reports whether moving from one status to another is legal.
// The normal flow is one-directional (pending, processing, shipped,
// delivered); cancelled is reachable from any non-terminal state.
func CanTransition(from, to OrderStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	return next[from] == to
}

// PaymentStatus is the outcome of a payment attempt.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Address holds shipping address fields. All fields are required.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentInfo records how an order was paid.
type PaymentInfo struct {
	Method        string        `json:"method"`
	TransactionID string        `json:"transactionId,omitempty"`
	Status        PaymentStatus `json:"status"`
}

// Order is an immutable snapshot of a cart at checkout time. Items is a
// value copy taken at creation; later cart mutations never affect it.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	ShippingAddress Address         `json:"shippingAddress"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
}
