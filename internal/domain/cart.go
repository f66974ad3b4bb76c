package domain

import "github.com/shopspring/decimal"

// CartItem is a product in the active cart together with its quantity and
// the derived line subtotal (price * quantity).
type CartItem struct {
	Product
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CopyItems returns a value copy of a cart item slice so that later
// mutations of the source do not leak into order snapshots.
func CopyItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
