package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Products are immutable once listed.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category"`
	IsNew          bool            `json:"isNew"`
	IsOnSale       bool            `json:"isOnSale"`
	SalePercentage int             `json:"salePercentage"`
	Rating         float64         `json:"rating"`
}
