package checkout

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/store"
)

func validInput() Input {
	return Input{
		Street:     "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
		CardHolder: "Pat Jones",
		CardNumber: "4242424242424242",
		Expiration: "12/49",
		CVV:        "123",
	}
}

func cartWith(price string) *store.Store {
	st := store.New()
	st.AddProduct(domain.Product{ID: "1", Name: "Premium Notebook", Price: decimal.RequireFromString(price)})
	return st
}

func TestPlaceOrderValidation(t *testing.T) {
	svc := New(0, nil)
	st := cartWith("12.99")

	cases := []struct {
		name   string
		mutate func(*Input)
		want   string
	}{
		{"missing street", func(in *Input) { in.Street = " " }, "street is required"},
		{"missing country", func(in *Input) { in.Country = "" }, "country is required"},
		{"short cardholder", func(in *Input) { in.CardHolder = "X" }, "cardholder"},
		{"bad card number", func(in *Input) { in.CardNumber = "1234" }, "16 digits"},
		{"bad expiration", func(in *Input) { in.Expiration = "13/25" }, "MM/YY"},
		{"expired card", func(in *Input) { in.Expiration = "01/20" }, "expired"},
		{"bad cvv", func(in *Input) { in.CVV = "12" }, "cvv"},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		_, err := svc.PlaceOrder(context.Background(), st, "u1", in)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}

	// Validation failures must not touch the cart.
	if st.ItemCount() != 1 {
		t.Fatalf("cart mutated by failed validation")
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := New(0, nil)
	if _, err := svc.PlaceOrder(context.Background(), store.New(), "u1", validInput()); err != domain.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	svc := New(0, nil)
	st := cartWith("12.99")
	st.AddProduct(domain.Product{ID: "1", Name: "Premium Notebook", Price: decimal.RequireFromString("12.99")})

	order, err := svc.PlaceOrder(context.Background(), st, "u1", validInput())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.UserID != "u1" {
		t.Fatalf("wrong owner: %s", order.UserID)
	}
	if !order.Total.Equal(decimal.RequireFromString("25.98")) {
		t.Fatalf("wrong total: %s", order.Total)
	}
	if order.PaymentInfo.Status != domain.PaymentCompleted || order.PaymentInfo.Method != "credit_card" {
		t.Fatalf("unexpected payment info: %+v", order.PaymentInfo)
	}
	if !strings.HasPrefix(order.PaymentInfo.TransactionID, "tr_") {
		t.Fatalf("unexpected transaction id: %s", order.PaymentInfo.TransactionID)
	}

	// The cart is cleared after checkout; the order keeps its snapshot.
	if st.ItemCount() != 0 {
		t.Fatal("cart not cleared")
	}
	stored, err := st.GetOrderByID(order.ID)
	if err != nil {
		t.Fatalf("order not in store: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", stored.Items)
	}
}

func TestPlaceOrderHonorsContextDuringPayment(t *testing.T) {
	svc := New(5*time.Second, nil)
	st := cartWith("12.99")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.PlaceOrder(ctx, st, "u1", validInput()); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if st.ItemCount() != 1 {
		t.Fatal("cart mutated by cancelled checkout")
	}
}
