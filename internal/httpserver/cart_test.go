package httpserver

import (
	"net/http"
	"testing"
)

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)

	// Empty cart to start.
	rec := env.do(t, http.MethodGet, "/cart", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("get cart: %d", rec.Code)
	}
	var cart cartResponse
	decodeBody(t, rec, &cart)
	if cart.ItemCount != 0 || len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}

	// Add the same product twice: one entry, quantity 2.
	env.do(t, http.MethodPost, "/cart/items", `{"productId":"1"}`, true)
	rec = env.do(t, http.MethodPost, "/cart/items", `{"productId":"1"}`, true)
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("expected merged entry with quantity 2, got %+v", cart.Items)
	}
	if cart.Total.String() != "25.98" || cart.ItemCount != 2 {
		t.Fatalf("wrong aggregates: total=%s count=%d", cart.Total, cart.ItemCount)
	}

	// Unknown products are rejected before touching the cart.
	rec = env.do(t, http.MethodPost, "/cart/items", `{"productId":"999"}`, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}

	// Set quantity directly.
	rec = env.do(t, http.MethodPut, "/cart/items/1", `{"quantity":5}`, true)
	decodeBody(t, rec, &cart)
	if cart.ItemCount != 5 {
		t.Fatalf("expected count 5, got %d", cart.ItemCount)
	}

	rec = env.do(t, http.MethodPut, "/cart/items/1", `{"quantity":0}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", rec.Code)
	}

	// Increment and decrement.
	rec = env.do(t, http.MethodPost, "/cart/items/1/increment", "", true)
	decodeBody(t, rec, &cart)
	if cart.ItemCount != 6 {
		t.Fatalf("expected count 6 after increment, got %d", cart.ItemCount)
	}
	rec = env.do(t, http.MethodPost, "/cart/items/1/decrement", "", true)
	decodeBody(t, rec, &cart)
	if cart.ItemCount != 5 {
		t.Fatalf("expected count 5 after decrement, got %d", cart.ItemCount)
	}

	// Mutations on absent ids leave the cart unchanged.
	rec = env.do(t, http.MethodPost, "/cart/items/999/increment", "", true)
	decodeBody(t, rec, &cart)
	if cart.ItemCount != 5 {
		t.Fatalf("increment on absent id changed the cart: %+v", cart)
	}

	// Remove, then clear.
	env.do(t, http.MethodPost, "/cart/items", `{"productId":"2"}`, true)
	rec = env.do(t, http.MethodDelete, "/cart/items/1", "", true)
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 1 || cart.Items[0].ID != "2" {
		t.Fatalf("unexpected cart after remove: %+v", cart.Items)
	}

	rec = env.do(t, http.MethodDelete, "/cart", "", true)
	decodeBody(t, rec, &cart)
	if cart.ItemCount != 0 || cart.Total.String() != "0" {
		t.Fatalf("cart not cleared: %+v", cart)
	}
}

func TestCartDecrementRemovesLastUnit(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/cart/items", `{"productId":"3"}`, true)
	rec := env.do(t, http.MethodPost, "/cart/items/3/decrement", "", true)

	var cart cartResponse
	decodeBody(t, rec, &cart)
	if len(cart.Items) != 0 || cart.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}
