package httpserver

import (
	"net/http"
	"testing"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
)

const checkoutBody = `{
	"street": "1 Main St",
	"city": "Springfield",
	"state": "IL",
	"postalCode": "62701",
	"country": "US",
	"cardHolder": "Pat Jones",
	"cardNumber": "4242424242424242",
	"expiration": "12/49",
	"cvv": "123"
}`

func placeOrder(t *testing.T, env *testEnv) domain.Order {
	t.Helper()
	env.do(t, http.MethodPost, "/cart/items", `{"productId":"1"}`, true)
	rec := env.do(t, http.MethodPost, "/checkout", checkoutBody, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Order domain.Order `json:"order"`
	}
	decodeBody(t, rec, &resp)
	return resp.Order
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	if order.Status != domain.OrderPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if order.UserID != "u1" {
		t.Fatalf("wrong owner: %s", order.UserID)
	}

	var cart cartResponse
	rec := env.do(t, http.MethodGet, "/cart", "", true)
	decodeBody(t, rec, &cart)
	if cart.ItemCount != 0 {
		t.Fatal("cart not cleared after checkout")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/checkout", checkoutBody, true)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for empty cart, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutInvalidCard(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/cart/items", `{"productId":"1"}`, true)

	body := `{"street":"1 Main St","city":"Springfield","state":"IL","postalCode":"62701","country":"US","cardHolder":"Pat Jones","cardNumber":"1234","expiration":"12/49","cvv":"123"}`
	rec := env.do(t, http.MethodPost, "/checkout", body, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	rec := env.do(t, http.MethodGet, "/orders", "", true)
	var list ordersResponse
	decodeBody(t, rec, &list)
	if list.Count != 1 || list.Orders[0].ID != order.ID {
		t.Fatalf("unexpected order list: %+v", list)
	}

	rec = env.do(t, http.MethodGet, "/orders/"+order.ID, "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("get order: %d", rec.Code)
	}

	// Forward transitions succeed, skipping a step conflicts.
	rec = env.do(t, http.MethodPut, "/orders/"+order.ID+"/status", `{"status":"shipped"}`, true)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for pending->shipped, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPut, "/orders/"+order.ID+"/status", `{"status":"processing"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("pending->processing: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPut, "/orders/"+order.ID+"/status", `{"status":"teleported"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/orders/"+order.ID+"/cancel", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: %d", rec.Code)
	}
	var resp struct {
		Order domain.Order `json:"order"`
	}
	decodeBody(t, rec, &resp)
	if resp.Order.Status != domain.OrderCancelled {
		t.Fatalf("expected cancelled, got %s", resp.Order.Status)
	}

	// Cancelled is terminal.
	rec = env.do(t, http.MethodPost, "/orders/"+order.ID+"/cancel", "", true)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 cancelling a cancelled order, got %d", rec.Code)
	}
}

func TestGetOrderHidesOtherUsers(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env)

	// Same session, different authenticated user.
	env.identity.user = &domain.User{ID: "u2", Email: "other@example.com"}
	rec := env.do(t, http.MethodGet, "/orders/"+order.ID, "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign order, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/orders", "", true)
	var list ordersResponse
	decodeBody(t, rec, &list)
	if list.Count != 0 {
		t.Fatalf("expected no visible orders, got %d", list.Count)
	}
}

func TestUnknownOrderIs404(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/orders/missing", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPut, "/orders/missing/status", `{"status":"processing"}`, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
