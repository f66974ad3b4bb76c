package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/store"
)

const (
	ctxKeyUser  = "currentUser"
	ctxKeyToken = "sessionToken"
)

func errorJSON(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

type cartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func toCartResponse(st *store.Store) cartResponse {
	snap := st.Snapshot()
	items := snap.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:     items,
		Total:     snap.Total,
		ItemCount: snap.ItemCount,
	}
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
	Count  int            `json:"count"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

func currentUser(c *gin.Context) *domain.User {
	u, _ := c.Get(ctxKeyUser)
	user, _ := u.(*domain.User)
	return user
}

func sessionToken(c *gin.Context) string {
	t, _ := c.Get(ctxKeyToken)
	token, _ := t.(string)
	return token
}

// sessionStore returns the cart/order store bound to the caller's session.
func sessionStore(c *gin.Context, deps Deps) *store.Store {
	return deps.Stores.Get(sessionToken(c))
}
