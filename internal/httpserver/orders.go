package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/service/checkout"
)

func checkoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid request body")
			return
		}

		st := sessionStore(c, deps)
		order, err := deps.Checkout.PlaceOrder(c.Request.Context(), st, currentUser(c).ID, in)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCart) {
				errorJSON(c, http.StatusConflict, "cart is empty")
				return
			}
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

func listOrdersHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := sessionStore(c, deps)
		orders := st.GetUserOrders(currentUser(c).ID)
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, ordersResponse{Orders: orders, Count: len(orders)})
	}
}

// ownedOrder fetches an order and hides other users' orders behind 404.
func ownedOrder(c *gin.Context, deps Deps) (domain.Order, bool) {
	st := sessionStore(c, deps)
	order, err := st.GetOrderByID(c.Param("id"))
	if err != nil || order.UserID != currentUser(c).ID {
		errorJSON(c, http.StatusNotFound, "order not found")
		return domain.Order{}, false
	}
	return order, true
}

func getOrderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := ownedOrder(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateOrderStatusHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in updateStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errorJSON(c, http.StatusBadRequest, "status is required")
			return
		}
		status, err := domain.ParseOrderStatus(in.Status)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid order status")
			return
		}

		order, ok := ownedOrder(c, deps)
		if !ok {
			return
		}

		st := sessionStore(c, deps)
		if err := st.UpdateOrderStatus(order.ID, status); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				errorJSON(c, http.StatusConflict, "order cannot move from "+string(order.Status)+" to "+string(status))
				return
			}
			errorJSON(c, http.StatusInternalServerError, "order update failed")
			return
		}

		updated, _ := st.GetOrderByID(order.ID)
		c.JSON(http.StatusOK, gin.H{"order": updated})
	}
}

func cancelOrderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := ownedOrder(c, deps)
		if !ok {
			return
		}

		st := sessionStore(c, deps)
		if err := st.CancelOrder(order.ID); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				errorJSON(c, http.StatusConflict, "order is already "+string(order.Status))
				return
			}
			errorJSON(c, http.StatusInternalServerError, "order cancel failed")
			return
		}

		updated, _ := st.GetOrderByID(order.ID)
		c.JSON(http.StatusOK, gin.H{"order": updated})
	}
}
