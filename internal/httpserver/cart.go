package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
)

func getCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, toCartResponse(sessionStore(c, deps)))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func addCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errorJSON(c, http.StatusBadRequest, "productId is required")
			return
		}

		product, err := deps.Catalog.Get(in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				errorJSON(c, http.StatusNotFound, "product not found")
				return
			}
			errorJSON(c, http.StatusInternalServerError, "catalog unavailable")
			return
		}

		st := sessionStore(c, deps)
		st.AddProduct(product)
		c.JSON(http.StatusOK, toCartResponse(st))
	}
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in updateItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errorJSON(c, http.StatusBadRequest, "quantity is required")
			return
		}

		st := sessionStore(c, deps)
		if err := st.UpdateQuantity(c.Param("id"), in.Quantity); err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, toCartResponse(st))
	}
}

// Removal and quantity bumps on ids that are not in the cart are no-ops;
// the handler still returns the (unchanged) cart.
func removeCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := sessionStore(c, deps)
		st.RemoveProduct(c.Param("id"))
		c.JSON(http.StatusOK, toCartResponse(st))
	}
}

func incrCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := sessionStore(c, deps)
		st.IncrQuantity(c.Param("id"))
		c.JSON(http.StatusOK, toCartResponse(st))
	}
}

func decrCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := sessionStore(c, deps)
		st.DecrQuantity(c.Param("id"))
		c.JSON(http.StatusOK, toCartResponse(st))
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := sessionStore(c, deps)
		st.ClearCart()
		c.JSON(http.StatusOK, toCartResponse(st))
	}
}
