package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/catalog"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
)

func listProductsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.Query{
			Category: c.Query("category"),
			Search:   c.Query("q"),
			Sort:     c.DefaultQuery("sort", catalog.SortFeatured),
		}

		var err error
		if q.MinPrice, err = priceParam(c, "minPrice"); err != nil {
			errorJSON(c, http.StatusBadRequest, "minPrice must be a decimal number")
			return
		}
		if q.MaxPrice, err = priceParam(c, "maxPrice"); err != nil {
			errorJSON(c, http.StatusBadRequest, "maxPrice must be a decimal number")
			return
		}
		if q.NewOnly, err = boolParam(c, "new"); err != nil {
			errorJSON(c, http.StatusBadRequest, "new must be true or false")
			return
		}
		if q.SaleOnly, err = boolParam(c, "sale"); err != nil {
			errorJSON(c, http.StatusBadRequest, "sale must be true or false")
			return
		}

		products := deps.Catalog.List(q)
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, productsResponse{Products: products, Count: len(products)})
	}
}

func getProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := deps.Catalog.Get(c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				errorJSON(c, http.StatusNotFound, "product not found")
				return
			}
			errorJSON(c, http.StatusInternalServerError, "catalog unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func listCategoriesHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats := deps.Catalog.Categories()
		if cats == nil {
			cats = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

func priceParam(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func boolParam(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
