package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/catalog"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/service/checkout"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/service/identity"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/store"
)

type identityService interface {
	Signup(ctx context.Context, in identity.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	SessionTTLSeconds() int
}

type checkoutService interface {
	PlaceOrder(ctx context.Context, st *store.Store, userID string, in checkout.Input) (*domain.Order, error)
}

type productCatalog interface {
	Get(id string) (domain.Product, error)
	List(q catalog.Query) []domain.Product
	Categories() []string
}

// Deps carries the services the router wires handlers to.
type Deps struct {
	Identity identityService
	Checkout checkoutService
	Catalog  productCatalog
	Stores   *store.Manager
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Identity == nil || deps.Checkout == nil || deps.Catalog == nil || deps.Stores == nil {
		return nil, errors.New("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	auth := router.Group("/auth")
	{
		auth.POST("/signup", signupHandler(deps))
		auth.POST("/login", loginHandler(deps))
		auth.POST("/logout", authRequired(deps), logoutHandler(deps))
		auth.GET("/me", authRequired(deps), meHandler())
	}

	router.GET("/products", listProductsHandler(deps))
	router.GET("/products/:id", getProductHandler(deps))
	router.GET("/categories", listCategoriesHandler(deps))

	cart := router.Group("/cart", authRequired(deps))
	{
		cart.GET("", getCartHandler(deps))
		cart.DELETE("", clearCartHandler(deps))
		cart.POST("/items", addCartItemHandler(deps))
		cart.PUT("/items/:id", updateCartItemHandler(deps))
		cart.DELETE("/items/:id", removeCartItemHandler(deps))
		cart.POST("/items/:id/increment", incrCartItemHandler(deps))
		cart.POST("/items/:id/decrement", decrCartItemHandler(deps))
	}

	router.POST("/checkout", authRequired(deps), checkoutHandler(deps))

	orders := router.Group("/orders", authRequired(deps))
	{
		orders.GET("", listOrdersHandler(deps))
		orders.GET("/:id", getOrderHandler(deps))
		orders.PUT("/:id/status", updateOrderStatusHandler(deps))
		orders.POST("/:id/cancel", cancelOrderHandler(deps))
	}

	return router, nil
}
