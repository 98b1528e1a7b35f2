package router

import (
	"github.com/labstack/echo/v4"

	"foodapp/internal/adapter/api/handler"
	"foodapp/internal/adapter/api/middleware"
)

type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Store     *handler.StoreHandler
	Food      *handler.FoodHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Review    *handler.ReviewHandler
	Chat      *handler.ChatHandler
	WebSocket *handler.WebSocketHandler
}

// Setup registers every route group on the echo instance.
func Setup(e *echo.Echo, h Handlers, authMW *middleware.AuthMiddleware) {
	e.GET("/health", h.Health.Check)

	v1 := e.Group("/v1")

	// Public routes.
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)

	v1.GET("/stores", h.Store.List)
	v1.GET("/stores/:id", h.Store.Get)
	v1.GET("/stores/:storeId/reviews", h.Review.ListByStore)
	v1.GET("/stores/:storeId/menus", h.Food.ListMenus)

	v1.GET("/foods", h.Food.List)
	v1.GET("/foods/:id", h.Food.Get)
	v1.GET("/foods/:foodId/reviews", h.Review.ListByFood)
	v1.GET("/categories", h.Food.ListCategories)

	// Authenticated routes.
	auth := v1.Group("", authMW.Authenticate)

	auth.POST("/auth/logout", h.Auth.Logout)
	auth.GET("/auth/me", h.Auth.Me)
	auth.PATCH("/auth/me", h.Auth.UpdateProfile)
	auth.POST("/auth/password", h.Auth.ChangePassword)

	auth.GET("/cart", h.Cart.Get)
	auth.POST("/cart/items", h.Cart.AddItem)
	auth.PATCH("/cart/items/:foodId", h.Cart.UpdateItem)
	auth.DELETE("/cart", h.Cart.Clear)

	auth.POST("/orders", h.Order.Checkout)
	auth.GET("/orders", h.Order.ListMine)
	auth.GET("/orders/:id", h.Order.Get)
	auth.PATCH("/orders/:id/status", h.Order.UpdateStatus)

	auth.POST("/reviews", h.Review.Create)

	setupChatRoutes(auth, h.Chat)
	setupStoreRoutes(auth, h)
	setupAdminRoutes(auth, h)

	// Websocket authenticates itself via query token.
	e.GET("/ws", h.WebSocket.Connect)
}

// setupStoreRoutes holds everything gated on the store role.
func setupStoreRoutes(g *echo.Group, h Handlers) {
	store := g.Group("/store", middleware.RequireStore)

	store.POST("/profile", h.Store.Create)
	store.PATCH("/profile/:id", h.Store.Update)

	store.POST("/foods", h.Food.Create)
	store.PATCH("/foods/:id", h.Food.Update)
	store.DELETE("/foods/:id", h.Food.Delete)

	store.POST("/menus", h.Food.CreateMenu)
	store.PATCH("/menus/:id", h.Food.UpdateMenu)
	store.DELETE("/menus/:id", h.Food.DeleteMenu)

	store.GET("/orders", h.Order.ListForStore)
	store.GET("/stats/revenue", h.Order.RevenueStats)
	store.GET("/stats/foods", h.Order.RevenueByFood)
}

func setupAdminRoutes(g *echo.Group, h Handlers) {
	admin := g.Group("/admin", middleware.RequireAdmin)

	admin.POST("/stores/:id/approve", h.Store.Approve)
}
