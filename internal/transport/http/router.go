package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lustrahome/shop/internal/handlers"
	"github.com/lustrahome/shop/internal/service/token"
)

type Deps struct {
	DB               *gorm.DB
	AuthHandler      *handlers.AuthHandler
	ProductHandler   *handlers.ProductHandler
	CatalogHandler   *handlers.CatalogHandler
	CartHandler      *handlers.CartHandler
	FavoritesHandler *handlers.FavoritesHandler
	OrderHandler     *handlers.OrderHandler
	ChatHandler      *handlers.ChatHandler
	SearchHandler    *handlers.SearchHandler
	ServiceHandler   *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut)

	v1.GET("/search", d.SearchHandler.Search)
	v1.GET("/catalog", d.CatalogHandler.GetCatalog)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	chat := v1.Group("/chat")
	chat.POST("/sessions", d.ChatHandler.StartSession)
	chat.GET("/sessions/:id/messages", d.ChatHandler.GetMessages)
	chat.POST("/sessions/:id/messages", d.ChatHandler.PostMessage)

	authed := v1.Group("", d.ServiceHandler.AutoRefreshMiddleware)

	authed.GET("/cart", d.CartHandler.GetCart)
	authed.POST("/cart", d.CartHandler.AddToCart)
	authed.PATCH("/cart", d.CartHandler.UpdateQuantity)
	authed.DELETE("/cart", d.CartHandler.ClearCart)
	authed.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)

	authed.GET("/favorites", d.FavoritesHandler.GetFavorites)
	authed.POST("/favorites", d.FavoritesHandler.ToggleFavorite)

	authed.POST("/orders", d.OrderHandler.MakeOrder)

	admin := v1.Group("/admin", d.ServiceHandler.AutoRefreshMiddlewareAdmin)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.GET("/orders", d.OrderHandler.GetOrders)
	admin.GET("/orders/:id", d.OrderHandler.GetOrder)
	admin.PATCH("/orders/:id", d.OrderHandler.UpdateOrderStatus)

	admin.GET("/chat/sessions", d.ChatHandler.ListSessions)
	admin.POST("/chat/sessions/:id/reply", d.ChatHandler.Reply)
}
