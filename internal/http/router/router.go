// Package router assembles the gin engine: middleware chain, public
// storefront routes, the signed-in account area and the token-guarded
// content admin endpoints.
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/guestcookie"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/handlers"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/auth"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
)

// Deps is everything the route table needs.
type Deps struct {
	Log     *slog.Logger
	Flashes *flash.Codec
	Guests  *guestcookie.Codec
	Auth    *auth.Service
	Carts   *cart.Manager

	SessionCookieName string
	Secure            bool
	AdminToken        string

	Home      *handlers.HomeHandler
	Catalog   *handlers.CatalogHandler
	Product   *handlers.ProductHandler
	Cart      *handlers.CartHandler
	Checkout  *handlers.CheckoutHandler
	AuthH     *handlers.AuthHandler
	Orders    *handlers.OrdersHandler
	Favorites *handlers.FavoritesHandler
	Blog      *handlers.BlogHandler
	Partners  *handlers.PartnersHandler
}

func New(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.Logger(d.Log),
		middleware.ErrorHandler(d.Log, d.Flashes),
		middleware.Session(d.Auth, d.SessionCookieName, d.Secure, d.Guests, d.Log),
		middleware.Flash(d.Flashes),
		middleware.CartCount(d.Carts),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", d.Home.Show)

	r.GET("/catalog", d.Catalog.List)
	r.GET("/catalog/search", d.Catalog.Search)
	r.GET("/products/:slug", d.Product.Show)

	r.GET("/cart", d.Cart.Show)
	r.POST("/cart/items", d.Cart.Add)
	r.POST("/cart/items/:id", d.Cart.UpdateQuantity)
	r.POST("/cart/items/:id/delete", d.Cart.Remove)
	r.POST("/cart/clear", d.Cart.Clear)
	r.POST("/cart/promo", d.Cart.ApplyPromo)
	r.POST("/cart/promo/delete", d.Cart.RemovePromo)

	r.POST("/login", d.AuthH.Login)
	r.POST("/logout", d.AuthH.Logout)

	r.GET("/blog", d.Blog.List)
	r.GET("/blog/:slug", d.Blog.Show)
	r.GET("/partners", d.Partners.List)
	r.GET("/partners/:slug", d.Partners.Show)

	account := r.Group("/", middleware.RequireAuth(d.Flashes))
	{
		account.GET("/checkout", d.Checkout.Show)
		account.POST("/checkout", d.Checkout.Submit)
		account.GET("/account/orders", d.Orders.List)
		account.GET("/favorites", d.Favorites.List)
		account.POST("/favorites/:productID", d.Favorites.Add)
		account.POST("/favorites/:productID/delete", d.Favorites.Remove)
	}

	admin := r.Group("/admin", middleware.RequireAdmin(d.AdminToken))
	{
		admin.POST("/blog", d.Blog.Create)
		admin.POST("/partners", d.Partners.Create)
	}

	return r
}
