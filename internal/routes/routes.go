package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/controllers/account"
	"storefront/internal/controllers/cart"
	"storefront/internal/controllers/catalog"
	"storefront/internal/controllers/checkout"
	"storefront/internal/controllers/order"
	"storefront/internal/controllers/review"
	"storefront/internal/controllers/wishlist"
	"storefront/internal/middleware"
	"storefront/internal/payment"
)

// SetupRoutes is the single entry-point wiring every route group.
// Everything that mutates state is a POST (or PUT/DELETE) behind the
// session middleware; the webhook sits behind signature verification
// instead.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, gateway *payment.Client) {
	// public
	r.POST("/register", account.Register(db))
	r.POST("/login", account.Login(db))
	r.POST("/logout", account.Logout())

	r.GET("/products", catalog.List(db))
	r.GET("/products/:id", catalog.Detail(db))
	r.GET("/products/:id/reviews", review.ListForProduct(db))

	r.GET("/checkout/success", checkout.Success())
	r.GET("/checkout/cancel", checkout.Cancel())

	// payment gateway notifications
	r.POST("/payments/webhook",
		middleware.WebhookAuth(cfg.GatewayWebhookSecret),
		checkout.Webhook(db))

	// session-scoped
	auth := r.Group("/")
	auth.Use(middleware.RequireCustomer(db))
	{
		auth.GET("/me", account.Me())

		auth.GET("/cart", cart.View(db))
		auth.POST("/cart/add/:productID", cart.Add(db, cfg))
		auth.POST("/cart/increment/:itemID", cart.IncrementItem(db))
		auth.POST("/cart/decrement/:itemID", cart.DecrementItem(db))
		auth.POST("/cart/remove/:itemID", cart.RemoveItem(db))

		auth.POST("/checkout", checkout.Begin(db, cfg, gateway))

		auth.GET("/orders", order.History(db))
		auth.GET("/orders/:orderID", order.Detail(db))

		auth.GET("/wishlists", wishlist.List(db))
		auth.POST("/wishlists", wishlist.Create(db))
		auth.GET("/wishlists/:id", wishlist.Get(db))
		auth.PUT("/wishlists/:id", wishlist.Rename(db))
		auth.DELETE("/wishlists/:id", wishlist.Delete(db))
		auth.POST("/wishlists/:id/items", wishlist.AddItem(db))
		auth.DELETE("/wishlist-items/:itemID", wishlist.RemoveItem(db))
		auth.POST("/wishlist-items/:itemID/move-to-cart", wishlist.MoveToCart(db, cfg))

		auth.POST("/products/:id/reviews", review.Create(db))
	}
}
