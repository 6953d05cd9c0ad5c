// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/checkout"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"github.com/your-org/storefront-api/internal/gateway"
	"github.com/your-org/storefront-api/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-api/internal/notify"
	"github.com/your-org/storefront-api/internal/pkg/email"
	"gorm.io/gorm"
)

// Dependencies carries the wired application components the routes need
type Dependencies struct {
	Config          *config.Config
	DB              *gorm.DB
	Gateway         *gateway.Gateway
	CartManager     *cart.Manager
	WishlistManager *wishlist.Manager
	Sessions        *checkout.SessionStore
	Notifications   *notify.Center
	EmailService    *email.Service
	Logger          *logrus.Logger
}

// SetupRoutes registers every API route on the group
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	setupAuthRoutes(rg, deps)
	setupProductRoutes(rg, deps)
	setupCartRoutes(rg, deps)
	setupWishlistRoutes(rg, deps)
	setupCheckoutRoutes(rg, deps)
	setupOrderRoutes(rg, deps)
	setupNotificationRoutes(rg, deps)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.DB, deps.Config)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Config))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.POST("/change-password", authHandler.ChangePassword)
		}
	}
}

// setupProductRoutes sets up catalog routes
func setupProductRoutes(rg *gin.RouterGroup, deps Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Gateway)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// setupCartRoutes sets up cart routes. Anonymous requests resolve to the
// zero user whose cart reads are empty and whose writes demand a login.
func setupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.CartManager, deps.Gateway)

	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.OptionalAuthMiddleware(deps.Config))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// setupWishlistRoutes sets up wishlist routes
func setupWishlistRoutes(rg *gin.RouterGroup, deps Dependencies) {
	wishlistHandler := handlers.NewWishlistHandler(deps.WishlistManager, deps.Gateway)

	wishlistGroup := rg.Group("/wishlist")
	wishlistGroup.Use(middleware.OptionalAuthMiddleware(deps.Config))
	{
		wishlistGroup.GET("", wishlistHandler.GetWishlist)
		wishlistGroup.POST("/items", wishlistHandler.AddToWishlist)
		wishlistGroup.DELETE("/items/:productId", wishlistHandler.RemoveFromWishlist)
	}
}

// setupCheckoutRoutes sets up checkout flow routes; all require auth
func setupCheckoutRoutes(rg *gin.RouterGroup, deps Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Sessions, deps.CartManager, deps.Gateway, deps.EmailService, deps.Logger)

	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.AuthMiddleware(deps.Config))
	{
		checkoutGroup.GET("", checkoutHandler.GetCheckout)
		checkoutGroup.POST("/begin", checkoutHandler.BeginCheckout)
		checkoutGroup.POST("/shipping", checkoutHandler.SubmitShipping)
		checkoutGroup.POST("/back", checkoutHandler.Back)
		checkoutGroup.POST("/place-order", checkoutHandler.PlaceOrder)
		checkoutGroup.DELETE("", checkoutHandler.ResetCheckout)
	}
}

// setupOrderRoutes sets up order history routes; all require auth
func setupOrderRoutes(rg *gin.RouterGroup, deps Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Gateway)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(deps.Config))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}
}

// setupNotificationRoutes exposes the notification feed
func setupNotificationRoutes(rg *gin.RouterGroup, deps Dependencies) {
	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)

	rg.GET("/notifications", notificationHandler.ListNotifications)
}
