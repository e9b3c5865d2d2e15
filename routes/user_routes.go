package routes

import (
	"github.com/Govind-619/ShopSphere/controllers"
	"github.com/Govind-619/ShopSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all customer routes
func initUserRoutes(router *gin.RouterGroup, h *controllers.Handler, secret string) {
	// Public catalog
	router.GET("/products", h.ListProducts)
	router.GET("/products/:id", h.GetProduct)
	router.GET("/orders/reasons", h.GetActionReasons)
	router.GET("/taxonomy/:kind", h.ListTerms)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware(secret))
	{
		// Cart operations
		protected.GET("/cart", h.GetCart)
		protected.POST("/cart", h.AddToCart)
		protected.DELETE("/cart", h.ClearCart)
		protected.GET("/cart/stream", h.StreamCart)
		protected.PUT("/cart/:product_id", h.SetCartQuantity)
		protected.DELETE("/cart/:product_id", h.RemoveFromCart)
		protected.POST("/cart/:product_id/increment", h.IncrementCartItem)
		protected.POST("/cart/:product_id/decrement", h.DecrementCartItem)
		protected.POST("/cart/:product_id/move-to-wishlist", h.MoveCartItemToWishlist)

		// Wishlist
		protected.GET("/wishlist", h.GetWishlist)
		protected.POST("/wishlist", h.AddToWishlist)
		protected.DELETE("/wishlist/:product_id", h.RemoveFromWishlist)
		protected.POST("/wishlist/:product_id/move-to-cart", h.MoveWishlistItemToCart)

		// Address book
		protected.GET("/addresses", h.ListAddresses)
		protected.POST("/addresses", h.AddAddress)
		protected.GET("/addresses/stream", h.StreamAddresses)
		protected.PUT("/addresses/:id", h.UpdateAddress)
		protected.DELETE("/addresses/:id", h.DeleteAddress)

		// Checkout
		protected.GET("/checkout", h.GetCheckout)
		protected.POST("/checkout", h.PlaceOrder)
		protected.POST("/checkout/coupon", h.ApplyCoupon)
		protected.DELETE("/checkout/coupon", h.RemoveCoupon)
		protected.POST("/checkout/buy-now", h.BuyNow)
		protected.PUT("/checkout/buy-now", h.UpdateBuyNow)
		protected.DELETE("/checkout/buy-now", h.ClearBuyNow)

		// Orders
		protected.GET("/orders", h.ListOrders)
		protected.GET("/orders/stream", h.StreamOrders)
		protected.GET("/orders/:id", h.GetOrder)
		protected.POST("/orders/:id/cancel", h.CancelOrder)
		protected.POST("/orders/:id/return", h.ReturnOrder)
		protected.GET("/orders/:id/invoice", h.DownloadInvoice)

		// Notifications
		protected.GET("/notifications", h.ListNotifications)
		protected.GET("/notifications/unread", h.UnreadNotificationCount)
		protected.GET("/notifications/stream", h.StreamNotifications)
		protected.PATCH("/notifications/:id/read", h.MarkNotificationRead)

		// Payment card metadata
		protected.POST("/payments/cards", h.SaveCard)
		protected.GET("/payments/cards", h.ListCards)
	}
}
