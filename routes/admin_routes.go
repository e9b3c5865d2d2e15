package routes

import (
	"github.com/Govind-619/ShopSphere/controllers"
	"github.com/Govind-619/ShopSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup, h *controllers.Handler, secret string) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(secret), middleware.AdminMiddleware())
	{
		// Product management
		admin.GET("/products", h.ListProducts)
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)

		// Categories, subcategories, catalogues and tags
		admin.GET("/taxonomy/:kind", h.ListTerms)
		admin.POST("/taxonomy/:kind", h.CreateTerm)
		admin.DELETE("/taxonomy/:kind/:id", h.DeleteTerm)

		// Coupon management
		admin.GET("/coupons", h.ListCoupons)
		admin.POST("/coupons", h.CreateCoupon)
		admin.PATCH("/coupons/:id/active", h.SetCouponActive)
		admin.DELETE("/coupons/:id", h.DeleteCoupon)

		// Orders
		admin.GET("/orders", h.AdminListOrders)
		admin.GET("/orders/export", h.AdminExportOrders)
		admin.GET("/orders/report", h.AdminOrdersReport)
		admin.GET("/orders/stream", h.AdminStreamOrders)
		admin.GET("/orders/:id", h.AdminGetOrder)
		admin.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)
	}
}
