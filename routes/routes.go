package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-backend/controllers"
	"github.com/yashrajoria/storefront-backend/middleware"
	"github.com/yashrajoria/storefront-backend/services"
)

type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Coupon  *controllers.CouponController
	Product *controllers.ProductController
	Blog    *controllers.BlogController
}

// Register wires the full route table. The payment webhook stays outside
// every auth group so the raw body reaches the handler untouched.
func Register(r *gin.Engine, tokens *services.TokenService, c Controllers) {
	auth := middleware.RequireAuth(tokens)
	admin := middleware.AdminOnly()

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", c.Auth.Signup)
		authGroup.POST("/login", c.Auth.Login)
		authGroup.POST("/refresh", c.Auth.Refresh)
		authGroup.POST("/logout", auth, c.Auth.Logout)
		authGroup.POST("/forgot-password", c.Auth.ForgotPassword)
		authGroup.POST("/reset-password", c.Auth.ResetPassword)
	}

	users := r.Group("/users", auth)
	{
		users.GET("/me", c.User.GetProfile)
		users.PUT("/me", c.User.UpdateProfile)
		users.POST("/me/addresses", c.User.AddAddress)
		users.PUT("/me/addresses/:addressId", c.User.UpdateAddress)
		users.DELETE("/me/addresses/:addressId", c.User.RemoveAddress)
		users.GET("/me/wishlist", c.User.GetWishlist)
		users.POST("/me/wishlist/:productId", c.User.AddToWishlist)
		users.DELETE("/me/wishlist/:productId", c.User.RemoveFromWishlist)
	}

	cart := r.Group("/cart", auth)
	{
		cart.GET("", c.Cart.GetCart)
		cart.POST("", c.Cart.AddItem)
		cart.DELETE("/clear", c.Cart.Clear)
		cart.PUT("/:itemId", c.Cart.UpdateItem)
		cart.DELETE("/:itemId", c.Cart.RemoveItem)
	}

	orders := r.Group("/orders")
	{
		// Signature-verified, unauthenticated.
		orders.POST("/webhook", c.Order.Webhook)

		orders.POST("", auth, c.Order.Create)
		orders.GET("/myorders", auth, c.Order.GetMyOrders)
		orders.POST("/payment", auth, c.Order.InitializePayment)
		orders.GET("/payment/:reference", auth, c.Order.PaymentStatus)
		orders.GET("", auth, admin, c.Order.GetAll)
		orders.GET("/logs", auth, admin, c.Order.ListAuditLogs)
		orders.GET("/:id", auth, c.Order.GetByID)
		orders.PUT("/:id/status-cycle", auth, admin, c.Order.CycleStatus)
		orders.PUT("/:id/cancel", auth, admin, c.Order.Cancel)
		orders.PUT("/:id/pay", auth, admin, c.Order.MarkPaid)
		orders.PUT("/:id/ship", auth, admin, c.Order.MarkShipped)
		orders.PUT("/:id/deliver", auth, admin, c.Order.MarkDelivered)
		orders.GET("/:id/logs", auth, admin, c.Order.GetAuditLog)
	}

	coupons := r.Group("/coupons")
	{
		coupons.POST("/validate", auth, c.Coupon.Validate)
		coupons.POST("", auth, admin, c.Coupon.Create)
		coupons.GET("", auth, admin, c.Coupon.List)
		coupons.DELETE("/:id", auth, admin, c.Coupon.Delete)
	}

	products := r.Group("/products")
	{
		products.GET("", c.Product.List)
		products.GET("/slug/:slug", c.Product.GetBySlug)
		products.GET("/:id", c.Product.GetByID)
		products.POST("", auth, admin, c.Product.Create)
		products.PUT("/:id", auth, admin, c.Product.Update)
		products.DELETE("/:id", auth, admin, c.Product.Delete)
	}

	blogs := r.Group("/blogs")
	{
		blogs.GET("", c.Blog.List)
		blogs.GET("/:slug", c.Blog.GetBySlug)
		blogs.POST("", auth, admin, c.Blog.Create)
		blogs.PUT("/:slug", auth, admin, c.Blog.Update)
		blogs.DELETE("/id/:id", auth, admin, c.Blog.Delete)
	}
}
