package routes

import (
	"storefront-service/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	checkout *controllers.CheckoutController,
	webhook *controllers.WebhookController,
	orders *controllers.OrderController,
	products *controllers.ProductController,
	carts *controllers.CartController,
) {
	api := r.Group("/api")

	api.POST("/checkout/create-session", checkout.CreateSession)

	// Stripe webhook (no auth; signature-verified)
	api.POST("/webhooks/stripe", webhook.StripeWebhook)

	api.GET("/orders/:ref", orders.GetOrder)

	api.GET("/products", products.ListProducts)
	api.GET("/products/:slug", products.GetProduct)
	api.GET("/products/:slug/reviews", products.ListReviews)
	api.POST("/products/:slug/reviews", products.CreateReview)
	api.GET("/categories", products.ListCategories)

	api.GET("/cart/:id", carts.GetCart)
	api.PUT("/cart/:id", carts.SaveCart)
	api.DELETE("/cart/:id", carts.DeleteCart)
}
