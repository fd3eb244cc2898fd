package controllers

import (
	"net/http"

	"storefront-service/database"
	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	Carts  *database.CartRepository
	Logger *zap.Logger
}

func NewCartController(carts *database.CartRepository, logger *zap.Logger) *CartController {
	return &CartController{Carts: carts, Logger: logger}
}

func (cc *CartController) GetCart(c *gin.Context) {
	cartID := c.Param("id")

	cart, err := cc.Carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		cc.Logger.Error("Failed to fetch cart", zap.String("cart_id", cartID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	if cart == nil {
		cart = &models.Cart{ID: cartID, Items: []models.CartItem{}}
	}

	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) SaveCart(c *gin.Context) {
	var req struct {
		Items []models.CartItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart := &models.Cart{
		ID:    c.Param("id"),
		Items: req.Items,
	}
	if err := cc.Carts.SaveCart(c.Request.Context(), cart); err != nil {
		cc.Logger.Error("Failed to save cart", zap.String("cart_id", cart.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) DeleteCart(c *gin.Context) {
	cartID := c.Param("id")
	if err := cc.Carts.DeleteCart(c.Request.Context(), cartID); err != nil {
		cc.Logger.Error("Failed to delete cart", zap.String("cart_id", cartID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
