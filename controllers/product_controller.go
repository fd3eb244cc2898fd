package controllers

import (
	"net/http"
	"strconv"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductController struct {
	Products repository.ProductRepository
	Logger   *zap.Logger
}

func NewProductController(products repository.ProductRepository, logger *zap.Logger) *ProductController {
	return &ProductController{Products: products, Logger: logger}
}

// ListProducts returns available products, optionally filtered by category slug.
func (pc *ProductController) ListProducts(c *gin.Context) {
	page, limit := parsePaginationParams(c)
	category := c.Query("category")

	products, total, err := pc.Products.FindAll(c.Request.Context(), category, page, limit)
	if err != nil {
		pc.Logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.Products.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (pc *ProductController) ListCategories(c *gin.Context) {
	categories, err := pc.Products.FindCategories(c.Request.Context())
	if err != nil {
		pc.Logger.Error("Failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (pc *ProductController) ListReviews(c *gin.Context) {
	product, err := pc.Products.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	reviews, err := pc.Products.FindReviews(c.Request.Context(), product.ID)
	if err != nil {
		pc.Logger.Error("Failed to list reviews", zap.String("product_id", product.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (pc *ProductController) CreateReview(c *gin.Context) {
	product, err := pc.Products.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req struct {
		AuthorName string `json:"author_name" binding:"required"`
		Rating     int    `json:"rating" binding:"required,min=1,max=5"`
		Comment    string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	review := &models.Review{
		ID:         uuid.New(),
		ProductID:  product.ID,
		AuthorName: req.AuthorName,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := pc.Products.CreateReview(c.Request.Context(), review); err != nil {
		pc.Logger.Error("Failed to create review", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// parsePaginationParams extracts and validates pagination parameters
func parsePaginationParams(c *gin.Context) (int, int) {
	const maxLimit = 100

	page := 1
	limit := 20

	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && l > 0 {
		limit = l
		if limit > maxLimit {
			limit = maxLimit
		}
	}

	return page, limit
}
