package review

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

type createRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// HasPurchased reports whether the customer has a paid order that
// contains the product. Reviews are gated on it.
func HasPurchased(db *gorm.DB, customerID, productID uint) (bool, error) {
	var count int64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ? AND orders.status = ? AND order_items.product_id = ?",
			customerID, models.OrderStatusPaid, productID).
		Count(&count).Error
	return count > 0, err
}

// POST /products/:id/reviews
func Create(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
			return
		}

		purchased, err := HasPurchased(db, customer.ID, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check purchase history"})
			return
		}
		if !purchased {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only review products you have purchased"})
			return
		}

		var count int64
		if err := db.Model(&models.Review{}).
			Where("customer_id = ? AND product_id = ?", customer.ID, product.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing reviews"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusOK, gin.H{"message": "you have already reviewed this product"})
			return
		}

		rev := models.Review{
			CustomerID: customer.ID,
			ProductID:  product.ID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}
		if err := db.Create(&rev).Error; err != nil {
			// the unique index catches concurrent double-submits the
			// pre-check cannot see
			if strings.Contains(strings.ToLower(err.Error()), "unique") ||
				strings.Contains(err.Error(), "duplicate key") {
				c.JSON(http.StatusOK, gin.H{"message": "you have already reviewed this product"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save review"})
			return
		}

		c.JSON(http.StatusCreated, rev)
	}
}

// GET /products/:id/reviews
func ListForProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var reviews []models.Review
		if err := db.Where("product_id = ?", productID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}
