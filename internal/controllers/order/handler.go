package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

// ItemDetail wraps an order item with whether the customer may still
// leave a review for its product.
type ItemDetail struct {
	models.OrderItem
	CanReview bool `json:"can_review"`
}

// GET /orders
func History(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		var orders []models.Order
		if err := db.Preload("Items").
			Where("customer_id = ?", customer.ID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID
func Detail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		orderID, err := strconv.Atoi(c.Param("orderID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var ord models.Order
		if err := db.Preload("Items").Preload("Shipping").
			Where("id = ? AND customer_id = ?", orderID, customer.ID).
			First(&ord).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}

		details := make([]ItemDetail, 0, len(ord.Items))
		for _, it := range ord.Items {
			var count int64
			if err := db.Model(&models.Review{}).
				Where("customer_id = ? AND product_id = ?", customer.ID, it.ProductID).
				Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
				return
			}
			details = append(details, ItemDetail{OrderItem: it, CanReview: count == 0})
		}

		c.JSON(http.StatusOK, gin.H{
			"order":    ord,
			"items":    details,
			"shipping": ord.Shipping,
		})
	}
}
