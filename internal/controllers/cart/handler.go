package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

// GET /cart
func View(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		crt, err := GetOrCreate(db, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}
		items, err := ItemsWithProducts(db, crt.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"cart_id":  crt.ID,
			"items":    items,
			"subtotal": Subtotal(items),
		})
	}
}

// POST /cart/add/:productID
func Add(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		productID, err := strconv.Atoi(c.Param("productID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
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

		crt, err := GetOrCreate(db, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		item, err := AddProduct(db, crt, product, cfg.ValidateStock)
		if err != nil {
			if errors.Is(err, ErrOutOfStock) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "product is out of stock"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "added " + product.Name + " to cart", "item": item})
	}
}

func withOwnedItem(db *gorm.DB, c *gin.Context, fn func(item *models.CartItem) (string, error)) {
	customer := middleware.CurrentCustomer(c)

	itemID, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := OwnedItem(db, customer.ID, uint(itemID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart item"})
		return
	}

	msg, err := fn(&item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// POST /cart/increment/:itemID
func IncrementItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		withOwnedItem(db, c, func(item *models.CartItem) (string, error) {
			return "quantity increased", Increment(db, item)
		})
	}
}

// POST /cart/decrement/:itemID
func DecrementItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		withOwnedItem(db, c, func(item *models.CartItem) (string, error) {
			if item.Quantity > 1 {
				return "quantity decreased", Decrement(db, item)
			}
			return "item removed from cart", Decrement(db, item)
		})
	}
}

// POST /cart/remove/:itemID
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		withOwnedItem(db, c, func(item *models.CartItem) (string, error) {
			return "item removed from cart", Remove(db, item)
		})
	}
}
