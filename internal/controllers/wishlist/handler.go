package wishlist

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/controllers/cart"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

type nameRequest struct {
	Name string `json:"name"`
}

type addItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func owned(db *gorm.DB, customerID, wishlistID uint) (models.Wishlist, error) {
	var wl models.Wishlist
	err := db.Where("id = ? AND customer_id = ?", wishlistID, customerID).First(&wl).Error
	return wl, err
}

// GET /wishlists
func List(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		var lists []models.Wishlist
		if err := db.Preload("Items.Product").
			Where("customer_id = ?", customer.ID).
			Order("id").
			Find(&lists).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch wishlists"})
			return
		}
		c.JSON(http.StatusOK, lists)
	}
}

// POST /wishlists
func Create(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		var req nameRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "wishlist name is required"})
			return
		}

		wl := models.Wishlist{CustomerID: customer.ID, Name: strings.TrimSpace(req.Name)}
		if err := db.Create(&wl).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create wishlist"})
			return
		}
		c.JSON(http.StatusCreated, wl)
	}
}

// PUT /wishlists/:id
func Rename(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wishlist id"})
			return
		}

		var req nameRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "wishlist name is required"})
			return
		}

		wl, err := owned(db, customer.ID, uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "wishlist not found"})
			return
		}

		wl.Name = strings.TrimSpace(req.Name)
		if err := db.Save(&wl).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rename wishlist"})
			return
		}
		c.JSON(http.StatusOK, wl)
	}
}

// DELETE /wishlists/:id
func Delete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wishlist id"})
			return
		}

		wl, err := owned(db, customer.ID, uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "wishlist not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("wishlist_id = ?", wl.ID).Delete(&models.WishlistItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&wl).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "wishlist deleted"})
	}
}

// GET /wishlists/:id
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wishlist id"})
			return
		}

		var wl models.Wishlist
		if err := db.Preload("Items.Product").
			Where("id = ? AND customer_id = ?", id, customer.ID).
			First(&wl).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "wishlist not found"})
			return
		}
		c.JSON(http.StatusOK, wl)
	}
}

// POST /wishlists/:id/items — idempotent: adding a product that is
// already present reports it and leaves the single row alone.
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wishlist id"})
			return
		}

		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}

		wl, err := owned(db, customer.ID, uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "wishlist not found"})
			return
		}

		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		var count int64
		if err := db.Model(&models.WishlistItem{}).
			Where("wishlist_id = ? AND product_id = ?", wl.ID, product.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check wishlist"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusOK, gin.H{"message": product.Name + " is already in this wishlist"})
			return
		}

		item := models.WishlistItem{WishlistID: wl.ID, ProductID: product.ID}
		if err := db.Create(&item).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") ||
				strings.Contains(err.Error(), "duplicate key") {
				c.JSON(http.StatusOK, gin.H{"message": product.Name + " is already in this wishlist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /wishlist-items/:itemID
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		itemID, err := strconv.Atoi(c.Param("itemID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		res := db.Where(
			"id = ? AND wishlist_id IN (SELECT id FROM wishlists WHERE customer_id = ?)",
			itemID, customer.ID,
		).Delete(&models.WishlistItem{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "wishlist item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item removed"})
	}
}

// POST /wishlist-items/:itemID/move-to-cart — cart add (increment
// semantics) and wishlist delete happen in one transaction, so a
// failure cannot leave the product in both places.
func MoveToCart(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		itemID, err := strconv.Atoi(c.Param("itemID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		var item models.WishlistItem
		if err := db.Preload("Product").
			Joins("JOIN wishlists ON wishlists.id = wishlist_items.wishlist_id").
			Where("wishlist_items.id = ? AND wishlists.customer_id = ?", itemID, customer.ID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "wishlist item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wishlist item"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			crt, err := cart.GetOrCreate(tx, customer.ID)
			if err != nil {
				return err
			}
			if _, err := cart.AddProduct(tx, crt, item.Product, cfg.ValidateStock); err != nil {
				return err
			}
			return tx.Delete(&item).Error
		})
		if err != nil {
			if errors.Is(err, cart.ErrOutOfStock) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "product is out of stock"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to move item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "moved " + item.Product.Name + " to cart"})
	}
}
