package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// PageSize is fixed; the storefront paginates everything at 10.
const PageSize = 10

// GET /products?category=&brand=&search=&page=
func List(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		brand := c.Query("brand")
		search := strings.TrimSpace(c.Query("search"))

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}

		query := db.Model(&models.Product{})
		if category != "" {
			query = query.Where("category = ?", category)
		}
		if brand != "" {
			query = query.Where("brand = ?", brand)
		}
		if search != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}

		var products []models.Product
		if err := query.Order("id").
			Limit(PageSize).Offset((page - 1) * PageSize).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}

		totalPages := int((total + PageSize - 1) / PageSize)

		var categories, brands []string
		db.Model(&models.Product{}).Distinct("category").Order("category").Pluck("category", &categories)
		db.Model(&models.Product{}).Distinct("brand").Order("brand").Pluck("brand", &brands)

		c.JSON(http.StatusOK, gin.H{
			"products":    products,
			"page":        page,
			"total_pages": totalPages,
			"total":       total,
			"categories":  categories,
			"brands":      brands,
		})
	}
}

// GET /products/:id
func Detail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
