package seed

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// Products fills an empty catalog with 100 sample products so a fresh
// install has something to browse. No-op when products already exist.
func Products(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := make([]models.Product, 0, 100)
	for i := 1; i <= 100; i++ {
		price := decimal.NewFromFloat(5.0 + rand.Float64()*495.0).Round(2)
		products = append(products, models.Product{
			Name:        fmt.Sprintf("Product %d", i),
			Brand:       fmt.Sprintf("Brand %d", i%10),
			Category:    fmt.Sprintf("Category %d", i%5),
			Description: fmt.Sprintf("Sample description for product %d.", i),
			Price:       price,
			Stock:       1 + rand.Intn(200),
		})
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}
	log.Printf("seeded %d products", len(products))
	return nil
}
