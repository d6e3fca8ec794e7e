package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// MustOpen открывает соединение с БД по строке из .env
func MustOpen(dsn string) *gorm.DB {
	if dsn == "" {
		log.Fatal("DB_DSN is empty (check your .env)")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}
	return db
}

// Migrate keeps the schema in sync with the models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.CheckoutSession{},
		&models.Order{},
		&models.OrderItem{},
		&models.ShippingInfo{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Review{},
	)
}
