// Package testutil opens throwaway databases and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	mydb "storefront/internal/db"
	"storefront/internal/models"
)

// OpenDB returns an isolated in-memory database with the full schema.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := mydb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Customer inserts a customer with a usable password ("password123!").
func Customer(t *testing.T, db *gorm.DB, username string) models.Customer {
	t.Helper()

	hash, err := models.HashPassword("password123!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	c := models.Customer{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Address:      "1 Main St",
		Phone:        "555-0101",
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

// Product inserts a product with the given price.
func Product(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()

	p := models.Product{
		Name:        name,
		Brand:       "Brand 1",
		Category:    "Category 1",
		Description: fmt.Sprintf("Sample description for %s.", name),
		Price:       decimal.RequireFromString(price),
		Stock:       10,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}
