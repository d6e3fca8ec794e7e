package models

import "github.com/shopspring/decimal"

// Product — таблица products
type Product struct {
	Base
	Name        string          `gorm:"not null;index"`
	Brand       string          `gorm:"index"`
	Category    string          `gorm:"index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	ImagePath   string // относительный путь, напр. "/uploads/abc123.jpg"
}
