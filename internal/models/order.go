package models

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending"
	OrderStatusPaid    OrderStatus = "Paid"
)

// Order — immutable post-purchase record; Reference is the idempotency
// key matched against payment gateway notifications
type Order struct {
	Base
	CustomerID uint            `gorm:"index;not null"`
	Reference  string          `gorm:"uniqueIndex;not null"`
	Total      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'"`
	Items      []OrderItem     `gorm:"constraint:OnDelete:CASCADE"`
	Shipping   *ShippingInfo   `gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots name and price at purchase time, decoupled from
// later catalog edits
type OrderItem struct {
	Base
	OrderID     uint `gorm:"index;not null"`
	ProductID   uint `gorm:"not null"`
	ProductName string
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity    int             `gorm:"not null"`
}

// ShippingInfo — delivery details captured on checkout, 1:1 with order
type ShippingInfo struct {
	Base
	OrderID    uint `gorm:"uniqueIndex;not null"`
	Address    string
	City       string
	PostalCode string
	Country    string
	Phone      string
}
