package models

// CheckoutSession links a payment gateway session to the customer who
// started it. The webhook only carries the reference back, so shipping
// details captured on checkout ride along here until the order exists.
type CheckoutSession struct {
	Base
	Reference  string `gorm:"uniqueIndex;not null"`
	CustomerID uint   `gorm:"index;not null"`
	Address    string
	City       string
	PostalCode string
	Country    string
	Phone      string
}
