package models

// Review — at most one per (customer, product), enforced by the
// composite unique index rather than a pre-check alone
type Review struct {
	Base
	CustomerID uint   `gorm:"not null;uniqueIndex:idx_customer_product_review"`
	ProductID  uint   `gorm:"not null;uniqueIndex:idx_customer_product_review"`
	Rating     int    `gorm:"not null;default:1"`
	Comment    string `gorm:"type:text"`
}
