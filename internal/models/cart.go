package models

// Cart — one cart per customer, created lazily on first access
type Cart struct {
	Base
	CustomerID uint       `gorm:"uniqueIndex;not null"`
	Items      []CartItem `gorm:"constraint:OnDelete:CASCADE"`
}

// CartItem — product + quantity; quantity is never stored at 0,
// decrementing a quantity-1 item deletes the row instead
type CartItem struct {
	Base
	CartID    uint    `gorm:"index;not null;uniqueIndex:idx_cart_product"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_product"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE"`
	Quantity  int     `gorm:"not null;default:1"`
}
