package models

// Wishlist — named product bookmark collection per customer
type Wishlist struct {
	Base
	CustomerID uint           `gorm:"index;not null"`
	Name       string         `gorm:"not null"`
	Items      []WishlistItem `gorm:"constraint:OnDelete:CASCADE"`
}

// WishlistItem — membership only, no quantity; the unique index keeps
// duplicate adds out at the database level
type WishlistItem struct {
	Base
	WishlistID uint    `gorm:"index;not null;uniqueIndex:idx_wishlist_product"`
	ProductID  uint    `gorm:"not null;uniqueIndex:idx_wishlist_product"`
	Product    Product `gorm:"constraint:OnDelete:CASCADE"`
}
