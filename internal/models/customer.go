package models

import "golang.org/x/crypto/bcrypt"

// Customer — таблица customers; one row per authenticated account
type Customer struct {
	Base
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `gorm:"not null" json:"-"`
	Address      string
	Phone        string

	Cart      *Cart      `gorm:"constraint:OnDelete:CASCADE" json:",omitempty"`
	Orders    []Order    `gorm:"constraint:OnDelete:CASCADE" json:",omitempty"`
	Wishlists []Wishlist `gorm:"constraint:OnDelete:CASCADE" json:",omitempty"`
	Reviews   []Review   `gorm:"constraint:OnDelete:CASCADE" json:",omitempty"`
}

// HashPassword превращает обычный пароль в безопасный хэш
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword проверяет пароль на совпадение с хэшем
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
