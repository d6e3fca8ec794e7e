package cart

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// ErrOutOfStock is returned by AddProduct when stock validation is on
// and the requested quantity would exceed what is available.
var ErrOutOfStock = errors.New("product is out of stock")

// GetOrCreate returns the customer's cart, creating an empty one on
// first access. Idempotent.
func GetOrCreate(db *gorm.DB, customerID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where(models.Cart{CustomerID: customerID}).FirstOrCreate(&cart).Error
	return cart, err
}

// AddProduct puts one unit of product into the cart: an existing row
// gets quantity += 1, otherwise a new row starts at 1.
func AddProduct(db *gorm.DB, cart models.Cart, product models.Product, validateStock bool) (models.CartItem, error) {
	var item models.CartItem
	err := db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, err
		}
		if validateStock && product.Stock < 1 {
			return models.CartItem{}, ErrOutOfStock
		}
		item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
		if err := db.Create(&item).Error; err != nil {
			return models.CartItem{}, err
		}
		return item, nil
	}

	if validateStock && product.Stock < item.Quantity+1 {
		return item, ErrOutOfStock
	}
	item.Quantity++
	if err := db.Save(&item).Error; err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// Increment bumps quantity by one.
func Increment(db *gorm.DB, item *models.CartItem) error {
	item.Quantity++
	return db.Save(item).Error
}

// Decrement lowers quantity by one; at quantity 1 the row is deleted
// so a quantity of 0 is never stored.
func Decrement(db *gorm.DB, item *models.CartItem) error {
	if item.Quantity > 1 {
		item.Quantity--
		return db.Save(item).Error
	}
	return db.Delete(item).Error
}

// Remove deletes the row regardless of quantity.
func Remove(db *gorm.DB, item *models.CartItem) error {
	return db.Delete(item).Error
}

// Subtotal sums live price × quantity over the items. Products must be
// preloaded. Cart totals deliberately float with catalog price edits;
// prices are only snapshotted at order time.
func Subtotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ItemsWithProducts loads the cart rows with their products.
func ItemsWithProducts(db *gorm.DB, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").Where("cart_id = ?", cartID).Order("id").Find(&items).Error
	return items, err
}

// OwnedItem fetches a cart item only when it belongs to the customer's
// cart; anything else is reported as not found.
func OwnedItem(db *gorm.DB, customerID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.customer_id = ?", itemID, customerID).
		First(&item).Error
	return item, err
}
