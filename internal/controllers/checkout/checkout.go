package checkout

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/controllers/cart"
	"storefront/internal/models"
)

var (
	// ErrEmptyCart guards both checkout start and order placement; an
	// empty cart never turns into an order.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownReference means the notification does not match any
	// checkout session we started.
	ErrUnknownReference = errors.New("unknown checkout reference")
)

var minorUnits = decimal.NewFromInt(100)

// MinorAmount converts a decimal price to minor currency units for the
// payment gateway.
func MinorAmount(price decimal.Decimal) int64 {
	return price.Mul(minorUnits).Round(0).IntPart()
}

// PlaceOrder materializes an order from the customer's current cart in
// one transaction: order + item snapshots + shipping info created, cart
// emptied — all or nothing. The total is recomputed from current prices,
// not from whatever the gateway session was created with.
//
// Placement is idempotent on the checkout reference: a second webhook
// delivery for the same reference finds the existing order and no-ops.
func PlaceOrder(db *gorm.DB, reference string) (models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reference = ?", reference).First(&order).Error; err == nil {
			return nil // already placed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var session models.CheckoutSession
		if err := tx.Where("reference = ?", reference).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownReference
			}
			return err
		}

		crt, err := cart.GetOrCreate(tx, session.CustomerID)
		if err != nil {
			return err
		}
		items, err := cart.ItemsWithProducts(tx, crt.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   it.ProductID,
				ProductName: it.Product.Name,
				Price:       it.Product.Price,
				Quantity:    it.Quantity,
			})
		}

		order = models.Order{
			CustomerID: session.CustomerID,
			Reference:  reference,
			Total:      cart.Subtotal(items),
			Status:     models.OrderStatusPaid,
			Items:      orderItems,
			Shipping: &models.ShippingInfo{
				Address:    session.Address,
				City:       session.City,
				PostalCode: session.PostalCode,
				Country:    session.Country,
				Phone:      session.Phone,
			},
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", crt.ID).Delete(&models.CartItem{}).Error
	})

	return order, err
}
