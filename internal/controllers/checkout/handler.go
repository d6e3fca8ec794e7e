package checkout

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/controllers/cart"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/payment"
)

// ShippingForm is the delivery form posted with checkout. Address and
// phone fall back to the customer profile when left blank.
type ShippingForm struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// POST /checkout
func Begin(db *gorm.DB, cfg config.Config, gateway *payment.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		var form ShippingForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipping info"})
			return
		}
		if form.Address == "" {
			form.Address = customer.Address
		}
		if form.Phone == "" {
			form.Phone = customer.Phone
		}

		crt, err := cart.GetOrCreate(db, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}
		items, err := cart.ItemsWithProducts(db, crt.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "your cart is empty, add items before checking out"})
			return
		}

		lineItems := make([]payment.LineItem, 0, len(items))
		for _, it := range items {
			lineItems = append(lineItems, payment.LineItem{
				Name:       it.Product.Name,
				UnitAmount: MinorAmount(it.Product.Price),
				Quantity:   it.Quantity,
			})
		}

		reference := uuid.NewString()
		session, err := gateway.CreateSession(c.Request.Context(), payment.SessionRequest{
			Reference:  reference,
			Currency:   cfg.Currency,
			Items:      lineItems,
			SuccessURL: cfg.BaseURL + "/checkout/success",
			CancelURL:  cfg.BaseURL + "/checkout/cancel",
		})
		if err != nil {
			log.Println("payment session failed:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment could not be started, please try again"})
			return
		}

		record := models.CheckoutSession{
			Reference:  reference,
			CustomerID: customer.ID,
			Address:    form.Address,
			City:       form.City,
			PostalCode: form.PostalCode,
			Country:    form.Country,
			Phone:      form.Phone,
		}
		if err := db.Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start checkout"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment_url": session.URL,
			"reference":   reference,
		})
	}
}

// POST /payments/webhook — behind middleware.WebhookAuth. The gateway
// posts ref + status; only a "paid" status places the order.
func Webhook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.PostForm("ref")
		status := c.PostForm("status")

		if reference == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing ref"})
			return
		}

		if status != "paid" {
			c.JSON(http.StatusOK, gin.H{"message": "payment not successful"})
			return
		}

		order, err := PlaceOrder(db, reference)
		if err != nil {
			if errors.Is(err, ErrUnknownReference) {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown reference"})
				return
			}
			log.Println("failed to place order for reference:", reference, "error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order placed", "order_id": order.ID})
	}
}

// GET /checkout/success — informational; the order is placed by the
// verified webhook, never by this redirect.
func Success() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "payment received, your order is being finalized"})
	}
}

// GET /checkout/cancel
func Cancel() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "payment cancelled, your cart is unchanged"})
	}
}
