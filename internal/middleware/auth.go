package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/models"
)

const (
	// session key
	SessionCustomerID = "customer_id"
	// gin context key
	CtxCustomer = "currentCustomer"
)

// RequireCustomer loads the session customer and aborts with 401 when
// there is none. Mutating routes all sit behind this.
func RequireCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, ok := sess.Get(SessionCustomerID).(uint)
		if !ok || id == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			c.Abort()
			return
		}

		var customer models.Customer
		if err := db.First(&customer, id).Error; err != nil {
			sess.Clear()
			_ = sess.Save()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			c.Abort()
			return
		}

		c.Set(CtxCustomer, &customer)
		c.Next()
	}
}

// CurrentCustomer pulls the customer loaded by RequireCustomer.
func CurrentCustomer(c *gin.Context) *models.Customer {
	v, ok := c.Get(CtxCustomer)
	if !ok {
		return nil
	}
	return v.(*models.Customer)
}

// LogIn binds the session to a customer.
func LogIn(c *gin.Context, customerID uint) error {
	sess := sessions.Default(c)
	sess.Set(SessionCustomerID, customerID)
	return sess.Save()
}

// LogOut clears the session.
func LogOut(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}
