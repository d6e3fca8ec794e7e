package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/payment"
)

// WebhookAuth verifies the payment gateway notification signature.
// Orders are only ever materialized behind this check; the success
// redirect on its own proves nothing.
func WebhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse form"})
			c.Abort()
			return
		}

		provided := c.PostForm("check")
		if !payment.VerifySignature(secret, provided, c.PostForm) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
