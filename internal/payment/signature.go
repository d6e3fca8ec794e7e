package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Notification field order for the signature string. The gateway joins
// the secret and these values with ":" and sends the hex SHA-256 HMAC
// in the "check" field.
var signedFields = []string{"ref", "status", "amount", "currency"}

// Sign computes the webhook signature over notification form values.
func Sign(secret string, values func(string) string) string {
	parts := make([]string, 0, len(signedFields))
	for _, f := range signedFields {
		parts = append(parts, strings.TrimSpace(values(f)))
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a provided "check" value against the one
// computed from the form. Comparison is constant-time.
func VerifySignature(secret, provided string, values func(string) string) bool {
	if provided == "" {
		return false
	}
	expected := Sign(secret, values)
	return hmac.Equal([]byte(strings.ToLower(provided)), []byte(expected))
}
