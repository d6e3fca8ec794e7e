package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/payment"
	"storefront/internal/testutil"
)

const webhookSecret = "whsec_test"

func testServer(t *testing.T, db *gorm.DB) (*gin.Engine, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gatewaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req payment.SessionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"session": map[string]string{
				"ref": "gw-" + req.Reference,
				"url": "https://pay.example/s/" + req.Reference,
			},
		})
	}))
	t.Cleanup(gatewaySrv.Close)

	cfg := config.Config{
		BaseURL:              "http://localhost:8080",
		Currency:             "usd",
		GatewayURL:           gatewaySrv.URL,
		GatewaySecretKey:     "sk_test",
		GatewayWebhookSecret: webhookSecret,
	}

	r := gin.New()
	store := cookie.NewStore([]byte("test_secret"))
	r.Use(sessions.Sessions("storefront_session", store))
	SetupRoutes(r, db, cfg, payment.NewClient(cfg.GatewayURL, cfg.GatewaySecretKey))
	return r, gatewaySrv
}

// client keeps session cookies across requests, like a browser would.
type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
}

func (c *client) do(method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	if got := w.Result().Cookies(); len(got) > 0 {
		c.cookies = got
	}
	return w
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, c *client, username string) {
	t.Helper()
	w := c.do(http.MethodPost, "/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123!",
		"address":  "1 Main St",
		"phone":    "555-0101",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func signedWebhookForm(reference, status string) url.Values {
	form := url.Values{}
	form.Set("ref", reference)
	form.Set("status", status)
	form.Set("amount", "0")
	form.Set("currency", "usd")
	form.Set("check", payment.Sign(webhookSecret, form.Get))
	return form
}

func TestFullPurchaseFlow(t *testing.T) {
	db := testutil.OpenDB(t)
	product := testutil.Product(t, db, "Product 1", "19.99")

	r, _ := testServer(t, db)
	c := &client{t: t, r: r}
	register(t, c, "alice")

	// add the same product twice: one row, quantity 2
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), gin.H{}).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), gin.H{}).Code)

	cartResp := c.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, cartResp.Code)
	assert.Contains(t, cartResp.Body.String(), `"subtotal":"39.98"`)

	// checkout hands back the hosted payment page
	checkoutResp := c.do(http.MethodPost, "/checkout", gin.H{
		"city": "Springfield", "postal_code": "12345", "country": "US",
	})
	require.Equal(t, http.StatusOK, checkoutResp.Code, checkoutResp.Body.String())

	var checkoutOut struct {
		PaymentURL string `json:"payment_url"`
		Reference  string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(checkoutResp.Body.Bytes(), &checkoutOut))
	assert.Contains(t, checkoutOut.PaymentURL, "pay.example")
	require.NotEmpty(t, checkoutOut.Reference)

	// signed gateway notification places the order
	w := c.postForm("/payments/webhook", signedWebhookForm(checkoutOut.Reference, "paid"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("reference = ?", checkoutOut.Reference).First(&order).Error)
	assert.Equal(t, "39.98", order.Total.StringFixed(2))
	assert.Equal(t, models.OrderStatusPaid, order.Status)

	var cartItems int64
	db.Model(&models.CartItem{}).Count(&cartItems)
	assert.EqualValues(t, 0, cartItems, "cart is empty after the order")

	// duplicate delivery: same order, no second row
	w = c.postForm("/payments/webhook", signedWebhookForm(checkoutOut.Reference, "paid"))
	require.Equal(t, http.StatusOK, w.Code)
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 1, orders)

	// history shows the order
	histResp := c.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, histResp.Code)
	assert.Contains(t, histResp.Body.String(), checkoutOut.Reference)

	// purchase unlocks the review, exactly once
	reviewResp := c.do(http.MethodPost, fmt.Sprintf("/products/%d/reviews", product.ID), gin.H{"rating": 5, "comment": "great"})
	assert.Equal(t, http.StatusCreated, reviewResp.Code)
	reviewAgain := c.do(http.MethodPost, fmt.Sprintf("/products/%d/reviews", product.ID), gin.H{"rating": 1})
	assert.Equal(t, http.StatusOK, reviewAgain.Code)
	assert.Contains(t, reviewAgain.Body.String(), "already reviewed")
}

func TestCheckoutEmptyCartIsRejected(t *testing.T) {
	db := testutil.OpenDB(t)
	r, _ := testServer(t, db)
	c := &client{t: t, r: r}
	register(t, c, "alice")

	w := c.do(http.MethodPost, "/checkout", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 0, orders)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db := testutil.OpenDB(t)
	r, _ := testServer(t, db)
	c := &client{t: t, r: r}

	form := signedWebhookForm("ref-1", "paid")
	form.Set("check", "deadbeef")
	w := c.postForm("/payments/webhook", form)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWebhookIgnoresUnpaidStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	r, _ := testServer(t, db)
	c := &client{t: t, r: r}

	w := c.postForm("/payments/webhook", signedWebhookForm("ref-1", "declined"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "not successful")

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 0, orders)
}

func TestMutatingRoutesRequireLogin(t *testing.T) {
	db := testutil.OpenDB(t)
	product := testutil.Product(t, db, "Product 1", "19.99")

	r, _ := testServer(t, db)
	c := &client{t: t, r: r}

	w := c.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/checkout", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginLogout(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.Customer(t, db, "alice")

	r, _ := testServer(t, db)
	c := &client{t: t, r: r}

	w := c.do(http.MethodPost, "/login", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/login", gin.H{"username": "alice", "password": "password123!"})
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	w = c.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
