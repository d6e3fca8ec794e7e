package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LineItem is one cart row expressed the way the gateway wants it:
// unit amount in minor currency units.
type LineItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

// SessionRequest describes a hosted-payment-page session.
type SessionRequest struct {
	Reference  string     `json:"reference"`
	Currency   string     `json:"currency"`
	Items      []LineItem `json:"items"`
	SuccessURL string     `json:"success_url"`
	CancelURL  string     `json:"cancel_url"`
}

// Session is what the gateway hands back: the hosted page the customer
// is redirected to, plus the gateway's own reference.
type Session struct {
	Reference string
	URL       string
}

type sessionResponse struct {
	Session struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"session"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the payment gateway's JSON API.
type Client struct {
	apiURL    string
	secretKey string
	http      *http.Client
}

func NewClient(apiURL, secretKey string) *Client {
	return &Client{
		apiURL:    apiURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateSession requests a payment session and returns the hosted
// payment URL. Any gateway-side problem comes back as a plain error;
// callers surface it and return the user to checkout.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode, string(raw))
	}

	var out sessionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", out.Error.Message)
	}
	if out.Session.URL == "" {
		return nil, fmt.Errorf("gateway returned empty payment URL")
	}

	return &Session{Reference: out.Session.Ref, URL: out.Session.URL}, nil
}
