// Package payments drives checkout session creation against the Stripe
// Checkout Sessions API.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// LineItem is one priced line of a checkout session. Metadata rides on
// the product so the fulfillment webhook can recover item details.
type LineItem struct {
	Name            string
	Description     string
	UnitAmountCents int
	Quantity        int
	Metadata        map[string]string
}

// SessionParams configures a checkout session.
type SessionParams struct {
	LineItems       []LineItem
	SuccessURL      string
	CancelURL       string
	Metadata        map[string]string
	CollectShipping bool
	CollectPhone    bool
}

// Session is the created checkout session: the id correlates order rows,
// the URL is where the customer pays.
type Session struct {
	ID  string
	URL string
}

type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// getStripeConfig reads the API credentials, with an overridable base URL
// for tests and sandboxes.
func getStripeConfig() (secretKey, apiBase string, err error) {
	secretKey = os.Getenv("STRIPE_SECRET_KEY")
	apiBase = os.Getenv("STRIPE_API_URL")
	if apiBase == "" {
		apiBase = "https://api.stripe.com"
	}
	if secretKey == "" {
		return "", "", fmt.Errorf("stripe configuration missing")
	}
	return secretKey, strings.TrimRight(apiBase, "/"), nil
}

// CreateCheckoutSession creates a payment-mode checkout session and
// returns its id and hosted payment URL.
func CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error) {
	secretKey, apiBase, err := getStripeConfig()
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)

	for i, li := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", li.Name)
		if li.Description != "" {
			form.Set(prefix+"[price_data][product_data][description]", li.Description)
		}
		for k, v := range li.Metadata {
			form.Set(prefix+"[price_data][product_data][metadata]["+k+"]", v)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.Itoa(li.UnitAmountCents))
		form.Set(prefix+"[quantity]", strconv.Itoa(li.Quantity))
	}

	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	if params.CollectShipping {
		form.Set("shipping_address_collection[allowed_countries][0]", "US")
		form.Set("shipping_address_collection[allowed_countries][1]", "CA")
	}
	if params.CollectPhone {
		form.Set("phone_number_collection[enabled]", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		apiBase+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Stripe: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Stripe response: %w", err)
	}

	var parsed sessionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse Stripe response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("stripe error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, string(body))
	}
	if parsed.URL == "" {
		return nil, fmt.Errorf("stripe returned empty payment URL")
	}

	return &Session{ID: parsed.ID, URL: parsed.URL}, nil
}

// SuccessURL builds the post-payment redirect. Stripe substitutes the
// session id placeholder itself.
func SuccessURL(cartID string) string {
	base := os.Getenv("CHECKOUT_SUCCESS_URL")
	if base == "" {
		base = baseURL() + "/thank-you"
	}
	u := base + "?session_id={CHECKOUT_SESSION_ID}"
	if cartID != "" {
		u += "&cart_id=" + url.QueryEscape(cartID)
	}
	return u
}

// CancelURL is where the customer lands after abandoning payment.
func CancelURL() string {
	base := os.Getenv("CHECKOUT_CANCEL_URL")
	if base == "" {
		base = baseURL() + "/order"
	}
	return base + "?canceled=1"
}

func baseURL() string {
	if base := os.Getenv("BASE_URL"); base != "" {
		return strings.TrimRight(base, "/")
	}
	return "http://localhost:3000"
}
