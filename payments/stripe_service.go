package payments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/skillmarkets/backend/configs"
)

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// CreatePaymentIntent asks Stripe for a payment intent tagged with the
// booking id and returns the client secret needed to complete payment
// client-side. The amount is in minor currency units.
func CreatePaymentIntent(amountCents int64, currency, bookingID string) (*PaymentIntent, error) {
	cfg := config.Get()

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("metadata[booking_id]", bookingID)

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/payment_intents", cfg.StripeAPIBase), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cfg.StripeSecretKey))

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var stripeErr stripeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&stripeErr); err == nil && stripeErr.Error.Message != "" {
			return nil, fmt.Errorf("%s", stripeErr.Error.Message)
		}
		return nil, fmt.Errorf("payment intent creation failed, status: %s", resp.Status)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
