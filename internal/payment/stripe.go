package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultBaseURL = "https://api.stripe.com"

// StripeClient charges cards through Stripe's charges API.
//
// The client deliberately carries no timeout of its own: a checkout attempt
// waits as long as the processor does.
type StripeClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewStripeClient(apiKey string) *StripeClient {
	return &StripeClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{},
	}
}

type chargeResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Charge submits a card charge and returns the processor's confirmation id.
// A failure reported by the processor is returned as *DeclinedError; a
// transport failure wraps ErrUnreachable.
func (c *StripeClient) Charge(ctx context.Context, amountMinor int64, currency, token string) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	form.Set("source", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build charge request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var body chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrUnreachable, err)
	}

	if body.Error != nil {
		return "", &DeclinedError{Message: body.Error.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || body.ID == "" {
		return "", &DeclinedError{Message: fmt.Sprintf("charge rejected with status %d", resp.StatusCode)}
	}

	return body.ID, nil
}
