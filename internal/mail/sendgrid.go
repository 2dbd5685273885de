package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendGridBaseURL = "https://api.sendgrid.com"

// SendGridClient delivers mail through SendGrid's v3 send API.
type SendGridClient struct {
	apiKey  string
	from    string
	baseURL string
	httpc   *http.Client
}

func NewSendGridClient(apiKey, from string) *SendGridClient {
	return &SendGridClient{
		apiKey:  apiKey,
		from:    from,
		baseURL: sendGridBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridMessage struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (c *SendGridClient) Send(ctx context.Context, to, subject, body string) error {
	msg := sendGridMessage{
		From:    sendGridAddress{Email: c.from},
		Subject: subject,
	}
	msg.Personalizations = append(msg.Personalizations, struct {
		To []sendGridAddress `json:"to"`
	}{To: []sendGridAddress{{Email: to}}})
	msg.Content = append(msg.Content, struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "text/plain", Value: body})

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v3/mail/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail rejected with status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
