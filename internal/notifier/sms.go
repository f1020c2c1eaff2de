package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"app/internal/domain/model"
)

// SMSChannel posts to an HTTP SMS API (Africa's Talking style form
// endpoint). An empty URL switches to log-only delivery.
type SMSChannel struct {
	apiURL string
	apiKey string
	sender string
	client *http.Client
}

func NewSMSChannel(apiURL string, apiKey string, sender string) *SMSChannel {
	return &SMSChannel{
		apiURL: apiURL,
		apiKey: apiKey,
		sender: sender,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type smsResponse struct {
	SMSMessageData struct {
		Message string `json:"Message"`
	} `json:"SMSMessageData"`
}

func (s *SMSChannel) Send(ctx context.Context, customer model.Customer, message string) error {
	if customer.Phone == "" {
		return fmt.Errorf("customer %d has no phone number", customer.ID)
	}

	if s.apiURL == "" {
		log.Printf("SMS simulé vers %s: %s", customer.Phone, message)
		return nil
	}

	data := url.Values{}
	data.Set("to", customer.Phone)
	data.Set("message", message)
	data.Set("from", s.sender)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var out smsResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr == nil {
			return fmt.Errorf("SMS API returned status %d: %s", resp.StatusCode, out.SMSMessageData.Message)
		}
		return fmt.Errorf("SMS API returned status %d", resp.StatusCode)
	}

	return nil
}
