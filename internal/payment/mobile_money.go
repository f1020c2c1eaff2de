package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// MobileMoneyGateway drives an Orange Money / MTN MoMo style collection
// API: POST the charge, the wallet holder approves on their phone, the
// provider calls the webhook with the outcome.
type MobileMoneyGateway struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewMobileMoneyGateway(apiURL string, apiKey string) *MobileMoneyGateway {
	return &MobileMoneyGateway{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type momoChargeRequest struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Wallet    string `json:"wallet"`
}

type momoChargeResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Error     *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *MobileMoneyGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	// no provider configured: accept locally, the webhook is then
	// driven by hand (dev / demo mode)
	if g.apiURL == "" {
		log.Printf("mobile money simulé: ref=%s montant=%d", req.Reference, req.Amount)
		return ChargeResult{ProviderRef: req.Reference}, nil
	}

	payload := momoChargeRequest{
		Reference: req.Reference,
		Amount:    req.Amount,
		Currency:  "XOF",
		Wallet:    req.Detail,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ChargeResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(body))
	if err != nil {
		return ChargeResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return ChargeResult{}, fmt.Errorf("mobile money request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return ChargeResult{}, fmt.Errorf("mobile money API error (%d): %s", resp.StatusCode, string(raw))
	}

	var out momoChargeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return ChargeResult{}, fmt.Errorf("failed to parse mobile money response: %w", err)
	}
	if out.Error != nil {
		return ChargeResult{}, fmt.Errorf("%w: %s", ErrDeclined, out.Error.Message)
	}

	ref := out.Reference
	if ref == "" {
		ref = req.Reference
	}
	return ChargeResult{ProviderRef: ref}, nil
}
