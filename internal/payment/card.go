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

// CardGateway charges a tokenized card through the PSP's collection
// endpoint. Same asynchronous contract as mobile money.
type CardGateway struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewCardGateway(apiURL string, apiKey string) *CardGateway {
	return &CardGateway{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type cardChargeRequest struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Token     string `json:"token"`
}

type cardChargeResponse struct {
	Reference string `json:"reference"`
	Error     *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *CardGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if g.apiURL == "" {
		log.Printf("paiement carte simulé: ref=%s montant=%d", req.Reference, req.Amount)
		return ChargeResult{ProviderRef: req.Reference}, nil
	}

	payload := cardChargeRequest{
		Reference: req.Reference,
		Amount:    req.Amount,
		Currency:  "XOF",
		Token:     req.Detail,
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
		return ChargeResult{}, fmt.Errorf("card request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return ChargeResult{}, fmt.Errorf("card API error (%d): %s", resp.StatusCode, string(raw))
	}

	var out cardChargeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return ChargeResult{}, fmt.Errorf("failed to parse card response: %w", err)
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
