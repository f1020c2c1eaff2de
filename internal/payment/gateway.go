package payment

import (
	"context"
	"errors"
)

// ErrDeclined is a definitive refusal from the provider, as opposed to
// transport errors which may be retried with a new attempt.
var ErrDeclined = errors.New("payment declined")

type ChargeRequest struct {
	// provider-side correlation id, echoed back on the webhook
	Reference string
	// minor currency units
	Amount int64
	// wallet number for mobile money, token for cards
	Detail string
}

type ChargeResult struct {
	// provider's own reference when it assigns one, otherwise the
	// request reference
	ProviderRef string
}

// Gateway initiates a charge with one provider. Initiation is
// asynchronous: a nil error only means the provider accepted the
// attempt; the outcome arrives on the webhook.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}
