package payments

import "context"

// Intent is the processor's authorization handle for a not-yet-captured charge.
// Only the id is persisted locally (on Booking / RoomHold).
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// Provider is the minimal contract the booking core needs from a payment
// processor. Amounts are in the smallest currency unit.
type Provider interface {
	// CreateIntent opens an authorization and returns its client secret.
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error)

	// Refund returns money against a confirmed intent. amountMinor == 0 means
	// refund the full remaining charge.
	Refund(ctx context.Context, paymentIntentID string, amountMinor int64) error

	// Cancel voids an intent that was never confirmed by the client.
	Cancel(ctx context.Context, paymentIntentID string) error
}
