package billing

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/earthvpn/telegram-bot/internal/storage"
)

// Gateway is the opaque payment provider. Given a payment it answers with a
// status string and the provider-side reference for it.
type Gateway interface {
	Check(ctx context.Context, payment *storage.Payment) (status string, externalRef string, err error)
}

// StubGateway is a placeholder provider that confirms every pending payment.
// It stands in for an unimplemented gateway callback and must not be treated
// as a trust boundary outside demonstration setups.
type StubGateway struct{}

func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

func (g *StubGateway) Check(ctx context.Context, payment *storage.Payment) (string, string, error) {
	ref, err := generateReference()
	if err != nil {
		return "", "", err
	}
	return string(storage.PaymentStatusSuccess), ref, nil
}

// generateReference produces an opaque provider-style reference.
func generateReference() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "failed to generate random bytes")
	}
	return hex.EncodeToString(bytes), nil
}
