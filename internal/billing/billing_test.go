package billing

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthvpn/telegram-bot/internal/catalog"
	"github.com/earthvpn/telegram-bot/internal/storage"
	"github.com/earthvpn/telegram-bot/internal/vpn"
)

func newTestService(t *testing.T, gateway Gateway) (*Service, *storage.Repository) {
	t.Helper()

	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Migrate(context.Background()))

	cat, err := catalog.Load("")
	require.NoError(t, err)

	generator, err := vpn.NewGenerator("vpn.example.com", 1194, "wg.example.com:51820")
	require.NoError(t, err)

	return NewService(repo, cat, generator, gateway), repo
}

// pendingGateway reports every payment as still pending.
type pendingGateway struct{}

func (pendingGateway) Check(ctx context.Context, payment *storage.Payment) (string, string, error) {
	return string(storage.PaymentStatusPending), "", nil
}

func TestCreatePaymentPricedFromCatalog(t *testing.T) {
	svc, _ := newTestService(t, NewStubGateway())
	ctx := context.Background()

	payment, err := svc.CreatePayment(ctx, 7, 2, "card")
	require.NoError(t, err)
	assert.Equal(t, storage.PaymentStatusPending, payment.Status)
	assert.Equal(t, 250.0, payment.Amount)
	assert.Equal(t, "card", payment.PaymentMethod)
}

func TestCreatePaymentRejectsUnknownTariff(t *testing.T) {
	svc, _ := newTestService(t, NewStubGateway())

	_, err := svc.CreatePayment(context.Background(), 7, 99, "card")
	assert.Error(t, err)
}

func TestCreatePaymentRejectsUnknownMethod(t *testing.T) {
	svc, _ := newTestService(t, NewStubGateway())

	_, err := svc.CreatePayment(context.Background(), 7, 1, "cash")
	assert.Error(t, err)
}

func TestCheckPaymentMissing(t *testing.T) {
	svc, _ := newTestService(t, NewStubGateway())

	result, err := svc.CheckPayment(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheckPaymentActivatesSubscription(t *testing.T) {
	svc, repo := newTestService(t, NewStubGateway())
	ctx := context.Background()

	_, err := repo.EnsureUser(ctx, 7, "payer", "", "")
	require.NoError(t, err)

	payment, err := svc.CreatePayment(ctx, 7, 1, "card")
	require.NoError(t, err)

	result, err := svc.CheckPayment(ctx, payment.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Activated)
	assert.Equal(t, storage.PaymentStatusSuccess, result.Payment.Status)
	assert.NotEmpty(t, result.Payment.PaymentID, "confirmation assigns a gateway reference")
	assert.Equal(t, 1, result.Tariff.ID)

	sub, err := repo.GetActiveSubscription(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, sub)
	wantEnd := time.Now().AddDate(0, 0, result.Tariff.DurationDays)
	assert.WithinDuration(t, wantEnd, sub.EndDate, time.Minute)

	configs, err := repo.GetConfigs(ctx, 7)
	require.NoError(t, err)
	require.Len(t, configs, 2, "activation produces both client artifacts")
	types := map[storage.ConfigType]bool{}
	for _, c := range configs {
		types[c.ConfigType] = true
	}
	assert.True(t, types[storage.ConfigTypeOpenVPN])
	assert.True(t, types[storage.ConfigTypeWireguard])
}

func TestCheckPaymentIsIdempotentAfterSuccess(t *testing.T) {
	svc, repo := newTestService(t, NewStubGateway())
	ctx := context.Background()

	_, err := repo.EnsureUser(ctx, 7, "payer", "", "")
	require.NoError(t, err)

	payment, err := svc.CreatePayment(ctx, 7, 1, "card")
	require.NoError(t, err)

	first, err := svc.CheckPayment(ctx, payment.ID)
	require.NoError(t, err)
	require.True(t, first.Activated)

	second, err := svc.CheckPayment(ctx, payment.ID)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.False(t, second.Activated, "a settled payment must not activate twice")

	subs, err := repo.GetUserSubscriptions(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	configs, err := repo.GetConfigs(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, configs, 2)
}

func TestCheckPaymentStaysPending(t *testing.T) {
	svc, repo := newTestService(t, pendingGateway{})
	ctx := context.Background()

	_, err := repo.EnsureUser(ctx, 7, "payer", "", "")
	require.NoError(t, err)

	payment, err := svc.CreatePayment(ctx, 7, 1, "card")
	require.NoError(t, err)

	result, err := svc.CheckPayment(ctx, payment.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Activated)
	assert.Equal(t, storage.PaymentStatusPending, result.Payment.Status)

	sub, err := repo.GetActiveSubscription(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, sub)
}
