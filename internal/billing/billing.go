package billing

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/earthvpn/telegram-bot/internal/catalog"
	"github.com/earthvpn/telegram-bot/internal/storage"
	"github.com/earthvpn/telegram-bot/internal/vpn"
)

type Service struct {
	repo      *storage.Repository
	catalog   *catalog.Catalog
	generator *vpn.Generator
	gateway   Gateway
}

func NewService(repo *storage.Repository, cat *catalog.Catalog, generator *vpn.Generator, gateway Gateway) *Service {
	return &Service{
		repo:      repo,
		catalog:   cat,
		generator: generator,
		gateway:   gateway,
	}
}

// CreatePayment records a pending payment for the tariff, priced from the
// catalog. The tariff and method must exist in the catalog snapshot.
func (s *Service) CreatePayment(ctx context.Context, userID int64, tariffID int, methodID string) (*storage.Payment, error) {
	tariff, ok := s.catalog.TariffByID(tariffID)
	if !ok {
		return nil, errors.Errorf("unknown tariff id: %d", tariffID)
	}
	if _, ok := s.catalog.PaymentMethodByID(methodID); !ok {
		return nil, errors.Errorf("unknown payment method: %s", methodID)
	}

	payment, err := s.repo.CreatePayment(ctx, userID, tariff.ID, tariff.Price, methodID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment")
	}
	return payment, nil
}

// CheckResult is the outcome of a payment check.
type CheckResult struct {
	Payment   *storage.Payment
	Activated bool
	Tariff    catalog.Tariff
}

// CheckPayment asks the gateway for the payment's status. When a pending
// payment is confirmed it activates a subscription for the tariff duration
// and persists both VPN config artifacts for the user. Returns nil when the
// payment does not exist.
func (s *Service) CheckPayment(ctx context.Context, paymentID int64) (*CheckResult, error) {
	payment, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get payment")
	}
	if payment == nil {
		return nil, nil
	}

	if payment.Status != storage.PaymentStatusPending {
		return &CheckResult{Payment: payment}, nil
	}

	status, externalRef, err := s.gateway.Check(ctx, payment)
	if err != nil {
		return nil, errors.Wrap(err, "gateway check failed")
	}
	if status != string(storage.PaymentStatusSuccess) {
		return &CheckResult{Payment: payment}, nil
	}

	tariff, ok := s.catalog.TariffByID(payment.TariffID)
	if !ok {
		return nil, errors.Errorf("payment %d references unknown tariff %d", payment.ID, payment.TariffID)
	}

	if err := s.repo.UpdatePayment(ctx, payment.ID, externalRef, storage.PaymentStatusSuccess); err != nil {
		return nil, errors.Wrap(err, "failed to update payment")
	}
	payment.PaymentID = externalRef
	payment.Status = storage.PaymentStatusSuccess

	sub, err := s.repo.AddSubscription(ctx, payment.UserID, tariff.ID, tariff.DurationDays)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create subscription")
	}
	log.WithFields(log.Fields{
		"user_id":         payment.UserID,
		"tariff_id":       tariff.ID,
		"subscription_id": sub.ID,
	}).Info("subscription activated")

	if err := s.generateConfigs(ctx, payment.UserID); err != nil {
		return nil, err
	}

	return &CheckResult{Payment: payment, Activated: true, Tariff: tariff}, nil
}

// generateConfigs produces and persists both artifacts for the user. The
// stored payloads are authoritative: downloads re-render them verbatim.
func (s *Service) generateConfigs(ctx context.Context, userID int64) error {
	ovpn, err := s.generator.OpenVPN(userID)
	if err != nil {
		return errors.Wrap(err, "failed to generate openvpn config")
	}
	if _, err := s.repo.SaveConfig(ctx, userID, storage.ConfigTypeOpenVPN, ovpn); err != nil {
		return errors.Wrap(err, "failed to save openvpn config")
	}

	wg, err := s.generator.Wireguard(userID)
	if err != nil {
		return errors.Wrap(err, "failed to generate wireguard config")
	}
	if _, err := s.repo.SaveConfig(ctx, userID, storage.ConfigTypeWireguard, wg); err != nil {
		return errors.Wrap(err, "failed to save wireguard config")
	}
	return nil
}
