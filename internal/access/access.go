package access

import (
	"context"

	"github.com/pkg/errors"

	"github.com/earthvpn/telegram-bot/internal/storage"
)

type CheckResult struct {
	CanDownload  bool
	Reason       string
	Subscription *storage.Subscription
}

type Service struct {
	repo *storage.Repository
}

func NewService(repo *storage.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// CanDownloadConfigs checks if the user holds an active subscription and may
// fetch configuration files.
func (s *Service) CanDownloadConfigs(ctx context.Context, userID int64) (*CheckResult, error) {
	subscription, err := s.repo.GetActiveSubscription(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get subscription")
	}

	if subscription == nil {
		return &CheckResult{
			CanDownload: false,
			Reason:      "У вас нет активной подписки. Оформите тариф через меню бота.",
		}, nil
	}

	return &CheckResult{
		CanDownload:  true,
		Subscription: subscription,
	}, nil
}
