package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/earthvpn/telegram-bot/internal/access"
	"github.com/earthvpn/telegram-bot/internal/billing"
	"github.com/earthvpn/telegram-bot/internal/catalog"
	"github.com/earthvpn/telegram-bot/internal/config"
	"github.com/earthvpn/telegram-bot/internal/ratelimit"
	"github.com/earthvpn/telegram-bot/internal/session"
	"github.com/earthvpn/telegram-bot/internal/storage"
)

const sweepInterval = 10 * time.Minute

type Bot struct {
	wg       *sync.WaitGroup
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	catalog  *catalog.Catalog
	repo     *storage.Repository
	billing  *billing.Service
	access   *access.Service
	limiter  *ratelimit.Limiter
	sessions *session.Store
	cache    *messageCache
}

// NewBot creates new Bot instance
func NewBot(cfg *config.Config, repo *storage.Repository, cat *catalog.Catalog,
	billingService *billing.Service, accessService *access.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bot api")
	}
	log.WithField("username", api.Self.UserName).Info("bot authorized")

	bot := &Bot{
		wg:       &sync.WaitGroup{},
		api:      api,
		cfg:      cfg,
		catalog:  cat,
		repo:     repo,
		billing:  billingService,
		access:   accessService,
		limiter:  ratelimit.NewLimiter(cfg.RateLimit, time.Duration(cfg.RateLimitWindow)*time.Second),
		sessions: session.NewStore(),
		cache:    newMessageCache(),
	}

	if err := bot.setMyCommands(); err != nil {
		return nil, err
	}

	return bot, nil
}

func (b *Bot) Run(ctx context.Context) error {
	defer b.wg.Wait()

	go b.limiter.Sweep(ctx, sweepInterval)
	go b.cache.sweep(ctx, sweepInterval, time.Hour)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case update := <-updates:
			b.wg.Add(1)
			go func(update tgbotapi.Update) {
				defer b.wg.Done()
				if err := b.handle(&update); err != nil {
					log.WithError(err).Error("failed to handle update")
				}
			}(update)
		case <-ctx.Done():
			log.WithError(ctx.Err()).Info("stopping bot")
			b.api.StopReceivingUpdates()
			return nil
		}
	}
}

func (b *Bot) handle(update *tgbotapi.Update) error {
	switch {
	case update.Message != nil:
		from := update.Message.From
		if from == nil {
			return errors.New("message without sender")
		}
		if !b.limiter.Allow(from.ID) {
			return b.send(tgbotapi.NewMessage(update.Message.Chat.ID, rateLimitMessageText))
		}
		return b.handleMessage(update.Message)

	case update.CallbackQuery != nil:
		query := update.CallbackQuery
		if !b.limiter.Allow(query.From.ID) {
			return b.answerToast(query.ID, rateLimitToastText)
		}
		return b.handleQuery(query)
	}
	// Other update kinds (edits, polls) are outside the menu surface.
	return nil
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.cfg.IsAdmin(userID)
}

// answerToast answers a callback query with a visible alert.
func (b *Bot) answerToast(queryID, text string) error {
	callback := tgbotapi.NewCallbackWithAlert(queryID, text)
	if _, err := b.api.Request(callback); err != nil {
		return errors.Wrap(err, "failed to answer callback query")
	}
	return nil
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	if _, err := b.api.Send(c); err != nil {
		return errors.Wrap(err, "failed to send message")
	}
	return nil
}

// deliver sends the handler's responses. Previous renderings for the user
// are deleted first; documents are kept (only menu renders are replaced).
func (b *Bot) deliver(userID, chatID int64, resps responses) error {
	for _, id := range b.cache.takeAll(userID) {
		// Best effort: stale ids are expected.
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, id)); err != nil {
			log.WithError(err).WithField("message_id", id).Debug("failed to delete previous message")
		}
	}

	var errs []error
	for _, resp := range resps {
		sent, err := b.api.Send(resp)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, isDocument := resp.(tgbotapi.DocumentConfig); !isDocument {
			b.cache.remember(userID, sent.MessageID)
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("failed to deliver %d of %d responses: %v", len(errs), len(resps), errs)
	}
	return nil
}
