package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/earthvpn/telegram-bot/internal/storage"
)

type responses []tgbotapi.Chattable

// request carries everything a handler needs: the resolved user, the chat to
// render into and the decoded action parameters.
type request struct {
	user   *storage.User
	chatID int64
	action Action
}

type handler func(ctx context.Context, b *Bot, req *request) (responses, error)

// routes is the total dispatch table: every action kind resolves to exactly
// one handler, including the unknown kind.
var routes = map[ActionKind]handler{
	ActionUnknown:        handleNotFound,
	ActionMainMenu:       handleMainMenu,
	ActionAbout:          handleAbout,
	ActionTariffs:        handleTariffs,
	ActionTariffInfo:     handleTariffInfo,
	ActionFAQ:            handleFAQ,
	ActionFAQItem:        handleFAQItem,
	ActionSupport:        handleSupport,
	ActionProfile:        handleProfile,
	ActionPay:            handlePay,
	ActionPaymentMethod:  handlePaymentMethod,
	ActionCheckPayment:   handleCheckPayment,
	ActionConfigs:        handleConfigs,
	ActionDownloadConfig: handleDownloadConfig,
	ActionPaymentHistory: handlePaymentHistory,
	ActionAdminPanel:     handleAdminPanel,
	ActionAdminUsers:     handleAdminUsers,
	ActionAdminStats:     handleAdminStats,
	ActionAdminTariffs:   handleAdminTariffs,
	ActionAdminBroadcast: handleAdminBroadcast,
}

func (b *Bot) handleQuery(query *tgbotapi.CallbackQuery) error {
	if query.Message == nil {
		return errors.New("callback query received without message")
	}

	ctx := context.Background()
	chatID := query.Message.Chat.ID
	act := DecodeAction(query.Data)

	log.WithFields(log.Fields{
		"user_id": query.From.ID,
		"data":    query.Data,
		"kind":    act.Kind,
	}).Debug("callback query")

	// Admin actions answer with a visible denial toast and change nothing.
	if act.IsAdminAction() && !b.isAdmin(query.From.ID) {
		return b.answerToast(query.ID, adminDeniedText)
	}

	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := b.api.Request(callback); err != nil {
		return errors.Wrap(err, "failed to answer callback query")
	}

	if act.Kind == ActionIgnore {
		return nil
	}

	user, err := b.repo.EnsureUser(ctx, query.From.ID, query.From.UserName, query.From.FirstName, query.From.LastName)
	if err != nil {
		return errors.Wrap(err, "failed to ensure user")
	}

	resps, err := routes[act.Kind](ctx, b, &request{user: user, chatID: chatID, action: act})
	if err != nil {
		if derr := b.deliver(user.UserID, chatID, responses{errorMessage(chatID)}); derr != nil {
			log.WithError(derr).Warn("failed to deliver error message")
		}
		return err
	}

	if err := b.repo.TouchActivity(ctx, user.UserID); err != nil {
		log.WithError(err).WithField("user_id", user.UserID).Warn("failed to touch activity")
	}

	return b.deliver(user.UserID, chatID, resps)
}

func errorMessage(chatID int64) tgbotapi.Chattable {
	return tgbotapi.NewMessage(chatID, sorryText)
}

func handleNotFound(ctx context.Context, b *Bot, req *request) (responses, error) {
	res := tgbotapi.NewMessage(req.chatID, notFoundText)
	res.ReplyMarkup = backKeyboard("main_menu")
	return responses{res}, nil
}
