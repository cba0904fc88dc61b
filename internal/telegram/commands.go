package telegram

import (
	"context"
	"encoding/json"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// setMyCommands registers the command menu with Telegram.
func (b *Bot) setMyCommands() error {
	data, err := json.Marshal([]tgbotapi.BotCommand{
		{Command: "start", Description: "Главное меню"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal commands")
	}
	params := make(tgbotapi.Params)
	params.AddNonEmpty("commands", string(data))
	if _, err := b.api.MakeRequest("setMyCommands", params); err != nil {
		return errors.Wrap(err, "failed to set commands")
	}
	return nil
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) error {
	ctx := context.Background()
	from := msg.From

	user, err := b.repo.EnsureUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		return errors.Wrap(err, "failed to ensure user")
	}

	defer func() {
		if err := b.repo.TouchActivity(ctx, user.UserID); err != nil {
			log.WithError(err).WithField("user_id", user.UserID).Warn("failed to touch activity")
		}
	}()

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			res := tgbotapi.NewMessage(msg.Chat.ID, startText)
			res.ParseMode = tgbotapi.ModeHTML
			res.ReplyMarkup = startKeyboard
			return b.deliver(user.UserID, msg.Chat.ID, responses{res})
		case "admin":
			if !b.isAdmin(user.UserID) {
				return b.send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ У вас нет доступа к административной панели"))
			}
			res := tgbotapi.NewMessage(msg.Chat.ID, "🔑 <b>Административная панель</b>\n\nВыберите раздел:")
			res.ParseMode = tgbotapi.ModeHTML
			res.ReplyMarkup = adminKeyboard
			return b.deliver(user.UserID, msg.Chat.ID, responses{res})
		default:
			return b.send(tgbotapi.NewMessage(msg.Chat.ID, navigationHintText))
		}
	}

	// The broadcast flag clears on the next text interaction no matter what.
	if b.isAdmin(user.UserID) && b.sessions.Consume(user.UserID) {
		return b.runBroadcast(ctx, msg.Chat.ID, msg.Text)
	}

	return b.send(tgbotapi.NewMessage(msg.Chat.ID, navigationHintText))
}
