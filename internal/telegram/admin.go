package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/earthvpn/telegram-bot/internal/storage"
)

const usersPerPage = 5

func handleAdminPanel(ctx context.Context, b *Bot, req *request) (responses, error) {
	b.sessions.Cancel(req.user.UserID)
	return responses{htmlMessage(req.chatID,
		"🔑 <b>Административная панель</b>\n\nВыберите раздел:", adminKeyboard)}, nil
}

// lastPageIndex is the index of the last page for n items: ceil(n/size)-1,
// clamped to zero so an empty list still has a page 0.
func lastPageIndex(n, size int) int {
	last := (n + size - 1) / size
	if last > 0 {
		last--
	}
	return last
}

// pageWindow returns the [start, end) slice bounds for the page. Pages past
// the end produce an empty window, never an error.
func pageWindow(n, page, size int) (int, int) {
	start := page * size
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}

func handleAdminUsers(ctx context.Context, b *Bot, req *request) (responses, error) {
	users, err := b.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get users")
	}

	page := req.action.Page
	lastPage := lastPageIndex(len(users), usersPerPage)
	start, end := pageWindow(len(users), page, usersPerPage)
	pageUsers := users[start:end]

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 <b>Пользователи</b> (всего: %d)\n\n", len(users))
	for i, u := range pageUsers {
		name := strings.TrimSpace(u.FirstName + " " + u.LastName)
		if name == "" {
			name = "Не указано"
		}
		username := u.Username
		if username == "" {
			username = "Нет"
		}
		fmt.Fprintf(&sb, "%d. ID: <code>%d</code>\n", start+i+1, u.UserID)
		fmt.Fprintf(&sb, "👤 %s (@%s)\n", name, username)
		fmt.Fprintf(&sb, "📅 Зарегистрирован: %s\n\n", u.RegistrationDate.Format("02.01.2006"))
	}
	if len(pageUsers) == 0 {
		sb.WriteString("Пользователи не найдены")
	}

	return responses{htmlMessage(req.chatID, sb.String(), adminUsersKeyboard(page, lastPage))}, nil
}

func handleAdminStats(ctx context.Context, b *Bot, req *request) (responses, error) {
	userCount, err := b.repo.CountUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	tariffStats, err := b.repo.CountActiveSubscriptionsByTariff(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get subscription stats")
	}

	total := 0
	for _, count := range tariffStats {
		total += count
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 <b>Статистика на %s</b>\n\n", time.Now().Format("02.01.2006"))
	fmt.Fprintf(&sb, "👥 Всего пользователей: %d\n", userCount)
	fmt.Fprintf(&sb, "💰 Активных подписок: %d\n\n", total)

	if len(tariffStats) > 0 {
		sb.WriteString("<b>По тарифам:</b>\n")
		for _, tariff := range b.catalog.Tariffs {
			if count, ok := tariffStats[tariff.ID]; ok {
				fmt.Fprintf(&sb, "• %s: %d подписчиков\n", tariff.Name, count)
			}
		}
	}

	return responses{htmlMessage(req.chatID, sb.String(), backKeyboard("admin"))}, nil
}

func handleAdminTariffs(ctx context.Context, b *Bot, req *request) (responses, error) {
	var sb strings.Builder
	sb.WriteString("💰 <b>Управление тарифами</b>\n\n")
	for _, t := range b.catalog.Tariffs {
		fmt.Fprintf(&sb, "<b>%s</b>\n", t.Name)
		fmt.Fprintf(&sb, "Цена: %.0f руб.\n", t.Price)
		fmt.Fprintf(&sb, "Длительность: %d дней\n", t.DurationDays)
		fmt.Fprintf(&sb, "Устройств: %d\n\n", t.DeviceCount)
	}
	return responses{htmlMessage(req.chatID, sb.String(), adminTariffsKeyboard)}, nil
}

func handleAdminBroadcast(ctx context.Context, b *Bot, req *request) (responses, error) {
	b.sessions.Expect(req.user.UserID)
	return responses{htmlMessage(req.chatID,
		"📨 <b>Рассылка сообщений</b>\n\nВведите текст для рассылки всем пользователям:",
		adminCancelKeyboard)}, nil
}

type userLister interface {
	GetAllUsers(ctx context.Context) ([]*storage.User, error)
}

type deliverFunc func(chatID int64, text string) error

// broadcastToAll delivers text to every user best-effort: an individual
// delivery failure never stops the loop. Returns sent and total counts.
func broadcastToAll(ctx context.Context, repo userLister, deliver deliverFunc, text string) (int, int, error) {
	users, err := repo.GetAllUsers(ctx)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to get users")
	}

	sent := 0
	for _, u := range users {
		if err := deliver(u.UserID, text); err != nil {
			log.WithError(err).WithField("user_id", u.UserID).Debug("broadcast delivery failed")
			continue
		}
		sent++
	}
	return sent, len(users), nil
}

// runBroadcast is triggered by the admin's next text message after arming
// the broadcast state.
func (b *Bot) runBroadcast(ctx context.Context, adminChatID int64, text string) error {
	body := fmt.Sprintf("📢 <b>Уведомление от EarthVPN</b>\n\n%s", text)

	if err := b.send(tgbotapi.NewMessage(adminChatID, "✅ Рассылка начата...")); err != nil {
		log.WithError(err).Warn("failed to confirm broadcast start")
	}

	sent, total, err := broadcastToAll(ctx, b.repo, func(chatID int64, text string) error {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		return b.send(msg)
	}, body)
	if err != nil {
		return err
	}

	report := tgbotapi.NewMessage(adminChatID,
		fmt.Sprintf("✅ Рассылка завершена\nОтправлено: %d из %d пользователей", sent, total))
	report.ParseMode = tgbotapi.ModeHTML
	report.ReplyMarkup = backKeyboard("admin")
	return b.send(report)
}
