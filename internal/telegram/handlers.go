package telegram

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/yeqown/go-qrcode"

	"github.com/earthvpn/telegram-bot/internal/storage"
	"github.com/earthvpn/telegram-bot/internal/vpn"
)

func htmlMessage(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) tgbotapi.MessageConfig {
	res := tgbotapi.NewMessage(chatID, text)
	res.ParseMode = tgbotapi.ModeHTML
	res.ReplyMarkup = keyboard
	return res
}

func handleMainMenu(ctx context.Context, b *Bot, req *request) (responses, error) {
	return responses{htmlMessage(req.chatID, mainMenuText, mainMenuKeyboard)}, nil
}

func handleAbout(ctx context.Context, b *Bot, req *request) (responses, error) {
	return responses{htmlMessage(req.chatID, aboutText, backKeyboard("main_menu"))}, nil
}

func handleTariffs(ctx context.Context, b *Bot, req *request) (responses, error) {
	return responses{htmlMessage(req.chatID, tariffsText, tariffsKeyboard(b.catalog.Tariffs))}, nil
}

func handleTariffInfo(ctx context.Context, b *Bot, req *request) (responses, error) {
	tariff, ok := b.catalog.TariffByID(req.action.TariffID)
	if !ok {
		return handleNotFound(ctx, b, req)
	}

	countries := strings.Join(tariff.Countries, ", ")
	if len(tariff.Countries) >= 5 {
		countries = fmt.Sprintf("%d стран", len(tariff.Countries))
	}

	text := fmt.Sprintf(tariffInfoText,
		tariff.Name, tariff.Description, tariff.Price,
		tariff.DurationDays, tariff.DeviceCount, countries)
	return responses{htmlMessage(req.chatID, text, tariffInfoKeyboard(tariff.ID))}, nil
}

func handleFAQ(ctx context.Context, b *Bot, req *request) (responses, error) {
	return responses{htmlMessage(req.chatID, faqText, faqKeyboard(b.catalog.FAQ))}, nil
}

func handleFAQItem(ctx context.Context, b *Bot, req *request) (responses, error) {
	item, ok := b.catalog.FAQItemByIndex(req.action.FAQIndex)
	if !ok {
		return handleNotFound(ctx, b, req)
	}
	text := fmt.Sprintf("<b>Вопрос:</b> %s\n\n<b>Ответ:</b> %s", item.Question, item.Answer)
	return responses{htmlMessage(req.chatID, text, backKeyboard("faq"))}, nil
}

func handleSupport(ctx context.Context, b *Bot, req *request) (responses, error) {
	return responses{htmlMessage(req.chatID, supportText, supportKeyboard(b.cfg.SupportURL))}, nil
}

func handleProfile(ctx context.Context, b *Bot, req *request) (responses, error) {
	sub, err := b.repo.GetActiveSubscription(ctx, req.user.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active subscription")
	}

	info := noSubscriptionText
	if sub != nil {
		if tariff, ok := b.catalog.TariffByID(sub.TariffID); ok {
			daysLeft := int(time.Until(sub.EndDate).Hours() / 24)
			if daysLeft < 0 {
				daysLeft = 0
			}
			info = fmt.Sprintf(subscriptionInfoText,
				tariff.Name, sub.EndDate.Format("02.01.2006"), daysLeft)
		}
	}

	text := fmt.Sprintf(profileText, info)
	return responses{htmlMessage(req.chatID, text, profileKeyboard(sub != nil))}, nil
}

func handlePay(ctx context.Context, b *Bot, req *request) (responses, error) {
	if _, ok := b.catalog.TariffByID(req.action.TariffID); !ok {
		return handleNotFound(ctx, b, req)
	}
	return responses{htmlMessage(req.chatID, paymentText,
		paymentMethodsKeyboard(req.action.TariffID, b.catalog.PaymentMethods))}, nil
}

func handlePaymentMethod(ctx context.Context, b *Bot, req *request) (responses, error) {
	tariff, ok := b.catalog.TariffByID(req.action.TariffID)
	if !ok {
		res := htmlMessage(req.chatID, "Тариф не найден. Пожалуйста, выберите другой тариф.", backKeyboard("tariffs"))
		return responses{res}, nil
	}
	method, ok := b.catalog.PaymentMethodByID(req.action.MethodID)
	if !ok {
		return handleNotFound(ctx, b, req)
	}

	payment, err := b.billing.CreatePayment(ctx, req.user.UserID, tariff.ID, method.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment")
	}

	text := fmt.Sprintf("<b>Оплата тарифа:</b> %s\n<b>Сумма:</b> %.0f руб.\n\n%s\n\nПосле оплаты нажмите кнопку 'Проверить оплату'",
		tariff.Name, tariff.Price, method.Instruction)
	return responses{htmlMessage(req.chatID, text, checkPaymentKeyboard(payment.ID))}, nil
}

func handleCheckPayment(ctx context.Context, b *Bot, req *request) (responses, error) {
	result, err := b.billing.CheckPayment(ctx, req.action.PaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check payment")
	}
	if result == nil {
		res := htmlMessage(req.chatID, "Платеж не найден. Пожалуйста, попробуйте снова.", backKeyboard("tariffs"))
		return responses{res}, nil
	}

	if result.Activated {
		text := fmt.Sprintf("✅ Оплата успешно произведена! Тариф '%s' активирован.\n\n"+
			"Вы можете скачать конфигурационные файлы в личном кабинете.", result.Tariff.Name)
		return responses{htmlMessage(req.chatID, text, backKeyboard("profile"))}, nil
	}

	text := fmt.Sprintf("Статус платежа: %s", result.Payment.Status)
	return responses{htmlMessage(req.chatID, text, checkPaymentKeyboard(result.Payment.ID))}, nil
}

func handleConfigs(ctx context.Context, b *Bot, req *request) (responses, error) {
	check, err := b.access.CanDownloadConfigs(ctx, req.user.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check access")
	}
	if !check.CanDownload {
		return responses{htmlMessage(req.chatID, check.Reason, backKeyboard("profile"))}, nil
	}
	return responses{htmlMessage(req.chatID, "Выберите тип конфигурации для скачивания:", configsKeyboard)}, nil
}

func handleDownloadConfig(ctx context.Context, b *Bot, req *request) (responses, error) {
	configType := storage.ConfigType(req.action.ConfigType)

	configs, err := b.repo.GetConfigs(ctx, req.user.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get configs")
	}

	// Newest first, so the first match is the latest purchase.
	var found *storage.Config
	for _, cfg := range configs {
		if cfg.ConfigType == configType {
			found = cfg
			break
		}
	}
	if found == nil {
		res := htmlMessage(req.chatID, "Конфигурационный файл не найден. Пожалуйста, обратитесь в поддержку.", backKeyboard("profile"))
		return responses{res}, nil
	}

	text, ok := vpn.Render(found.ConfigType, found.Data)
	if !ok {
		return handleNotFound(ctx, b, req)
	}

	resps := responses{configDocument(req.chatID, string(configType), text)}
	if configType == storage.ConfigTypeWireguard {
		if qr, err := configQR(req.chatID, text); err == nil {
			resps = append(resps, qr)
		}
	}
	resps = append(resps, htmlMessage(req.chatID,
		fmt.Sprintf("✅ Конфигурационный файл %s отправлен!", strings.ToUpper(string(configType))),
		configsKeyboard))
	return resps, nil
}

func configDocument(chatID int64, configType, content string) tgbotapi.Chattable {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("earthvpn_%s.conf", configType),
		Bytes: []byte(content),
	})
	doc.Caption = fmt.Sprintf("Конфигурация %s для EarthVPN", strings.ToUpper(configType))
	return doc
}

// configQR renders the config text as a QR image for mobile clients.
func configQR(chatID int64, content string) (tgbotapi.Chattable, error) {
	qr, err := qrcode.New(content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create qr code")
	}
	var buf bytes.Buffer
	if err := qr.SaveTo(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to encode qr code")
	}
	return tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "earthvpn_wireguard_qr.png",
		Bytes: buf.Bytes(),
	}), nil
}

func handlePaymentHistory(ctx context.Context, b *Bot, req *request) (responses, error) {
	payments, err := b.repo.GetUserPayments(ctx, req.user.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get payments")
	}

	if len(payments) == 0 {
		return responses{htmlMessage(req.chatID, "У вас пока нет истории платежей", backKeyboard("profile"))}, nil
	}

	var sb strings.Builder
	sb.WriteString("<b>История платежей:</b>\n\n")
	for _, p := range payments {
		tariffName := "Неизвестный тариф"
		if tariff, ok := b.catalog.TariffByID(p.TariffID); ok {
			tariffName = tariff.Name
		}
		fmt.Fprintf(&sb, "📅 <b>%s</b>\n", p.CreatedAt.Format("02.01.2006 15:04"))
		fmt.Fprintf(&sb, "🏷 Тариф: %s\n", tariffName)
		fmt.Fprintf(&sb, "💰 Сумма: %.0f руб.\n", p.Amount)
		fmt.Fprintf(&sb, "💳 Способ: %s\n", p.PaymentMethod)
		fmt.Fprintf(&sb, "✅ Статус: %s\n\n", p.Status)
	}

	return responses{htmlMessage(req.chatID, sb.String(), backKeyboard("profile"))}, nil
}
