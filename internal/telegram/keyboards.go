package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/earthvpn/telegram-bot/internal/catalog"
)

func backButton(destination string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", destination)
}

func backKeyboard(destination string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(backButton(destination)),
	)
}

var startKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚀 Начать", "main_menu"),
	),
)

var mainMenuKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🌐 О сервисе", "about"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💎 Тарифы и подписка", "tariffs"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❓ FAQ", "faq"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🛡 Поддержка", "support"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👤 Личный кабинет", "profile"),
	),
)

func tariffsKeyboard(tariffs []catalog.Tariff) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range tariffs {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s - %.0f руб.", t.Name, t.Price),
				fmt.Sprintf("tariff_%d", t.ID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(backButton("main_menu")))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func tariffInfoKeyboard(tariffID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Оплатить", fmt.Sprintf("pay_%d", tariffID)),
		),
		tgbotapi.NewInlineKeyboardRow(backButton("tariffs")),
	)
}

func paymentMethodsKeyboard(tariffID int, methods []catalog.PaymentMethod) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range methods {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				m.Name,
				fmt.Sprintf("payment_method_%s_%d", m.ID, tariffID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(backButton(fmt.Sprintf("tariff_%d", tariffID))))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func checkPaymentKeyboard(paymentID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Проверить оплату", fmt.Sprintf("check_payment_%d", paymentID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить", "tariffs"),
		),
	)
}

func profileKeyboard(hasSubscription bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if hasSubscription {
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📋 Скачать конфигурации", "configs"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔄 Продлить подписку", "tariffs"),
			),
		)
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Выбрать тариф", "tariffs"),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 История покупок", "payment_history"),
		),
		tgbotapi.NewInlineKeyboardRow(backButton("main_menu")),
	)
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

var configsKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("OpenVPN", "config_openvpn"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("WireGuard", "config_wireguard"),
	),
	tgbotapi.NewInlineKeyboardRow(backButton("profile")),
)

func faqKeyboard(items []catalog.FAQItem) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(item.Question, fmt.Sprintf("faq_item_%d", i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(backButton("main_menu")))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func supportKeyboard(supportURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📨 Написать в поддержку", supportURL),
		),
		tgbotapi.NewInlineKeyboardRow(backButton("main_menu")),
	)
}

var adminKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👥 Пользователи", "admin_users"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "admin_stats"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💰 Управление тарифами", "admin_tariffs"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📨 Рассылка", "admin_broadcast"),
	),
	tgbotapi.NewInlineKeyboardRow(backButton("main_menu")),
)

func adminUsersKeyboard(page, lastPage int) tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️", fmt.Sprintf("admin_users_page_%d", page-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page+1, lastPage+1), "ignore"))
	if page < lastPage {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("▶️", fmt.Sprintf("admin_users_page_%d", page+1)))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
		nav,
		{backButton("admin")},
	}}
}

var adminTariffsKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить тариф", "admin_add_tariff"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✏️ Редактировать тариф", "admin_edit_tariff"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Удалить тариф", "admin_delete_tariff"),
	),
	tgbotapi.NewInlineKeyboardRow(backButton("admin")),
)

var adminCancelKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin"),
	),
)
