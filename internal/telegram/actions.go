package telegram

import (
	"strconv"
	"strings"
)

// ActionKind enumerates every menu action the bot understands.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionMainMenu
	ActionAbout
	ActionTariffs
	ActionTariffInfo
	ActionFAQ
	ActionFAQItem
	ActionSupport
	ActionProfile
	ActionPay
	ActionPaymentMethod
	ActionCheckPayment
	ActionConfigs
	ActionDownloadConfig
	ActionPaymentHistory
	ActionAdminPanel
	ActionAdminUsers
	ActionAdminStats
	ActionAdminTariffs
	ActionAdminBroadcast
	ActionIgnore
)

// Action is an interaction token decoded into a tagged value. Tokens are
// decoded exactly once, at the transport boundary; handlers never see the
// raw callback string.
type Action struct {
	Kind       ActionKind
	TariffID   int
	FAQIndex   int
	PaymentID  int64
	MethodID   string
	ConfigType string
	Page       int
}

var exactActions = map[string]ActionKind{
	"main_menu":       ActionMainMenu,
	"about":           ActionAbout,
	"tariffs":         ActionTariffs,
	"faq":             ActionFAQ,
	"support":         ActionSupport,
	"profile":         ActionProfile,
	"configs":         ActionConfigs,
	"payment_history": ActionPaymentHistory,
	"admin":           ActionAdminPanel,
	"admin_users":     ActionAdminUsers,
	"admin_stats":     ActionAdminStats,
	"admin_tariffs":   ActionAdminTariffs,
	"admin_broadcast": ActionAdminBroadcast,
	"ignore":          ActionIgnore,
}

// DecodeAction resolves a raw interaction token: exact matches first, then
// the longest matching parameterized prefix. Malformed parameters decode to
// ActionUnknown, which renders as "not found" and never fails the update.
func DecodeAction(data string) Action {
	if kind, ok := exactActions[data]; ok {
		return Action{Kind: kind}
	}

	switch {
	case strings.HasPrefix(data, "admin_users_page_"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "admin_users_page_"))
		if err != nil || page < 0 {
			return Action{}
		}
		return Action{Kind: ActionAdminUsers, Page: page}

	case strings.HasPrefix(data, "payment_method_"):
		// payment_method_<method>_<tariff>
		rest := strings.TrimPrefix(data, "payment_method_")
		idx := strings.LastIndex(rest, "_")
		if idx <= 0 {
			return Action{}
		}
		tariffID, err := strconv.Atoi(rest[idx+1:])
		if err != nil {
			return Action{}
		}
		return Action{Kind: ActionPaymentMethod, MethodID: rest[:idx], TariffID: tariffID}

	case strings.HasPrefix(data, "check_payment_"):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, "check_payment_"), 10, 64)
		if err != nil {
			return Action{}
		}
		return Action{Kind: ActionCheckPayment, PaymentID: id}

	case strings.HasPrefix(data, "faq_item_"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "faq_item_"))
		if err != nil {
			return Action{}
		}
		return Action{Kind: ActionFAQItem, FAQIndex: idx}

	case strings.HasPrefix(data, "tariff_"):
		id, err := strconv.Atoi(strings.TrimPrefix(data, "tariff_"))
		if err != nil {
			return Action{}
		}
		return Action{Kind: ActionTariffInfo, TariffID: id}

	case strings.HasPrefix(data, "pay_"):
		id, err := strconv.Atoi(strings.TrimPrefix(data, "pay_"))
		if err != nil {
			return Action{}
		}
		return Action{Kind: ActionPay, TariffID: id}

	case strings.HasPrefix(data, "config_"):
		return Action{Kind: ActionDownloadConfig, ConfigType: strings.TrimPrefix(data, "config_")}
	}

	return Action{}
}

// IsAdminAction reports whether the action lives in the admin namespace and
// requires an allow-listed identity.
func (a Action) IsAdminAction() bool {
	switch a.Kind {
	case ActionAdminPanel, ActionAdminUsers, ActionAdminStats, ActionAdminTariffs, ActionAdminBroadcast:
		return true
	}
	return false
}
