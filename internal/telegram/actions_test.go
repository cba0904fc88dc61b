package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeAction(t *testing.T) {
	cases := []struct {
		data string
		want Action
	}{
		{"main_menu", Action{Kind: ActionMainMenu}},
		{"about", Action{Kind: ActionAbout}},
		{"tariffs", Action{Kind: ActionTariffs}},
		{"faq", Action{Kind: ActionFAQ}},
		{"support", Action{Kind: ActionSupport}},
		{"profile", Action{Kind: ActionProfile}},
		{"configs", Action{Kind: ActionConfigs}},
		{"payment_history", Action{Kind: ActionPaymentHistory}},
		{"ignore", Action{Kind: ActionIgnore}},

		{"tariff_2", Action{Kind: ActionTariffInfo, TariffID: 2}},
		{"pay_3", Action{Kind: ActionPay, TariffID: 3}},
		{"faq_item_0", Action{Kind: ActionFAQItem, FAQIndex: 0}},
		{"check_payment_15", Action{Kind: ActionCheckPayment, PaymentID: 15}},
		{"config_openvpn", Action{Kind: ActionDownloadConfig, ConfigType: "openvpn"}},
		{"config_wireguard", Action{Kind: ActionDownloadConfig, ConfigType: "wireguard"}},
		{"payment_method_card_2", Action{Kind: ActionPaymentMethod, MethodID: "card", TariffID: 2}},
		{"payment_method_yoomoney_1", Action{Kind: ActionPaymentMethod, MethodID: "yoomoney", TariffID: 1}},

		{"admin", Action{Kind: ActionAdminPanel}},
		{"admin_users", Action{Kind: ActionAdminUsers}},
		{"admin_users_page_3", Action{Kind: ActionAdminUsers, Page: 3}},
		{"admin_stats", Action{Kind: ActionAdminStats}},
		{"admin_tariffs", Action{Kind: ActionAdminTariffs}},
		{"admin_broadcast", Action{Kind: ActionAdminBroadcast}},

		// Malformed tokens resolve to the unknown action, never an error.
		{"", Action{}},
		{"tariff_abc", Action{}},
		{"pay_", Action{}},
		{"check_payment_x", Action{}},
		{"payment_method_card", Action{}},
		{"admin_users_page_-1", Action{}},
		{"something_else", Action{}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DecodeAction(tc.data), "token %q", tc.data)
	}
}

func TestIsAdminAction(t *testing.T) {
	assert.True(t, Action{Kind: ActionAdminPanel}.IsAdminAction())
	assert.True(t, Action{Kind: ActionAdminUsers}.IsAdminAction())
	assert.True(t, Action{Kind: ActionAdminBroadcast}.IsAdminAction())
	assert.False(t, Action{Kind: ActionMainMenu}.IsAdminAction())
	assert.False(t, Action{Kind: ActionUnknown}.IsAdminAction())
}

func TestEveryActionKindHasRoute(t *testing.T) {
	for kind := ActionUnknown; kind <= ActionIgnore; kind++ {
		if kind == ActionIgnore {
			continue // answered without rendering
		}
		_, ok := routes[kind]
		assert.True(t, ok, "action kind %d has no handler", kind)
	}
}
