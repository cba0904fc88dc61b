package vpn

import (
	"fmt"

	"github.com/earthvpn/telegram-bot/internal/storage"
)

// RenderOpenVPN formats a stored payload as an OpenVPN client .conf file.
// Rendering is deterministic over the payload: downloads always reproduce
// the exact text generated at purchase time.
func RenderOpenVPN(data storage.ConfigData) string {
	return fmt.Sprintf(`client
dev tun
proto %s
remote %s %d
resolv-retry infinite
nobind
persist-key
persist-tun
cipher %s
auth SHA256
verb 3
remote-cert-tls server

<auth-user-pass>
%s
%s
</auth-user-pass>
`, data.Protocol, data.Server, data.Port, data.Cipher, data.Username, data.Password)
}

// RenderWireguard formats a stored payload as a WireGuard .conf file.
func RenderWireguard(data storage.ConfigData) string {
	return fmt.Sprintf(`[Interface]
PrivateKey = %s
Address = %s
DNS = %s

[Peer]
PublicKey = %s
Endpoint = %s
AllowedIPs = %s
PersistentKeepalive = 25
`, data.PrivateKey, data.Address, data.DNS, data.PublicKey, data.Endpoint, data.AllowedIPs)
}

// Render dispatches on the stored config type.
func Render(configType storage.ConfigType, data storage.ConfigData) (string, bool) {
	switch configType {
	case storage.ConfigTypeOpenVPN:
		return RenderOpenVPN(data), true
	case storage.ConfigTypeWireguard:
		return RenderWireguard(data), true
	}
	return "", false
}
