package vpn

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/curve25519"

	"github.com/earthvpn/telegram-bot/internal/storage"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator("vpn.example.com", 1194, "wg.example.com:51820")
	require.NoError(t, err)
	return g
}

func TestOpenVPNCredentials(t *testing.T) {
	g := newTestGenerator(t)

	data, err := g.OpenVPN(42)
	require.NoError(t, err)

	assert.Equal(t, "user_42", data.Username)
	assert.Len(t, data.Password, 16)
	assert.Equal(t, "vpn.example.com", data.Server)
	assert.Equal(t, 1194, data.Port)
	assert.Equal(t, "udp", data.Protocol)
	assert.Equal(t, "AES-256-GCM", data.Cipher)
}

func TestOpenVPNPasswordsDiffer(t *testing.T) {
	g := newTestGenerator(t)

	first, err := g.OpenVPN(1)
	require.NoError(t, err)
	second, err := g.OpenVPN(1)
	require.NoError(t, err)
	assert.NotEqual(t, first.Password, second.Password)
}

func TestWireguardKeypairIsValid(t *testing.T) {
	g := newTestGenerator(t)

	data, err := g.Wireguard(42)
	require.NoError(t, err)

	private, err := base64.StdEncoding.DecodeString(data.PrivateKey)
	require.NoError(t, err)
	require.Len(t, private, 32)
	public, err := base64.StdEncoding.DecodeString(data.PublicKey)
	require.NoError(t, err)
	require.Len(t, public, 32)

	// The stored public key is the scalar product of the stored private key.
	derived, err := curve25519.X25519(private, curve25519.Basepoint)
	require.NoError(t, err)
	assert.Equal(t, derived, public)

	assert.Equal(t, "wg.example.com:51820", data.Endpoint)
	assert.True(t, strings.HasPrefix(data.Address, "10.10.10."))
	assert.True(t, strings.HasSuffix(data.Address, "/24"))
}

func TestRenderOpenVPNContainsCredentials(t *testing.T) {
	data := storage.ConfigData{
		Server:   "vpn.example.com",
		Port:     1194,
		Protocol: "udp",
		Cipher:   "AES-256-GCM",
		Username: "user_7",
		Password: "p@ssw0rd1234!!AA",
	}
	text, ok := Render(storage.ConfigTypeOpenVPN, data)
	require.True(t, ok)

	assert.Contains(t, text, "remote vpn.example.com 1194")
	assert.Contains(t, text, "cipher AES-256-GCM")
	assert.Contains(t, text, "user_7\np@ssw0rd1234!!AA")

	// Deterministic over the payload: a second render is byte-identical.
	again, ok := Render(storage.ConfigTypeOpenVPN, data)
	require.True(t, ok)
	assert.Equal(t, text, again)
}

func TestRenderWireguardLayout(t *testing.T) {
	data := storage.ConfigData{
		PrivateKey: "cHJpdmF0ZQ==",
		PublicKey:  "cHVibGlj",
		Endpoint:   "wg.example.com:51820",
		AllowedIPs: "0.0.0.0/0, ::/0",
		DNS:        "1.1.1.1, 8.8.8.8",
		Address:    "10.10.10.5/24",
	}
	text, ok := Render(storage.ConfigTypeWireguard, data)
	require.True(t, ok)

	assert.Contains(t, text, "[Interface]")
	assert.Contains(t, text, "[Peer]")
	assert.Contains(t, text, "PrivateKey = cHJpdmF0ZQ==")
	assert.Contains(t, text, "Endpoint = wg.example.com:51820")
	assert.Contains(t, text, "PersistentKeepalive = 25")
}

func TestRenderUnknownType(t *testing.T) {
	_, ok := Render(storage.ConfigType("ikev2"), storage.ConfigData{})
	assert.False(t, ok)
}
