package vpn

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mathrand "math/rand"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-password/password"
	"golang.org/x/crypto/curve25519"

	"github.com/earthvpn/telegram-bot/internal/storage"
)

const (
	openVPNProtocol = "udp"
	openVPNCipher   = "AES-256-GCM"

	wireguardAllowedIPs = "0.0.0.0/0, ::/0"
	wireguardDNS        = "1.1.1.1, 8.8.8.8"

	passwordLength  = 16
	passwordSymbols = "!@#$%^&*"
)

// Generator produces VPN client configuration payloads for a user.
// It is a pure transformation: nothing here touches the store or network.
type Generator struct {
	openVPNHost       string
	openVPNPort       int
	wireguardEndpoint string

	passwords *password.Generator
}

func NewGenerator(openVPNHost string, openVPNPort int, wireguardEndpoint string) (*Generator, error) {
	gen, err := password.NewGenerator(&password.GeneratorInput{
		Symbols: passwordSymbols,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create password generator")
	}
	return &Generator{
		openVPNHost:       openVPNHost,
		openVPNPort:       openVPNPort,
		wireguardEndpoint: wireguardEndpoint,
		passwords:         gen,
	}, nil
}

// OpenVPN generates a credentials payload for the user: a fixed username
// derived from the identity and a fresh random password.
func (g *Generator) OpenVPN(userID int64) (storage.ConfigData, error) {
	pass, err := g.passwords.Generate(passwordLength, 4, 2, false, true)
	if err != nil {
		return storage.ConfigData{}, errors.Wrap(err, "failed to generate password")
	}
	return storage.ConfigData{
		Server:   g.openVPNHost,
		Port:     g.openVPNPort,
		Protocol: openVPNProtocol,
		Cipher:   openVPNCipher,
		Username: fmt.Sprintf("user_%d", userID),
		Password: pass,
	}, nil
}

// Wireguard generates a keypair payload for the user. The public key is
// derived by X25519 scalar multiplication, so the pair is mathematically
// valid even though no server-side peer is ever provisioned for it.
func (g *Generator) Wireguard(userID int64) (storage.ConfigData, error) {
	var private [32]byte
	if _, err := rand.Read(private[:]); err != nil {
		return storage.ConfigData{}, errors.Wrap(err, "failed to generate private key")
	}
	// Clamp per the X25519 convention.
	private[0] &= 248
	private[31] &= 127
	private[31] |= 64

	public, err := curve25519.X25519(private[:], curve25519.Basepoint)
	if err != nil {
		return storage.ConfigData{}, errors.Wrap(err, "failed to derive public key")
	}

	return storage.ConfigData{
		PrivateKey: base64.StdEncoding.EncodeToString(private[:]),
		PublicKey:  base64.StdEncoding.EncodeToString(public),
		Endpoint:   g.wireguardEndpoint,
		AllowedIPs: wireguardAllowedIPs,
		DNS:        wireguardDNS,
		Address:    fmt.Sprintf("10.10.10.%d/24", 2+mathrand.Intn(253)),
	}, nil
}
