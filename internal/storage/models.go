package storage

import (
	"time"
)

// User represents a Telegram user. The identity is assigned by Telegram;
// rows are created on first interaction and never deleted.
type User struct {
	UserID           int64
	Username         string
	FirstName        string
	LastName         string
	RegistrationDate time.Time
	LastActivity     time.Time
}

// Subscription represents a purchased tariff period. Expiry is checked at
// read time; nothing sweeps expired rows.
type Subscription struct {
	ID        int64
	UserID    int64
	TariffID  int
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
)

// Payment represents a payment attempt. The pending → success transition is
// one-directional; no refund or cancel state is modeled.
type Payment struct {
	ID            int64
	UserID        int64
	TariffID      int
	Amount        float64
	PaymentMethod string
	PaymentID     string // external gateway reference, empty until checked
	Status        PaymentStatus
	CreatedAt     time.Time
}

// ConfigType represents the kind of VPN client configuration
type ConfigType string

const (
	ConfigTypeOpenVPN   ConfigType = "openvpn"
	ConfigTypeWireguard ConfigType = "wireguard"
)

// Config is a persisted VPN client configuration. The payload is write-once:
// downloads return exactly the bytes generated at purchase time.
type Config struct {
	ID         int64
	UserID     int64
	ConfigType ConfigType
	Data       ConfigData
	CreatedAt  time.Time
}

// ConfigData is the structured payload stored as JSON text in config_data.
type ConfigData struct {
	// OpenVPN fields
	Server   string `json:"server,omitempty"`
	Port     int    `json:"port,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	Cipher   string `json:"cipher,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	// WireGuard fields
	PrivateKey string `json:"private_key,omitempty"`
	PublicKey  string `json:"public_key,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"`
	AllowedIPs string `json:"allowed_ips,omitempty"`
	DNS        string `json:"dns,omitempty"`
	Address    string `json:"address,omitempty"`
}
