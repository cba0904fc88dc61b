package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

type Repository struct {
	db *sql.DB
}

// NewRepository opens the SQLite database at dsn, creating the parent
// directory when needed. The process must abort if this fails.
func NewRepository(dsn string) (*Repository, error) {
	if dsn == "" {
		dsn = "earthvpn.db"
	}

	if dsn != ":memory:" {
		absPath, err := filepath.Abs(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path '%s': %w", dsn, err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = absPath
	}

	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database '%s': %w", dsn, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database '%s': %w", dsn, err)
	}
	log.WithField("dsn", dsn).Info("database connection established")

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// User operations

// EnsureUser registers the user on first interaction. The call is idempotent:
// for an existing identity the stored row is returned untouched.
func (r *Repository) EnsureUser(ctx context.Context, userID int64, username, firstName, lastName string) (*User, error) {
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (user_id, username, first_name, last_name, registration_date, last_activity)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, username, firstName, lastName, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return r.GetUser(ctx, userID)
}

// TouchActivity updates the last-activity timestamp.
func (r *Repository) TouchActivity(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET last_activity = ? WHERE user_id = ?",
		time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user activity: %w", err)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (*User, error) {
	user := &User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, username, first_name, last_name, registration_date, last_activity
		 FROM users WHERE user_id = ?`,
		userID,
	).Scan(&user.UserID, &user.Username, &user.FirstName, &user.LastName,
		&user.RegistrationDate, &user.LastActivity)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// GetAllUsers returns the full snapshot ordered by registration time,
// newest first. Pagination is a caller-side windowing concern.
func (r *Repository) GetAllUsers(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, username, first_name, last_name, registration_date, last_activity
		 FROM users ORDER BY registration_date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		err := rows.Scan(&user.UserID, &user.Username, &user.FirstName, &user.LastName,
			&user.RegistrationDate, &user.LastActivity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// Subscription operations

// GetActiveSubscription returns the subscription with the latest end_date
// among rows that are flagged active and not yet expired, or nil when the
// user has none. Expired rows are invisible here even if still flagged.
func (r *Repository) GetActiveSubscription(ctx context.Context, userID int64) (*Subscription, error) {
	sub := &Subscription{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, tariff_id, start_date, end_date, is_active
		 FROM subscriptions
		 WHERE user_id = ? AND is_active = 1 AND end_date > ?
		 ORDER BY end_date DESC LIMIT 1`,
		userID, time.Now(),
	).Scan(&sub.ID, &sub.UserID, &sub.TariffID, &sub.StartDate, &sub.EndDate, &sub.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}
	return sub, nil
}

// AddSubscription creates a subscription ending durationDays from now.
func (r *Repository) AddSubscription(ctx context.Context, userID int64, tariffID, durationDays int) (*Subscription, error) {
	now := time.Now()
	sub := &Subscription{
		UserID:    userID,
		TariffID:  tariffID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, durationDays),
		IsActive:  true,
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, tariff_id, start_date, end_date, is_active)
		 VALUES (?, ?, ?, ?, 1)`,
		sub.UserID, sub.TariffID, sub.StartDate, sub.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	sub.ID = id
	return sub, nil
}

func (r *Repository) DeactivateSubscription(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE subscriptions SET is_active = 0 WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}
	return nil
}

// GetUserSubscriptions returns all subscription rows for the user, newest first.
func (r *Repository) GetUserSubscriptions(ctx context.Context, userID int64) ([]*Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, tariff_id, start_date, end_date, is_active
		 FROM subscriptions WHERE user_id = ? ORDER BY start_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*Subscription
	for rows.Next() {
		sub := &Subscription{}
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.TariffID,
			&sub.StartDate, &sub.EndDate, &sub.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// CountActiveSubscriptionsByTariff groups currently active subscriptions by
// tariff id, for the admin stats screen.
func (r *Repository) CountActiveSubscriptionsByTariff(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tariff_id, COUNT(*) FROM subscriptions
		 WHERE is_active = 1 AND end_date > ?
		 GROUP BY tariff_id`,
		time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]int)
	for rows.Next() {
		var tariffID, count int
		if err := rows.Scan(&tariffID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan subscription stats: %w", err)
		}
		stats[tariffID] = count
	}
	return stats, rows.Err()
}

// Payment operations

// CreatePayment records a new pending payment.
func (r *Repository) CreatePayment(ctx context.Context, userID int64, tariffID int, amount float64, method string) (*Payment, error) {
	payment := &Payment{
		UserID:        userID,
		TariffID:      tariffID,
		Amount:        amount,
		PaymentMethod: method,
		Status:        PaymentStatusPending,
		CreatedAt:     time.Now(),
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (user_id, tariff_id, amount, payment_method, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		payment.UserID, payment.TariffID, payment.Amount, payment.PaymentMethod,
		payment.Status, payment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	payment.ID = id
	return payment, nil
}

// UpdatePayment sets the external gateway reference and the new status.
func (r *Repository) UpdatePayment(ctx context.Context, id int64, externalID string, status PaymentStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE payments SET payment_id = ?, status = ? WHERE id = ?",
		externalID, status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *Repository) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	payment := &Payment{}
	var externalID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, tariff_id, amount, payment_method, payment_id, status, created_at
		 FROM payments WHERE id = ?`,
		id,
	).Scan(&payment.ID, &payment.UserID, &payment.TariffID, &payment.Amount,
		&payment.PaymentMethod, &externalID, &payment.Status, &payment.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}
	if externalID.Valid {
		payment.PaymentID = externalID.String
	}
	return payment, nil
}

// GetUserPayments returns all payments for the user, newest first.
func (r *Repository) GetUserPayments(ctx context.Context, userID int64) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, tariff_id, amount, payment_method, payment_id, status, created_at
		 FROM payments WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		var externalID sql.NullString
		if err := rows.Scan(&payment.ID, &payment.UserID, &payment.TariffID, &payment.Amount,
			&payment.PaymentMethod, &externalID, &payment.Status, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if externalID.Valid {
			payment.PaymentID = externalID.String
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// Config operations

// SaveConfig persists a generated configuration payload. Rows accumulate;
// nothing is replaced or deleted.
func (r *Repository) SaveConfig(ctx context.Context, userID int64, configType ConfigType, data ConfigData) (*Config, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config data: %w", err)
	}
	cfg := &Config{
		UserID:     userID,
		ConfigType: configType,
		Data:       data,
		CreatedAt:  time.Now(),
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO configs (user_id, config_type, config_data, created_at)
		 VALUES (?, ?, ?, ?)`,
		cfg.UserID, cfg.ConfigType, string(encoded), cfg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	cfg.ID = id
	return cfg, nil
}

// GetConfigs returns all config rows for the user, newest first, with the
// payload deserialized from its stored encoding.
func (r *Repository) GetConfigs(ctx context.Context, userID int64) ([]*Config, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, config_type, config_data, created_at
		 FROM configs WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query configs: %w", err)
	}
	defer rows.Close()

	var configs []*Config
	for rows.Next() {
		cfg := &Config{}
		var encoded string
		if err := rows.Scan(&cfg.ID, &cfg.UserID, &cfg.ConfigType, &encoded, &cfg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan config: %w", err)
		}
		if err := json.Unmarshal([]byte(encoded), &cfg.Data); err != nil {
			return nil, fmt.Errorf("failed to decode config data: %w", err)
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}
