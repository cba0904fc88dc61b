package storage

import (
	"context"
	"fmt"
)

// Migrate creates all necessary tables
func (r *Repository) Migrate(ctx context.Context) error {
	migrations := []struct {
		name string
		sql  string
	}{
		{
			name: "create_users",
			sql: `CREATE TABLE IF NOT EXISTS users (
				user_id INTEGER PRIMARY KEY,
				username TEXT,
				first_name TEXT,
				last_name TEXT,
				registration_date TIMESTAMP NOT NULL,
				last_activity TIMESTAMP NOT NULL
			)`,
		},
		{
			name: "create_subscriptions",
			sql: `CREATE TABLE IF NOT EXISTS subscriptions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				tariff_id INTEGER NOT NULL,
				start_date TIMESTAMP NOT NULL,
				end_date TIMESTAMP NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT 1,
				FOREIGN KEY (user_id) REFERENCES users(user_id)
			)`,
		},
		{
			name: "create_payments",
			sql: `CREATE TABLE IF NOT EXISTS payments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				tariff_id INTEGER NOT NULL,
				amount REAL NOT NULL,
				payment_method TEXT NOT NULL,
				payment_id TEXT,
				status TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(user_id)
			)`,
		},
		{
			name: "create_configs",
			sql: `CREATE TABLE IF NOT EXISTS configs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				config_type TEXT NOT NULL,
				config_data TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(user_id)
			)`,
		},
		{
			name: "create_indexes",
			sql: `CREATE INDEX IF NOT EXISTS idx_subscriptions_user_id ON subscriptions(user_id);
				CREATE INDEX IF NOT EXISTS idx_subscriptions_end_date ON subscriptions(end_date);
				CREATE INDEX IF NOT EXISTS idx_payments_user_id ON payments(user_id);
				CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status);
				CREATE INDEX IF NOT EXISTS idx_configs_user_id ON configs(user_id);
			`,
		},
	}

	for _, migration := range migrations {
		if _, err := r.db.ExecContext(ctx, migration.sql); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.name, err)
		}
	}

	return nil
}
