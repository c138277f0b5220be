package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations are executed in order at startup. Statements are idempotent
// (IF NOT EXISTS / ON CONFLICT DO NOTHING) so restarting is safe.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id         uuid NOT NULL UNIQUE,
		full_name       text NOT NULL,
		email           text NOT NULL,
		phone           text,
		avatar_url      text NOT NULL DEFAULT '',
		serial_position int,
		welcome_shown   boolean NOT NULL DEFAULT false,
		created_at      timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS user_roles (
		id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id     uuid NOT NULL UNIQUE,
		role        text NOT NULL DEFAULT 'member',
		permissions jsonb NOT NULL DEFAULT '{}',
		assigned_by uuid,
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS expense_categories (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name       text NOT NULL UNIQUE,
		name_bn    text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		category_id  uuid REFERENCES expense_categories(id) ON DELETE SET NULL,
		item_name    text NOT NULL,
		amount       double precision NOT NULL,
		quantity     double precision,
		unit         text,
		paid_by      uuid NOT NULL,
		added_by     uuid NOT NULL,
		expense_date date NOT NULL DEFAULT CURRENT_DATE,
		expense_type text NOT NULL DEFAULT 'market',
		is_emergency boolean NOT NULL DEFAULT false,
		notes        text,
		created_at   timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_paid_by ON expenses (paid_by)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (expense_date)`,

	`CREATE TABLE IF NOT EXISTS deposits (
		id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id      uuid NOT NULL,
		amount       double precision NOT NULL,
		deposit_date date NOT NULL DEFAULT CURRENT_DATE,
		added_by     uuid NOT NULL,
		notes        text,
		created_at   timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_deposits_user ON deposits (user_id)`,

	`CREATE TABLE IF NOT EXISTS meals (
		id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id     uuid NOT NULL,
		meal_date   date NOT NULL,
		lunch       boolean NOT NULL DEFAULT true,
		dinner      boolean NOT NULL DEFAULT true,
		marked_by   uuid,
		auto_marked boolean NOT NULL DEFAULT false,
		created_at  timestamptz NOT NULL DEFAULT now(),
		UNIQUE (user_id, meal_date)
	)`,

	`CREATE TABLE IF NOT EXISTS monthly_budgets (
		id                    uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		month                 int NOT NULL,
		year                  int NOT NULL,
		budget_amount         double precision NOT NULL DEFAULT 0,
		low_balance_threshold double precision NOT NULL DEFAULT 5000,
		is_locked             boolean NOT NULL DEFAULT false,
		locked_by             uuid,
		created_at            timestamptz NOT NULL DEFAULT now(),
		updated_at            timestamptz NOT NULL DEFAULT now(),
		UNIQUE (month, year)
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    uuid NOT NULL,
		title      text NOT NULL,
		message    text NOT NULL,
		type       text NOT NULL DEFAULT 'info',
		is_read    boolean NOT NULL DEFAULT false,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id, is_read)`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		sender_id  uuid NOT NULL,
		content    text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS chat_message_images (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		message_id uuid NOT NULL REFERENCES chat_messages(id) ON DELETE CASCADE,
		image_url  text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS chat_reactions (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		message_id uuid NOT NULL REFERENCES chat_messages(id) ON DELETE CASCADE,
		user_id    uuid NOT NULL,
		reaction   text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (message_id, user_id, reaction)
	)`,

	`CREATE TABLE IF NOT EXISTS chat_seen (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		message_id uuid NOT NULL REFERENCES chat_messages(id) ON DELETE CASCADE,
		user_id    uuid NOT NULL,
		seen_at    timestamptz NOT NULL DEFAULT now(),
		UNIQUE (message_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS shared_bills (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		title      text NOT NULL,
		amount     double precision NOT NULL,
		bill_date  date NOT NULL DEFAULT CURRENT_DATE,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		actor      uuid,
		action     text NOT NULL,
		details    jsonb NOT NULL DEFAULT '{}',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,

	`INSERT INTO expense_categories (name, name_bn) VALUES
		('Market', 'বাজার'),
		('Rice', 'চাল'),
		('Gas', 'গ্যাস'),
		('Electricity', 'বিদ্যুৎ'),
		('Internet', 'ইন্টারনেট'),
		('Cleaning', 'পরিচ্ছন্নতা'),
		('Others', 'অন্যান্য')
	ON CONFLICT (name) DO NOTHING`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
