package main

import "database/sql"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		name TEXT,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS meli_connections (
		user_id INT PRIMARY KEY REFERENCES users (user_id) ON DELETE CASCADE,
		meli_user_id BIGINT NOT NULL,
		access_token TEXT NOT NULL,
		refresh_token TEXT,
		expires_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id TEXT NOT NULL,
		user_id INT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		category_id TEXT NOT NULL,
		price NUMERIC(14,2) NOT NULL DEFAULT 0,
		currency_id TEXT NOT NULL DEFAULT '',
		sold_quantity INT NOT NULL DEFAULT 0,
		available_quantity INT NOT NULL DEFAULT 0,
		thumbnail TEXT,
		permalink TEXT,
		status TEXT NOT NULL DEFAULT '',
		brand TEXT,
		model TEXT,
		free_shipping BOOLEAN NOT NULL DEFAULT false,
		logistic_type TEXT,
		installment_quantity INT NOT NULL DEFAULT 0,
		installment_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		description TEXT,
		pictures TEXT[],
		attributes JSONB,
		synced_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (user_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS optimization_suggestions (
		id UUID PRIMARY KEY,
		user_id INT NOT NULL,
		listing_id TEXT NOT NULL,
		provider TEXT NOT NULL,
		original_title TEXT NOT NULL,
		suggested_title TEXT NOT NULL,
		original_description TEXT,
		suggested_description TEXT,
		keywords JSONB,
		score INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		FOREIGN KEY (user_id, listing_id) REFERENCES listings (user_id, id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS optimization_suggestions_listing_idx
		ON optimization_suggestions (user_id, listing_id, created_at DESC)`,
}

func ensureSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
