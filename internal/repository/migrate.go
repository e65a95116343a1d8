package repository

import (
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS account (
		account_id SERIAL PRIMARY KEY,
		username   VARCHAR(255) NOT NULL UNIQUE,
		password   VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS message (
		message_id        SERIAL PRIMARY KEY,
		posted_by         INTEGER NOT NULL REFERENCES account(account_id),
		message_text      VARCHAR(255) NOT NULL,
		time_posted_epoch BIGINT NOT NULL
	)`,
}

// Migrate creates the account and message tables when they are missing.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
