package db

import (
	"fmt"
	"log/slog"
)

// Migrate runs all table creation statements. Safe to call multiple times
// due to IF NOT EXISTS clauses.
func (s *Store) Migrate() error {
	if !s.Available() {
		return ErrUnavailable
	}
	slog.Info("running database migrations")

	for _, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
		}
	}

	slog.Info("database migrations complete")
	return nil
}

var migrations = []string{
	// Invoices, keyed by the user-chosen invoice number
	`CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_no TEXT NOT NULL UNIQUE,
		bill_to TEXT NOT NULL,
		invoice_date TEXT NOT NULL,
		due_date TEXT NOT NULL,
		total REAL NOT NULL DEFAULT 0,
		received REAL NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Line items, replaced wholesale on every save
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		qty REAL NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT 'PCS',
		rate REAL NOT NULL DEFAULT 0,
		discount TEXT NOT NULL DEFAULT '0',
		amount REAL NOT NULL DEFAULT 0,
		FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE
	)`,

	// Indexes for common queries
	`CREATE INDEX IF NOT EXISTS idx_invoices_created ON invoices(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id)`,
}
