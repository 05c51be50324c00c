// Package db persists invoices in an embedded sqlite database. The
// store is an optional collaborator: a nil *Store is valid and reports
// every operation as unavailable, so the rest of the app keeps
// producing PDFs without persistence.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"invoicegen/models"
)

var (
	// ErrUnavailable is returned by every operation when no database
	// connection was established at startup.
	ErrUnavailable = errors.New("database not available")

	// ErrNotFound is returned when no invoice has the given number.
	ErrNotFound = errors.New("invoice not found")

	// ErrDuplicate is returned when creating an invoice whose number
	// already exists. Existing invoices are never silently overwritten.
	ErrDuplicate = errors.New("invoice number already exists")
)

// Store wraps the sqlite handle.
type Store struct {
	db *sql.DB
}

// Open creates and returns a sqlite-backed store with WAL mode enabled.
// The database file is stored at the path given by the DB_PATH
// environment variable, defaulting to "./data/invoices.db".
func Open() (*Store, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/invoices.db"
	}

	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	slog.Info("database connected", "path", dbPath)
	return &Store{db: conn}, nil
}

// Available reports whether a database connection is held. Handlers use
// this to distinguish degraded PDF-only mode from full operation.
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	return s.db.Close()
}

// Save stores an invoice. When editing, the row matched by originalNo
// is updated in place, which permits renaming the invoice number; an
// edit whose original no longer exists falls back to creating a new
// row. A plain create of an existing number fails with ErrDuplicate.
func (s *Store) Save(inv models.Invoice, editing bool, originalNo string) error {
	if !s.Available() {
		return ErrUnavailable
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if editing && originalNo != "" {
		res, err := tx.Exec(`UPDATE invoices SET invoice_no = ?, bill_to = ?, invoice_date = ?, due_date = ?,
			total = ?, received = ?, updated_at = CURRENT_TIMESTAMP WHERE invoice_no = ?`,
			inv.InvoiceNo, inv.BillTo, inv.Date.Format(models.DateFormat), inv.DueDate.Format(models.DateFormat),
			inv.Total, inv.Received, originalNo)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return ErrDuplicate
			}
			return fmt.Errorf("updating invoice: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			if err := tx.QueryRow("SELECT id FROM invoices WHERE invoice_no = ?", inv.InvoiceNo).Scan(&id); err != nil {
				return fmt.Errorf("re-reading updated invoice: %w", err)
			}
			if _, err := tx.Exec("DELETE FROM invoice_items WHERE invoice_id = ?", id); err != nil {
				return fmt.Errorf("clearing invoice items: %w", err)
			}
			if err := insertItems(tx, id, inv.Items); err != nil {
				return err
			}
			return tx.Commit()
		}
		// Original gone, fall through to create
	}

	err = tx.QueryRow(`INSERT INTO invoices (invoice_no, bill_to, invoice_date, due_date, total, received)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		inv.InvoiceNo, inv.BillTo, inv.Date.Format(models.DateFormat), inv.DueDate.Format(models.DateFormat),
		inv.Total, inv.Received).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting invoice: %w", err)
	}
	if err := insertItems(tx, id, inv.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func insertItems(tx *sql.Tx, invoiceID int64, items []models.InvoiceItem) error {
	for i, it := range items {
		_, err := tx.Exec(`INSERT INTO invoice_items (invoice_id, position, name, qty, unit, rate, discount, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			invoiceID, i, it.Name, it.Qty, it.Unit, it.Rate, it.Discount, it.Amount)
		if err != nil {
			return fmt.Errorf("inserting invoice item %d: %w", i+1, err)
		}
	}
	return nil
}

// GetByNumber loads a full invoice, items included.
func (s *Store) GetByNumber(invoiceNo string) (models.Invoice, error) {
	var inv models.Invoice
	if !s.Available() {
		return inv, ErrUnavailable
	}

	var id int64
	var dateStr, dueStr string
	err := s.db.QueryRow(`SELECT id, invoice_no, bill_to, invoice_date, due_date, total, received, created_at, updated_at
		FROM invoices WHERE invoice_no = ?`, invoiceNo).
		Scan(&id, &inv.InvoiceNo, &inv.BillTo, &dateStr, &dueStr, &inv.Total, &inv.Received, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return inv, ErrNotFound
	}
	if err != nil {
		return inv, fmt.Errorf("reading invoice: %w", err)
	}
	inv.Date, _ = time.Parse(models.DateFormat, dateStr)
	inv.DueDate, _ = time.Parse(models.DateFormat, dueStr)

	rows, err := s.db.Query(`SELECT name, qty, unit, rate, discount, amount FROM invoice_items
		WHERE invoice_id = ? ORDER BY position`, id)
	if err != nil {
		return inv, fmt.Errorf("reading invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it models.InvoiceItem
		if err := rows.Scan(&it.Name, &it.Qty, &it.Unit, &it.Rate, &it.Discount, &it.Amount); err != nil {
			return inv, fmt.Errorf("scanning invoice item: %w", err)
		}
		inv.Items = append(inv.Items, it)
	}
	return inv, rows.Err()
}

// ListRecent returns up to limit invoice summaries, newest first.
func (s *Store) ListRecent(limit int) ([]models.InvoiceSummary, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	rows, err := s.db.Query(`SELECT invoice_no, bill_to, total, created_at FROM invoices
		ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	summaries := []models.InvoiceSummary{}
	for rows.Next() {
		var sm models.InvoiceSummary
		if err := rows.Scan(&sm.InvoiceNo, &sm.BillTo, &sm.Total, &sm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning invoice summary: %w", err)
		}
		summaries = append(summaries, sm)
	}
	return summaries, rows.Err()
}

// DeleteByNumber removes an invoice and its items.
func (s *Store) DeleteByNumber(invoiceNo string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	res, err := s.db.Exec("DELETE FROM invoices WHERE invoice_no = ?", invoiceNo)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
