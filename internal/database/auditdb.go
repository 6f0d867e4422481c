package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/seoscan/seoscan/internal/audit"
	"github.com/seoscan/seoscan/internal/model"
)

// AuditDB provides SQLite-based storage for audit records.
// It implements audit.Store, so serve mode can persist audits across
// restarts instead of keeping them in memory.
//
// Design decision: One database file holds all audits rather than one
// file per site. This keeps history queries and backup/restore simple.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, "seoscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent audit updates.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- Audit records store one row per audit, with the full result as JSON
	CREATE TABLE IF NOT EXISTS audits (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		results_json TEXT,
		created_at TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_audits_url ON audits(url);
	CREATE INDEX IF NOT EXISTS idx_audits_status ON audits(status);
	CREATE INDEX IF NOT EXISTS idx_audits_created ON audits(created_at);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// Create inserts a new audit record.
func (adb *AuditDB) Create(ctx context.Context, a *model.Audit) error {
	resultsJSON, err := marshalResults(a.Results)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO audits (id, url, status, error, results_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = adb.db.ExecContext(ctx, query,
		a.ID,
		a.URL,
		string(a.Status),
		a.Error,
		resultsJSON,
		a.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit: %w", err)
	}

	return nil
}

// Update replaces the stored record for the audit's ID.
// Returns audit.ErrNotFound when no such audit exists.
func (adb *AuditDB) Update(ctx context.Context, a *model.Audit) error {
	resultsJSON, err := marshalResults(a.Results)
	if err != nil {
		return err
	}

	query := `
	UPDATE audits
	SET status = ?, error = ?, results_json = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?
	`

	result, err := adb.db.ExecContext(ctx, query,
		string(a.Status),
		a.Error,
		resultsJSON,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update audit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return audit.ErrNotFound
	}

	return nil
}

// Get returns the audit with the given ID, or audit.ErrNotFound.
func (adb *AuditDB) Get(ctx context.Context, id string) (*model.Audit, error) {
	query := `
	SELECT id, url, status, error, results_json, created_at
	FROM audits
	WHERE id = ?
	`

	a, err := scanAudit(adb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, audit.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	return a, nil
}

// ListByURL returns all audits for a root URL, newest first.
// Useful for tracking how a site's SEO health changes over time.
func (adb *AuditDB) ListByURL(ctx context.Context, rootURL string) ([]*model.Audit, error) {
	query := `
	SELECT id, url, status, error, results_json, created_at
	FROM audits
	WHERE url = ?
	ORDER BY created_at DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, rootURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	defer rows.Close()

	var audits []*model.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit: %w", err)
		}
		audits = append(audits, a)
	}

	return audits, rows.Err()
}

// ListURLs returns the distinct root URLs that have been audited.
func (adb *AuditDB) ListURLs(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT url FROM audits
	ORDER BY url
	`

	rows, err := adb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		urls = append(urls, u)
	}

	return urls, rows.Err()
}

// rowScanner abstracts sql.Row and sql.Rows for scanAudit.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAudit reads one audit row.
func scanAudit(row rowScanner) (*model.Audit, error) {
	var a model.Audit
	var status string
	var resultsJSON sql.NullString
	var createdAt string

	if err := row.Scan(&a.ID, &a.URL, &status, &a.Error, &resultsJSON, &createdAt); err != nil {
		return nil, err
	}

	a.Status = model.AuditStatus(status)

	// created_at is always written by us in RFC3339Nano.
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	a.CreatedAt = t

	if resultsJSON.Valid && resultsJSON.String != "" {
		var results model.AuditResult
		if err := json.Unmarshal([]byte(resultsJSON.String), &results); err != nil {
			return nil, fmt.Errorf("failed to parse results: %w", err)
		}
		a.Results = &results
	}

	return &a, nil
}

// marshalResults serializes an audit result to JSON, or NULL when absent.
func marshalResults(results *model.AuditResult) (sql.NullString, error) {
	if results == nil {
		return sql.NullString{}, nil
	}

	data, err := json.Marshal(results)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to serialize results: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
