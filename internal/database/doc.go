// Package database provides SQLite-based persistence for audit records.
package database
