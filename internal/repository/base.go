// Package repository implements the data access layer: the content store
// that owns persistence and its referential and uniqueness invariants.
// Authorization policy lives one layer up, in service; nothing here
// re-checks caller identity.
package repository

import (
	"errors"
	"strings"

	"echos/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	// PostgreSQL unique violation, SQLSTATE 23505.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	// SQLite reports "UNIQUE constraint failed".
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// storageErr wraps an underlying persistence fault, passing through errors
// that already carry an application code.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*models.AppError); ok {
		return err
	}
	return models.NewStorageError(err)
}
