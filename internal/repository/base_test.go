package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))

	pgUnique := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueConstraintError(pgUnique))
	assert.True(t, isUniqueConstraintError(fmt.Errorf("create user: %w", pgUnique)))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))

	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.email")))
}
