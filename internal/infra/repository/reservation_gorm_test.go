package repository

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_time_slots_branch_date_time"}

	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("create slot: %w", dup)))

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(fmt.Errorf("connection refused")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}))
}

func TestIsTransientTxFailure(t *testing.T) {
	assert.True(t, isTransientTxFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isTransientTxFailure(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, isTransientTxFailure(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"})))

	// duplicate keys are classified where the insert happens, not here
	assert.False(t, isTransientTxFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isTransientTxFailure(nil))
	assert.False(t, isTransientTxFailure(fmt.Errorf("connection refused")))
}
