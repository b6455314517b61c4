package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/models"
)

func TestStatusClassification(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusCompleted.IsActive())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())

	assert.Equal(t, StatusPending, InitialStatus())
}

func TestTransitionRules(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		assert.NoError(t, CanCancel(StatusPending))
		assert.NoError(t, CanCancel(StatusConfirmed))
		assert.True(t, apperr.Is(CanCancel(StatusCancelled), apperr.CodeAlreadyTerminal))
		assert.True(t, apperr.Is(CanCancel(StatusCompleted), apperr.CodeAlreadyTerminal))
	})

	t.Run("confirm", func(t *testing.T) {
		assert.NoError(t, CanConfirm(StatusPending))
		assert.True(t, apperr.Is(CanConfirm(StatusConfirmed), apperr.CodeInvalidState))
		assert.True(t, apperr.Is(CanConfirm(StatusCancelled), apperr.CodeInvalidState))
	})

	t.Run("complete", func(t *testing.T) {
		assert.NoError(t, CanComplete(StatusPending))
		assert.NoError(t, CanComplete(StatusConfirmed))
		assert.True(t, apperr.Is(CanComplete(StatusCancelled), apperr.CodeInvalidState))
		assert.True(t, apperr.Is(CanComplete(StatusCompleted), apperr.CodeInvalidState))
	})
}

func TestDomainActions(t *testing.T) {
	now := time.Date(2026, 8, 24, 19, 0, 0, 0, time.UTC)

	t.Run("cancel stamps time", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusConfirmed)}

		assert.NoError(t, Cancel(b, now))
		assert.Equal(t, string(StatusCancelled), b.Status)
		assert.NotNil(t, b.CancelledAt)
		assert.Equal(t, now, *b.CancelledAt)
	})

	t.Run("cancel is not repeatable", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusCancelled)}
		assert.True(t, apperr.Is(Cancel(b, now), apperr.CodeAlreadyTerminal))
	})

	t.Run("confirm", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusPending)}

		assert.NoError(t, Confirm(b))
		assert.Equal(t, string(StatusConfirmed), b.Status)
	})

	t.Run("complete stamps time", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusConfirmed)}

		assert.NoError(t, Complete(b, now))
		assert.Equal(t, string(StatusCompleted), b.Status)
		assert.NotNil(t, b.CompletedAt)
	})
}
