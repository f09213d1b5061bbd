package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/certifarm/certifarm/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, expected: shared.ErrNotFound},
		{name: "wrapped record not found", err: fmt.Errorf("read batch: %w", gorm.ErrRecordNotFound), expected: shared.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", Message: "duplicate key"}, expected: shared.ErrConflict},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, expected: shared.ErrConflict},
		{name: "deadline exceeded", err: context.DeadlineExceeded, expected: shared.ErrUnavailable},
		{name: "already classified", err: shared.ErrConflict, expected: shared.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ClassifyError(tt.err), tt.expected)
		})
	}

	t.Run("keeps the original cause", func(t *testing.T) {
		err := ClassifyError(gorm.ErrRecordNotFound)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		original := errors.New("syntax error")
		assert.Equal(t, original, ClassifyError(original))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, ClassifyError(nil))
	})
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(errors.New("ERROR: duplicate key value violates unique constraint \"idx_batches_batch_id\"")))
	assert.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateKeyError(nil))
}
