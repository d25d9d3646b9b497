package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NewAppError(ErrCodeStatePersist, "could not replace state file", nil)
	assert.Equal(t, "state_persist_failed: could not replace state file", err.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := NewAppError(ErrCodeStatePersist, "could not replace state file", inner)

	assert.True(t, errors.Is(err, inner))

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("cycle: %w", err), &appErr))
	assert.Equal(t, ErrCodeStatePersist, appErr.Code)
}

func TestAppError_WithDetails(t *testing.T) {
	base := NewAppError(ErrCodeDispatchFailed, "gateway refused", nil).
		WithDetails(map[string]any{"recipient": "5534999990000"})
	extended := base.WithDetails(map[string]any{"status": 500})

	assert.Len(t, base.Details, 1, "original must stay untouched")
	assert.Equal(t, "5534999990000", extended.Details["recipient"])
	assert.Equal(t, 500, extended.Details["status"])
}

func TestErrorCode_CycleFatal(t *testing.T) {
	tests := []struct {
		code  ErrorCode
		fatal bool
	}{
		{ErrCodeReadingMissingField, false},
		{ErrCodeHistoryUnavailable, false},
		{ErrCodeDispatchFailed, false},
		{ErrCodeDispatchRejected, false},
		{ErrCodeStateCorrupt, false},
		{ErrCodeStateVersion, false},
		{ErrCodeStatePersist, true},
		{ErrCodeDataNoRecentReading, true},
		{ErrCodeInternalDB, true},
		{ErrCodeLockHeld, true},
		{ErrCodeConfigInvalid, true},
		{ErrCodeCycleBudget, true},
		{ErrorCode("something_new"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.fatal, tt.code.CycleFatal())
		})
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewAppError(ErrCodeInternalDB, "query failed", nil))
	assert.Equal(t, ErrCodeInternalDB, CodeOf(wrapped))
	assert.Equal(t, ErrCodeInternalUnexpected, CodeOf(errors.New("plain")))
}
