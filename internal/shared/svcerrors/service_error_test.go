package svcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidArgumentError("CFG_1000", "config validation failed", nil),
			wantErr: NewInvalidArgumentError("CFG_1000", "config validation failed", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewInternalError("DSP_9000", nil)),
			wantErr: NewInternalError("DSP_9000", nil),
			wantOk:  true,
		},
		{
			name:    "resource conflict",
			err:     NewResourceConflictError("RUN_9000", "another run holds the lock", nil),
			wantErr: NewResourceConflictError("RUN_9000", "another run holds the lock", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestServiceError_ErrorIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalErrorWithMessage("DSP_9000", "handshake failed", cause)

	assert.Equal(t, "DSP_9000: handshake failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.IsInternalError())
}

func TestServiceError_ErrorWithoutCause(t *testing.T) {
	err := NewInvalidArgumentError("CFG_1000", "config validation failed", nil)

	assert.Equal(t, "CFG_1000: config validation failed", err.Error())
	assert.False(t, err.IsInternalError())
}
