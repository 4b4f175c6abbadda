package vmerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorParts(t *testing.T) {
	assert.Equal(t, "D1", GetErrorCode(ErrInvalidParamMode))
	assert.Equal(t, "InvalidParamMode", GetErrorName(ErrInvalidParamMode))

	assert.Equal(t, "No Error", GetErrorName(nil))
	assert.Equal(t, "", GetErrorCode(nil))
	assert.Equal(t, "plain", GetErrorName(errors.New("plain")))
	assert.Equal(t, "", GetErrorCode(errors.New("plain")))
}

func TestWrappedErrorsKeepCode(t *testing.T) {
	wrapped := fmt.Errorf("%w (ip=12, word=301)", ErrInvalidParamMode)
	require.ErrorIs(t, wrapped, ErrInvalidParamMode)
	assert.Equal(t, "D1", GetErrorCode(wrapped))
	assert.True(t, IsFatal(wrapped))

	prefixed := fmt.Errorf("phases [1 0]: %w", fmt.Errorf("%w (opcode=42)", ErrInvalidOpcode))
	assert.Equal(t, "D2", GetErrorCode(prefixed))
	assert.Equal(t, "InvalidOpcode", GetErrorName(prefixed))
	assert.True(t, IsFatal(prefixed))
}

func TestIsFatal(t *testing.T) {
	for _, err := range []error{ErrInvalidParamMode, ErrInvalidOpcode, ErrNegativeAddress, ErrImmediateWrite, ErrMemoryLimit, ErrNoOutput} {
		assert.True(t, IsFatal(err), GetErrorName(err))
	}
	for _, err := range []error{ErrPipelineStalled, ErrRobotProtocol, ErrEmptyProgram, fmt.Errorf("stage 2: %w", ErrInputStarved), nil} {
		assert.False(t, IsFatal(err), GetErrorName(err))
	}
}
