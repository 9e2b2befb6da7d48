package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendError_MatchesSentinelAndCause(t *testing.T) {
	cause := fmt.Errorf("status 500")
	err := NewBackendError("external call failed", cause)

	assert.True(t, errors.Is(err, ErrBackend))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "external call failed: status 500", err.Error())

	var be *BackendError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &be))
	assert.Equal(t, "external call failed", be.ErrorMsg)
}

func TestParsingError_IsTranslation(t *testing.T) {
	err := &ParsingError{ErrorMsg: "unknown field"}
	assert.True(t, errors.Is(err, ErrTranslation))
	assert.False(t, errors.Is(err, ErrBackend))
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{ErrorMsg: "maxConnections must be positive"}
	assert.True(t, errors.Is(err, ErrConfig))
	assert.Equal(t, "maxConnections must be positive", err.Error())
}
