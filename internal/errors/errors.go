package errors

import "errors"

// Sentinels compared with errors.Is. Every backend-side failure surfaces to
// callers as ErrBackend, the cause only ever reaches the server log.
var (
	ErrBackend     = errors.New("prediction backend error")
	ErrTranslation = errors.New("protocol translation error")
	ErrConfig      = errors.New("invalid configuration")
)

type ParsingError struct {
	ErrorMsg string
}

func (m *ParsingError) Error() string {
	return m.ErrorMsg
}

func (m *ParsingError) Is(target error) bool {
	return target == ErrTranslation
}

type RequestError struct {
	ErrorMsg string
}

func (m *RequestError) Error() string {
	return m.ErrorMsg
}

type ConfigError struct {
	ErrorMsg string
	Cause    error
}

func (m *ConfigError) Error() string {
	if m.Cause == nil {
		return m.ErrorMsg
	}
	return m.ErrorMsg + ": " + m.Cause.Error()
}

func (m *ConfigError) Unwrap() error {
	return m.Cause
}

func (m *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// BackendError carries the real cause of a failed prediction. It matches
// ErrBackend so handlers can map it without inspecting the cause.
type BackendError struct {
	ErrorMsg string
	Cause    error
}

func (m *BackendError) Error() string {
	if m.Cause == nil {
		return m.ErrorMsg
	}
	return m.ErrorMsg + ": " + m.Cause.Error()
}

func (m *BackendError) Unwrap() error {
	return m.Cause
}

func (m *BackendError) Is(target error) bool {
	return target == ErrBackend
}

func NewBackendError(msg string, cause error) error {
	return &BackendError{ErrorMsg: msg, Cause: cause}
}
