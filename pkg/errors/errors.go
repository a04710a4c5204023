// Package errors provides a structured error system for LambdaBridge with
// error codes, categories, and context.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// ErrorCode represents a structured error code for LambdaBridge operations.
type ErrorCode string

// Error code constants organized by category.
const (
	// Configuration Errors
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	ErrCodeConfigLoad    ErrorCode = "CONFIG_LOAD"

	// Event Errors
	ErrCodeEventDecode   ErrorCode = "EVENT_DECODE"
	ErrCodeMissingOrigin ErrorCode = "MISSING_ORIGIN"

	// Service Errors
	ErrCodeServiceInit ErrorCode = "SERVICE_INIT"
	ErrCodeServiceCall ErrorCode = "SERVICE_CALL"

	// Body Errors
	ErrCodeBodyRead ErrorCode = "BODY_READ"

	// Encoding Errors
	ErrCodeTextEncoding ErrorCode = "TEXT_ENCODING"

	// Internal Errors
	ErrCodeBridgeClosed  ErrorCode = "BRIDGE_CLOSED"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorCategory represents the general category of an error.
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryEvent         ErrorCategory = "event"
	CategoryService       ErrorCategory = "service"
	CategoryBody          ErrorCategory = "body"
	CategoryEncoding      ErrorCategory = "encoding"
	CategoryInternal      ErrorCategory = "internal"
)

// BridgeError represents a structured error with context and metadata.
type BridgeError struct {
	Code     ErrorCode     `json:"code"`
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`

	Context   map[string]string `json:"context,omitempty"`
	Cause     error             `json:"-"` // Not serialized to avoid circular refs
	Timestamp time.Time         `json:"timestamp"`

	Component string `json:"component,omitempty"`
	Operation string `json:"operation,omitempty"`

	// HTTPStatus drives the default error rendering.
	HTTPStatus int `json:"http_status,omitempty"`
}

// Error implements the error interface.
func (e *BridgeError) Error() string {
	if e.Component != "" {
		if e.Operation != "" {
			return fmt.Sprintf("[%s:%s] %s: %s", e.Component, e.Operation, e.Code, e.Message)
		}
		return fmt.Sprintf("[%s] %s: %s", e.Component, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error wrapping compatibility.
func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error by code.
func (e *BridgeError) Is(target error) bool {
	if bridgeErr, ok := target.(*BridgeError); ok {
		return e.Code == bridgeErr.Code
	}
	return false
}

// RenderResponse renders the default error response: the mapped HTTP status
// with a plain text body carrying the error message. It implements
// types.Renderer, so every BridgeError can stand in for a failed service
// call.
func (e *BridgeError) RenderResponse() *types.Response {
	status := e.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	header := http.Header{}
	header.Set("Content-Type", "text/plain; charset=utf-8")
	return &types.Response{
		StatusCode: status,
		Header:     header,
		Body:       types.NewBytesBody([]byte(e.Message)),
	}
}

// NewError creates a new BridgeError with default values.
func NewError(code ErrorCode, message string) *BridgeError {
	return &BridgeError{
		Code:       code,
		Category:   GetCategory(code),
		Message:    message,
		Timestamp:  time.Now(),
		HTTPStatus: GetDefaultHTTPStatus(code),
	}
}

// Wrap creates a new BridgeError with an underlying cause.
func Wrap(code ErrorCode, message string, cause error) *BridgeError {
	return NewError(code, message).WithCause(cause)
}

// GetCategory determines the category based on the error code.
func GetCategory(code ErrorCode) ErrorCategory {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "INVALID_CONFIG") || strings.HasPrefix(codeStr, "CONFIG_"):
		return CategoryConfiguration
	case strings.HasPrefix(codeStr, "EVENT_") || strings.HasPrefix(codeStr, "MISSING_ORIGIN"):
		return CategoryEvent
	case strings.HasPrefix(codeStr, "SERVICE_"):
		return CategoryService
	case strings.HasPrefix(codeStr, "BODY_"):
		return CategoryBody
	case strings.HasPrefix(codeStr, "TEXT_"):
		return CategoryEncoding
	default:
		return CategoryInternal
	}
}

// GetDefaultHTTPStatus returns the default HTTP status for an error code.
func GetDefaultHTTPStatus(code ErrorCode) int {
	statusMap := map[ErrorCode]int{
		ErrCodeInvalidConfig: http.StatusBadRequest,
		ErrCodeConfigLoad:    http.StatusInternalServerError,
		ErrCodeEventDecode:   http.StatusBadRequest,
		ErrCodeMissingOrigin: http.StatusBadRequest,
		ErrCodeServiceInit:   http.StatusInternalServerError,
		ErrCodeServiceCall:   http.StatusInternalServerError,
		ErrCodeBodyRead:      http.StatusInternalServerError,
		ErrCodeTextEncoding:  http.StatusInternalServerError,
		ErrCodeBridgeClosed:  http.StatusServiceUnavailable,
	}

	if status, ok := statusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WithContext adds contextual information to an error.
func (e *BridgeError) WithContext(key, value string) *BridgeError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithComponent sets the component for an error.
func (e *BridgeError) WithComponent(component string) *BridgeError {
	e.Component = component
	return e
}

// WithOperation sets the operation for an error.
func (e *BridgeError) WithOperation(operation string) *BridgeError {
	e.Operation = operation
	return e
}

// WithCause sets the underlying cause.
func (e *BridgeError) WithCause(cause error) *BridgeError {
	e.Cause = cause
	return e
}

// WithHTTPStatus overrides the HTTP status used by the default rendering.
func (e *BridgeError) WithHTTPStatus(status int) *BridgeError {
	e.HTTPStatus = status
	return e
}
