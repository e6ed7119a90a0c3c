package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors keep their own codes
// (MISSING_AGENT, NO_REVENUE_ACCOUNT, ...) in responses.
const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	ErrCodeInvalidID  = "ERR_INVALID_ID"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"
	ErrCodeInvalidInput        = "ERR_INVALID_INPUT"

	// ErrCodeRequestInProgress is returned when an Idempotency-Key is reused
	ErrCodeRequestInProgress = "ERR_DUPLICATE_REQUEST"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInvalidID:         http.StatusBadRequest,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeAlreadyExists:     http.StatusConflict,
	ErrCodeConflict:          http.StatusConflict,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeRequestInProgress: http.StatusConflict,

	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Party policy
	"INVALID_RATE": http.StatusUnprocessableEntity,

	// Commission lifecycle
	"MISSING_AGENT":            http.StatusUnprocessableEntity,
	"MISSING_PRINCIPAL":        http.StatusUnprocessableEntity,
	"MISSING_PARTY":            http.StatusUnprocessableEntity,
	"NOT_AGENT_SALE":           http.StatusUnprocessableEntity,
	"NOT_AN_AGENT":             http.StatusUnprocessableEntity,
	"NOT_A_PRINCIPAL":          http.StatusUnprocessableEntity,
	"ORDER_NOT_CONFIRMED":      http.StatusUnprocessableEntity,
	"COMMISSION_NOT_CONFIRMED": http.StatusUnprocessableEntity,
	"COMMISSION_LOCKED":        http.StatusUnprocessableEntity,
	"ZERO_COMMISSION":          http.StatusUnprocessableEntity,
	"NO_REVENUE_ACCOUNT":       http.StatusUnprocessableEntity,
	"INVOICE_AMOUNT_MISMATCH":  http.StatusUnprocessableEntity,
	"INVOICE_ALREADY_EXISTS":   http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code. Unlisted
// INVALID_* codes are input problems (400); anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "NO_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps the shared domain codes to the transport codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"ALREADY_EXISTS":          ErrCodeAlreadyExists,
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_STATE":           ErrCodeInvalidState,
	"CONCURRENT_MODIFICATION": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":        ErrCodeValidation,
	"INTERNAL_ERROR":          ErrCodeInternal,
}

// NormalizeErrorCode converts a shared domain code to its transport code.
// Domain-specific codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
