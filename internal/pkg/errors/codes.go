package errors

import "net/http"

// Intake error codes.
const (
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeIntakeFailed     = "INTAKE_FAILED"
)

// Review/staging error codes.
const (
	CodeBlockNotFound = "BLOCK_NOT_FOUND"
	CodeReviewFailed  = "REVIEW_FAILED"
)

// Auth error codes.
const (
	CodeAuthFailed   = "AUTH_FAILED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeForbidden    = "FORBIDDEN"
)

// Generic codes.
const (
	CodeInvalidRequestField = "INVALID_REQUEST_FIELD"
	CodeInternal            = "INTERNAL_ERROR"
)

// ErrInvalidSignaturef creates the 401 returned when an intake body fails
// MAC verification.
func ErrInvalidSignaturef() *AppError {
	return &AppError{
		Code:       CodeInvalidSignature,
		Message:    "invalid signature",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// ErrBlockNotFoundf creates the 404 for a review action on an unknown
// staging record.
func ErrBlockNotFoundf(blockID string) *AppError {
	return &AppError{
		Code:       CodeBlockNotFound,
		Message:    "staging record not found",
		HTTPStatus: http.StatusNotFound,
	}
}
