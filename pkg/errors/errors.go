package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidSchemeConfig = errors.New("invalid scheme configuration")
	ErrInvalidSpan         = errors.New("invalid loan span")
	ErrNoApplicableRate    = errors.New("no applicable interest rate")
	ErrInvalidAdjustment   = errors.New("invalid closure adjustment")
	ErrSchemeNotFound      = errors.New("scheme not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrLoanAlreadyExists   = errors.New("loan already exists")
	ErrLoanAlreadyClosed   = errors.New("loan is already closed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidSchemeConfig = "INVALID_SCHEME_CONFIG"
	ErrCodeInvalidSpan         = "INVALID_SPAN"
	ErrCodeNoApplicableRate    = "NO_APPLICABLE_RATE"
	ErrCodeInvalidAdjustment   = "INVALID_ADJUSTMENT"
	ErrCodeClosureError        = "CLOSURE_ERROR"
	ErrCodeSchemeNotFound      = "SCHEME_NOT_FOUND"
	ErrCodeLoanNotFound        = "LOAN_NOT_FOUND"
	ErrCodeLoanAlreadyExists   = "LOAN_ALREADY_EXISTS"
	ErrCodeLoanAlreadyClosed   = "LOAN_ALREADY_CLOSED"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapInvalidSchemeConfig(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidSchemeConfig,
		fmt.Sprintf("Scheme configuration is invalid: %s", reason),
		ErrInvalidSchemeConfig,
	)
}

func WrapInvalidSpan(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidSpan,
		fmt.Sprintf("Loan span is invalid: %s", reason),
		ErrInvalidSpan,
	)
}

func WrapNoApplicableRate(jewelType string) *BusinessError {
	return NewBusinessError(
		ErrCodeNoApplicableRate,
		fmt.Sprintf("No interest rate configured for jewel type %s and no universal rate exists", jewelType),
		ErrNoApplicableRate,
	)
}

func WrapInvalidAdjustment(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAdjustment,
		fmt.Sprintf("Closure adjustment rejected: %s", reason),
		ErrInvalidAdjustment,
	)
}

func WrapClosureError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeClosureError,
		"closure computation failed",
		err,
	)
}

func WrapSchemeNotFound(schemeID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSchemeNotFound,
		fmt.Sprintf("Scheme with ID %s not found", schemeID),
		ErrSchemeNotFound,
	)
}

func WrapLoanNotFound(loanNo string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with number %s not found", loanNo),
		ErrLoanNotFound,
	)
}

func WrapLoanAlreadyExists(loanNo string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyExists,
		fmt.Sprintf("Loan with number %s already exists", loanNo),
		ErrLoanAlreadyExists,
	)
}

func WrapLoanAlreadyClosed(loanNo string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyClosed,
		fmt.Sprintf("Loan with number %s is already closed", loanNo),
		ErrLoanAlreadyClosed,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
