package types

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of a core failure. The HTTP layer maps
// codes to statuses; the core only guarantees the kinds are distinguishable.
type ErrorCode string

const (
	CodeInvalidInput          ErrorCode = "INVALID_INPUT"
	CodeNotFound              ErrorCode = "NOT_FOUND"
	CodeMemberNotFound        ErrorCode = "MEMBER_NOT_FOUND"
	CodeAlreadyCheckedIn      ErrorCode = "ALREADY_CHECKED_IN"
	CodeAlreadyCheckedOut     ErrorCode = "ALREADY_CHECKED_OUT"
	CodeNoCheckInRecord       ErrorCode = "NO_CHECK_IN_RECORD"
	CodeNoCompensationProfile ErrorCode = "NO_COMPENSATION_PROFILE"
	CodeNoAnnualSalary        ErrorCode = "NO_ANNUAL_SALARY"
	CodeDuplicatePayment      ErrorCode = "DUPLICATE_PAYMENT"
	CodeDecryptionFailed      ErrorCode = "DECRYPTION_FAILED"
)

type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code, so the sentinels below
// can be used with errors.Is regardless of message or cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "" when
// err is not a core failure.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

var (
	ErrInvalidInput          = &AppError{Code: CodeInvalidInput, Message: "invalid input"}
	ErrNotFound              = &AppError{Code: CodeNotFound, Message: "record not found"}
	ErrMemberNotFound        = &AppError{Code: CodeMemberNotFound, Message: "member not found"}
	ErrAlreadyCheckedIn      = &AppError{Code: CodeAlreadyCheckedIn, Message: "already checked in today"}
	ErrAlreadyCheckedOut     = &AppError{Code: CodeAlreadyCheckedOut, Message: "already checked out today"}
	ErrNoCheckInRecord       = &AppError{Code: CodeNoCheckInRecord, Message: "no check-in record found for today"}
	ErrNoCompensationProfile = &AppError{Code: CodeNoCompensationProfile, Message: "no active compensation profile"}
	ErrNoAnnualSalary        = &AppError{Code: CodeNoAnnualSalary, Message: "annual salary is not registered"}
	ErrDuplicatePayment      = &AppError{Code: CodeDuplicatePayment, Message: "payment already exists for this period"}
	ErrDecryptionFailed      = &AppError{Code: CodeDecryptionFailed, Message: "data corrupted or wrong secret"}
)
