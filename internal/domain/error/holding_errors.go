package error

import "errors"

// Holding domain errors.
var (
	ErrHoldingNotFound           = errors.New("holding not found")
	ErrInvalidHoldingType        = errors.New("invalid holding type")
	ErrInvalidHoldingAmount      = errors.New("invalid holding amount")
	ErrInvalidPurchaseDate       = errors.New("invalid purchase date")
	ErrUnauthorizedHoldingAccess = errors.New("unauthorized access to holding")
)

// HoldingErrorCode defines error codes for portfolio holding errors.
// Format: HLD-XXYYYY where XX is category and YYYY is specific error.
type HoldingErrorCode string

const (
	ErrCodeHoldingNotFound           HoldingErrorCode = "HLD-010001"
	ErrCodeInvalidHoldingType        HoldingErrorCode = "HLD-010002"
	ErrCodeInvalidHoldingAmount      HoldingErrorCode = "HLD-010003"
	ErrCodeInvalidPurchaseDate       HoldingErrorCode = "HLD-010004"
	ErrCodeUnauthorizedHoldingAccess HoldingErrorCode = "HLD-010005"
	ErrCodeMissingHoldingFields      HoldingErrorCode = "HLD-010006"
)

// HoldingError represents a portfolio holding error with code and message.
type HoldingError struct {
	Code    HoldingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HoldingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *HoldingError) Unwrap() error {
	return e.Err
}

// NewHoldingError creates a new HoldingError with the given code and message.
func NewHoldingError(code HoldingErrorCode, message string, err error) *HoldingError {
	return &HoldingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
