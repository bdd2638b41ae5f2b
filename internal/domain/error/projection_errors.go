package error

import "errors"

// Projection domain errors.
var (
	// ErrInvalidProjectionInput is returned when a formula receives an out-of-domain value.
	ErrInvalidProjectionInput = errors.New("invalid projection input")

	// ErrNoSolution is returned when a root finder cannot produce a rate for the given cash flows.
	ErrNoSolution = errors.New("no solution")
)

// ProjectionErrorCode defines error codes for projection errors.
// Format: PRJ-XXYYYY where XX is category and YYYY is specific error.
type ProjectionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNegativeAmount      ProjectionErrorCode = "PRJ-010001"
	ErrCodeRateOutOfRange      ProjectionErrorCode = "PRJ-010002"
	ErrCodeNegativeHorizon     ProjectionErrorCode = "PRJ-010003"
	ErrCodeUnknownStyle        ProjectionErrorCode = "PRJ-010004"
	ErrCodeUnknownPeriodUnit   ProjectionErrorCode = "PRJ-010005"
	ErrCodeNonPositiveBase     ProjectionErrorCode = "PRJ-010006"
	ErrCodeNonPositiveYears    ProjectionErrorCode = "PRJ-010007"
	ErrCodeNonFiniteValue      ProjectionErrorCode = "PRJ-010008"
	ErrCodeNonPositiveTarget   ProjectionErrorCode = "PRJ-010009"
	ErrCodeEmptyCashFlows      ProjectionErrorCode = "PRJ-010010"
	ErrCodeUnknownCalculator   ProjectionErrorCode = "PRJ-010011"
	ErrCodeMissingCalcFields   ProjectionErrorCode = "PRJ-010012"
	ErrCodeInvalidSearchBounds ProjectionErrorCode = "PRJ-010013"

	// Numeric errors (02XXXX)
	ErrCodeNoSignChange     ProjectionErrorCode = "PRJ-020001"
	ErrCodeRootNotBracketed ProjectionErrorCode = "PRJ-020002"
	ErrCodeNotConverged     ProjectionErrorCode = "PRJ-020003"
)

// ProjectionError represents a projection error with code and message.
type ProjectionError struct {
	Code    ProjectionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProjectionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProjectionError) Unwrap() error {
	return e.Err
}

// NewProjectionError creates a new ProjectionError with the given code and message.
func NewProjectionError(code ProjectionErrorCode, message string, err error) *ProjectionError {
	return &ProjectionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidProjectionInput creates a validation error wrapping ErrInvalidProjectionInput.
func NewInvalidProjectionInput(code ProjectionErrorCode, message string) *ProjectionError {
	return NewProjectionError(code, message, ErrInvalidProjectionInput)
}

// NewNoSolution creates a numeric error wrapping ErrNoSolution.
func NewNoSolution(code ProjectionErrorCode, message string) *ProjectionError {
	return NewProjectionError(code, message, ErrNoSolution)
}

// IsNoSolution reports whether err means a rate is undefined for the inputs.
func IsNoSolution(err error) bool {
	return errors.Is(err, ErrNoSolution)
}
