package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrAdapterFailure = errors.New("adapter failure")
	ErrUnsupported    = errors.New("unsupported in guest mode")
)

// Wire codes used in the JSON error envelope.
const (
	CodeValidation   = "validation"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeUnauthorized = "unauthorized"
	CodeUnsupported  = "unsupported"
	CodeInternal     = "internal"
)

// Code classifies err into one of the wire codes.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrUnsupported):
		return CodeUnsupported
	default:
		return CodeInternal
	}
}

// FromCode is the inverse of Code. Unknown codes map to ErrAdapterFailure.
func FromCode(code string) error {
	switch code {
	case CodeValidation:
		return ErrInvalidInput
	case CodeNotFound:
		return ErrNotFound
	case CodeConflict:
		return ErrConflict
	case CodeUnauthorized:
		return ErrUnauthorized
	case CodeUnsupported:
		return ErrUnsupported
	default:
		return ErrAdapterFailure
	}
}

// Envelope is the JSON body of every API error response.
type Envelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
