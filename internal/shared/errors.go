package shared

import "errors"

// Error kinds shared by every domain. Domain errors wrap one of these with %w so the
// HTTP layer can map them to a status code through errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// DomainError carries a stable code and a client-facing message on top of an error kind
type DomainError struct {
	Code    string
	Message string
	Kind    error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// NewError builds a DomainError of the given kind
func NewError(kind error, code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Kind: kind}
}
