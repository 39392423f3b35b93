package patient

import "fmt"

// Error codes mapped to HTTP statuses by the handlers.
const (
	CodeValidation = "validation"
	CodeConflict   = "conflict"
	CodeAuth       = "auth"
	CodeNotFound   = "notFound"
)

type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &ServiceError{Code: code, Message: msg}
}

// AsServiceError returns the typed error if err carries one.
func AsServiceError(err error) (*ServiceError, bool) {
	se, ok := err.(*ServiceError)
	return se, ok
}
