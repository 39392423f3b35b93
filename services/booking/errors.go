package booking

import "fmt"

// Error codes mapped to HTTP statuses by the handlers.
const (
	CodeValidation      = "validation"
	CodePaymentRequired = "paymentRequired"
	CodeSlotUnavailable = "slotUnavailable"
	CodeNotFound        = "notFound"
	CodeForbidden       = "forbidden"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &BookingError{Code: code, Message: msg}
}

// AsBookingError returns the typed error if err carries one.
func AsBookingError(err error) (*BookingError, bool) {
	be, ok := err.(*BookingError)
	return be, ok
}
