// ABOUTME: Domain failure raised by the person service
// ABOUTME: NotFoundError is the only error the HTTP layer maps to a specific status

package people

import "fmt"

// NotFoundError is returned when no person exists with the requested ID.
// Message is surfaced verbatim to API clients.
type NotFoundError struct {
	ID      int64
	Message string
}

func newNotFoundError(id int64) *NotFoundError {
	return &NotFoundError{
		ID:      id,
		Message: fmt.Sprintf("Person with id %d not found", id),
	}
}

func (e *NotFoundError) Error() string {
	return e.Message
}
