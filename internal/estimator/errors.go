package estimator

import "fmt"

type constError string

func (e constError) Error() string { return string(e) }

// Sentinels for errors.Is. The typed errors below match them.
var (
	ErrInvalidInput = constError("invalid input")
	ErrNoData       = constError("no data")
)

// InvalidInputError rejects a request before any computation runs.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NoDataError is returned when a required series is empty.
type NoDataError struct {
	What string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no %s samples", e.What)
}

func (e *NoDataError) Is(target error) bool {
	return target == ErrNoData
}
