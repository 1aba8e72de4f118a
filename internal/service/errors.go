package service

import "fmt"

// ValidationError signals missing or malformed input. Rendered as 400
// with the offending field or rule in the message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalidf builds a ValidationError.
func Invalidf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError signals a state-incompatible operation. Rendered as 400
// with the current conflicting state included in the response.
type ConflictError struct {
	Message      string
	CurrentState string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Conflictf builds a ConflictError carrying the conflicting state.
func Conflictf(state string, format string, args ...interface{}) *ConflictError {
	return &ConflictError{
		Message:      fmt.Sprintf(format, args...),
		CurrentState: state,
	}
}

// AuthError signals failed authentication. Rendered as 401.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
