package game

import (
	"errors"
	"fmt"
)

// Code categorizes a rejected action.
type Code string

const (
	// CodeInsufficientFunds: coins, gems or shiny gems below the required cost.
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"

	// CodeInvalidReference: an id was not found in the expected list or slot.
	CodeInvalidReference Code = "INVALID_REFERENCE"

	// CodeCapacityExceeded: a bounded collection is full.
	CodeCapacityExceeded Code = "CAPACITY_EXCEEDED"

	// CodePreconditionNotMet: the state does not allow the action right now.
	CodePreconditionNotMet Code = "PRECONDITION_NOT_MET"
)

// Error is a rejected game action. The state it was applied to is unchanged.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrInsufficientFunds  = &Error{Code: CodeInsufficientFunds, Message: "insufficient funds"}
	ErrInvalidReference   = &Error{Code: CodeInvalidReference, Message: "invalid reference"}
	ErrCapacityExceeded   = &Error{Code: CodeCapacityExceeded, Message: "capacity exceeded"}
	ErrPreconditionNotMet = &Error{Code: CodePreconditionNotMet, Message: "precondition not met"}
)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a game error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy of e carrying an extra key/value for diagnostics.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{Code: e.Code, Message: e.Message, Details: details}
}

// NewError creates a game error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// InsufficientFunds reports that a cost of need in currency could not be paid from have.
func InsufficientFunds(currency string, need, have int) *Error {
	return &Error{
		Code:    CodeInsufficientFunds,
		Message: fmt.Sprintf("need %d %s, have %d", need, currency, have),
		Details: map[string]any{"currency": currency, "need": need, "have": have},
	}
}

// NotFound reports a missing id in the named collection.
func NotFound(collection, id string) *Error {
	return &Error{
		Code:    CodeInvalidReference,
		Message: fmt.Sprintf("%s %q not found", collection, id),
		Details: map[string]any{"collection": collection, "id": id},
	}
}

// Precondition reports an action that is not allowed in the current state.
func Precondition(format string, args ...any) *Error {
	return NewError(CodePreconditionNotMet, format, args...)
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}
