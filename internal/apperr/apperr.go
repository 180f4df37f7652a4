package apperr

import (
	"errors"
	"net/http"
)

// Error is a value-based application error carrying a stable name, a human
// message and the HTTP status it maps to at the boundary. Errors propagate
// unchanged from the layer that raised them; the boundary never needs
// upstream-specific knowledge to render them.
type Error struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a new application error.
func New(name, message string, status int) *Error {
	return &Error{
		Name:    name,
		Message: message,
		Status:  status,
	}
}

var (
	ErrInvalidAmount = New(
		"InvalidAmount",
		"Amount must be greater than or equal to 0",
		http.StatusBadRequest,
	)
	ErrInvalidResourceType = New(
		"InvalidResourceType",
		"Resource type must be BANDWIDTH or ENERGY",
		http.StatusBadRequest,
	)
	ErrTransactionBuildFailed = New(
		"TransactionBuildFailed",
		"Something went wrong while building the transaction",
		http.StatusInternalServerError,
	)
	ErrTransactionSignFailed = New(
		"TransactionSignFailed",
		"Something went wrong while signing the transaction",
		http.StatusInternalServerError,
	)
	ErrTransactionBroadcastFailed = New(
		"TransactionBroadcastFailed",
		"Something went wrong while broadcasting the transaction",
		http.StatusInternalServerError,
	)
	ErrTransactionNotFound = New(
		"TransactionNotFound",
		"Transaction not found in the blockchain",
		http.StatusNotFound,
	)
	ErrAccountGenerationFailed = New(
		"AccountGenerationFailed",
		"Something went wrong while generating a new account. Try again later",
		http.StatusInternalServerError,
	)
	ErrEntityNotFound = New(
		"EntityNotFound",
		"Resource not found",
		http.StatusNotFound,
	)
	ErrBadRequest = New(
		"BadRequest",
		"Invalid or corrupted request",
		http.StatusBadRequest,
	)
	ErrInternal = New(
		"InternalError",
		"Something went wrong. Try again later",
		http.StatusInternalServerError,
	)
)

// From classifies an arbitrary error. Recognized application errors pass
// through untouched; anything else gets the default internal classification.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal
}
