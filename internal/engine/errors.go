package engine

import (
	"errors"
	"fmt"
)

// QueryError represents a fatal problem with the query itself, detected
// before any scanning starts.
type QueryError struct {
	// Code identifies the error category.
	Code QueryErrorCode

	// Query is the rejected query.
	Query Query

	// Err is the underlying lookup error, if any.
	Err error
}

// QueryErrorCode categorizes query errors.
type QueryErrorCode string

const (
	// ErrCodeIdentifierNotFound indicates the queried id has no entry in the
	// name tables.
	ErrCodeIdentifierNotFound QueryErrorCode = "IDENTIFIER_NOT_FOUND"

	// ErrCodeInvalidMode indicates a mode other than variables or switches.
	ErrCodeInvalidMode QueryErrorCode = "INVALID_MODE"

	// ErrCodeNegativeID indicates a negative query id.
	ErrCodeNegativeID QueryErrorCode = "NEGATIVE_ID"
)

// Error implements the error interface.
func (e *QueryError) Error() string {
	switch e.Code {
	case ErrCodeIdentifierNotFound:
		return fmt.Sprintf("%s: %s doesn't exist in this project", e.Code, e.Query)
	case ErrCodeInvalidMode:
		return fmt.Sprintf("%s: unsupported scan mode %d", e.Code, int(e.Query.Mode))
	default:
		return fmt.Sprintf("%s: invalid query %s", e.Code, e.Query)
	}
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError returns true if the error is a query error.
// Uses errors.As to handle wrapped errors.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
