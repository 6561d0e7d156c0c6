package project

import (
	"errors"
	"fmt"
)

// Setup error codes, reported by the CLI in both text and JSON output.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNoDataDir    = "E002" // Data directory missing or not a directory
	ErrCodeFileNotFound = "E003" // Required project file missing
	ErrCodeReadFailed   = "E004" // Required project file unreadable
	ErrCodeInvalidJSON  = "E005" // Required project file is not valid JSON
	ErrCodeBadSystem    = "E006" // System.json lacks variables or switches
)

// SetupError is a fatal fault detected while loading a project, before any
// scanning starts.
type SetupError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *SetupError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// IsSetupError returns true if err is or wraps a SetupError.
func IsSetupError(err error) bool {
	var se *SetupError
	return errors.As(err, &se)
}
