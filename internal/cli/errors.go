package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/project"
)

// CLI error codes. E001-E006 are shared with project.SetupError.
const (
	ErrCodeGeneric       = project.ErrCodeGeneric
	ErrCodeUsage         = "E010" // Invalid flag combination or value
	ErrCodeConfig        = "E011" // Config file unreadable or invalid
	ErrCodeQueryNotFound = "E020" // Queried id has no name table entry
	ErrCodeQueryInvalid  = "E021" // Negative id or unsupported mode
	ErrCodeOutput        = "E030" // Report could not be written
	ErrCodeStore         = "E040" // Export database failure
	ErrCodeRunNotFound   = "E041" // Run id not present in the export database
)

// UsageError is an invalid flag combination or value detected by a command.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ConfigError is a config file that cannot be read or decoded.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// OutputError is a failure writing the rendered report.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("write report: %v", e.Err)
	}
	return fmt.Sprintf("write report %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// StoreError is a failure opening, writing or reading the export database.
type StoreError struct {
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("database %s: %v", e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

type classified struct {
	code    string
	message string
	details any
	exit    int
}

// classify maps a command error to its reported code, message and exit code.
func classify(err error) classified {
	var (
		setupErr  *project.SetupError
		queryErr  *engine.QueryError
		usageErr  *UsageError
		configErr *ConfigError
		outErr    *OutputError
		storeErr  *StoreError
	)

	switch {
	case errors.As(err, &setupErr):
		details := map[string]string{}
		if setupErr.Path != "" {
			details["path"] = setupErr.Path
		}
		if setupErr.Err != nil {
			details["cause"] = setupErr.Err.Error()
		}
		msg := setupErr.Message
		if setupErr.Path != "" {
			msg = fmt.Sprintf("%s: %s", setupErr.Path, setupErr.Message)
		}
		return classified{code: setupErr.Code, message: msg, details: nonEmpty(details), exit: ExitCommandError}

	case errors.As(err, &queryErr):
		code := ErrCodeQueryInvalid
		msg := fmt.Sprintf("invalid query %s", queryErr.Query)
		if queryErr.Code == engine.ErrCodeIdentifierNotFound {
			code = ErrCodeQueryNotFound
			msg = fmt.Sprintf("%s doesn't exist in this project", queryErr.Query)
		}
		return classified{code: code, message: msg, details: map[string]string{"reason": string(queryErr.Code)}, exit: ExitCommandError}

	case errors.As(err, &usageErr):
		return classified{code: ErrCodeUsage, message: usageErr.Message, exit: ExitCommandError}

	case errors.As(err, &configErr):
		return classified{code: ErrCodeConfig, message: configErr.Error(), exit: ExitCommandError}

	case errors.As(err, &outErr):
		return classified{code: ErrCodeOutput, message: outErr.Error(), exit: ExitFailure}

	case errors.As(err, &storeErr):
		if errors.Is(storeErr.Err, sql.ErrNoRows) {
			return classified{code: ErrCodeRunNotFound, message: "run not found in " + storeErr.Path, exit: ExitCommandError}
		}
		return classified{code: ErrCodeStore, message: storeErr.Error(), exit: ExitFailure}
	}

	return classified{code: ErrCodeGeneric, message: err.Error(), exit: ExitFailure}
}

func nonEmpty(m map[string]string) any {
	if len(m) == 0 {
		return nil
	}
	return m
}
