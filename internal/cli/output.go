package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Backend refused the operation (failed envelope)
	ExitCommandError = 2 // Command error (bad flags, unreadable config, no credentials)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError carries a failed operation's message plus any field-level
// validation errors the backend returned.
type CLIError struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// Success outputs a successful result in the configured format. In text
// mode, data implementing fmt.Stringer renders itself; everything else
// goes through Println formatting.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	}
	if s, ok := data.(fmt.Stringer); ok {
		_, err := fmt.Fprint(f.Writer, s.String())
		return err
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Failure outputs a failed envelope: the backend message plus one line
// per field error. Returns the matching ExitError so the command can
// propagate the exit code.
func (f *OutputFormatter) Failure(message string, fields map[string][]string) error {
	if message == "" {
		message = "Operation failed"
	}

	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		_ = enc.Encode(CLIResponse{Status: "error", Error: &CLIError{Message: message, Fields: fields}})
		return NewExitError(ExitFailure, message)
	}

	fmt.Fprintf(f.Writer, "Error: %s\n", message)
	for _, field := range sortedKeys(fields) {
		for _, msg := range fields[field] {
			fmt.Fprintf(f.Writer, "  %s: %s\n", field, msg)
		}
	}
	return NewExitError(ExitFailure, message)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
