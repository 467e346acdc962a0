package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow)
	successStyle = color.New(color.FgGreen)
	infoStyle    = color.New(color.Faint)
)

func PrintError(err error) {
	_, _ = errorStyle.Fprint(os.Stderr, "ERROR: ")
	fmt.Fprintln(os.Stderr, err)
}

func PrintWarning(msg string) {
	_, _ = warningStyle.Fprintln(os.Stderr, msg)
}

func PrintSuccess(msg string) {
	_, _ = successStyle.Fprintln(os.Stderr, msg)
}

func PrintInfo(msg string) {
	_, _ = infoStyle.Fprintln(os.Stderr, msg)
}

// UserError is an error caused by the user's input or environment, reported
// without a stack of wrapped context.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// ExitError carries a specific process exit code. main unwraps it so
// validation failures and expectation mismatches can exit 2 while ordinary
// failures exit 1.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an exit code.
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// Exitf is Exit with formatting.
func Exitf(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}
