// Package cliutil provides shared CLI utilities for miniada command-line tools.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// ExitError carries a process exit code out of a command. A nil Err
// means the command already reported the failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an exit code.
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// GetOutput opens the output file or returns fallback.
func GetOutput(outputFile string, fallback io.Writer) (io.Writer, func(), error) {
	if outputFile == "" {
		return fallback, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}
