package types

import (
	"fmt"
	"strings"
)

// Severity indicates how serious a diagnostic is.
// Lower values are more severe.
type Severity int

const (
	// SeverityFatal aborts analysis. Every analyzer error is fatal.
	SeverityFatal Severity = iota
	// SeverityError is a lexical problem; the offending input becomes
	// an error token that the analyzer then rejects.
	SeverityError
	// SeverityWarning does not affect the outcome.
	SeverityWarning
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic represents an issue found during lexing or analysis.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g., "duplicate-symbol", "unexpected-char"
	Message  string
	File     string // source file or program name
	Line     int    // 1-based line number, 0 if not applicable
}

// String returns a human-readable representation of the diagnostic.
// Format: "[severity] file:line: message" with location parts omitted when zero.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteByte(']')
	b.WriteByte(' ')
	if d.File != "" {
		b.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}
