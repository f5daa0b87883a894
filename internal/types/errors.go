package types

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure category. *Error unwraps to exactly
// one of them.
var (
	ErrUnexpectedToken         = errors.New("unexpected token")
	ErrDuplicateSymbol         = errors.New("duplicate symbol")
	ErrUndefinedIdentifier     = errors.New("undefined identifier")
	ErrMismatchedProcedureName = errors.New("mismatched procedure name")
	ErrUnconsumedInput         = errors.New("unconsumed input")
	ErrInvalidLiteral          = errors.New("invalid numeric literal")
)

var sentinels = map[string]error{
	DiagUnexpectedToken:         ErrUnexpectedToken,
	DiagDuplicateSymbol:         ErrDuplicateSymbol,
	DiagUndefinedIdentifier:     ErrUndefinedIdentifier,
	DiagMismatchedProcedureName: ErrMismatchedProcedureName,
	DiagUnconsumedInput:         ErrUnconsumedInput,
	DiagInvalidLiteral:          ErrInvalidLiteral,
}

// Error is the fatal analysis failure. Only the fields relevant to Code
// are set.
type Error struct {
	Code     string
	Line     int
	Expected string // expected token kind (unexpected-token)
	Found    string // actual token kind (unexpected-token, unconsumed-input)
	Lexeme   string // actual lexeme
	Name     string // offending identifier or procedure name
}

// Error renders the single-line diagnostic for the failure.
func (e *Error) Error() string {
	switch e.Code {
	case DiagUnexpectedToken:
		return fmt.Sprintf("At line number %d, expecting %s token, but found %s token with lexeme %s",
			e.Line, e.Expected, e.Found, e.Lexeme)
	case DiagDuplicateSymbol:
		return fmt.Sprintf("Error: Duplicate symbol: '%s' at line number %d", e.Name, e.Line)
	case DiagUndefinedIdentifier:
		return fmt.Sprintf("Error: Undefined identifier %s at line number %d", e.Name, e.Line)
	case DiagMismatchedProcedureName:
		return fmt.Sprintf("Error : Missing statement \"END %s;\"", e.Name)
	case DiagUnconsumedInput:
		return fmt.Sprintf("At line number %d unused token(%s, %s) found. Expecting End of File token.",
			e.Line, e.Found, e.Lexeme)
	case DiagInvalidLiteral:
		return fmt.Sprintf("Error: Invalid numeric literal %s at line number %d", e.Lexeme, e.Line)
	default:
		return fmt.Sprintf("%s at line number %d", e.Code, e.Line)
	}
}

// Unwrap returns the sentinel for the error's category.
func (e *Error) Unwrap() error {
	return sentinels[e.Code]
}

// Diagnostic converts the error into a fatal diagnostic for file.
func (e *Error) Diagnostic(file string) Diagnostic {
	return Diagnostic{
		Severity: SeverityFatal,
		Code:     e.Code,
		Message:  e.Error(),
		File:     file,
		Line:     e.Line,
	}
}
