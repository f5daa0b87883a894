package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{"full", Diagnostic{Severity: SeverityFatal, File: "p.ada", Line: 3, Message: "boom"}, "[fatal] p.ada:3: boom"},
		{"no line", Diagnostic{Severity: SeverityError, File: "p.ada", Message: "boom"}, "[error] p.ada: boom"},
		{"no file", Diagnostic{Severity: SeverityWarning, Line: 3, Message: "boom"}, "[warning] boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{
			&Error{Code: DiagUnexpectedToken, Line: 4, Expected: "semicolon", Found: "id", Lexeme: "x"},
			"At line number 4, expecting semicolon token, but found id token with lexeme x",
		},
		{
			&Error{Code: DiagDuplicateSymbol, Line: 2, Name: "x"},
			"Error: Duplicate symbol: 'x' at line number 2",
		},
		{
			&Error{Code: DiagUndefinedIdentifier, Line: 7, Name: "y"},
			"Error: Undefined identifier y at line number 7",
		},
		{
			&Error{Code: DiagMismatchedProcedureName, Line: 9, Name: "P"},
			`Error : Missing statement "END P;"`,
		},
		{
			&Error{Code: DiagUnconsumedInput, Line: 10, Found: "id", Lexeme: "junk"},
			"At line number 10 unused token(id, junk) found. Expecting End of File token.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrapsToSentinel(t *testing.T) {
	for _, info := range AllDiagnosticCodes() {
		if info.Phase != "analyzer" {
			continue
		}
		err := fmt.Errorf("wrapped: %w", &Error{Code: info.Code})
		sentinel := sentinels[info.Code]
		require.NotNil(t, sentinel, info.Code)
		assert.True(t, errors.Is(err, sentinel), info.Code)

		var typed *Error
		require.True(t, errors.As(err, &typed))
		assert.Equal(t, info.Code, typed.Code)
	}
}

func TestErrorDiagnostic(t *testing.T) {
	err := &Error{Code: DiagUndefinedIdentifier, Line: 5, Name: "z"}
	d := err.Diagnostic("main.ada")
	assert.Equal(t, SeverityFatal, d.Severity)
	assert.Equal(t, DiagUndefinedIdentifier, d.Code)
	assert.Equal(t, 5, d.Line)
	assert.Equal(t, "main.ada", d.File)
	assert.Equal(t, err.Error(), d.Message)
}
