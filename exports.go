package miniada

import (
	"github.com/miniada/miniada/internal/types"
	"github.com/miniada/miniada/symtab"
)

// Type aliases for the public API.

// Symbol is one declared name with its attributes.
type Symbol = symtab.Symbol

// Table is the scoped symbol table.
type Table = symtab.Table

// Frame is the activation-record layout of one procedure.
type Frame = symtab.Frame

// Slot is a parameter or local inside a Frame.
type Slot = symtab.Slot

// Kind identifies what a symbol denotes.
type Kind = symtab.Kind

// VarType is a primitive value type.
type VarType = symtab.VarType

// Mode is a parameter passing mode.
type Mode = symtab.Mode

// Diagnostic represents a lexical or analysis issue.
type Diagnostic = types.Diagnostic

// Severity for diagnostics.
type Severity = types.Severity

// Error is the typed analysis failure. It unwraps to one of the Err*
// sentinels below.
type Error = types.Error

// Analysis failure categories, for use with errors.Is.
var (
	ErrUnexpectedToken         = types.ErrUnexpectedToken
	ErrDuplicateSymbol         = types.ErrDuplicateSymbol
	ErrUndefinedIdentifier     = types.ErrUndefinedIdentifier
	ErrMismatchedProcedureName = types.ErrMismatchedProcedureName
	ErrUnconsumedInput         = types.ErrUnconsumedInput
	ErrInvalidLiteral          = types.ErrInvalidLiteral
)
