package types

// Diagnostic codes emitted by the lexer and the analyzer.
// Centralizing these prevents silent breakage from typos in string literals.

// Lexer diagnostic codes.
const (
	DiagUnexpectedChar    = "unexpected-char"
	DiagMalformedNumber   = "malformed-number"
	DiagUnterminatedToken = "unterminated-token"
)

// Analyzer diagnostic codes.
const (
	DiagUnexpectedToken         = "unexpected-token"
	DiagDuplicateSymbol         = "duplicate-symbol"
	DiagUndefinedIdentifier     = "undefined-identifier"
	DiagMismatchedProcedureName = "mismatched-procedure-name"
	DiagUnconsumedInput         = "unconsumed-input"
	DiagInvalidLiteral          = "invalid-literal"
)

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Lexer
		{Code: DiagUnexpectedChar, Phase: "lexer"},
		{Code: DiagMalformedNumber, Phase: "lexer"},
		{Code: DiagUnterminatedToken, Phase: "lexer"},
		// Analyzer
		{Code: DiagUnexpectedToken, Phase: "analyzer"},
		{Code: DiagDuplicateSymbol, Phase: "analyzer"},
		{Code: DiagUndefinedIdentifier, Phase: "analyzer"},
		{Code: DiagMismatchedProcedureName, Phase: "analyzer"},
		{Code: DiagUnconsumedInput, Phase: "analyzer"},
		{Code: DiagInvalidLiteral, Phase: "analyzer"},
	}
}

// DiagCodeInfo describes a diagnostic code and the phase that emits it.
type DiagCodeInfo struct {
	Code  string
	Phase string
}
