// Package lexer provides tokenization for miniada source text.
package lexer

import "fmt"

// Token is a classified lexeme with the line it starts on.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
}

// NewToken creates a new token.
func NewToken(kind TokenKind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// String returns "kind(lexeme)@line" for debugging output.
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)@%d", t.Kind, t.Lexeme, t.Line)
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokError is a lexical error.
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// === Identifiers and literals ===

	// TokIdent is an identifier.
	TokIdent
	// TokNumber is an integer or real literal (e.g. 42, 3.14).
	TokNumber
	// TokString is a double-quoted string literal.
	TokString
	// TokCharLit is a single-quoted character literal.
	TokCharLit

	// === Punctuation ===

	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
	// TokColon is ':'.
	TokColon
	// TokSemicolon is ';'.
	TokSemicolon
	// TokComma is ','.
	TokComma
	// TokPeriod is '.'.
	TokPeriod

	// === Operators ===

	// TokAssign is ':='.
	TokAssign
	// TokAddOp is '+', '-' or 'or'.
	TokAddOp
	// TokMulOp is '*', '/', 'mod', 'rem' or 'and'.
	TokMulOp
	// TokRelOp is '=', '/=', '<', '<=', '>' or '>='.
	TokRelOp

	// === Keywords ===

	// TokProcedure is 'procedure'.
	TokProcedure
	// TokIs is 'is'.
	TokIs
	// TokBegin is 'begin'.
	TokBegin
	// TokEnd is 'end'.
	TokEnd
	// TokInteger is 'integer'.
	TokInteger
	// TokFloat is 'float'.
	TokFloat
	// TokChar is 'char'.
	TokChar
	// TokConst is 'const'.
	TokConst
	// TokIn is 'in'.
	TokIn
	// TokOut is 'out'.
	TokOut
	// TokInOut is 'inout'.
	TokInOut
	// TokNot is 'not'.
	TokNot
)

var kindNames = [...]string{
	TokError:     "error",
	TokEOF:       "eof",
	TokIdent:     "id",
	TokNumber:    "num",
	TokString:    "literal",
	TokCharLit:   "charlit",
	TokLParen:    "lparen",
	TokRParen:    "rparen",
	TokColon:     "colon",
	TokSemicolon: "semicolon",
	TokComma:     "comma",
	TokPeriod:    "period",
	TokAssign:    "assignop",
	TokAddOp:     "addop",
	TokMulOp:     "mulop",
	TokRelOp:     "relop",
	TokProcedure: "procedure",
	TokIs:        "is",
	TokBegin:     "begin",
	TokEnd:       "end",
	TokInteger:   "integer",
	TokFloat:     "float",
	TokChar:      "char",
	TokConst:     "const",
	TokIn:        "in",
	TokOut:       "out",
	TokInOut:     "inout",
	TokNot:       "not",
}

// String returns the token kind name used in diagnostics.
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsKeyword returns true if this is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= TokProcedure && k <= TokNot
}

// IsTypeMark returns true for the primitive type keywords and 'const'.
func (k TokenKind) IsTypeMark() bool {
	switch k {
	case TokInteger, TokFloat, TokChar, TokConst:
		return true
	default:
		return false
	}
}
