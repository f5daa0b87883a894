// Package testutil provides shared helpers for miniada tests.
package testutil

import (
	"testing"

	"github.com/miniada/miniada/internal/lexer"
)

// SliceSource replays a fixed token slice and then returns EOF forever.
type SliceSource struct {
	tokens []lexer.Token
	pos    int
	// Pulled counts NextToken calls, including those past the end.
	Pulled int
}

// NewSliceSource returns a source over tokens. A trailing EOF is not
// required.
func NewSliceSource(tokens ...lexer.Token) *SliceSource {
	return &SliceSource{tokens: tokens}
}

// NextToken implements parser.TokenSource.
func (s *SliceSource) NextToken() lexer.Token {
	s.Pulled++
	if s.pos >= len(s.tokens) {
		line := 0
		if n := len(s.tokens); n > 0 {
			line = s.tokens[n-1].Line
		}
		return lexer.NewToken(lexer.TokEOF, "", line)
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// Lex tokenizes src with the real lexer and fails the test on any lexical
// diagnostic.
func Lex(t testing.TB, src string) []lexer.Token {
	t.Helper()
	tokens, diags := lexer.New([]byte(src), nil).Tokenize()
	if len(diags) > 0 {
		t.Fatalf("unexpected lexer diagnostics: %v", diags)
	}
	return tokens
}

// Tok builds a token on line 1.
func Tok(kind lexer.TokenKind, lexeme string) lexer.Token {
	return lexer.NewToken(kind, lexeme, 1)
}
