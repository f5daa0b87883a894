package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miniada/miniada/internal/lexer"
)

func TestSliceSourceReplaysThenEOF(t *testing.T) {
	src := NewSliceSource(
		lexer.NewToken(lexer.TokIdent, "x", 3),
		lexer.NewToken(lexer.TokSemicolon, ";", 4),
	)
	assert.Equal(t, "x", src.NextToken().Lexeme)
	assert.Equal(t, lexer.TokSemicolon, src.NextToken().Kind)
	for range 2 {
		tok := src.NextToken()
		assert.Equal(t, lexer.TokEOF, tok.Kind)
		assert.Equal(t, 4, tok.Line)
	}
	assert.Equal(t, 4, src.Pulled)
}

func TestLex(t *testing.T) {
	tokens := Lex(t, "x := 1;")
	assert.Len(t, tokens, 5)
	assert.Equal(t, lexer.TokEOF, tokens[4].Kind)
}
