package lexer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/miniada/miniada/internal/types"
)

// Lexer tokenizes miniada source text. It is the token source the
// analyzer pulls from.
type Lexer struct {
	source      []byte
	pos         int
	line        int
	diagnostics []types.Diagnostic
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		pos:    0,
		line:   1,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []types.Diagnostic {
	return slices.Clone(l.diagnostics)
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.String("lexeme", tok.Lexeme),
			slog.Int("line", tok.Line))
	}
}

// Tokenize consumes all source text and returns the token stream
// along with any diagnostics generated during lexing.
func (l *Lexer) Tokenize() ([]Token, []types.Diagnostic) {
	estimatedTokens := max(len(l.source)/4, 16)
	tokens := make([]Token, 0, estimatedTokens)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))
	return tokens, l.diagnostics
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF on every call once all input is consumed.
func (l *Lexer) NextToken() Token {
	for {
		tok, retry := l.nextNormalToken()
		if retry {
			continue
		}
		return tok
	}
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
	}
	return b, true
}

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' {
			l.advance()
		} else {
			return
		}
	}
}

func (l *Lexer) skipToEOL() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) error(code string, line int, message string) {
	l.diagnostics = append(l.diagnostics, types.Diagnostic{
		Severity: types.SeverityError,
		Code:     code,
		Line:     line,
		Message:  message,
	})
}

func (l *Lexer) token(kind TokenKind, start, line int) Token {
	tok := Token{
		Kind:   kind,
		Lexeme: string(l.source[start:l.pos]),
		Line:   line,
	}
	l.traceToken(tok)
	return tok
}

// nextNormalToken scans the next token. Returns (token, retry) where
// retry=true means the caller should loop (e.g. after skipping a comment).
func (l *Lexer) nextNormalToken() (Token, bool) {
	l.skipWhitespace()

	start := l.pos
	line := l.line

	b, ok := l.peek()
	if !ok {
		return l.token(TokEOF, start, line), false
	}

	if b == '-' {
		if next, ok := l.peekAt(1); ok && next == '-' {
			l.skipToEOL()
			return Token{}, true
		}
	}

	switch b {
	case '(':
		l.advance()
		return l.token(TokLParen, start, line), false
	case ')':
		l.advance()
		return l.token(TokRParen, start, line), false
	case ';':
		l.advance()
		return l.token(TokSemicolon, start, line), false
	case ',':
		l.advance()
		return l.token(TokComma, start, line), false
	case '.':
		l.advance()
		return l.token(TokPeriod, start, line), false
	case '+', '-':
		l.advance()
		return l.token(TokAddOp, start, line), false
	case '*':
		l.advance()
		return l.token(TokMulOp, start, line), false
	case '=':
		l.advance()
		return l.token(TokRelOp, start, line), false
	case '/':
		l.advance()
		if next, ok := l.peek(); ok && next == '=' {
			l.advance()
			return l.token(TokRelOp, start, line), false
		}
		return l.token(TokMulOp, start, line), false
	case '<', '>':
		l.advance()
		if next, ok := l.peek(); ok && next == '=' {
			l.advance()
		}
		return l.token(TokRelOp, start, line), false
	case ':':
		l.advance()
		if next, ok := l.peek(); ok && next == '=' {
			l.advance()
			return l.token(TokAssign, start, line), false
		}
		return l.token(TokColon, start, line), false
	case '"':
		return l.scanString(), false
	case '\'':
		return l.scanCharLiteral(), false
	}

	if isDigit(b) {
		return l.scanNumber(), false
	}

	if isAlpha(b) {
		return l.scanIdentifierOrKeyword(), false
	}

	l.advance()
	l.error(types.DiagUnexpectedChar, line, fmt.Sprintf("unexpected character: 0x%02x", b))
	return l.token(TokError, start, line), false
}

func (l *Lexer) scanIdentifierOrKeyword() Token {
	start := l.pos
	line := l.line
	l.advance()

	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if isAlphanumeric(b) || b == '_' {
			l.advance()
		} else {
			break
		}
	}

	text := string(l.source[start:l.pos])
	if kind, ok := LookupKeyword(text); ok {
		return l.token(kind, start, line)
	}
	return l.token(TokIdent, start, line)
}

// scanNumber scans digits with an optional fractional part.
// A period not followed by a digit is left for the next token.
func (l *Lexer) scanNumber() Token {
	start := l.pos
	line := l.line

	l.skipDigits()
	if b, ok := l.peek(); ok && b == '.' {
		if next, ok := l.peekAt(1); ok && isDigit(next) {
			l.advance()
			l.skipDigits()
		}
	}

	if b, ok := l.peek(); ok && isAlpha(b) {
		for {
			b, ok := l.peek()
			if !ok || !(isAlphanumeric(b) || b == '_') {
				break
			}
			l.advance()
		}
		l.error(types.DiagMalformedNumber, line,
			fmt.Sprintf("malformed number %q", l.source[start:l.pos]))
		return l.token(TokError, start, line)
	}

	return l.token(TokNumber, start, line)
}

func (l *Lexer) skipDigits() {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			return
		}
		l.advance()
	}
}

func (l *Lexer) scanString() Token {
	start := l.pos
	line := l.line
	l.advance() // consume opening quote

	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			l.error(types.DiagUnterminatedToken, line, "unterminated string literal")
			return l.token(TokError, start, line)
		}
		l.advance()
		if b == '"' {
			return l.token(TokString, start, line)
		}
	}
}

func (l *Lexer) scanCharLiteral() Token {
	start := l.pos
	line := l.line
	l.advance() // consume opening quote

	if b, ok := l.peek(); ok && b != '\n' {
		l.advance()
		if q, ok := l.peek(); ok && q == '\'' {
			l.advance()
			return l.token(TokCharLit, start, line)
		}
	}
	l.error(types.DiagUnterminatedToken, line, "unterminated character literal")
	return l.token(TokError, start, line)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphanumeric(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
