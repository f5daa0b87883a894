// Package parser implements the single-pass analyzer: a recursive-descent
// parser whose productions maintain the symbol table as a side effect.
//
// Analysis stops at the first error. Every production returns that error
// unchanged to its caller, and scopes opened along the way are closed as
// the call stack unwinds, so a failed run leaves the table back at its
// starting depth.
package parser

import (
	"log/slog"

	"github.com/miniada/miniada/internal/lexer"
	"github.com/miniada/miniada/internal/types"
	"github.com/miniada/miniada/symtab"
)

// TokenSource produces tokens on demand. Once input is exhausted it must
// keep returning lexer.TokEOF.
type TokenSource interface {
	NextToken() lexer.Token
}

// Result is the outcome of a successful analysis.
type Result struct {
	// Program is the outermost procedure's symbol.
	Program *symtab.Symbol
	// Table holds the symbols still live after the outermost scope
	// closed: the outermost procedure at symtab.BaseDepth.
	Table *symtab.Table
	// Frames are the activation records of every procedure, in the order
	// their scopes closed (innermost first).
	Frames []symtab.Frame
	// Tokens is the number of tokens consumed, including the final EOF.
	Tokens int
}

// Parser holds the analysis context threaded through every production.
type Parser struct {
	src   TokenSource
	cur   lexer.Token
	table *symtab.Table

	// pending collects identifiers declared together until their
	// TypeMark (and, for parameters, their mode) is known.
	pending []*symtab.Symbol
	// paramMark is the index in pending of the first parameter not yet
	// appended to the enclosing procedure's parameter lists.
	paramMark int
	// offset is the next free activation-record offset of the procedure
	// whose header or declarative part is being parsed.
	offset int

	program    string
	frames     []symtab.Frame
	consumed   int
	successful bool
	types.Logger
}

// New returns a Parser reading from src and recording into table. Pass a
// fresh table per run; pass nil for logger to disable logging.
func New(src TokenSource, table *symtab.Table, logger *slog.Logger) *Parser {
	if table == nil {
		table = symtab.NewTable()
	}
	return &Parser{
		src:    src,
		table:  table,
		Logger: types.Logger{L: logger},
	}
}

// Analyze parses one complete program. It returns the first failure as
// a *types.Error.
func (p *Parser) Analyze() (*Result, error) {
	p.Log(slog.LevelDebug, "analysis started", slog.Int("depth", p.table.Depth()))

	p.advance()
	if err := p.parseProgram(); err != nil {
		p.pending = nil
		p.Log(slog.LevelDebug, "analysis failed", slog.String("error", err.Error()))
		return nil, err
	}

	if p.cur.Kind != lexer.TokEOF {
		err := &types.Error{
			Code:   types.DiagUnconsumedInput,
			Line:   p.cur.Line,
			Found:  p.cur.Kind.String(),
			Lexeme: p.cur.Lexeme,
		}
		p.Log(slog.LevelDebug, "analysis failed", slog.String("error", err.Error()))
		return nil, err
	}

	p.successful = true
	p.Log(slog.LevelDebug, "analysis complete",
		slog.String("program", p.program),
		slog.Int("tokens", p.consumed),
		slog.Int("frames", len(p.frames)))

	return &Result{
		Program: p.table.LookupKind(p.program, symtab.KindFunction),
		Table:   p.table,
		Frames:  p.frames,
		Tokens:  p.consumed,
	}, nil
}

// Successful reports whether Analyze ran to completion without error.
func (p *Parser) Successful() bool {
	return p.successful
}

// Table returns the symbol table the parser records into.
func (p *Parser) Table() *symtab.Table {
	return p.table
}

func (p *Parser) advance() {
	p.cur = p.src.NextToken()
	p.consumed++
	if p.TraceEnabled() {
		p.Trace("lookahead",
			slog.String("kind", p.cur.Kind.String()),
			slog.String("lexeme", p.cur.Lexeme),
			slog.Int("line", p.cur.Line))
	}
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.cur.Kind == kind
}

// match consumes the lookahead if it has the expected kind.
func (p *Parser) match(kind lexer.TokenKind) error {
	if p.cur.Kind != kind {
		return p.unexpected(kind.String())
	}
	p.advance()
	return nil
}

func (p *Parser) unexpected(expected string) error {
	return &types.Error{
		Code:     types.DiagUnexpectedToken,
		Line:     p.cur.Line,
		Expected: expected,
		Found:    p.cur.Kind.String(),
		Lexeme:   p.cur.Lexeme,
	}
}

// checkDuplicate fails if the lookahead names a symbol already declared
// at the current depth.
func (p *Parser) checkDuplicate() error {
	name := p.cur.Lexeme
	if p.table.LookupAt(name, p.table.Depth()) != nil {
		return &types.Error{Code: types.DiagDuplicateSymbol, Line: p.cur.Line, Name: name}
	}
	return nil
}

// checkDefined fails unless the lookahead names a symbol visible from
// the current depth.
func (p *Parser) checkDefined() error {
	name := p.cur.Lexeme
	sym := p.table.Lookup(name)
	if sym == nil || sym.Depth > p.table.Depth() {
		return &types.Error{Code: types.DiagUndefinedIdentifier, Line: p.cur.Line, Name: name}
	}
	return nil
}
