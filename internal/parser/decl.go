package parser

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/miniada/miniada/internal/lexer"
	"github.com/miniada/miniada/internal/types"
	"github.com/miniada/miniada/symtab"
)

// parseProgram handles
//
//	Prog -> procedure idt Args is DeclarativePart Procedures begin SeqOfStatements end idt ;
//
// The procedure's own name is registered at the enclosing depth; its
// parameters, locals and nested procedures live one level deeper.
func (p *Parser) parseProgram() error {
	saved := p.offset
	defer func() { p.offset = saved }()
	p.offset = symtab.HeaderSize

	if err := p.match(lexer.TokProcedure); err != nil {
		return err
	}
	if !p.check(lexer.TokIdent) {
		return p.unexpected(lexer.TokIdent.String())
	}
	if err := p.checkDuplicate(); err != nil {
		return err
	}

	name := p.cur.Lexeme
	fn := p.table.Insert(name, p.table.Depth())
	fn.Line = p.cur.Line
	fn.SetFunction()
	if p.program == "" {
		p.program = name
	}

	depth := p.table.Enter()
	defer p.table.Leave()
	p.Log(slog.LevelDebug, "scope opened",
		slog.String("procedure", name),
		slog.Int("depth", depth))

	if err := p.match(lexer.TokIdent); err != nil {
		return err
	}
	if err := p.parseArgs(name); err != nil {
		return err
	}
	if err := p.match(lexer.TokIs); err != nil {
		return err
	}

	p.offset = symtab.LocalBase
	if err := p.parseDeclarativePart(name); err != nil {
		return err
	}
	if err := p.parseProcedures(); err != nil {
		return err
	}
	if err := p.match(lexer.TokBegin); err != nil {
		return err
	}
	if err := p.parseStatements(); err != nil {
		return err
	}
	if err := p.match(lexer.TokEnd); err != nil {
		return err
	}

	if !strings.EqualFold(name, p.cur.Lexeme) {
		return &types.Error{Code: types.DiagMismatchedProcedureName, Line: p.cur.Line, Name: name}
	}
	if err := p.match(lexer.TokIdent); err != nil {
		return err
	}
	if err := p.match(lexer.TokSemicolon); err != nil {
		return err
	}

	frame := symtab.Snapshot(fn, p.table.SymbolsAt(depth))
	p.frames = append(p.frames, frame)
	p.Log(slog.LevelDebug, "scope closed",
		slog.String("procedure", name),
		slog.Int("depth", depth),
		slog.Int("paramSize", frame.ParamSize),
		slog.Int("localSize", frame.LocalSize))
	return nil
}

// parseProcedures handles Procedures -> Prog Procedures | ε.
func (p *Parser) parseProcedures() error {
	for p.check(lexer.TokProcedure) {
		if err := p.parseProgram(); err != nil {
			return err
		}
	}
	return nil
}

// parseArgs handles Args -> ( ArgList ) | ε.
//
// Once every parameter group is attributed, offsets are assigned from
// the last-declared parameter upwards, starting at the frame header.
func (p *Parser) parseArgs(fnName string) error {
	if !p.check(lexer.TokLParen) {
		return nil
	}
	if err := p.match(lexer.TokLParen); err != nil {
		return err
	}
	p.paramMark = 0
	if err := p.parseArgList(fnName); err != nil {
		return err
	}
	if err := p.match(lexer.TokRParen); err != nil {
		return err
	}

	for i := len(p.pending) - 1; i >= 0; i-- {
		sym := p.pending[i]
		sym.SetOffset(p.offset)
		p.offset += sym.Size()
	}

	attrs := p.function(fnName)
	attrs.ParamCount = len(p.pending)
	attrs.ParamSize = p.offset - symtab.HeaderSize

	p.pending = nil
	p.paramMark = 0
	return nil
}

// parseArgList handles
//
//	ArgList  -> Mode IdentifierList : TypeMark MoreArgs
//	MoreArgs -> ; ArgList | ε
func (p *Parser) parseArgList(fnName string) error {
	for {
		mode, err := p.parseMode()
		if err != nil {
			return err
		}
		if err := p.parseIdentifierList(); err != nil {
			return err
		}
		if err := p.match(lexer.TokColon); err != nil {
			return err
		}
		if err := p.parseTypeMark(fnName, &mode); err != nil {
			return err
		}
		if !p.check(lexer.TokSemicolon) {
			return nil
		}
		if err := p.match(lexer.TokSemicolon); err != nil {
			return err
		}
	}
}

// parseMode handles Mode -> in | out | inout | ε. Anything else leaves
// the lookahead alone and yields ModeIn.
func (p *Parser) parseMode() (symtab.Mode, error) {
	mode, ok := symtab.ParseMode(p.cur.Lexeme)
	if !ok {
		return symtab.ModeIn, nil
	}
	if err := p.match(p.cur.Kind); err != nil {
		return mode, err
	}
	return mode, nil
}

// parseDeclarativePart handles
//
//	DeclarativePart -> IdentifierList : TypeMark ; DeclarativePart | ε
func (p *Parser) parseDeclarativePart(fnName string) error {
	for p.check(lexer.TokIdent) {
		if err := p.parseIdentifierList(); err != nil {
			return err
		}
		if err := p.match(lexer.TokColon); err != nil {
			return err
		}
		if err := p.parseTypeMark(fnName, nil); err != nil {
			return err
		}
		if err := p.match(lexer.TokSemicolon); err != nil {
			return err
		}
	}
	return nil
}

// parseIdentifierList handles IdentifierList -> idt { , idt }, registering
// each name at the current depth and queueing it for attribution.
func (p *Parser) parseIdentifierList() error {
	for {
		if !p.check(lexer.TokIdent) {
			return p.unexpected(lexer.TokIdent.String())
		}
		if err := p.checkDuplicate(); err != nil {
			return err
		}

		sym := p.table.Insert(p.cur.Lexeme, p.table.Depth())
		sym.Line = p.cur.Line
		p.pending = append(p.pending, sym)
		if err := p.match(lexer.TokIdent); err != nil {
			return err
		}

		if !p.check(lexer.TokComma) {
			return nil
		}
		if err := p.match(lexer.TokComma); err != nil {
			return err
		}
	}
}

// parseTypeMark handles TypeMark -> integer | float | char | const := Value
// and attributes every pending symbol that is still unset.
//
// With a mode the pending symbols are parameters: their types and the
// shared mode are appended to the procedure's lists and offsets wait
// for parseArgs. Without one they are locals and get offsets now.
func (p *Parser) parseTypeMark(fnName string, mode *symtab.Mode) error {
	switch p.cur.Kind {
	case lexer.TokInteger, lexer.TokFloat, lexer.TokChar:
		t := primitiveType(p.cur.Kind)
		for _, sym := range p.pending {
			if sym.IsUnset() {
				sym.SetVariable(t)
			}
		}
		if err := p.match(p.cur.Kind); err != nil {
			return err
		}

	case lexer.TokConst:
		if err := p.match(lexer.TokConst); err != nil {
			return err
		}
		if err := p.match(lexer.TokAssign); err != nil {
			return err
		}
		line := p.cur.Line
		text, err := p.parseValue()
		if err != nil {
			return err
		}
		t, iv, fv, err := parseNumber(text, line)
		if err != nil {
			return err
		}
		for _, sym := range p.pending {
			if sym.IsUnset() {
				sym.SetConstant(t, iv, fv)
			}
		}

	default:
		return p.unexpected("integer/float/char/const")
	}

	attrs := p.function(fnName)
	if mode != nil {
		for _, sym := range p.pending[p.paramMark:] {
			t, _ := sym.Type()
			attrs.ParamTypes = append(attrs.ParamTypes, t)
			attrs.ParamModes = append(attrs.ParamModes, *mode)
			sym.MarkParameter()
			p.traceSymbol("parameter declared", sym)
		}
		p.paramMark = len(p.pending)
		return nil
	}

	for _, sym := range p.pending {
		sym.SetOffset(p.offset)
		p.offset += sym.Size()
		p.traceSymbol("local declared", sym)
	}
	attrs.LocalSize = p.offset - symtab.LocalBase
	p.pending = nil
	return nil
}

// parseValue handles Value -> NumericalLiteral and returns its text.
func (p *Parser) parseValue() (string, error) {
	text := p.cur.Lexeme
	if err := p.match(lexer.TokNumber); err != nil {
		return "", err
	}
	return text, nil
}

// function returns the attributes of the procedure being declared. The
// name is looked up by kind because a parameter may shadow it.
func (p *Parser) function(name string) *symtab.FunctionAttrs {
	fn := p.table.LookupKind(name, symtab.KindFunction)
	attrs, _ := fn.Function()
	return attrs
}

func (p *Parser) traceSymbol(msg string, sym *symtab.Symbol) {
	if p.TraceEnabled() {
		p.Trace(msg,
			slog.String("name", sym.Name),
			slog.String("kind", sym.Kind().String()),
			slog.Int("depth", sym.Depth),
			slog.Int("offset", sym.Offset()),
			slog.Int("size", sym.Size()))
	}
}

func primitiveType(kind lexer.TokenKind) symtab.VarType {
	switch kind {
	case lexer.TokFloat:
		return symtab.TypeFloat
	case lexer.TokChar:
		return symtab.TypeCharacter
	default:
		return symtab.TypeInteger
	}
}

// parseNumber infers Integer or Float from the presence of a decimal
// point. Integer literals must fit in 32 bits.
func parseNumber(text string, line int) (symtab.VarType, int64, float64, error) {
	if !strings.Contains(text, ".") {
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return 0, 0, 0, &types.Error{Code: types.DiagInvalidLiteral, Line: line, Lexeme: text}
		}
		return symtab.TypeInteger, v, 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, 0, 0, &types.Error{Code: types.DiagInvalidLiteral, Line: line, Lexeme: text}
	}
	return symtab.TypeFloat, 0, v, nil
}
