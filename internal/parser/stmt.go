package parser

import (
	"github.com/miniada/miniada/internal/lexer"
)

// parseStatements handles
//
//	SeqOfStatements -> Statement ; StatTail | ε
//	StatTail        -> Statement ; StatTail | ε
//
// Only assignments can start a statement, so the sequence continues
// while the lookahead is an identifier.
func (p *Parser) parseStatements() error {
	for p.check(lexer.TokIdent) {
		if err := p.parseStatement(); err != nil {
			return err
		}
		if err := p.match(lexer.TokSemicolon); err != nil {
			return err
		}
	}
	return nil
}

// parseStatement handles Statement -> AssignStat | IOStat. IOStat is the
// empty production and has no semantic action.
func (p *Parser) parseStatement() error {
	if p.check(lexer.TokIdent) {
		return p.parseAssignment()
	}
	return nil
}

// parseAssignment handles AssignStat -> idt := Expr.
func (p *Parser) parseAssignment() error {
	if err := p.checkDefined(); err != nil {
		return err
	}
	if err := p.match(lexer.TokIdent); err != nil {
		return err
	}
	if err := p.match(lexer.TokAssign); err != nil {
		return err
	}
	return p.parseExpr()
}

// parseExpr handles Expr -> Relation.
func (p *Parser) parseExpr() error {
	return p.parseRelation()
}

// parseRelation handles Relation -> SimpleExpr.
func (p *Parser) parseRelation() error {
	return p.parseSimpleExpr()
}

// parseSimpleExpr handles SimpleExpr -> Term { Addop Term }.
func (p *Parser) parseSimpleExpr() error {
	if err := p.parseTerm(); err != nil {
		return err
	}
	for p.check(lexer.TokAddOp) {
		if err := p.match(lexer.TokAddOp); err != nil {
			return err
		}
		if err := p.parseTerm(); err != nil {
			return err
		}
	}
	return nil
}

// parseTerm handles Term -> Factor { Mulop Factor }.
func (p *Parser) parseTerm() error {
	if err := p.parseFactor(); err != nil {
		return err
	}
	for p.check(lexer.TokMulOp) {
		if err := p.match(lexer.TokMulOp); err != nil {
			return err
		}
		if err := p.parseFactor(); err != nil {
			return err
		}
	}
	return nil
}

// parseFactor handles Factor -> idt | num | ( Expr ) | not Factor | - Factor.
func (p *Parser) parseFactor() error {
	switch {
	case p.check(lexer.TokIdent):
		if err := p.checkDefined(); err != nil {
			return err
		}
		return p.match(lexer.TokIdent)

	case p.check(lexer.TokNumber):
		return p.match(lexer.TokNumber)

	case p.check(lexer.TokLParen):
		if err := p.match(lexer.TokLParen); err != nil {
			return err
		}
		if err := p.parseExpr(); err != nil {
			return err
		}
		return p.match(lexer.TokRParen)

	case p.check(lexer.TokNot):
		if err := p.match(lexer.TokNot); err != nil {
			return err
		}
		return p.parseFactor()

	case p.check(lexer.TokAddOp) && p.cur.Lexeme == "-":
		if err := p.match(lexer.TokAddOp); err != nil {
			return err
		}
		return p.parseFactor()

	default:
		return p.unexpected("factor")
	}
}
