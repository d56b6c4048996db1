package parser

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// parseIdent consumes an Ident-kind token (keyword or plain name) as a bare
// identifier fragment.
func (p *Parser) parseIdent() ast.Ident {
	t := p.cur()
	if t.Kind != token.Ident {
		p.msgs.Error("P001", "expected identifier").Primary(t.Span, "expected identifier, found "+token.KindName(t.Kind)).Emit()
		id := p.newID(t.Span)
		return ast.Ident{Base: ast.NewBase(id, t.Span), Sym: symbol.FromKw(symbol.KwUnderscore)}
	}
	p.advance()
	id := p.newID(t.Span)
	return ast.Ident{Base: ast.NewBase(id, t.Span), Sym: t.Ident}
}

// parsePrimary dispatches on the current token to build one leaf or
// compound expression term, before parsePostfix folds in `.`/`(`/`[`/`?`.
func (p *Parser) parsePrimary() ast.Expr {
	start := p.cur().Span

	switch {
	case p.at(token.Lit):
		return p.parseLiteral()
	case p.atKw(symbol.KwSelf):
		p.advance()
		sp := p.spanFrom(start)
		return &ast.SelfExpr{Base: ast.NewBase(p.newID(sp), sp)}
	case p.atKw(symbol.KwBreak):
		return p.parseBreak()
	case p.atKw(symbol.KwContinue):
		p.advance()
		sp := p.spanFrom(start)
		return &ast.ContinueExpr{Base: ast.NewBase(p.newID(sp), sp)}
	case p.atKw(symbol.KwReturn):
		return p.parseReturn()
	case p.atKw(symbol.KwIf):
		return p.parseIf()
	case p.atKw(symbol.KwMatch):
		return p.parseMatch()
	case p.atKw(symbol.KwLoop):
		return p.parseLoop()
	case p.atKw(symbol.KwWhile):
		return p.parseWhile()
	case p.atKw(symbol.KwFor):
		return p.parseFor()
	case p.at(token.LBrace):
		blk := p.parseBlock()
		return &ast.BlockExpr{Base: ast.NewBase(blk.Id(), blk.Span()), Value: *blk}
	case p.at(token.BitOr):
		return p.parseLambda()
	case p.at(token.PathSep):
		path := p.parsePath()
		return &ast.PathExpr{Base: ast.NewBase(p.newID(path.Span()), path.Span()), Path: path}
	case p.at(token.Ident) && !symbol.IsKeyword(p.cur().Ident):
		path := p.parsePath()
		return &ast.PathExpr{Base: ast.NewBase(p.newID(path.Span()), path.Span()), Path: path}
	case p.at(token.LParen):
		return p.parseParenOrTuple()
	case p.at(token.LBracket):
		return p.parseList()
	case p.at(token.Spread):
		p.advance()
		v := p.parseExpr(precAssign)
		sp := p.spanFrom(start)
		return &ast.SpreadExpr{Base: ast.NewBase(p.newID(sp), sp), Value: v}
	default:
		return p.errorNode("P002", "expected an expression")
	}
}

// parseLiteral wraps a Lit-kind (or `true`/`false`, which the lexer already
// tags LitBool) token as a LiteralExpr.
func (p *Parser) parseLiteral() ast.Expr {
	t := p.advance()
	sp := t.Span
	return &ast.LiteralExpr{Base: ast.NewBase(p.newID(sp), sp), Lit: t.Lit}
}

func (p *Parser) parseBreak() ast.Expr {
	start := p.cur().Span
	p.advance()
	var val ast.Expr
	if p.canStartExpr() {
		val = p.parseExpr(precAssign)
	}
	sp := p.spanFrom(start)
	return &ast.BreakExpr{Base: ast.NewBase(p.newID(sp), sp), Value: val}
}

func (p *Parser) parseReturn() ast.Expr {
	start := p.cur().Span
	p.advance()
	var val ast.Expr
	if p.canStartExpr() {
		val = p.parseExpr(precAssign)
	}
	sp := p.spanFrom(start)
	return &ast.ReturnExpr{Base: ast.NewBase(p.newID(sp), sp), Value: val}
}

// canStartExpr is a conservative check used after `break`/`return` to tell
// whether a value expression follows or the statement ends bare.
func (p *Parser) canStartExpr() bool {
	switch p.cur().Kind {
	case token.Semi, token.RBrace, token.EOF, token.Comma, token.RParen, token.RBracket:
		return false
	}
	return true
}

func (p *Parser) parseIf() ast.Expr {
	start := p.cur().Span
	p.advance() // if
	cond := p.parseExpr(precAssign)
	then := p.parseBlock()
	var elseBranch ast.Expr
	if p.atKw(symbol.KwElse) {
		p.advance()
		if p.atKw(symbol.KwIf) {
			elseBranch = p.parseIf()
		} else {
			blk := p.parseBlock()
			elseBranch = &ast.BlockExpr{Base: ast.NewBase(blk.Id(), blk.Span()), Value: *blk}
		}
	}
	sp := p.spanFrom(start)
	return &ast.IfExpr{Base: ast.NewBase(p.newID(sp), sp), Cond: cond, Then: *then, Else: elseBranch}
}

func (p *Parser) parseLoop() ast.Expr {
	start := p.cur().Span
	p.advance() // loop
	body := p.parseBlock()
	sp := p.spanFrom(start)
	return &ast.LoopExpr{Base: ast.NewBase(p.newID(sp), sp), Body: *body}
}

func (p *Parser) parseWhile() ast.Expr {
	start := p.cur().Span
	p.advance() // while
	cond := p.parseExpr(precAssign)
	body := p.parseBlock()
	sp := p.spanFrom(start)
	return &ast.WhileExpr{Base: ast.NewBase(p.newID(sp), sp), Cond: cond, Body: *body}
}

func (p *Parser) parseFor() ast.Expr {
	start := p.cur().Span
	p.advance() // for
	pat := p.parsePattern()
	p.expectKw(symbol.KwIn, "P012", "expected 'in' in for-loop")
	iter := p.parseExpr(precAssign)
	body := p.parseBlock()
	sp := p.spanFrom(start)
	return &ast.ForExpr{Base: ast.NewBase(p.newID(sp), sp), Pattern: pat, Iter: iter, Body: *body}
}

func (p *Parser) parseMatch() ast.Expr {
	start := p.cur().Span
	p.advance() // match
	scrutinee := p.parseExpr(precAssign)
	p.expect(token.LBrace, "P013", "expected '{' to start match body")
	var arms []ast.MatchArm
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		armStart := p.cur().Span
		pat := p.parsePattern()
		var guard ast.Expr
		if p.atKw(symbol.KwIf) {
			p.advance()
			guard = p.parseExpr(precAssign)
		}
		p.expect(token.DoubleArrow, "P014", "expected '=>' in match arm")
		body := p.parseExpr(precAssign)
		armSp := p.spanFrom(armStart)
		arms = append(arms, ast.MatchArm{Base: ast.NewBase(p.newID(armSp), armSp), Pattern: pat, Guard: guard, Body: body})
		p.eat(token.Comma) // arm separator; optional before the closing brace
	}
	p.expect(token.RBrace, "P015", "expected '}' to close match body")
	sp := p.spanFrom(start)
	return &ast.MatchExpr{Base: ast.NewBase(p.newID(sp), sp), Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) parseLambda() ast.Expr {
	start := p.cur().Span
	p.advance() // opening |
	var params []ast.FuncParam
	for !p.at(token.BitOr) && !p.at(token.EOF) {
		params = append(params, p.parseFuncParam())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.BitOr, "P016", "expected '|' to close lambda parameter list")
	var ret ast.Type
	if p.eat(token.Arrow) {
		ret = p.parseType()
	}
	body := p.parseExpr(precAssign)
	sp := p.spanFrom(start)
	return &ast.LambdaExpr{Base: ast.NewBase(p.newID(sp), sp), Params: params, ReturnType: ret, Body: body}
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	start := p.cur().Span
	p.advance() // (
	if p.eat(token.RParen) {
		sp := p.spanFrom(start)
		return &ast.UnitExpr{Base: ast.NewBase(p.newID(sp), sp)}
	}
	first := p.parseExpr(precLowest)
	if p.eat(token.Comma) {
		elems := []ast.Expr{first}
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elems = append(elems, p.parseExpr(precLowest))
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "P017", "expected ')' to close tuple")
		sp := p.spanFrom(start)
		return &ast.TupleExpr{Base: ast.NewBase(p.newID(sp), sp), Elements: elems}
	}
	p.expect(token.RParen, "P018", "expected ')' to close parenthesized expression")
	sp := p.spanFrom(start)
	return &ast.ParenExpr{Base: ast.NewBase(p.newID(sp), sp), Value: first}
}

func (p *Parser) parseList() ast.Expr {
	start := p.cur().Span
	p.advance() // [
	var elems []ast.Expr
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpr(precAssign))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket, "P019", "expected ']' to close list")
	sp := p.spanFrom(start)
	return &ast.ListExpr{Base: ast.NewBase(p.newID(sp), sp), Elements: elems}
}
