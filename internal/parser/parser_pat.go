package parser

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// parsePattern parses the full pattern grammar, including the
// top-level-only `p | p | p` alternation.
func (p *Parser) parsePattern() ast.Pat {
	start := p.cur().Span
	first := p.parsePatternNoAlt()
	if !p.at(token.BitOr) {
		return first
	}
	alts := []ast.Pat{first}
	for p.eat(token.BitOr) {
		alts = append(alts, p.parsePatternNoAlt())
	}
	sp := p.spanFrom(start)
	return &ast.MultiPat{Base: ast.NewBase(p.newID(sp), sp), Alternatives: alts}
}

func (p *Parser) parsePatternNoAlt() ast.Pat {
	start := p.cur().Span

	switch {
	case p.atKw(symbol.KwUnderscore):
		p.advance()
		sp := p.spanFrom(start)
		return &ast.WildcardPat{Base: ast.NewBase(p.newID(sp), sp)}
	case p.at(token.Range):
		p.advance()
		sp := p.spanFrom(start)
		return &ast.RestPat{Base: ast.NewBase(p.newID(sp), sp)}
	case p.at(token.Lit):
		lit := p.parseLiteral().(*ast.LiteralExpr)
		sp := p.spanFrom(start)
		return &ast.LitPat{Base: ast.NewBase(p.newID(sp), sp), Value: lit}
	case p.at(token.Sub) && p.peek().Kind == token.Lit:
		p.advance()
		lit := p.parseLiteral().(*ast.LiteralExpr)
		sp := p.spanFrom(start)
		neg := &ast.LiteralExpr{Base: ast.NewBase(p.newID(sp), sp), Lit: lit.Lit}
		return &ast.LitPat{Base: ast.NewBase(p.newID(sp), sp), Value: neg}
	case p.at(token.Ampersand):
		p.advance()
		mut := p.eatKw(symbol.KwMut)
		v := p.parsePatternNoAlt()
		sp := p.spanFrom(start)
		return &ast.RefPat{Base: ast.NewBase(p.newID(sp), sp), Mut: mut, Value: v}
	case p.at(token.LParen):
		return p.parseTuplePattern(start)
	case p.at(token.LBracket):
		return p.parseSlicePattern(start)
	case p.atKw(symbol.KwRef), p.atKw(symbol.KwMut):
		return p.parseIdentPattern(start)
	case p.at(token.Ident) && !symbol.IsKeyword(p.cur().Ident):
		// Could be a bare binding (IdentPat) or a path pattern (unit
		// struct/variant/const); disambiguate on what follows.
		if p.peek().Kind == token.PathSep || p.peek().Kind == token.LBrace {
			return p.parsePathOrStructPattern(start)
		}
		return p.parseIdentPattern(start)
	case p.at(token.PathSep):
		return p.parsePathOrStructPattern(start)
	default:
		return p.errorNode("P040", "expected a pattern")
	}
}

func (p *Parser) parseIdentPattern(start source.Span) ast.Pat {
	ref := p.eatKw(symbol.KwRef)
	mut := p.eatKw(symbol.KwMut)
	name := p.parseIdent()
	var sub ast.Pat
	if p.eat(token.At) {
		sub = p.parsePatternNoAlt()
	}
	sp := p.spanFrom(start)
	return &ast.IdentPat{Base: ast.NewBase(p.newID(sp), sp), Ref: ref, Mut: mut, Name: name, SubPat: sub}
}

func (p *Parser) parsePathOrStructPattern(start source.Span) ast.Pat {
	path := p.parsePath()
	if p.at(token.LBrace) {
		return p.parseStructPatternTail(start, path)
	}
	sp := p.spanFrom(start)
	return &ast.PathPat{Base: ast.NewBase(p.newID(sp), sp), Path: path}
}

func (p *Parser) parseStructPatternTail(start source.Span, path ast.Path) ast.Pat {
	p.advance() // {
	var fields []ast.StructPatField
	hasRest := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Range) {
			p.advance()
			hasRest = true
			break
		}
		fieldStart := p.cur().Span
		ref := p.eatKw(symbol.KwRef)
		mut := p.eatKw(symbol.KwMut)
		name := p.parseIdent()
		var pat ast.Pat
		if p.eat(token.Colon) {
			pat = p.parsePattern()
		}
		fieldSp := p.spanFrom(fieldStart)
		fields = append(fields, ast.StructPatField{Base: ast.NewBase(p.newID(fieldSp), fieldSp), Name: name, Pattern: pat, Ref: ref, Mut: mut})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "P041", "expected '}' to close struct pattern")
	sp := p.spanFrom(start)
	return &ast.StructPat{Base: ast.NewBase(p.newID(sp), sp), Path: path, Fields: fields, HasRest: hasRest}
}

func (p *Parser) parseTuplePattern(start source.Span) ast.Pat {
	p.advance() // (
	var elems []ast.Pat
	restIdx := -1
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Range) {
			restIdx = len(elems)
		}
		elems = append(elems, p.parsePatternNoAlt())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "P042", "expected ')' to close tuple pattern")
	sp := p.spanFrom(start)
	return &ast.TuplePat{Base: ast.NewBase(p.newID(sp), sp), Elements: elems, RestIndex: restIdx}
}

func (p *Parser) parseSlicePattern(start source.Span) ast.Pat {
	p.advance() // [
	var elems []ast.Pat
	restIdx := -1
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Range) {
			restIdx = len(elems)
		}
		elems = append(elems, p.parsePatternNoAlt())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket, "P043", "expected ']' to close slice pattern")
	sp := p.spanFrom(start)
	return &ast.SlicePat{Base: ast.NewBase(p.newID(sp), sp), Elements: elems, RestIndex: restIdx}
}
