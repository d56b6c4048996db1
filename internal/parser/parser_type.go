package parser

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// parseType parses a type expression: `()`, `(T)`, `(T1, T2, ...)`,
// `func(T1, T2) -> Ret`, `[T]`, `[T; N]`, or a path type.
func (p *Parser) parseType() ast.Type {
	start := p.cur().Span

	switch {
	case p.at(token.LParen):
		return p.parseParenOrTupleType(start)
	case p.atKw(symbol.KwFunc), p.atKw(symbol.KwFn):
		return p.parseFuncType(start)
	case p.at(token.LBracket):
		return p.parseSliceOrArrayType(start)
	case p.at(token.Ident), p.at(token.PathSep):
		path := p.parsePath()
		return &ast.PathType{Base: ast.NewBase(p.newID(path.Span()), path.Span()), Path: path}
	default:
		err := p.errorNode("P030", "expected a type")
		return err
	}
}

func (p *Parser) parseParenOrTupleType(start source.Span) ast.Type {
	p.advance() // (
	if p.eat(token.RParen) {
		sp := p.spanFrom(start)
		return &ast.UnitType{Base: ast.NewBase(p.newID(sp), sp)}
	}
	first := p.parseType()
	if p.eat(token.Comma) {
		elems := []ast.Type{first}
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elems = append(elems, p.parseType())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "P031", "expected ')' to close tuple type")
		sp := p.spanFrom(start)
		return &ast.TupleType{Base: ast.NewBase(p.newID(sp), sp), Elements: elems}
	}
	p.expect(token.RParen, "P032", "expected ')' to close parenthesized type")
	sp := p.spanFrom(start)
	return &ast.ParenType{Base: ast.NewBase(p.newID(sp), sp), Value: first}
}

func (p *Parser) parseFuncType(start source.Span) ast.Type {
	p.advance() // func/fn
	p.expect(token.LParen, "P033", "expected '(' in function type")
	var params []ast.Type
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseType())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "P034", "expected ')' to close function type parameter list")
	var ret ast.Type
	if p.eat(token.Arrow) {
		ret = p.parseType()
	}
	sp := p.spanFrom(start)
	return &ast.FuncType{Base: ast.NewBase(p.newID(sp), sp), Params: params, ReturnType: ret}
}

func (p *Parser) parseSliceOrArrayType(start source.Span) ast.Type {
	p.advance() // [
	elem := p.parseType()
	if p.eat(token.Semi) {
		sizeStart := p.cur().Span
		sizeExpr := p.parseExpr(precAssign)
		sizeSp := p.spanFrom(sizeStart)
		size := ast.AnonConst{Base: ast.NewBase(p.newID(sizeSp), sizeSp), Value: sizeExpr}
		p.expect(token.RBracket, "P035", "expected ']' to close array type")
		sp := p.spanFrom(start)
		return &ast.ArrayType{Base: ast.NewBase(p.newID(sp), sp), Element: elem, Size: size}
	}
	p.expect(token.RBracket, "P036", "expected ']' to close slice type")
	sp := p.spanFrom(start)
	return &ast.SliceType{Base: ast.NewBase(p.newID(sp), sp), Element: elem}
}
