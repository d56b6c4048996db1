package parser

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// parsePath parses a (possibly absolute, possibly generic) `::`-separated
// path used in expression, type, or pattern position.
func (p *Parser) parsePath() ast.Path {
	start := p.cur().Span
	absolute := p.eat(token.PathSep)

	var segs []ast.PathSeg
	for {
		segStart := p.cur().Span
		name := p.parseIdent()
		var args []ast.GenericArg
		if p.at(token.LAngle) {
			args = p.parseGenericArgs()
		}
		segSp := p.spanFrom(segStart)
		segs = append(segs, ast.PathSeg{Base: ast.NewBase(p.newID(segSp), segSp), Name: name, Args: args})
		if !p.eat(token.PathSep) {
			break
		}
	}
	sp := p.spanFrom(start)
	return ast.Path{Base: ast.NewBase(p.newID(sp), sp), Absolute: absolute, Segments: segs}
}

// parseSimplePath parses a dotted module path with no generic arguments, as
// used by `mod` declarations and `use` trees.
func (p *Parser) parseSimplePath() ast.SimplePath {
	start := p.cur().Span
	absolute := p.eat(token.PathSep)
	var segs []ast.SimplePathSeg
	for {
		segStart := p.cur().Span
		name := p.parseIdent()
		segSp := p.spanFrom(segStart)
		segs = append(segs, ast.SimplePathSeg{Base: ast.NewBase(p.newID(segSp), segSp), Name: name})
		if !p.eat(token.PathSep) {
			break
		}
		if p.at(token.LBrace) || p.at(token.Mul) {
			break
		}
	}
	sp := p.spanFrom(start)
	return ast.SimplePath{Base: ast.NewBase(p.newID(sp), sp), Absolute: absolute, Segments: segs}
}

// parseGenericArgs parses a use-site `<arg, arg, ...>` list. The closing
// `>>` case (two adjacent generic closes, e.g. `Map<K, List<V>>`) is handled
// by the lexer producing a single Shr token that the caller must be ready to
// split; for simplicity this parser treats a leading Shr the same as two
// RAngles when closing nested generics.
func (p *Parser) parseGenericArgs() []ast.GenericArg {
	p.advance() // <
	var args []ast.GenericArg
	for !p.at(token.RAngle) && !p.at(token.Shr) && !p.at(token.EOF) {
		args = append(args, p.parseGenericArg())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.closeAngle()
	return args
}

// closeAngle consumes one `>` from either a bare RAngle or by splitting a
// Shr token into two logical closes: the Shr is rewritten in place to a
// single RAngle, which the enclosing generic argument list then consumes.
func (p *Parser) closeAngle() {
	if p.eat(token.RAngle) {
		return
	}
	if p.at(token.Shr) {
		// Split `>>` into two `>`s by rewriting the current token in place.
		t := p.cur()
		t.Kind = token.RAngle
		p.toks[p.pos] = t
		return
	}
	p.expect(token.RAngle, "P020", "expected '>' to close generic argument list")
}

func (p *Parser) parseGenericArg() ast.GenericArg {
	start := p.cur().Span
	if p.at(token.Lit) {
		c := &ast.AnonConst{Value: p.parseExpr(precAssign)}
		c.Base = ast.NewBase(p.newID(p.spanFrom(start)), p.spanFrom(start))
		sp := p.spanFrom(start)
		return ast.GenericArg{Base: ast.NewBase(p.newID(sp), sp), Kind: ast.GenericArgConst, ConstArg: c}
	}
	ty := p.parseType()
	sp := p.spanFrom(start)
	return ast.GenericArg{Base: ast.NewBase(p.newID(sp), sp), Kind: ast.GenericArgType, TypeArg: ty}
}

// parseGenericParams parses a declaration-site `<param, param, ...>` list.
func (p *Parser) parseGenericParams() []ast.GenericParam {
	if !p.at(token.LAngle) {
		return nil
	}
	p.advance() // <
	var params []ast.GenericParam
	for !p.at(token.RAngle) && !p.at(token.EOF) {
		params = append(params, p.parseGenericParam())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RAngle, "P021", "expected '>' to close generic parameter list")
	return params
}

func (p *Parser) parseGenericParam() ast.GenericParam {
	start := p.cur().Span
	if p.atKw(symbol.KwConst) {
		p.advance()
		name := p.parseIdent()
		p.expect(token.Colon, "P022", "expected ':' in const generic parameter")
		ty := p.parseType()
		var def *ast.GenericArg
		if p.eat(token.Assign) {
			a := p.parseGenericArg()
			def = &a
		}
		sp := p.spanFrom(start)
		return ast.GenericParam{Base: ast.NewBase(p.newID(sp), sp), Kind: ast.GenericParamConst, Name: name, ConstTy: ty, Default: def}
	}
	name := p.parseIdent()
	var bound ast.Type
	if p.eat(token.Colon) {
		bound = p.parseType()
	}
	var def *ast.GenericArg
	if p.eat(token.Assign) {
		a := p.parseGenericArg()
		def = &a
	}
	sp := p.spanFrom(start)
	return ast.GenericParam{Base: ast.NewBase(p.newID(sp), sp), Kind: ast.GenericParamType, Name: name, Bound: bound, Default: def}
}
