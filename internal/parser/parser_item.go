package parser

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// parseItem parses one top-level or nested item production, keyed on its
// leading keyword. A body that cannot be parsed
// past the head keyword falls through to the panic-mode recovery path.
func (p *Parser) parseItem() ast.Item {
	start := p.cur().Span
	vis := ast.VisUnset
	if p.atKw(symbol.KwPub) {
		p.advance()
		vis = ast.VisPub
	}
	attrs := p.parseAttrs()

	switch {
	case p.atKw(symbol.KwFunc), p.atKw(symbol.KwFn):
		return p.parseFuncItem(start, vis, attrs)
	case p.atKw(symbol.KwInit):
		return p.parseInitItem(start, vis, attrs)
	case p.atKw(symbol.KwStruct):
		return p.parseStructItem(start, vis, attrs)
	case p.atKw(symbol.KwEnum):
		return p.parseEnumItem(start, vis, attrs)
	case p.atKw(symbol.KwTrait):
		return p.parseTraitItem(start, vis, attrs)
	case p.atKw(symbol.KwImpl):
		return p.parseImplItem(start, vis, attrs)
	case p.atKw(symbol.KwMod):
		return p.parseModItem(start, vis, attrs)
	case p.atKw(symbol.KwUse):
		return p.parseUseItem(start, vis)
	case p.atKw(symbol.KwType):
		return p.parseTypeAliasItem(start, vis, attrs)
	case p.atKw(symbol.KwConst):
		return p.parseConstItem(start, vis, attrs)
	default:
		return p.errorNode("P060", "expected an item (func, struct, enum, trait, impl, mod, use, type, init, or const)")
	}
}

func (p *Parser) parseAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.At) {
		start := p.cur().Span
		p.advance() // @
		name := p.parseIdent()
		var args []ast.Ident
		if p.eat(token.LParen) {
			for !p.at(token.RParen) && !p.at(token.EOF) {
				args = append(args, p.parseIdent())
				if !p.eat(token.Comma) {
					break
				}
			}
			p.expect(token.RParen, "P061", "expected ')' to close attribute arguments")
		}
		sp := p.spanFrom(start)
		attrs = append(attrs, ast.Attr{Base: ast.NewBase(p.newID(sp), sp), Name: name, Args: args})
	}
	return attrs
}

// parseFuncSig parses the shared function-signature grammar used by
// func/fn items, init, and trait method heads: generics, an optional
// self-parameter, the labelled parameter list, and a return type.
func (p *Parser) parseFuncSig(start source.Span) ast.FuncSig {
	generics := p.parseGenericParams()
	p.expect(token.LParen, "P062", "expected '(' to start parameter list")

	var hasSelf, selfByRef, selfMut bool
	if p.atKw(symbol.KwSelf) || (p.at(token.Ampersand) && p.selfFollowsAmp()) {
		if p.eat(token.Ampersand) {
			selfByRef = true
			selfMut = p.eatKw(symbol.KwMut)
		}
		p.expectKw(symbol.KwSelf, "P063", "expected 'self'")
		hasSelf = true
		p.eat(token.Comma)
	}

	var params []ast.FuncParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseFuncParam())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "P064", "expected ')' to close parameter list")

	var ret ast.Type
	if p.eat(token.Arrow) {
		ret = p.parseType()
	}
	sp := p.spanFrom(start)
	return ast.FuncSig{
		Base: ast.NewBase(p.newID(sp), sp), Generics: generics,
		HasSelf: hasSelf, SelfByRef: selfByRef, SelfMut: selfMut,
		Params: params, ReturnType: ret,
	}
}

// selfFollowsAmp looks past `&` / `& mut` for `self`, used to distinguish a
// `&self`/`&mut self` receiver from a borrowed-pattern first parameter.
func (p *Parser) selfFollowsAmp() bool {
	idx := p.pos + 1
	if idx < len(p.toks) && p.toks[idx].Kind == token.Ident && symbol.IsKw(p.toks[idx].Ident, symbol.KwMut) {
		idx++
	}
	return idx < len(p.toks) && p.toks[idx].Kind == token.Ident && symbol.IsKw(p.toks[idx].Ident, symbol.KwSelf)
}

func (p *Parser) parseFuncParam() ast.FuncParam {
	start := p.cur().Span
	var label *ast.Ident
	// `label pat : type` — a label is a bare identifier immediately
	// followed by another pattern-starting token (not `:`), disambiguated
	// by one token of lookahead.
	if p.at(token.Ident) && !symbol.IsKeyword(p.cur().Ident) && p.labelFollows() {
		id := p.parseIdent()
		label = &id
	}
	pat := p.parsePattern()
	var typeAnn ast.Type
	if p.eat(token.Colon) {
		typeAnn = p.parseType()
	}
	var def ast.Expr
	if p.eat(token.Assign) {
		def = p.parseExpr(precAssign)
	}
	sp := p.spanFrom(start)
	return ast.FuncParam{Base: ast.NewBase(p.newID(sp), sp), Label: label, Pat: pat, TypeAnn: typeAnn, Default: def}
}

// labelFollows reports whether the identifier under the cursor is a
// parameter label (followed by another identifier or `_`, the pattern
// start) rather than the pattern itself (followed by `:`, `,`, `=`, `)`).
func (p *Parser) labelFollows() bool {
	nxt := p.peek()
	if nxt.Kind != token.Ident {
		return false
	}
	return true
}

func (p *Parser) parseFuncItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // func/fn
	name := p.parseIdent()
	sig := p.parseFuncSig(start)
	bodyID := ast.DummyNodeId
	var body *ast.Body
	if p.at(token.LBrace) {
		body = p.parseFuncBody(sig.Params)
		bodyID = body.Id()
	} else if p.eat(token.Assign) {
		body = p.parseShorthandBody(sig.Params)
		bodyID = body.Id()
	} else {
		p.expect(token.Semi, "P065", "expected ';', '{', or '=' after function signature")
	}
	sp := p.spanFrom(start)
	return &ast.FuncItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Name: name, Sig: sig, BodyId: bodyID, Body: body}
}

func (p *Parser) parseInitItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // init
	sig := p.parseFuncSig(start)
	bodyID := ast.DummyNodeId
	var body *ast.Body
	if p.at(token.LBrace) {
		body = p.parseFuncBody(sig.Params)
		bodyID = body.Id()
	} else {
		p.expect(token.Semi, "P066", "expected ';' or '{' after init signature")
	}
	sp := p.spanFrom(start)
	return &ast.InitItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Sig: sig, BodyId: bodyID, Body: body}
}

func (p *Parser) parseFuncBody(params []ast.FuncParam) *ast.Body {
	start := p.cur().Span
	blk := p.parseBlock()
	value := &ast.BlockExpr{Base: ast.NewBase(blk.Id(), blk.Span()), Value: *blk}
	sp := p.spanFrom(start)
	return &ast.Body{Base: ast.NewBase(p.newID(sp), sp), Params: params, Value: value}
}

func (p *Parser) parseShorthandBody(params []ast.FuncParam) *ast.Body {
	start := p.cur().Span
	value := p.parseExpr(precAssign)
	p.expect(token.Semi, "P067", "expected ';' after shorthand function body")
	sp := p.spanFrom(start)
	return &ast.Body{Base: ast.NewBase(p.newID(sp), sp), Params: params, Value: value}
}

func (p *Parser) parseStructItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // struct
	name := p.parseIdent()
	generics := p.parseGenericParams()
	isTuple := false
	var fields []ast.StructField
	switch {
	case p.at(token.LParen):
		isTuple = true
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			fieldStart := p.cur().Span
			ty := p.parseType()
			fsp := p.spanFrom(fieldStart)
			fields = append(fields, ast.StructField{Base: ast.NewBase(p.newID(fsp), fsp), TypeAnn: ty})
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "P068", "expected ')' to close tuple struct fields")
		p.expect(token.Semi, "P069", "expected ';' after tuple struct")
	case p.at(token.LBrace):
		fields = p.parseStructFieldBlock()
	default:
		p.expect(token.Semi, "P070", "expected ';', '(', or '{' after struct name")
	}
	sp := p.spanFrom(start)
	return &ast.StructItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Name: name, Generics: generics, Fields: fields, IsTuple: isTuple}
}

func (p *Parser) parseStructFieldBlock() []ast.StructField {
	p.advance() // {
	var fields []ast.StructField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldStart := p.cur().Span
		fvis := ast.VisUnset
		if p.atKw(symbol.KwPub) {
			p.advance()
			fvis = ast.VisPub
		}
		name := p.parseIdent()
		p.expect(token.Colon, "P071", "expected ':' in struct field")
		ty := p.parseType()
		fsp := p.spanFrom(fieldStart)
		fields = append(fields, ast.StructField{Base: ast.NewBase(p.newID(fsp), fsp), Name: name, TypeAnn: ty, Vis: fvis})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "P072", "expected '}' to close struct fields")
	return fields
}

func (p *Parser) parseEnumItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // enum
	name := p.parseIdent()
	generics := p.parseGenericParams()
	p.expect(token.LBrace, "P073", "expected '{' to start enum body")
	var variants []ast.Variant
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		variants = append(variants, p.parseVariant())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "P074", "expected '}' to close enum body")
	sp := p.spanFrom(start)
	return &ast.EnumItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Name: name, Generics: generics, Variants: variants}
}

func (p *Parser) parseVariant() ast.Variant {
	start := p.cur().Span
	name := p.parseIdent()
	var tupleTypes []ast.Type
	var fields []ast.StructField
	switch {
	case p.at(token.LParen):
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			tupleTypes = append(tupleTypes, p.parseType())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "P075", "expected ')' to close variant tuple")
	case p.at(token.LBrace):
		fields = p.parseStructFieldBlock()
	}
	var discriminant ast.Expr
	if p.eat(token.Assign) {
		discriminant = p.parseExpr(precAssign)
	}
	sp := p.spanFrom(start)
	return ast.Variant{Base: ast.NewBase(p.newID(sp), sp), Name: name, TupleTypes: tupleTypes, Fields: fields, Discriminant: discriminant}
}

func (p *Parser) parseTraitItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // trait
	name := p.parseIdent()
	generics := p.parseGenericParams()
	var super []ast.Type
	if p.eat(token.Colon) {
		super = append(super, p.parseType())
		for p.eat(token.Add) {
			super = append(super, p.parseType())
		}
	}
	p.expect(token.LBrace, "P076", "expected '{' to start trait body")
	var items []ast.Item
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		items = append(items, p.parseItem())
	}
	p.expect(token.RBrace, "P077", "expected '}' to close trait body")
	sp := p.spanFrom(start)
	return &ast.TraitItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Name: name, Generics: generics, Super: super, Items: items}
}

func (p *Parser) parseImplItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // impl
	generics := p.parseGenericParams()
	first := p.parseType()
	var trait, target ast.Type
	if p.atKw(symbol.KwFor) {
		p.advance()
		trait = first
		target = p.parseType()
	} else {
		target = first
	}
	p.expect(token.LBrace, "P078", "expected '{' to start impl body")
	var items []ast.Item
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		items = append(items, p.parseItem())
	}
	p.expect(token.RBrace, "P079", "expected '}' to close impl body")
	sp := p.spanFrom(start)
	return &ast.ImplItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Generics: generics, Trait: trait, Target: target, Items: items}
}

func (p *Parser) parseModItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // mod
	name := p.parseIdent()
	var items []ast.Item
	var fileRef *ast.ModFileRef
	if p.at(token.LBrace) {
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			items = append(items, p.parseItem())
		}
		p.expect(token.RBrace, "P080", "expected '}' to close module body")
	} else {
		p.expect(token.Semi, "P081", "expected ';' or '{' after module name")
		// fileRef stays nil here; the parser never sets it.
	}
	sp := p.spanFrom(start)
	return &ast.ModItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Name: name, Items: items, FileRef: fileRef}
}

func (p *Parser) parseUseItem(start source.Span, vis ast.Vis) ast.Item {
	p.advance() // use
	tree := p.parseUseTree()
	p.expect(token.Semi, "P082", "expected ';' after use declaration")
	sp := p.spanFrom(start)
	return &ast.UseDeclItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Tree: tree}
}

// parseUseTree parses one `use` tree: Raw, All (`*`),
// Specific (`{...}`), or Rebind (`as name`).
func (p *Parser) parseUseTree() ast.UseTree {
	start := p.cur().Span
	prefix := p.parseUsePrefix()

	switch {
	case p.eat(token.Mul):
		sp := p.spanFrom(start)
		return ast.UseTree{Base: ast.NewBase(p.newID(sp), sp), Kind: ast.UseTreeAll, Prefix: prefix}
	case p.at(token.LBrace):
		p.advance()
		var nested []ast.UseTree
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			nested = append(nested, p.parseUseTree())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RBrace, "P083", "expected '}' to close use group")
		sp := p.spanFrom(start)
		return ast.UseTree{Base: ast.NewBase(p.newID(sp), sp), Kind: ast.UseTreeSpecific, Prefix: prefix, Nested: nested}
	case p.atKw(symbol.KwAs):
		p.advance()
		name := p.parseIdent()
		sp := p.spanFrom(start)
		return ast.UseTree{Base: ast.NewBase(p.newID(sp), sp), Kind: ast.UseTreeRebind, Prefix: prefix, Rebind: &name}
	default:
		sp := p.spanFrom(start)
		return ast.UseTree{Base: ast.NewBase(p.newID(sp), sp), Kind: ast.UseTreeRaw, Prefix: prefix}
	}
}

// parseUsePrefix parses the dotted path up to (not including) a trailing
// `*`, `{...}`, or `as` suffix.
func (p *Parser) parseUsePrefix() ast.SimplePath {
	start := p.cur().Span
	absolute := p.eat(token.PathSep)
	var segs []ast.SimplePathSeg
	for {
		if p.at(token.Mul) || p.at(token.LBrace) {
			break
		}
		segStart := p.cur().Span
		name := p.parseIdent()
		segSp := p.spanFrom(segStart)
		segs = append(segs, ast.SimplePathSeg{Base: ast.NewBase(p.newID(segSp), segSp), Name: name})
		if p.atKw(symbol.KwAs) {
			break
		}
		if !p.eat(token.PathSep) {
			break
		}
	}
	sp := p.spanFrom(start)
	return ast.SimplePath{Base: ast.NewBase(p.newID(sp), sp), Absolute: absolute, Segments: segs}
}

func (p *Parser) parseTypeAliasItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // type
	name := p.parseIdent()
	generics := p.parseGenericParams()
	var bound ast.Type
	if p.eat(token.Colon) {
		bound = p.parseType()
	}
	var value ast.Type
	if p.eat(token.Assign) {
		value = p.parseType()
	}
	p.expect(token.Semi, "P084", "expected ';' after type alias")
	sp := p.spanFrom(start)
	return &ast.TypeAliasItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Name: name, Generics: generics, Bound: bound, Value: value}
}

func (p *Parser) parseConstItem(start source.Span, vis ast.Vis, attrs []ast.Attr) ast.Item {
	p.advance() // const
	name := p.parseIdent()
	var typeAnn ast.Type
	if p.eat(token.Colon) {
		typeAnn = p.parseType()
	}
	var value ast.Expr
	if p.eat(token.Assign) {
		value = p.parseExpr(precAssign)
	}
	p.expect(token.Semi, "P085", "expected ';' after const item")
	sp := p.spanFrom(start)
	return &ast.ConstItem{Base: ast.NewBase(p.newID(sp), sp), Vis: vis, Attrs: attrs, Name: name, TypeAnn: typeAnn, Value: value}
}
