package parser

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// Precedence levels, lowest to highest, a 13-level table.
// Assignment is folded inside the climbing loop at precAssign: a caller that
// starts at precLowest admits an assignment, one that starts at precAssign
// (initializers, call arguments) does not.
const (
	precLowest = iota
	precAssign // right-associative, single
	precOr
	precAnd
	precCompare // non-associative; chaining is a validator error, not a parse error
	precRange
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdd
	precMul
	precPow // right-associative
	precAs
	// precCustomIdent binds a bare identifier used in infix-operator
	// position (`a foo b`) at the same level as comparison: it is a
	// grammar-reserved, not-yet-implemented feature (spec.md §4.5), so its
	// exact binding power only has to be consistent, not meaningful.
	precCustomIdent = precCompare
)

// infixPrec maps a token kind to its binding power when used as an infix
// operator; kinds absent from the map are not infix operators at all.
var infixPrec = map[token.Kind]int{
	token.Assign: precAssign,
	token.AddAssign: precAssign, token.SubAssign: precAssign, token.MulAssign: precAssign,
	token.DivAssign: precAssign, token.RemAssign: precAssign, token.PowerAssign: precAssign,
	token.ShlAssign: precAssign, token.ShrAssign: precAssign, token.BitAndAssign: precAssign,
	token.BitOrAssign: precAssign, token.XorAssign: precAssign,

	token.Eq: precCompare, token.NotEq: precCompare, token.RefEq: precCompare,
	token.RefNotEq: precCompare, token.LAngle: precCompare, token.RAngle: precCompare,
	token.LE: precCompare, token.GE: precCompare, token.Spaceship: precCompare,

	token.Range: precRange, token.RangeEq: precRange,

	token.BitOr: precBitOr, token.Xor: precBitXor, token.Ampersand: precBitAnd,
	token.Shl: precShift, token.Shr: precShift,
	token.Add: precAdd, token.Sub: precAdd,
	token.Mul: precMul, token.Div: precMul, token.Rem: precMul,
	token.Power: precPow,
}

var binOps = map[token.Kind]ast.BinOp{
	token.Eq: ast.OpEq, token.NotEq: ast.OpNotEq, token.RefEq: ast.OpRefEq, token.RefNotEq: ast.OpRefNotEq,
	token.LAngle: ast.OpLt, token.RAngle: ast.OpGt, token.LE: ast.OpLe, token.GE: ast.OpGe,
	token.Spaceship: ast.OpSpaceship,
	token.Range: ast.OpRange, token.RangeEq: ast.OpRangeEq,
	token.BitOr: ast.OpBitOr, token.Xor: ast.OpBitXor, token.Ampersand: ast.OpBitAnd,
	token.Shl: ast.OpShl, token.Shr: ast.OpShr,
	token.Add: ast.OpAdd, token.Sub: ast.OpSub,
	token.Mul: ast.OpMul, token.Div: ast.OpDiv, token.Rem: ast.OpRem,
	token.Power: ast.OpPow,
}

// infixPrecedence returns the binding power of the current token when it is
// used as an infix operator, plus the precedence of `or`/`and` keywords and
// `as`, which are spelled as identifiers rather than punctuation.
func (p *Parser) infixPrecedence() int {
	if p.atKw(symbol.KwOr) {
		return precOr
	}
	if p.atKw(symbol.KwAnd) {
		return precAnd
	}
	if p.atKw(symbol.KwAs) {
		return precAs
	}
	if prec, ok := infixPrec[p.cur().Kind]; ok {
		return prec
	}
	if p.atCustomInfixIdent() {
		return precCustomIdent
	}
	return precLowest
}

// atCustomInfixIdent reports whether the current token is a plain
// identifier (not a keyword) appearing where an infix operator is
// expected. Custom infix operators are grammar-reserved but unimplemented
// (spec.md §4.5); parsing still constructs the InfixExpr so the validator
// has something to reject.
func (p *Parser) atCustomInfixIdent() bool {
	return p.at(token.Ident) && !symbol.IsKeyword(p.cur().Ident)
}

// parseExpr is the Pratt entry point: parse a prefix/primary term, then
// repeatedly fold in infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		prec := p.infixPrecedence()
		if prec <= minPrec {
			return left
		}

		switch {
		case p.atKw(symbol.KwAs):
			left = p.parseCast(left)
		case p.atKw(symbol.KwOr), p.atKw(symbol.KwAnd):
			left = p.parseLogical(left, prec)
		case p.at(token.Assign):
			left = p.parseAssign(left, false, ast.BinOp(0))
		default:
			if op, compound := token.IsCompoundAssign(p.cur().Kind); compound {
				left = p.parseAssign(left, true, binOps[op])
			} else if bop, ok := binOps[p.cur().Kind]; ok {
				left = p.parseInfix(left, bop, prec)
			} else if p.atCustomInfixIdent() {
				left = p.parseCustomInfix(left, prec)
			} else {
				return left
			}
		}
	}
}

func (p *Parser) parseInfix(left ast.Expr, op ast.BinOp, prec int) ast.Expr {
	start := left.Span()
	p.advance() // operator
	nextMin := prec
	if op == ast.OpPow {
		nextMin = prec - 1 // right-associative
	}
	right := p.parseExpr(nextMin)
	sp := p.spanFrom(start)
	return &ast.InfixExpr{Base: ast.NewBase(p.newID(sp), sp), Lhs: left, Op: op, Rhs: right}
}

// parseCustomInfix parses `lhs ident rhs`, retaining the identifier as
// InfixExpr.CustomOp. The validator reports this unconditionally: the
// grammar accepts the shape so an ICE isn't needed to reach the
// diagnostic, but the feature itself is unimplemented.
func (p *Parser) parseCustomInfix(left ast.Expr, prec int) ast.Expr {
	start := left.Span()
	opIdent := p.parseIdent()
	right := p.parseExpr(prec)
	sp := p.spanFrom(start)
	return &ast.InfixExpr{Base: ast.NewBase(p.newID(sp), sp), Lhs: left, Op: ast.OpCustomIdent, CustomOp: opIdent, Rhs: right}
}

// parseLogical handles `and`/`or`, kept distinct from parseInfix because
// they are spelled as keywords rather than punctuation tokens.
func (p *Parser) parseLogical(left ast.Expr, prec int) ast.Expr {
	start := left.Span()
	op := ast.OpOr
	if p.atKw(symbol.KwAnd) {
		op = ast.OpAnd
	}
	p.advance()
	right := p.parseExpr(prec)
	sp := p.spanFrom(start)
	return &ast.InfixExpr{Base: ast.NewBase(p.newID(sp), sp), Lhs: left, Op: op, Rhs: right}
}

func (p *Parser) parseAssign(left ast.Expr, compound bool, op ast.BinOp) ast.Expr {
	start := left.Span()
	p.advance() // `=` or `op=`
	// Right-associative: recurse at the same precedence.
	right := p.parseExpr(precAssign - 1)
	sp := p.spanFrom(start)
	return &ast.AssignExpr{
		Base: ast.NewBase(p.newID(sp), sp),
		Lhs:  left,
		Op:   ast.AssignOp{Compound: compound, Op: op},
		Rhs:  right,
	}
}

func (p *Parser) parseCast(left ast.Expr) ast.Expr {
	start := left.Span()
	p.advance() // `as`
	ty := p.parseType()
	sp := p.spanFrom(start)
	return &ast.CastExpr{Base: ast.NewBase(p.newID(sp), sp), Value: left, TargetType: ty}
}

// parseUnary handles prefix operators (level 12) before falling through to
// a primary term and its postfix chain (level 13).
func (p *Parser) parseUnary() ast.Expr {
	start := p.cur().Span

	switch {
	case p.at(token.Sub):
		p.advance()
		v := p.parseUnary()
		sp := p.spanFrom(start)
		return &ast.PrefixExpr{Base: ast.NewBase(p.newID(sp), sp), Op: ast.PrefixNeg, Target: v}
	case p.atKw(symbol.KwNot):
		p.advance()
		v := p.parseUnary()
		sp := p.spanFrom(start)
		return &ast.PrefixExpr{Base: ast.NewBase(p.newID(sp), sp), Op: ast.PrefixNot, Target: v}
	case p.at(token.Mul):
		p.advance()
		v := p.parseUnary()
		sp := p.spanFrom(start)
		return &ast.PrefixExpr{Base: ast.NewBase(p.newID(sp), sp), Op: ast.PrefixDeref, Target: v}
	case p.at(token.Ampersand):
		p.advance()
		mut := p.eatKw(symbol.KwMut)
		v := p.parseUnary()
		sp := p.spanFrom(start)
		return &ast.BorrowExpr{Base: ast.NewBase(p.newID(sp), sp), Mut: mut, Value: v}
	}

	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) eatKw(kw symbol.Kw) bool {
	if p.atKw(kw) {
		p.advance()
		return true
	}
	return false
}

// parsePostfix folds in `?`, `.field`, `(args)`, `[index]` — all left
// associative with equal binding power.
func (p *Parser) parsePostfix(e ast.Expr) ast.Expr {
	start := e.Span()
	for {
		switch {
		case p.at(token.Quest):
			p.advance()
			sp := p.spanFrom(start)
			e = &ast.PostfixExpr{Base: ast.NewBase(p.newID(sp), sp), Target: e, Op: ast.PostfixTry}
		case p.at(token.Dot):
			p.advance()
			name := p.parseIdent()
			sp := p.spanFrom(start)
			e = &ast.FieldExpr{Base: ast.NewBase(p.newID(sp), sp), Target: e, Name: name}
		case p.at(token.LParen):
			e = p.parseCallArgs(e, start)
		case p.at(token.LBracket):
			p.advance()
			idx := p.parseExpr(precLowest)
			p.expect(token.RBracket, "P010", "expected ']' to close subscript")
			sp := p.spanFrom(start)
			e = &ast.SubscriptExpr{Base: ast.NewBase(p.newID(sp), sp), Target: e, Index: idx}
		default:
			return e
		}
	}
}

func (p *Parser) parseCallArgs(callee ast.Expr, start source.Span) ast.Expr {
	p.advance() // (
	var args []ast.Arg
	for !p.at(token.RParen) && !p.at(token.EOF) {
		argStart := p.cur().Span
		var label *ast.Ident
		if p.at(token.Ident) && !symbol.IsKeyword(p.cur().Ident) && p.peek().Kind == token.Colon {
			id := p.parseIdent()
			label = &id
			p.advance() // :
		}
		val := p.parseExpr(precAssign)
		argSp := p.spanFrom(argStart)
		args = append(args, ast.Arg{Base: ast.NewBase(p.newID(argSp), argSp), Label: label, Value: val})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "P011", "expected ')' to close argument list")
	sp := p.spanFrom(start)
	return &ast.InvokeExpr{Base: ast.NewBase(p.newID(sp), sp), Callee: callee, Args: args}
}
