// Package validate performs the post-parse structural checks that are not
// enforceable by the grammar itself: context-sensitive rules (`break` only
// inside a loop, `return` only inside a function, `self` only inside a
// method), place-expression and rest-pattern misuse, and a couple of
// stylistic warnings.
package validate

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/source"
)

// Validator walks a parsed File once, tracking the small set of nested
// contexts the checks below need. Loop/function/method context is modeled
// as depth counters rather than a literal stack of tagged frames: a Lambda
// or Func boundary resets the loop counter (break/continue cannot cross a
// function boundary) while leaving the method counter untouched (a closure
// still sees the enclosing method's `self`).
type Validator struct {
	msgs *diagnostic.Holder

	loopDepth int
	funcDepth int
	selfDepth int
}

// New returns a Validator that reports into msgs.
func New(msgs *diagnostic.Holder) *Validator {
	return &Validator{msgs: msgs}
}

// ValidateFile runs every check over f's top-level items.
func (v *Validator) ValidateFile(f *ast.File) {
	for _, it := range f.Items {
		v.validateItem(it)
	}
}

func (v *Validator) validateItem(it ast.Item) {
	switch n := it.(type) {
	case *ast.FuncItem:
		v.validateFuncSig(n.Sig)
		v.withFunc(n.Sig.HasSelf, func() {
			if n.Body != nil {
				v.validateExpr(n.Body.Value)
			}
		})
	case *ast.InitItem:
		v.validateFuncSig(n.Sig)
		v.withFunc(true, func() {
			if n.Body != nil {
				v.validateExpr(n.Body.Value)
			}
		})
	case *ast.StructItem:
		for _, f := range n.Fields {
			if f.TypeAnn != nil {
				v.validateType(f.TypeAnn)
			}
		}
	case *ast.EnumItem:
		for _, variant := range n.Variants {
			for _, t := range variant.TupleTypes {
				v.validateType(t)
			}
			for _, f := range variant.Fields {
				if f.TypeAnn != nil {
					v.validateType(f.TypeAnn)
				}
			}
			if variant.Discriminant != nil {
				v.validateExpr(variant.Discriminant)
			}
		}
	case *ast.TraitItem:
		for _, m := range n.Items {
			v.validateItem(m)
		}
	case *ast.ImplItem:
		for _, m := range n.Items {
			v.validateItem(m)
		}
	case *ast.ModItem:
		for _, m := range n.Items {
			v.validateItem(m)
		}
	case *ast.TypeAliasItem:
		if n.Value != nil {
			v.validateType(n.Value)
		}
	case *ast.ConstItem:
		if n.TypeAnn != nil {
			v.validateType(n.TypeAnn)
		}
		if n.Value != nil {
			v.validateExpr(n.Value)
		}
	case *ast.UseDeclItem, *ast.ErrorNode:
		// Nothing to check: no embedded expressions, types, or patterns.
	}
}

func (v *Validator) validateFuncSig(sig ast.FuncSig) {
	for _, p := range sig.Params {
		v.validatePat(p.Pat, false)
		if p.TypeAnn != nil {
			v.validateType(p.TypeAnn)
		}
		if p.Default != nil {
			v.validateExpr(p.Default)
		}
	}
	if sig.ReturnType != nil {
		v.validateType(sig.ReturnType)
	}
}

// withFunc runs body inside a fresh function context: the loop counter is
// saved and reset (so a `break` inside body cannot see an enclosing loop
// outside the function), and the method counter is bumped when the
// function has a `self` receiver.
func (v *Validator) withFunc(hasSelf bool, body func()) {
	savedLoop := v.loopDepth
	v.loopDepth = 0
	v.funcDepth++
	if hasSelf {
		v.selfDepth++
	}

	body()

	if hasSelf {
		v.selfDepth--
	}
	v.funcDepth--
	v.loopDepth = savedLoop
}

func (v *Validator) validateBlock(b ast.Block) {
	for _, s := range b.Stmts {
		v.validateStmt(s)
	}
	if b.Tail != nil {
		v.validateExpr(b.Tail)
	}
}

func (v *Validator) validateStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.LetStmt:
		if n.TypeAnn != nil {
			v.validateType(n.TypeAnn)
		}
		if n.Value != nil {
			v.validateExpr(n.Value)
		}
		v.validatePat(n.Pattern, false)
	case *ast.ItemStmt:
		v.validateItem(n.Decl)
	case *ast.ExprStmt:
		v.validateExpr(n.Value)
	}
}

func (v *Validator) validateExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.AssignExpr:
		v.validateExpr(n.Lhs)
		v.validateExpr(n.Rhs)
		if !isPlaceExpr(n.Lhs) {
			v.msgs.Error("V001", "left-hand side of assignment must be a place expression").
				Primary(n.Lhs.Span(), "not an assignable place").Emit()
		}
		if _, chained := n.Rhs.(*ast.AssignExpr); chained {
			v.msgs.Error("V002", "chained assignment is not allowed").
				Primary(n.Span(), "here").Emit()
		}
	case *ast.BlockExpr:
		v.validateBlock(n.Value)
	case *ast.BorrowExpr:
		v.validateExpr(n.Value)
	case *ast.BreakExpr:
		if v.loopDepth == 0 {
			v.msgs.Error("V003", "`break` outside a loop").Primary(n.Span(), "here").Emit()
		}
		if n.Value != nil {
			v.validateExpr(n.Value)
		}
	case *ast.ContinueExpr:
		if v.loopDepth == 0 {
			v.msgs.Error("V004", "`continue` outside a loop").Primary(n.Span(), "here").Emit()
		}
	case *ast.CastExpr:
		v.validateExpr(n.Value)
		v.validateType(n.TargetType)
	case *ast.FieldExpr:
		v.validateExpr(n.Target)
	case *ast.ForExpr:
		v.validateExpr(n.Iter)
		v.validatePat(n.Pattern, false)
		v.loopDepth++
		v.validateBlock(n.Body)
		v.loopDepth--
	case *ast.IfExpr:
		v.validateExpr(n.Cond)
		v.validateBlock(n.Then)
		if n.Else != nil {
			v.validateExpr(n.Else)
		}
	case *ast.InfixExpr:
		v.validateExpr(n.Lhs)
		v.validateExpr(n.Rhs)
		if n.Op == ast.OpCustomIdent {
			v.msgs.Error("V010", "custom infix operators are reserved, but not implemented").
				Primary(n.CustomOp.Span(), "cannot use an identifier as an operator").Emit()
		}
		if isCompareOp(n.Op) {
			if lhs, ok := n.Lhs.(*ast.InfixExpr); ok && isCompareOp(lhs.Op) {
				v.msgs.Error("V005", "comparison operators do not chain; parenthesize to disambiguate").
					Primary(n.Span(), "here").Emit()
			}
		}
	case *ast.InvokeExpr:
		v.validateExpr(n.Callee)
		for _, a := range n.Args {
			v.validateExpr(a.Value)
		}
	case *ast.LambdaExpr:
		for _, p := range n.Params {
			v.validatePat(p.Pat, false)
			if p.TypeAnn != nil {
				v.validateType(p.TypeAnn)
			}
		}
		if n.ReturnType != nil {
			v.validateType(n.ReturnType)
		}
		v.withFunc(false, func() {
			v.validateExpr(n.Body)
		})
	case *ast.ListExpr:
		for _, el := range n.Elements {
			v.validateExpr(el)
		}
	case *ast.LoopExpr:
		v.loopDepth++
		v.validateBlock(n.Body)
		v.loopDepth--
	case *ast.MatchExpr:
		v.validateExpr(n.Scrutinee)
		for _, arm := range n.Arms {
			v.validatePat(arm.Pattern, false)
			if arm.Guard != nil {
				v.validateExpr(arm.Guard)
			}
			v.validateExpr(arm.Body)
		}
	case *ast.ParenExpr:
		v.validateExpr(n.Value)
		if inner, ok := n.Value.(*ast.ParenExpr); ok {
			v.msgs.Warn("V006", "redundant double parentheses").
				Primary(inner.Span(), "remove the inner parentheses").Emit()
		} else if isSimplePrimary(n.Value) {
			v.msgs.Warn("V007", "unnecessary parentheses around a simple expression").
				Primary(n.Span(), "here").Emit()
		}
	case *ast.PostfixExpr:
		v.validateExpr(n.Target)
	case *ast.PrefixExpr:
		v.validateExpr(n.Target)
	case *ast.ReturnExpr:
		if v.funcDepth == 0 {
			v.msgs.Error("V008", "`return` outside a function").Primary(n.Span(), "here").Emit()
		}
		if n.Value != nil {
			v.validateExpr(n.Value)
		}
	case *ast.SelfExpr:
		if v.selfDepth == 0 {
			v.msgs.Error("V009", "`self` outside a method").Primary(n.Span(), "here").Emit()
		}
	case *ast.SpreadExpr:
		v.validateExpr(n.Value)
	case *ast.SubscriptExpr:
		v.validateExpr(n.Target)
		v.validateExpr(n.Index)
	case *ast.TupleExpr:
		for _, el := range n.Elements {
			v.validateExpr(el)
		}
	case *ast.WhileExpr:
		v.validateExpr(n.Cond)
		v.loopDepth++
		v.validateBlock(n.Body)
		v.loopDepth--
	case *ast.PathExpr, *ast.LiteralExpr, *ast.UnitExpr, *ast.ErrorNode:
		// Leaves: nothing to recurse into or check.
	}
}

// validatePat walks a pattern, checking rest-pattern placement. restAllowed
// is true only for the direct children of a Tuple/Slice pattern, where a
// bare `..` is legal; every other position rejects it.
func (v *Validator) validatePat(p ast.Pat, restAllowed bool) {
	switch n := p.(type) {
	case *ast.RestPat:
		if !restAllowed {
			v.msgs.Error("V020", "`..` is only allowed inside a struct, tuple, or slice pattern").
				Primary(n.Span(), "here").Emit()
		}
	case *ast.MultiPat:
		for _, alt := range n.Alternatives {
			v.validatePat(alt, false)
		}
	case *ast.ParenPat:
		v.validatePat(n.Value, false)
	case *ast.IdentPat:
		if n.SubPat != nil {
			v.validatePat(n.SubPat, false)
		}
	case *ast.RefPat:
		v.validatePat(n.Value, false)
	case *ast.TuplePat:
		v.validateRestSequence(n.Elements, n.Span())
	case *ast.SlicePat:
		v.validateRestSequence(n.Elements, n.Span())
	case *ast.StructPat:
		for _, f := range n.Fields {
			if f.Pattern != nil {
				v.validatePat(f.Pattern, false)
			}
		}
		// HasRest is always the struct pattern's last field: the parser
		// stops consuming fields the moment it sees `..` (parser_pat.go's
		// parseStructPatternTail), so "rest must be last" holds structurally
		// and needs no separate check here.
	case *ast.LitPat, *ast.PathPat, *ast.WildcardPat:
		// Leaves.
	}
}

func (v *Validator) validateRestSequence(elems []ast.Pat, whole source.Span) {
	count := 0
	for _, e := range elems {
		v.validatePat(e, true)
		if _, ok := e.(*ast.RestPat); ok {
			count++
		}
	}
	if count > 1 {
		v.msgs.Error("V021", "at most one rest pattern `..` is allowed").
			Primary(whole, "multiple rest patterns here").Emit()
	}
}

func (v *Validator) validateType(t ast.Type) {
	switch n := t.(type) {
	case *ast.ParenType:
		v.validateType(n.Value)
	case *ast.TupleType:
		// A *named* single-element tuple type (`(name: T)`) would be an
		// error, but this grammar never parses a name
		// inside a tuple type at all (ast.TupleType carries no label
		// field), so the construct the check targets cannot occur here;
		// left undocumented in code deliberately to avoid dead branches,
		// recorded in DESIGN.md instead.
		for _, el := range n.Elements {
			v.validateType(el)
		}
	case *ast.FuncType:
		for _, p := range n.Params {
			v.validateType(p)
		}
		if n.ReturnType != nil {
			v.validateType(n.ReturnType)
		}
	case *ast.SliceType:
		v.validateType(n.Element)
	case *ast.ArrayType:
		v.validateType(n.Element)
		v.validateExpr(n.Size.Value)
	case *ast.PathType:
		for _, seg := range n.Path.Segments {
			for _, arg := range seg.Args {
				v.validateGenericArg(arg)
			}
		}
	case *ast.UnitType, *ast.ErrorNode:
		// Leaves.
	}
}

func (v *Validator) validateGenericArg(arg ast.GenericArg) {
	switch arg.Kind {
	case ast.GenericArgType:
		if arg.TypeArg != nil {
			v.validateType(arg.TypeArg)
		}
	case ast.GenericArgConst:
		if arg.ConstArg != nil {
			v.validateExpr(arg.ConstArg.Value)
		}
	}
}

// isPlaceExpr reports whether e can appear as the LHS of `=`.
func isPlaceExpr(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.PathExpr, *ast.FieldExpr, *ast.SubscriptExpr:
		return true
	case *ast.ParenExpr:
		return isPlaceExpr(n.Value)
	default:
		return false
	}
}

// isSimplePrimary reports whether e is simple enough that wrapping it in
// parentheses is never necessary for disambiguation.
func isSimplePrimary(e ast.Expr) bool {
	switch e.(type) {
	case *ast.LiteralExpr, *ast.PathExpr, *ast.SelfExpr, *ast.UnitExpr:
		return true
	default:
		return false
	}
}

func isCompareOp(op ast.BinOp) bool {
	switch op {
	case ast.OpEq, ast.OpNotEq, ast.OpRefEq, ast.OpRefNotEq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe, ast.OpSpaceship:
		return true
	default:
		return false
	}
}
