// Package typeshape performs the "trivial type collection" spec.md §1
// allows short of real semantic type inference: it walks a finished HIR
// party and records, per item, the shapes already explicit in the
// syntax (field types, signature types, alias targets) without unifying
// or checking anything. A later type-checking pass consumes this as a
// starting point rather than re-walking the HIR itself.
package typeshape

import (
	"github.com/vellum-lang/vellum/internal/hir"
	"github.com/vellum-lang/vellum/internal/resolve"
)

// Shape is the trivial, unchecked type information collected for one
// item. Which fields are populated depends on Kind; nothing here is
// inferred, defaulted, or unified against a use site.
type Shape struct {
	Def  resolve.DefId
	Kind ShapeKind

	// Func / Init
	ParamTypes []hir.Type
	ReturnType hir.Type // nil means unit

	// Struct
	Fields  []hir.Field
	IsTuple bool

	// Enum
	Variants []hir.Variant

	// TypeAlias / associated type
	Target hir.Type // nil for an associated-type declaration with no default

	// Const
	Declared hir.Type // nil if the const's type annotation was omitted
}

// ShapeKind tags which of Shape's fields are meaningful.
type ShapeKind uint8

const (
	ShapeFunc ShapeKind = iota
	ShapeStruct
	ShapeEnum
	ShapeAlias
	ShapeConst
)

// Table maps every shape-bearing item's DefId to its collected Shape.
type Table struct {
	m map[resolve.DefId]*Shape
}

// Of returns the shape recorded for id, if any. Items with no intrinsic
// shape (Mod, Impl, Trait) are never present.
func (t *Table) Of(id resolve.DefId) (*Shape, bool) {
	s, ok := t.m[id]
	return s, ok
}

// Collect walks every owner in party and builds a Table. It performs no
// substitution: a generic parameter's bound is copied as-is, never
// applied to a use site, matching spec.md's "generic substitution is
// recorded but not applied."
func Collect(party *hir.Party) *Table {
	t := &Table{m: make(map[resolve.DefId]*Shape, len(party.Owners))}
	for def, item := range party.Owners {
		if s := shapeOf(def, item); s != nil {
			t.m[def] = s
		}
	}
	return t
}

func shapeOf(def resolve.DefId, item hir.Item) *Shape {
	switch n := item.(type) {
	case *hir.FuncItem:
		params := make([]hir.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.TypeAnn
		}
		return &Shape{Def: def, Kind: ShapeFunc, ParamTypes: params, ReturnType: n.ReturnType}
	case *hir.InitItem:
		params := make([]hir.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.TypeAnn
		}
		return &Shape{Def: def, Kind: ShapeFunc, ParamTypes: params, ReturnType: n.ReturnType}
	case *hir.StructItem:
		return &Shape{Def: def, Kind: ShapeStruct, Fields: n.Fields, IsTuple: n.IsTuple}
	case *hir.EnumItem:
		return &Shape{Def: def, Kind: ShapeEnum, Variants: n.Variants}
	case *hir.TypeAliasItem:
		return &Shape{Def: def, Kind: ShapeAlias, Target: n.Value}
	case *hir.ConstItem:
		return &Shape{Def: def, Kind: ShapeConst, Declared: n.TypeAnn}
	default:
		return nil
	}
}
