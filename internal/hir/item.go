package hir

import (
	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/resolve"
)

// GenericParam is a lowered declaration-site generic parameter: Def is
// the DefId the Module Tree Builder already allocated for it, so later
// passes can go from a resolved Res straight to the owning GenericParam
// without a second lookup.
type GenericParam struct {
	Def     resolve.DefId
	Kind    ast.GenericParamKind
	Bound   Type // nil if unbounded
	ConstTy Type // valid when Kind == ast.GenericParamConst
}

// ModItem is a lowered `mod`: a plain list of the ItemIds it owns. Its
// own children (functions, types, nested mods...) live in Party.Owners,
// keyed by their own DefId, not embedded here.
type ModItem struct {
	Base
	Def   resolve.DefId
	Items []ItemId
}

func (*ModItem) isItem() {}

// FuncItem is a lowered `func`.
type FuncItem struct {
	Base
	Def        resolve.DefId
	Generics   []GenericParam
	HasSelf    bool
	SelfByRef  bool
	SelfMut    bool
	Params     []Param
	ReturnType Type // nil means unit
	Body       *BodyId
}

func (*FuncItem) isItem() {}

// InitItem is a lowered `init` (a type's constructor).
type InitItem struct {
	Base
	Def        resolve.DefId
	Generics   []GenericParam
	Params     []Param
	ReturnType Type
	Body       *BodyId
}

func (*InitItem) isItem() {}

// ImplItem is a lowered `impl`.
type ImplItem struct {
	Base
	Def      resolve.DefId
	Generics []GenericParam
	Trait    Type // nil for an inherent impl
	Target   Type
	Items    []ItemId
}

func (*ImplItem) isItem() {}

// TraitItem is a lowered `trait`.
type TraitItem struct {
	Base
	Def      resolve.DefId
	Generics []GenericParam
	Super    []Type
	Items    []ItemId
}

func (*TraitItem) isItem() {}

// Field is one lowered struct field or enum tuple-variant payload slot.
type Field struct {
	Name    string
	TypeAnn Type
}

// Variant is one lowered enum variant.
type Variant struct {
	Def          resolve.DefId
	TupleTypes   []Type
	Fields       []Field
	Discriminant *BodyId
}

// EnumItem is a lowered `enum`.
type EnumItem struct {
	Base
	Def      resolve.DefId
	Generics []GenericParam
	Variants []Variant
}

func (*EnumItem) isItem() {}

// StructItem is a lowered `struct`.
type StructItem struct {
	Base
	Def      resolve.DefId
	Generics []GenericParam
	Fields   []Field
	IsTuple  bool
}

func (*StructItem) isItem() {}

// TypeAliasItem is a lowered `type` alias or trait associated type.
type TypeAliasItem struct {
	Base
	Def      resolve.DefId
	Generics []GenericParam
	Bound    Type // associated-type bound, trait context only
	Value    Type // nil for an associated-type declaration without a default
}

func (*TypeAliasItem) isItem() {}

// ConstItem is a lowered module- or impl-level constant.
type ConstItem struct {
	Base
	Def     resolve.DefId
	TypeAnn Type // nil if omitted
	Value   BodyId
}

func (*ConstItem) isItem() {}
