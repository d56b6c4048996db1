package ast

import "github.com/vellum-lang/vellum/internal/source"

// Item variants: Enum, Struct, Func, Impl, Mod, Trait,
// TypeAlias, UseDecl, Init. Every item except Impl and UseDecl carries an
// Ident; all carry Vis and Attrs.

// EnumItem declares a sum type.
type EnumItem struct {
	Base
	Vis      Vis
	Attrs    []Attr
	Name     Ident
	Generics []GenericParam
	Variants []Variant
}

func (*EnumItem) isItem() {}

// StructItem declares a product type.
type StructItem struct {
	Base
	Vis      Vis
	Attrs    []Attr
	Name     Ident
	Generics []GenericParam
	Fields   []StructField
	IsTuple  bool // true for `struct Pair(Int, Int)` tuple-structs
}

func (*StructItem) isItem() {}

// FuncItem declares a free or method function. Its own module scope holds
// the function's generics and (if applicable) self.
type FuncItem struct {
	Base
	Vis      Vis
	Attrs    []Attr
	Name     Ident
	Sig      FuncSig
	BodyId   NodeId // NodeId of the Body expression; DummyNodeId if no body (trait signature)
	Body     *Body
}

func (*FuncItem) isItem() {}

// InitItem declares a type's initializer (constructor). It has no surface
// Ident of its own; its lookup name is synthesized the same way a Func's
// is.
type InitItem struct {
	Base
	Vis    Vis
	Attrs  []Attr
	Sig    FuncSig
	BodyId NodeId
	Body   *Body
}

func (*InitItem) isItem() {}

// ImplItem declares an inherent or trait implementation for a type. Like
// UseDecl, it carries no Ident.
type ImplItem struct {
	Base
	Vis      Vis
	Attrs    []Attr
	Generics []GenericParam
	Trait    Type // nil for an inherent impl
	Target   Type
	Items    []Item // Func/Init/TypeAlias/Const members
}

func (*ImplItem) isItem() {}

// ModItem declares a nested module, either inline (`mod m { ... }`) or, for
// `mod m;` with no inline body, as a pointer to another file in the party.
// FileRef is left nil by the parser; neither the session, the pipeline nor
// cmd/vellumc fills it in, so it is non-nil only where the code that builds
// the party sets it before the Module Tree Builder runs.
type ModItem struct {
	Base
	Vis     Vis
	Attrs   []Attr
	Name    Ident
	Items   []Item
	FileRef *ModFileRef
}

// ModFileRef names the source file that backs a `mod m;` with no inline
// body. Nothing in the parser, session, pipeline or cmd/vellumc creates one.
type ModFileRef struct {
	File source.FileId
}

func (*ModItem) isItem() {}

// TraitItem declares a trait (type class): a set of method signatures and
// optional default bodies.
type TraitItem struct {
	Base
	Vis      Vis
	Attrs    []Attr
	Name     Ident
	Generics []GenericParam
	Super    []Type // supertrait bounds
	Items    []Item // Func (with or without Body) members
}

func (*TraitItem) isItem() {}

// TypeAliasItem declares `type Name<...> = Type` or, inside a trait, an
// associated type with only a bound.
type TypeAliasItem struct {
	Base
	Vis      Vis
	Attrs    []Attr
	Name     Ident
	Generics []GenericParam
	Bound    Type // associated-type bound, trait context only
	Value    Type // nil for an associated-type declaration without a default
}

func (*TypeAliasItem) isItem() {}

// UseDeclItem declares a `use` import. Like Impl, it carries no single
// Ident — the tree itself names what is imported.
type UseDeclItem struct {
	Base
	Vis  Vis
	Tree UseTree
}

func (*UseDeclItem) isItem() {}

// ConstItem declares a module-level or impl-level constant.
type ConstItem struct {
	Base
	Vis     Vis
	Attrs   []Attr
	Name    Ident
	TypeAnn Type
	Value   Expr
}

func (*ConstItem) isItem() {}
