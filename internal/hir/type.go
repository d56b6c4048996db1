package hir

import "github.com/vellum-lang/vellum/internal/resolve"

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	Base
	Elements []Type
}

func (*TupleType) isType() {}

// FuncType is `func(T1, T2) -> Ret` used in type position.
type FuncType struct {
	Base
	Params     []Type
	ReturnType Type // nil means unit
}

func (*FuncType) isType() {}

// SliceType is `[T]`.
type SliceType struct {
	Base
	Element Type
}

func (*SliceType) isType() {}

// ArrayType is `[T; N]`, N a lowered constant body.
type ArrayType struct {
	Base
	Element Type
	Size    BodyId
}

func (*ArrayType) isType() {}

// PathType is a named type reference, carrying its resolution directly.
// A bare `(Type)` grouping is discarded during lowering the same way
// ParenExpr is, since it carries no independent meaning once resolved.
type PathType struct {
	Base
	Res resolve.Res
}

func (*PathType) isType() {}

// UnitType is `()`.
type UnitType struct {
	Base
}

func (*UnitType) isType() {}

// ErrorType stands in for an AST ErrorNode encountered in type position.
type ErrorType struct {
	Base
}

func (*ErrorType) isType() {}
