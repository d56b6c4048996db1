package ast

// Type variants: Paren, Tuple, Func, Slice, Array, Path, Unit.

// ParenType is `(Type)`.
type ParenType struct {
	Base
	Value Type
}

func (*ParenType) isType() {}

// TupleType is `(T1, T2, ...)`. A single named element (`(name: T)`) is a
// validator error — use a struct instead.
type TupleType struct {
	Base
	Elements []Type
}

func (*TupleType) isType() {}

// FuncType is `func(T1, T2) -> Ret` used in type position (e.g. a field
// holding a function pointer/closure).
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

// ArrayType is `[T; N]`, N an AnonConst.
type ArrayType struct {
	Base
	Element Type
	Size    AnonConst
}

func (*ArrayType) isType() {}

// PathType is a named type reference, possibly generic
// (`Map<K, V>`) or a primitive (`Int`, `Str`, ...).
type PathType struct {
	Base
	Path Path
}

func (*PathType) isType() {}

// UnitType is `()`.
type UnitType struct {
	Base
}

func (*UnitType) isType() {}
