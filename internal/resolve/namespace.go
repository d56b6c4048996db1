package resolve

// Namespace is one of the three disjoint binding spaces inside a module
//. A binding exists independently in each.
type Namespace uint8

const (
	NsValue Namespace = iota
	NsType
	NsLifetime

	nsCount
)

// namespaceOf is the fixed DefKind->Namespace mapping: "Struct, Trait,
// TypeAlias, TypeParam, Mod, Enum, Impl,
// Variant -> Type; Const, ConstParam, Func, Init -> Value; Lifetime ->
// Lifetime".
var namespaceOf = [...]Namespace{
	DefConst:       NsValue,
	DefConstParam:  NsValue,
	DefEnum:        NsType,
	DefFunc:        NsValue,
	DefImpl:        NsType,
	DefImportAlias: NsValue, // overridden per-alias at bind time; see Importer.bindAlias
	DefInit:        NsValue,
	DefLifetime:    NsLifetime,
	DefMod:         NsType,
	DefStruct:      NsType,
	DefTrait:       NsType,
	DefTypeAlias:   NsType,
	DefTypeParam:   NsType,
	DefVariant:     NsType,
	DefDefaultInit: NsValue,
}

// NamespaceOf reports the fixed namespace a definition of kind k binds
// into. ImportAlias is special-cased by callers (the importer knows the
// namespace of the thing it is aliasing), so this mapping is only a
// sensible default for it.
func NamespaceOf(k DefKind) Namespace { return namespaceOf[k] }

// PrimType is the closed set of built-in primitive types.
// Each Module records, as a bitset, which of these are shadowed by a
// user-declared type-namespace name in that scope.
type PrimType uint32

const (
	PrimBool PrimType = 1 << iota
	PrimInt
	PrimUint
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimChar
	PrimStr
)

// primTypeNames maps a primitive's source spelling to its PrimType.
var primTypeNames = map[string]PrimType{
	"bool": PrimBool,
	"int":  PrimInt,
	"uint": PrimUint,
	"i8":   PrimI8,
	"i16":  PrimI16,
	"i32":  PrimI32,
	"i64":  PrimI64,
	"u8":   PrimU8,
	"u16":  PrimU16,
	"u32":  PrimU32,
	"u64":  PrimU64,
	"char": PrimChar,
	"str":  PrimStr,
}

// LookupPrimType reports whether name spells one of the built-in
// primitives, and if so which.
func LookupPrimType(name string) (PrimType, bool) {
	p, ok := primTypeNames[name]
	return p, ok
}
