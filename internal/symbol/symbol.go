// Package symbol implements the interner: a bidirectional mapping between
// source strings and small integer handles.
package symbol

// Symbol is an interned string handle. Equality is integer equality.
type Symbol uint32

// Kw enumerates the language's reserved keywords. Order matters: the
// interner allocates their handles first and in this exact order, so
// Symbol(k) == FromKw(k) for every k below.
type Kw uint8

const (
	KwEmpty Kw = iota
	KwRoot
	KwUnderscore

	KwAnd
	KwAs
	KwAsync
	KwAwait
	KwBreak
	KwConst
	KwContinue
	KwElse
	KwEnum
	KwFalse
	KwFor
	KwFunc
	KwFn
	KwIf
	KwImpl
	KwIn
	KwInit
	KwLet
	KwLoop
	KwMatch
	KwMod
	KwMove
	KwMut
	KwNot
	KwOr
	KwParty
	KwPub
	KwRef
	KwReturn
	KwSelf
	KwStatic
	KwStruct
	KwSuper
	KwTrait
	KwTrue
	KwType
	KwUse
	KwWhere
	KwWhile

	kwCount
)

// keywordSpelling is the exact source spelling for each Kw, in declaration
// order. Spelling order is what the interner uses to seed the reserved
// handle range; never reorder without also reordering Kw.
var keywordSpelling = [kwCount]string{
	KwEmpty:      "",
	KwRoot:       "root",
	KwUnderscore: "_",

	KwAnd:      "and",
	KwAs:       "as",
	KwAsync:    "async",
	KwAwait:    "await",
	KwBreak:    "break",
	KwConst:    "const",
	KwContinue: "continue",
	KwElse:     "else",
	KwEnum:     "enum",
	KwFalse:    "false",
	KwFor:      "for",
	KwFunc:     "func",
	KwFn:       "fn",
	KwIf:       "if",
	KwImpl:     "impl",
	KwIn:       "in",
	KwInit:     "init",
	KwLet:      "let",
	KwLoop:     "loop",
	KwMatch:    "match",
	KwMod:      "mod",
	KwMove:     "move",
	KwMut:      "mut",
	KwNot:      "not",
	KwOr:       "or",
	KwParty:    "party",
	KwPub:      "pub",
	KwRef:      "ref",
	KwReturn:   "return",
	KwSelf:     "self",
	KwStatic:   "static",
	KwStruct:   "struct",
	KwSuper:    "super",
	KwTrait:    "trait",
	KwTrue:     "true",
	KwType:     "type",
	KwUse:      "use",
	KwWhere:    "where",
	KwWhile:    "while",
}

// Interner maps strings to Symbol handles. It is process-global state,
// mirroring the reference compiler's Interner::getInstance singleton; the
// session pipeline in this repo is single-threaded, so a package-level
// instance needs no locking.
type Interner struct {
	byString map[string]Symbol
	strings  []string
}

var global = newInterner()

func newInterner() *Interner {
	it := &Interner{byString: make(map[string]Symbol, 256)}
	for kw := Kw(0); kw < kwCount; kw++ {
		it.intern(keywordSpelling[kw])
	}
	return it
}

// Default returns the process-global interner seeded with all keywords.
func Default() *Interner { return global }

// Intern returns str's handle, allocating a new one if str was never
// interned before. Idempotent: repeated calls with equal strings return
// the same Symbol.
func (it *Interner) Intern(str string) Symbol { return it.intern(str) }

func (it *Interner) intern(str string) Symbol {
	if sym, ok := it.byString[str]; ok {
		return sym
	}
	sym := Symbol(len(it.strings))
	it.byString[str] = sym
	it.strings = append(it.strings, str)
	return sym
}

// Get returns the string behind sym. Panics on an invalid handle: that is
// a program error, never a user-facing one.
func (it *Interner) Get(sym Symbol) string {
	if int(sym) >= len(it.strings) {
		panic("symbol: Get called with unknown handle")
	}
	return it.strings[sym]
}

// FromKw returns the handle reserved for kw at interner-construction time.
func FromKw(kw Kw) Symbol { return Symbol(kw) }

// IsKw reports whether sym is the reserved handle for kw.
func IsKw(sym Symbol, kw Kw) bool { return sym == Symbol(kw) }

// IsKeyword reports whether sym falls in the reserved keyword range at all
// (excluding the three non-keyword sentinels Empty/Root/Underscore, which
// are reserved but not operator/control keywords).
func IsKeyword(sym Symbol) bool {
	return sym >= Symbol(KwAnd) && sym < Symbol(kwCount)
}

// Intern is shorthand for Default().Intern.
func Intern(str string) Symbol { return global.Intern(str) }

// Get is shorthand for Default().Get.
func Get(sym Symbol) string { return global.Get(sym) }

// LookupKw returns the Kw for an identifier-shaped string, if it names one.
func LookupKw(str string) (Kw, bool) {
	kw, ok := spellingToKw[str]
	return kw, ok
}

var spellingToKw = buildSpellingToKw()

func buildSpellingToKw() map[string]Kw {
	m := make(map[string]Kw, kwCount)
	for kw := KwAnd; kw < kwCount; kw++ {
		m[keywordSpelling[kw]] = kw
	}
	return m
}
