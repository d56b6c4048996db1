package ast

import "github.com/vellum-lang/vellum/internal/source"

// File is one source file's parsed top-level items.
type File struct {
	Id    source.FileId
	Items []Item
}

// Party is the root AST node for a tree of source files rooted at an
// entry file. File-to-FileId association for `mod m;`
// declarations without an inline body is resolved by the external
// file-system layer before the Module Tree Builder runs.
type Party struct {
	Entry source.FileId
	Files map[source.FileId]*File

	// Spans maps every NodeId allocated anywhere in the party to its span,
	// independently of each node's own Span()
	// method — useful to later passes that only hold a bare NodeId.
	Spans map[NodeId]source.Span
}

// NewParty returns an empty party rooted at entry.
func NewParty(entry source.FileId) *Party {
	return &Party{
		Entry: entry,
		Files: make(map[source.FileId]*File),
		Spans: make(map[NodeId]source.Span),
	}
}
