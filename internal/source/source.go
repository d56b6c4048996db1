// Package source owns registered source files and resolves byte spans back
// to line/column positions.
package source

import "sort"

// FileId identifies a registered source file.
type FileId uint32

// DummyFileId is used by Span.Dummy for synthetic/ambiguous nodes.
const DummyFileId FileId = 0

// Span is a (file, byte offset, byte length) slice of source.
type Span struct {
	FileId FileId
	Offset uint32
	Length uint32
}

// Dummy is the span attached to synthetic nodes that have no real source
// location.
var Dummy = Span{FileId: DummyFileId}

// IsDummy reports whether sp carries no real location.
func (sp Span) IsDummy() bool { return sp.FileId == DummyFileId && sp.Offset == 0 && sp.Length == 0 }

// End returns the offset one past the last byte in the span.
func (sp Span) End() uint32 { return sp.Offset + sp.Length }

// To merges sp with other, taking the enclosing range. If the two spans
// disagree on FileId, sp is returned unchanged (composing across files is
// meaningless and signals a bug upstream, not something to panic over).
func (sp Span) To(other Span) Span {
	if sp.FileId != other.FileId {
		return sp
	}
	start := sp.Offset
	if other.Offset < start {
		start = other.Offset
	}
	end := sp.End()
	if other.End() > end {
		end = other.End()
	}
	return Span{FileId: sp.FileId, Offset: start, Length: end - start}
}

// file is one registered source file's record.
type file struct {
	path       string
	contents   string
	lineOffset []uint32 // byte offset of the start of each line; lineOffset[0] == 0
}

// Map registers source files and answers span->position queries.
type Map struct {
	files []*file
}

// NewMap returns an empty source map. FileId 0 is reserved as the dummy
// file id and is never assigned to a real file.
func NewMap() *Map {
	return &Map{files: []*file{nil}}
}

// Register assigns the next FileId to path without yet attaching contents;
// SetContents fills them in once the file-system layer has read the bytes.
func (m *Map) Register(path string) FileId {
	id := FileId(len(m.files))
	m.files = append(m.files, &file{path: path})
	return id
}

// SetContents attaches contents to id and builds its line-offset table.
// The lexer is expected to have already validated the byte stream; this
// only needs to find newlines.
func (m *Map) SetContents(id FileId, contents string) {
	f := m.mustFile(id)
	f.contents = contents
	f.lineOffset = f.lineOffset[:0]
	f.lineOffset = append(f.lineOffset, 0)
	for i := 0; i < len(contents); i++ {
		if contents[i] == '\n' {
			f.lineOffset = append(f.lineOffset, uint32(i+1))
		}
	}
}

func (m *Map) mustFile(id FileId) *file {
	if int(id) <= 0 || int(id) >= len(m.files) {
		panic("source: unknown FileId")
	}
	return m.files[id]
}

// Path returns the registered path for id.
func (m *Map) Path(id FileId) string { return m.mustFile(id).path }

// Contents returns the full registered source text for id.
func (m *Map) Contents(id FileId) string { return m.mustFile(id).contents }

// LinesCount returns the number of lines recorded for id.
func (m *Map) LinesCount(id FileId) int { return len(m.mustFile(id).lineOffset) }

// Line returns the text of the 0-indexed lineIdx line of id, without its
// trailing newline.
func (m *Map) Line(id FileId, lineIdx int) string {
	f := m.mustFile(id)
	if lineIdx < 0 || lineIdx >= len(f.lineOffset) {
		return ""
	}
	start := f.lineOffset[lineIdx]
	var end uint32
	if lineIdx+1 < len(f.lineOffset) {
		end = f.lineOffset[lineIdx+1] - 1 // drop the '\n'
	} else {
		end = uint32(len(f.contents))
	}
	if end > uint32(len(f.contents)) {
		end = uint32(len(f.contents))
	}
	if start > end {
		return ""
	}
	return f.contents[start:end]
}

// Position is a resolved (line, column) pair, both 0-indexed.
type Position struct {
	Line   int
	Column int
}

// PositionFor resolves a byte offset within id to a line/column pair via
// binary search into the line table.
func (m *Map) PositionFor(id FileId, offset uint32) Position {
	f := m.mustFile(id)
	// Largest line whose start offset is <= offset.
	idx := sort.Search(len(f.lineOffset), func(i int) bool {
		return f.lineOffset[i] > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return Position{Line: idx, Column: int(offset - f.lineOffset[idx])}
}

// SliceBySpan returns the raw source text covered by sp.
func (m *Map) SliceBySpan(sp Span) string {
	f := m.mustFile(sp.FileId)
	end := sp.End()
	if end > uint32(len(f.contents)) {
		end = uint32(len(f.contents))
	}
	if sp.Offset > end {
		return ""
	}
	return f.contents[sp.Offset:end]
}
