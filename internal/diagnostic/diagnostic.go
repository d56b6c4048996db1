// Package diagnostic accumulates compiler messages with spans, labels, and
// severity, consumed by an external renderer.
package diagnostic

import "github.com/vellum-lang/vellum/internal/source"

// Level is a message's severity. Only Error aborts the pipeline at the
// next stage boundary.
type Level uint8

const (
	Warn Level = iota
	Error
)

// LabelKind distinguishes a message's one primary label from its
// auxiliary (help/"previously defined here") labels.
type LabelKind uint8

const (
	Primary LabelKind = iota
	Aux
)

// Label attaches explanatory text to a span within a Message.
type Label struct {
	Kind LabelKind
	Span source.Span
	Text string
}

// Message is one diagnostic: a severity, body text, an optional error
// code, and zero or more labels.
type Message struct {
	Level  Level
	Text   string
	Code   string // e.g. "R003"; empty for warnings without a stable code
	Labels []Label
}

// Holder accumulates messages in traversal order, as every stage in the
// pipeline requires.
type Holder struct {
	messages []Message
}

// NewHolder returns an empty message holder.
func NewHolder() *Holder { return &Holder{} }

// HasErrors reports whether any accumulated message is Level == Error.
func (h *Holder) HasErrors() bool {
	for _, m := range h.messages {
		if m.Level == Error {
			return true
		}
	}
	return false
}

// Messages returns the accumulated messages in emission order.
func (h *Holder) Messages() []Message { return h.messages }

// Extend appends another holder's messages, preserving relative order.
// Used when a sub-pass (e.g. per-file lexing) runs with its own holder.
func (h *Holder) Extend(other *Holder) {
	h.messages = append(h.messages, other.messages...)
}

// Builder is a one-shot, fluent diagnostic builder. It must be finished
// with Emit; a builder that is never emitted is silently dropped, which is
// always a bug at the call site.
type Builder struct {
	holder *Holder
	msg    Message
}

// newBuilder starts a message of the given level and code.
func newBuilder(h *Holder, level Level, code, text string) *Builder {
	return &Builder{holder: h, msg: Message{Level: level, Code: code, Text: text}}
}

// Error starts an error-level message builder.
func (h *Holder) Error(code, text string) *Builder { return newBuilder(h, Error, code, text) }

// Warn starts a warning-level message builder.
func (h *Holder) Warn(code, text string) *Builder { return newBuilder(h, Warn, code, text) }

// Primary attaches the message's single primary label.
func (b *Builder) Primary(span source.Span, text string) *Builder {
	b.msg.Labels = append(b.msg.Labels, Label{Kind: Primary, Span: span, Text: text})
	return b
}

// Aux attaches an auxiliary label (e.g. "previous definition here").
func (b *Builder) Aux(span source.Span, text string) *Builder {
	b.msg.Labels = append(b.msg.Labels, Label{Kind: Aux, Span: span, Text: text})
	return b
}

// Emit appends the built message to its holder.
func (b *Builder) Emit() {
	b.holder.messages = append(b.holder.messages, b.msg)
}
