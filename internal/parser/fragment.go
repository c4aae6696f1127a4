// Package parser turns raw localization strings into an ordered sequence
// of positioned fragments and compiles them back to text.
package parser

import (
	"fmt"
	"strings"
)

// Span is a half-open [Begin, End) range of codepoint offsets in the
// original input.
type Span struct {
	Begin int
	End   int
}

// Fragment is one piece of a parsed string: a literal text run or one of
// the three directive kinds.
type Fragment interface {
	// Span returns the fragment's position in the original input.
	Span() Span
	compile(b *strings.Builder)
}

// Text is a run of literal characters.
type Text struct {
	Pos     Span
	Content string
}

// Command is a bracketed directive like {NUM}, {2:STRING.gen} or the
// line-break marker {}.
type Command struct {
	Pos Span
	// Index is the explicit position reference, negative when absent.
	Index int
	Name  string
	// Case is the case selection suffix, empty when absent.
	Case string
}

// GenderDecl declares the grammatical gender of the whole string, {G=n}.
type GenderDecl struct {
	Pos    Span
	Gender string
}

// ChoiceList selects one of several choices by plural count or gender,
// e.g. {P 0:1 item items}.
type ChoiceList struct {
	Pos Span
	// Name is "P" for plural choices and "G" for gender choices.
	Name string
	// IndexRef is the referenced parameter position, negative when absent.
	IndexRef int
	// IndexSubRef is the sub-parameter index, negative when absent.
	IndexSubRef int
	Choices     []string
}

func (f *Text) Span() Span       { return f.Pos }
func (f *Command) Span() Span    { return f.Pos }
func (f *GenderDecl) Span() Span { return f.Pos }
func (f *ChoiceList) Span() Span { return f.Pos }

func (f *Text) compile(b *strings.Builder) {
	b.WriteString(f.Content)
}

func (f *Command) compile(b *strings.Builder) {
	b.WriteByte('{')
	if f.Index >= 0 {
		fmt.Fprintf(b, "%d:", f.Index)
	}
	b.WriteString(f.Name)
	if f.Case != "" {
		b.WriteByte('.')
		b.WriteString(f.Case)
	}
	b.WriteByte('}')
}

func (f *GenderDecl) compile(b *strings.Builder) {
	b.WriteString("{G=")
	b.WriteString(f.Gender)
	b.WriteByte('}')
}

func (f *ChoiceList) compile(b *strings.Builder) {
	b.WriteByte('{')
	b.WriteString(f.Name)
	if f.IndexRef >= 0 {
		fmt.Fprintf(b, " %d", f.IndexRef)
		if f.IndexSubRef >= 0 {
			fmt.Fprintf(b, ":%d", f.IndexSubRef)
		}
	}
	for _, c := range f.Choices {
		if c == "" || strings.ContainsAny(c, " \t\n\f\r") {
			// Choice strings can never contain a quote, so plain
			// wrapping is enough.
			b.WriteString(` "`)
			b.WriteString(c)
			b.WriteByte('"')
		} else {
			b.WriteByte(' ')
			b.WriteString(c)
		}
	}
	b.WriteByte('}')
}

// ParsedString is the ordered fragment sequence of one input string.
// Fragment spans are contiguous, strictly increasing and cover the input
// exactly once.
type ParsedString struct {
	Fragments []Fragment
}

// Compile renders the string back to text. For fragments that were not
// rewritten since parsing this is the exact inverse of Parse.
func (ps *ParsedString) Compile() string {
	var b strings.Builder
	for _, f := range ps.Fragments {
		f.compile(&b)
	}
	return b.String()
}
