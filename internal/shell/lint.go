package shell

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Position is a source position including file, line and column information.
//
// Positions without filenames are considered invalid, in the case of stdin
// the string "stdin" may be used.
type Position struct {
	Name   string `json:"name"`   // Filename
	Offset int    `json:"offset"` // Byte offset of the position from the start of the text
	Line   int    `json:"line"`   // Line number (1 indexed)
	Col    int    `json:"col"`    // Column number in runes (1 indexed)
}

// IsValid reports whether the [Position] describes a valid source position.
func (p Position) IsValid() bool {
	return p.Name != "" && p.Line >= 1 && p.Col >= 1
}

// String returns a string representation of a [Position].
//
// It is formatted as "file:line:col" such that most text editors/terminals will be
// able to support clicking on it and navigating to the position.
func (p Position) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("BadPosition: {Name: %q, Line: %d, Col: %d}", p.Name, p.Line, p.Col)
	}

	return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.Col)
}

// ComparePosition is like [cmp.Compare] for a [Position].
//
// Positions in the same file are ordered by offset, otherwise by file name.
func ComparePosition(x, y Position) int {
	if x == y {
		return 0
	}

	if x.Name == y.Name {
		return cmp.Compare(x.Offset, y.Offset)
	}

	return cmp.Compare(x.Name, y.Name)
}

// Diagnostic is a warning about something in the source text that the
// tokenizer tolerated but is probably a mistake.
type Diagnostic struct {
	Msg      string   `json:"msg"`      // A descriptive message explaining the problem
	Position Position `json:"position"` // The source position the diagnostic points to
}

// String prints a [Diagnostic] as "name:line:col: msg".
func (d Diagnostic) String() string {
	return d.Position.String() + ": " + d.Msg
}

// Lint tokenizes text and reports any unterminated quotes or dangling escapes
// that [Tokenize] would silently accept.
//
// name is used as the file name in the returned positions.
func Lint(name, text string) []Diagnostic {
	t := newTokenizer(text)
	t.run()

	var diagnostics []Diagnostic

	if t.escaping && t.escapeAt >= 0 {
		diagnostics = append(diagnostics, Diagnostic{
			Msg:      "trailing backslash escapes nothing",
			Position: position(name, text, t.offsets[t.escapeAt]),
		})
	}

	if t.state != normal && t.quoteAt >= 0 {
		diagnostics = append(diagnostics, Diagnostic{
			Msg:      fmt.Sprintf("unterminated %s string", t.state),
			Position: position(name, text, t.offsets[t.quoteAt]),
		})
	}

	slices.SortFunc(diagnostics, func(a, b Diagnostic) int {
		return ComparePosition(a.Position, b.Position)
	})

	return diagnostics
}

// position converts a byte offset in text into a [Position].
func position(name, text string, offset int) Position {
	before := text[:offset]

	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1

	return Position{
		Name:   name,
		Offset: offset,
		Line:   line,
		Col:    utf8.RuneCountInString(before[lineStart:]) + 1,
	}
}
