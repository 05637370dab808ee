// Package shell implements the subset of POSIX shell word splitting needed to read
// a curl command: single quotes, double quotes, backslash escapes and line continuations.
//
// The tokenizer is a small switch-based state machine walking the input one rune at
// a time, accumulating the current word until unquoted whitespace ends it. It never
// fails: unterminated quotes and a trailing backslash are tolerated and whatever
// was buffered is emitted as the final word. [Lint] runs the same machine and reports
// those situations as diagnostics for callers that want to warn about them.
package shell

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// state is the quoting state of the tokenizer.
type state int

const (
	normal       state = iota // Outside of any quotes
	singleQuoted              // Inside '...', everything is literal
	doubleQuoted              // Inside "...", backslash escapes the next character
)

// String implements [fmt.Stringer] for a state.
func (s state) String() string {
	switch s {
	case normal:
		return "normal"
	case singleQuoted:
		return "single quoted"
	case doubleQuoted:
		return "double quoted"
	default:
		return "unknown"
	}
}

// Tokenize splits text into words the way a shell would, with all quoting and
// escaping resolved.
//
//	Tokenize(`curl -H 'X: a b' --url http://h/p`) // ["curl", "-H", "X: a b", "--url", "http://h/p"]
func Tokenize(text string) []string {
	t := newTokenizer(text)
	t.run()

	return t.words
}

// tokenizer holds the state of a single Tokenize call.
type tokenizer struct {
	src      []rune          // Normalised source text
	raw      []string        // The original bytes of each rune in src, invalid UTF-8 included
	offsets  []int           // Byte offset in the original text of each rune in src
	words    []string        // Completed words
	current  strings.Builder // The word currently being built
	quoteAt  int             // Index into src of the quote that opened the current quoted section
	escapeAt int             // Index into src of the backslash that started the pending escape
	state    state           // Current quoting state
	escaping bool            // Whether the next rune is escaped, state is the state to return to
}

// newTokenizer returns a tokenizer ready to run over text.
//
// Line continuations (a backslash immediately followed by "\n" or "\r\n") are
// collapsed into a single space and surrounding whitespace is trimmed, the byte
// offset of every remaining rune in the original text is kept for diagnostics.
func newTokenizer(text string) *tokenizer {
	src := make([]rune, 0, len(text))
	raw := make([]string, 0, len(text))
	offsets := make([]int, 0, len(text))

	for offset := 0; offset < len(text); {
		char, width := utf8.DecodeRuneInString(text[offset:])

		if char == '\\' {
			rest := text[offset+width:]

			switch {
			case strings.HasPrefix(rest, "\n"):
				src = append(src, ' ')
				raw = append(raw, " ")
				offsets = append(offsets, offset)
				offset += width + len("\n")

				continue
			case strings.HasPrefix(rest, "\r\n"):
				src = append(src, ' ')
				raw = append(raw, " ")
				offsets = append(offsets, offset)
				offset += width + len("\r\n")

				continue
			}
		}

		src = append(src, char)
		raw = append(raw, text[offset:offset+width])
		offsets = append(offsets, offset)
		offset += width
	}

	start, end := 0, len(src)
	for start < end && unicode.IsSpace(src[start]) {
		start++
	}

	for end > start && unicode.IsSpace(src[end-1]) {
		end--
	}

	return &tokenizer{
		src:      src[start:end],
		raw:      raw[start:end],
		offsets:  offsets[start:end],
		quoteAt:  -1,
		escapeAt: -1,
	}
}

// run drives the state machine over the whole input.
func (t *tokenizer) run() {
	for i, char := range t.src {
		t.step(i, char)
	}

	t.flush()
}

// step handles a single rune at index i.
func (t *tokenizer) step(i int, char rune) {
	if t.escaping {
		t.current.WriteString(t.raw[i])
		t.escaping = false
		t.escapeAt = -1

		return
	}

	if char == '\\' {
		if t.state == singleQuoted {
			t.current.WriteString(t.raw[i])
		} else {
			t.escaping = true
			t.escapeAt = i
		}

		return
	}

	switch t.state {
	case singleQuoted:
		if char == '\'' {
			t.state = normal
			t.quoteAt = -1
		} else {
			t.current.WriteString(t.raw[i])
		}
	case doubleQuoted:
		if char == '"' {
			t.state = normal
			t.quoteAt = -1
		} else {
			t.current.WriteString(t.raw[i])
		}
	default:
		switch {
		case char == '\'':
			t.state = singleQuoted
			t.quoteAt = i
		case char == '"':
			t.state = doubleQuoted
			t.quoteAt = i
		case unicode.IsSpace(char):
			t.flush()
		default:
			t.current.WriteString(t.raw[i])
		}
	}
}

// flush completes the current word, if there is one.
func (t *tokenizer) flush() {
	if t.current.Len() == 0 {
		return
	}

	t.words = append(t.words, t.current.String())
	t.current.Reset()
}

// Quote quotes value for a POSIX shell by wrapping it in single quotes,
// each embedded single quote is closed, escaped and reopened.
//
//	Quote("it's") // 'it'\''s'
func Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// QuoteWord returns value unchanged if it is a plain word made only of ASCII letters,
// digits, '-', '_' and '.', anything else is quoted with [Quote].
//
//	QuoteWord("POST")        // POST
//	QuoteWord("GET;rm -rf")  // 'GET;rm -rf'
func QuoteWord(value string) string {
	if value == "" || strings.ContainsFunc(value, needsQuote) {
		return Quote(value)
	}

	return value
}

// needsQuote reports whether char can't appear in an unquoted word.
func needsQuote(char rune) bool {
	switch {
	case 'a' <= char && char <= 'z', 'A' <= char && char <= 'Z', '0' <= char && char <= '9':
		return false
	case char == '-', char == '_', char == '.':
		return false
	default:
		return true
	}
}
