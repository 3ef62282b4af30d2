// Package bibtex reads BibTeX databases into raw field maps.
//
// The reader is deliberately shallow: values keep their inner LaTeX markup
// and grouping braces so that callers decide how to clean them.
package bibtex

import (
	"fmt"
	"strings"
	"unicode"
)

// Entry is one parsed bibliographic entry.
type Entry struct {
	Type   string            // Entry category, lower case (article, book, misc, ...)
	Key    string            // Citation key as written in the source
	Fields map[string]string // Field name (lower case) -> raw value
}

// ParseError describes a syntax error in a BibTeX source.
type ParseError struct {
	Line    int    // 1-indexed
	Message string // Description of the error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// monthMacros are the predefined month abbreviations. They expand to
// themselves so that month parsing sees "mar" rather than an empty value.
var monthMacros = map[string]string{
	"jan": "jan", "feb": "feb", "mar": "mar", "apr": "apr",
	"may": "may", "jun": "jun", "jul": "jul", "aug": "aug",
	"sep": "sep", "oct": "oct", "nov": "nov", "dec": "dec",
}

// Parse reads all entries from a BibTeX source. @comment and @preamble
// blocks are skipped; @string definitions are expanded in later values.
// Text outside entries is ignored.
func Parse(data []byte) ([]Entry, error) {
	p := &parser{src: []rune(string(data)), line: 1, macros: make(map[string]string)}
	for k, v := range monthMacros {
		p.macros[k] = v
	}

	var entries []Entry
	for p.skipTo('@') {
		p.next() // '@'
		typ := strings.ToLower(p.ident())
		if typ == "" {
			return entries, p.errorf("expected entry type after '@'")
		}
		p.skipSpace()

		open := p.peek()
		if open != '{' && open != '(' {
			return entries, p.errorf("expected '{' or '(' after @%s", typ)
		}
		p.next()
		closer := '}'
		if open == '(' {
			closer = ')'
		}

		switch typ {
		case "comment", "preamble":
			if err := p.skipGroup(closer); err != nil {
				return entries, err
			}
		case "string":
			if err := p.stringDefinition(closer); err != nil {
				return entries, err
			}
		default:
			entry, err := p.entry(typ, closer)
			if err != nil {
				return entries, err
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

type parser struct {
	src    []rune
	pos    int
	line   int
	macros map[string]string
}

func (p *parser) errorf(format string, args ...any) error {
	return ParseError{Line: p.line, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
	}
	return r
}

// skipTo advances to the next occurrence of r and reports whether one exists.
func (p *parser) skipTo(r rune) bool {
	for !p.eof() {
		if p.peek() == r {
			return true
		}
		p.next()
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.next()
	}
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_-:./+'", r)
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isIdentRune(p.peek()) {
		p.next()
	}
	return string(p.src[start:p.pos])
}

// skipGroup consumes input up to and including the closer at depth zero.
func (p *parser) skipGroup(closer rune) error {
	depth := 0
	for !p.eof() {
		r := p.next()
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == closer && depth == 0:
			return nil
		}
	}
	return p.errorf("unterminated block")
}

func (p *parser) stringDefinition(closer rune) error {
	p.skipSpace()
	name := strings.ToLower(p.ident())
	if name == "" {
		return p.errorf("expected macro name in @string")
	}
	p.skipSpace()
	if p.eof() || p.next() != '=' {
		return p.errorf("expected '=' after macro %q", name)
	}
	value, err := p.value()
	if err != nil {
		return err
	}
	p.macros[name] = value
	p.skipSpace()
	if p.eof() || p.next() != closer {
		return p.errorf("expected %q to close @string", closer)
	}
	return nil
}

func (p *parser) entry(typ string, closer rune) (Entry, error) {
	entry := Entry{Type: typ, Fields: make(map[string]string)}

	p.skipSpace()
	start := p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != closer && !unicode.IsSpace(p.peek()) {
		p.next()
	}
	entry.Key = string(p.src[start:p.pos])

	for {
		p.skipSpace()
		for !p.eof() && p.peek() == ',' {
			p.next()
			p.skipSpace()
		}
		if p.eof() {
			return entry, p.errorf("unterminated entry %q", entry.Key)
		}
		if p.peek() == closer {
			p.next()
			return entry, nil
		}

		name := strings.ToLower(p.ident())
		if name == "" {
			return entry, p.errorf("expected field name in entry %q, found %q", entry.Key, p.peek())
		}
		p.skipSpace()
		if p.eof() || p.next() != '=' {
			return entry, p.errorf("expected '=' after field %q in entry %q", name, entry.Key)
		}
		value, err := p.value()
		if err != nil {
			return entry, err
		}
		// First definition wins, as in BibTeX itself.
		if _, dup := entry.Fields[name]; !dup {
			entry.Fields[name] = value
		}
	}
}

// value reads a field value: one or more parts joined by '#'.
func (p *parser) value() (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return "", p.errorf("unexpected end of input in value")
		}

		switch r := p.peek(); {
		case r == '{':
			p.next()
			s, err := p.delimited('}')
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case r == '"':
			p.next()
			s, err := p.delimited('"')
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case isIdentRune(r):
			word := p.ident()
			if expansion, ok := p.macros[strings.ToLower(word)]; ok {
				b.WriteString(expansion)
			} else {
				b.WriteString(word)
			}
		default:
			return "", p.errorf("unexpected %q in value", r)
		}

		p.skipSpace()
		if p.peek() != '#' {
			return b.String(), nil
		}
		p.next()
	}
}

// delimited reads up to the matching end delimiter, keeping inner braces.
func (p *parser) delimited(end rune) (string, error) {
	startLine := p.line
	start := p.pos
	depth := 0
	for !p.eof() {
		r := p.peek()
		switch {
		case r == '\\':
			// Escaped characters never close a group.
			p.next()
			if !p.eof() {
				p.next()
			}
			continue
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == end && depth == 0:
			s := string(p.src[start:p.pos])
			p.next()
			return s, nil
		case r == '}' && depth == 0:
			return "", p.errorf("unbalanced '}' in value")
		}
		p.next()
	}
	return "", ParseError{Line: startLine, Message: "unterminated value"}
}
