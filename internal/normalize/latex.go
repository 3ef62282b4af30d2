package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// combining maps LaTeX accent commands to Unicode combining marks.
var combining = map[string]rune{
	`"`: '\u0308', // diaeresis
	`'`: '\u0301', // acute
	"`": '\u0300', // grave
	"^": '\u0302', // circumflex
	"~": '\u0303', // tilde
	"=": '\u0304', // macron
	".": '\u0307', // dot above
	"c": '\u0327', // cedilla
	"v": '\u030C', // caron
	"u": '\u0306', // breve
	"H": '\u030B', // double acute
	"k": '\u0328', // ogonek
	"r": '\u030A', // ring above
	"d": '\u0323', // dot below
	"b": '\u0331', // macron below
}

// letters maps argument-less LaTeX commands to the characters they produce.
var letters = map[string]string{
	"ss": "ß",
	"o":  "ø",
	"O":  "Ø",
	"aa": "å",
	"AA": "Å",
	"ae": "æ",
	"AE": "Æ",
	"oe": "œ",
	"OE": "Œ",
	"l":  "ł",
	"L":  "Ł",
	"i":  "ı",
	"j":  "ȷ",
}

// Transliterate converts LaTeX markup for accented and special characters to
// Unicode. Grouping braces are dropped, escaped punctuation is unescaped and
// ties (~) become blanks. Unknown commands lose their backslash.
func Transliterate(s string) string {
	if !strings.ContainsAny(s, `\{}~`) {
		return s
	}
	t := &latexScanner{src: []rune(s)}
	return norm.NFC.String(t.run(false))
}

type latexScanner struct {
	src []rune
	pos int
}

// run converts runes until the end of input, or until the closing brace of
// the current group when nested is set.
func (t *latexScanner) run(nested bool) string {
	var b strings.Builder
	for t.pos < len(t.src) {
		r := t.src[t.pos]
		switch r {
		case '{':
			t.pos++
			b.WriteString(t.run(true))
		case '}':
			t.pos++
			if nested {
				return b.String()
			}
		case '~':
			t.pos++
			b.WriteByte(' ')
		case '\\':
			t.pos++
			b.WriteString(t.command())
		default:
			t.pos++
			b.WriteRune(r)
		}
	}
	return b.String()
}

// command handles the text following a backslash.
func (t *latexScanner) command() string {
	if t.pos >= len(t.src) {
		return ""
	}
	r := t.src[t.pos]

	if !unicode.IsLetter(r) {
		t.pos++
		if r == '\\' {
			// Line break.
			return " "
		}
		if mark, ok := combining[string(r)]; ok {
			return accent(t.argument(), mark)
		}
		// \& \% \$ \# \_ \{ \} and anything else: keep the character.
		return string(r)
	}

	start := t.pos
	for t.pos < len(t.src) && unicode.IsLetter(t.src[t.pos]) && t.src[t.pos] < unicode.MaxASCII {
		t.pos++
	}
	name := string(t.src[start:t.pos])

	if mark, ok := combining[name]; ok {
		t.skipSpaces()
		return accent(t.argument(), mark)
	}
	t.skipSpace()
	if l, ok := letters[name]; ok {
		return l
	}
	return ""
}

// argument reads a braced group or a single character.
func (t *latexScanner) argument() string {
	if t.pos >= len(t.src) {
		return ""
	}
	switch t.src[t.pos] {
	case '{':
		t.pos++
		return t.run(true)
	case '\\':
		t.pos++
		return t.command()
	}
	r := t.src[t.pos]
	t.pos++
	return string(r)
}

// skipSpace drops the single blank that terminates a control word.
func (t *latexScanner) skipSpace() {
	if t.pos < len(t.src) && t.src[t.pos] == ' ' {
		t.pos++
	}
}

func (t *latexScanner) skipSpaces() {
	for t.pos < len(t.src) && t.src[t.pos] == ' ' {
		t.pos++
	}
}

// accent places mark after the first character of base.
// Dotless i and j regain their dot so that NFC can compose them.
func accent(base string, mark rune) string {
	runes := []rune(base)
	if len(runes) == 0 {
		return string(mark)
	}
	switch runes[0] {
	case 'ı':
		runes[0] = 'i'
	case 'ȷ':
		runes[0] = 'j'
	}
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[0], mark)
	out = append(out, runes[1:]...)
	return string(out)
}
