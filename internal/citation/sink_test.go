package citation

import "strings"

// recorder is a Sink that marks emphasis with *...*, links with <...> and
// block starts with ¶.
type recorder struct {
	b strings.Builder
}

func (r *recorder) AppendText(s string) { r.b.WriteString(s) }

func (r *recorder) Emphasis(fn func()) {
	r.b.WriteString("*")
	fn()
	r.b.WriteString("*")
}

func (r *recorder) AppendLink(url string) { r.b.WriteString("<" + url + ">") }

func (r *recorder) StartBlock() { r.b.WriteString("¶") }

func (r *recorder) String() string { return r.b.String() }
