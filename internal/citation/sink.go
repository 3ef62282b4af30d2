// Package citation renders reference records as short in-text citations and
// full bibliography entries.
package citation

// Sink receives rendered citation output. The formatter writes all spacing
// and punctuation itself; a sink only decides how to mark up emphasis, links
// and blocks.
type Sink interface {
	// AppendText adds text verbatim.
	AppendText(s string)
	// Emphasis renders everything appended during fn as emphasized.
	Emphasis(fn func())
	// AppendLink adds a hyperlink to url.
	AppendLink(url string)
	// StartBlock begins a new paragraph-level block.
	StartBlock()
}
