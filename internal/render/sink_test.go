package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/reference"
)

var (
	article = reference.Record{
		Name:    "Smith 2020",
		Type:    reference.TypeArticle,
		Authors: []string{"Smith, John"},
		Year:    "2020",
		Title:   "Cats & Dogs",
		Journal: "Pets <Weekly>",
		Volume:  "4",
		Pages:   "1-2",
	}
	website = reference.Record{
		Name:    "Go 2024",
		Type:    reference.TypeWebsite,
		Authors: []string{"Go Team"},
		Year:    "2024",
		Title:   "Effective Go",
		URL:     "https://go.dev/doc/?a=1&b=2",
	}
)

func TestNewSink(t *testing.T) {
	for _, name := range append(Formats, "md", "txt") {
		s, err := NewSink(name)
		require.NoError(t, err, name)
		assert.Empty(t, s.String())
	}
	_, err := NewSink("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestHTML(t *testing.T) {
	var h HTML
	f := citation.Formatter{}
	require.NoError(t, f.AddFull(&h, article))
	require.NoError(t, f.AddFull(&h, website))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(h.String()))
	require.NoError(t, err)

	paras := doc.Find("p")
	require.Equal(t, 2, paras.Length())

	first := paras.Eq(0)
	assert.Equal(t, "Smith, John. 2020. Cats & Dogs. Pets <Weekly>, 4, 1-2.", first.Text())
	assert.Equal(t, "Pets <Weekly>", first.Find("em").Text())

	link := paras.Eq(1).Find("a")
	href, ok := link.Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://go.dev/doc/?a=1&b=2", href)
	assert.Equal(t, href, link.Text())

	assert.NotContains(t, h.String(), "<Weekly>", "text must be escaped")
}

func TestHTML_ShortCitation(t *testing.T) {
	var h HTML
	citation.Formatter{}.AddShort(&h, article)
	assert.Equal(t, "<em>Smith 2020</em>", h.String())
}

func TestMarkdown(t *testing.T) {
	var m Markdown
	f := citation.Formatter{}
	require.NoError(t, f.AddFull(&m, article))
	require.NoError(t, f.AddFull(&m, website))

	assert.Equal(t,
		"Smith, John. 2020. Cats & Dogs. *Pets <Weekly>*, 4, 1-2.\n\n"+
			"Go Team. 2024. Effective Go. <https://go.dev/doc/?a=1&b=2>",
		m.String())
}

func TestMarkdown_Escapes(t *testing.T) {
	var m Markdown
	m.AppendText("a*b_c [d]")
	assert.Equal(t, `a\*b\_c \[d\]`, m.String())
}

func TestText(t *testing.T) {
	var s Text
	f := citation.Formatter{}
	require.NoError(t, f.AddFull(&s, article))
	require.NoError(t, f.AddFull(&s, website))

	assert.Equal(t,
		"Smith, John. 2020. Cats & Dogs. Pets <Weekly>, 4, 1-2.\n"+
			"Go Team. 2024. Effective Go. https://go.dev/doc/?a=1&b=2",
		s.String())
}
