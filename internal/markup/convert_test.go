package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplay(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"heading", "# Title", `<h1 data-block="b1">Title</h1>`},
		{"heading level 3", "### Small", `<h3 data-block="b1">Small</h3>`},
		{"deep heading stays text", "#### deep", `<p data-block="b1">#### deep</p>`},
		{"bold and italic", "**bold** and *it*", `<p data-block="b1"><strong>bold</strong> and <em>it</em></p>`},
		{"bold italic", "***both***", `<p data-block="b1"><strong><em>both</em></strong></p>`},
		{"strike", "~~gone~~", `<p data-block="b1"><s>gone</s></p>`},
		{"link", "[site](https://x.io)", `<p data-block="b1"><a href="https://x.io">site</a></p>`},
		{
			"image with caption",
			"![Cafe](https://img/c.jpg)\n*Morning light*",
			`<figure class="image-block" data-block="b1"><img src="https://img/c.jpg" alt="Cafe"><figcaption class="image-caption" data-action="edit-caption">Morning light</figcaption></figure>`,
		},
		{
			"image without caption",
			"![Cafe](https://img/c.jpg)",
			`<figure class="image-block" data-block="b1"><img src="https://img/c.jpg" alt="Cafe"></figure>`,
		},
		{
			"broken image marker",
			"![alt]",
			`<div class="broken-image" data-block="b1" data-raw="![alt]" data-reason="image is missing its url">⚠ image is missing its url</div>`,
		},
		{
			"image placeholder",
			"!Image",
			`<div class="broken-image" data-block="b1" data-raw="!Image" data-reason="image placeholder has no source">⚠ image placeholder has no source</div>`,
		},
		{"unordered list", "* a\n* b", `<ul data-block="b1"><li>a</li><li>b</li></ul>`},
		{"ordered list", "1. a\n2. b", `<ol data-block="b1"><li>a</li><li>b</li></ol>`},
		{
			"list kinds do not merge",
			"* a\n1. b",
			`<ul data-block="b1"><li>a</li></ul><ol data-block="b2"><li>b</li></ol>`,
		},
		{"hard break", "line one\nline two", `<p data-block="b1">line one<br>line two</p>`},
		{"escapes", `3 \* 4 = 12 \#win`, `<p data-block="b1">3 * 4 = 12 #win</p>`},
		{"escaped backslash", `a \\ b`, `<p data-block="b1">a \ b</p>`},
		{"unmatched bold", "**open", `<p data-block="b1">**open</p>`},
		{"html is escaped", "a < b & c", `<p data-block="b1">a &lt; b &amp; c</p>`},
		{"aligned", `<div align="center">Hi</div>`, `<p data-block="b1" style="text-align:center">Hi</p>`},
		{
			"aligned multi line",
			"<div align=\"right\">\nOne\nTwo\n</div>",
			`<p data-block="b1" style="text-align:right">One<br>Two</p>`,
		},
		{
			"blocks",
			"# T\n\nBody\n\n* x",
			`<h1 data-block="b1">T</h1><p data-block="b2">Body</p><ul data-block="b3"><li>x</li></ul>`,
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDisplay(tt.markdown))
		})
	}
}

func TestToStorage(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{"escapes literal text", `<p>3 * 4 = 12 #win</p>`, `3 \* 4 = 12 \#win`},
		{"heading and paragraph", `<h2>Sub</h2><p>Text</p>`, "## Sub\n\nText"},
		{"deep heading capped", `<h5>Deep</h5>`, "### Deep"},
		{"nested emphasis", `<p><strong>a</strong><strong><em>b</em></strong></p>`, "**a*b***"},
		{"whitespace only bold", `<p><strong>  </strong>x</p>`, "x"},
		{"edge whitespace moves out", `<p><strong>hello </strong>world</p>`, "**hello** world"},
		{"b and i tags", `<p><b>x</b> <i>y</i> <del>z</del></p>`, "**x** *y* ~~z~~"},
		{"unordered list", `<ul><li>one</li><li>two</li></ul>`, "* one\n* two"},
		{"ordered list", `<ol><li>one</li><li>two</li></ol>`, "1. one\n2. two"},
		{
			"image with caption",
			`<figure><img src="https://c.jpg" alt="Cafe"><figcaption>Morning</figcaption></figure>`,
			"![Cafe](https://c.jpg)\n*Morning*",
		},
		{"bare image", `<img src="https://c.jpg" alt="">`, "![](https://c.jpg)"},
		{
			"broken image kept verbatim",
			`<div class="broken-image" data-raw="![alt]">⚠ missing</div>`,
			"![alt]",
		},
		{"aligned paragraph", `<p style="text-align:right">R</p>`, `<div align="right">R</div>`},
		{"aligned container", `<div style="text-align: center"><p>C</p></div>`, `<div align="center">C</div>`},
		{"left alignment is default", `<p style="text-align:left">L</p>`, "L"},
		{"line break", `<p>a<br>b</p>`, "a\nb"},
		{"empty paragraphs collapse", `<p>x</p><p></p><p></p><p>y</p>`, "x\n\ny"},
		{"link", `<p><a href="https://a.b">link</a> </p>`, "[link](https://a.b)"},
		{"bold link", `<p><a href="https://a.b"><strong>go</strong></a></p>`, "[**go**](https://a.b)"},
		{"loose text", `hello <b>there</b>`, "hello **there**"},
		{"brackets escaped", `<p>[not a link](x)</p>`, `\[not a link\](x)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToStorage(tt.display))
		})
	}
}

func TestRoundTrip_Canonical(t *testing.T) {
	docs := []string{
		"# Title\n\nSome **bold** and *italic* text with a [link](https://x.y).\n\n* one\n* two\n\n![Cafe](https://c.jpg)\n*Caption here*\n\n<div align=\"center\">Centered</div>",
		"*a **b** c*",
		"**a*b***",
		"~~**both**~~ plain",
		"1. first\n2. second\n\n* other",
		"Intro\n\n![alt]\n\nOutro",
		"!Image",
		`3 \* 4 = 12 \#win`,
		"line\nbreak",
		"## Sub [**bold link**](https://l.io) end",
	}

	for _, md := range docs {
		t.Run(md, func(t *testing.T) {
			assert.Equal(t, md, ToStorage(ToDisplay(md)))
		})
	}
}

func TestRoundTrip_FixedPoint(t *testing.T) {
	inputs := []string{
		"**unclosed *mixed ~~strike",
		"text with ~~ tildes",
		"[broken](",
		"# # double",
		"a\n\n\n\nb",
		"  leading space",
		"* item with **bold\n* next",
		"![x]()",
		"*italic with trailing *",
		"mixed *a* *b* **c**d",
		"<div align=\"center\">\nunterminated",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := ToStorage(ToDisplay(in))
			twice := ToStorage(ToDisplay(once))
			assert.Equal(t, once, twice)
		})
	}
}

func TestParse_Blocks(t *testing.T) {
	doc := Parse("# Head\n\npara **b**\n\n* x\n* y\n\n![a](u)\n*cap*\n\n![broken]")
	require.Len(t, doc.Blocks, 5)

	assert.Equal(t, KindHeading, doc.Blocks[0].Kind)
	assert.Equal(t, 1, doc.Blocks[0].Level)
	assert.Equal(t, "Head", doc.Blocks[0].Text)

	assert.Equal(t, KindParagraph, doc.Blocks[1].Kind)
	assert.Equal(t, []Span{{Text: "para "}, {Text: "b", Marks: MarkBold}}, doc.Blocks[1].Spans)

	assert.Equal(t, KindList, doc.Blocks[2].Kind)
	assert.False(t, doc.Blocks[2].Ordered)
	assert.Len(t, doc.Blocks[2].Items, 2)

	assert.Equal(t, KindImage, doc.Blocks[3].Kind)
	require.NotNil(t, doc.Blocks[3].Caption)
	assert.Equal(t, "cap", *doc.Blocks[3].Caption)

	assert.Equal(t, KindBrokenImage, doc.Blocks[4].Kind)
	assert.Equal(t, "![broken]", doc.Blocks[4].Raw)
}

func TestParseDisplay_KeepsBlockIDs(t *testing.T) {
	doc := ParseDisplay(`<p data-block="b7">x</p><p>y</p><p data-block="b7">z</p>`)
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, "b7", doc.Blocks[0].ID)
	assert.Equal(t, "b8", doc.Blocks[1].ID)
	assert.Equal(t, "b9", doc.Blocks[2].ID)
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		markdown string
		want     int
	}{
		{"Hello **world**, this is *great*!", 5},
		{"", 0},
		{"# One two\n\n* three\n* four", 4},
		{"![img](u)\n*a caption*", 2},
		{"[a link](https://x) here", 3},
	}

	for _, tt := range tests {
		t.Run(tt.markdown, func(t *testing.T) {
			assert.Equal(t, tt.want, WordCount(tt.markdown))
		})
	}
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 1, ReadTime(0))
	assert.Equal(t, 1, ReadTime(200))
	assert.Equal(t, 2, ReadTime(201))
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{
		"*", "**", "***", "~", "[", "](", "![", "![]", "\\", "#", "# ", "1.", "1. ",
		"<div align=\"left\">", "</div>", "*\n*", "[a](b", "**[a](b)", "\\*\\", "\r\n\r\n",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_ = ToStorage(ToDisplay(in))
			_ = WordCount(in)
		}, in)
	}
}

func TestRenderMarkdown_LineStartsStayParagraphText(t *testing.T) {
	texts := []string{
		"shopping\n1. milk",
		"1. not a list",
		"seen it\n!Image",
		"seen it\n![x](https://a.b)",
		"note\n<div align=\"center\">x",
		"wow!\n42. answer",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			doc := NewDocument()
			doc.Append(KindParagraph).Spans = []Span{{Text: text}}

			md := RenderMarkdown(doc)
			back := Parse(md)
			require.Len(t, back.Blocks, 1, md)
			assert.Equal(t, KindParagraph, back.Blocks[0].Kind)
			assert.Equal(t, text, SpansText(back.Blocks[0].Spans))
			assert.Equal(t, md, ToStorage(ToDisplay(md)))
		})
	}
}

func TestRenderMarkdown_ImageAltAndURL(t *testing.T) {
	caption := "a]b \\ c"
	doc := NewDocument()
	img := doc.Append(KindImage)
	img.URL = "https://x/my photo (1).png"
	img.Alt = caption
	img.Caption = &caption

	first := RenderMarkdown(doc)
	assert.Equal(t, "![a\\]b \\\\ c](https://x/my%20photo%20%281%29.png)\n*a\\]b \\\\ c*", first)

	back := Parse(first)
	require.Len(t, back.Blocks, 1)
	assert.Equal(t, KindImage, back.Blocks[0].Kind)
	assert.Equal(t, caption, back.Blocks[0].Alt)
	assert.Equal(t, first, ToStorage(ToDisplay(first)))
}

func TestLinkDestinations(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"balanced parentheses", "https://en.wikipedia.org/wiki/Cafe_(x)", "[cafe](https://en.wikipedia.org/wiki/Cafe_(x))"},
		{"unbalanced parenthesis", "https://a.b/x)y", "[cafe](https://a.b/x%29y)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument()
			doc.Append(KindParagraph).Spans = []Span{{Text: "cafe", Href: tt.href}}

			md := RenderMarkdown(doc)
			assert.Equal(t, tt.want, md)

			spans := Parse(md).Blocks[0].Spans
			require.Len(t, spans, 1)
			assert.Equal(t, "cafe", spans[0].Text)
			assert.Equal(t, md, ToStorage(ToDisplay(md)))
		})
	}

	spans := Parse("[w](https://en.wikipedia.org/wiki/Cafe_(x)) after").Blocks[0].Spans
	require.Len(t, spans, 2)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Cafe_(x)", spans[0].Href)
	assert.Equal(t, " after", spans[1].Text)
}

func TestToDisplay_UnsafeURLs(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"javascript link is text", "[x](javascript:alert(1))", `<p data-block="b1">x</p>`},
		{"data link is text", "[x](data:text/html,hi)", `<p data-block="b1">x</p>`},
		{"relative link kept", "[x](/venues/1)", `<p data-block="b1"><a href="/venues/1">x</a></p>`},
		{"mailto link kept", "[x](mailto:a@b.c)", `<p data-block="b1"><a href="mailto:a@b.c">x</a></p>`},
		{
			"javascript image is broken",
			"![x](javascript:alert)",
			`<div class="broken-image" data-block="b1" data-raw="![x](javascript:alert)" data-reason="image url is not allowed">⚠ image url is not allowed</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDisplay(tt.markdown))
		})
	}
}
