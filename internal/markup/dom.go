package markup

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	imageSelector   = cascadia.MustCompile("img")
	captionSelector = cascadia.MustCompile("figcaption")
)

// ParseDisplay reads the display form into a Document. Unknown elements are
// reduced to their text; ParseDisplay never fails.
func ParseDisplay(display string) *Document {
	doc := NewDocument()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(display), body)
	if err != nil {
		return doc
	}

	b := &domBuilder{doc: doc}
	b.blocks(nodes, AlignLeft)
	b.flush()
	doc.Normalize()
	return doc
}

// domBuilder collects loose inline content into an implicit paragraph until
// the next block element.
type domBuilder struct {
	doc          *Document
	pending      []Span
	pendingAlign Align
}

func (b *domBuilder) blocks(nodes []*html.Node, align Align) {
	for _, n := range nodes {
		b.block(n, align)
	}
}

func (b *domBuilder) children(n *html.Node, align Align) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.block(c, align)
	}
}

func (b *domBuilder) pend(spans []Span, align Align) {
	if len(b.pending) == 0 {
		b.pendingAlign = align
	}
	b.pending = append(b.pending, spans...)
}

func (b *domBuilder) flush() {
	if strings.TrimSpace(SpansText(b.pending)) != "" {
		p := b.doc.Append(KindParagraph)
		p.Align = b.pendingAlign
		p.Spans = b.pending
	}
	b.pending = nil
}

func (b *domBuilder) block(n *html.Node, align Align) {
	switch n.Type {
	case html.TextNode:
		if len(b.pending) == 0 && strings.TrimSpace(n.Data) == "" {
			return
		}
		b.pend(inlineSpans(n, 0, ""), align)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		b.flush()
		h := b.doc.Append(KindHeading)
		h.Level = min(int(n.Data[1]-'0'), 3)
		h.Text = strings.TrimSpace(singleLine(SpansText(inlineChildren(n, 0, ""))))
		b.doc.adopt(h, attr(n, attrBlock))

	case atom.P:
		b.flush()
		p := b.doc.Append(KindParagraph)
		p.Align = alignOf(n, align)
		p.Spans = inlineChildren(n, 0, "")
		b.doc.adopt(p, attr(n, attrBlock))

	case atom.Ul, atom.Ol:
		b.flush()
		l := b.doc.Append(KindList)
		l.Ordered = n.DataAtom == atom.Ol
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Li {
				l.Items = append(l.Items, inlineChildren(c, 0, ""))
			}
		}
		b.doc.adopt(l, attr(n, attrBlock))

	case atom.Figure, atom.Img:
		b.flush()
		b.image(n)

	case atom.Br:
		b.pend([]Span{{Text: "\n"}}, align)

	case atom.Script, atom.Style, atom.Head, atom.Title:

	case atom.Div, atom.Section, atom.Article, atom.Blockquote, atom.Main, atom.Body, atom.Html, atom.Center:
		if hasClass(n, classBroken) {
			b.flush()
			bi := b.doc.Append(KindBrokenImage)
			bi.Raw = attr(n, attrRaw)
			if bi.Raw == "" {
				bi.Raw = brokenImageLiteral
			}
			bi.Reason = attr(n, attrReason)
			if bi.Reason == "" {
				bi.Reason = defaultBrokenReason
			}
			b.doc.adopt(bi, attr(n, attrBlock))
			return
		}
		b.flush()
		inner := alignOf(n, align)
		if n.DataAtom == atom.Center {
			inner = AlignCenter
		}
		b.children(n, inner)
		b.flush()

	default:
		b.pend(inlineSpans(n, 0, ""), align)
	}
}

func (b *domBuilder) image(n *html.Node) {
	img := n
	if n.DataAtom != atom.Img {
		img = imageSelector.MatchFirst(n)
	}
	src := ""
	if img != nil {
		src = strings.TrimSpace(attr(img, "src"))
	}

	if src == "" {
		bi := b.doc.Append(KindBrokenImage)
		bi.Raw = brokenImageLiteral
		bi.Reason = "image placeholder has no source"
		b.doc.adopt(bi, attr(n, attrBlock))
		return
	}

	im := b.doc.Append(KindImage)
	im.URL = src
	im.Alt = attr(img, "alt")
	if figcaption := captionSelector.MatchFirst(n); figcaption != nil {
		caption := strings.TrimSpace(singleLine(SpansText(inlineChildren(figcaption, 0, ""))))
		if caption != "" {
			im.Caption = &caption
		}
	}
	b.doc.adopt(im, attr(n, attrBlock))
}

func inlineChildren(n *html.Node, marks Mark, href string) []Span {
	var out []Span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, inlineSpans(c, marks, href)...)
	}
	return NormalizeSpans(out)
}

func inlineSpans(n *html.Node, marks Mark, href string) []Span {
	switch n.Type {
	case html.TextNode:
		return []Span{{Text: strings.ReplaceAll(n.Data, "\n", " "), Marks: marks, Href: href}}
	case html.ElementNode:
	default:
		return nil
	}

	switch n.DataAtom {
	case atom.Br:
		return []Span{{Text: "\n", Marks: marks, Href: href}}
	case atom.Script, atom.Style, atom.Img:
		return nil
	case atom.Strong, atom.B:
		marks |= MarkBold
	case atom.Em, atom.I:
		marks |= MarkItalic
	case atom.S, atom.Del, atom.Strike:
		marks |= MarkStrike
	case atom.A:
		if h := strings.TrimSpace(attr(n, "href")); h != "" && href == "" {
			href = h
		}
	case atom.Span:
		style := strings.ToLower(attr(n, "style"))
		if strings.Contains(style, "font-weight: bold") || strings.Contains(style, "font-weight:bold") || strings.Contains(style, "font-weight: 700") {
			marks |= MarkBold
		}
		if strings.Contains(style, "italic") {
			marks |= MarkItalic
		}
		if strings.Contains(style, "line-through") {
			marks |= MarkStrike
		}
	}
	return inlineChildren(n, marks, href)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func alignOf(n *html.Node, inherited Align) Align {
	if m := textAlignPattern.FindStringSubmatch(strings.ToLower(attr(n, "style"))); m != nil {
		return ParseAlign(m[1])
	}
	if a := attr(n, "align"); a != "" {
		return ParseAlign(a)
	}
	return inherited
}
