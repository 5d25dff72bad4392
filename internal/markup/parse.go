package markup

import (
	"strings"
)

// Parse reads the storage form into a Document. Constructs that do not match
// the grammar are kept as literal text; Parse never fails.
func Parse(markdown string) *Document {
	text := strings.ReplaceAll(markdown, "\r\n", "\n")
	p := &blockParser{doc: NewDocument()}
	p.parse(strings.Split(text, "\n"))
	p.doc.Normalize()
	return p.doc
}

type blockParser struct {
	doc *Document
}

func (p *blockParser) parse(lines []string) {
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		consumed := 0
		for _, rule := range blockRules {
			if consumed = rule.parse(p, lines, i); consumed > 0 {
				break
			}
		}
		if consumed == 0 {
			consumed = p.paragraph(lines, i)
		}
		i += consumed
	}
}

func (p *blockParser) heading(lines []string, i int) int {
	m := headingPattern.FindStringSubmatch(lines[i])
	if m == nil {
		return 0
	}
	b := p.doc.Append(KindHeading)
	b.Level = len(m[1])
	b.Text = SpansText(parseInline(m[2]))
	return 1
}

func (p *blockParser) image(lines []string, i int) int {
	m := imagePattern.FindStringSubmatch(lines[i])
	if m == nil || m[2] == "" {
		return 0
	}
	b := p.doc.Append(KindImage)
	b.Alt = unescapeAlt(m[1])
	b.URL = m[2]
	if i+1 < len(lines) {
		if caption, ok := captionLine(lines[i+1]); ok {
			b.Caption = &caption
			return 2
		}
	}
	return 1
}

// captionLine accepts a line that is one italic run and nothing else.
func captionLine(line string) (string, bool) {
	if len(line) < 3 || !strings.HasPrefix(line, "*") || strings.HasPrefix(line, "**") || !strings.HasSuffix(line, "*") {
		return "", false
	}
	spans := parseInline(line)
	if len(spans) == 0 {
		return "", false
	}
	for _, s := range spans {
		if s.Marks != MarkItalic || s.Href != "" {
			return "", false
		}
	}
	return SpansText(spans), true
}

func (p *blockParser) brokenImage(lines []string, i int) int {
	line := strings.TrimSpace(lines[i])
	if !isBrokenImage(line) {
		return 0
	}
	b := p.doc.Append(KindBrokenImage)
	b.Raw = line
	switch {
	case line == brokenImageLiteral:
		b.Reason = "image placeholder has no source"
	case brokenImagePattern.MatchString(line):
		b.Reason = "image is missing its url"
	case strings.HasSuffix(line, "()"):
		b.Reason = "image url is empty"
	default:
		b.Reason = defaultBrokenReason
	}
	return 1
}

func (p *blockParser) list(lines []string, i int) int {
	kind := listMarker(lines[i])
	if kind == listNone {
		return 0
	}
	b := p.doc.Append(KindList)
	b.Ordered = kind == listOrdered

	n := 0
	for i+n < len(lines) && listMarker(lines[i+n]) == kind {
		var text string
		if kind == listOrdered {
			text = orderedPattern.FindStringSubmatch(lines[i+n])[2]
		} else {
			text = unorderedPattern.FindStringSubmatch(lines[i+n])[1]
		}
		b.Items = append(b.Items, parseInline(text))
		n++
	}
	return n
}

func (p *blockParser) alignContainer(lines []string, i int) int {
	m := alignOpenPattern.FindStringSubmatch(lines[i])
	if m == nil {
		return 0
	}
	b := p.doc.Append(KindParagraph)
	b.Align = ParseAlign(m[1])

	rest := m[2]
	if idx := strings.Index(rest, alignCloseTag); idx >= 0 {
		b.Spans = parseInline(rest[:idx])
		return 1
	}

	content := []string{}
	if rest != "" {
		content = append(content, rest)
	}
	n := 1
	for ; i+n < len(lines); n++ {
		line := lines[i+n]
		if idx := strings.Index(line, alignCloseTag); idx >= 0 {
			if line[:idx] != "" {
				content = append(content, line[:idx])
			}
			n++
			break
		}
		content = append(content, line)
	}
	b.Spans = parseInline(strings.Join(content, "\n"))
	return n
}

func (p *blockParser) paragraph(lines []string, i int) int {
	n := 1
	for i+n < len(lines) {
		line := lines[i+n]
		if strings.TrimSpace(line) == "" || startsBlock(line) {
			break
		}
		n++
	}
	b := p.doc.Append(KindParagraph)
	b.Spans = parseInline(strings.Join(lines[i:i+n], "\n"))
	return n
}

// parseInline splits text into styled spans.
func parseInline(text string) []Span {
	p := &inlineParser{src: text}
	spans, _, _ := p.seq(0, "", 0, false)
	return NormalizeSpans(spans)
}

type inlineParser struct {
	src string
}

// seq parses until term is found at a position where it may close. closed is
// false when the end of input was reached first.
func (p *inlineParser) seq(pos int, term string, marks Mark, inLink bool) (out []Span, end int, closed bool) {
	start := pos
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, Span{Text: buf.String(), Marks: marks})
			buf.Reset()
		}
	}

	for pos < len(p.src) {
		if term != "" && strings.HasPrefix(p.src[pos:], term) && p.canClose(pos, start, term) {
			flush()
			return out, pos + len(term), true
		}

		c := p.src[pos]
		if c == '\\' && pos+1 < len(p.src) && isUnescapable(p.src[pos+1]) {
			buf.WriteByte(p.src[pos+1])
			pos += 2
			continue
		}

		if c == '[' && !inLink {
			if spans, next, ok := p.link(pos, marks); ok {
				flush()
				out = append(out, spans...)
				pos = next
				continue
			}
		}

		if d, ok := p.delimiterAt(pos); ok && !marks.Has(d.mark) && p.canOpen(pos, d.token) {
			inner, next, ok := p.seq(pos+len(d.token), d.token, marks|d.mark, inLink)
			if ok && len(inner) > 0 {
				flush()
				out = append(out, inner...)
				pos = next
				continue
			}
			buf.WriteString(d.token)
			pos += len(d.token)
			continue
		}

		buf.WriteByte(c)
		pos++
	}

	flush()
	return out, pos, false
}

func (p *inlineParser) delimiterAt(pos int) (delimiter, bool) {
	for _, d := range inlineDelimiters {
		if strings.HasPrefix(p.src[pos:], d.token) {
			return d, true
		}
	}
	return delimiter{}, false
}

// canOpen requires a non space character right after the delimiter.
func (p *inlineParser) canOpen(pos int, token string) bool {
	r, ok := firstRune(p.src[pos+len(token):])
	return ok && !isSpace(r)
}

// canClose requires content before the closer and, for emphasis, a non space
// character right before it.
func (p *inlineParser) canClose(pos, start int, term string) bool {
	if pos <= start {
		return false
	}
	if term == "]" {
		return true
	}
	r, ok := lastRune(p.src[:pos])
	return ok && !isSpace(r)
}

// link parses [text](href) starting at the opening bracket.
func (p *inlineParser) link(pos int, marks Mark) ([]Span, int, bool) {
	inner, next, closed := p.seq(pos+1, "]", marks, true)
	if !closed || len(inner) == 0 {
		return nil, pos, false
	}
	if next >= len(p.src) || p.src[next] != '(' {
		return nil, pos, false
	}
	end := destinationEnd(p.src[next+1:])
	if end < 0 {
		return nil, pos, false
	}
	href := strings.TrimSpace(p.src[next+1 : next+1+end])
	if href == "" {
		return nil, pos, false
	}
	for i := range inner {
		inner[i].Href = href
	}
	return inner, next + 1 + end + 1, true
}
