package markup

import (
	"strconv"
	"strings"
	"unicode"
)

// RenderMarkdown writes the document in storage form.
func RenderMarkdown(doc *Document) string {
	var sb strings.Builder
	for _, b := range doc.Blocks {
		switch b.Kind {
		case KindHeading:
			level := min(max(b.Level, 1), 3)
			text := strings.TrimSpace(singleLine(b.Text))
			if text == "" {
				continue
			}
			sb.WriteString(strings.Repeat("#", level) + " " + escapeText(text) + "\n\n")

		case KindParagraph:
			content := renderSpans(b.Spans)
			if strings.TrimSpace(content) == "" {
				continue
			}
			content = escapeLineStarts(content)
			if b.Align == AlignCenter || b.Align == AlignRight {
				sb.WriteString(`<div align="` + string(b.Align) + `">` + content + alignCloseTag + "\n\n")
				continue
			}
			sb.WriteString(content + "\n\n")

		case KindList:
			n := 0
			for _, item := range b.Items {
				text := strings.TrimSpace(renderSpans(singleLineSpans(item)))
				if text == "" {
					continue
				}
				n++
				if b.Ordered {
					sb.WriteString(strconv.Itoa(n) + ". " + text + "\n")
				} else {
					sb.WriteString("* " + text + "\n")
				}
			}
			sb.WriteString("\n")

		case KindImage:
			if b.URL == "" {
				continue
			}
			sb.WriteString("![" + escapeAlt(b.Alt) + "](" + imageDestination(b.URL) + ")\n")
			if b.Caption != nil {
				if caption := strings.TrimSpace(singleLine(*b.Caption)); caption != "" {
					sb.WriteString("*" + escapeText(caption) + "*\n")
				}
			}
			sb.WriteString("\n")

		case KindBrokenImage:
			sb.WriteString(b.Raw + "\n\n")
		}
	}
	return finalize(sb.String())
}

// finalize collapses runs of blank lines and trims the result.
func finalize(s string) string {
	return strings.TrimSpace(blankRunPattern.ReplaceAllString(s, "\n\n"))
}

func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func singleLineSpans(spans []Span) []Span {
	out := make([]Span, len(spans))
	for i, s := range spans {
		s.Text = singleLine(s.Text)
		out[i] = s
	}
	return out
}

// wrapper is a construct enclosing a run of spans. The order breaks ties
// between runs of equal length, outermost first.
type wrapper int

const (
	wrapNone wrapper = iota
	wrapLink
	wrapStrike
	wrapBold
	wrapItalic
)

var wrapperMarks = []struct {
	wrap wrapper
	mark Mark
}{
	{wrapStrike, MarkStrike},
	{wrapBold, MarkBold},
	{wrapItalic, MarkItalic},
}

func renderSpans(spans []Span) string {
	return renderRun(NormalizeSpans(spans), 0, false)
}

// renderRun groups consecutive spans sharing a mark or link so nested
// emphasis is written once around the whole run.
func renderRun(spans []Span, active Mark, inLink bool) string {
	var sb strings.Builder
	for i := 0; i < len(spans); {
		w, n := pickWrapper(spans, i, active, inLink)
		if w == wrapNone {
			sb.WriteString(escapeText(spans[i].Text))
			i++
			continue
		}

		run := spans[i : i+n]
		switch w {
		case wrapLink:
			inner := renderRun(run, active, true)
			if strings.TrimSpace(inner) == "" {
				sb.WriteString(inner)
			} else {
				sb.WriteString("[" + inner + "](" + linkDestination(run[0].Href) + ")")
			}
		default:
			mark := markOf(w)
			sb.WriteString(wrapEmphasis(renderRun(run, active|mark, inLink), tokenOf(mark)))
		}
		i += n
	}
	return sb.String()
}

func pickWrapper(spans []Span, i int, active Mark, inLink bool) (wrapper, int) {
	best, bestLen := wrapNone, 0

	if !inLink && spans[i].Href != "" {
		n := 0
		for i+n < len(spans) && spans[i+n].Href == spans[i].Href {
			n++
		}
		best, bestLen = wrapLink, n
	}

	for _, wm := range wrapperMarks {
		if active.Has(wm.mark) || !spans[i].Marks.Has(wm.mark) {
			continue
		}
		n := 0
		for i+n < len(spans) && spans[i+n].Marks.Has(wm.mark) {
			n++
		}
		if n > bestLen {
			best, bestLen = wm.wrap, n
		}
	}
	return best, bestLen
}

func markOf(w wrapper) Mark {
	for _, wm := range wrapperMarks {
		if wm.wrap == w {
			return wm.mark
		}
	}
	return 0
}

func tokenOf(m Mark) string {
	for _, d := range inlineDelimiters {
		if d.mark == m {
			return d.token
		}
	}
	return ""
}

// wrapEmphasis moves edge whitespace outside the delimiters; whitespace only
// content is never wrapped.
func wrapEmphasis(inner, token string) string {
	core := strings.TrimFunc(inner, unicode.IsSpace)
	if core == "" {
		return inner
	}
	lead := inner[:strings.Index(inner, core)]
	trail := inner[len(lead)+len(core):]
	return lead + token + core + token + trail
}
