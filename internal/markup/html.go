package markup

import (
	"fmt"
	"html"
	"strings"
)

// Attributes shared by the display renderer and parser.
const (
	attrBlock         = "data-block"
	attrRaw           = "data-raw"
	attrReason        = "data-reason"
	attrAction        = "data-action"
	classImage        = "image-block"
	classCaption      = "image-caption"
	classBroken       = "broken-image"
	actionEditCaption = "edit-caption"
	brokenImageIcon   = "⚠"
	unsafeImageReason = "image url is not allowed"
)

// RenderDisplay writes the document in display form.
func RenderDisplay(doc *Document) string {
	var sb strings.Builder
	for _, b := range doc.Blocks {
		id := html.EscapeString(b.ID)
		switch b.Kind {
		case KindHeading:
			level := min(max(b.Level, 1), 3)
			fmt.Fprintf(&sb, `<h%d %s="%s">%s</h%d>`, level, attrBlock, id, html.EscapeString(b.Text), level)

		case KindParagraph:
			style := ""
			if b.Align == AlignCenter || b.Align == AlignRight {
				style = fmt.Sprintf(` style="text-align:%s"`, b.Align)
			}
			fmt.Fprintf(&sb, `<p %s="%s"%s>%s</p>`, attrBlock, id, style, renderInlineHTML(b.Spans))

		case KindList:
			tag := "ul"
			if b.Ordered {
				tag = "ol"
			}
			fmt.Fprintf(&sb, `<%s %s="%s">`, tag, attrBlock, id)
			for _, item := range b.Items {
				sb.WriteString("<li>" + renderInlineHTML(item) + "</li>")
			}
			sb.WriteString("</" + tag + ">")

		case KindImage:
			src := safeURL(b.URL)
			if src == "" {
				raw := "![" + escapeAlt(b.Alt) + "](" + imageDestination(b.URL) + ")"
				fmt.Fprintf(&sb, `<div class="%s" %s="%s" %s="%s" %s="%s">%s %s</div>`,
					classBroken, attrBlock, id, attrRaw, html.EscapeString(raw), attrReason, unsafeImageReason,
					brokenImageIcon, unsafeImageReason)
				continue
			}
			fmt.Fprintf(&sb, `<figure class="%s" %s="%s"><img src="%s" alt="%s">`,
				classImage, attrBlock, id, html.EscapeString(src), html.EscapeString(b.Alt))
			if b.Caption != nil && *b.Caption != "" {
				fmt.Fprintf(&sb, `<figcaption class="%s" %s="%s">%s</figcaption>`,
					classCaption, attrAction, actionEditCaption, html.EscapeString(*b.Caption))
			}
			sb.WriteString("</figure>")

		case KindBrokenImage:
			fmt.Fprintf(&sb, `<div class="%s" %s="%s" %s="%s" %s="%s">%s %s</div>`,
				classBroken, attrBlock, id, attrRaw, html.EscapeString(b.Raw), attrReason, html.EscapeString(b.Reason),
				brokenImageIcon, html.EscapeString(b.Reason))
		}
	}
	return sb.String()
}

func renderInlineHTML(spans []Span) string {
	var sb strings.Builder
	for _, s := range NormalizeSpans(spans) {
		text := strings.ReplaceAll(html.EscapeString(s.Text), "\n", "<br>")
		if s.Marks.Has(MarkItalic) {
			text = "<em>" + text + "</em>"
		}
		if s.Marks.Has(MarkBold) {
			text = "<strong>" + text + "</strong>"
		}
		if s.Marks.Has(MarkStrike) {
			text = "<s>" + text + "</s>"
		}
		if href := safeURL(s.Href); href != "" {
			text = `<a href="` + html.EscapeString(href) + `">` + text + "</a>"
		}
		sb.WriteString(text)
	}
	return sb.String()
}
