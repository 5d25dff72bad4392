package editor

import (
	"unicode/utf8"

	"github.com/emrgen/thirdplace/internal/markup"
)

// Point addresses a position in the document: a block index, the item index
// for list blocks and a rune offset into that block's or item's text.
type Point struct {
	Block  int
	Item   int
	Offset int
}

func (p Point) before(o Point) bool {
	if p.Block != o.Block {
		return p.Block < o.Block
	}
	if p.Item != o.Item {
		return p.Item < o.Item
	}
	return p.Offset < o.Offset
}

// Selection is an ordered range of the document. A collapsed selection is a cursor.
type Selection struct {
	Start Point
	End   Point
}

// Cursor returns a collapsed selection at p.
func Cursor(p Point) Selection {
	return Selection{Start: p, End: p}
}

func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

func (s Selection) normalized() Selection {
	if s.End.before(s.Start) {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}

// segment is the part of a selection inside one paragraph, heading or list
// item. item is -1 outside lists.
type segment struct {
	block, item int
	from, to    int
}

// segments splits the selection by text container. Images are skipped.
func segments(doc *markup.Document, sel Selection) []segment {
	var out []segment
	start, end := sel.Start, sel.End
	for bi := start.Block; bi <= end.Block && bi < len(doc.Blocks); bi++ {
		if bi < 0 {
			continue
		}
		b := doc.Blocks[bi]
		switch b.Kind {
		case markup.KindParagraph, markup.KindHeading:
			n := textLen(b, -1)
			from, to := 0, n
			if bi == start.Block {
				from = clamp(start.Offset, 0, n)
			}
			if bi == end.Block {
				to = clamp(end.Offset, 0, n)
			}
			out = append(out, segment{block: bi, item: -1, from: from, to: max(from, to)})

		case markup.KindList:
			first, last := 0, len(b.Items)-1
			if bi == start.Block {
				first = clamp(start.Item, 0, last)
			}
			if bi == end.Block {
				last = clamp(end.Item, 0, last)
			}
			for ii := first; ii <= last; ii++ {
				n := textLen(b, ii)
				from, to := 0, n
				if bi == start.Block && ii == start.Item {
					from = clamp(start.Offset, 0, n)
				}
				if bi == end.Block && ii == end.Item {
					to = clamp(end.Offset, 0, n)
				}
				out = append(out, segment{block: bi, item: ii, from: from, to: max(from, to)})
			}
		}
	}
	return out
}

// spansRef returns the spans holding the text of a paragraph or list item.
func spansRef(b *markup.Block, item int) *[]markup.Span {
	switch b.Kind {
	case markup.KindParagraph:
		return &b.Spans
	case markup.KindList:
		if item >= 0 && item < len(b.Items) {
			return &b.Items[item]
		}
	}
	return nil
}

func textLen(b *markup.Block, item int) int {
	if b.Kind == markup.KindHeading {
		return utf8.RuneCountInString(b.Text)
	}
	if ref := spansRef(b, item); ref != nil {
		return spansLen(*ref)
	}
	return 0
}

func spansLen(spans []markup.Span) int {
	n := 0
	for _, s := range spans {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// splitSpans splits spans at a rune offset.
func splitSpans(spans []markup.Span, offset int) (before, after []markup.Span) {
	pos := 0
	for _, sp := range spans {
		n := utf8.RuneCountInString(sp.Text)
		switch {
		case pos+n <= offset:
			before = append(before, sp)
		case pos >= offset:
			after = append(after, sp)
		default:
			r := []rune(sp.Text)
			left, right := sp, sp
			left.Text = string(r[:offset-pos])
			right.Text = string(r[offset-pos:])
			before = append(before, left)
			after = append(after, right)
		}
		pos += n
	}
	return before, after
}

func sliceSpans(spans []markup.Span, from, to int) (before, mid, after []markup.Span) {
	before, rest := splitSpans(spans, from)
	mid, after = splitSpans(rest, to-from)
	return before, mid, after
}

func joinSpans(parts ...[]markup.Span) []markup.Span {
	var out []markup.Span
	for _, p := range parts {
		out = append(out, p...)
	}
	return markup.NormalizeSpans(out)
}

// marksAt returns the marks of the character before offset.
func marksAt(spans []markup.Span, offset int) markup.Mark {
	if offset <= 0 {
		if len(spans) > 0 {
			return spans[0].Marks
		}
		return 0
	}
	before, _ := splitSpans(spans, offset)
	if len(before) == 0 {
		return 0
	}
	return before[len(before)-1].Marks
}

func insertRunes(s string, offset int, text string) string {
	r := []rune(s)
	offset = clamp(offset, 0, len(r))
	return string(r[:offset]) + text + string(r[offset:])
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
