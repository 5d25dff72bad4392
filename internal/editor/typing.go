package editor

import (
	"strings"

	"github.com/emrgen/thirdplace/internal/markup"
)

// InsertText types text at the cursor, replacing any selection. Newlines
// become hard breaks; use SplitBlock to start a new block.
func (s *Session) InsertText(text string) error {
	if text == "" {
		return nil
	}
	return s.typed(func() error {
		if sel := s.sel.normalized(); !sel.Collapsed() {
			s.deleteSelection(sel)
		}
		if len(s.doc.Blocks) == 0 {
			s.doc.Append(markup.KindParagraph)
			s.sel = Cursor(Point{})
		}

		p := s.clampPoint(s.sel.Start)
		b := s.doc.Blocks[p.Block]
		switch b.Kind {
		case markup.KindHeading:
			line := strings.ReplaceAll(text, "\n", " ")
			b.Text = insertRunes(b.Text, p.Offset, line)
			p.Offset += runeLen(line)

		case markup.KindParagraph, markup.KindList:
			if b.Kind == markup.KindList && len(b.Items) == 0 {
				b.Items = [][]markup.Span{nil}
				p.Item = 0
			}
			ref := spansRef(b, p.Item)
			marks := marksAt(*ref, p.Offset) ^ s.typing
			before, after := splitSpans(*ref, p.Offset)
			*ref = joinSpans(before, []markup.Span{{Text: text, Marks: marks}}, after)
			p.Offset += runeLen(text)

		default:
			para := s.doc.NewBlock(markup.KindParagraph)
			para.Spans = []markup.Span{{Text: text, Marks: s.typing}}
			s.doc.Insert(p.Block+1, para)
			p = Point{Block: p.Block + 1, Offset: runeLen(text)}
		}

		s.typing = 0
		s.sel = Cursor(p)
		return nil
	})
}

// DeleteBackward removes the selection or the character before the cursor.
// At the start of an empty paragraph the paragraph itself is removed.
func (s *Session) DeleteBackward() error {
	return s.typed(func() error {
		if sel := s.sel.normalized(); !sel.Collapsed() {
			s.deleteSelection(sel)
			return nil
		}
		if len(s.doc.Blocks) == 0 {
			return errNoChange
		}

		p := s.clampPoint(s.sel.Start)
		b := s.doc.Blocks[p.Block]
		if p.Offset == 0 {
			if b.Kind == markup.KindParagraph && len(b.Spans) == 0 && p.Block > 0 {
				s.doc.Blocks = append(s.doc.Blocks[:p.Block], s.doc.Blocks[p.Block+1:]...)
				s.sel = Cursor(s.clampPoint(Point{Block: p.Block - 1, Item: 1 << 30, Offset: 1 << 30}))
				return nil
			}
			return errNoChange
		}

		switch b.Kind {
		case markup.KindHeading:
			r := []rune(b.Text)
			b.Text = string(r[:p.Offset-1]) + string(r[p.Offset:])
		case markup.KindParagraph, markup.KindList:
			ref := spansRef(b, p.Item)
			before, _, after := sliceSpans(*ref, p.Offset-1, p.Offset)
			*ref = joinSpans(before, after)
		default:
			return errNoChange
		}
		p.Offset--
		s.sel = Cursor(p)
		return nil
	})
}

// SplitBlock starts a new block at the cursor, as the enter key does. An
// empty last list item leaves the list.
func (s *Session) SplitBlock() error {
	return s.typed(func() error {
		if sel := s.sel.normalized(); !sel.Collapsed() {
			s.deleteSelection(sel)
		}
		if len(s.doc.Blocks) == 0 {
			s.doc.Append(markup.KindParagraph)
			s.doc.Append(markup.KindParagraph)
			s.sel = Cursor(Point{Block: 1})
			return nil
		}

		p := s.clampPoint(s.sel.Start)
		b := s.doc.Blocks[p.Block]
		next := s.doc.NewBlock(markup.KindParagraph)

		switch b.Kind {
		case markup.KindParagraph:
			before, after := splitSpans(b.Spans, p.Offset)
			b.Spans = markup.NormalizeSpans(before)
			next.Spans = markup.NormalizeSpans(after)
			next.Align = b.Align

		case markup.KindHeading:
			r := []rune(b.Text)
			b.Text = string(r[:p.Offset])
			next.Spans = markup.NormalizeSpans([]markup.Span{{Text: string(r[p.Offset:])}})

		case markup.KindList:
			if len(b.Items) == 0 {
				b.Items = [][]markup.Span{nil}
			}
			item := b.Items[p.Item]
			if len(item) == 0 && p.Item == len(b.Items)-1 {
				b.Items = b.Items[:p.Item]
				if len(b.Items) == 0 {
					s.doc.Replace(p.Block, next)
					s.sel = Cursor(Point{Block: p.Block})
					return nil
				}
				break
			}
			before, after := splitSpans(item, p.Offset)
			items := append([][]markup.Span{}, b.Items[:p.Item]...)
			items = append(items, markup.NormalizeSpans(before), markup.NormalizeSpans(after))
			b.Items = append(items, b.Items[p.Item+1:]...)
			s.sel = Cursor(Point{Block: p.Block, Item: p.Item + 1})
			return nil
		}

		s.doc.Insert(p.Block+1, next)
		s.sel = Cursor(Point{Block: p.Block + 1})
		return nil
	})
}
