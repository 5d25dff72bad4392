package editor

import (
	"strings"

	"github.com/emrgen/thirdplace/internal/markup"
)

func (s *Session) ToggleBold() error {
	return s.toggleMark(markup.MarkBold)
}

func (s *Session) ToggleItalic() error {
	return s.toggleMark(markup.MarkItalic)
}

func (s *Session) ToggleStrikethrough() error {
	return s.toggleMark(markup.MarkStrike)
}

// toggleMark removes the mark when the whole selection already carries it and
// adds it otherwise. A collapsed selection toggles the sticky typing style.
func (s *Session) toggleMark(m markup.Mark) error {
	s.mu.Lock()
	if !s.closed && s.sel.Collapsed() {
		s.typing ^= m
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.apply(true, func() error {
		var targets []segment
		all := true
		for _, seg := range segments(s.doc, s.sel.normalized()) {
			ref := spansRef(s.doc.Blocks[seg.block], seg.item)
			if ref == nil || seg.from == seg.to {
				continue
			}
			_, mid, _ := sliceSpans(*ref, seg.from, seg.to)
			for _, sp := range mid {
				if !sp.Marks.Has(m) {
					all = false
				}
			}
			targets = append(targets, seg)
		}
		if len(targets) == 0 {
			return errNoChange
		}

		for _, seg := range targets {
			ref := spansRef(s.doc.Blocks[seg.block], seg.item)
			before, mid, after := sliceSpans(*ref, seg.from, seg.to)
			for i := range mid {
				if all {
					mid[i].Marks &^= m
				} else {
					mid[i].Marks |= m
				}
			}
			*ref = joinSpans(before, mid, after)
		}
		return nil
	})
}

// SetHeading turns the selection, or the block under the cursor, into a
// heading of the given level.
func (s *Session) SetHeading(level int) error {
	if level < 1 || level > 3 {
		return ErrInvalidHeadingLevel
	}

	return s.apply(true, func() error {
		sel := s.sel.normalized()
		if len(s.doc.Blocks) == 0 {
			return errNoChange
		}

		if sel.Start.Block != sel.End.Block {
			changed := false
			for bi := sel.Start.Block; bi <= sel.End.Block && bi < len(s.doc.Blocks); bi++ {
				b := s.doc.Blocks[bi]
				switch b.Kind {
				case markup.KindParagraph:
					b.Kind = markup.KindHeading
					b.Text = strings.TrimSpace(strings.ReplaceAll(markup.SpansText(b.Spans), "\n", " "))
					b.Spans = nil
					b.Level = level
					changed = true
				case markup.KindHeading:
					b.Level = level
					changed = true
				}
			}
			if !changed {
				return errNoChange
			}
			return nil
		}

		i := sel.Start.Block
		b := s.doc.Blocks[i]
		switch b.Kind {
		case markup.KindHeading:
			b.Level = level
			return nil

		case markup.KindParagraph:
			if sel.Collapsed() {
				b.Kind = markup.KindHeading
				b.Text = strings.TrimSpace(strings.ReplaceAll(markup.SpansText(b.Spans), "\n", " "))
				b.Spans = nil
				b.Level = level
				s.sel = Cursor(Point{Block: i, Offset: runeLen(b.Text)})
				return nil
			}
			before, mid, after := sliceSpans(b.Spans, sel.Start.Offset, sel.End.Offset)
			h := s.newHeading(level, markup.SpansText(mid))
			blocks := []*markup.Block{}
			if strings.TrimSpace(markup.SpansText(before)) != "" {
				p := s.doc.NewBlock(markup.KindParagraph)
				p.Align = b.Align
				p.Spans = markup.NormalizeSpans(before)
				blocks = append(blocks, p)
			}
			at := i + len(blocks)
			blocks = append(blocks, h)
			if strings.TrimSpace(markup.SpansText(after)) != "" {
				p := s.doc.NewBlock(markup.KindParagraph)
				p.Align = b.Align
				p.Spans = markup.NormalizeSpans(after)
				blocks = append(blocks, p)
			}
			s.doc.Replace(i, blocks...)
			s.sel = Cursor(Point{Block: at, Offset: runeLen(h.Text)})
			return nil

		case markup.KindList:
			item := clamp(sel.Start.Item, 0, len(b.Items)-1)
			if len(b.Items) == 0 {
				return errNoChange
			}
			text := markup.SpansText(b.Items[item])
			if !sel.Collapsed() && sel.Start.Item == sel.End.Item {
				_, mid, _ := sliceSpans(b.Items[item], sel.Start.Offset, sel.End.Offset)
				text = markup.SpansText(mid)
			}
			at := s.splitListAt(i, item, s.newHeading(level, text))
			s.sel = Cursor(Point{Block: at, Offset: runeLen(s.doc.Blocks[at].Text)})
			return nil
		}
		return errNoChange
	})
}

func (s *Session) newHeading(level int, text string) *markup.Block {
	h := s.doc.NewBlock(markup.KindHeading)
	h.Level = level
	h.Text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	return h
}

// splitListAt replaces item of the list at index i with block, splitting the
// list around it. It returns the new index of block.
func (s *Session) splitListAt(i, item int, block *markup.Block) int {
	list := s.doc.Blocks[i]
	tail := list.Items[item+1:]
	list.Items = list.Items[:item]

	blocks := []*markup.Block{}
	if len(list.Items) > 0 {
		blocks = append(blocks, list)
	}
	at := i + len(blocks)
	blocks = append(blocks, block)
	if len(tail) > 0 {
		rest := s.doc.NewBlock(markup.KindList)
		rest.Ordered = list.Ordered
		rest.Items = append([][]markup.Span(nil), tail...)
		blocks = append(blocks, rest)
	}
	s.doc.Replace(i, blocks...)
	return at
}

// ToggleList wraps the selected blocks in a list of the given kind, or
// unwraps them when they already are one.
func (s *Session) ToggleList(ordered bool) error {
	return s.apply(true, func() error {
		if len(s.doc.Blocks) == 0 {
			return errNoChange
		}
		sel := s.sel.normalized()
		first := clamp(sel.Start.Block, 0, len(s.doc.Blocks)-1)
		last := clamp(sel.End.Block, first, len(s.doc.Blocks)-1)

		eligible, same := 0, 0
		for _, b := range s.doc.Blocks[first : last+1] {
			switch b.Kind {
			case markup.KindParagraph, markup.KindHeading:
				eligible++
			case markup.KindList:
				eligible++
				if b.Ordered == ordered {
					same++
				}
			}
		}
		if eligible == 0 {
			return errNoChange
		}
		unwrap := same == eligible

		var out []*markup.Block
		appendItems := func(items [][]markup.Span) {
			if n := len(out); n > 0 && out[n-1].Kind == markup.KindList && out[n-1].Ordered == ordered {
				out[n-1].Items = append(out[n-1].Items, items...)
				return
			}
			l := s.doc.NewBlock(markup.KindList)
			l.Ordered = ordered
			l.Items = items
			out = append(out, l)
		}

		for _, b := range s.doc.Blocks[first : last+1] {
			switch {
			case unwrap && b.Kind == markup.KindList:
				for _, item := range b.Items {
					p := s.doc.NewBlock(markup.KindParagraph)
					p.Spans = item
					out = append(out, p)
				}
			case unwrap:
				out = append(out, b)
			case b.Kind == markup.KindParagraph:
				appendItems(splitLines(b.Spans))
			case b.Kind == markup.KindHeading:
				appendItems([][]markup.Span{{{Text: b.Text}}})
			case b.Kind == markup.KindList:
				appendItems(b.Items)
			default:
				out = append(out, b)
			}
		}

		rest := append([]*markup.Block{}, s.doc.Blocks[last+1:]...)
		s.doc.Blocks = append(append(s.doc.Blocks[:first], out...), rest...)
		s.sel = Cursor(s.clampPoint(Point{Block: first}))
		return nil
	})
}

// splitLines turns hard breaks into separate list items.
func splitLines(spans []markup.Span) [][]markup.Span {
	items := [][]markup.Span{nil}
	for _, sp := range spans {
		parts := strings.Split(sp.Text, "\n")
		for j, part := range parts {
			if j > 0 {
				items = append(items, nil)
			}
			if part != "" {
				cp := sp
				cp.Text = part
				items[len(items)-1] = append(items[len(items)-1], cp)
			}
		}
	}
	return items
}

// SetAlignment aligns the paragraphs touched by the selection.
func (s *Session) SetAlignment(align markup.Align) error {
	return s.apply(true, func() error {
		if len(s.doc.Blocks) == 0 {
			return errNoChange
		}
		sel := s.sel.normalized()
		changed := false
		for bi := max(sel.Start.Block, 0); bi <= sel.End.Block && bi < len(s.doc.Blocks); bi++ {
			b := s.doc.Blocks[bi]
			if b.Kind == markup.KindParagraph && b.Align != align {
				b.Align = align
				changed = true
			}
		}
		if !changed {
			return errNoChange
		}
		return nil
	})
}

// InsertLink replaces the selection with a link followed by a space, or
// appends it at the end of the document when nothing is selected.
func (s *Session) InsertLink(text, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrLinkURLRequired
	}

	return s.apply(true, func() error {
		sel := s.sel.normalized()
		if !sel.Collapsed() && sel.Start.Block < len(s.doc.Blocks) &&
			s.doc.Blocks[sel.Start.Block].Kind == markup.KindHeading {
			return ErrLinkInHeading
		}
		selected := ""
		if !sel.Collapsed() {
			selected = s.deleteSelection(sel)
		}

		if text = strings.TrimSpace(text); text == "" {
			text = strings.TrimSpace(selected)
		}
		if text == "" {
			text = DefaultLinkText
		}
		link := []markup.Span{{Text: text, Href: url}, {Text: " "}}

		if !sel.Collapsed() && sel.Start.Block < len(s.doc.Blocks) {
			b := s.doc.Blocks[sel.Start.Block]
			if ref := spansRef(b, sel.Start.Item); ref != nil {
				before, after := splitSpans(*ref, sel.Start.Offset)
				*ref = joinSpans(before, link, after)
				p := sel.Start
				p.Offset += runeLen(text) + 1
				s.sel = Cursor(p)
				return nil
			}
		}

		var last *markup.Block
		if n := len(s.doc.Blocks); n > 0 {
			last = s.doc.Blocks[n-1]
		}
		if last == nil || last.Kind != markup.KindParagraph {
			last = s.doc.Append(markup.KindParagraph)
		}
		last.Spans = joinSpans(last.Spans, link)
		s.sel = Cursor(s.endPoint())
		return nil
	})
}

// deleteSelection removes the selected text from every container it spans
// and returns it. Blocks are never merged.
func (s *Session) deleteSelection(sel Selection) string {
	var parts []string
	for _, seg := range segments(s.doc, sel) {
		b := s.doc.Blocks[seg.block]
		if b.Kind == markup.KindHeading {
			r := []rune(b.Text)
			parts = append(parts, string(r[seg.from:seg.to]))
			b.Text = string(r[:seg.from]) + string(r[seg.to:])
			continue
		}
		ref := spansRef(b, seg.item)
		if ref == nil {
			continue
		}
		before, mid, after := sliceSpans(*ref, seg.from, seg.to)
		parts = append(parts, markup.SpansText(mid))
		*ref = joinSpans(before, after)
	}
	s.sel = Cursor(s.clampPoint(sel.Start))
	return strings.Join(parts, " ")
}

// InsertImage appends an image and an empty paragraph to keep typing in.
func (s *Session) InsertImage(url, caption string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrImageURLRequired
	}

	return s.apply(true, func() error {
		img := s.doc.Append(markup.KindImage)
		img.URL = url
		if caption = strings.TrimSpace(caption); caption != "" {
			img.Alt = caption
			img.Caption = &caption
		}
		s.doc.Append(markup.KindParagraph)
		s.sel = Cursor(Point{Block: len(s.doc.Blocks) - 1})
		return nil
	})
}

// EditCaption sets the caption of the image block with the given id. An
// empty caption removes it.
func (s *Session) EditCaption(blockID, caption string) error {
	return s.apply(true, func() error {
		b, _, ok := s.doc.Block(blockID)
		if !ok || b.Kind != markup.KindImage {
			return ErrBlockNotFound
		}
		if caption = strings.TrimSpace(caption); caption == "" {
			b.Caption = nil
		} else {
			b.Caption = &caption
		}
		return nil
	})
}

// Undo restores the previous snapshot. It reports whether there was one.
func (s *Session) Undo() bool {
	return s.restore(s.history.Undo)
}

// Redo reapplies the most recently undone snapshot.
func (s *Session) Redo() bool {
	return s.restore(s.history.Redo)
}

func (s *Session) restore(step func(current string) (string, bool)) bool {
	restored := false
	_ = s.apply(false, func() error {
		md, ok := step(markup.RenderMarkdown(s.doc))
		if !ok {
			return errNoChange
		}
		s.doc = markup.Parse(md)
		s.sel = Cursor(s.endPoint())
		s.typing = 0
		restored = true
		return nil
	})
	return restored
}
