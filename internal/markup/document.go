package markup

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockKind is the kind of a top level block in a Document.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindList
	KindImage
	KindBrokenImage
)

func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindImage:
		return "image"
	case KindBrokenImage:
		return "broken-image"
	default:
		return "unknown"
	}
}

// Align is the horizontal alignment of a paragraph.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign returns the alignment named by s, defaulting to left.
func ParseAlign(s string) Align {
	switch Align(strings.ToLower(strings.TrimSpace(s))) {
	case AlignCenter:
		return AlignCenter
	case AlignRight:
		return AlignRight
	default:
		return AlignLeft
	}
}

// Mark is a set of inline formatting flags.
type Mark uint8

const (
	MarkBold Mark = 1 << iota
	MarkItalic
	MarkStrike
)

// Has reports whether all flags of o are set in m.
func (m Mark) Has(o Mark) bool {
	return m&o == o
}

// Span is a run of text sharing the same formatting. A non-empty Href makes
// the span part of a link.
type Span struct {
	Text  string
	Marks Mark
	Href  string
}

// SameStyle reports whether two spans can be merged into one.
func (s Span) SameStyle(o Span) bool {
	return s.Marks == o.Marks && s.Href == o.Href
}

// Block is a top level element of a Document. Which fields are meaningful
// depends on Kind.
type Block struct {
	ID   string
	Kind BlockKind

	// heading
	Level int
	Text  string

	// paragraph
	Spans []Span
	Align Align

	// list
	Ordered bool
	Items   [][]Span

	// image
	URL     string
	Alt     string
	Caption *string

	// broken image, Raw is kept verbatim in storage form
	Raw    string
	Reason string
}

// Document is the structured form both text representations convert through.
type Document struct {
	Blocks []*Block
	nextID int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// NewBlock creates a block with a fresh id. The block is not added to the document.
func (d *Document) NewBlock(kind BlockKind) *Block {
	d.nextID++
	return &Block{ID: "b" + strconv.Itoa(d.nextID), Kind: kind, Align: AlignLeft}
}

// Append creates a block of the given kind at the end of the document.
func (d *Document) Append(kind BlockKind) *Block {
	b := d.NewBlock(kind)
	d.Blocks = append(d.Blocks, b)
	return b
}

// adopt keeps an id that came from the display form, falling back to a fresh one.
func (d *Document) adopt(b *Block, id string) {
	if id == "" {
		return
	}
	for _, other := range d.Blocks {
		if other.ID == id {
			return
		}
	}
	b.ID = id
	if n, err := strconv.Atoi(strings.TrimPrefix(id, "b")); err == nil && n > d.nextID {
		d.nextID = n
	}
}

// Block returns the block with the given id.
func (d *Document) Block(id string) (*Block, int, bool) {
	for i, b := range d.Blocks {
		if b.ID == id {
			return b, i, true
		}
	}
	return nil, -1, false
}

// Insert places blocks at index i.
func (d *Document) Insert(i int, blocks ...*Block) {
	if i < 0 {
		i = 0
	}
	if i > len(d.Blocks) {
		i = len(d.Blocks)
	}
	rest := append([]*Block{}, d.Blocks[i:]...)
	d.Blocks = append(append(d.Blocks[:i], blocks...), rest...)
}

// Replace swaps the block at index i for the given blocks.
func (d *Document) Replace(i int, blocks ...*Block) {
	rest := append([]*Block{}, d.Blocks[i+1:]...)
	d.Blocks = append(append(d.Blocks[:i], blocks...), rest...)
}

// Clone returns a deep copy of the document, ids included.
func (d *Document) Clone() *Document {
	out := &Document{nextID: d.nextID, Blocks: make([]*Block, 0, len(d.Blocks))}
	for _, b := range d.Blocks {
		out.Blocks = append(out.Blocks, b.Clone())
	}
	return out
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() *Block {
	c := *b
	c.Spans = append([]Span(nil), b.Spans...)
	if b.Items != nil {
		c.Items = make([][]Span, len(b.Items))
		for i, item := range b.Items {
			c.Items[i] = append([]Span(nil), item...)
		}
	}
	if b.Caption != nil {
		caption := *b.Caption
		c.Caption = &caption
	}
	return &c
}

// PlainText returns the text of the block with all markup stripped.
func (b *Block) PlainText() string {
	switch b.Kind {
	case KindHeading:
		return b.Text
	case KindParagraph:
		return SpansText(b.Spans)
	case KindList:
		lines := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			lines = append(lines, SpansText(item))
		}
		return strings.Join(lines, "\n")
	case KindImage:
		if b.Caption != nil {
			return *b.Caption
		}
	}
	return ""
}

// PlainText returns the text content of the whole document, one block per line.
func (d *Document) PlainText() string {
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if text := b.PlainText(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// Normalize merges adjacent spans of equal style and drops empty ones.
func (d *Document) Normalize() {
	for _, b := range d.Blocks {
		b.Spans = NormalizeSpans(b.Spans)
		for i := range b.Items {
			b.Items[i] = NormalizeSpans(b.Items[i])
		}
	}
}

func (d *Document) String() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		fmt.Fprintf(&sb, "%s[%s] %q\n", b.Kind, b.ID, b.PlainText())
	}
	return sb.String()
}

// SpansText concatenates the text of the spans.
func SpansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// NormalizeSpans merges adjacent spans of equal style and drops empty ones.
func NormalizeSpans(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].SameStyle(s) {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}
