package editor

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emrgen/thirdplace/internal/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) onChange(md string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, md)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func sel(block, from, to int) Selection {
	return Selection{Start: Point{Block: block, Offset: from}, End: Point{Block: block, Offset: to}}
}

func TestSession_ToggleBold(t *testing.T) {
	s := New("Hello world", Options{})
	s.Select(sel(0, 6, 11))

	require.NoError(t, s.ToggleBold())
	assert.Equal(t, "Hello **world**", s.Markdown())

	require.NoError(t, s.ToggleBold())
	assert.Equal(t, "Hello world", s.Markdown())
}

func TestSession_ToggleMarks_PartialSelectionAddsMark(t *testing.T) {
	s := New("Hello **world**", Options{})
	s.Select(sel(0, 0, 11))

	require.NoError(t, s.ToggleBold())
	assert.Equal(t, "**Hello world**", s.Markdown())

	require.NoError(t, s.ToggleItalic())
	require.NoError(t, s.ToggleStrikethrough())
	assert.Equal(t, "~~***Hello world***~~", s.Markdown())
}

func TestSession_StickyTypingStyle(t *testing.T) {
	s := New("Hi", Options{})

	require.NoError(t, s.ToggleBold())
	assert.Equal(t, markup.MarkBold, s.TypingMarks())

	require.NoError(t, s.InsertText(" there"))
	assert.Equal(t, "Hi **there**", s.SettleNow())
	assert.Equal(t, markup.Mark(0), s.TypingMarks())
}

func TestSession_SetHeading(t *testing.T) {
	s := New("Title text", Options{})

	assert.ErrorIs(t, s.SetHeading(4), ErrInvalidHeadingLevel)
	assert.ErrorIs(t, s.SetHeading(0), ErrInvalidHeadingLevel)

	require.NoError(t, s.SetHeading(2))
	assert.Equal(t, "## Title text", s.Markdown())

	require.NoError(t, s.SetHeading(1))
	assert.Equal(t, "# Title text", s.Markdown())
}

func TestSession_SetHeading_SplitsParagraph(t *testing.T) {
	s := New("intro **Big** middle outro", Options{})
	s.Select(sel(0, 6, 16))

	require.NoError(t, s.SetHeading(2))

	doc := s.Document()
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, markup.KindParagraph, doc.Blocks[0].Kind)
	assert.Equal(t, markup.KindHeading, doc.Blocks[1].Kind)
	assert.Equal(t, "Big middle", doc.Blocks[1].Text)
	assert.Equal(t, 2, doc.Blocks[1].Level)
	assert.Equal(t, markup.KindParagraph, doc.Blocks[2].Kind)
	assert.Equal(t, " outro", doc.Blocks[2].PlainText())
}

func TestSession_SetHeading_SplitsList(t *testing.T) {
	s := New("* a\n* b\n* c", Options{})
	s.SetCursor(Point{Block: 0, Item: 1, Offset: 1})

	require.NoError(t, s.SetHeading(3))
	assert.Equal(t, "* a\n\n### b\n\n* c", s.Markdown())
}

func TestSession_ToggleList(t *testing.T) {
	s := New("one\n\ntwo", Options{})
	s.Select(Selection{Start: Point{Block: 0}, End: Point{Block: 1, Offset: 3}})

	require.NoError(t, s.ToggleList(false))
	assert.Equal(t, "* one\n* two", s.Markdown())

	require.NoError(t, s.ToggleList(true))
	assert.Equal(t, "1. one\n2. two", s.Markdown())

	require.NoError(t, s.ToggleList(true))
	assert.Equal(t, "one\n\ntwo", s.Markdown())
}

func TestSession_ToggleList_HardBreaksBecomeItems(t *testing.T) {
	s := New("first\nsecond", Options{})
	s.SetCursor(Point{})

	require.NoError(t, s.ToggleList(false))
	assert.Equal(t, "* first\n* second", s.Markdown())
}

func TestSession_SetAlignment(t *testing.T) {
	s := New("Center me", Options{})

	require.NoError(t, s.SetAlignment(markup.AlignCenter))
	assert.Equal(t, `<div align="center">Center me</div>`, s.Markdown())

	require.NoError(t, s.SetAlignment(markup.AlignLeft))
	assert.Equal(t, "Center me", s.Markdown())
}

func TestSession_InsertLink(t *testing.T) {
	t.Run("url is required", func(t *testing.T) {
		s := New("Read more", Options{})
		assert.ErrorIs(t, s.InsertLink("docs", "  "), ErrLinkURLRequired)
		assert.Equal(t, "Read more", s.Markdown())
		assert.False(t, s.CanUndo())
	})

	t.Run("appends at end without selection", func(t *testing.T) {
		s := New("Read more", Options{})
		require.NoError(t, s.InsertLink("", "https://x.io"))
		assert.Equal(t, "Read more[Link text](https://x.io)", s.Markdown())
	})

	t.Run("appends a paragraph after an image", func(t *testing.T) {
		s := New("![a](https://i.io/a.jpg)", Options{})
		require.NoError(t, s.InsertLink("site", "https://x.io"))
		assert.Equal(t, "![a](https://i.io/a.jpg)\n\n[site](https://x.io)", s.Markdown())
	})

	t.Run("replaces the selection", func(t *testing.T) {
		s := New("Visit the cafe today", Options{})
		s.Select(sel(0, 10, 14))

		require.NoError(t, s.InsertLink("", "https://c.io"))
		assert.Equal(t, "Visit the [cafe](https://c.io)  today", s.Markdown())
		assert.Equal(t, Cursor(Point{Block: 0, Offset: 15}), s.Selection())
	})

	t.Run("selection inside a heading is rejected", func(t *testing.T) {
		s := New("# Great cafe\n\nbody", Options{})
		s.Select(sel(0, 6, 10))

		assert.ErrorIs(t, s.InsertLink("", "https://c.io"), ErrLinkInHeading)
		assert.Equal(t, "# Great cafe\n\nbody", s.Markdown())
		assert.False(t, s.CanUndo())
	})

	t.Run("explicit text wins over selection", func(t *testing.T) {
		s := New("Visit the cafe", Options{})
		s.Select(sel(0, 10, 14))

		require.NoError(t, s.InsertLink("Blue Door", "https://c.io"))
		assert.Equal(t, "Visit the [Blue Door](https://c.io)", s.Markdown())
	})
}

func TestSession_InsertImage(t *testing.T) {
	s := New("Intro", Options{})

	assert.ErrorIs(t, s.InsertImage("", "x"), ErrImageURLRequired)

	require.NoError(t, s.InsertImage("https://img/x.jpg", "Nice"))
	assert.Equal(t, "Intro\n\n![Nice](https://img/x.jpg)\n*Nice*", s.Markdown())

	doc := s.Document()
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, markup.KindImage, doc.Blocks[1].Kind)
	assert.Equal(t, markup.KindParagraph, doc.Blocks[2].Kind)
	assert.Equal(t, Cursor(Point{Block: 2}), s.Selection())

	require.NoError(t, s.InsertText("after"))
	assert.Equal(t, "Intro\n\n![Nice](https://img/x.jpg)\n*Nice*\n\nafter", s.SettleNow())
}

func TestSession_EditCaption(t *testing.T) {
	s := New("![Cafe](https://img/c.jpg)\n*Old*", Options{})
	doc := s.Document()
	require.Len(t, doc.Blocks, 1)
	id := doc.Blocks[0].ID

	require.NoError(t, s.EditCaption(id, "New caption"))
	assert.Equal(t, "![Cafe](https://img/c.jpg)\n*New caption*", s.Markdown())

	assert.ErrorIs(t, s.EditCaption("missing", "x"), ErrBlockNotFound)

	require.NoError(t, s.EditCaption(id, ""))
	assert.Equal(t, "![Cafe](https://img/c.jpg)", s.Markdown())
}

func TestSession_UndoRedo(t *testing.T) {
	s := New("one", Options{})
	require.NoError(t, s.SetHeading(1))
	require.NoError(t, s.SetHeading(2))
	require.NoError(t, s.SetHeading(3))

	require.True(t, s.Undo())
	assert.Equal(t, "## one", s.Markdown())
	require.True(t, s.Undo())
	assert.Equal(t, "# one", s.Markdown())
	require.True(t, s.Redo())
	assert.Equal(t, "## one", s.Markdown())
	require.True(t, s.Redo())
	assert.Equal(t, "### one", s.Markdown())
	assert.False(t, s.Redo())
}

func TestSession_UndoDepth(t *testing.T) {
	s := New("one", Options{})
	for i := 0; i < 25; i++ {
		s.Select(sel(0, 0, 3))
		require.NoError(t, s.ToggleBold())
	}

	steps := 0
	for s.Undo() {
		steps++
	}
	assert.Equal(t, 20, steps)
}

func TestSession_NewEditClearsRedo(t *testing.T) {
	s := New("one", Options{})
	require.NoError(t, s.SetHeading(1))
	require.True(t, s.Undo())
	assert.True(t, s.CanRedo())

	require.NoError(t, s.SetAlignment(markup.AlignRight))
	assert.False(t, s.CanRedo())
}

func TestSession_TypingBurstIsOneSnapshot(t *testing.T) {
	s := New("", Options{Debounce: time.Hour})
	require.NoError(t, s.InsertText("a"))
	require.NoError(t, s.InsertText("b"))
	s.SettleNow()
	require.NoError(t, s.InsertText("c"))

	require.True(t, s.Undo())
	assert.Equal(t, "ab", s.Markdown())
	require.True(t, s.Undo())
	assert.Equal(t, "", s.Markdown())
	assert.False(t, s.Undo())
}

func TestSession_DeleteAndSplit(t *testing.T) {
	s := New("abc", Options{Debounce: time.Hour})

	require.NoError(t, s.DeleteBackward())
	require.NoError(t, s.SplitBlock())
	require.NoError(t, s.InsertText("d"))
	assert.Equal(t, "ab\n\nd", s.SettleNow())

	s.SetCursor(Point{Block: 0, Offset: 1})
	require.NoError(t, s.SplitBlock())
	assert.Equal(t, "a\n\nb\n\nd", s.SettleNow())
}

func TestSession_SplitListItem(t *testing.T) {
	s := New("* ab", Options{Debounce: time.Hour})
	s.SetCursor(Point{Block: 0, Item: 0, Offset: 1})

	require.NoError(t, s.SplitBlock())
	require.NoError(t, s.InsertText("x"))
	assert.Equal(t, "* a\n* xb", s.SettleNow())
}

func TestSession_SettlesImmediatelyAfterOperations(t *testing.T) {
	r := &recorder{}
	s := New("text", Options{OnChange: r.onChange})
	s.Select(sel(0, 0, 4))

	require.NoError(t, s.ToggleItalic())
	assert.Equal(t, []string{"*text*"}, r.all())
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_DebouncedSettle(t *testing.T) {
	r := &recorder{}
	s := New("", Options{OnChange: r.onChange, Debounce: 40 * time.Millisecond})
	defer s.Close()

	require.NoError(t, s.InsertText("a"))
	require.NoError(t, s.InsertText("b"))
	require.NoError(t, s.InsertText("c"))
	assert.Equal(t, StateDirty, s.State())

	assert.Eventually(t, func() bool {
		return len(r.all()) == 1 && s.State() == StateIdle
	}, time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"abc"}, r.all())
}

func TestSession_CloseDiscardsPendingSettle(t *testing.T) {
	r := &recorder{}
	s := New("", Options{OnChange: r.onChange, Debounce: 20 * time.Millisecond})

	require.NoError(t, s.InsertText("late"))
	s.Close()
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, r.all())
	assert.ErrorIs(t, s.InsertText("x"), ErrSessionClosed)
	assert.ErrorIs(t, s.SetHeading(1), ErrSessionClosed)
}

func TestSession_WordCount(t *testing.T) {
	s := New("Hello **world**, this is *great*!", Options{MaxWords: 4})
	wc := s.WordCount()
	assert.Equal(t, 5, wc.Count)
	assert.Equal(t, 4, wc.Max)
	assert.True(t, wc.Exceeded)

	s = New("Hello", Options{})
	assert.False(t, s.WordCount().Exceeded)
}

func TestSession_EditorBuiltDocumentsRoundTrip(t *testing.T) {
	s := New("", Options{Debounce: time.Hour})
	require.NoError(t, s.InsertText("My favourite spots"))
	require.NoError(t, s.SetHeading(1))
	require.NoError(t, s.SplitBlock())
	require.NoError(t, s.InsertText("A quiet cafe with * stars and #tags"))
	s.Select(sel(1, 2, 7))
	require.NoError(t, s.ToggleBold())
	s.Select(sel(1, 8, 12))
	require.NoError(t, s.ToggleItalic())
	require.NoError(t, s.InsertLink("", "https://cafe.io"))
	require.NoError(t, s.InsertImage("https://img/cafe.jpg", "Window seat"))
	require.NoError(t, s.InsertText("Closing line"))
	require.NoError(t, s.SetAlignment(markup.AlignCenter))

	md := s.SettleNow()
	assert.Equal(t, md, markup.ToStorage(markup.ToDisplay(md)))
	assert.Contains(t, md, `\* stars and \#tags`)

	for _, text := range []string{"shopping\n1. milk", "seen it\n!Image", "note\n<div align=\"center\">x"} {
		s := New("", Options{Debounce: time.Hour})
		require.NoError(t, s.InsertText(text))

		md := s.SettleNow()
		assert.Equal(t, md, markup.ToStorage(markup.ToDisplay(md)), text)
		doc := markup.Parse(md)
		require.Len(t, doc.Blocks, 1, md)
		assert.Equal(t, markup.KindParagraph, doc.Blocks[0].Kind)
		assert.Equal(t, text, markup.SpansText(doc.Blocks[0].Spans))
	}
}

type fakePicker struct {
	granted bool
	asset   *Asset
	err     error
}

func (f *fakePicker) RequestPermission(ctx context.Context) (bool, error) {
	return f.granted, nil
}

func (f *fakePicker) Pick(ctx context.Context) (*Asset, error) {
	return f.asset, f.err
}

type fakeUploader struct {
	url      string
	err      error
	received string
}

func (f *fakeUploader) Upload(ctx context.Context, blob io.Reader, name, folder string, onProgress func(int)) (string, error) {
	data, _ := io.ReadAll(blob)
	f.received = folder + "/" + name + ":" + string(data)
	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}
	return f.url, f.err
}

type fakeCaptions struct {
	text      string
	confirmed bool
}

func (f fakeCaptions) Caption(ctx context.Context, url string) (string, bool, error) {
	return f.text, f.confirmed, nil
}

func asset() *Asset {
	return &Asset{Name: "cafe.jpg", Body: io.NopCloser(strings.NewReader("jpeg"))}
}

func TestSession_AddImage(t *testing.T) {
	t.Run("uploads and inserts with caption", func(t *testing.T) {
		var progress []int
		up := &fakeUploader{url: "https://cdn/cafe.jpg"}
		s := New("Intro", Options{
			Uploader:   up,
			Picker:     &fakePicker{granted: true, asset: asset()},
			Captions:   fakeCaptions{text: "Front door", confirmed: true},
			OnProgress: func(p int) { progress = append(progress, p) },
		})

		ok, err := s.AddImage(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "blog-images/cafe.jpg:jpeg", up.received)
		assert.Equal(t, []int{50, 100}, progress)
		assert.Equal(t, "Intro\n\n![Front door](https://cdn/cafe.jpg)\n*Front door*", s.Markdown())
	})

	t.Run("skipped caption", func(t *testing.T) {
		s := New("", Options{
			Uploader: &fakeUploader{url: "https://cdn/a.jpg"},
			Picker:   &fakePicker{granted: true, asset: asset()},
			Captions: fakeCaptions{text: "ignored", confirmed: false},
		})
		ok, err := s.AddImage(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "![](https://cdn/a.jpg)", s.Markdown())
	})

	t.Run("upload failure leaves document unchanged", func(t *testing.T) {
		s := New("Intro", Options{
			Uploader: &fakeUploader{err: errors.New("network down")},
			Picker:   &fakePicker{granted: true, asset: asset()},
		})
		ok, err := s.AddImage(context.Background())
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrUploadFailed)
		assert.Equal(t, "Intro", s.Markdown())
		assert.False(t, s.CanUndo())
	})

	t.Run("permission denied", func(t *testing.T) {
		s := New("", Options{Uploader: &fakeUploader{}, Picker: &fakePicker{granted: false}})
		_, err := s.AddImage(context.Background())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("cancelled pick", func(t *testing.T) {
		s := New("", Options{Uploader: &fakeUploader{}, Picker: &fakePicker{granted: true}})
		ok, err := s.AddImage(context.Background())
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := New("", Options{}).AddImage(context.Background())
		assert.ErrorIs(t, err, ErrUploadUnavailable)
	})

	t.Run("closed session discards the result", func(t *testing.T) {
		s := New("", Options{
			Uploader: &fakeUploader{url: "https://cdn/a.jpg"},
			Picker:   &fakePicker{granted: true, asset: asset()},
		})
		s.Close()
		_, err := s.AddImage(context.Background())
		assert.ErrorIs(t, err, ErrSessionClosed)
		assert.Equal(t, "", s.Markdown())
	})
}
