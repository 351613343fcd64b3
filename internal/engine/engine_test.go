package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/engine/indent"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/engine/smarttab"
	"github.com/dshills/quill/internal/engine/softtab"
)

const jsBlock = "function foo() {\n    if (bar) {\n\n    }\n}"

func cursor(line, ch int) Selection {
	return selection.NewCursor(Pos(line, ch))
}

func span(anchor, head Position) Selection {
	return selection.New(anchor, head)
}

// ============================================================================
// Construction
// ============================================================================

func TestNew(t *testing.T) {
	e := New("hello\nworld")

	assert.Equal(t, "hello\nworld", e.Text())
	assert.Equal(t, 2, e.LineCount())
	assert.Equal(t, "world", e.Line(1))

	sels := e.Selections()
	require.Len(t, sels, 1)
	assert.True(t, sels[0].Primary)
	assert.Equal(t, Pos(0, 0), sels[0].Start)
}

func TestNewFromReader(t *testing.T) {
	e, err := NewFromReader(strings.NewReader("a\r\nb"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb", e.Text())
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, b := New(""), New("")
	assert.NotEmpty(t, a.Session())
	assert.NotEqual(t, a.Session(), b.Session())
}

func TestWithSettingsKeepsDefaultWidths(t *testing.T) {
	e := New("", WithSettings(Settings{UseTabs: true}))

	s := e.Settings()
	assert.True(t, s.UseTabs)
	assert.Equal(t, DefaultIndentUnit, s.IndentUnit)
	assert.Equal(t, DefaultTabWidth, s.TabWidth)
}

// ============================================================================
// Selections
// ============================================================================

func TestSetSelectionsMergesAndPicksPrimary(t *testing.T) {
	e := New("0123456789\nsecond line\nthird")

	require.NoError(t, e.SetSelections([]Selection{
		span(Pos(2, 1), Pos(2, 3)),
		span(Pos(0, 3), Pos(0, 6)),
		span(Pos(0, 1), Pos(0, 4)),
	}))

	sels := e.Selections()
	require.Len(t, sels, 2)
	assert.Equal(t, Pos(0, 1), sels[0].Start)
	assert.Equal(t, Pos(0, 6), sels[0].End)
	assert.True(t, sels[0].Primary, "last input selection should be primary")
	assert.False(t, sels[1].Primary)

	assert.Equal(t, sels[0], e.Selection())
}

func TestSetSelectionsKeepsExplicitPrimary(t *testing.T) {
	e := New("abc\ndef")

	require.NoError(t, e.SetSelections([]Selection{
		cursor(0, 1).WithPrimary(true),
		cursor(1, 1),
	}))

	assert.Equal(t, Pos(0, 1), e.Selection().Start)
}

func TestSetSelectionsRejectsInvalidPosition(t *testing.T) {
	e := New("abc")
	before := e.Selections()

	err := e.SetSelections([]Selection{cursor(0, 1), cursor(3, 0)})
	require.ErrorIs(t, err, ErrInvalidPosition)
	assert.Equal(t, before, e.Selections())

	assert.ErrorIs(t, e.SetSelections(nil), ErrNoSelections)
}

func TestSetSelectionReversed(t *testing.T) {
	e := New("abc\ndef")

	require.NoError(t, e.SetSelection(Pos(1, 2), Pos(0, 1), false))
	sel := e.Selection()
	assert.Equal(t, Pos(0, 1), sel.Start)
	assert.Equal(t, Pos(1, 2), sel.End)
	assert.True(t, sel.Reversed)
	assert.True(t, sel.Primary)

	require.NoError(t, e.SetSelection(Pos(0, 0), Pos(0, 2), true))
	assert.True(t, e.Selection().Reversed)

	assert.ErrorIs(t, e.SetCursor(Pos(0, 9)), ErrInvalidPosition)
}

func TestCursor(t *testing.T) {
	e := New("abcdef")
	require.NoError(t, e.SetSelection(Pos(0, 1), Pos(0, 4), true))

	assert.Equal(t, Pos(0, 1), e.Cursor(CursorHead))
	assert.Equal(t, Pos(0, 4), e.Cursor(CursorAnchor))
	assert.Equal(t, Pos(0, 1), e.Cursor(CursorStart))
	assert.Equal(t, Pos(0, 4), e.Cursor(CursorEnd))
	assert.True(t, e.HasSelection())

	require.NoError(t, e.SetCursor(Pos(0, 2)))
	assert.False(t, e.HasSelection())
}

func TestHasSelectionMixedCursorsAndRanges(t *testing.T) {
	e := New("line1\nline2\nline3")
	require.NoError(t, e.SetSelections([]Selection{
		cursor(0, 1),
		span(Pos(1, 1), Pos(1, 4)),
		cursor(2, 1),
	}))

	require.True(t, e.Selection().IsEmpty(), "primary should be the last cursor")
	assert.Equal(t, Pos(2, 1), e.Selection().Head())
	assert.True(t, e.HasSelection())

	require.NoError(t, e.SetSelections([]Selection{cursor(0, 1), cursor(2, 1)}))
	assert.False(t, e.HasSelection())
}

func TestEndAndColumnOf(t *testing.T) {
	e := New("\tab\nxy\n")
	assert.Equal(t, Pos(2, 0), e.End())

	assert.Equal(t, 0, e.ColumnOf(Pos(0, 0)))
	assert.Equal(t, 4, e.ColumnOf(Pos(0, 1)))
	assert.Equal(t, 6, e.ColumnOf(Pos(0, 3)))
	assert.Equal(t, 6, e.ColumnOf(Pos(0, 9)), "past the end counts the whole line")
	assert.Equal(t, 1, e.ColumnOf(Pos(1, 1)))

	e = New("\tx", WithSettings(Settings{TabWidth: 8}))
	assert.Equal(t, 8, e.ColumnOf(Pos(0, 1)))
}

func TestAddSelectionBecomesPrimary(t *testing.T) {
	e := New("abc\ndef")
	require.NoError(t, e.SetCursor(Pos(1, 1)))

	require.NoError(t, e.AddSelection(Pos(0, 0), Pos(0, 2)))

	sels := e.Selections()
	require.Len(t, sels, 2)
	assert.True(t, sels[0].Primary)
	assert.False(t, sels[1].Primary)
}

func TestSelectedText(t *testing.T) {
	e := New("hello world\nsecond")
	require.NoError(t, e.SetSelections([]Selection{
		span(Pos(1, 0), Pos(1, 3)),
		span(Pos(0, 6), Pos(0, 11)).WithPrimary(true),
	}))

	assert.Equal(t, "world", e.SelectedText(false))
	assert.Equal(t, "world\nsec", e.SelectedText(true))
}

func TestConvertToLineSelections(t *testing.T) {
	e := New("line\ntwo\nthree")
	require.NoError(t, e.SetCursor(Pos(0, 4)))

	groups := e.ConvertToLineSelections(selection.DefaultLineOptions())
	require.Len(t, groups, 1)
	assert.Equal(t, Pos(0, 0), groups[0].SelectionForEdit.Start)
	assert.Equal(t, Pos(1, 0), groups[0].SelectionForEdit.End)
	assert.Equal(t, []Selection{e.Selection()}, groups[0].SelectionsToTrack)
}

// ============================================================================
// Soft tabs
// ============================================================================

func TestSoftTabDeleteBackward(t *testing.T) {
	e := New("    content")
	require.NoError(t, e.SetCursor(Pos(0, 4)))

	require.NoError(t, e.Execute(DeleteChar{Dir: Backward}))

	assert.Equal(t, "content", e.Text())
	assert.Equal(t, Pos(0, 0), e.Selection().Start)
	assert.Equal(t, 1, e.History().Done)
}

func TestSoftTabRoundTrip(t *testing.T) {
	e := New("x")

	require.NoError(t, e.InsertText("    "))
	assert.Equal(t, Pos(0, 4), e.Selection().Head())

	require.NoError(t, e.Execute(MoveCursor{Dir: Backward}))
	assert.Equal(t, Pos(0, 0), e.Selection().Head())
	assert.Equal(t, 1, e.History().Done, "moves are not recorded")
}

func TestSoftTabDisabled(t *testing.T) {
	e := New("        x", WithSettings(Settings{SoftTabs: false, IndentUnit: 4, TabWidth: 4}))
	require.NoError(t, e.SetCursor(Pos(0, 8)))

	require.NoError(t, e.Execute(MoveCursor{Dir: Backward}))
	assert.Equal(t, Pos(0, 7), e.Selection().Head())
}

func TestInvalidDirection(t *testing.T) {
	e := New("abc")

	err := e.Execute(MoveCursor{Dir: 0})
	assert.ErrorIs(t, err, ErrInvalidDirection)

	err = e.HandleSoftTabNavigation(Direction(2), softtab.DeleteChar)
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, "abc", e.Text())
}

// ============================================================================
// Tab key
// ============================================================================

func TestTabOnEmptyLine(t *testing.T) {
	e := New(jsBlock, WithLanguage("foo.js", ""))
	require.NoError(t, e.SetCursor(Pos(2, 0)))

	strategy, err := e.HandleTabKey()
	require.NoError(t, err)

	assert.Equal(t, smarttab.AutoIndent, strategy)
	assert.Equal(t, "        ", e.Line(2))
	assert.Equal(t, Pos(2, 8), e.Selection().Head())
}

func TestTabMultiLineIndent(t *testing.T) {
	e := New(jsBlock, WithLanguage("foo.js", ""))
	require.NoError(t, e.SetSelection(Pos(1, 6), Pos(3, 3), false))

	require.NoError(t, e.Execute(TabKey{}))

	assert.Equal(t, "        if (bar) {", e.Line(1))
	assert.Equal(t, "    ", e.Line(2))
	assert.Equal(t, "        }", e.Line(3))
	sel := e.Selection()
	assert.Equal(t, Pos(1, 10), sel.Start)
	assert.Equal(t, Pos(3, 8), sel.End)
}

func TestTabAddsUnitAtCorrectIndent(t *testing.T) {
	e := New("if (x) {\n        y();\n}")
	require.NoError(t, e.SetCursor(Pos(1, 8)))

	require.NoError(t, e.Execute(TabKey{}))

	assert.Equal(t, "            y();", e.Line(1))
}

func TestTabWithIndenter(t *testing.T) {
	fixed := indent.IndenterFunc(func(indent.Lines, int) (int, bool) { return 6, true })
	e := New("x\ny", WithIndenter(fixed))
	require.NoError(t, e.SetCursor(Pos(1, 0)))

	_, err := e.HandleTabKey()
	require.NoError(t, err)
	assert.Equal(t, "      y", e.Line(1))
}

// ============================================================================
// Editing
// ============================================================================

func TestInsertTextMultiCursor(t *testing.T) {
	e := New("ab\ncd")
	require.NoError(t, e.SetSelections([]Selection{cursor(0, 1), cursor(1, 1)}))

	require.NoError(t, e.Execute(InsertText{Text: "X"}))

	assert.Equal(t, "aXb\ncXd", e.Text())
	sels := e.Selections()
	require.Len(t, sels, 2)
	assert.Equal(t, Pos(0, 2), sels[0].Start)
	assert.Equal(t, Pos(1, 2), sels[1].Start)
}

func TestInsertTextReplacesSelections(t *testing.T) {
	e := New("hello world")
	require.NoError(t, e.SetSelection(Pos(0, 0), Pos(0, 5), true))

	require.NoError(t, e.InsertText("bye"))

	assert.Equal(t, "bye world", e.Text())
	sel := e.Selection()
	assert.True(t, sel.IsEmpty())
	assert.Equal(t, Pos(0, 3), sel.Start)
}

func TestReplaceRange(t *testing.T) {
	e := New("one two")
	require.NoError(t, e.SetCursor(Pos(0, 7)))

	require.NoError(t, e.ReplaceRange(NewRange(Pos(0, 0), Pos(0, 3)), "three"))

	assert.Equal(t, "three two", e.Text())
	assert.Equal(t, Pos(0, 9), e.Selection().Start)

	err := e.ReplaceRange(NewRange(Pos(0, 0), Pos(4, 0)), "x")
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestDeleteLines(t *testing.T) {
	e := New("a\nb\nc\nd\ne")
	require.NoError(t, e.SetSelections([]Selection{cursor(1, 0), cursor(3, 1)}))

	require.NoError(t, e.Execute(DeleteLines{}))

	assert.Equal(t, "a\nc\ne", e.Text())
	sels := e.Selections()
	require.Len(t, sels, 2)
	assert.Equal(t, Pos(1, 0), sels[0].Start)
	assert.Equal(t, Pos(2, 0), sels[1].Start)
	assert.True(t, sels[1].Primary)
}

func TestDeleteLastLines(t *testing.T) {
	e := New("a\nb\nc")
	require.NoError(t, e.SetSelection(Pos(1, 0), Pos(2, 1), false))

	require.NoError(t, e.DeleteLines())

	assert.Equal(t, "a", e.Text())
	assert.Equal(t, Pos(0, 0), e.Selection().Start)
}

func TestSetTextResetsSession(t *testing.T) {
	e := New("old")
	require.NoError(t, e.InsertText("x"))

	require.NoError(t, e.SetText("new\ntext"))

	assert.Equal(t, "new\ntext", e.Text())
	assert.Equal(t, Pos(0, 0), e.Selection().Start)
	assert.Equal(t, HistoryState{}, e.History())
}

func TestReadOnly(t *testing.T) {
	e := New("abc", WithReadOnly())

	assert.ErrorIs(t, e.InsertText("x"), ErrReadOnly)
	assert.ErrorIs(t, e.SetText("x"), ErrReadOnly)
	assert.Equal(t, "abc", e.Text())

	require.NoError(t, e.SetCursor(Pos(0, 2)))
	require.NoError(t, e.Execute(MoveCursor{Dir: Forward}))
	assert.Equal(t, Pos(0, 3), e.Selection().Head())
}

func TestExecuteNil(t *testing.T) {
	assert.ErrorIs(t, New("").Execute(nil), ErrNilCommand)
}

// ============================================================================
// Notifications
// ============================================================================

func TestOneNotificationPerCommand(t *testing.T) {
	var changes []Change
	e := New("a\nb\nc", WithChangeListener(func(c Change) {
		changes = append(changes, c)
	}))
	require.NoError(t, e.SetSelections([]Selection{cursor(0, 1), cursor(1, 1), cursor(2, 1)}))

	require.NoError(t, e.Execute(TabKey{}))

	require.Len(t, changes, 1)
	assert.Len(t, changes[0].Edits, 3)
}

func TestListenerMayCallBack(t *testing.T) {
	e := New("abc")
	var seen string
	e.OnChange(func(Change) {
		seen = e.Text()
	})

	require.NoError(t, e.InsertText("x"))
	assert.Equal(t, "xabc", seen)
}

func TestSelectionOnlyCommandDoesNotNotify(t *testing.T) {
	calls := 0
	e := New("abc", WithChangeListener(func(Change) { calls++ }))

	require.NoError(t, e.Execute(MoveCursor{Dir: Forward}))
	assert.Zero(t, calls)
}

// ============================================================================
// History
// ============================================================================

func TestUndoRedoRestoresSelections(t *testing.T) {
	e := New("ab\ncd")
	require.NoError(t, e.SetSelections([]Selection{cursor(0, 1), cursor(1, 1)}))
	before := e.Selections()

	require.NoError(t, e.InsertText("X"))
	after := e.Selections()

	require.NoError(t, e.Execute(Undo{}))
	assert.Equal(t, "ab\ncd", e.Text())
	assert.Equal(t, before, e.Selections())
	assert.True(t, e.CanRedo())

	require.NoError(t, e.Execute(Redo{}))
	assert.Equal(t, "aXb\ncXd", e.Text())
	assert.Equal(t, after, e.Selections())

	require.NoError(t, e.Undo())
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
	require.NoError(t, e.Redo())
	assert.ErrorIs(t, e.Redo(), ErrNothingToRedo)
}

func TestHistoryReadsAreSerialized(t *testing.T) {
	const edits = 20
	e := New("")
	for i := 0; i < edits; i++ {
		require.NoError(t, e.InsertText("x"))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			for e.CanUndo() {
				_ = e.Undo()
			}
			for e.CanRedo() {
				_ = e.Redo()
			}
		}
	}()

	for i := 0; i < 500; i++ {
		st := e.History()
		if st.Done+st.Undone != edits {
			t.Errorf("expected %d batches in history, got %+v", edits, st)
			break
		}
		_ = e.HistoryRestorePoints()
		_ = e.IsReadOnly()
	}
	wg.Wait()

	assert.Equal(t, HistoryState{Done: edits}, e.History())
}

func TestRestorePoint(t *testing.T) {
	e := New("    content\nline")
	require.NoError(t, e.SetCursor(Pos(0, 4)))
	require.NoError(t, e.InsertText("a"))

	e.CreateHistoryRestorePoint("cp")
	text, sels := e.Text(), e.Selections()
	done := e.History().Done

	require.NoError(t, e.InsertText("b"))
	require.NoError(t, e.Execute(DeleteChar{Dir: Backward}))
	require.NoError(t, e.Execute(TabKey{}))
	require.NoError(t, e.SetCursor(Pos(1, 2)))

	require.NoError(t, e.RestoreHistoryPoint("cp"))

	assert.Equal(t, text, e.Text())
	assert.Equal(t, sels, e.Selections())
	assert.Equal(t, HistoryState{Done: done, Undone: 3}, e.History())
	assert.Empty(t, e.HistoryRestorePoints())

	// Consumed
	assert.ErrorIs(t, e.RestoreHistoryPoint("cp"), ErrUnknownCheckpoint)
}

func TestRestorePointUnknown(t *testing.T) {
	e := New("")
	assert.ErrorIs(t, e.RestoreHistoryPoint("missing"), ErrUnknownCheckpoint)
}

func TestRestorePointStaleAfterSetText(t *testing.T) {
	e := New("abc")
	e.CreateHistoryRestorePoint("cp")
	require.NoError(t, e.InsertText("x"))
	require.NoError(t, e.SetText("other"))

	err := e.RestoreHistoryPoint("cp")
	assert.ErrorIs(t, err, ErrStaleCheckpoint)
	assert.Equal(t, "other", e.Text())
	assert.ErrorIs(t, e.RestoreHistoryPoint("cp"), ErrUnknownCheckpoint)
}

func TestErrorsWrapped(t *testing.T) {
	e := New("")
	err := e.Execute(Undo{})
	assert.True(t, errors.Is(err, ErrNothingToUndo))
	assert.Contains(t, err.Error(), "undo")
}
