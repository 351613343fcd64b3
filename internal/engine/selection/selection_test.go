package selection

import (
	"testing"

	"github.com/dshills/quill/internal/engine/buffer"
)

var pos = buffer.Pos

func TestNewForward(t *testing.T) {
	s := New(pos(1, 2), pos(1, 6))

	if s.Reversed {
		t.Error("forward selection should not be reversed")
	}
	if !s.Head().Equal(pos(1, 6)) {
		t.Errorf("expected head {1,6}, got %s", s.Head())
	}
	if !s.Anchor().Equal(pos(1, 2)) {
		t.Errorf("expected anchor {1,2}, got %s", s.Anchor())
	}
}

func TestNewBackward(t *testing.T) {
	s := New(pos(3, 0), pos(1, 4))

	if !s.Reversed {
		t.Error("backward selection should be reversed")
	}
	if !s.Start.Equal(pos(1, 4)) || !s.End.Equal(pos(3, 0)) {
		t.Errorf("expected {1,4}-{3,0}, got %s", s)
	}
	if !s.Head().Equal(pos(1, 4)) {
		t.Errorf("expected head {1,4}, got %s", s.Head())
	}
}

func TestCursorIsEmpty(t *testing.T) {
	s := NewCursor(pos(2, 3))

	if !s.IsEmpty() {
		t.Error("cursor should be empty")
	}
	if s.IsMultiLine() {
		t.Error("cursor should not be multi-line")
	}
	if s.String() != "{2,3}" {
		t.Errorf("expected {2,3}, got %s", s.String())
	}
}

func TestOrderedKeepsExplicitReversed(t *testing.T) {
	s := Selection{Start: pos(0, 1), End: pos(0, 5), Reversed: true}.Ordered()
	if !s.Reversed {
		t.Error("explicit reversed flag should be preserved")
	}

	s = Selection{Start: pos(0, 5), End: pos(0, 1)}.Ordered()
	if !s.Reversed || !s.Start.Equal(pos(0, 1)) {
		t.Errorf("expected swapped reversed selection, got %s", s)
	}
}

func TestCollapse(t *testing.T) {
	s := Selection{Start: pos(0, 1), End: pos(2, 2), Reversed: true, Primary: true}

	start := s.CollapseToStart()
	if !start.IsEmpty() || !start.Start.Equal(pos(0, 1)) || start.Reversed || !start.Primary {
		t.Errorf("unexpected collapse to start: %s", start)
	}

	end := s.CollapseToEnd()
	if !end.IsEmpty() || !end.Start.Equal(pos(2, 2)) {
		t.Errorf("unexpected collapse to end: %s", end)
	}
}

func TestTouches(t *testing.T) {
	a := New(pos(0, 1), pos(0, 4))

	if !a.Touches(New(pos(0, 4), pos(0, 6))) {
		t.Error("selections sharing an endpoint should touch")
	}
	if a.Touches(New(pos(0, 5), pos(0, 6))) {
		t.Error("separate selections should not touch")
	}
}

func TestTransform(t *testing.T) {
	sel := Selection{Start: pos(1, 2), End: pos(1, 6), Primary: true}
	edits := []Edit{buffer.NewInsert(pos(1, 0), "    ")}

	got := Transform(sel, edits, buffer.BiasAfter)
	if !got.Start.Equal(pos(1, 6)) || !got.End.Equal(pos(1, 10)) || !got.Primary {
		t.Errorf("unexpected transform result %s", got)
	}

	got = TransformEnds(Selection{Start: pos(1, 0), End: pos(1, 3)}, edits, buffer.BiasBefore, buffer.BiasAfter)
	if !got.Start.Equal(pos(1, 0)) || !got.End.Equal(pos(1, 7)) {
		t.Errorf("unexpected transform result %s", got)
	}
}
