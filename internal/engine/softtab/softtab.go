package softtab

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/indent"
	"github.com/dshills/quill/internal/engine/selection"
)

// Selection is an alias for selection.Selection for convenience.
type Selection = selection.Selection

// Direction is the horizontal direction of a command.
type Direction int

const (
	// Backward moves toward the start of the document.
	Backward Direction = -1
	// Forward moves toward the end of the document.
	Forward Direction = 1
)

// Valid returns true for Backward and Forward.
func (d Direction) Valid() bool {
	return d == Backward || d == Forward
}

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Command is the action to plan.
type Command int

const (
	// MoveCursor relocates cursors without editing.
	MoveCursor Command = iota
	// DeleteChar deletes toward the direction.
	DeleteChar
)

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case MoveCursor:
		return "moveCursor"
	case DeleteChar:
		return "deleteChar"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// JumpPolicy decides how cursors at different distances from their tab
// stops are treated.
type JumpPolicy int

const (
	// Independent lets every eligible cursor jump to its own nearest stop.
	Independent JumpPolicy = iota
	// Uniform only jumps when every cursor is the same distance from its
	// stop, and otherwise falls back to single characters.
	Uniform
)

// ParseJumpPolicy parses "independent" or "uniform".
func ParseJumpPolicy(s string) (JumpPolicy, error) {
	switch s {
	case "", "independent":
		return Independent, nil
	case "uniform":
		return Uniform, nil
	default:
		return Independent, fmt.Errorf("unknown soft tab jump policy %q", s)
	}
}

// String returns the string representation of the policy.
func (p JumpPolicy) String() string {
	if p == Uniform {
		return "uniform"
	}
	return "independent"
}

// Settings are the indentation settings Navigate depends on.
type Settings struct {
	SoftTabs   bool
	UseTabs    bool
	IndentUnit int
	Policy     JumpPolicy
}

// Active returns true if soft tab jumps can apply at all.
func (s Settings) Active() bool {
	return s.SoftTabs && !s.UseTabs && s.IndentUnit > 0
}

// Plan is the outcome of Navigate.
type Plan struct {
	// Edits to apply as one batch; empty for MoveCursor.
	Edits []buffer.Edit

	// Selections after the edits, normalized.
	Selections []Selection

	// SoftTab is true if cursors jumped by tab stops rather than characters.
	SoftTab bool
}

// Navigate plans cmd in direction dir for every selection.
//
// Non-empty selections take no part in the soft tab decision: MoveCursor
// collapses them toward dir and DeleteChar deletes them. If any selection
// is non-empty, DeleteChar deletes only those and leaves cursors alone.
func Navigate(doc indent.Lines, sels []Selection, dir Direction, cmd Command, s Settings) Plan {
	jumps, soft := tabJumps(doc, sels, dir, s)

	switch cmd {
	case DeleteChar:
		return planDelete(doc, sels, dir, jumps, soft)
	default:
		return planMove(doc, sels, dir, jumps, soft)
	}
}

// tabJumps returns the signed column distance each cursor would jump, or
// soft=false when any cursor cannot jump.
func tabJumps(doc indent.Lines, sels []Selection, dir Direction, s Settings) (jumps []int, soft bool) {
	if !s.Active() {
		return nil, false
	}

	unit := s.IndentUnit
	jumps = make([]int, len(sels))
	cursors, uniform := 0, 0

	for i, sel := range sels {
		if !sel.IsEmpty() {
			continue
		}
		line := doc.Line(sel.Start.Line)
		ch := sel.Start.Ch

		// Only leading indentation made of spaces can be jumped over.
		if !indent.IsSpaces(line[:ch]) {
			return nil, false
		}

		jump := ch % unit
		if dir == Forward {
			jump = unit - jump
			if ch+jump > len(line) || !indent.IsSpaces(line[ch:ch+jump]) {
				return nil, false
			}
		} else {
			if jump == 0 {
				jump = unit
			}
			if ch-jump < 0 {
				return nil, false
			}
			jump = -jump
		}

		if cursors == 0 {
			uniform = jump
		} else if s.Policy == Uniform && jump != uniform {
			return nil, false
		}
		jumps[i] = jump
		cursors++
	}

	return jumps, cursors > 0
}

func planMove(doc indent.Lines, sels []Selection, dir Direction, jumps []int, soft bool) Plan {
	out := make([]Selection, len(sels))
	for i, sel := range sels {
		switch {
		case !sel.IsEmpty() && dir == Backward:
			out[i] = sel.CollapseToStart()
		case !sel.IsEmpty():
			out[i] = sel.CollapseToEnd()
		case soft:
			p := sel.Start
			p.Ch += jumps[i]
			out[i] = selection.NewCursor(p).WithPrimary(sel.Primary)
		default:
			out[i] = selection.NewCursor(step(doc, sel.Start, dir)).WithPrimary(sel.Primary)
		}
	}
	return Plan{Selections: selection.Normalize(out), SoftTab: soft}
}

func planDelete(doc indent.Lines, sels []Selection, dir Direction, jumps []int, soft bool) Plan {
	var spans []buffer.Range

	hasRange := false
	for _, sel := range sels {
		if !sel.IsEmpty() {
			hasRange = true
			spans = append(spans, sel.Range())
		}
	}

	if !hasRange {
		for i, sel := range sels {
			p := sel.Start
			target := step(doc, p, dir)
			if soft {
				target = buffer.Pos(p.Line, p.Ch+jumps[i])
			}
			span := buffer.NewRange(p, target)
			if !span.IsEmpty() {
				spans = append(spans, span)
			}
		}
	}

	spans = mergeSpans(spans)
	edits := make([]buffer.Edit, len(spans))
	for i, span := range spans {
		edits[i] = buffer.NewDelete(span)
	}

	out := selection.TransformAll(sels, edits, buffer.BiasAfter)
	for i := range out {
		if out[i].IsEmpty() {
			out[i].Reversed = false
		}
	}

	return Plan{
		Edits:      edits,
		Selections: selection.Normalize(out),
		SoftTab:    soft && !hasRange,
	}
}

// mergeSpans sorts spans and joins overlapping ones.
func mergeSpans(spans []buffer.Range) []buffer.Range {
	if len(spans) == 0 {
		return nil
	}
	edits := make([]buffer.Edit, len(spans))
	for i, span := range spans {
		edits[i] = buffer.NewDelete(span)
	}
	edits = buffer.SortEdits(edits)

	merged := []buffer.Range{edits[0].Range}
	for _, e := range edits[1:] {
		last := &merged[len(merged)-1]
		if e.Range.Start.Before(last.End) {
			*last = last.Union(e.Range)
		} else {
			merged = append(merged, e.Range)
		}
	}
	return merged
}

// step returns the position one character away from p in dir, crossing
// line breaks. At either end of the document it returns p.
func step(doc indent.Lines, p buffer.Position, dir Direction) buffer.Position {
	line := doc.Line(p.Line)
	if dir == Backward {
		if p.Ch > 0 {
			_, size := utf8.DecodeLastRuneInString(line[:p.Ch])
			return buffer.Pos(p.Line, p.Ch-size)
		}
		if p.Line > 0 {
			return buffer.Pos(p.Line-1, len(doc.Line(p.Line-1)))
		}
		return p
	}

	if p.Ch < len(line) {
		_, size := utf8.DecodeRuneInString(line[p.Ch:])
		return buffer.Pos(p.Line, p.Ch+size)
	}
	if p.Line < doc.LineCount()-1 {
		return buffer.Pos(p.Line+1, 0)
	}
	return p
}
