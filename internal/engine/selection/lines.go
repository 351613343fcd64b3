package selection

import "github.com/dshills/quill/internal/engine/buffer"

// LineOptions controls ConvertToLineSelections.
type LineOptions struct {
	// ExpandEndAtStartOfLine also takes in the line a selection ends on
	// when the selection ends at column 0.
	ExpandEndAtStartOfLine bool

	// MergeAdjacent coalesces expanded ranges that merely touch, not only
	// those that overlap.
	MergeAdjacent bool
}

// DefaultLineOptions returns the options used when none are given.
func DefaultLineOptions() LineOptions {
	return LineOptions{MergeAdjacent: true}
}

// LineSelection is one whole-line range produced by ConvertToLineSelections.
type LineSelection struct {
	// SelectionForEdit starts at column 0 and ends at column 0 of the line
	// after the last covered line. That line may be one past the end of the
	// document; callers that edit must clip it.
	SelectionForEdit Selection

	// SelectionsToTrack lists, in input order, the original selections the
	// range covers.
	SelectionsToTrack []Selection
}

// Lines returns the first and last line covered by the range.
func (ls LineSelection) Lines() (first, last int) {
	first = ls.SelectionForEdit.Start.Line
	last = ls.SelectionForEdit.End.Line - 1
	if last < first {
		last = first
	}
	return first, last
}

// ConvertToLineSelections expands each selection to the whole lines it
// covers and groups the results. Selections are processed in the given
// order, which should be document order.
//
// A selection's range starts at column 0 of its first line. Its end moves
// to column 0 of the following line, except when a non-empty selection
// already ends at column 0 and ExpandEndAtStartOfLine is off. A range whose
// start falls inside the previous group (or on its end, with MergeAdjacent)
// extends that group instead of opening a new one.
func ConvertToLineSelections(sels []Selection, opts LineOptions) []LineSelection {
	var result []LineSelection

	for _, sel := range sels {
		sel = sel.Ordered()

		start := buffer.Pos(sel.Start.Line, 0)
		end := sel.End
		if opts.ExpandEndAtStartOfLine || sel.IsEmpty() || end.Ch != 0 {
			end = buffer.Pos(end.Line+1, 0)
		}

		if n := len(result); n > 0 {
			prev := &result[n-1]
			prevStart, prevEnd := prev.SelectionForEdit.Start, prev.SelectionForEdit.End
			inside := !start.Before(prevStart) && start.Before(prevEnd)
			if opts.MergeAdjacent {
				inside = !start.Before(prevStart) && !start.After(prevEnd)
			}
			if inside {
				prev.SelectionForEdit.End = buffer.MaxPos(prevEnd, end)
				prev.SelectionForEdit.Primary = prev.SelectionForEdit.Primary || sel.Primary
				prev.SelectionsToTrack = append(prev.SelectionsToTrack, sel)
				continue
			}
		}

		result = append(result, LineSelection{
			SelectionForEdit:  Selection{Start: start, End: end, Reversed: sel.Reversed, Primary: sel.Primary},
			SelectionsToTrack: []Selection{sel},
		})
	}

	return result
}
