package smarttab

import (
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/indent"
	"github.com/dshills/quill/internal/engine/selection"
)

// Selection is an alias for selection.Selection for convenience.
type Selection = selection.Selection

// Strategy is the action chosen for a Tab key press.
type Strategy int

const (
	// AutoIndent reindents touched lines to their computed level.
	AutoIndent Strategy = iota
	// InsertAtSelection inserts indentation at each selection start.
	InsertAtSelection
	// IndentMore adds one indent unit to every touched line.
	IndentMore
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case AutoIndent:
		return "autoIndent"
	case InsertAtSelection:
		return "insertAtSelection"
	case IndentMore:
		return "indentMore"
	default:
		return "unknown"
	}
}

// Settings are the indentation settings HandleTab depends on.
type Settings struct {
	UseTabs    bool
	IndentUnit int
	TabWidth   int
}

// step returns the columns one indent unit adds.
func (s Settings) step() int {
	if s.UseTabs && s.TabWidth > 0 {
		return s.TabWidth
	}
	return max(1, s.IndentUnit)
}

// Plan is the outcome of HandleTab.
type Plan struct {
	// Strategy is the strategy that produced the edits.
	Strategy Strategy

	// Fallback is true when AutoIndent changed nothing and IndentMore ran
	// instead.
	Fallback bool

	// Edits to apply as one batch.
	Edits []buffer.Edit

	// Selections after the edits, normalized.
	Selections []Selection
}

// Classify picks the strategy for sels.
func Classify(doc indent.Lines, sels []Selection) Strategy {
	for _, sel := range sels {
		if sel.IsMultiLine() {
			return IndentMore
		}
	}
	for _, sel := range sels {
		first := indent.FirstNonWhitespace(doc.Line(sel.End.Line))
		if sel.End.Ch > 0 && sel.End.Ch >= first {
			return InsertAtSelection
		}
	}
	return AutoIndent
}

// HandleTab plans a Tab key press over every selection.
func HandleTab(doc indent.Lines, sels []Selection, ind indent.Indenter, s Settings) Plan {
	if ind == nil {
		ind = indent.None
	}

	switch strategy := Classify(doc, sels); strategy {
	case IndentMore:
		return indentMore(doc, sels, s)
	case InsertAtSelection:
		return insertAtSelection(doc, sels, s)
	default:
		if plan, changed := autoIndent(doc, sels, ind, s); changed {
			return plan
		}
		plan := indentMore(doc, sels, s)
		plan.Fallback = true
		return plan
	}
}

// touchedLines returns the lines a line-oriented edit of sels covers, in
// ascending order.
func touchedLines(doc indent.Lines, sels []Selection) []int {
	var out []int
	last := doc.LineCount() - 1
	for _, group := range selection.ConvertToLineSelections(sels, selection.DefaultLineOptions()) {
		first, end := group.Lines()
		for line := first; line <= min(end, last); line++ {
			if len(out) == 0 || out[len(out)-1] < line {
				out = append(out, line)
			}
		}
	}
	return out
}

// reindent returns the edit replacing a line's leading whitespace with ws,
// or false if the line already starts with exactly ws.
func reindent(line int, text, ws string) (buffer.Edit, bool) {
	old := indent.Leading(text)
	if old == ws {
		return buffer.Edit{}, false
	}
	return buffer.NewEdit(buffer.NewRange(buffer.Pos(line, 0), buffer.Pos(line, len(old))), ws), true
}

func indentMore(doc indent.Lines, sels []Selection, s Settings) Plan {
	var edits []buffer.Edit
	for _, line := range touchedLines(doc, sels) {
		text := doc.Line(line)
		col := indent.Column(text, len(indent.Leading(text)), s.TabWidth)
		if edit, ok := reindent(line, text, indent.Render(col+s.step(), s.UseTabs, s.TabWidth)); ok {
			edits = append(edits, edit)
		}
	}

	out := make([]Selection, len(sels))
	for i, sel := range sels {
		// A selection that starts at a line start keeps covering the
		// whole line.
		startBias := buffer.BiasAfter
		if !sel.IsEmpty() && sel.Start.Ch == 0 {
			startBias = buffer.BiasBefore
		}
		out[i] = selection.TransformEnds(sel, edits, startBias, buffer.BiasAfter)
	}

	return Plan{Strategy: IndentMore, Edits: edits, Selections: selection.Normalize(out)}
}

func insertAtSelection(doc indent.Lines, sels []Selection, s Settings) Plan {
	edits := make([]buffer.Edit, 0, len(sels))
	for _, sel := range sels {
		col := indent.Column(doc.Line(sel.Start.Line), sel.Start.Ch, s.TabWidth)
		edits = append(edits, buffer.NewInsert(sel.Start, indent.Unit(col, s.UseTabs, s.step())))
	}

	edits = buffer.SortEdits(edits)
	return Plan{
		Strategy:   InsertAtSelection,
		Edits:      edits,
		Selections: selection.Normalize(selection.TransformAll(sels, edits, buffer.BiasAfter)),
	}
}

// autoIndent reindents every touched line and moves each selection to the
// end of its line's leading whitespace. changed is false if neither the
// text nor any selection would change.
func autoIndent(doc indent.Lines, sels []Selection, ind indent.Indenter, s Settings) (Plan, bool) {
	var edits []buffer.Edit
	width := make(map[int]int)

	for _, line := range touchedLines(doc, sels) {
		text := doc.Line(line)
		ws := indent.Leading(text)
		if col, ok := ind.IndentFor(doc, line); ok {
			ws = indent.Render(col, s.UseTabs, s.TabWidth)
		}
		if edit, ok := reindent(line, text, ws); ok {
			edits = append(edits, edit)
		}
		width[line] = len(ws)
	}

	changed := len(edits) > 0
	out := make([]Selection, len(sels))
	for i, sel := range sels {
		out[i] = selection.NewCursor(buffer.Pos(sel.Start.Line, width[sel.Start.Line])).WithPrimary(sel.Primary)
		if !out[i].Equals(sel) {
			changed = true
		}
	}

	return Plan{Strategy: AutoIndent, Edits: edits, Selections: selection.Normalize(out)}, changed
}
