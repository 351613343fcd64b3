package engine

import (
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/history"
	"github.com/dshills/quill/internal/engine/indent"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line/column position in the document.
	Position = buffer.Position

	// Range is an ordered pair of positions.
	Range = buffer.Range

	// Edit replaces a range with text.
	Edit = buffer.Edit

	// Change is one applied batch of edits.
	Change = buffer.Change

	// Selection is a selected range or a cursor.
	Selection = selection.Selection

	// LineSelection is a whole-line group from ConvertToLineSelections.
	LineSelection = selection.LineSelection

	// LineOptions controls ConvertToLineSelections.
	LineOptions = selection.LineOptions

	// HistoryState reports the sizes of the undo and redo stacks.
	HistoryState = history.State
)

// Shorthands for building positions and ranges.
var (
	Pos      = buffer.Pos
	NewRange = buffer.NewRange
)

// ChangeListener is called once for every applied batch, after the editor
// has finished the operation that produced it.
type ChangeListener func(Change)

// Editor is one editing session: a document, its selection set and its
// undo history.
//
// Every edit runs as a single batch: the document changes atomically, one
// history record is pushed and listeners are notified once.
//
// All operations are thread-safe. Operations are serialized.
type Editor struct {
	mu sync.Mutex

	// Core components
	buf      *buffer.Buffer
	sels     selection.Set
	history  *history.History
	indenter indent.Indenter

	// Configuration
	settings       Settings
	maxUndoEntries int
	readOnly       bool
	filename       string
	language       string

	// Observability
	log     *logging.Logger
	session string

	// Notification
	listeners []ChangeListener
	pending   []Change
}

// New creates an Editor holding text with a cursor at the start.
func New(text string, opts ...Option) *Editor {
	e := &Editor{
		settings:       DefaultSettings(),
		maxUndoEntries: DefaultMaxUndoEntries,
		log:            logging.Nop(),
		session:        uuid.NewString(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewBufferFromString(text, buffer.WithChangeListener(e.capture))
	e.sels = selection.NewSetAt(Pos(0, 0))
	e.history = history.NewHistory(e.maxUndoEntries)
	e.log = e.log.WithFields(map[string]any{
		"component": "engine",
		"session":   e.session,
	})

	if e.indenter == nil {
		e.indenter = indent.ForFile(e.filename, e.language, e.settings.indentColumns())
	}

	return e
}

// NewFromReader creates an Editor from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Editor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(string(data), opts...), nil
}

// capture queues a batch for delivery once the current operation is done.
// The buffer only calls it while e.mu is held.
func (e *Editor) capture(c Change) {
	e.pending = append(e.pending, c)
}

// unlock releases the editor and delivers queued changes.
func (e *Editor) unlock() {
	pending := e.pending
	e.pending = nil
	listeners := e.listeners
	e.mu.Unlock()

	for _, c := range pending {
		for _, fn := range listeners {
			fn(c)
		}
	}
}

// OnChange registers a listener for applied batches.
func (e *Editor) OnChange(fn ChangeListener) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Session returns the identifier of this editing session.
func (e *Editor) Session() string {
	return e.session
}

// Settings returns the indentation settings.
func (e *Editor) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// IsReadOnly returns true if edits are rejected.
func (e *Editor) IsReadOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readOnly
}

// ============================================================================
// Document
// ============================================================================

// Text returns the full document.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Text()
}

// Line returns the text of a line, or "" if it is out of range.
func (e *Editor) Line(line int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Line(line)
}

// LineCount returns the number of lines.
func (e *Editor) LineCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.LineCount()
}

// End returns the position after the last character of the document.
func (e *Editor) End() Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.End()
}

// ColumnOf returns the visual column of p, expanding tabs to the configured
// tab width. Characters past the end of the line are not counted.
func (e *Editor) ColumnOf(p Position) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return indent.Column(e.buf.Line(p.Line), p.Ch, e.settings.TabWidth)
}

// Revision returns a counter bumped by every applied batch.
func (e *Editor) Revision() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Revision()
}

// SetText replaces the whole document, resets the selection to a cursor at
// the start and clears the history. Existing checkpoints become stale.
func (e *Editor) SetText(text string) error {
	e.mu.Lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	e.buf.SetText(text)
	e.sels = selection.NewSetAt(Pos(0, 0))
	e.history.Clear()
	e.log.Debug("text replaced, history cleared (epoch %d)", e.history.Epoch())
	return nil
}

// ============================================================================
// Selections
// ============================================================================

// CursorPos names one end of the primary selection.
type CursorPos int

const (
	// CursorHead is the end that moves when the selection is extended.
	CursorHead CursorPos = iota
	// CursorAnchor is the fixed end.
	CursorAnchor
	// CursorStart is the end earlier in the document.
	CursorStart
	// CursorEnd is the end later in the document.
	CursorEnd
)

// Selection returns the primary selection.
func (e *Editor) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sels.Primary()
}

// Selections returns every selection in document order.
func (e *Editor) Selections() []Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sels.All()
}

// HasSelection returns true if any selection is not a cursor.
func (e *Editor) HasSelection() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sels.HasSelection()
}

// Cursor returns one end of the primary selection.
func (e *Editor) Cursor(which CursorPos) Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel := e.sels.Primary()
	switch which {
	case CursorAnchor:
		return sel.Anchor()
	case CursorStart:
		return sel.Start
	case CursorEnd:
		return sel.End
	default:
		return sel.Head()
	}
}

// SetSelection replaces every selection with one primary selection from
// start to end. Endpoints given out of order are swapped and the result
// is reversed.
func (e *Editor) SetSelection(start, end Position, reversed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateLocked(start, end); err != nil {
		return err
	}

	sel := selection.FromRange(buffer.NewRange(start, end))
	sel.Reversed = reversed || end.Before(start)
	sel.Primary = true
	e.sels = selection.NewSet(sel)
	return nil
}

// SetCursor replaces every selection with a single cursor at p.
func (e *Editor) SetCursor(p Position) error {
	return e.SetSelection(p, p, false)
}

// SetSelections replaces the selection set with sels after normalization.
// When no selection is flagged primary the last one in sels becomes
// primary.
func (e *Editor) SetSelections(sels []Selection) error {
	if len(sels) == 0 {
		return ErrNoSelections
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	in := make([]Selection, len(sels))
	copy(in, sels)

	hasPrimary := false
	for _, sel := range in {
		if err := e.validateLocked(sel.Start, sel.End); err != nil {
			return err
		}
		hasPrimary = hasPrimary || sel.Primary
	}
	if !hasPrimary {
		in[len(in)-1].Primary = true
	}

	e.sels = selection.NewSet(in...)
	return nil
}

// AddSelection adds a selection from anchor to head and makes it primary.
func (e *Editor) AddSelection(anchor, head Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateLocked(anchor, head); err != nil {
		return err
	}

	sels := e.sels.All()
	for i := range sels {
		sels[i].Primary = false
	}
	e.sels = selection.NewSet(append(sels, selection.New(anchor, head).WithPrimary(true))...)
	return nil
}

// SelectedText returns the text of the primary selection, or with all set
// the text of every selection joined by newlines in document order.
func (e *Editor) SelectedText(all bool) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !all {
		return e.textLocked(e.sels.Primary().Range())
	}

	ranges := e.sels.Ranges()
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = e.textLocked(r)
	}
	return strings.Join(parts, "\n")
}

// ConvertToLineSelections expands the current selections to whole lines.
func (e *Editor) ConvertToLineSelections(opts LineOptions) []LineSelection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return selection.ConvertToLineSelections(e.sels.All(), opts)
}

func (e *Editor) validateLocked(ps ...Position) error {
	for _, p := range ps {
		if err := e.buf.Validate(p); err != nil {
			e.log.Warn("rejected position: %v", err)
			return err
		}
	}
	return nil
}

// textLocked returns the text of a range that is known to be valid.
func (e *Editor) textLocked(r Range) string {
	text, err := e.buf.TextRange(r)
	if err != nil {
		return ""
	}
	return text
}
