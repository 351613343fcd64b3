package buffer

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Buffer holds document text as lines and applies batches of edits.
// All methods are thread-safe.
type Buffer struct {
	mu        sync.RWMutex
	lines     []string
	revision  uint64
	listeners []ChangeListener
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines: []string{""},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lines = splitLines(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func splitLines(s string) []string {
	return strings.Split(normalizeLineEndings(s), "\n")
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of a line without its terminator.
// Returns an empty string if the line is out of range.
func (b *Buffer) Line(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// LineLen returns the length of a line in bytes.
func (b *Buffer) LineLen(line int) int {
	return len(b.Line(line))
}

// End returns the position just past the last character.
func (b *Buffer) End() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last := len(b.lines) - 1
	return Position{Line: last, Ch: len(b.lines[last])}
}

// Validate returns ErrInvalidPosition if p is outside the buffer.
func (b *Buffer) Validate(p Position) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.validateLocked(p)
}

func (b *Buffer) validateLocked(p Position) error {
	if p.Line < 0 || p.Line >= len(b.lines) || p.Ch < 0 || p.Ch > len(b.lines[p.Line]) {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, p)
	}
	return nil
}

// Clip clamps p into the buffer.
func (b *Buffer) Clip(p Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p.Line < 0 {
		return Position{Sticky: p.Sticky}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Position{Line: last, Ch: len(b.lines[last]), Sticky: p.Sticky}
	}
	p.Ch = max(0, min(p.Ch, len(b.lines[p.Line])))
	return p
}

// TextRange returns the text between two positions.
func (b *Buffer) TextRange(r Range) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !r.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	if err := b.validateLocked(r.Start); err != nil {
		return "", err
	}
	if err := b.validateLocked(r.End); err != nil {
		return "", err
	}
	return b.textRangeLocked(r), nil
}

func (b *Buffer) textRangeLocked(r Range) string {
	if r.Start.Line == r.End.Line {
		return b.lines[r.Start.Line][r.Start.Ch:r.End.Ch]
	}

	var sb strings.Builder
	sb.WriteString(b.lines[r.Start.Line][r.Start.Ch:])
	for line := r.Start.Line + 1; line < r.End.Line; line++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[line])
	}
	sb.WriteByte('\n')
	sb.WriteString(b.lines[r.End.Line][:r.End.Ch])
	return sb.String()
}

// Write Operations

// ApplyEdits applies a batch of edits atomically.
//
// Edits are given in the coordinates of the text before the batch and may
// appear in any order; they must not overlap. Either every edit is applied
// or, on error, none is. Listeners are notified once for the whole batch.
//
// The returned edits, applied as a batch to the new text, restore the old
// text.
func (b *Buffer) ApplyEdits(edits []Edit) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	sorted := SortEdits(edits)
	for i := range sorted {
		sorted[i].Text = normalizeLineEndings(sorted[i].Text)
	}

	b.mu.Lock()

	// Validate all ranges
	for i, edit := range sorted {
		if !edit.Range.IsValid() {
			b.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrInvalidRange, edit.Range)
		}
		if err := b.validateLocked(edit.Range.Start); err != nil {
			b.mu.Unlock()
			return nil, err
		}
		if err := b.validateLocked(edit.Range.End); err != nil {
			b.mu.Unlock()
			return nil, err
		}
		if i > 0 && edit.Range.Start.Before(sorted[i-1].Range.End) {
			b.mu.Unlock()
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlappingEdits, sorted[i-1].Range, edit.Range)
		}
	}

	inverse := make([]Edit, len(sorted))
	for i, edit := range sorted {
		start := MapPosition(edit.Range.Start, sorted[:i], BiasAfter)
		inverse[i] = Edit{
			Range: Range{Start: start, End: advance(start, edit.Text)},
			Text:  b.textRangeLocked(edit.Range),
		}
	}

	// Apply edits back to front
	for i := len(sorted) - 1; i >= 0; i-- {
		b.spliceLocked(sorted[i])
	}

	b.revision++
	change := Change{Edits: sorted, Revision: b.revision}
	listeners := slices.Clone(b.listeners)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}

	return inverse, nil
}

// spliceLocked replaces a single validated range.
func (b *Buffer) spliceLocked(e Edit) {
	start, end := e.Range.Start, e.Range.End
	joined := b.lines[start.Line][:start.Ch] + e.Text + b.lines[end.Line][end.Ch:]
	b.lines = slices.Replace(b.lines, start.Line, end.Line+1, strings.Split(joined, "\n")...)
}

// SetText replaces the entire content. Listeners see a single edit
// spanning the old text.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	last := len(b.lines) - 1
	edit := Edit{
		Range: Range{End: Position{Line: last, Ch: len(b.lines[last])}},
		Text:  normalizeLineEndings(s),
	}
	b.lines = strings.Split(edit.Text, "\n")
	b.revision++
	change := Change{Edits: []Edit{edit}, Revision: b.revision}
	listeners := slices.Clone(b.listeners)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}

// OnChange registers a listener for applied batches.
func (b *Buffer) OnChange(fn ChangeListener) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Buffer State

// Revision returns a counter bumped by every applied batch.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}
