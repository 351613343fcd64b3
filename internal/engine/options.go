package engine

import (
	"github.com/dshills/quill/internal/engine/indent"
	"github.com/dshills/quill/internal/engine/softtab"
	"github.com/dshills/quill/internal/logging"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultIndentUnit     = 4
	DefaultMaxUndoEntries = 1000
)

// Settings are the indentation settings of an Editor.
type Settings struct {
	// SoftTabs makes runs of leading spaces behave like tab characters
	// for horizontal movement and deletion.
	SoftTabs bool

	// UseTabs indents with tab characters instead of spaces.
	UseTabs bool

	// IndentUnit is the width of one indentation level in columns.
	IndentUnit int

	// TabWidth is the display width of a tab character.
	TabWidth int

	// SoftTabPolicy decides how cursors at different distances from their
	// tab stops move together.
	SoftTabPolicy softtab.JumpPolicy
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		SoftTabs:      true,
		IndentUnit:    DefaultIndentUnit,
		TabWidth:      DefaultTabWidth,
		SoftTabPolicy: softtab.Independent,
	}
}

// indentColumns returns the columns one indentation level occupies.
func (s Settings) indentColumns() int {
	if s.UseTabs {
		return s.TabWidth
	}
	return s.IndentUnit
}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithSettings sets the indentation settings. Non-positive widths keep
// their defaults.
func WithSettings(s Settings) Option {
	return func(e *Editor) {
		if s.IndentUnit <= 0 {
			s.IndentUnit = e.settings.IndentUnit
		}
		if s.TabWidth <= 0 {
			s.TabWidth = e.settings.TabWidth
		}
		e.settings = s
	}
}

// WithIndenter sets the capability used by the Tab key to compute a line's
// correct indentation.
func WithIndenter(ind indent.Indenter) Option {
	return func(e *Editor) {
		e.indenter = ind
	}
}

// WithLanguage selects the bracket indenter for a file name or an explicit
// language name. The language wins when both are given.
func WithLanguage(filename, language string) Option {
	return func(e *Editor) {
		e.filename = filename
		e.language = language
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo records.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithChangeListener registers a listener for applied batches.
func WithChangeListener(fn ChangeListener) Option {
	return func(e *Editor) {
		if fn != nil {
			e.listeners = append(e.listeners, fn)
		}
	}
}

// WithReadOnly creates a read-only editor.
// Edits return ErrReadOnly; selection changes are still allowed.
func WithReadOnly() Option {
	return func(e *Editor) {
		e.readOnly = true
	}
}
