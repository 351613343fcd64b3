// Package smarttab plans what the Tab key does to a multi-selection.
//
// The whole selection set is classified once and a single strategy is used
// for every selection:
//
//   - IndentMore when any selection spans several lines: every touched line
//     gains one indent unit at its start.
//   - InsertAtSelection when any selection ends inside or after the text of
//     its line: indentation is inserted at each selection start, up to the
//     next tab stop.
//   - AutoIndent otherwise: each touched line is reindented to the column
//     the Indenter asks for. When that changes nothing at all, the plan
//     falls back to IndentMore.
//
// HandleTab is pure. The caller applies the returned edits as one batch and
// installs the returned selections.
package smarttab
