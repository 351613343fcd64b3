// Package script parses editing scripts that drive an engine.Editor.
//
// A script has one command per line. Blank lines are skipped and '#' starts
// a comment that runs to the end of the line. Positions are written LINE:CH
// with zero-based line and byte column.
//
// Selection commands:
//
//	cursor L:C                 single cursor
//	select L:C L:C [reversed]  single selection
//	add L:C [L:C]              add a cursor or selection, made primary
//
// Editing commands:
//
//	left, right                soft-tab aware cursor movement
//	backspace, delete          soft-tab aware deletion
//	tab                        the Tab key
//	type "text"                insert text at every selection
//	delete-lines               delete every line touched by a selection
//
// History commands:
//
//	undo, redo
//	checkpoint NAME            create a named restore point
//	restore NAME               return to a restore point
//
// Text arguments use Go string syntax, so "a\tb\n" holds a tab and a
// newline.
package script
