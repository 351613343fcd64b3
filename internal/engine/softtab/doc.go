// Package softtab plans horizontal cursor movement and character deletion
// when indentation is made of spaces.
//
// With soft tabs on, a run of leading spaces behaves like a sequence of tab
// characters: moving or deleting inside it steps to the neighbouring tab
// stop instead of one column at a time. Navigate decides, for the whole
// multi-cursor set at once, whether every cursor can take such a jump. If
// any cannot, every cursor falls back to the ordinary one-character step so
// the set moves consistently.
//
// The package is pure: Navigate reads the document and the selections and
// returns the edits and resulting selections for the caller to apply as a
// single batch.
package softtab
