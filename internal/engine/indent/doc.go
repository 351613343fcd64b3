// Package indent provides the whitespace arithmetic behind tab handling and
// the Indenter capability used for automatic indentation.
//
// Columns are visual: a tab advances to the next multiple of the tab width
// and other runes advance by their display width. Leading whitespace is
// always rendered from a target column, so a line indented with a mix of
// tabs and spaces is rewritten consistently with the current settings.
//
// BracketIndenter computes the indentation a line should have from the
// bracket nesting of the lines above it. It tokenizes the document with a
// chroma lexer chosen by file name or language so brackets inside strings
// and comments are ignored.
package indent
