package indent

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Lines is the read-only view of a document the indenter works on.
type Lines interface {
	Line(i int) string
	LineCount() int
}

// Leading returns the run of spaces and tabs at the start of line.
func Leading(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// FirstNonWhitespace returns the byte offset of the first character that
// is not a space or tab, or -1 if the line is blank.
func FirstNonWhitespace(line string) int {
	n := len(Leading(line))
	if n == len(line) {
		return -1
	}
	return n
}

// IsSpaces returns true if s contains only ' ' characters.
func IsSpaces(s string) bool {
	return strings.Trim(s, " ") == ""
}

// Column returns the visual column of byte offset ch in line.
func Column(line string, ch, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	ch = min(ch, len(line))

	col := 0
	for i := 0; i < ch; {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col += runewidth.RuneWidth(r)
		}
		i += size
	}
	return col
}

// Render returns leading whitespace reaching col: tabs then spaces when
// useTabs is set, spaces otherwise.
func Render(col int, useTabs bool, tabWidth int) string {
	if col <= 0 {
		return ""
	}
	if useTabs && tabWidth > 0 {
		return strings.Repeat("\t", col/tabWidth) + strings.Repeat(" ", col%tabWidth)
	}
	return strings.Repeat(" ", col)
}

// Unit returns the text that advances visual column col by one indent
// unit: a tab, or spaces up to the next multiple of unit.
func Unit(col int, useTabs bool, unit int) string {
	if useTabs {
		return "\t"
	}
	return strings.Repeat(" ", SpacesToNextStop(col, unit))
}

// SpacesToNextStop returns the number of spaces that move column col to the
// next multiple of unit. A column already on a stop moves a full unit.
func SpacesToNextStop(col, unit int) int {
	if unit <= 0 {
		return 0
	}
	return unit - col%unit
}
