package indent

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2/lexers"
)

// lines is a minimal Lines implementation for tests.
type lines []string

func (l lines) Line(i int) string { return l[i] }
func (l lines) LineCount() int    { return len(l) }

func docOf(text string) lines {
	return lines(strings.Split(text, "\n"))
}

func TestLeading(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"    foo", "    "},
		{"\t  bar", "\t  "},
		{"baz", ""},
		{"   ", "   "},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Leading(tt.line); got != tt.want {
			t.Errorf("Leading(%q): expected %q, got %q", tt.line, tt.want, got)
		}
	}
}

func TestFirstNonWhitespace(t *testing.T) {
	if got := FirstNonWhitespace("    x"); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
	if got := FirstNonWhitespace("      "); got != -1 {
		t.Errorf("expected -1 for blank line, got %d", got)
	}
	if got := FirstNonWhitespace(""); got != -1 {
		t.Errorf("expected -1 for empty line, got %d", got)
	}
}

func TestIsSpaces(t *testing.T) {
	if !IsSpaces("    ") || !IsSpaces("") {
		t.Error("spaces and empty string should be spaces")
	}
	if IsSpaces("  \t") || IsSpaces(" x") {
		t.Error("tabs and text should not be spaces")
	}
}

func TestColumn(t *testing.T) {
	tests := []struct {
		line     string
		ch       int
		tabWidth int
		want     int
	}{
		{"    indentme();", 9, 4, 9},
		{"\tx", 1, 4, 4},
		{"\tx", 2, 4, 5},
		{"ab\tc", 3, 4, 4},
		{"ab\tc", 3, 8, 8},
		{"日本", 3, 4, 2},
		{"short", 99, 4, 5},
	}
	for _, tt := range tests {
		if got := Column(tt.line, tt.ch, tt.tabWidth); got != tt.want {
			t.Errorf("Column(%q, %d, %d): expected %d, got %d", tt.line, tt.ch, tt.tabWidth, tt.want, got)
		}
	}
}

func TestRender(t *testing.T) {
	if got := Render(8, false, 4); got != "        " {
		t.Errorf("expected 8 spaces, got %q", got)
	}
	if got := Render(10, true, 4); got != "\t\t  " {
		t.Errorf("expected two tabs and two spaces, got %q", got)
	}
	if got := Render(0, true, 4); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestUnitAndStops(t *testing.T) {
	if Unit(3, true, 4) != "\t" {
		t.Error("tab unit should be a tab")
	}
	if got := Unit(0, false, 2); got != "  " {
		t.Errorf("expected a full unit of spaces, got %q", got)
	}
	if got := Unit(5, false, 4); got != "   " {
		t.Errorf("expected spaces to the next stop, got %q", got)
	}
	if got := SpacesToNextStop(9, 4); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := SpacesToNextStop(8, 4); got != 4 {
		t.Errorf("expected 4 on a stop, got %d", got)
	}
}

// ==========================================================================
// BracketIndenter
// ==========================================================================

func TestBracketIndenterBlankLine(t *testing.T) {
	doc := docOf("function foo() {\n    if (bar) {\n\n    }\n}")
	ind := ForFile("test.js", "", 4)

	col, ok := ind.IndentFor(doc, 2)
	if !ok || col != 8 {
		t.Errorf("expected 8, got %d (ok=%v)", col, ok)
	}
}

func TestBracketIndenterClosingLine(t *testing.T) {
	doc := docOf("function foo() {\n    if (bar) {\n\n    }\n}")
	ind := ForFile("test.js", "", 4)

	if col, _ := ind.IndentFor(doc, 3); col != 4 {
		t.Errorf("expected 4 for closing brace, got %d", col)
	}
	if col, _ := ind.IndentFor(doc, 4); col != 0 {
		t.Errorf("expected 0 for outer closing brace, got %d", col)
	}
	if col, _ := ind.IndentFor(doc, 0); col != 0 {
		t.Errorf("expected 0 for first line, got %d", col)
	}
}

func TestBracketIndenterIgnoresStringsAndComments(t *testing.T) {
	doc := docOf("func f() {\n\ts := \"{{{\" // (((\n\tx\n}")
	ind := NewBracketIndenter(lexers.Get("go"), 4)

	if col, _ := ind.IndentFor(doc, 2); col != 4 {
		t.Errorf("expected 4, got %d", col)
	}
}

func TestBracketIndenterFallbackLexer(t *testing.T) {
	doc := docOf("[\nitem\n]")
	ind := ForFile("", "", 2)

	if col, _ := ind.IndentFor(doc, 1); col != 2 {
		t.Errorf("expected 2, got %d", col)
	}
	if col, _ := ind.IndentFor(doc, 2); col != 0 {
		t.Errorf("expected 0, got %d", col)
	}
}

func TestBracketIndenterOutOfRange(t *testing.T) {
	ind := ForFile("", "", 4)
	if _, ok := ind.IndentFor(docOf("x"), 3); ok {
		t.Error("out of range line should have no opinion")
	}
}

func TestBracketIndenterLanguageName(t *testing.T) {
	ind := ForFile("main.go", "", 4)
	if ind.Language() != "Go" {
		t.Errorf("expected Go lexer, got %q", ind.Language())
	}

	ind = ForFile("main.go", "python", 4)
	if ind.Language() != "Python" {
		t.Errorf("explicit language should win, got %q", ind.Language())
	}
}

func TestForFileCachesLexer(t *testing.T) {
	ForFile("cached.js", "", 4)
	if _, ok := lexerCache.Get(lexerKey("cached.js", "")); !ok {
		t.Fatal("expected resolved lexer to be cached")
	}

	// A cached entry is used without matching the file name again.
	lexerCache.SetDefault(lexerKey("notes.txt", ""), lexers.Get("go"))
	defer lexerCache.Delete(lexerKey("notes.txt", ""))
	if got := ForFile("notes.txt", "", 4).Language(); got != "Go" {
		t.Errorf("expected cached Go lexer, got %q", got)
	}
}

func TestNoneIndenter(t *testing.T) {
	if _, ok := None.IndentFor(docOf("x"), 0); ok {
		t.Error("None should never have an opinion")
	}
}
