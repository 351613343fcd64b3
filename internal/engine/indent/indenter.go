package indent

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/patrickmn/go-cache"
)

// Indenter computes the correct indentation of a line.
type Indenter interface {
	// IndentFor returns the visual column line should start at.
	// ok is false when the indenter has no opinion about the line.
	IndentFor(doc Lines, line int) (col int, ok bool)
}

// IndenterFunc adapts a function to the Indenter interface.
type IndenterFunc func(doc Lines, line int) (int, bool)

// IndentFor calls f(doc, line).
func (f IndenterFunc) IndentFor(doc Lines, line int) (int, bool) {
	return f(doc, line)
}

// None is an Indenter that never has an opinion.
var None Indenter = IndenterFunc(func(Lines, int) (int, bool) { return 0, false })

// Profile caching bounds.
const (
	profileTTL     = time.Minute
	profileCleanup = 5 * time.Minute
)

// BracketIndenter indents each line one unit per bracket left open by the
// lines above it, less one per closing bracket the line starts with.
type BracketIndenter struct {
	lexer chroma.Lexer
	unit  int

	// profiles caches the per-line bracket depth of recently seen texts, so
	// indenting several lines of one document tokenizes it once.
	profiles *cache.Cache
}

// NewBracketIndenter creates an indenter using lexer to tell code from
// strings and comments. A nil lexer uses chroma's fallback lexer.
func NewBracketIndenter(lexer chroma.Lexer, unit int) *BracketIndenter {
	if lexer == nil {
		lexer = lexers.Fallback
	}
	if unit <= 0 {
		unit = 4
	}
	return &BracketIndenter{
		lexer:    chroma.Coalesce(lexer),
		unit:     unit,
		profiles: cache.New(profileTTL, profileCleanup),
	}
}

// lexerCache holds resolved lexers keyed by lexerKey.
var lexerCache = cache.New(profileTTL, profileCleanup)

func lexerKey(filename, language string) string {
	return language + "\x00" + filename
}

// ForFile creates an indenter for a language name or, if language is empty
// or unknown, for the lexer matching filename. Resolved lexers are cached
// per file name and language.
func ForFile(filename, language string, unit int) *BracketIndenter {
	return NewBracketIndenter(resolveLexer(filename, language), unit)
}

func resolveLexer(filename, language string) chroma.Lexer {
	key := lexerKey(filename, language)
	if cached, ok := lexerCache.Get(key); ok {
		return cached.(chroma.Lexer)
	}

	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil && filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexerCache.SetDefault(key, lexer)
	return lexer
}

// Language returns the name of the lexer in use.
func (b *BracketIndenter) Language() string {
	if cfg := b.lexer.Config(); cfg != nil {
		return cfg.Name
	}
	return ""
}

// IndentFor implements Indenter.
func (b *BracketIndenter) IndentFor(doc Lines, line int) (int, bool) {
	if line < 0 || line >= doc.LineCount() {
		return 0, false
	}

	depths, err := b.profile(doc)
	if err != nil {
		return 0, false
	}

	depth := depths[line] - leadingClosers(doc.Line(line))
	return max(0, depth) * b.unit, true
}

// profile returns, for every line, the bracket depth at its start.
func (b *BracketIndenter) profile(doc Lines) ([]int, error) {
	lines := make([]string, doc.LineCount())
	for i := range lines {
		lines[i] = doc.Line(i)
	}
	text := strings.Join(lines, "\n")

	h := fnv.New64a()
	h.Write([]byte(text))
	key := fmt.Sprintf("%x", h.Sum64())

	if cached, ok := b.profiles.Get(key); ok {
		return cached.([]int), nil
	}

	depths, err := b.scan(text, len(lines))
	if err != nil {
		return nil, err
	}
	b.profiles.SetDefault(key, depths)
	return depths, nil
}

func (b *BracketIndenter) scan(text string, lineCount int) ([]int, error) {
	iterator, err := b.lexer.Tokenise(nil, text+"\n")
	if err != nil {
		return nil, fmt.Errorf("tokenising: %w", err)
	}

	depths := make([]int, lineCount)
	depth, line := 0, 0
	for _, tok := range iterator.Tokens() {
		code := !isLiteral(tok.Type)
		for _, r := range tok.Value {
			if r == '\n' {
				line++
				if line < lineCount {
					depths[line] = depth
				}
				continue
			}
			if !code {
				continue
			}
			switch r {
			case '{', '[', '(':
				depth++
			case '}', ']', ')':
				depth = max(0, depth-1)
			}
		}
	}
	return depths, nil
}

// isLiteral reports whether brackets inside the token are text, not code.
func isLiteral(t chroma.TokenType) bool {
	return t.InCategory(chroma.Comment) || t.InSubCategory(chroma.LiteralString)
}

// leadingClosers counts the closing brackets a line starts with.
func leadingClosers(line string) int {
	n := 0
	for _, r := range strings.TrimLeft(line, " \t") {
		switch r {
		case '}', ']', ')':
			n++
		case ' ', '\t':
		default:
			return n
		}
	}
	return n
}
