package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/quill/internal/engine"
)

// Step is one parsed command and the line it came from.
type Step struct {
	Line    int
	Command engine.Command
}

// Script is a parsed sequence of commands.
type Script struct {
	Steps []Step
}

// Parse reads a script.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{}
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()

		fields, err := tokenize(text)
		if err != nil {
			return nil, &SyntaxError{Line: line, Text: text, Err: err}
		}
		if len(fields) == 0 {
			continue
		}

		cmd, err := parseCommand(fields)
		if err != nil {
			return nil, &SyntaxError{Line: line, Text: text, Err: err}
		}
		s.Steps = append(s.Steps, Step{Line: line, Command: cmd})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	return s, nil
}

// ParseString parses a script held in a string.
func ParseString(src string) (*Script, error) {
	return Parse(strings.NewReader(src))
}

// Run executes every step in order, stopping at the first error.
func (s *Script) Run(e *engine.Editor) error {
	for _, step := range s.Steps {
		if err := e.Execute(step.Command); err != nil {
			return &RunError{Line: step.Line, Command: step.Command.Name(), Err: err}
		}
	}
	return nil
}

// tokenize splits a line into fields. Quoted fields are unquoted; a field
// starting with '#' ends the line.
func tokenize(line string) ([]string, error) {
	var fields []string
	rest := strings.TrimSpace(line)

	for rest != "" {
		switch rest[0] {
		case '#':
			return fields, nil
		case '"', '`':
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrBadString, rest)
			}
			value, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrBadString, quoted)
			}
			fields = append(fields, value)
			rest = rest[len(quoted):]
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				return nil, fmt.Errorf("%w: text after closing quote", ErrBadString)
			}
		default:
			end := strings.IndexAny(rest, " \t")
			if end < 0 {
				end = len(rest)
			}
			fields = append(fields, rest[:end])
			rest = rest[end:]
		}
		rest = strings.TrimLeft(rest, " \t")
	}

	return fields, nil
}

// parseCommand builds the command for one tokenized line.
func parseCommand(fields []string) (engine.Command, error) {
	name, args := fields[0], fields[1:]

	switch name {
	case "left", "right", "backspace", "delete", "tab", "delete-lines", "undo", "redo":
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: %s takes none", ErrArgCount, name)
		}
		return simpleCommand(name), nil

	case "cursor":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: cursor takes a position", ErrArgCount)
		}
		p, err := parsePosition(args[0])
		if err != nil {
			return nil, err
		}
		return SetCursor{Pos: p}, nil

	case "select":
		if len(args) != 2 && !(len(args) == 3 && args[2] == "reversed") {
			return nil, fmt.Errorf("%w: select takes two positions and an optional \"reversed\"", ErrArgCount)
		}
		start, err := parsePosition(args[0])
		if err != nil {
			return nil, err
		}
		end, err := parsePosition(args[1])
		if err != nil {
			return nil, err
		}
		return Select{Start: start, End: end, Reversed: len(args) == 3}, nil

	case "add":
		if len(args) != 1 && len(args) != 2 {
			return nil, fmt.Errorf("%w: add takes one or two positions", ErrArgCount)
		}
		anchor, err := parsePosition(args[0])
		if err != nil {
			return nil, err
		}
		head := anchor
		if len(args) == 2 {
			if head, err = parsePosition(args[1]); err != nil {
				return nil, err
			}
		}
		return Add{Anchor: anchor, Head: head}, nil

	case "type":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: type takes one quoted string", ErrArgCount)
		}
		return engine.InsertText{Text: args[0]}, nil

	case "checkpoint", "restore":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s takes a name", ErrArgCount, name)
		}
		if name == "checkpoint" {
			return Checkpoint{Label: args[0]}, nil
		}
		return Restore{Label: args[0]}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

func simpleCommand(name string) engine.Command {
	switch name {
	case "left":
		return engine.MoveCursor{Dir: engine.Backward}
	case "right":
		return engine.MoveCursor{Dir: engine.Forward}
	case "backspace":
		return engine.DeleteChar{Dir: engine.Backward}
	case "delete":
		return engine.DeleteChar{Dir: engine.Forward}
	case "tab":
		return engine.TabKey{}
	case "delete-lines":
		return engine.DeleteLines{}
	case "undo":
		return engine.Undo{}
	default:
		return engine.Redo{}
	}
}

// ParsePosition parses LINE:CH.
func ParsePosition(s string) (engine.Position, error) {
	return parsePosition(s)
}

func parsePosition(s string) (engine.Position, error) {
	lineStr, chStr, ok := strings.Cut(s, ":")
	if !ok {
		return engine.Position{}, fmt.Errorf("%w: %q, want LINE:CH", ErrBadPosition, s)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 0 {
		return engine.Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	ch, err := strconv.Atoi(chStr)
	if err != nil || ch < 0 {
		return engine.Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	return engine.Pos(line, ch), nil
}

// FormatPosition writes p as LINE:CH.
func FormatPosition(p engine.Position) string {
	return fmt.Sprintf("%d:%d", p.Line, p.Ch)
}
