package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/selection"
	"github.com/dshills/quill/internal/script"
)

type linesOptions struct {
	selections []string
	expandEnd  bool
	noMerge    bool
}

func newLinesCmd(a *app) *cobra.Command {
	var opts linesOptions

	cmd := &cobra.Command{
		Use:   "lines FILE",
		Short: "Show the whole-line groups covered by selections",
		Long: `Expand selections to whole lines and print each group with the
selections it covers. A selection is LINE:CH for a cursor or
ANCHOR-HEAD, for example 1:0-3:4. The last selection is primary.

Examples:
  quill lines main.go --select 0:3 --select 1:0-2:2
  quill lines main.go -S 4:0-6:0 --expand-end --no-merge`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showLines(args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.selections, "select", "S", nil, "selection, LINE:CH or LINE:CH-LINE:CH (repeatable)")
	cmd.Flags().BoolVar(&opts.expandEnd, "expand-end", false, "include the line a selection ends on at column 0")
	cmd.Flags().BoolVar(&opts.noMerge, "no-merge", false, "keep groups that merely touch apart")
	_ = cmd.MarkFlagRequired("select")

	return cmd
}

func (a *app) showLines(file string, opts linesOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	log, err := a.logger(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	sels := make([]engine.Selection, 0, len(opts.selections))
	for _, spec := range opts.selections {
		sel, err := parseSelection(spec)
		if err != nil {
			return err
		}
		sels = append(sels, sel)
	}

	ed := engine.New(string(data), engine.WithLogger(log), engine.WithReadOnly())
	if err := ed.SetSelections(sels); err != nil {
		return err
	}

	groups := ed.ConvertToLineSelections(engine.LineOptions{
		ExpandEndAtStartOfLine: opts.expandEnd,
		MergeAdjacent:          !opts.noMerge,
	})
	for _, g := range groups {
		first, last := g.Lines()
		tracked := make([]string, len(g.SelectionsToTrack))
		for i, sel := range g.SelectionsToTrack {
			tracked[i] = formatSelection(sel)
		}
		fmt.Fprintf(a.out, "lines %d-%d: %s\n", first, last, strings.Join(tracked, ", "))
	}
	return nil
}

// parseSelection parses LINE:CH or ANCHOR-HEAD.
func parseSelection(spec string) (engine.Selection, error) {
	anchorStr, headStr, ranged := strings.Cut(spec, "-")

	anchor, err := script.ParsePosition(anchorStr)
	if err != nil {
		return engine.Selection{}, err
	}
	if !ranged {
		return selection.NewCursor(anchor), nil
	}

	head, err := script.ParsePosition(headStr)
	if err != nil {
		return engine.Selection{}, err
	}
	return selection.New(anchor, head), nil
}
