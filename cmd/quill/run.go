package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/script"
	"github.com/dshills/quill/internal/watch"
)

type runOptions struct {
	script string
	lang   string
	diff   bool
	watch  bool
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Replay an editing script against a file",
		Long: `Replay an editing script against FILE and print the resulting text
followed by the final selections. FILE is never modified.

Examples:
  # Apply a script
  quill run main.go --script fix.qs

  # Show what the script changed
  quill run main.go -s fix.qs --diff

  # Re-run whenever the file, script or config changes
  quill run main.go -s fix.qs --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return a.watchScript(ctx, args[0], opts)
			}
			return a.runScript(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "script file to replay")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "language for smart indentation (default: from file name)")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a line diff instead of the result text")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run when the file, script or config changes")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

// runScript replays the script once and prints the result.
func (a *app) runScript(file string, opts runOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if opts.lang != "" {
		cfg.Editor.Language = opts.lang
	}
	log, err := a.logger(cfg)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(opts.script)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	s, err := script.ParseString(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", opts.script, err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	before := string(data)

	ed := engine.New(before, append(cfg.EngineOptions(file), engine.WithLogger(log))...)
	log.Debug("replaying %d steps from %s on %s", len(s.Steps), opts.script, file)

	if err := s.Run(ed); err != nil {
		return fmt.Errorf("%s: %w", opts.script, err)
	}

	if opts.diff {
		fmt.Fprint(a.out, lineDiff(before, ed.Text()))
	} else {
		text := ed.Text()
		fmt.Fprint(a.out, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(a.out)
		}
	}
	fmt.Fprintln(a.out, "--")
	for _, sel := range ed.Selections() {
		fmt.Fprintln(a.out, formatSelection(sel))
	}
	return nil
}

// watchScript runs the script, then again after every change until ctx
// is done. Failed runs are reported and watching continues.
func (a *app) watchScript(ctx context.Context, file string, opts runOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	log, err := a.logger(cfg)
	if err != nil {
		return err
	}

	w, err := watch.New(watch.WithLogger(log.WithComponent("watch")))
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	for _, path := range []string{file, opts.script, a.cfgFile} {
		if path == "" {
			continue
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	a.reportRun(file, opts)

	err = w.Run(ctx, func(ev watch.Event) {
		fmt.Fprintf(a.out, "== %s changed\n", ev.Path)
		a.reportRun(file, opts)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) reportRun(file string, opts runOptions) {
	if err := a.runScript(file, opts); err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
	}
}

// formatSelection writes a selection as LINE:CH or LINE:CH-LINE:CH with
// its flags.
func formatSelection(sel engine.Selection) string {
	var sb strings.Builder
	sb.WriteString(script.FormatPosition(sel.Start))
	if !sel.IsEmpty() {
		sb.WriteString("-")
		sb.WriteString(script.FormatPosition(sel.End))
	}
	if sel.Reversed {
		sb.WriteString(" reversed")
	}
	if sel.Primary {
		sb.WriteString(" primary")
	}
	return sb.String()
}
