package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/logging"
)

// app holds the state shared by every subcommand.
type app struct {
	out    io.Writer
	errOut io.Writer

	cfgFile  string
	logLevel string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "quill",
		Short: "Multi-cursor selection and indentation engine",
		Long: `quill replays editing scripts against a file using a multi-cursor
editing engine with soft tabs, smart Tab handling and undo checkpoints.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file, TOML or YAML (default: "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level override (debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(a),
		newLinesCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// loadConfig loads configuration and applies flag overrides.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// logger builds the command logger and installs it as the default.
func (a *app) logger(cfg *config.Config) (*logging.Logger, error) {
	log, err := cfg.Logger(a.errOut)
	if err != nil {
		return nil, err
	}
	logging.SetDefault(log)
	return log.WithComponent("cli"), nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "quill %s\n", version)
			fmt.Fprintf(a.out, "Commit: %s\n", commit)
			fmt.Fprintf(a.out, "Built: %s\n", date)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after layering defaults, the config file and
QUILL_* environment variables.

Examples:
  quill config
  quill config --format yaml
  QUILL_EDITOR_INDENT_UNIT=2 quill config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			return cfg.Encode(a.out, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format (toml, yaml)")
	return cmd
}
