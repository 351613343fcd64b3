package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/quill/internal/config/loader"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/softtab"
	"github.com/dshills/quill/internal/logging"
)

// Limits on numeric settings.
const (
	MaxIndentUnit = 16
	MaxTabWidth   = 16
)

// Config holds every quill setting.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig holds indentation and language settings.
type EditorConfig struct {
	SoftTabs    bool   `toml:"softTabs" yaml:"softTabs"`
	UseTabs     bool   `toml:"useTabs" yaml:"useTabs"`
	IndentUnit  int    `toml:"indentUnit" yaml:"indentUnit"`
	TabWidth    int    `toml:"tabWidth" yaml:"tabWidth"`
	SoftTabJump string `toml:"softTabJump" yaml:"softTabJump"`
	Language    string `toml:"language" yaml:"language"`
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	MaxEntries int `toml:"maxEntries" yaml:"maxEntries"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	s := engine.DefaultSettings()
	return &Config{
		Editor: EditorConfig{
			SoftTabs:    s.SoftTabs,
			UseTabs:     s.UseTabs,
			IndentUnit:  s.IndentUnit,
			TabWidth:    s.TabWidth,
			SoftTabJump: s.SoftTabPolicy.String(),
		},
		History: HistoryConfig{MaxEntries: engine.DefaultMaxUndoEntries},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the user configuration file, or "" when the user
// configuration directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "config.toml")
}

// Loader layers configuration sources.
type Loader struct {
	fs          loader.FileSystem
	env         loader.Loader
	defaultPath string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFS sets the file system configuration files are read from.
func WithFS(fs loader.FileSystem) LoaderOption {
	return func(l *Loader) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// WithEnv sets the environment source. A nil loader disables it.
func WithEnv(env loader.Loader) LoaderOption {
	return func(l *Loader) {
		l.env = env
	}
}

// WithDefaultPath sets the file loaded when no path is given.
func WithDefaultPath(path string) LoaderOption {
	return func(l *Loader) {
		l.defaultPath = path
	}
}

// NewLoader creates a Loader reading the OS file system and QUILL_*
// variables.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:          loader.DefaultFS(),
		env:         loader.NewEnvLoader(loader.DefaultEnvPrefix),
		defaultPath: DefaultPath(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads the configuration using the default Loader.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Load layers defaults, the file at path and the environment, then
// validates the result.
func (l *Loader) Load(path string) (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = l.defaultPath
	}
	if path != "" {
		if explicit {
			if _, err := l.fs.Stat(path); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
		}
		fl, err := loader.ForPath(l.fs, path)
		if err != nil {
			return nil, err
		}
		file, err := fl.LoadFrom(path)
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	if l.env != nil {
		env, err := l.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap converts a Config to its generic map form.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return m, nil
}

// fromMap decodes a merged map, rejecting settings Config does not have.
func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, decodeError(err)
	}
	return &cfg, nil
}

// decodeError converts go-toml decode failures to ValidationErrors.
func decodeError(err error) error {
	var missing *toml.StrictMissingError
	if errors.As(err, &missing) && len(missing.Errors) > 0 {
		errs := make([]error, 0, len(missing.Errors))
		for _, e := range missing.Errors {
			errs = append(errs, &ValidationError{
				Path:    strings.Join(e.Key(), "."),
				Message: "unknown setting",
				Code:    ErrCodeUnknownSetting,
			})
		}
		return errors.Join(errs...)
	}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		return &ValidationError{
			Path:    strings.Join(derr.Key(), "."),
			Message: derr.Error(),
			Code:    ErrCodeTypeMismatch,
		}
	}

	return &ValidationError{Message: err.Error(), Code: ErrCodeTypeMismatch}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.IndentUnit < 1 || c.Editor.IndentUnit > MaxIndentUnit {
		errs = append(errs, &ValidationError{
			Path:    "editor.indentUnit",
			Message: fmt.Sprintf("must be between 1 and %d", MaxIndentUnit),
			Value:   c.Editor.IndentUnit,
			Code:    ErrCodeOutOfRange,
		})
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > MaxTabWidth {
		errs = append(errs, &ValidationError{
			Path:    "editor.tabWidth",
			Message: fmt.Sprintf("must be between 1 and %d", MaxTabWidth),
			Value:   c.Editor.TabWidth,
			Code:    ErrCodeOutOfRange,
		})
	}
	if _, err := softtab.ParseJumpPolicy(c.Editor.SoftTabJump); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "editor.softTabJump",
			Message: `must be "independent" or "uniform"`,
			Value:   c.Editor.SoftTabJump,
			Code:    ErrCodeInvalidEnum,
		})
	}
	if c.History.MaxEntries < 1 {
		errs = append(errs, &ValidationError{
			Path:    "history.maxEntries",
			Message: "must be positive",
			Value:   c.History.MaxEntries,
			Code:    ErrCodeOutOfRange,
		})
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	return errors.Join(errs...)
}

// EngineSettings converts the editor section to engine settings.
func (c *Config) EngineSettings() (engine.Settings, error) {
	policy, err := softtab.ParseJumpPolicy(c.Editor.SoftTabJump)
	if err != nil {
		return engine.Settings{}, err
	}
	return engine.Settings{
		SoftTabs:      c.Editor.SoftTabs,
		UseTabs:       c.Editor.UseTabs,
		IndentUnit:    c.Editor.IndentUnit,
		TabWidth:      c.Editor.TabWidth,
		SoftTabPolicy: policy,
	}, nil
}

// EngineOptions returns the editor options the configuration implies.
// filename selects the indenter when no language is configured.
func (c *Config) EngineOptions(filename string) []engine.Option {
	settings, err := c.EngineSettings()
	if err != nil {
		settings = engine.DefaultSettings()
	}
	return []engine.Option{
		engine.WithSettings(settings),
		engine.WithMaxUndoEntries(c.History.MaxEntries),
		engine.WithLanguage(filename, c.Editor.Language),
	}
}

// Logger creates a logger writing to out at the configured level.
func (c *Config) Logger(out io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = out
	return logging.New(cfg), nil
}

// Encode writes the configuration as "toml" or "yaml".
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
