// Package config loads quill's settings.
//
// Settings are layered, with later layers overriding earlier ones:
//
//  1. Built-in defaults
//  2. The configuration file (TOML or YAML)
//  3. QUILL_* environment variables
//
// Command line flags are applied by the caller on top of the result.
//
// # Basic Usage
//
//	cfg, err := config.Load("quill.toml")
//	if err != nil {
//	    return err
//	}
//	ed := engine.New(text, cfg.EngineOptions()...)
//
// An empty path loads the file at DefaultPath if one exists. An explicit
// path that does not exist is an error.
//
// # File Format
//
//	[editor]
//	softTabs = true
//	useTabs = false
//	indentUnit = 4
//	tabWidth = 4
//	softTabJump = "independent"   # or "uniform"
//	language = ""
//
//	[history]
//	maxEntries = 1000
//
//	[logging]
//	level = "info"
package config
