// Package loader reads configuration sources into generic maps.
//
// Files are parsed by format (TOML or YAML, chosen by extension) and
// environment variables are mapped onto dotted setting paths. The resulting
// maps are layered with DeepMerge; decoding them into typed configuration is
// left to the caller.
//
// A source that does not exist yields a nil map and no error, so optional
// files can be layered without existence checks.
package loader
