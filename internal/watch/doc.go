// Package watch reports changes to a fixed set of files.
//
// Files are watched through their parent directories so that editors which
// save by writing a temporary file and renaming it over the original are
// still noticed. Bursts of events for the same file are coalesced into one
// Event after a quiet period.
package watch
