// Package logging provides the leveled, field-carrying logger used across
// quill.
//
// A Logger writes one line per message:
//
//	2006-01-02T15:04:05.000 [INFO] quill: message {key=value, other=1}
//
// Loggers derived with WithField, WithFields or WithComponent share the
// parent's level and output, so SetLevel on the root affects every derived
// logger.
package logging
