// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package log is the diagnostic logging seam the stream encoder/decoder and
// the volume package write chunk- and header-level events through, without
// binding this toolkit to a concrete logging backend.
package log

// LoggerLevel defines level markers for log entries.
type LoggerLevel int

const (
	// UnsetLevel should not be output by logger implementation.
	UnsetLevel = iota - 2
	// DebugLevel marks diagnostic output. The stream package's per-chunk
	// lines at this level are only emitted when dev mode is enabled (see the
	// root package's SetDevMode); other debug lines are always emitted.
	DebugLevel
	// InfoLevel is the default log output marker.
	InfoLevel
	// ErrorLevel marks an error output, used for recoverable failures such
	// as a temp-file cleanup that didn't succeed.
	ErrorLevel
)

// Factory defines a utility to create new loggers.
type Factory interface {
	// New creates a new logger.
	New() Logger
}

// Logger describes the chainable logging call surface consumed by this
// toolkit's encode/decode/format paths: set a level and zero or more
// fields, then terminate with a message.
type Logger interface {
	Level(lvl LoggerLevel) Logger
	Field(k string, v any) Logger
	Error(err error) Logger
	Message(msg string)
	Messagef(format string, v ...any)
}
