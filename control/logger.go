// File: control/logger.go
// Author: momentics <momentics@gmail.com>
//
// Minimal structured logging interface with a stdlib-backed default.

package control

import (
	"fmt"
	"log"
	"strings"
)

// Field is a key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is the logging contract consumed by the runtime. Integrations can
// adapt it onto any structured logging backend.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// stdLogger writes through the standard log package.
type stdLogger struct{}

// DefaultLogger returns a Logger backed by the standard log package.
func DefaultLogger() Logger {
	return stdLogger{}
}

func (stdLogger) Info(msg string, fields ...Field) {
	log.Printf("INFO %s%s", msg, formatFields(fields))
}

func (stdLogger) Error(msg string, fields ...Field) {
	log.Printf("ERROR %s%s", msg, formatFields(fields))
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

// NopLogger discards all log lines.
type NopLogger struct{}

func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
