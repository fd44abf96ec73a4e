// Package logger provides named, coloured component loggers backed by logrus.
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

var (
	ErrMissingName   = errors.New("logger name is required")
	ErrMissingWriter = errors.New("logger writer is required")
)

var _ i.Logger = &Logger{}

// Logger writes "[NAME] [LEVEL] message key=value" lines in the component's colour.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the named component.
func New(name, color string, w io.Writer) (*Logger, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}
	if w == nil {
		return nil, ErrMissingWriter
	}

	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&prefixFormatter{name: name, color: color})

	return &Logger{entry: logrus.NewEntry(base)}, nil
}

// SetLevel changes the minimum level, e.g. "debug", "info", "warning", "error".
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

// Debug implements i.Logger.
func (l *Logger) Debug(msg string) {
	l.entry.Debug(msg)
}

// Info implements i.Logger.
func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

// Warning implements i.Logger.
func (l *Logger) Warning(msg string) {
	l.entry.Warn(msg)
}

// Error implements i.Logger.
func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

// WithFields implements i.Logger.
func (l *Logger) WithFields(fields map[string]any) i.Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// prefixFormatter renders entries the way the rest of the codebase prints them.
type prefixFormatter struct {
	name  string
	color string
}

// Format implements logrus.Formatter.
func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	level := strings.ToUpper(e.Level.String())
	if e.Level == logrus.WarnLevel {
		level = "WARNING"
	}

	b.WriteString(f.color)
	fmt.Fprintf(&b, "%s [%s] [%s]", e.Time.Format("2006/01/02 15:04:05"), f.name, level)
	if f.color != "" {
		b.WriteString(colorReset)
	}
	b.WriteString(" ")
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
