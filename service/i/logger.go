package i

// Logger is a named component logger.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)

	// WithFields returns a logger that appends the given key/value pairs to every line.
	WithFields(fields map[string]any) Logger
}
