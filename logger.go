package binser

// Fields carries structured key/value pairs for a log line.
type Fields map[string]any

// Logger is the leveled logger used by the store and the CLI. Adapters for
// zap, logrus and slog live under log/. A nil Logger in any Options disables
// logging.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger discards everything. It is the default when no Logger is set.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
