package logger

type noopLogger struct{}

// NewNoopLogger возвращает логгер, который ничего не пишет.
func NewNoopLogger() LoggerPort { return noopLogger{} }

func (noopLogger) Info(msg string, fields Fields)             {}
func (noopLogger) Warn(msg string, fields Fields)             {}
func (noopLogger) Error(msg string, err error, fields Fields) {}
func (noopLogger) Debug(msg string, fields Fields)            {}
func (n noopLogger) WithFields(fields Fields) LoggerPort      { return n }
