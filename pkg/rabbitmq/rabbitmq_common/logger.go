package rabbitmq_common

import "github.com/dendisuhubdy/mybalivillas/pkg/logger"

// Logger - минимальный логгер уровня пакета: сообщение + пары ключ/значение.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (l *noopLogger) Debug(msg string, keysAndValues ...interface{})            {}
func (l *noopLogger) Info(msg string, keysAndValues ...interface{})             {}
func (l *noopLogger) Warn(msg string, keysAndValues ...interface{})             {}
func (l *noopLogger) Error(err error, msg string, keysAndValues ...interface{}) {}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

// portBridge адаптирует LoggerPort сервисов к интерфейсу пакета.
type portBridge struct {
	internal logger.LoggerPort
}

func NewLoggerBridge(l logger.LoggerPort) Logger {
	if l == nil {
		return NewNoopLogger()
	}
	return &portBridge{internal: l}
}

func toFields(keysAndValues ...interface{}) logger.Fields {
	fields := make(logger.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func (b *portBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.internal.Debug(msg, toFields(keysAndValues...))
}

func (b *portBridge) Info(msg string, keysAndValues ...interface{}) {
	b.internal.Info(msg, toFields(keysAndValues...))
}

func (b *portBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.internal.Warn(msg, toFields(keysAndValues...))
}

func (b *portBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	b.internal.Error(msg, err, toFields(keysAndValues...))
}
