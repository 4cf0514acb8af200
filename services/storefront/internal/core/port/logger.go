package port

import "github.com/dendisuhubdy/mybalivillas/pkg/logger"

// Fields и LoggerPort берутся из общего пакета, чтобы адаптеры pkg/logger подходили без обёрток.
type (
	Fields     = logger.Fields
	LoggerPort = logger.LoggerPort
)
