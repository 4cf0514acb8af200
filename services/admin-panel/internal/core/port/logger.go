package port

import "github.com/dendisuhubdy/mybalivillas/pkg/logger"

type (
	Fields     = logger.Fields
	LoggerPort = logger.LoggerPort
)
