package main

import "go.uber.org/zap"

// appLog defaults to a no-op logger so library code and tests stay silent;
// main swaps in the real logger at startup.
var appLog = zap.NewNop().Sugar()

func SetLogger(logger *zap.SugaredLogger) {
	appLog = logger
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
