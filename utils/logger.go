package utils

import (
	"go.uber.org/zap"
)

// Logger is replaced by InitLogger at startup. The no-op default keeps
// packages usable from tests without initialisation.
var Logger = zap.NewNop()

func InitLogger(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}
