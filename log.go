package main

import (
	"fmt"

	"go.uber.org/zap"
)

// rawLineEnding keeps log lines left-aligned while the terminal is raw.
const rawLineEnding = "\r\n"

func newLogger(debug bool, path string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	} else {
		cfg.EncoderConfig.LineEnding = rawLineEnding
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
