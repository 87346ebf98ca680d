package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes the process logger. Output goes to stderr so that
// rendered results on stdout stay clean for pipes.
func Config(json bool, debug bool) zap.Config {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	return zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			// Durations show up in submission logs.
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
}

func New(json bool, debug bool) (*zap.Logger, error) {
	logger, err := Config(json, debug).Build()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return logger, nil
}
