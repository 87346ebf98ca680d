package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSession is the structured log field key for the exploration session id.
	FieldSession = "session_id"
	// FieldRequest is the structured log field key for the id of one recommendation request.
	FieldRequest = "request_id"
	// FieldStrategy is the structured log field key for the ranking strategy.
	FieldStrategy = "strategy"
	// FieldPaths is the structured log field key for the number of paths in a result.
	FieldPaths = "paths"
	// FieldParser is the structured log field key for the resume parser in use.
	FieldParser = "resume_parser"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ResumeFields describes the resume a session was started from.
// Empty values are ignored to keep log entries compact.
func ResumeFields(parser, currentRole string) []zap.Field {
	return StringFields(
		StringField{Key: FieldParser, Value: parser},
		StringField{Key: "current_role", Value: currentRole},
	)
}
