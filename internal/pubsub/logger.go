package pubsub

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/apnmt/payment/internal/logger"
)

// watermillLogger adapts our Logger to watermill's LoggerAdapter interface.
type watermillLogger struct {
	logger *logger.Logger
	fields watermill.LogFields
}

// NewWatermillLogger wraps the service logger for use by watermill components.
func NewWatermillLogger(log *logger.Logger) watermill.LoggerAdapter {
	return &watermillLogger{logger: log}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Errorw(msg, l.flatten(fields.Add(watermill.LogFields{"error": err}))...)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.logger.Infow(msg, l.flatten(fields)...)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debugw(msg, l.flatten(fields)...)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debugw(msg, l.flatten(fields)...)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{logger: l.logger, fields: l.fields.Add(fields)}
}

func (l *watermillLogger) flatten(fields watermill.LogFields) []interface{} {
	merged := l.fields.Add(fields)
	out := make([]interface{}, 0, len(merged)*2)
	for k, v := range merged {
		out = append(out, k, v)
	}
	return out
}
