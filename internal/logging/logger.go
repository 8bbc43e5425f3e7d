// Package logging defines the Logger seam every agent and the orchestrator
// receive by constructor injection, plus the two implementations the
// engine runs with: a zap-backed production logger and a dependency-free
// key=value fallback for environments where zap cannot initialize.
package logging

import "go.uber.org/zap"

// Logger is the structured logging interface the engine's components
// depend on. Fields are alternating key/value pairs.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// NoOpLogger discards everything; the default wherever a caller passes a
// nil logger, and the usual choice in tests.
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, fields ...interface{})             {}
func (n *NoOpLogger) Error(msg string, err error, fields ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, fields ...interface{})            {}
func (n *NoOpLogger) Warn(msg string, fields ...interface{})             {}

// NewNoOpLogger returns a discard-everything Logger.
func NewNoOpLogger() Logger {
	return &NoOpLogger{}
}

// zapLogger adapts a zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds the production Logger: JSON output by default, or zap's
// human-readable development encoding when development is true. Callers
// that cannot tolerate a construction error fall back to NewPlainLogger.
func New(development bool) (Logger, error) {
	var z *zap.Logger
	var err error
	if development {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: z.Sugar()}, nil
}

func (l *zapLogger) Info(msg string, fields ...interface{}) {
	l.sugar.Infow(msg, fields...)
}

func (l *zapLogger) Error(msg string, err error, fields ...interface{}) {
	allFields := append([]interface{}{"error", err}, fields...)
	l.sugar.Errorw(msg, allFields...)
}

func (l *zapLogger) Debug(msg string, fields ...interface{}) {
	l.sugar.Debugw(msg, fields...)
}

func (l *zapLogger) Warn(msg string, fields ...interface{}) {
	l.sugar.Warnw(msg, fields...)
}
