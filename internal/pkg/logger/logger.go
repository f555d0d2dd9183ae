package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

func NewLogger(level, format string) (*Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &Logger{Logger: base}, nil
}

func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Wrap adapts an existing zap logger, e.g. zaptest or an observer core.
func Wrap(l *zap.Logger) *Logger {
	return &Logger{Logger: l}
}

// AuthAttempt never receives the password or the token.
func (l *Logger) AuthAttempt(op, username string, err error) {
	if err != nil {
		l.Warn("auth attempt rejected",
			zap.String("type", "auth"),
			zap.String("op", op),
			zap.String("username", username),
			zap.Error(err),
		)
		return
	}
	l.Info("auth attempt succeeded",
		zap.String("type", "auth"),
		zap.String("op", op),
		zap.String("username", username),
	)
}

func (l *Logger) NodeMutation(op, nodeID, actor string) {
	l.Info("cluster node changed",
		zap.String("type", "node"),
		zap.String("op", op),
		zap.String("node", nodeID),
		zap.String("actor", actor),
	)
}

func (l *Logger) OperationDenied(op, actor string, err error) {
	l.Warn("operation denied",
		zap.String("type", "access"),
		zap.String("op", op),
		zap.String("actor", actor),
		zap.Error(err),
	)
}

func (l *Logger) OperationFailed(op string, err error) {
	l.Error("operation failed",
		zap.String("type", "operation"),
		zap.String("op", op),
		zap.Error(err),
	)
}

func (l *Logger) HTTPRequest(method, path string, status int, latency time.Duration, clientIP string) {
	fields := []zap.Field{
		zap.String("type", "http"),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	}
	switch {
	case status >= 500:
		l.Error("request", fields...)
	case status >= 400:
		l.Warn("request", fields...)
	default:
		l.Info("request", fields...)
	}
}
