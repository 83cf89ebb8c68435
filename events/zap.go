package events

import (
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapEmitter publishes events through a zap logger. Every event carries a
// unique event ID, the emitting component, and the action name alongside
// the caller-supplied fields.
type ZapEmitter struct {
	log *zap.Logger
}

// NewZapEmitter wraps an existing zap logger.
func NewZapEmitter(log *zap.Logger) *ZapEmitter {
	return &ZapEmitter{log: log}
}

// Emit publishes one event at info level.
func (z *ZapEmitter) Emit(component, action string, fields ...zap.Field) {
	all := make([]zap.Field, 0, len(fields)+4)
	all = append(all,
		zap.String("event_id", uuid.NewString()),
		zap.Time("emitted_at", time.Now()),
		zap.String("component", component),
		zap.String("action", action),
	)
	all = append(all, fields...)
	z.log.Info("event", all...)
}

// StreamConfig configures NewStream output destinations.
type StreamConfig struct {
	LogFile string // JSON event log path; empty disables
	Console bool   // mirror events to stdout
	Level   string // minimum level; defaults to info
}

// NewStream builds a ZapEmitter writing JSON events to the configured
// destinations. Callers that already manage a zap logger should use
// NewZapEmitter instead.
func NewStream(sc StreamConfig) (*ZapEmitter, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(sc.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	var cores []zapcore.Core

	if sc.LogFile != "" {
		f, err := os.OpenFile(sc.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(f),
			level,
		))
	}

	if sc.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	if len(cores) == 0 {
		return &ZapEmitter{log: zap.NewNop()}, nil
	}
	return &ZapEmitter{log: zap.New(zapcore.NewTee(cores...))}, nil
}
