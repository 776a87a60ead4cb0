package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	once   sync.Once
	logger *zap.SugaredLogger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// Get initializes a zap.SugaredLogger instance if it has not been initialized
// already and returns the same instance for subsequent calls.
// LOG_LEVEL sets the starting level and a non empty JSON_LOG switches to json output.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			if err := SetLevel(env); err != nil {
				log.Println(fmt.Errorf("invalid level, defaulting to INFO: %w", err))
			}
		}

		logger = New(zapcore.AddSync(os.Stdout), level, os.Getenv("JSON_LOG") != "")
	})

	return logger
}

// New builds a logger writing to w. Console output is colored for development, json output
// is meant for log collectors.
func New(w zapcore.WriteSyncer, enabler zapcore.LevelEnabler, json bool) *zap.SugaredLogger {
	var encoder zapcore.Encoder
	if json {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, w, enabler)
	if fields := buildFields(); len(fields) > 0 {
		core = core.With(fields)
	}

	return zap.New(core).Sugar()
}

// SetLevel changes the level of the logger returned by Get
func SetLevel(l string) error {
	parsed, err := zapcore.ParseLevel(l)
	if err != nil {
		return err
	}

	level.SetLevel(parsed)
	return nil
}

func buildFields() []zapcore.Field {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	fields := []zapcore.Field{zap.String("go_version", buildInfo.GoVersion)}
	for _, v := range buildInfo.Settings {
		if v.Key == "vcs.revision" && len(v.Value) >= 7 {
			fields = append(fields, zap.String("git_revision", v.Value[:7]))
			break
		}
	}

	return fields
}

// FromCtx returns the Logger associated with the ctx, or the default logger when none is
// associated. Extra key value pairs are added to the returned logger.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}

	if len(with) == 0 {
		return l
	}

	return l.With(with...)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
