package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	loggerMu sync.RWMutex
	logger   = newLogger(os.Stdout, false)
)

func newLogger(w io.Writer, pretty bool) *zap.Logger {
	return zap.New(newCore(w, pretty), zap.AddStacktrace(zapcore.FatalLevel))
}

func newCore(w io.Writer, pretty bool) zapcore.Core {
	var cfg zapcore.EncoderConfig
	if pretty {
		cfg = zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionEncoderConfig()
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	}
	cfg.TimeKey = "ts"
	cfg.LevelKey = "level"
	cfg.MessageKey = "msg"
	cfg.CallerKey = zapcore.OmitKey
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339Nano))
	}

	var encoder zapcore.Encoder
	if pretty {
		encoder = zapcore.NewConsoleEncoder(cfg)
	} else {
		encoder = zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewCore(encoder, zapcore.AddSync(w), level)
}

// Configure rebuilds the global logger writing to stdout. Pretty output uses the
// colored console encoder, otherwise entries are emitted as JSON.
func Configure(pretty bool) {
	setLogger(newLogger(os.Stdout, pretty))
}

// SetLevel updates the minimum logging level accepted by the global logger.
// Supported levels are "debug", "info", "warn", and "error". Values are case-insensitive.
func SetLevel(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		level.SetLevel(zapcore.InfoLevel)
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %s", value)
	}
	return nil
}

// Logger returns the underlying zap.Logger instance.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func setLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// ReplaceLogger installs a custom zap.Logger.
func ReplaceLogger(l *zap.Logger) {
	if l == nil {
		panic("log: nil logger provided")
	}
	setLogger(l)
}

// Info logs a message at the info level using the global logger.
func Info(ctx context.Context, msg string, args ...any) {
	Logger().Sugar().Infow(msg, withContext(ctx, args)...)
}

// Debug logs a message at the debug level using the global logger.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger().Sugar().Debugw(msg, withContext(ctx, args)...)
}

// Warn logs a message at the warn level using the global logger.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger().Sugar().Warnw(msg, withContext(ctx, args)...)
}

// Error logs a message at the error level using the global logger.
func Error(ctx context.Context, msg string, args ...any) {
	Logger().Sugar().Errorw(msg, withContext(ctx, args)...)
}

func withContext(ctx context.Context, args []any) []any {
	if ctx == nil {
		return args
	}
	if id := middleware.GetReqID(ctx); id != "" {
		return append([]any{"request_id", id}, args...)
	}
	return args
}

// Sync flushes any buffered log entries.
func Sync() error {
	return Logger().Sync()
}
