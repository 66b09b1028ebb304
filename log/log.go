package log

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logPrefix = "aes128."

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Init 初始化全局日志
func Init(opts ...Option) error {
	opt := newOptions(opts...)

	level := zap.InfoLevel
	if opt.Debug {
		level = zap.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	cfg.OutputPaths = nil
	if opt.Debug || opt.Console {
		cfg.OutputPaths = append(cfg.OutputPaths, "stderr")
	}
	if opt.LogDir != "" {
		if err := os.MkdirAll(opt.LogDir, os.ModePerm); err != nil {
			return err
		}
		cfg.OutputPaths = append(cfg.OutputPaths, opt.LogFileName(opt.LogDir, logPrefix, opt.ProcessID, ".log"))
	}
	if len(cfg.OutputPaths) == 0 {
		logger.Store(zap.NewNop())
		return nil
	}
	if opt.ProcessID != "" {
		cfg.InitialFields = map[string]any{"process": opt.ProcessID}
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	Replace(l)
	return nil
}

// Replace 替换全局logger(测试或嵌入方使用)
func Replace(l *zap.Logger) {
	if old := logger.Swap(l); old != nil {
		_ = old.Sync()
	}
}

// Logger 全局zap logger
func Logger() *zap.Logger { return logger.Load() }

// Sync 刷新缓冲
func Sync() error { return logger.Load().Sync() }

func sugar() *zap.SugaredLogger { return logger.Load().Sugar() }

// Debug 调试日志
func Debug(format string, args ...any) { sugar().Debugf(format, args...) }

// Info 信息日志
func Info(format string, args ...any) { sugar().Infof(format, args...) }

// Warning 警告日志
func Warning(format string, args ...any) { sugar().Warnf(format, args...) }

// Error 错误日志
func Error(format string, args ...any) { sugar().Errorf(format, args...) }

// TInfo 带追踪信息的信息日志
func TInfo(span TraceSpan, format string, args ...any) {
	traced(span).Infof(format, args...)
}

// TWarning 带追踪信息的警告日志
func TWarning(span TraceSpan, format string, args ...any) {
	traced(span).Warnf(format, args...)
}

// TError 带追踪信息的错误日志
func TError(span TraceSpan, format string, args ...any) {
	traced(span).Errorf(format, args...)
}

func traced(span TraceSpan) *zap.SugaredLogger {
	s := sugar()
	if span == nil {
		return s
	}
	return s.With("trace", span.TraceID(), "span", span.SpanID())
}
