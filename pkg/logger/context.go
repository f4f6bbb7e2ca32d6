package logger

import (
	"context"

	"go.uber.org/zap"
)

// key 私有类型，避免与其他包的 context key 冲突
type key struct{}

var loggerKey = key{}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.NewNop()
}

// StaticContext adapts an already built logger to the Open/Close lifecycle.
// Close only flushes; the logger stays usable.
type StaticContext struct {
	l *zap.Logger
}

// Static 包装现有 logger（测试或嵌入方使用）
func Static(l *zap.Logger) *StaticContext {
	if l == nil {
		l = zap.NewNop()
	}
	return &StaticContext{l: l}
}

// Open 返回被包装的 logger
func (s *StaticContext) Open() (*zap.Logger, error) { return s.l, nil }

// Close 刷盘
func (s *StaticContext) Close() error {
	_ = s.l.Sync()
	return nil
}
