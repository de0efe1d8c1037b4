package classfile

import (
	"github.com/tliron/commonlog"
	"go.uber.org/zap"
)

// Tracer receives leveled, structured trace events while a class file is
// decoded. commonlog.Logger satisfies it, so any commonlog logger (or
// commonlog.MOCK_LOGGER) can be passed straight to WithTracer.
type Tracer interface {
	Debug(message string, keysAndValues ...any)
	Warning(message string, keysAndValues ...any)
	Error(message string, keysAndValues ...any)
}

// NopTracer discards everything.
var NopTracer Tracer = commonlog.MOCK_LOGGER

// ZapTracer adapts a zap logger.
func ZapTracer(l *zap.Logger) Tracer {
	if l == nil {
		l = zap.NewNop()
	}
	return zapTracer{l.Sugar()}
}

type zapTracer struct {
	s *zap.SugaredLogger
}

func (t zapTracer) Debug(message string, keysAndValues ...any) {
	t.s.Debugw(message, keysAndValues...)
}

func (t zapTracer) Warning(message string, keysAndValues ...any) {
	t.s.Warnw(message, keysAndValues...)
}

func (t zapTracer) Error(message string, keysAndValues ...any) {
	t.s.Errorw(message, keysAndValues...)
}
