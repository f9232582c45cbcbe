package logging

import (
	"authflow/internal/core/domain/logging"
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

type ZapLogger struct {
	logger       *zap.Logger
	sugar        *zap.SugaredLogger
	reportErrors bool
}

// NewZapLogger builds a production logger. With reportErrors set, every
// error-level record is also captured by the global Sentry hub.
func NewZapLogger(reportErrors bool) *ZapLogger {
	logger, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic("Could not create Zap logger.")
	}
	sugar := logger.Sugar()
	return &ZapLogger{logger: logger, sugar: sugar, reportErrors: reportErrors}
}

func (l *ZapLogger) Sync() {
	l.logger.Sync()
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Debugw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Infow(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Warning(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Warnw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Errorw(msg, prepareArgs(entries...)...)
	if l.reportErrors {
		report(ctx, msg, entries...)
	}
}

func report(ctx context.Context, msg string, entries ...logging.LogEntry) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		var reported error
		for _, e := range entries {
			if err, ok := e.Value.(error); ok && reported == nil {
				reported = err
				continue
			}
			scope.SetExtra(e.Key, fmt.Sprint(e.Value))
		}
		if reported == nil {
			hub.CaptureMessage(msg)
			return
		}
		scope.SetExtra("msg", msg)
		hub.CaptureException(reported)
	})
}

func prepareArgs(entries ...logging.LogEntry) []interface{} {
	args := make([]interface{}, 0, len(entries)*2)
	for _, e := range entries {
		args = append(args, e.Key, e.Value)
	}
	return args
}
