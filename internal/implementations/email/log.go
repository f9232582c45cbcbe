package email

import (
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/mail"
	"context"
)

// LogSender only records that a message would have been sent. Bodies carry
// reset links and are never written out.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, message mail.Message) error {
	s.log.Info(
		ctx,
		"Email delivery skipped, log notifier is configured.",
		logging.Entry("to", message.To),
		logging.Entry("subject", message.Subject),
	)
	return nil
}
