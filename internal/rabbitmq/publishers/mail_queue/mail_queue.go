package mailqueue

import (
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/mail"
	"authflow/internal/rabbitmq/schema"
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ is a mail.Sender that hands messages over to the mailer worker.
type RabbitMQ struct {
	log       logging.Logger
	publisher Publisher
	queue     string
}

func NewRabbitMQ(log logging.Logger, publisher Publisher, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, publisher: publisher, queue: queue}
}

func (s *RabbitMQ) Send(ctx context.Context, message mail.Message) error {
	m := schema.Mail{To: string(message.To), Subject: message.Subject, Body: message.Body}
	body, err := m.Marshal()
	if err != nil {
		return err
	}

	// Default exchange routes by queue name.
	err = s.publisher.PublishWithContext(ctx, "", s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("queue", s.queue))
		return fmt.Errorf("%w: %v", mail.ErrDeliveryFailed, err)
	}
	s.log.Info(
		ctx,
		"Mail has been queued.",
		logging.Entry("queue", s.queue),
		logging.Entry("to", message.To),
	)
	return nil
}
