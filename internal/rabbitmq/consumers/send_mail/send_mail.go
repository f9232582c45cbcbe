package sendmail

import (
	"authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/mail"
	"authflow/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type DeliverySource interface {
	Consume(
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp091.Table,
	) (<-chan amqp091.Delivery, error)
}

type Consumer struct {
	log    logging.Logger
	source DeliverySource
	queue  string
	sender mail.Sender
}

func New(log logging.Logger, source DeliverySource, queue string, sender mail.Sender) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if source == nil {
		panic(e.NewNilArgumentError("source"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &Consumer{log: log, source: source, queue: queue, sender: sender}
}

// Consume handles deliveries until ctx is done or the channel is closed.
func (c *Consumer) Consume(ctx context.Context) error {
	deliveries, err := c.source.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(ctx, "Could not start consuming.", logging.Entry("queue", c.queue), logging.Entry("err", err))
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				c.Handle(ctx, delivery)
			}
		}
	}()
	return nil
}

// Handle sends one queued mail. A failed send is requeued once, then dropped.
func (c *Consumer) Handle(ctx context.Context, delivery amqp091.Delivery) {
	m := &schema.Mail{}
	if err := m.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal queued mail.",
			logging.Entry("deliveryTag", delivery.DeliveryTag),
			logging.Entry("err", err),
		)
		c.ack(ctx, delivery)
		return
	}

	err := c.sender.Send(ctx, mail.Message{To: common.NewEmail(m.To), Subject: m.Subject, Body: m.Body})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not send queued mail.",
			logging.Entry("to", m.To),
			logging.Entry("redelivered", delivery.Redelivered),
			logging.Entry("err", err),
		)
		if nackErr := delivery.Nack(false, !delivery.Redelivered); nackErr != nil {
			c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", nackErr))
		}
		return
	}

	c.log.Info(ctx, "Queued mail has been sent.", logging.Entry("to", m.To))
	c.ack(ctx, delivery)
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
