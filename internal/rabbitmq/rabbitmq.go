package rabbitmq

import (
	"authflow/internal/core/domain/logging"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const retryInterval = 3 * time.Second

// Setup prepares a fresh amqp channel. Setups run again on every channel
// recreated after the broker drops it.
type Setup func(ch *amqp.Channel) error

// DurableQueue declares a queue that survives broker restarts. A positive
// prefetch limits unacknowledged deliveries per consumer.
func DurableQueue(name string, prefetch int) Setup {
	return func(ch *amqp.Channel) error {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("could not declare queue %q: %w", name, err)
		}
		if prefetch > 0 {
			if err := ch.Qos(prefetch, 0, false); err != nil {
				return fmt.Errorf("could not set prefetch for queue %q: %w", name, err)
			}
		}
		return nil
	}
}

func applySetups(ch *amqp.Channel, setups []Setup) error {
	for _, setup := range setups {
		if err := setup(ch); err != nil {
			return err
		}
	}
	return nil
}

// Connection redials the broker whenever the underlying connection is lost.
type Connection struct {
	*amqp.Connection
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{Connection: conn, log: log}
	go connection.watch(url)
	return connection, nil
}

func (c *Connection) watch(url string) {
	ctx := context.Background()
	for {
		reason, ok := <-c.Connection.NotifyClose(make(chan *amqp.Error))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(retryInterval)

			conn, err := amqp.Dial(url)
			if err == nil {
				c.Connection = conn
				c.log.Info(ctx, "RabbitMQ connection restored.")
				break
			}
			c.log.Error(ctx, "Could not restore RabbitMQ connection.", logging.Entry("err", err))
		}
	}
}

// Channel opens a channel prepared by setups and keeps it open across drops.
func (c *Connection) Channel(setups ...Setup) (*Channel, error) {
	ch, err := c.open(setups)
	if err != nil {
		return nil, err
	}

	channel := &Channel{Channel: ch, log: c.log}
	go c.keepOpen(channel, setups)
	return channel, nil
}

func (c *Connection) open(setups []Setup) (*amqp.Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	if err := applySetups(ch, setups); err != nil {
		ch.Close()
		return nil, err
	}
	return ch, nil
}

func (c *Connection) keepOpen(channel *Channel, setups []Setup) {
	ctx := context.Background()
	for {
		reason, ok := <-channel.Channel.NotifyClose(make(chan *amqp.Error))
		if !ok || channel.IsClosed() {
			// Marks the wrapper closed when the connection went away under it.
			channel.Close()
			return
		}

		c.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(retryInterval)

			ch, err := c.open(setups)
			if err == nil {
				channel.Channel = ch
				c.log.Info(ctx, "RabbitMQ channel reopened.")
				break
			}
			c.log.Error(ctx, "Could not reopen RabbitMQ channel.", logging.Entry("err", err))
		}
	}
}

type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

// IsClosed reports whether Close was called on the wrapper.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.Channel.Close()
}

// Consume keeps delivering from queue across channel reopenings. The returned
// channel is closed once the wrapper is closed.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		ctx := context.Background()
		for !ch.IsClosed() {
			source, err := ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(ctx, "Could not consume.", logging.Entry("queue", queue), logging.Entry("err", err))
				time.Sleep(retryInterval)
				continue
			}

			for delivery := range source {
				deliveries <- delivery
			}

			// The source ends before a reopened channel is swapped in.
			time.Sleep(retryInterval)
		}
		ch.log.Info(ctx, "Channel is closed, stop consuming.", logging.Entry("queue", queue))
	}()

	return deliveries, nil
}
