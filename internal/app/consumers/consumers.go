package consumers

import (
	"authflow/internal/app/deps"
	dl "authflow/internal/core/domain/logging"
	"authflow/internal/rabbitmq"
	sendmail "authflow/internal/rabbitmq/consumers/send_mail"
	"context"
)

func initSendMailConsumer(ctx context.Context, deps *deps.MailerDeps) func() {
	queue := deps.Config.RabbitmqMailQueue
	// One unacked mail at a time per worker.
	rabbitmqChannel, err := deps.Rabbitmq.Channel(rabbitmq.DurableQueue(queue, 1))
	if err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ channel.", dl.Entry("queue", queue), dl.Entry("err", err))
		panic(err)
	}

	consumer := sendmail.New(deps.Logger, rabbitmqChannel, queue, deps.MailSender)
	if err = consumer.Consume(ctx); err != nil {
		deps.Logger.Error(
			ctx,
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(ctx, "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.MailerDeps) func() {
	ctx, cancel := context.WithCancel(context.Background())
	shutdownSendMailConsumer := initSendMailConsumer(ctx, deps)

	return func() {
		cancel()
		shutdownSendMailConsumer()
	}
}
