package main

import (
	"authflow/internal/app/consumers"
	"authflow/internal/app/deps"
	"context"
	"os"
	"os/signal"
	"syscall"

	dl "authflow/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitMailerDeps()
	shutdownConsumers := consumers.InitConsumers(deps)
	deps.Logger.Info(context.Background(), "Mailer has started.", dl.Entry("queue", deps.Config.RabbitmqMailQueue))

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopCh

	shutdownConsumers()
	shutdownDeps()
	deps.Logger.Info(context.Background(), "Mailer has shutdowned.")
}
