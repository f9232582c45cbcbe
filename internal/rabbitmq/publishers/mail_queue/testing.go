package mailqueue

import (
	"context"
	"fmt"
	"sync"

	"github.com/rabbitmq/amqp091-go"
)

type FakePublisher struct {
	Published   []amqp091.Publishing
	Keys        []string
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (p *FakePublisher) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp091.Publishing,
) error {
	if p.ReturnError {
		return fmt.Errorf("channel is closed")
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, msg)
	p.Keys = append(p.Keys, key)
	return nil
}
