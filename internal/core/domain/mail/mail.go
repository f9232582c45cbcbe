package mail

import (
	c "authflow/internal/core/domain/common"
	"context"
	"errors"
)

var ErrDeliveryFailed = errors.New("mail delivery failed")

type Message struct {
	To      c.Email
	Subject string
	Body    string
}

// Sender delivers a single HTML message. Implementations must not retry on their own.
type Sender interface {
	Send(ctx context.Context, message Message) error
}
