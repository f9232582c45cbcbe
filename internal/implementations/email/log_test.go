package email

import (
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/mail"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogSenderDoesNotLogBody(t *testing.T) {
	log := logging.NewFakeLogger()
	sender := NewLogSender(log)

	err := sender.Send(context.Background(), mail.Message{
		To:      "test@test.test",
		Subject: "Subject",
		Body:    "secret-link",
	})

	require.Nil(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.INFO))
	for _, entry := range log.Logged[0].Entries {
		require.NotContains(t, fmt.Sprint(entry.Value), "secret-link")
	}
}
