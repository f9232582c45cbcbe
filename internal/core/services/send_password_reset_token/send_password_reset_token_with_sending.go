package sendpasswordresettoken

import (
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/mail"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	"context"
	"errors"
	"fmt"
)

type serviceWithSending struct {
	log    logging.Logger
	sender user.PasswordResetTokenSender
	inner  services.Service[Input, Result]
}

// NewWithSending delivers the issued token to its owner. A failed delivery
// keeps the stored token and is reported as mail.ErrDeliveryFailed.
func NewWithSending(
	log logging.Logger,
	sender user.PasswordResetTokenSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}
	if !result.User.IsPresent {
		return result, nil
	}

	err = s.sender.SendPasswordResetToken(ctx, result.User.Value, result.Token.Value)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userId", result.User.Value.ID),
			logging.Entry("err", err),
		)
		if errors.Is(err, mail.ErrDeliveryFailed) {
			return result, err
		}
		return result, fmt.Errorf("%w: %v", mail.ErrDeliveryFailed, err)
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent to the user.",
		logging.Entry("userId", result.User.Value.ID),
	)
	return result, nil
}
