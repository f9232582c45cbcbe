package sendpasswordresettoken

import (
	c "authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	"context"
	"errors"
	"time"

	"github.com/golang-module/carbon/v2"
)

type Input struct {
	Email c.Email
}

// Result is empty when no user owns the requested email.
type Result struct {
	User      c.Optional[user.User]
	Token     c.Optional[user.PasswordResetToken]
	ExpiresAt c.Optional[time.Time]
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	validForHours  int
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	validForHours int,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if validForHours <= 0 {
		panic(e.NewInvalidStateError("validForHours must be positive, got %d", validForHours))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		validForHours:  validForHours,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	token, err := s.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		s.log.Error(ctx, "Could not generate password reset token.", logging.Entry("err", err))
		return result, err
	}
	expiresAt := carbon.Time2Carbon(s.now()).AddHours(s.validForHours).Carbon2Time().UTC()

	u, err := s.userRepository.SetPasswordResetToken(ctx, user.SetPasswordResetTokenInput{
		Email:     input.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store password reset token.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("userId", u.ID),
		logging.Entry("expiresAt", expiresAt),
	)
	return Result{
		User:      c.NewOptional(u, true),
		Token:     c.NewOptional(token, true),
		ExpiresAt: c.NewOptional(expiresAt, true),
	}, nil
}
