package services

import (
	"authflow/internal/app/deps"
	"authflow/internal/core/services"
	loginwithemail "authflow/internal/core/services/log_in_with_email"
	resetpassword "authflow/internal/core/services/reset_password"
	sendpasswordresettoken "authflow/internal/core/services/send_password_reset_token"
	signupwithemail "authflow/internal/core/services/sign_up_with_email"
	"authflow/internal/metrics"
)

type Services struct {
	SignUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = metrics.WithOutcomes(
		"sign_up",
		signupwithemail.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	s.LogInWithEmail = metrics.WithOutcomes(
		"log_in",
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
		),
	)
	s.SendPasswordResetToken = metrics.WithOutcomes(
		"send_password_reset_token",
		sendpasswordresettoken.NewWithSending(
			deps.Logger,
			deps.PasswordResetTokenSender,
			sendpasswordresettoken.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordResetTokenGenerator,
				deps.Config.PasswordResetValidDurationHours,
				deps.Now,
			),
		),
	)
	s.ResetPassword = metrics.WithOutcomes(
		"reset_password",
		resetpassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.Now,
		),
	)

	return s
}
