package loginwithemail

import (
	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = c.Email("test@test.test")
	RAW_PASSWORD = user.RawPassword("test-password")
)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
	User           user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(suite.Logger, suite.UserRepository, suite.PasswordHasher)

	passwordHash, _ := suite.PasswordHasher.HashPassword(RAW_PASSWORD)
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Name:         "Test",
		Email:        EMAIL,
		PasswordHash: passwordHash,
		IsActive:     true,
		Role:         user.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	suite.Require().Nil(err)
	suite.User = u
}

func TestLogInWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(suite.User.ID, result.User.ID)
}

func (suite *testSuite) TestInvalidPassword() {
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: "wrong-password"})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrInvalidCredentials))
}

func (suite *testSuite) TestUnknownEmail() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{Email: c.Email("unknown@test.test"), Password: RAW_PASSWORD},
	)

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrInvalidCredentials))
}

func (suite *testSuite) TestRepositoryError() {
	suite.UserRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(errors.Is(err, user.ErrInvalidCredentials))
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
