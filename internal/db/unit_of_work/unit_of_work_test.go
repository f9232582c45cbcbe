package uow

import (
	"authflow/internal/core/domain/user"
	"authflow/internal/db"
	dbuser "authflow/internal/db/user"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const EMAIL = "test@test.com"

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createInput() user.CreateUserInput {
	return user.CreateUserInput{
		Name:         "Test",
		Email:        EMAIL,
		PasswordHash: "test",
		IsActive:     true,
		Role:         user.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
}

func (s *testSuite) TestCommit() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)

	created, err := uow.Users().Create(ctx, s.createInput())
	s.Require().Nil(err)
	s.Require().Nil(uow.Commit(ctx))

	u, err := dbuser.NewPgxRepository(s.pool).GetByEmail(ctx, EMAIL)
	s.Require().Nil(err)
	s.Require().Equal(created.ID, u.ID)
}

func (s *testSuite) TestRollback() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	_, err = uow.Users().Create(ctx, s.createInput())
	s.Require().Nil(err)
	s.Require().Nil(uow.Rollback(ctx))

	_, err = dbuser.NewPgxRepository(s.pool).GetByEmail(ctx, EMAIL)
	s.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}
