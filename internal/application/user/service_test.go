package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
	"github.com/eusilvaluiz/sabor-sem-limites-app/test/testutils"
)

type UserServiceTestSuite struct {
	suite.Suite
	repo    *testutils.MockUserRepository
	hasher  *testutils.MockPasswordHasher
	tokens  *testutils.MockTokenIssuer
	service *Service
	ctx     context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.repo = new(testutils.MockUserRepository)
	s.hasher = new(testutils.MockPasswordHasher)
	s.tokens = new(testutils.MockTokenIssuer)
	s.service = NewService(s.repo, s.hasher, s.tokens, zap.NewNop())
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestRegisterLowercasesEmail() {
	s.repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(nil, outbound.ErrNotFound)
	s.hasher.On("Hash", "s3cretpass").Return("hashed", nil)
	s.repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	u, err := s.service.Register(s.ctx, inbound.RegisterCommand{
		Name:     "Maria",
		Email:    "Maria@Example.COM",
		Password: "s3cretpass",
	})

	s.Require().NoError(err)
	s.Equal("maria@example.com", u.Email)
	s.Equal(user.RoleUser, u.Role)
	s.Equal("hashed", u.PasswordHash)
}

func (s *UserServiceTestSuite) TestRegisterRejectsDuplicateEmail() {
	existing := testutils.NewTestUser()
	s.repo.On("FindByEmail", mock.Anything, mock.AnythingOfType("string")).Return(existing, nil)

	_, err := s.service.Register(s.ctx, inbound.RegisterCommand{
		Name:     "Maria",
		Email:    existing.Email,
		Password: "s3cretpass",
	})

	s.Require().Error(err)
	s.True(apperrors.Is(err, apperrors.CodeEmailAlreadyExists))
	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestAuthenticateIssuesToken() {
	u := testutils.NewTestUser()
	s.repo.On("FindByEmail", mock.Anything, u.Email).Return(u, nil)
	s.hasher.On("Verify", u.PasswordHash, "right-password").Return(true)
	s.tokens.On("Issue", u).Return("signed.jwt.token", nil)

	result, err := s.service.Authenticate(s.ctx, u.Email, "right-password")

	s.Require().NoError(err)
	s.Equal("signed.jwt.token", result.Token)
	s.Equal(u.ID, result.User.ID)
}

func (s *UserServiceTestSuite) TestAuthenticateWrongPasswordAndUnknownEmailLookAlike() {
	u := testutils.NewTestUser()
	s.repo.On("FindByEmail", mock.Anything, u.Email).Return(u, nil)
	s.repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, outbound.ErrNotFound)
	s.hasher.On("Verify", u.PasswordHash, "wrong").Return(false)

	_, wrongPass := s.service.Authenticate(s.ctx, u.Email, "wrong")
	_, unknown := s.service.Authenticate(s.ctx, "nobody@example.com", "wrong")

	s.Require().Error(wrongPass)
	s.Require().Error(unknown)
	s.Equal(apperrors.GetCode(wrongPass), apperrors.GetCode(unknown))
	s.True(apperrors.Is(wrongPass, apperrors.CodeInvalidCredentials))
}

func (s *UserServiceTestSuite) TestUpdateKeepsHashWhenPasswordBlank() {
	u := testutils.NewTestUser()
	originalHash := u.PasswordHash
	s.repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	s.repo.On("Update", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	updated, err := s.service.Update(s.ctx, u.ID, inbound.UpdateUserCommand{
		Name:  "Novo Nome",
		Email: u.Email,
		Role:  "admin",
	})

	s.Require().NoError(err)
	s.Equal(originalHash, updated.PasswordHash)
	s.Equal(user.RoleAdmin, updated.Role)
	s.hasher.AssertNotCalled(s.T(), "Hash", mock.Anything)
}

func (s *UserServiceTestSuite) TestSearchDelegatesToRepo() {
	found := testutils.NewTestUser()
	s.repo.On("Search", mock.Anything, "maria").Return([]*user.User{found}, nil).Once()

	users, err := s.service.Search(s.ctx, "  maria  ")
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal(found.ID, users[0].ID)

	s.repo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestSearchBlankQueryListsAll() {
	all := []*user.User{testutils.NewTestUser(), testutils.NewTestUser()}
	s.repo.On("FindAll", mock.Anything).Return(all, nil).Once()

	users, err := s.service.Search(s.ctx, "   ")
	s.Require().NoError(err)
	s.Len(users, 2)
	s.repo.AssertNotCalled(s.T(), "Search", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
