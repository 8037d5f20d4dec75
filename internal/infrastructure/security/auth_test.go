package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/config"
	"github.com/eusilvaluiz/sabor-sem-limites-app/test/testutils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	auth *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.auth = NewAuthService(&config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		BCryptCost:    4,
	}, zap.NewNop())
}

func (s *AuthServiceTestSuite) TestHashAndVerify() {
	hash, err := s.auth.Hash("senha-secreta")
	s.Require().NoError(err)
	s.NotEqual("senha-secreta", hash)

	s.True(s.auth.Verify(hash, "senha-secreta"))
	s.False(s.auth.Verify(hash, "senha-errada"))
}

func (s *AuthServiceTestSuite) TestIssueCarriesIdentity() {
	u := testutils.NewTestAdmin()

	token, err := s.auth.Issue(u)
	s.Require().NoError(err)

	claims, err := s.auth.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(u.ID.String(), claims.UserID)
	s.Equal(u.Email, claims.Email)
	s.Equal(string(user.RoleAdmin), claims.Role)
}

func (s *AuthServiceTestSuite) TestValidateRejectsWrongSecret() {
	u := testutils.NewTestUser()

	other := NewAuthService(&config.AuthConfig{
		JWTSecret:     "another-secret",
		JWTExpiration: time.Hour,
		BCryptCost:    4,
	}, zap.NewNop())

	token, err := other.Issue(u)
	s.Require().NoError(err)

	_, err = s.auth.ValidateToken(token)
	s.Error(err)
}

func (s *AuthServiceTestSuite) TestValidateRejectsExpiredToken() {
	expired := NewAuthService(&config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTExpiration: -time.Minute,
		BCryptCost:    4,
	}, zap.NewNop())

	token, err := expired.Issue(testutils.NewTestUser())
	s.Require().NoError(err)

	_, err = s.auth.ValidateToken(token)
	s.Error(err)
}

func (s *AuthServiceTestSuite) TestValidateRejectsGarbage() {
	_, err := s.auth.ValidateToken("not-a-token")
	s.Error(err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
