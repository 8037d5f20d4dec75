package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/config"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/security"
	"github.com/eusilvaluiz/sabor-sem-limites-app/test/testutils"
)

type MiddlewareTestSuite struct {
	suite.Suite
	auth *security.AuthService
}

func (s *MiddlewareTestSuite) SetupTest() {
	s.auth = security.NewAuthService(&config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		BCryptCost:    4,
	}, zap.NewNop())
}

func (s *MiddlewareTestSuite) identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func (s *MiddlewareTestSuite) TestAuthenticateRejectsMissingToken() {
	handler := Authenticate(s.auth)(s.identityEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "UNAUTHORIZED")
}

func (s *MiddlewareTestSuite) TestAuthenticateAcceptsBearerToken() {
	u := testutils.NewTestUser()
	token, err := s.auth.Issue(u)
	s.Require().NoError(err)

	handler := Authenticate(s.auth)(s.identityEcho())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *MiddlewareTestSuite) TestAuthenticateAcceptsQueryToken() {
	token, err := s.auth.Issue(testutils.NewTestUser())
	s.Require().NoError(err)

	handler := Authenticate(s.auth)(s.identityEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream?token="+token, nil))

	s.Equal(http.StatusOK, rec.Code)
}

func (s *MiddlewareTestSuite) TestAuthenticateRejectsTamperedToken() {
	token, err := s.auth.Issue(testutils.NewTestUser())
	s.Require().NoError(err)

	handler := Authenticate(s.auth)(s.identityEcho())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *MiddlewareTestSuite) TestRequireAdminBlocksRegularUser() {
	token, err := s.auth.Issue(testutils.NewTestUser())
	s.Require().NoError(err)

	handler := Authenticate(s.auth)(RequireAdmin()(s.identityEcho()))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), "INSUFFICIENT_PERMISSIONS")
}

func (s *MiddlewareTestSuite) TestRequireAdminAllowsAdmin() {
	token, err := s.auth.Issue(testutils.NewTestAdmin())
	s.Require().NoError(err)

	handler := Authenticate(s.auth)(RequireAdmin()(s.identityEcho()))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *MiddlewareTestSuite) TestCORSAllowsConfiguredOrigin() {
	handler := CORS([]string{"http://localhost:5173"})(s.identityEcho())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recipes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *MiddlewareTestSuite) TestCORSIgnoresUnknownOrigin() {
	handler := CORS([]string{"http://localhost:5173"})(s.identityEcho())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recipes", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Empty(rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *MiddlewareTestSuite) TestRateLimiterEnforcesBurst() {
	rl := NewRateLimiter(&config.RateLimitConfig{
		Enable:         true,
		RequestsPerMin: 60,
		BurstSize:      2,
	})
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat/messages", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	s.Equal([]int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	rl.Close()
	rl.Close()
}

func (s *MiddlewareTestSuite) TestRateLimiterDisabledPassesThrough() {
	rl := NewRateLimiter(&config.RateLimitConfig{Enable: false, RequestsPerMin: 1, BurstSize: 1})
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat/messages", nil))
		s.Equal(http.StatusOK, rec.Code)
	}
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
