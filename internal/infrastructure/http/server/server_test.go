package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/config"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/security"
)

type ServerTestSuite struct {
	suite.Suite
	server *Server
}

func (s *ServerTestSuite) SetupSuite() {
	cfg := &config.Config{
		App: config.AppConfig{Version: "1.0.0"},
		Server: config.ServerConfig{
			Host:          "127.0.0.1",
			Port:          0,
			EnableMetrics: true,
		},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			JWTExpiration: time.Hour,
			BCryptCost:    4,
		},
		RateLimit: config.RateLimitConfig{Enable: false},
	}
	auth := security.NewAuthService(&cfg.Auth, zap.NewNop())

	// Metrics are enabled by default, so router construction must
	// not trip chi's middleware-after-route panic.
	s.Require().NotPanics(func() {
		s.server = New(cfg, zap.NewNop(), auth, Services{})
	})
}

func (s *ServerTestSuite) TestHealthEndpoint() {
	rec := httptest.NewRecorder()
	s.server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"healthy"`)
}

func (s *ServerTestSuite) TestMetricsEndpointMounted() {
	rec := httptest.NewRecorder()
	s.server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestUnknownRouteReturns404() {
	rec := httptest.NewRecorder()
	s.server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	s.Equal(http.StatusNotFound, rec.Code)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
