// Package server assembles the chi router and HTTP server for the
// JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/config"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/http/handlers"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/http/middleware"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/security"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// Services bundles the application services the router exposes.
type Services struct {
	Categories inbound.CategoryService
	Recipes    inbound.RecipeService
	Tools      inbound.RecipeToolsService
	Users      inbound.UserService
	Favorites  inbound.FavoriteService
	Chat       inbound.ChatService
	Assistant  inbound.AssistantService
	Storage    outbound.StorageService
}

// Server is the HTTP server for the API.
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// New creates the server with all routes mounted.
func New(cfg *config.Config, logger *zap.Logger, auth *security.AuthService, services Services) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
	}

	s.router = s.setupRouter(auth, services)
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) setupRouter(auth *security.AuthService, services Services) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))

	// chi requires every middleware before the first route.
	if s.config.Server.EnableMetrics {
		r.Use(middleware.NewMetrics().Collect)
	}

	r.Get("/health", s.handleHealth)
	if s.config.Server.EnableMetrics {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	authH := handlers.NewAuthHandlers(services.Users, s.logger)
	categoryH := handlers.NewCategoryHandlers(services.Categories, services.Recipes, s.logger)
	recipeH := handlers.NewRecipeHandlers(services.Recipes, services.Tools, s.logger)
	userH := handlers.NewUserHandlers(services.Users, s.logger)
	favoriteH := handlers.NewFavoriteHandlers(services.Favorites, s.logger)
	chatH := handlers.NewChatHandlers(services.Chat, s.config, s.logger)
	assistantH := handlers.NewAssistantHandlers(services.Assistant, s.logger)
	uploadH := handlers.NewUploadHandlers(services.Storage, s.logger)

	authenticate := middleware.Authenticate(auth)
	requireAdmin := middleware.RequireAdmin()
	completionLimit := middleware.NewRateLimiter(&s.config.RateLimit).Limit

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", authH.Me)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryH.List)
			r.Get("/{id}", categoryH.Get)
			r.Get("/{id}/recipes", categoryH.ListRecipes)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, requireAdmin)
				r.Post("/", categoryH.Create)
				r.Put("/{id}", categoryH.Update)
				r.Delete("/{id}", categoryH.Delete)
			})
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeH.List)
			r.Get("/{id}", recipeH.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, requireAdmin)
				r.Post("/", recipeH.Create)
				r.Put("/{id}", recipeH.Update)
				r.Delete("/{id}", recipeH.Delete)
			})

			// Completion-backed recipe tools.
			r.Group(func(r chi.Router) {
				r.Use(authenticate, completionLimit)
				r.Post("/{id}/tools/servings", recipeH.AdjustServings)
				r.Post("/{id}/tools/substitute", recipeH.SubstituteIngredients)
				r.Post("/{id}/tools/nutrition", recipeH.CalculateNutrition)
				r.Post("/{id}/tools/convert", recipeH.ConvertUnits)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authenticate, requireAdmin)
			r.Get("/", userH.List)
			r.Get("/{id}", userH.Get)
			r.Post("/", userH.Create)
			r.Put("/{id}", userH.Update)
			r.Delete("/{id}", userH.Delete)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", favoriteH.List)
			r.Get("/{recipeId}", favoriteH.Status)
			r.Post("/{recipeId}", favoriteH.Toggle)
			r.Put("/{recipeId}", favoriteH.Add)
			r.Delete("/{recipeId}", favoriteH.Remove)
		})

		r.Route("/chat", func(r chi.Router) {
			r.Use(authenticate)

			r.Group(func(r chi.Router) {
				r.Use(completionLimit)
				r.Post("/messages", chatH.SendMessage)
				r.Post("/recipes/{recipeId}/messages", chatH.SendRecipeMessage)
			})
			r.Get("/stream", chatH.Stream)

			r.Get("/conversations", chatH.ListConversations)
			r.Get("/conversations/{id}/messages", chatH.GetMessages)
			r.Delete("/conversations/{id}", chatH.DeleteConversation)
			r.Get("/recipes/{recipeId}/messages", chatH.GetRecipeMessages)
			r.Delete("/recipes/{recipeId}/messages", chatH.ClearRecipeMessages)
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Use(authenticate, requireAdmin)
			r.Post("/", uploadH.Upload)
		})

		r.Route("/assistant", func(r chi.Router) {
			r.Get("/", assistantH.GetActive)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, requireAdmin)
				r.Post("/", assistantH.Create)
				r.Put("/{id}", assistantH.Update)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"version": s.config.App.Version,
		"time":    time.Now().Unix(),
	})
}

// Router exposes the mux, mainly for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start begins serving. It blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
