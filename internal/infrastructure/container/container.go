// Package container wires the application together with Uber FX.
package container

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	assistantapp "github.com/eusilvaluiz/sabor-sem-limites-app/internal/application/assistant"
	categoryapp "github.com/eusilvaluiz/sabor-sem-limites-app/internal/application/category"
	chatapp "github.com/eusilvaluiz/sabor-sem-limites-app/internal/application/chat"
	favoriteapp "github.com/eusilvaluiz/sabor-sem-limites-app/internal/application/favorite"
	recipeapp "github.com/eusilvaluiz/sabor-sem-limites-app/internal/application/recipe"
	userapp "github.com/eusilvaluiz/sabor-sem-limites-app/internal/application/user"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/ai/openai"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/config"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/eventbus"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/http/server"
	gormrepo "github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/persistence/gorm"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/persistence/migrations"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/persistence/postgres"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/persistence/sqlite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/security"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/storage"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/pkg/logger"
)

// Module provides every dependency of the API process.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	EventModule,
	SecurityModule,
	StorageModule,
	CompletionModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging.
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the GORM connection. Postgres is the
// production driver; sqlite serves local runs without a server.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "sqlite" {
			path := cfg.Database.Database
			if path == "" {
				path = ":memory:"
			}
			log.Info("Using sqlite database", zap.String("path", path))
			return sqlite.Open(path)
		}

		if cfg.Database.AutoMigrate {
			if err := migrations.Up(cfg.GetDatabaseURL(), log); err != nil {
				return nil, err
			}
		}
		return postgres.Connect(cfg, log)
	},
)

// CacheModule provides the cache store, redis-backed when enabled.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheStore, error) {
		if !cfg.Redis.Enabled {
			log.Info("Using in-memory cache")
			return cache.NewMemoryStore(), nil
		}

		client, err := cache.NewRedisClient(&cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisStore(client, log), nil
	},
)

// EventModule provides the in-process event bus.
var EventModule = fx.Options(
	fx.Provide(
		fx.Annotate(
			eventbus.New,
			fx.As(new(outbound.EventBus)),
		),
	),
	fx.Invoke(RegisterEventSubscribers),
)

// SecurityModule provides hashing and token issuance.
var SecurityModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *security.AuthService {
		return security.NewAuthService(&cfg.Auth, log)
	},
	func(auth *security.AuthService) outbound.PasswordHasher { return auth },
	func(auth *security.AuthService) outbound.TokenIssuer { return auth },
)

// StorageModule provides the S3 object store.
var StorageModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.StorageService, error) {
		return storage.NewS3Store(&cfg.AWS, log)
	},
)

// CompletionModule provides the chat completion client.
var CompletionModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CompletionClient {
		return openai.NewClient(&cfg.AI, log)
	},
)

// RepositoryModule provides the GORM repositories.
var RepositoryModule = fx.Provide(
	fx.Annotate(gormrepo.NewCategoryRepository, fx.As(new(outbound.CategoryRepository))),
	fx.Annotate(gormrepo.NewRecipeRepository, fx.As(new(outbound.RecipeRepository))),
	fx.Annotate(gormrepo.NewUserRepository, fx.As(new(outbound.UserRepository))),
	fx.Annotate(gormrepo.NewFavoriteRepository, fx.As(new(outbound.FavoriteRepository))),
	fx.Annotate(gormrepo.NewConversationRepository, fx.As(new(outbound.ConversationRepository))),
	fx.Annotate(gormrepo.NewMessageRepository, fx.As(new(outbound.MessageRepository))),
	fx.Annotate(gormrepo.NewAssistantConfigRepository, fx.As(new(outbound.AssistantConfigRepository))),
)

// ServiceModule provides the application services.
var ServiceModule = fx.Provide(
	func(repo outbound.CategoryRepository, store outbound.CacheStore, cfg *config.Config, log *zap.Logger) inbound.CategoryService {
		return categoryapp.NewService(repo, store, cfg.Cache.CatalogTTL, log)
	},
	func(repo outbound.RecipeRepository, store outbound.CacheStore, cfg *config.Config, log *zap.Logger) inbound.RecipeService {
		return recipeapp.NewService(repo, store, cfg.Cache.CatalogTTL, log)
	},
	func(repo outbound.RecipeRepository, completions outbound.CompletionClient, log *zap.Logger) inbound.RecipeToolsService {
		return recipeapp.NewToolsService(repo, completions, log)
	},
	func(repo outbound.UserRepository, hasher outbound.PasswordHasher, tokens outbound.TokenIssuer, log *zap.Logger) inbound.UserService {
		return userapp.NewService(repo, hasher, tokens, log)
	},
	func(repo outbound.FavoriteRepository, store outbound.CacheStore, events outbound.EventBus, cfg *config.Config, log *zap.Logger) inbound.FavoriteService {
		return favoriteapp.NewService(repo, store, cfg.Cache.PersonalTTL, events, log)
	},
	func(
		conversations outbound.ConversationRepository,
		messages outbound.MessageRepository,
		recipes outbound.RecipeRepository,
		completions outbound.CompletionClient,
		events outbound.EventBus,
		store outbound.CacheStore,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.ChatService {
		return chatapp.NewService(conversations, messages, recipes, completions, events, store, cfg.Cache.PersonalTTL, log)
	},
	func(repo outbound.AssistantConfigRepository, store outbound.CacheStore, cfg *config.Config, log *zap.Logger) inbound.AssistantService {
		return assistantapp.NewService(repo, store, cfg.Cache.CatalogTTL, log)
	},
)

// HTTPModule provides the HTTP server.
var HTTPModule = fx.Provide(
	func(
		cfg *config.Config,
		log *zap.Logger,
		auth *security.AuthService,
		categories inbound.CategoryService,
		recipes inbound.RecipeService,
		tools inbound.RecipeToolsService,
		users inbound.UserService,
		favorites inbound.FavoriteService,
		chat inbound.ChatService,
		assistant inbound.AssistantService,
		objectStore outbound.StorageService,
	) *server.Server {
		return server.New(cfg, log, auth, server.Services{
			Categories: categories,
			Recipes:    recipes,
			Tools:      tools,
			Users:      users,
			Favorites:  favorites,
			Chat:       chat,
			Assistant:  assistant,
			Storage:    objectStore,
		})
	},
)

// LifecycleModule starts and stops the process components.
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// RegisterLifecycleHooks ties the HTTP server and database to the fx
// lifecycle.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shut down HTTP server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
