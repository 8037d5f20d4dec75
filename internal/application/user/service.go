// Package user provides the application layer for authentication and
// user administration.
package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// Service implements the user use cases.
type Service struct {
	repo   outbound.UserRepository
	hasher outbound.PasswordHasher
	tokens outbound.TokenIssuer
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(
	repo outbound.UserRepository,
	hasher outbound.PasswordHasher,
	tokens outbound.TokenIssuer,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.Named("user-service"),
	}
}

var _ inbound.UserService = (*Service)(nil)

// Register creates a regular account from the public signup form.
func (s *Service) Register(ctx context.Context, cmd inbound.RegisterCommand) (*user.User, error) {
	return s.create(ctx, cmd.Name, cmd.Email, cmd.Password, user.RoleUser, nil)
}

// Authenticate verifies credentials and issues an access token.
// Unknown email and wrong password report the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*inbound.AuthResult, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if err == outbound.ErrNotFound {
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, errors.NewDatabaseError("find user by email", err)
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, errors.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	s.logger.Info("User authenticated", zap.String("user_id", u.ID.String()))
	return &inbound.AuthResult{User: u, Token: token}, nil
}

// GetByID returns a single user.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == outbound.ErrNotFound {
			return nil, errors.NewUserNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	return u, nil
}

// List returns all users for the admin screen.
func (s *Service) List(ctx context.Context) ([]*user.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list users", err)
	}
	return users, nil
}

// Search matches the query against user names and emails,
// case-insensitively. A blank query returns everything.
func (s *Service) Search(ctx context.Context, query string) ([]*user.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	users, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, errors.NewDatabaseError("search users", err)
	}
	return users, nil
}

// Create adds a user from the admin screen, with an explicit role.
func (s *Service) Create(ctx context.Context, cmd inbound.CreateUserCommand) (*user.User, error) {
	return s.create(ctx, cmd.Name, cmd.Email, cmd.Password, user.ParseRole(cmd.Role), cmd.AvatarURL)
}

// Update modifies an existing user. An empty password keeps the
// current hash.
func (s *Service) Update(ctx context.Context, id uuid.UUID, cmd inbound.UpdateUserCommand) (*user.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(cmd.Email)
	if email != u.Email {
		if _, err := s.repo.FindByEmail(ctx, email); err == nil {
			return nil, errors.NewEmailAlreadyExistsError(email)
		} else if err != outbound.ErrNotFound {
			return nil, errors.NewDatabaseError("check email", err)
		}
	}

	u.Name = cmd.Name
	u.Email = email
	u.AvatarURL = cmd.AvatarURL
	u.Role = user.ParseRole(cmd.Role)
	u.UpdatedAt = time.Now()

	if cmd.Password != "" {
		hash, err := s.hasher.Hash(cmd.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, errors.NewDatabaseError("update user", err)
	}
	return u, nil
}

// Delete removes a user and, through the database cascade, their
// favorites and chat history.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewDatabaseError("delete user", err)
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *Service) create(ctx context.Context, name, email, password string, role user.Role, avatarURL *string) (*user.User, error) {
	email = strings.ToLower(email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, errors.NewEmailAlreadyExistsError(email)
	} else if err != outbound.ErrNotFound {
		return nil, errors.NewDatabaseError("check email", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	u, err := user.New(name, email, hash, role, avatarURL)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User created",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)),
	)
	return u, nil
}
