// Package testutils provides mock implementations and test data
// factories shared by the service tests.
package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/assistant"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/shared"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// MockCategoryRepository mocks outbound.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) SearchByName(ctx context.Context, term string) ([]*category.Category, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

// MockRecipeRepository mocks outbound.RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Search(ctx context.Context, term string) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// MockUserRepository mocks outbound.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, term string) ([]*user.User, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

// MockFavoriteRepository mocks outbound.FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, f *favorite.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*favorite.FavoriteRecipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*favorite.FavoriteRecipe), args.Error(1)
}

// MockConversationRepository mocks outbound.ConversationRepository.
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, c *chat.Conversation) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*chat.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*chat.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chat.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockMessageRepository mocks outbound.MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *chat.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) FindByConversation(ctx context.Context, conversationID uuid.UUID) ([]*chat.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chat.Message), args.Error(1)
}

func (m *MockMessageRepository) FindByUserRecipe(ctx context.Context, userID, recipeID uuid.UUID) ([]*chat.Message, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chat.Message), args.Error(1)
}

func (m *MockMessageRepository) DeleteByUserRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

// MockAssistantConfigRepository mocks outbound.AssistantConfigRepository.
type MockAssistantConfigRepository struct {
	mock.Mock
}

func (m *MockAssistantConfigRepository) FindActive(ctx context.Context) (*assistant.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Config), args.Error(1)
}

func (m *MockAssistantConfigRepository) Create(ctx context.Context, c *assistant.Config) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockAssistantConfigRepository) Update(ctx context.Context, c *assistant.Config) error {
	return m.Called(ctx, c).Error(0)
}

// MockCompletionClient mocks outbound.CompletionClient.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Chat(ctx context.Context, message, threadID string) (*outbound.ChatReply, error) {
	args := m.Called(ctx, message, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.ChatReply), args.Error(1)
}

func (m *MockCompletionClient) AskAboutRecipe(ctx context.Context, r *recipe.Recipe, question string) (string, error) {
	args := m.Called(ctx, r, question)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionClient) AdjustServings(ctx context.Context, r *recipe.Recipe, newServings int) (string, error) {
	args := m.Called(ctx, r, newServings)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionClient) SubstituteIngredients(ctx context.Context, r *recipe.Recipe, ingredients []string, reason string) (string, error) {
	args := m.Called(ctx, r, ingredients, reason)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionClient) CalculateNutrition(ctx context.Context, r *recipe.Recipe) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionClient) ConvertUnits(ctx context.Context, r *recipe.Recipe, fromUnit, toUnit, amount string) (string, error) {
	args := m.Called(ctx, r, fromUnit, toUnit, amount)
	return args.String(0), args.Error(1)
}

// MockPasswordHasher mocks outbound.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(hash, password string) bool {
	return m.Called(hash, password).Bool(0)
}

// MockTokenIssuer mocks outbound.TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(u *user.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

// RecordingEventBus captures published events for assertions.
// Subscribe is supported so services under test can also be wired to
// real handlers.
type RecordingEventBus struct {
	Events   []shared.DomainEvent
	handlers map[string][]func(shared.DomainEvent)
}

// NewRecordingEventBus creates an empty recording bus.
func NewRecordingEventBus() *RecordingEventBus {
	return &RecordingEventBus{handlers: make(map[string][]func(shared.DomainEvent))}
}

func (b *RecordingEventBus) Publish(ctx context.Context, event shared.DomainEvent) {
	b.Events = append(b.Events, event)
	for _, h := range b.handlers[event.EventName()] {
		h(event)
	}
}

func (b *RecordingEventBus) Subscribe(eventName string, handler func(shared.DomainEvent)) func() {
	b.handlers[eventName] = append(b.handlers[eventName], handler)
	return func() {}
}

// PublishedNames returns the event names in publish order.
func (b *RecordingEventBus) PublishedNames() []string {
	names := make([]string, 0, len(b.Events))
	for _, e := range b.Events {
		names = append(names, e.EventName())
	}
	return names
}
