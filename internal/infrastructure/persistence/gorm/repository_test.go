package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	gormdb "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/assistant"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

type RepositoryTestSuite struct {
	suite.Suite
	db            *gormdb.DB
	users         *UserRepository
	categories    *CategoryRepository
	recipes       *RecipeRepository
	favorites     *FavoriteRepository
	conversations *ConversationRepository
	messages      *MessageRepository
	assistants    *AssistantConfigRepository
	ctx           context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gormdb.Open(sqlite.Open(":memory:"), &gormdb.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&UserModel{}, &CategoryModel{}, &RecipeModel{}, &FavoriteModel{},
		&ConversationModel{}, &MessageModel{}, &AssistantConfigModel{},
	))

	s.db = db
	s.users = NewUserRepository(db)
	s.categories = NewCategoryRepository(db)
	s.recipes = NewRecipeRepository(db)
	s.favorites = NewFavoriteRepository(db)
	s.conversations = NewConversationRepository(db)
	s.messages = NewMessageRepository(db)
	s.assistants = NewAssistantConfigRepository(db)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) newUser(email string) *user.User {
	u, err := user.New("Test User", email, "hash", user.RoleUser, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func (s *RepositoryTestSuite) newRecipe(title string) *recipe.Recipe {
	r, err := recipe.New(title, "desc", 4, recipe.DifficultyEasy, true, true, "arroz, feijão", "Cozinhe tudo.")
	s.Require().NoError(err)
	s.Require().NoError(s.recipes.Create(s.ctx, r))
	return r
}

func (s *RepositoryTestSuite) TestDuplicateFavoriteTranslates() {
	u := s.newUser("fav@example.com")
	r := s.newRecipe("Feijoada leve")

	s.Require().NoError(s.favorites.Add(s.ctx, favorite.New(u.ID, r.ID)))
	err := s.favorites.Add(s.ctx, favorite.New(u.ID, r.ID))

	s.ErrorIs(err, favorite.ErrAlreadyFavorite)

	exists, err := s.favorites.Exists(s.ctx, u.ID, r.ID)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *RepositoryTestSuite) TestFavoriteListCarriesRecipePayload() {
	u := s.newUser("list@example.com")
	r := s.newRecipe("Tapioca recheada")
	s.Require().NoError(s.favorites.Add(s.ctx, favorite.New(u.ID, r.ID)))

	list, err := s.favorites.ListByUser(s.ctx, u.ID)

	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Tapioca recheada", list[0].Recipe.Title)
}

func (s *RepositoryTestSuite) TestRecipeSearchMatchesIngredients() {
	s.newRecipe("Bolo de cenoura")
	r, err := recipe.New("Sopa simples", "desc", 2, recipe.DifficultyEasy, true, true, "Abóbora e gengibre", "Cozinhe.")
	s.Require().NoError(err)
	s.Require().NoError(s.recipes.Create(s.ctx, r))

	results, err := s.recipes.Search(s.ctx, "gengibre")

	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("Sopa simples", results[0].Title)
}

func (s *RepositoryTestSuite) TestRecipeReadDenormalizesCategoryName() {
	cat, err := category.New("Sobremesas", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.categories.Create(s.ctx, cat))

	r, err := recipe.New("Pudim sem lactose", "desc", 8, recipe.DifficultyMedium, true, true, "leite de coco", "Asse.")
	s.Require().NoError(err)
	r.CategoryID = &cat.ID
	s.Require().NoError(s.recipes.Create(s.ctx, r))

	got, err := s.recipes.FindByID(s.ctx, r.ID)

	s.Require().NoError(err)
	s.Equal("Sobremesas", got.CategoryName)
	s.True(got.HasCategory())
}

func (s *RepositoryTestSuite) TestCategoryDeleteDetachesRecipes() {
	cat, err := category.New("Lanches", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.categories.Create(s.ctx, cat))

	r, err := recipe.New("Sanduíche natural", "desc", 1, recipe.DifficultyEasy, true, true, "pão sem glúten", "Monte.")
	s.Require().NoError(err)
	r.CategoryID = &cat.ID
	s.Require().NoError(s.recipes.Create(s.ctx, r))

	s.Require().NoError(s.categories.Delete(s.ctx, cat.ID))

	got, err := s.recipes.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Nil(got.CategoryID)
	s.False(got.HasCategory())
}

func (s *RepositoryTestSuite) TestCategoryListCountsRecipes() {
	cat, err := category.New("Massas", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.categories.Create(s.ctx, cat))

	for _, title := range []string{"Nhoque de batata", "Macarrão de arroz"} {
		r, err := recipe.New(title, "desc", 2, recipe.DifficultyEasy, true, true, "", "")
		s.Require().NoError(err)
		r.CategoryID = &cat.ID
		s.Require().NoError(s.recipes.Create(s.ctx, r))
	}

	categories, err := s.categories.FindAll(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(categories, 1)
	s.Equal(2, categories[0].RecipeCount)
}

func (s *RepositoryTestSuite) TestConversationDeleteRemovesMessages() {
	u := s.newUser("chat@example.com")
	conv, err := chat.NewConversation(u.ID, "Primeira pergunta")
	s.Require().NoError(err)
	s.Require().NoError(s.conversations.Create(s.ctx, conv))

	msg, err := chat.NewGeneralMessage(u.ID, conv.ID, chat.DirectionUser, "Primeira pergunta", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.messages.Create(s.ctx, msg))

	s.Require().NoError(s.conversations.Delete(s.ctx, conv.ID))

	_, err = s.conversations.FindByID(s.ctx, conv.ID)
	s.ErrorIs(err, outbound.ErrNotFound)

	remaining, err := s.messages.FindByConversation(s.ctx, conv.ID)
	s.Require().NoError(err)
	s.Empty(remaining)
}

func (s *RepositoryTestSuite) TestConversationsOrderByActivity() {
	u := s.newUser("order@example.com")

	older, err := chat.NewConversation(u.ID, "primeira")
	s.Require().NoError(err)
	s.Require().NoError(s.conversations.Create(s.ctx, older))

	newer, err := chat.NewConversation(u.ID, "segunda")
	s.Require().NoError(err)
	s.Require().NoError(s.conversations.Create(s.ctx, newer))

	// Activity on the older conversation moves it back to the top.
	s.Require().NoError(s.conversations.Touch(s.ctx, older.ID, time.Now().Add(time.Hour)))

	list, err := s.conversations.FindByUser(s.ctx, u.ID)

	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(older.ID, list[0].ID)
}

func (s *RepositoryTestSuite) TestAssistantCreateDeactivatesPrevious() {
	first, err := assistant.New("Chef LéIA", "v1")
	s.Require().NoError(err)
	s.Require().NoError(s.assistants.Create(s.ctx, first))

	second, err := assistant.New("Chef LéIA", "v2")
	s.Require().NoError(err)
	s.Require().NoError(s.assistants.Create(s.ctx, second))

	active, err := s.assistants.FindActive(s.ctx)

	s.Require().NoError(err)
	s.Equal(second.ID, active.ID)
	s.Equal("v2", active.Description)
}

func (s *RepositoryTestSuite) TestFindActiveWithoutConfig() {
	_, err := s.assistants.FindActive(s.ctx)
	s.ErrorIs(err, outbound.ErrNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
