package favorite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/test/testutils"
)

type FavoriteServiceTestSuite struct {
	suite.Suite
	repo     *testutils.MockFavoriteRepository
	events   *testutils.RecordingEventBus
	service  *Service
	ctx      context.Context
	userID   uuid.UUID
	recipeID uuid.UUID
}

func (s *FavoriteServiceTestSuite) SetupTest() {
	s.repo = new(testutils.MockFavoriteRepository)
	s.events = testutils.NewRecordingEventBus()
	s.service = NewService(s.repo, cache.NewMemoryStore(), time.Minute, s.events, zap.NewNop())
	s.ctx = context.Background()
	s.userID = uuid.New()
	s.recipeID = uuid.New()
}

func (s *FavoriteServiceTestSuite) TestToggleOnThenOff() {
	s.repo.On("Exists", mock.Anything, s.userID, s.recipeID).Return(false, nil).Once()
	s.repo.On("Add", mock.Anything, mock.AnythingOfType("*favorite.Favorite")).Return(nil).Once()

	favorited, err := s.service.Toggle(s.ctx, s.userID, s.recipeID)
	s.Require().NoError(err)
	s.True(favorited)

	s.repo.On("Exists", mock.Anything, s.userID, s.recipeID).Return(true, nil).Once()
	s.repo.On("Remove", mock.Anything, s.userID, s.recipeID).Return(nil).Once()

	favorited, err = s.service.Toggle(s.ctx, s.userID, s.recipeID)
	s.Require().NoError(err)
	s.False(favorited)

	s.Equal([]string{"favorite.changed", "favorite.changed"}, s.events.PublishedNames())
	first := s.events.Events[0].(favorite.ChangedEvent)
	second := s.events.Events[1].(favorite.ChangedEvent)
	s.True(first.Favorited)
	s.False(second.Favorited)
}

func (s *FavoriteServiceTestSuite) TestToggleTreatsDuplicateAsFavorited() {
	// A concurrent insert between the existence check and the add
	// hits the uniqueness constraint; the outcome is still "favorited".
	s.repo.On("Exists", mock.Anything, s.userID, s.recipeID).Return(false, nil)
	s.repo.On("Add", mock.Anything, mock.AnythingOfType("*favorite.Favorite")).
		Return(favorite.ErrAlreadyFavorite)

	favorited, err := s.service.Toggle(s.ctx, s.userID, s.recipeID)

	s.Require().NoError(err)
	s.True(favorited)
}

func (s *FavoriteServiceTestSuite) TestIsFavoriteReadsFalseOnLookupFailure() {
	s.repo.On("Exists", mock.Anything, s.userID, s.recipeID).
		Return(false, errors.New("connection refused"))

	favorited, err := s.service.IsFavorite(s.ctx, s.userID, s.recipeID)

	s.Require().NoError(err)
	s.False(favorited)
}

func (s *FavoriteServiceTestSuite) TestListByUserEmptyIsNotAnError() {
	s.repo.On("ListByUser", mock.Anything, s.userID).Return([]*favorite.FavoriteRecipe{}, nil)

	favorites, err := s.service.ListByUser(s.ctx, s.userID)

	s.Require().NoError(err)
	s.Empty(favorites)
}

func (s *FavoriteServiceTestSuite) TestListByUserJoinsRecipePayload() {
	r := testutils.NewTestRecipe()
	f := testutils.NewTestFavorite(s.userID, r.ID)
	s.repo.On("ListByUser", mock.Anything, s.userID).
		Return([]*favorite.FavoriteRecipe{{Favorite: *f, Recipe: *r}}, nil)

	favorites, err := s.service.ListByUser(s.ctx, s.userID)

	s.Require().NoError(err)
	s.Require().Len(favorites, 1)
	s.Equal(r.Title, favorites[0].Recipe.Title)
	s.Equal(s.userID, favorites[0].Favorite.UserID)
}

func (s *FavoriteServiceTestSuite) TestIsFavoriteAfterAddAndRemove() {
	s.repo.On("Add", mock.Anything, mock.AnythingOfType("*favorite.Favorite")).Return(nil).Once()
	s.Require().NoError(s.service.Add(s.ctx, s.userID, s.recipeID))

	s.repo.On("Exists", mock.Anything, s.userID, s.recipeID).Return(true, nil).Once()
	favorited, err := s.service.IsFavorite(s.ctx, s.userID, s.recipeID)
	s.Require().NoError(err)
	s.True(favorited)

	s.repo.On("Remove", mock.Anything, s.userID, s.recipeID).Return(nil).Once()
	s.Require().NoError(s.service.Remove(s.ctx, s.userID, s.recipeID))

	s.repo.On("Exists", mock.Anything, s.userID, s.recipeID).Return(false, nil).Once()
	favorited, err = s.service.IsFavorite(s.ctx, s.userID, s.recipeID)
	s.Require().NoError(err)
	s.False(favorited)

	s.Equal([]string{"favorite.changed", "favorite.changed"}, s.events.PublishedNames())
	s.repo.AssertExpectations(s.T())
}

func (s *FavoriteServiceTestSuite) TestAddExistingFavoriteIsNoOpSuccess() {
	s.repo.On("Add", mock.Anything, mock.AnythingOfType("*favorite.Favorite")).
		Return(favorite.ErrAlreadyFavorite).Once()

	s.Require().NoError(s.service.Add(s.ctx, s.userID, s.recipeID))
	s.Equal([]string{"favorite.changed"}, s.events.PublishedNames())
}

func TestFavoriteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FavoriteServiceTestSuite))
}
