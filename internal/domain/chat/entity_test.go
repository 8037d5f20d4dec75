package chat

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConversationTestSuite covers conversation creation and title derivation.
type ConversationTestSuite struct {
	suite.Suite
}

func (suite *ConversationTestSuite) TestTitleDerivation() {
	suite.Run("ShortMessage_KeptVerbatim", func() {
		conv, err := NewConversation(uuid.New(), "Quantas calorias?")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Quantas calorias?", conv.Title)
	})

	suite.Run("ExactlyTwentyFiveChars_NoEllipsis", func() {
		msg := strings.Repeat("a", TitleMaxLen)

		conv, err := NewConversation(uuid.New(), msg)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), msg, conv.Title)
	})

	suite.Run("LongMessage_TruncatedWithEllipsis", func() {
		msg := strings.Repeat("b", TitleMaxLen+10)

		conv, err := NewConversation(uuid.New(), msg)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), strings.Repeat("b", TitleMaxLen)+"...", conv.Title)
		assert.Len(suite.T(), []rune(conv.Title), TitleMaxLen+3)
	})

	suite.Run("MultibyteMessage_TruncatedOnRunes", func() {
		msg := strings.Repeat("ç", TitleMaxLen+1)

		conv, err := NewConversation(uuid.New(), msg)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), strings.Repeat("ç", TitleMaxLen)+"...", conv.Title)
	})

	suite.Run("EmptyMessage_ShouldReturnError", func() {
		conv, err := NewConversation(uuid.New(), "   ")

		assert.Nil(suite.T(), conv)
		assert.ErrorIs(suite.T(), err, ErrEmptyMessage)
	})
}

func (suite *ConversationTestSuite) TestNewConversation() {
	userID := uuid.New()

	conv, err := NewConversation(userID, "hello")

	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, conv.ID)
	assert.Equal(suite.T(), userID, conv.UserID)
	assert.NotZero(suite.T(), conv.CreatedAt)
	assert.Equal(suite.T(), conv.CreatedAt, conv.UpdatedAt)
}

func TestConversationTestSuite(t *testing.T) {
	suite.Run(t, new(ConversationTestSuite))
}

// MessageTestSuite covers the two disjoint addressing schemes.
type MessageTestSuite struct {
	suite.Suite
}

func (suite *MessageTestSuite) TestGeneralMessage() {
	suite.Run("ValidMessage_AddressedToConversation", func() {
		userID := uuid.New()
		convID := uuid.New()
		thread := "thread-abc"

		msg, err := NewGeneralMessage(userID, convID, DirectionUser, "hi", &thread)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), KindGeneral, msg.Kind)
		require.NotNil(suite.T(), msg.ConversationID)
		assert.Equal(suite.T(), convID, *msg.ConversationID)
		assert.Nil(suite.T(), msg.RecipeID, "general message must never carry a recipe id")
		require.NotNil(suite.T(), msg.ThreadID)
		assert.Equal(suite.T(), thread, *msg.ThreadID)
	})

	suite.Run("NilThread_FirstTurn", func() {
		msg, err := NewGeneralMessage(uuid.New(), uuid.New(), DirectionUser, "hi", nil)

		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), msg.ThreadID)
	})

	suite.Run("MissingConversation_ShouldReturnError", func() {
		msg, err := NewGeneralMessage(uuid.New(), uuid.Nil, DirectionUser, "hi", nil)

		assert.Nil(suite.T(), msg)
		assert.ErrorIs(suite.T(), err, ErrMissingConversation)
	})

	suite.Run("EmptyText_ShouldReturnError", func() {
		msg, err := NewGeneralMessage(uuid.New(), uuid.New(), DirectionUser, "", nil)

		assert.Nil(suite.T(), msg)
		assert.ErrorIs(suite.T(), err, ErrEmptyMessage)
	})
}

func (suite *MessageTestSuite) TestRecipeMessage() {
	suite.Run("ValidMessage_AddressedToRecipe", func() {
		userID := uuid.New()
		recipeID := uuid.New()

		msg, err := NewRecipeMessage(userID, recipeID, DirectionAI, "use less sugar", map[string]interface{}{"servings": 4})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), KindRecipe, msg.Kind)
		require.NotNil(suite.T(), msg.RecipeID)
		assert.Equal(suite.T(), recipeID, *msg.RecipeID)
		assert.Nil(suite.T(), msg.ConversationID, "recipe message must never carry a conversation id")
		assert.Nil(suite.T(), msg.ThreadID, "recipe chat is stateless per call")
	})

	suite.Run("MissingRecipe_ShouldReturnError", func() {
		msg, err := NewRecipeMessage(uuid.New(), uuid.Nil, DirectionUser, "hi", nil)

		assert.Nil(suite.T(), msg)
		assert.ErrorIs(suite.T(), err, ErrMissingRecipe)
	})
}

func TestMessageTestSuite(t *testing.T) {
	suite.Run(t, new(MessageTestSuite))
}
