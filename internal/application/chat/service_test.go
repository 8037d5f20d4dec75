package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
	"github.com/eusilvaluiz/sabor-sem-limites-app/test/testutils"
)

type ChatServiceTestSuite struct {
	suite.Suite
	conversations *testutils.MockConversationRepository
	messages      *testutils.MockMessageRepository
	recipes       *testutils.MockRecipeRepository
	completions   *testutils.MockCompletionClient
	events        *testutils.RecordingEventBus
	service       *Service
	ctx           context.Context
	userID        uuid.UUID
}

func (s *ChatServiceTestSuite) SetupTest() {
	s.conversations = new(testutils.MockConversationRepository)
	s.messages = new(testutils.MockMessageRepository)
	s.recipes = new(testutils.MockRecipeRepository)
	s.completions = new(testutils.MockCompletionClient)
	s.events = testutils.NewRecordingEventBus()
	s.service = NewService(
		s.conversations,
		s.messages,
		s.recipes,
		s.completions,
		s.events,
		cache.NewMemoryStore(),
		time.Minute,
		zap.NewNop(),
	)
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func (s *ChatServiceTestSuite) TestFirstMessageCreatesTitledConversation() {
	question := "Quantas calorias tem um prato de arroz integral?"

	s.conversations.On("Create", mock.Anything, mock.AnythingOfType("*chat.Conversation")).Return(nil)
	s.conversations.On("Touch", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("time.Time")).Return(nil)
	s.messages.On("Create", mock.Anything, mock.AnythingOfType("*chat.Message")).Return(nil)
	s.completions.On("Chat", mock.Anything, question, "").
		Return(&outbound.ChatReply{Text: "Cerca de 200 kcal por porção.", ThreadID: "thread-abc"}, nil)

	turn, err := s.service.SendMessage(s.ctx, inbound.SendMessageCommand{
		UserID: s.userID,
		Text:   question,
	})

	s.Require().NoError(err)
	s.Equal("Quantas calorias tem um p...", turn.Conversation.Title)
	s.Equal(chat.DirectionUser, turn.UserMessage.Direction)
	s.Equal(chat.DirectionAI, turn.AIMessage.Direction)
	s.Require().NotNil(turn.AIMessage.ThreadID)
	s.Equal("thread-abc", *turn.AIMessage.ThreadID)
	s.Nil(turn.UserMessage.RecipeID)
	s.Require().NotNil(turn.UserMessage.ConversationID)
	s.Equal(turn.Conversation.ID, *turn.UserMessage.ConversationID)

	s.Equal([]string{"conversation.created"}, s.events.PublishedNames())
	s.messages.AssertNumberOfCalls(s.T(), "Create", 2)
	s.conversations.AssertExpectations(s.T())
}

func (s *ChatServiceTestSuite) TestCompletionFailureKeepsUserMessage() {
	s.conversations.On("Create", mock.Anything, mock.AnythingOfType("*chat.Conversation")).Return(nil)
	s.messages.On("Create", mock.Anything, mock.AnythingOfType("*chat.Message")).Return(nil)
	s.completions.On("Chat", mock.Anything, "olá", "").
		Return(nil, context.DeadlineExceeded)

	_, err := s.service.SendMessage(s.ctx, inbound.SendMessageCommand{
		UserID: s.userID,
		Text:   "olá",
	})

	s.Require().Error(err)
	s.True(apperrors.Is(err, apperrors.CodeMessageSendFailed))
	// The user message was stored before the completion attempt and
	// stays in place.
	s.messages.AssertNumberOfCalls(s.T(), "Create", 1)
	s.conversations.AssertNotCalled(s.T(), "Touch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ChatServiceTestSuite) TestFollowUpReusesThreadToken() {
	conversation := testutils.NewTestConversation(s.userID)
	threadID := "thread-xyz"
	prior, err := chat.NewGeneralMessage(s.userID, conversation.ID, chat.DirectionAI, "resposta anterior", &threadID)
	s.Require().NoError(err)

	s.conversations.On("FindByID", mock.Anything, conversation.ID).Return(conversation, nil)
	s.conversations.On("Touch", mock.Anything, conversation.ID, mock.AnythingOfType("time.Time")).Return(nil)
	s.messages.On("FindByConversation", mock.Anything, conversation.ID).Return([]*chat.Message{prior}, nil)
	s.messages.On("Create", mock.Anything, mock.AnythingOfType("*chat.Message")).Return(nil)
	s.completions.On("Chat", mock.Anything, "e de feijão?", threadID).
		Return(&outbound.ChatReply{Text: "Cerca de 150 kcal.", ThreadID: threadID}, nil)

	turn, err := s.service.SendMessage(s.ctx, inbound.SendMessageCommand{
		UserID:         s.userID,
		ConversationID: &conversation.ID,
		Text:           "e de feijão?",
	})

	s.Require().NoError(err)
	s.Equal(conversation.ID, turn.Conversation.ID)
	// The user row stores the token it was sent under.
	s.Require().NotNil(turn.UserMessage.ThreadID)
	s.Equal(threadID, *turn.UserMessage.ThreadID)
	s.completions.AssertExpectations(s.T())
	// Continuing a conversation publishes nothing.
	s.Empty(s.events.Events)
}

func (s *ChatServiceTestSuite) TestFirstTurnUserMessageHasNoThreadToken() {
	question := "O que é lactose?"

	s.conversations.On("Create", mock.Anything, mock.AnythingOfType("*chat.Conversation")).Return(nil)
	s.conversations.On("Touch", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("time.Time")).Return(nil)
	s.messages.On("Create", mock.Anything, mock.AnythingOfType("*chat.Message")).Return(nil)
	s.completions.On("Chat", mock.Anything, question, "").
		Return(&outbound.ChatReply{Text: "É o açúcar do leite.", ThreadID: "thread-new"}, nil)

	turn, err := s.service.SendMessage(s.ctx, inbound.SendMessageCommand{
		UserID: s.userID,
		Text:   question,
	})

	s.Require().NoError(err)
	s.Nil(turn.UserMessage.ThreadID)
	s.Require().NotNil(turn.AIMessage.ThreadID)
	s.Equal("thread-new", *turn.AIMessage.ThreadID)
}

func (s *ChatServiceTestSuite) TestForeignConversationReadsAsNotFound() {
	conversation := testutils.NewTestConversation(uuid.New())

	s.conversations.On("FindByID", mock.Anything, conversation.ID).Return(conversation, nil)

	_, err := s.service.SendMessage(s.ctx, inbound.SendMessageCommand{
		UserID:         s.userID,
		ConversationID: &conversation.ID,
		Text:           "oi",
	})

	s.Require().Error(err)
	s.True(apperrors.Is(err, apperrors.CodeConversationNotFound))
	s.messages.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ChatServiceTestSuite) TestSendRecipeMessageIsStateless() {
	r := testutils.NewTestRecipe()

	s.recipes.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	s.messages.On("Create", mock.Anything, mock.AnythingOfType("*chat.Message")).Return(nil)
	s.completions.On("AskAboutRecipe", mock.Anything, r, "Posso congelar?").
		Return("Sim, por até três meses.", nil)

	msg, err := s.service.SendRecipeMessage(s.ctx, inbound.SendRecipeMessageCommand{
		UserID:   s.userID,
		RecipeID: r.ID,
		Text:     "Posso congelar?",
	})

	s.Require().NoError(err)
	s.Equal(chat.KindRecipe, msg.Kind)
	s.Equal(chat.DirectionAI, msg.Direction)
	s.Require().NotNil(msg.RecipeID)
	s.Equal(r.ID, *msg.RecipeID)
	s.Nil(msg.ConversationID)
	s.Nil(msg.ThreadID)
}

func (s *ChatServiceTestSuite) TestDeleteConversationPublishesEvent() {
	conversation := testutils.NewTestConversation(s.userID)

	s.conversations.On("FindByID", mock.Anything, conversation.ID).Return(conversation, nil)
	s.conversations.On("Delete", mock.Anything, conversation.ID).Return(nil)

	err := s.service.DeleteConversation(s.ctx, s.userID, conversation.ID)

	s.Require().NoError(err)
	s.Equal([]string{"conversation.deleted"}, s.events.PublishedNames())
	deleted := s.events.Events[0].(chat.ConversationDeletedEvent)
	s.Equal(conversation.ID, deleted.ConversationID)
}

func (s *ChatServiceTestSuite) TestDeleteUnknownConversation() {
	id := uuid.New()
	s.conversations.On("FindByID", mock.Anything, id).Return(nil, outbound.ErrNotFound)

	err := s.service.DeleteConversation(s.ctx, s.userID, id)

	s.Require().Error(err)
	s.True(apperrors.Is(err, apperrors.CodeConversationNotFound))
	s.Empty(s.events.Events)
}

func (s *ChatServiceTestSuite) TestClearRecipeMessages() {
	recipeID := uuid.New()
	s.messages.On("DeleteByUserRecipe", mock.Anything, s.userID, recipeID).Return(nil)

	s.Require().NoError(s.service.ClearRecipeMessages(s.ctx, s.userID, recipeID))
	s.messages.AssertExpectations(s.T())
}

func TestChatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
