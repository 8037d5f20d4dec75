package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
	"github.com/eusilvaluiz/sabor-sem-limites-app/test/testutils"
)

type stubCategoryService struct {
	inbound.CategoryService
	categories []*category.Category
	err        error
	searched   string
}

func (s *stubCategoryService) List(ctx context.Context) ([]*category.Category, error) {
	return s.categories, s.err
}

func (s *stubCategoryService) Search(ctx context.Context, query string) ([]*category.Category, error) {
	s.searched = query
	return s.categories, s.err
}

func (s *stubCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.categories[0], nil
}

type CategoryHandlersTestSuite struct {
	suite.Suite
	stub   *stubCategoryService
	router *chi.Mux
}

func (s *CategoryHandlersTestSuite) SetupTest() {
	s.stub = &stubCategoryService{}
	h := NewCategoryHandlers(s.stub, nil, zap.NewNop())

	s.router = chi.NewRouter()
	s.router.Get("/categories", h.List)
	s.router.Get("/categories/{id}", h.Get)
}

func (s *CategoryHandlersTestSuite) TestListResolvesPlaceholderImage() {
	c := testutils.NewTestCategory()
	c.ImageURL = nil
	s.stub.categories = []*category.Category{c}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	s.Equal(http.StatusOK, rec.Code)

	var got []categoryDTO
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Equal(c.Name, got[0].Name)
	s.Equal("/placeholder.svg", got[0].ImageURL)
}

func (s *CategoryHandlersTestSuite) TestListEmptyReturnsEmptyArray() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq("[]", rec.Body.String())
}

func (s *CategoryHandlersTestSuite) TestListQueryParameterSearches() {
	c := testutils.NewTestCategory()
	s.stub.categories = []*category.Category{c}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories?q=bolo", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("bolo", s.stub.searched)

	var got []categoryDTO
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Equal(c.Name, got[0].Name)
}

func (s *CategoryHandlersTestSuite) TestGetRejectsMalformedID() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/not-a-uuid", nil))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "BAD_REQUEST")
}

func (s *CategoryHandlersTestSuite) TestGetMapsNotFoundStatus() {
	s.stub.err = apperrors.NewCategoryNotFoundError(uuid.NewString())

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/"+uuid.NewString(), nil))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "CATEGORY_NOT_FOUND")
}

func TestCategoryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlersTestSuite))
}

type recordingConn struct {
	frames []streamFrame
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.frames = append(c.frames, v.(streamFrame))
	return nil
}

type ChatStreamTestSuite struct {
	suite.Suite
}

func (s *ChatStreamTestSuite) TestStreamReplyChunksAndCompletes() {
	conversation := testutils.NewTestConversation(uuid.New())
	userMsg, err := chat.NewGeneralMessage(conversation.UserID, conversation.ID, chat.DirectionUser, "Oi", nil)
	s.Require().NoError(err)
	aiMsg, err := chat.NewGeneralMessage(conversation.UserID, conversation.ID, chat.DirectionAI, "Olá! Como posso ajudar?", nil)
	s.Require().NoError(err)

	h := &ChatHandlers{logger: zap.NewNop()}
	conn := &recordingConn{}
	err = h.streamReply(conn, &inbound.ChatTurn{
		Conversation: conversation,
		UserMessage:  userMsg,
		AIMessage:    aiMsg,
	})
	s.Require().NoError(err)

	s.Require().NotEmpty(conn.frames)
	last := conn.frames[len(conn.frames)-1]
	s.Equal("done", last.Type)
	s.Require().NotNil(last.AIMessage)
	s.Equal(aiMsg.Text, last.AIMessage.Text)

	var streamed string
	for _, frame := range conn.frames[:len(conn.frames)-1] {
		s.Equal("chunk", frame.Type)
		streamed += frame.Text
	}
	s.Equal(aiMsg.Text, streamed)
}

func (s *ChatStreamTestSuite) TestStreamErrorFrameCarriesMessage() {
	h := &ChatHandlers{logger: zap.NewNop()}
	conn := &recordingConn{}

	h.writeStreamError(conn, apperrors.NewMessageSendError(nil))

	s.Require().Len(conn.frames, 1)
	s.Equal("error", conn.frames[0].Type)
	s.Equal("Could not send message", conn.frames[0].Message)
}

func TestChatStreamTestSuite(t *testing.T) {
	suite.Run(t, new(ChatStreamTestSuite))
}
