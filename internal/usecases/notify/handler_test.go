package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medeiros-dev/notify-gateway/internal/domain"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Direct(ctx context.Context, ev domain.DirectSend) (DirectOutputDTO, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(DirectOutputDTO), args.Error(1)
}

func (m *MockUseCase) Message(ctx context.Context, ev domain.NewMessage) (MessageOutputDTO, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(MessageOutputDTO), args.Error(1)
}

func (m *MockUseCase) Broadcast(ctx context.Context, ev domain.NewPost) (BroadcastOutputDTO, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(BroadcastOutputDTO), args.Error(1)
}

func (m *MockUseCase) Single(ctx context.Context, ev domain.Event) (SingleOutputDTO, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(SingleOutputDTO), args.Error(1)
}

func setupRouter(useCase UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(useCase)
	router := gin.New()
	router.POST("/api/send-notification", handler.SendNotification)
	router.POST("/api/notify/message", handler.Message)
	router.POST("/api/notify/friend-request", handler.FriendRequest)
	router.POST("/api/notify/new-post", handler.NewPost)
	router.POST("/api/notify/post-comment", handler.PostComment)
	router.POST("/api/notify/mention", handler.Mention)
	return router
}

func performJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSendNotification_Success(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Direct", mock.Anything, mock.Anything).
		Return(DirectOutputDTO{Success: true, MessageID: "msg-1", RecipientID: "user-b"}, nil)

	rec := performJSON(t, setupRouter(useCase), "/api/send-notification", gin.H{
		"recipientId": "user-b", "title": "Hello", "body": "World",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "msg-1", body["messageId"])
	assert.Equal(t, "user-b", body["recipientId"])
}

func TestSendNotification_MissingRequiredField(t *testing.T) {
	useCase := new(MockUseCase)

	rec := performJSON(t, setupRouter(useCase), "/api/send-notification", gin.H{
		"recipientId": "user-b", "title": "Hello", // body missing
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	useCase.AssertNotCalled(t, "Direct", mock.Anything, mock.Anything)
}

func TestSendNotification_UnknownRecipient(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Direct", mock.Anything, mock.Anything).
		Return(DirectOutputDTO{}, domain.ErrNotFound)

	rec := performJSON(t, setupRouter(useCase), "/api/send-notification", gin.H{
		"recipientId": "ghost", "title": "Hello", "body": "World",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestSendNotification_NoDeliveryAddress(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Direct", mock.Anything, mock.Anything).
		Return(DirectOutputDTO{}, domain.ErrNoDeliveryAddress)

	rec := performJSON(t, setupRouter(useCase), "/api/send-notification", gin.H{
		"recipientId": "user-b", "title": "Hello", "body": "World",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessage_RendersFanOutCounts(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Message", mock.Anything, domain.NewMessage{
		ChatID: "chat-1", SenderID: "user-a", SenderName: "Alice", Text: "hi",
	}).Return(MessageOutputDTO{Success: true, Sent: 2, Total: 3, Saved: 3, MutedCount: 1}, nil)

	rec := performJSON(t, setupRouter(useCase), "/api/notify/message", gin.H{
		"chatId": "chat-1", "senderId": "user-a", "senderName": "Alice", "text": "hi",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["sent"])
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(3), body["saved"])
	assert.Equal(t, float64(1), body["mutedCount"])
}

func TestMessage_UnknownConversationIs404(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Message", mock.Anything, mock.Anything).
		Return(MessageOutputDTO{}, domain.ErrNotFound)

	rec := performJSON(t, setupRouter(useCase), "/api/notify/message", gin.H{
		"chatId": "missing", "senderId": "user-a",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewPost_EmptyFollowerSet(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Broadcast", mock.Anything, mock.Anything).
		Return(BroadcastOutputDTO{Success: true, Sent: 0, Total: 0}, nil)

	rec := performJSON(t, setupRouter(useCase), "/api/notify/new-post", gin.H{
		"postId": "post-1", "userId": "user-a",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["sent"])
}

func TestSingleEndpoint_ShortCircuitRendersSentZero(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Single", mock.Anything, mock.Anything).
		Return(SingleOutputDTO{ShortCircuited: true}, nil)

	rec := performJSON(t, setupRouter(useCase), "/api/notify/post-comment", gin.H{
		"postId": "p", "ownerId": "user-a", "actorId": "user-a",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["sent"])
	_, hasMessageID := body["messageId"]
	assert.False(t, hasMessageID)
}

func TestSingleEndpoint_SuccessRendersMessageID(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Single", mock.Anything, domain.FriendRequest{
		RecipientID: "user-b", SenderID: "user-a", SenderName: "Alice",
	}).Return(SingleOutputDTO{MessageID: "msg-5"}, nil)

	rec := performJSON(t, setupRouter(useCase), "/api/notify/friend-request", gin.H{
		"recipientId": "user-b", "senderId": "user-a", "senderName": "Alice",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "msg-5", body["messageId"])
}

func TestSingleEndpoint_InternalErrorIsOpaque(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Single", mock.Anything, mock.Anything).
		Return(SingleOutputDTO{}, assert.AnError)

	rec := performJSON(t, setupRouter(useCase), "/api/notify/mention", gin.H{
		"recipientId": "user-b", "mentionerId": "user-a",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body["error"], assert.AnError.Error())
}

func TestMention_ContextFieldMapsToEvent(t *testing.T) {
	useCase := new(MockUseCase)
	useCase.On("Single", mock.Anything, domain.Mention{
		RecipientID: "user-b", MentionerID: "user-a", CommentID: "c-1", Context: "comment",
	}).Return(SingleOutputDTO{MessageID: "msg-6"}, nil)

	rec := performJSON(t, setupRouter(useCase), "/api/notify/mention", gin.H{
		"recipientId": "user-b", "mentionerId": "user-a", "commentId": "c-1", "type": "comment",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	useCase.AssertExpectations(t)
}
