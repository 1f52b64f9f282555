package notify

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medeiros-dev/notify-gateway/internal/domain"
	"github.com/medeiros-dev/notify-gateway/internal/observability/tracing"
	"github.com/medeiros-dev/notify-gateway/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	useCase UseCase
}

func NewHandler(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) SendNotification(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "NotifyHandler.SendNotification")
	defer span.End()

	var input SendNotificationInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	output, err := h.useCase.Direct(ctx, domain.DirectSend{
		RecipientID: input.RecipientID,
		Title:       input.Title,
		Body:        input.Body,
		Data:        input.Data,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) Message(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "NotifyHandler.Message")
	defer span.End()

	var input MessageInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	output, err := h.useCase.Message(ctx, domain.NewMessage{
		ChatID:     input.ChatID,
		SenderID:   input.SenderID,
		SenderName: input.SenderName,
		Text:       input.Text,
		MessageID:  input.MessageID,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) FriendRequest(c *gin.Context) {
	var input FriendRequestInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.FriendRequest{
			RecipientID: input.RecipientID,
			SenderID:    input.SenderID,
			SenderName:  input.SenderName,
		}
	})
}

func (h *Handler) FriendRequestAccepted(c *gin.Context) {
	var input FriendAcceptInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.FriendAccept{
			RecipientID:  input.RecipientID,
			AcceptorID:   input.AcceptorID,
			AcceptorName: input.AcceptorName,
		}
	})
}

func (h *Handler) NewPost(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "NotifyHandler.NewPost")
	defer span.End()

	var input NewPostInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	output, err := h.useCase.Broadcast(ctx, domain.NewPost{
		PostID:   input.PostID,
		UserID:   input.UserID,
		UserName: input.UserName,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) PostComment(c *gin.Context) {
	var input PostCommentInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.PostComment{
			PostID:      input.PostID,
			CommentID:   input.CommentID,
			OwnerID:     input.OwnerID,
			ActorID:     input.ActorID,
			ActorName:   input.ActorName,
			CommentText: input.CommentText,
		}
	})
}

func (h *Handler) PostReaction(c *gin.Context) {
	var input PostReactionInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.PostReaction{
			PostID:       input.PostID,
			OwnerID:      input.OwnerID,
			ActorID:      input.ActorID,
			ActorName:    input.ActorName,
			ReactionType: input.ReactionType,
		}
	})
}

func (h *Handler) PostShare(c *gin.Context) {
	var input PostShareInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.PostShare{
			PostID:    input.PostID,
			OwnerID:   input.OwnerID,
			ActorID:   input.ActorID,
			ActorName: input.ActorName,
		}
	})
}

func (h *Handler) CommentReply(c *gin.Context) {
	var input CommentReplyInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.CommentReply{
			PostID:    input.PostID,
			CommentID: input.CommentID,
			OwnerID:   input.OwnerID,
			ActorID:   input.ActorID,
			ActorName: input.ActorName,
			ReplyText: input.ReplyText,
		}
	})
}

func (h *Handler) CommentLike(c *gin.Context) {
	var input CommentLikeInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.CommentLike{
			PostID:    input.PostID,
			CommentID: input.CommentID,
			OwnerID:   input.OwnerID,
			ActorID:   input.ActorID,
			ActorName: input.ActorName,
		}
	})
}

func (h *Handler) GroupInvite(c *gin.Context) {
	var input GroupInviteInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.GroupInvite{
			RecipientID: input.RecipientID,
			GroupID:     input.GroupID,
			InviterID:   input.InviterID,
			GroupName:   input.GroupName,
			InviterName: input.InviterName,
		}
	})
}

func (h *Handler) Mention(c *gin.Context) {
	var input MentionInputDTO
	h.single(c, &input, func() domain.Event {
		return domain.Mention{
			RecipientID:   input.RecipientID,
			MentionerID:   input.MentionerID,
			MentionerName: input.MentionerName,
			PostID:        input.PostID,
			CommentID:     input.CommentID,
			Context:       input.Type,
		}
	})
}

// single is the shared flow of the one-recipient endpoints: bind, build the
// event, run the use case, render.
func (h *Handler) single(c *gin.Context, input any, build func() domain.Event) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "NotifyHandler.Single")
	defer span.End()

	if err := c.ShouldBindJSON(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	output, err := h.useCase.Single(ctx, build())
	if err != nil {
		h.renderError(c, err)
		return
	}
	if output.ShortCircuited {
		c.JSON(http.StatusOK, gin.H{"success": true, "sent": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": output.MessageID})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNoDeliveryAddress):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		logger.L().Error("Notification request failed",
			zap.String("path", c.FullPath()),
			zap.String("traceID", logger.TraceIDFromContext(c.Request.Context())),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process notification"})
	}
}
