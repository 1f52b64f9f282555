package otp

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

func (h *Handler) Send(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "OtpHandler.Send")
	defer span.End()

	var input SendInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	output, err := h.useCase.Issue(ctx, input.Email)
	if err != nil {
		h.renderIssueError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) Resend(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "OtpHandler.Resend")
	defer span.End()

	var input SendInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	output, err := h.useCase.Resend(ctx, input.Email)
	if err != nil {
		h.renderIssueError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) Verify(c *gin.Context) {
	ctx, span := tracing.Tracer.Start(c.Request.Context(), "OtpHandler.Verify")
	defer span.End()

	var input VerifyInputDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	err := h.useCase.Verify(ctx, input.Email, input.Otp)
	if err != nil {
		var invalid *domain.InvalidCodeError
		switch {
		case errors.Is(err, domain.ErrOtpNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "OTP_NOT_FOUND", "error": err.Error()})
		case errors.Is(err, domain.ErrOtpExpired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "OTP_EXPIRED", "error": err.Error()})
		case errors.Is(err, domain.ErrOtpTooManyAttempts):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "TOO_MANY_ATTEMPTS", "error": err.Error()})
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{
				"success":           false,
				"code":              "INVALID_OTP",
				"error":             err.Error(),
				"remainingAttempts": invalid.RemainingAttempts,
			})
		default:
			logger.L().Error("OTP verification failed unexpectedly",
				zap.String("traceID", logger.TraceIDFromContext(ctx)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to verify code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "verified": true})
}

func (h *Handler) renderIssueError(c *gin.Context, err error) {
	var rateLimited *domain.RateLimitedError
	switch {
	case errors.Is(err, ErrInvalidAddress):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.As(err, &rateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"error":      err.Error(),
			"retryAfter": rateLimited.RetryAfterSeconds,
		})
	default:
		logger.L().Error("OTP issuance failed",
			zap.String("path", c.FullPath()),
			zap.String("traceID", logger.TraceIDFromContext(c.Request.Context())),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send verification code"})
	}
}
