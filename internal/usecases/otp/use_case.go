package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/medeiros-dev/notify-gateway/internal/domain"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/mailer"
	"github.com/medeiros-dev/notify-gateway/internal/observability/metrics"
	"github.com/medeiros-dev/notify-gateway/internal/observability/tracing"
	"github.com/medeiros-dev/notify-gateway/pkg/logger"
	"go.uber.org/zap"
)

const codeDigits = 1000000 // codes are always exactly 6 decimal digits

var (
	ErrInvalidAddress = errors.New("invalid email address")

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Config bounds the verification state machine.
type Config struct {
	TTL         time.Duration
	MaxAttempts int
	// Cooldown blocks reissue while an active code is younger than this.
	Cooldown time.Duration
}

// UseCase is the one-time-code issuance and verification state machine.
type UseCase interface {
	Issue(ctx context.Context, address string) (IssueOutputDTO, error)
	Resend(ctx context.Context, address string) (IssueOutputDTO, error)
	Verify(ctx context.Context, address, code string) error
}

type otpUseCase struct {
	store  Store
	mailer mailer.Mailer
	config Config
	now    func() time.Time
}

func NewUseCase(store Store, m mailer.Mailer, config Config) UseCase {
	return &otpUseCase{
		store:  store,
		mailer: m,
		config: config,
		now:    time.Now,
	}
}

func (u *otpUseCase) Issue(ctx context.Context, address string) (IssueOutputDTO, error) {
	ctx, span := tracing.Tracer.Start(ctx, "OtpUseCase.Issue")
	defer span.End()

	if !emailPattern.MatchString(address) {
		return IssueOutputDTO{}, ErrInvalidAddress
	}

	if entry, ok := u.store.Get(address); ok {
		elapsed := u.now().Sub(entry.CreatedAt)
		if u.now().Before(entry.ExpiresAt) && elapsed < u.config.Cooldown {
			retryAfter := int(math.Ceil((u.config.Cooldown - elapsed).Seconds()))
			metrics.OtpIssuedTotal.WithLabelValues("rate_limited").Inc()
			return IssueOutputDTO{}, &domain.RateLimitedError{RetryAfterSeconds: retryAfter}
		}
	}

	return u.issue(ctx, address)
}

func (u *otpUseCase) Resend(ctx context.Context, address string) (IssueOutputDTO, error) {
	ctx, span := tracing.Tracer.Start(ctx, "OtpUseCase.Resend")
	defer span.End()

	if !emailPattern.MatchString(address) {
		return IssueOutputDTO{}, ErrInvalidAddress
	}

	// A resend always invalidates the outstanding code and skips the
	// cooldown check.
	u.store.Delete(address)
	return u.issue(ctx, address)
}

// issue generates, stores and mails a fresh code. The entry is stored
// before the mail send and is not rolled back on send failure.
func (u *otpUseCase) issue(ctx context.Context, address string) (IssueOutputDTO, error) {
	code, err := generateCode()
	if err != nil {
		return IssueOutputDTO{}, fmt.Errorf("generating code: %w", err)
	}

	now := u.now()
	u.store.Put(Entry{
		Address:   address,
		Code:      code,
		ExpiresAt: now.Add(u.config.TTL),
		Attempts:  0,
		CreatedAt: now,
	})

	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(u.config.TTL.Minutes()))
	if err := u.mailer.Send(ctx, address, subject, body); err != nil {
		metrics.OtpIssuedTotal.WithLabelValues("delivery_error").Inc()
		return IssueOutputDTO{}, fmt.Errorf("delivering code: %w", err)
	}

	metrics.OtpIssuedTotal.WithLabelValues("success").Inc()
	logger.L().Info("Verification code issued",
		zap.String("traceID", logger.TraceIDFromContext(ctx)),
	)

	return IssueOutputDTO{Success: true, ExpiresIn: int(u.config.TTL.Seconds())}, nil
}

func (u *otpUseCase) Verify(ctx context.Context, address, code string) error {
	_, span := tracing.Tracer.Start(ctx, "OtpUseCase.Verify")
	defer span.End()

	entry, ok := u.store.Get(address)
	if !ok {
		metrics.OtpVerifiedTotal.WithLabelValues("not_found").Inc()
		return domain.ErrOtpNotFound
	}

	if u.now().After(entry.ExpiresAt) {
		u.store.Delete(address)
		metrics.OtpVerifiedTotal.WithLabelValues("expired").Inc()
		return domain.ErrOtpExpired
	}

	if entry.Attempts >= u.config.MaxAttempts {
		u.store.Delete(address)
		metrics.OtpVerifiedTotal.WithLabelValues("exhausted").Inc()
		return domain.ErrOtpTooManyAttempts
	}

	if strings.TrimSpace(code) != entry.Code {
		attempts, _ := u.store.IncrementAttempts(address)
		metrics.OtpVerifiedTotal.WithLabelValues("invalid").Inc()
		return &domain.InvalidCodeError{RemainingAttempts: u.config.MaxAttempts - attempts}
	}

	// Verification is terminal: the entry is consumed on success.
	u.store.Delete(address)
	metrics.OtpVerifiedTotal.WithLabelValues("success").Inc()
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeDigits))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
