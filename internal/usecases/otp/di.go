package otp

import (
	"time"

	"github.com/medeiros-dev/notify-gateway/configs"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/mailer"
)

func NewOtp(m mailer.Mailer, conf *configs.OtpConf) *Handler {
	useCase := NewUseCase(NewMemoryStore(), m, Config{
		TTL:         time.Duration(conf.TTLSeconds) * time.Second,
		MaxAttempts: conf.MaxAttempts,
		Cooldown:    time.Duration(conf.CooldownSeconds) * time.Second,
	})
	return NewHandler(useCase)
}
