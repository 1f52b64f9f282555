package smtp

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/medeiros-dev/notify-gateway/configs"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/mailer"
	"github.com/medeiros-dev/notify-gateway/pkg/backoff"
	"github.com/medeiros-dev/notify-gateway/pkg/logger"
	"go.uber.org/zap"
)

// Mailer implements mailer.Mailer over SMTP. Transient send failures are
// retried in-process with exponential backoff before the error propagates.
type Mailer struct {
	fromName    string
	fromAddress string
	smtpHost    string
	smtpPort    string
	auth        smtp.Auth
	maxRetries  int
	baseDelay   time.Duration

	// sendMail allows tests to stub the SMTP transport.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(conf *configs.EmailConf) (mailer.Mailer, error) {
	if conf.Host == "" || conf.Port == "" || conf.FromAddress == "" {
		return nil, errors.New("SMTP configuration (host, port, from_address) cannot be empty")
	}
	// Authentication might be optional depending on the SMTP server
	var auth smtp.Auth
	if conf.Username != "" {
		auth = smtp.PlainAuth("", conf.Username, conf.Password, conf.Host)
	}

	logger.L().Info("Initializing SMTP mailer",
		zap.String("host", conf.Host),
		zap.String("port", conf.Port),
		zap.Bool("authEnabled", conf.Username != ""),
	)
	return &Mailer{
		fromName:    conf.FromName,
		fromAddress: conf.FromAddress,
		smtpHost:    conf.Host,
		smtpPort:    conf.Port,
		auth:        auth,
		maxRetries:  conf.MaxRetries,
		baseDelay:   time.Duration(conf.BaseDelayMsec) * time.Millisecond,
		sendMail:    smtp.SendMail,
	}, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	fromDisplay := m.fromName
	if fromDisplay == "" {
		fromDisplay = "Notify Gateway"
	}
	from := fmt.Sprintf("%s <%s>", fromDisplay, m.fromAddress)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	smtpAddr := m.smtpHost + ":" + m.smtpPort

	var lastErr error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		if delay := backoff.CalculateRetryDelay(attempt, m.baseDelay); delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = m.sendMail(smtpAddr, m.auth, m.fromAddress, []string{to}, []byte(msg))
		if lastErr == nil {
			logger.L().Info("Email sent via SMTP",
				zap.String("smtpHost", m.smtpHost),
				zap.Int("attempt", attempt),
				zap.String("traceID", logger.TraceIDFromContext(ctx)),
			)
			return nil
		}

		logger.L().Warn("SMTP send attempt failed",
			zap.String("smtpHost", m.smtpHost),
			zap.Int("attempt", attempt),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(lastErr),
		)
	}
	return fmt.Errorf("failed to send email via SMTP after %d attempts: %w", m.maxRetries, lastErr)
}
