package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig("configs")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, ":9090", cfg.MetricsServerAddress)
	assert.Equal(t, 3600, cfg.PushTTLSeconds)
	assert.Equal(t, 300, cfg.OtpTTLSeconds)
	assert.Equal(t, 3, cfg.OtpMaxAttempts)
	assert.Equal(t, 60, cfg.OtpResendCooldown)
	assert.Equal(t, 3, cfg.EmailMaxRetries)
	assert.Equal(t, 200, cfg.EmailRetryBaseDelay)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8181")
	t.Setenv("OTP_TTL_SECONDS", "120")
	t.Setenv("OTP_MAX_ATTEMPTS", "5")
	t.Setenv("OTP_RESEND_COOLDOWN_SECONDS", "90")
	t.Setenv("EMAIL_HOST", "smtp.example.com")

	cfg, err := NewConfig("configs")
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.ServerAddress)
	assert.Equal(t, 120, cfg.OtpTTLSeconds)
	assert.Equal(t, 5, cfg.OtpMaxAttempts)
	assert.Equal(t, 90, cfg.OtpResendCooldown)
	assert.Equal(t, "smtp.example.com", cfg.EmailHost)
}

func TestGetEmailConf(t *testing.T) {
	SetTestConfig(&Config{
		EmailHost:           "smtp.example.com",
		EmailPort:           "587",
		EmailUsername:       "user",
		EmailPassword:       "pass",
		EmailFromAddress:    "noreply@example.com",
		EmailFromName:       "Notify Gateway",
		EmailMaxRetries:     4,
		EmailRetryBaseDelay: 250,
	})

	conf := GetEmailConf()
	assert.Equal(t, "smtp.example.com", conf.Host)
	assert.Equal(t, "587", conf.Port)
	assert.Equal(t, "noreply@example.com", conf.FromAddress)
	assert.Equal(t, 4, conf.MaxRetries)
	assert.Equal(t, 250, conf.BaseDelayMsec)
}

func TestGetOtpConf_FallsBackWithoutConfig(t *testing.T) {
	SetTestConfig(nil)

	conf := GetOtpConf()
	assert.Equal(t, 300, conf.TTLSeconds)
	assert.Equal(t, 3, conf.MaxAttempts)
	assert.Equal(t, 60, conf.CooldownSeconds)
}

func TestGetOtpConf(t *testing.T) {
	SetTestConfig(&Config{OtpTTLSeconds: 600, OtpMaxAttempts: 5, OtpResendCooldown: 30})

	conf := GetOtpConf()
	assert.Equal(t, 600, conf.TTLSeconds)
	assert.Equal(t, 5, conf.MaxAttempts)
	assert.Equal(t, 30, conf.CooldownSeconds)
}
