package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddress        string `mapstructure:"SERVER_ADDRESS"`
	MetricsServerAddress string `mapstructure:"METRICS_SERVER_ADDRESS"`
	OtelEndpoint         string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure         bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	OtelServiceName      string `mapstructure:"OTEL_SERVICE_NAME"`
	FCMCredentialsFile   string `mapstructure:"FCM_CREDENTIALS_FILE"`
	PushTTLSeconds       int    `mapstructure:"PUSH_TTL_SECONDS"`
	MongoURI             string `mapstructure:"MONGO_URI"`
	MongoDatabase        string `mapstructure:"MONGO_DATABASE"`
	MongoCollection      string `mapstructure:"MONGO_COLLECTION"`
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int    `mapstructure:"REDIS_DB"`
	PostgresDSN          string `mapstructure:"POSTGRES_DSN"`
	EmailHost            string `mapstructure:"EMAIL_HOST"`
	EmailPort            string `mapstructure:"EMAIL_PORT"`
	EmailUsername        string `mapstructure:"EMAIL_USERNAME"`
	EmailPassword        string `mapstructure:"EMAIL_PASSWORD"`
	EmailFromAddress     string `mapstructure:"EMAIL_FROM_ADDRESS"`
	EmailFromName        string `mapstructure:"EMAIL_FROM_NAME"`
	EmailMaxRetries      int    `mapstructure:"EMAIL_MAX_RETRIES"`
	EmailRetryBaseDelay  int    `mapstructure:"EMAIL_RETRY_BASE_DELAY_MS"`
	OtpTTLSeconds        int    `mapstructure:"OTP_TTL_SECONDS"`
	OtpMaxAttempts       int    `mapstructure:"OTP_MAX_ATTEMPTS"`
	OtpResendCooldown    int    `mapstructure:"OTP_RESEND_COOLDOWN_SECONDS"`
}

type EmailConf struct {
	Host          string
	Port          string
	Username      string
	Password      string
	FromAddress   string
	FromName      string
	MaxRetries    int
	BaseDelayMsec int
}

type OtpConf struct {
	TTLSeconds      int
	MaxAttempts     int
	CooldownSeconds int
}

var cfg *Config

func NewConfig(path string) (*Config, error) {
	relativeUrl, err := GetBasePath(path)
	if err != nil {
		return nil, fmt.Errorf("error getting base path: %v", err)
	}

	vip := viper.New()
	vip.SetConfigType("env")
	vip.SetConfigName(".env")
	vip.AddConfigPath(relativeUrl)
	vip.AutomaticEnv()

	if err := vip.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	vip.BindEnv("SERVER_ADDRESS")
	vip.BindEnv("METRICS_SERVER_ADDRESS")
	vip.BindEnv("OTEL_EXPORTER_OTLP_ENDPOINT")
	vip.BindEnv("OTEL_EXPORTER_OTLP_INSECURE")
	vip.BindEnv("OTEL_SERVICE_NAME")
	vip.BindEnv("FCM_CREDENTIALS_FILE")
	vip.BindEnv("PUSH_TTL_SECONDS")
	vip.BindEnv("MONGO_URI")
	vip.BindEnv("MONGO_DATABASE")
	vip.BindEnv("MONGO_COLLECTION")
	vip.BindEnv("REDIS_ADDR")
	vip.BindEnv("REDIS_PASSWORD")
	vip.BindEnv("REDIS_DB")
	vip.BindEnv("POSTGRES_DSN")
	vip.BindEnv("EMAIL_HOST")
	vip.BindEnv("EMAIL_PORT")
	vip.BindEnv("EMAIL_USERNAME")
	vip.BindEnv("EMAIL_PASSWORD")
	vip.BindEnv("EMAIL_FROM_ADDRESS")
	vip.BindEnv("EMAIL_FROM_NAME")
	vip.BindEnv("EMAIL_MAX_RETRIES")
	vip.BindEnv("EMAIL_RETRY_BASE_DELAY_MS")
	vip.BindEnv("OTP_TTL_SECONDS")
	vip.BindEnv("OTP_MAX_ATTEMPTS")
	vip.BindEnv("OTP_RESEND_COOLDOWN_SECONDS")

	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %v", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.ServerAddress == "" {
		c.ServerAddress = ":8080"
	}
	if c.MetricsServerAddress == "" {
		c.MetricsServerAddress = ":9090"
	}
	if c.PushTTLSeconds <= 0 {
		c.PushTTLSeconds = 3600
	}
	if c.OtpTTLSeconds <= 0 {
		c.OtpTTLSeconds = 300
	}
	if c.OtpMaxAttempts <= 0 {
		c.OtpMaxAttempts = 3
	}
	if c.OtpResendCooldown <= 0 {
		c.OtpResendCooldown = 60
	}
	if c.EmailMaxRetries <= 0 {
		c.EmailMaxRetries = 3
	}
	if c.EmailRetryBaseDelay <= 0 {
		c.EmailRetryBaseDelay = 200
	}
}

func GetBasePath(path string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return filepath.Join(cwd, path), nil
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			return "", errors.New("go.mod not found")
		}
		cwd = parent
	}
}

func GetConfig() *Config {
	return cfg
}

func GetEmailConf() *EmailConf {
	if cfg == nil {
		return &EmailConf{}
	}

	return &EmailConf{
		Host:          cfg.EmailHost,
		Port:          cfg.EmailPort,
		Username:      cfg.EmailUsername,
		Password:      cfg.EmailPassword,
		FromAddress:   cfg.EmailFromAddress,
		FromName:      cfg.EmailFromName,
		MaxRetries:    cfg.EmailMaxRetries,
		BaseDelayMsec: cfg.EmailRetryBaseDelay,
	}
}

func GetOtpConf() *OtpConf {
	if cfg == nil {
		return &OtpConf{TTLSeconds: 300, MaxAttempts: 3, CooldownSeconds: 60}
	}

	return &OtpConf{
		TTLSeconds:      cfg.OtpTTLSeconds,
		MaxAttempts:     cfg.OtpMaxAttempts,
		CooldownSeconds: cfg.OtpResendCooldown,
	}
}

// SetTestConfig allows tests to set the global config variable directly.
func SetTestConfig(testCfg *Config) {
	cfg = testCfg
}
