package config

import (
	"fmt"
	"os"
	"time"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	databaseVar   = "DATABASE_DSN"
	accessTTLVar  = "ACCESS_TOKEN_TTL"
	refreshTTLVar = "REFRESH_TOKEN_TTL"

	accessPrivateKeyVar  = "ACCESS_TOKEN_PRIVATE_KEY"
	accessPublicKeyVar   = "ACCESS_TOKEN_PUBLIC_KEY"
	refreshPrivateKeyVar = "REFRESH_TOKEN_PRIVATE_KEY"
	refreshPublicKeyVar  = "REFRESH_TOKEN_PUBLIC_KEY"
)

const (
	defaultAccessTokenTTL  = 60 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Session Auth")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetAccessTokenPrivateKey() string {
	return GetEnv(accessPrivateKeyVar, "")
}

func (EnvVars) GetAccessTokenPublicKey() string {
	return GetEnv(accessPublicKeyVar, "")
}

func (EnvVars) GetRefreshTokenPrivateKey() string {
	return GetEnv(refreshPrivateKeyVar, "")
}

func (EnvVars) GetRefreshTokenPublicKey() string {
	return GetEnv(refreshPublicKeyVar, "")
}

func (EnvVars) GetAccessTokenTTL() time.Duration {
	return getDuration(accessTTLVar, defaultAccessTokenTTL)
}

func (EnvVars) GetRefreshTokenTTL() time.Duration {
	return getDuration(refreshTTLVar, defaultRefreshTokenTTL)
}

func (EnvVars) GetSmtpHost() string {
	return GetEnv("SMTP_HOST", "smtp.gmail.com")
}

func (EnvVars) GetSmtpPort() string {
	return GetEnv("SMTP_PORT", "587")
}

func (EnvVars) GetSmtpAccount() string {
	return GetEnv("SMTP_ACCOUNT", "")
}

func (EnvVars) GetSmtpPassword() string {
	return GetEnv("SMTP_PASSWORD", "")
}

func (EnvVars) GetSmtpSender() string {
	return GetEnv("SMTP_SENDER", "no-reply@example.com")
}

func (EnvVars) GetDatabaseDSN() string {
	return GetEnv(databaseVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
