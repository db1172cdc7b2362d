package config

import "time"

type Config interface {
	EnvConfig
	KeysConfig
	TokenConfig
	SmtpConfig
	DBConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

// KeysConfig supplies the four pieces of RSA key material used for token
// signing and verification. Each value is base64-encoded PEM text and is
// decoded before use.
type KeysConfig interface {
	GetAccessTokenPrivateKey() string
	GetAccessTokenPublicKey() string
	GetRefreshTokenPrivateKey() string
	GetRefreshTokenPublicKey() string
}

type TokenConfig interface {
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type SmtpConfig interface {
	GetSmtpHost() string
	GetSmtpPort() string
	GetSmtpAccount() string
	GetSmtpPassword() string
	GetSmtpSender() string
}

type DBConfig interface {
	GetDatabaseDSN() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
