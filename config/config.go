package config

import (
	"PeerFund_Auth/internal/security"
	"net"
	"time"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Log       LogConfig       `yaml:"log"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Addr возвращает адрес для http.Server.
func (server ServerConfig) Addr() string {
	return net.JoinHostPort(server.Host, server.Port)
}

// DriverMemory хранит пользователей в памяти процесса, без базы данных.
const DriverMemory = "memory"

type DatabaseConfig struct {
	Driver           string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"postgres"`
	ConnectionString string `yaml:"connection_string" env:"DATABASE_CONNECTION_URL"`
}

type JWTConfig struct {
	SecretKey         string        `yaml:"secret_key" env:"JWT_SECRET_KEY"`
	AccessTokenTTL    time.Duration `yaml:"access_token_ttl" env:"JWT_ACCESS_TOKEN_TTL" env-default:"30m"`
	RefreshTokenTTL   time.Duration `yaml:"refresh_token_ttl" env:"JWT_REFRESH_TOKEN_TTL" env-default:"336h"`
	RotationThreshold time.Duration `yaml:"rotation_threshold" env:"JWT_ROTATION_THRESHOLD" env-default:"168h"`
	Issuer            string        `yaml:"issuer" env:"JWT_ISSUER"`
}

// Policy собирает политику токенов; нулевые значения заменяются значениями по умолчанию.
func (jwt JWTConfig) Policy() security.Policy {
	return security.Policy{
		AccessTokenTTL:    jwt.AccessTokenTTL,
		RefreshTokenTTL:   jwt.RefreshTokenTTL,
		RotationThreshold: jwt.RotationThreshold,
		Issuer:            jwt.Issuer,
	}.WithDefaults()
}

type WebhookConfig struct {
	URL     string        `yaml:"url" env:"WEBHOOK_URL"`
	Timeout time.Duration `yaml:"timeout" env:"WEBHOOK_TIMEOUT" env-default:"5s"`
}

type LogConfig struct {
	Level int `yaml:"level" env:"LOG_LEVEL" env-default:"0"`
}

// BootstrapConfig: пользователь, создаваемый при старте с драйвером "memory".
type BootstrapConfig struct {
	Username string   `yaml:"username" env:"BOOTSTRAP_USERNAME"`
	Password string   `yaml:"password" env:"BOOTSTRAP_PASSWORD"`
	Roles    []string `yaml:"roles" env:"BOOTSTRAP_ROLES" env-separator:","`
}
