package config

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"newsletter-go/internal/domain"
)

type Settings struct {
	Application ApplicationSettings `yaml:"application" envPrefix:"APPLICATION_"`
	Database    DatabaseSettings    `yaml:"database" envPrefix:"DATABASE_"`
	EmailClient EmailClientSettings `yaml:"email_client" envPrefix:"EMAIL_CLIENT_"`
	Storage     StorageSettings     `yaml:"storage" envPrefix:"STORAGE_"`
	Telemetry   TelemetrySettings   `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

type ApplicationSettings struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     uint16 `yaml:"port" env:"PORT"`
	GinMode  string `yaml:"gin_mode" env:"GIN_MODE"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

func (s ApplicationSettings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(int(s.Port)))
}

type DatabaseSettings struct {
	Host           string `yaml:"host" env:"HOST"`
	Port           uint16 `yaml:"port" env:"PORT"`
	Username       string `yaml:"username" env:"USERNAME"`
	Password       Secret `yaml:"password" env:"PASSWORD"`
	DatabaseName   string `yaml:"database_name" env:"DATABASE_NAME"`
	RequireSSL     bool   `yaml:"require_ssl" env:"REQUIRE_SSL"`
	MaxConns       int32  `yaml:"max_conns" env:"MAX_CONNS"`
	ConnectRetries int    `yaml:"connect_retries" env:"CONNECT_RETRIES"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH"`
}

// ConnectionString targets DatabaseName.
func (s DatabaseSettings) ConnectionString() Secret {
	u := s.baseURL()
	u.Path = "/" + s.DatabaseName
	return Secret(u.String())
}

// ConnectionStringWithoutDB connects to the server's default database. Used to
// create a fresh database before running migrations against it.
func (s DatabaseSettings) ConnectionStringWithoutDB() Secret {
	u := s.baseURL()
	return Secret(u.String())
}

func (s DatabaseSettings) baseURL() *url.URL {
	sslMode := "disable"
	if s.RequireSSL {
		sslMode = "require"
	}

	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.Username, s.Password.Expose()),
		Host:     net.JoinHostPort(s.Host, strconv.Itoa(int(s.Port))),
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
}

type EmailClientSettings struct {
	BaseURL             string `yaml:"base_url" env:"BASE_URL"`
	SenderEmail         string `yaml:"sender_email" env:"SENDER_EMAIL"`
	AuthorizationToken  Secret `yaml:"authorization_token" env:"AUTHORIZATION_TOKEN"`
	TimeoutMilliseconds uint64 `yaml:"timeout_milliseconds" env:"TIMEOUT_MILLISECONDS"`
	SendOnSubscribe     bool   `yaml:"send_on_subscribe" env:"SEND_ON_SUBSCRIBE"`
}

func (s EmailClientSettings) Sender() (domain.SubscriberEmail, error) {
	return domain.ParseSubscriberEmail(s.SenderEmail)
}

func (s EmailClientSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutMilliseconds) * time.Millisecond
}

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
	StorageBackendDapr     = "dapr"
)

type StorageSettings struct {
	Backend       string `yaml:"backend" env:"BACKEND"`
	DaprStoreName string `yaml:"dapr_store_name" env:"DAPR_STORE_NAME"`
}

type TelemetrySettings struct {
	Enabled        bool   `yaml:"enabled" env:"ENABLED"`
	ServiceName    string `yaml:"service_name" env:"SERVICE_NAME"`
	ServiceVersion string `yaml:"service_version" env:"SERVICE_VERSION"`
}

// Secret keeps credentials out of logs and formatted output.
type Secret string

func (s Secret) Expose() string {
	return string(s)
}

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}
