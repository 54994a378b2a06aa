package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "APP_"

// Load reads <dir>/base.yaml, overlays the file named after APP_ENVIRONMENT
// (local when unset) and finally applies APP_* environment variables, e.g.
// APP_APPLICATION_PORT or APP_DATABASE_PASSWORD.
func Load(dir string) (*Settings, error) {
	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w .env: %w", ErrReadingConfig, err)
	}

	raw, ok := os.LookupEnv(EnvironmentVariable)
	if !ok || raw == "" {
		raw = string(EnvironmentLocal)
	}
	environment, err := ParseEnvironment(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", EnvironmentVariable, err)
	}

	return LoadEnvironment(dir, environment)
}

func LoadEnvironment(dir string, environment Environment) (*Settings, error) {
	settings := defaults()

	if err := decodeFile(filepath.Join(dir, "base.yaml"), &settings); err != nil {
		return nil, err
	}
	if err := decodeFile(filepath.Join(dir, string(environment)+".yaml"), &settings); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(&settings, env.Options{Prefix: envPrefix}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// decodeFile merges the YAML document at path into settings. Keys absent from
// the document leave the current values untouched.
func decodeFile(path string, settings *Settings) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrReadingConfig, path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w %s: %w", ErrParsingConfig, path, err)
	}
	return nil
}

func defaults() Settings {
	return Settings{
		Application: ApplicationSettings{
			Host:     "127.0.0.1",
			GinMode:  "release",
			LogLevel: "info",
		},
		Database: DatabaseSettings{
			Port:           5432,
			MaxConns:       10,
			ConnectRetries: 3,
			MigrationsPath: "migrations",
		},
		EmailClient: EmailClientSettings{
			TimeoutMilliseconds: 10000,
		},
		Storage: StorageSettings{
			Backend:       StorageBackendPostgres,
			DaprStoreName: "statestore",
		},
		Telemetry: TelemetrySettings{
			ServiceName:    "newsletter-go",
			ServiceVersion: "dev",
		},
	}
}

func (s *Settings) validate() error {
	var errs []error
	if s.Application.Port == 0 {
		errs = append(errs, errors.New("application.port is required"))
	}
	if s.EmailClient.BaseURL == "" {
		errs = append(errs, errors.New("email_client.base_url is required"))
	}
	if _, err := s.EmailClient.Sender(); err != nil {
		errs = append(errs, fmt.Errorf("email_client.sender_email: %w", err))
	}
	if s.EmailClient.TimeoutMilliseconds == 0 {
		errs = append(errs, errors.New("email_client.timeout_milliseconds must be positive"))
	}

	switch s.Storage.Backend {
	case StorageBackendPostgres:
		if s.Database.Host == "" || s.Database.DatabaseName == "" || s.Database.Username == "" {
			errs = append(errs, errors.New("database host, username and database_name are required"))
		}
	case StorageBackendMemory, StorageBackendDapr:
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q is not supported", s.Storage.Backend))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
