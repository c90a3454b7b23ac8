package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/livebundle-github/internal/logger"
)

// Queue backends supported by the webhook server.
const (
	QueueBackendMemory = "memory"
	QueueBackendNATS   = "nats"
)

// Config holds the application's configuration values.
type Config struct {
	Server   ServerConfig
	Logging  logger.Config
	Queue    QueueConfig
	GitHub   GitHubConfig
	Database DBConfig
	Storage  AzureBlobStorageConfig
}

// ServerConfig is the bind address of the webhook listener.
type ServerConfig struct {
	Host string
	Port int
}

// Addr returns the host:port pair the listener binds to.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// QueueConfig selects and tunes the job queue implementation.
type QueueConfig struct {
	Backend    string
	Size       int
	MaxWorkers int
	NATSURL    string
	Subject    string
	QueueGroup string
}

// GitHubConfig holds the GitHub App credentials used by the job runner.
type GitHubConfig struct {
	AppID          int64
	PrivateKeyPath string
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("QUEUE_BACKEND", QueueBackendMemory)
	v.SetDefault("QUEUE_SIZE", 100)
	v.SetDefault("MAX_WORKERS", 5)
	v.SetDefault("NATS_URL", "nats://127.0.0.1:4222")
	v.SetDefault("NATS_SUBJECT", "livebundle.jobs")
	v.SetDefault("NATS_QUEUE_GROUP", "livebundle-workers")
	v.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/livebundle.private-key.pem")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "livebundle")
	v.SetDefault("DB_NAME", "livebundle")
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute)
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. Environment variables
// take precedence over values from the .env file.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no config file loaded", "error", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetInt("SERVER_PORT"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(viper.GetString("LOG_LEVEL")),
			Format: strings.ToLower(viper.GetString("LOG_FORMAT")),
			Output: strings.ToLower(viper.GetString("LOG_OUTPUT")),
		},
		Queue: QueueConfig{
			Backend:    strings.ToLower(viper.GetString("QUEUE_BACKEND")),
			Size:       viper.GetInt("QUEUE_SIZE"),
			MaxWorkers: viper.GetInt("MAX_WORKERS"),
			NATSURL:    viper.GetString("NATS_URL"),
			Subject:    viper.GetString("NATS_SUBJECT"),
			QueueGroup: viper.GetString("NATS_QUEUE_GROUP"),
		},
		GitHub: GitHubConfig{
			AppID:          viper.GetInt64("GITHUB_APP_ID"),
			PrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
		},
		Database: readDBConfig(viper.GetViper()),
		Storage: AzureBlobStorageConfig{
			AccountURL: viper.GetString("AZURE_STORAGE_ACCOUNT_URL"),
			Container:  viper.GetString("AZURE_STORAGE_CONTAINER"),
			SASToken:   viper.GetString("AZURE_STORAGE_SAS_TOKEN"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDBConfig reads only the database settings, for tools that talk to the
// job table without running the receiver. It does not touch the global viper
// instance.
func LoadDBConfig() DBConfig {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)
	_ = v.ReadInConfig()
	return readDBConfig(v)
}

func readDBConfig(v *viper.Viper) DBConfig {
	return DBConfig{
		Host:            v.GetString("DB_HOST"),
		Port:            v.GetInt("DB_PORT"),
		Username:        v.GetString("DB_USER"),
		Password:        v.GetString("DB_PASSWORD"),
		Database:        v.GetString("DB_NAME"),
		ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
	}
}

// LoadWorkerConfig loads the configuration for a process that runs jobs
// regardless of the queue backend, so GitHub App credentials are required.
func LoadWorkerConfig() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.GitHub.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the App credentials needed to run jobs are present.
func (c GitHubConfig) Validate() error {
	if c.AppID == 0 {
		return fmt.Errorf("GITHUB_APP_ID must be set")
	}
	return nil
}

// Validate checks that required values are present and consistent. GitHub App
// credentials are only required when jobs run in-process.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	switch c.Queue.Backend {
	case QueueBackendMemory:
		if c.Queue.Size <= 0 {
			return fmt.Errorf("QUEUE_SIZE must be positive, got %d", c.Queue.Size)
		}
		if err := c.GitHub.Validate(); err != nil {
			return err
		}
	case QueueBackendNATS:
		if c.Queue.NATSURL == "" {
			return fmt.Errorf("NATS_URL is required for the nats queue backend")
		}
		if c.Queue.Subject == "" {
			return fmt.Errorf("NATS_SUBJECT is required for the nats queue backend")
		}
	default:
		return fmt.Errorf("unsupported queue backend: %q", c.Queue.Backend)
	}
	return nil
}
