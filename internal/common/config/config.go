// internal/common/config/config.go
package config

import (
	"fmt"
	"path/filepath"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Data      DataConfig      `mapstructure:"data"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Bot       BotConfig       `mapstructure:"bot"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// DataConfig locates the dictionary files and the JSON-lines knowledge file.
type DataConfig struct {
	DictDir       string            `mapstructure:"dict_dir"`
	Dictionaries  map[string]string `mapstructure:"dictionaries"` // category -> file name inside DictDir
	KnowledgeFile string            `mapstructure:"knowledge_file"`
}

// DictionaryPath resolves the file for a category. Absolute names are used as-is.
func (d DataConfig) DictionaryPath(category string) string {
	name, ok := d.Dictionaries[category]
	if !ok || name == "" {
		name = category + ".txt"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.DictDir, name)
}

const (
	BackendFile          = "file"
	BackendPostgres      = "postgres"
	BackendElasticsearch = "elasticsearch"
	BackendRedis         = "redis"
)

// KnowledgeConfig selects where disease records are loaded from.
type KnowledgeConfig struct {
	Backend     string `mapstructure:"backend" validate:"oneof=file postgres elasticsearch redis"`
	Table       string `mapstructure:"table" validate:"required"`
	Index       string `mapstructure:"index" validate:"required"`
	RedisKey    string `mapstructure:"redis_key" validate:"required"`
	MaxRecords  int    `mapstructure:"max_records" validate:"gte=1"`
	LoadTimeout int    `mapstructure:"load_timeout" validate:"gte=0"` // milliseconds
	MaxRetries  int    `mapstructure:"max_retries" validate:"gte=1,lte=20"`
	RetryDelay  int    `mapstructure:"retry_delay" validate:"gte=0"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
}

// GetURL returns the URL field or the first address.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BotConfig holds the conversational surface settings.
type BotConfig struct {
	Name          string   `mapstructure:"name" validate:"required"`
	ExitTokens    []string `mapstructure:"exit_tokens" validate:"min=1,dive,required"`
	DemoQuestions []string `mapstructure:"demo_questions"`
}

// LoggingConfig holds logging settings. Output is stdout, stderr or a file path.
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	Output     string `mapstructure:"output"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus textfile written on exit.
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
