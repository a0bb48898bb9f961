// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MEDQA"

// DefaultExitTokens end an interactive session.
var DefaultExitTokens = []string{"quit", "exit", "退出", "q"}

// DefaultDemoQuestions are answered by the demo command.
var DefaultDemoQuestions = []string{
	"乳腺癌的症状有哪些？",
	"糖尿病",
	"为什么有的人会失眠？",
	"感冒要多久才能好？",
	"高血压怎么治疗？",
	"肺癌的症状是什么？",
	"如何预防心脏病？",
}

// Load reads configs/config.yaml, merges config.<env>.yaml and applies
// MEDQA_* environment overrides. A missing config file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	bindEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	return finalize()
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finalize()
}

func bindEnv() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

func finalize() (*Config, error) {
	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found. It stays silent: stdout belongs
// to the chat session.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "medical-qa-bot"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	// Data defaults
	if cfg.Data.DictDir == "" {
		cfg.Data.DictDir = "data/dict"
	}
	if cfg.Data.KnowledgeFile == "" {
		cfg.Data.KnowledgeFile = "data/medical.json"
	}
	if cfg.Data.Dictionaries == nil {
		cfg.Data.Dictionaries = map[string]string{}
	}

	// Knowledge defaults
	if cfg.Knowledge.Backend == "" {
		cfg.Knowledge.Backend = BackendFile
	}
	if cfg.Knowledge.Table == "" {
		cfg.Knowledge.Table = "medical_records"
	}
	if cfg.Knowledge.Index == "" {
		cfg.Knowledge.Index = "medical_records"
	}
	if cfg.Knowledge.RedisKey == "" {
		cfg.Knowledge.RedisKey = "medqa:knowledge"
	}
	if cfg.Knowledge.MaxRecords == 0 {
		cfg.Knowledge.MaxRecords = 10000
	}
	if cfg.Knowledge.LoadTimeout == 0 {
		cfg.Knowledge.LoadTimeout = 30000
	}
	if cfg.Knowledge.MaxRetries == 0 {
		cfg.Knowledge.MaxRetries = 3
	}
	if cfg.Knowledge.RetryDelay == 0 {
		cfg.Knowledge.RetryDelay = 500
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 5
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	// Bot defaults
	if cfg.Bot.Name == "" {
		cfg.Bot.Name = "小勇"
	}
	if len(cfg.Bot.ExitTokens) == 0 {
		cfg.Bot.ExitTokens = append([]string(nil), DefaultExitTokens...)
	}
	if len(cfg.Bot.DemoQuestions) == 0 {
		cfg.Bot.DemoQuestions = append([]string(nil), DefaultDemoQuestions...)
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

var validate = validator.New()

// validateConfig checks the struct tags, then the fields the selected
// knowledge backend needs.
func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}

	switch cfg.Knowledge.Backend {
	case BackendFile:
		if cfg.Data.KnowledgeFile == "" {
			return fmt.Errorf("data.knowledge_file is required for the file backend")
		}
	case BackendPostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	case BackendElasticsearch:
		if cfg.Database.Elasticsearch.GetURL() == "" {
			return fmt.Errorf("database.elasticsearch.addresses or url is required")
		}
	case BackendRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required")
		}
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
