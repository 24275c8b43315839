package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dadmind/internal/domain"

	"github.com/spf13/viper"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"

	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

type Config struct {
	Env        string
	Server     ServerConfig
	Logger     LoggerConfig
	LLM        LLMConfig
	Knowledge  KnowledgeConfig
	Store      StoreConfig
	Redis      RedisConfig
	Assessment AssessmentConfig
	Chat       ChatConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	Server      string
	Timeout     time.Duration
	Temperature float64
}

// Enabled reports whether the provider has the credentials it needs.
// Ollama runs locally and needs none.
func (c LLMConfig) Enabled() bool {
	if c.Provider == ProviderOllama {
		return c.Server != ""
	}
	return c.APIKey != ""
}

type DocumentConfig struct {
	Name     string `mapstructure:"name"`
	Location string `mapstructure:"location"`
}

type KnowledgeConfig struct {
	Documents       []DocumentConfig
	MaxCharsPerDoc  int
	MaxContextChars int
	LoadTimeout     time.Duration
}

// Descriptors converts the configured documents into knowledge descriptors.
func (k KnowledgeConfig) Descriptors() []domain.DocumentDescriptor {
	out := make([]domain.DocumentDescriptor, 0, len(k.Documents))
	for _, d := range k.Documents {
		out = append(out, domain.DocumentDescriptor{Name: d.Name, Location: d.Location})
	}
	return out
}

type StoreConfig struct {
	Backend    string
	SQLitePath string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AssessmentConfig struct {
	ResultTTL time.Duration
}

type ChatConfig struct {
	MaxConversations int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("logger.level", "info")
	v.SetDefault("llm.provider", ProviderGoogleAI)
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.timeout", 60)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("knowledge.max_chars_per_doc", 15000)
	v.SetDefault("knowledge.max_context_chars", 3800)
	v.SetDefault("knowledge.load_timeout", 120)
	v.SetDefault("store.backend", StoreSQLite)
	v.SetDefault("store.sqlite_path", "dadmind.db")
	v.SetDefault("assessment.result_ttl", 24*60)
	v.SetDefault("chat.max_conversations", 1024)
}

// LoadConfig reads config.yaml from the usual locations and applies
// environment overrides. A missing file is not an error; defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	return load(v)
}

// LoadConfigFile reads an explicit configuration file.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Env: v.GetString("env"),
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			APIKey:      v.GetString("llm.api_key"),
			Model:       v.GetString("llm.model"),
			Server:      v.GetString("llm.server"),
			Timeout:     v.GetDuration("llm.timeout") * time.Second,
			Temperature: v.GetFloat64("llm.temperature"),
		},
		Knowledge: KnowledgeConfig{
			MaxCharsPerDoc:  v.GetInt("knowledge.max_chars_per_doc"),
			MaxContextChars: v.GetInt("knowledge.max_context_chars"),
			LoadTimeout:     v.GetDuration("knowledge.load_timeout") * time.Second,
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(v.GetString("store.backend")),
			SQLitePath: v.GetString("store.sqlite_path"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Assessment: AssessmentConfig{
			ResultTTL: v.GetDuration("assessment.result_ttl") * time.Minute,
		},
		Chat: ChatConfig{
			MaxConversations: v.GetInt("chat.max_conversations"),
		},
	}

	if err := v.UnmarshalKey("knowledge.documents", &config.Knowledge.Documents); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge.documents: %w", err)
	}

	// Override with environment variables if set
	if env := os.Getenv("ENV"); env != "" {
		config.Env = env
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		v.Set("server.port", port)
		config.Server.Port = v.GetInt("server.port")
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = strings.ToLower(provider)
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.Server = llmServer
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		config.Store.Backend = strings.ToLower(backend)
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		config.Store.SQLitePath = path
	}

	config.Logger.Env = config.Env
	return config, config.validate()
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case ProviderGoogleAI, ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	switch c.Store.Backend {
	case StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unsupported store.backend %q", c.Store.Backend)
	}
	if c.Knowledge.MaxCharsPerDoc <= 0 || c.Knowledge.MaxContextChars <= 0 {
		return fmt.Errorf("knowledge character budgets must be positive")
	}
	return nil
}
