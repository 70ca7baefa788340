package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/fridayfun/internal/llm"
	"github.com/abhisek/fridayfun/internal/questiongen"
)

// EnvPrefix namespaces every environment variable read by the app.
const EnvPrefix = "FRIDAYFUN"

// Config holds application configuration loaded from files, the
// environment and command-line flags.
type Config struct {
	Env       string          `mapstructure:"env"`      // local, development, production
	DBPath    string          `mapstructure:"db"`       // diagnostics database, empty for the XDG default
	EventLog  bool            `mapstructure:"eventlog"` // record LLM requests in the database
	Category  string          `mapstructure:"category"` // loaded on startup
	LLM       llm.Config      `mapstructure:"llm"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
}

// GeneratorConfig tunes the question generator.
type GeneratorConfig struct {
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	MaxHistory  int     `mapstructure:"max_history"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // TUI log file, empty for the XDG default
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeneratorConfig converts to the generator's own config type.
func (c *Config) GeneratorConfig() questiongen.Config {
	return questiongen.Config{
		MaxTokens:   c.Generator.MaxTokens,
		Temperature: c.Generator.Temperature,
		MaxHistory:  c.Generator.MaxHistory,
	}
}

// StartCategory returns the configured startup category.
func (c *Config) StartCategory() (questiongen.Category, error) {
	return questiongen.ParseCategory(c.Category)
}

// Options tells Load where to look besides the defaults.
type Options struct {
	// ConfigFile is an explicit config path. When empty, fridayfun.yaml is
	// searched in the working directory and the XDG config directory.
	ConfigFile string

	// DotEnv is the dotenv file loaded before reading the environment.
	// Missing files are ignored.
	DotEnv string

	// Flags, if set, are bound over file and environment values.
	// Recognised names: db, provider, model, category, addr, log-level.
	Flags *pflag.FlagSet
}

// Load reads configuration in precedence order: flags, FRIDAYFUN_*
// environment variables, config file, defaults. When no API key is
// configured, the providers' standard key variables are consulted.
func Load(opts Options) (*Config, error) {
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotenv, err)
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("fridayfun")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// No default: an unset provider means "discover from API keys".
	_ = v.BindEnv("llm.provider")
	_ = v.BindEnv("model")

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.LLM = resolveProvider(cfg.LLM)
	if m := v.GetString("model"); m != "" {
		cfg.LLM = withModel(cfg.LLM, m)
	}

	if _, err := cfg.StartCategory(); err != nil {
		return nil, fmt.Errorf("config category: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	genDefaults := questiongen.DefaultConfig()

	v.SetDefault("env", "local")
	v.SetDefault("db", "")
	v.SetDefault("eventlog", true)
	v.SetDefault("category", string(questiongen.DefaultCategory))

	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", llmDefaults.Gemini.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", llmDefaults.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", llmDefaults.Anthropic.Model)

	v.SetDefault("generator.max_tokens", genDefaults.MaxTokens)
	v.SetDefault("generator.temperature", genDefaults.Temperature)
	v.SetDefault("generator.max_history", genDefaults.MaxHistory)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

var flagKeys = map[string]string{
	"db":        "db",
	"provider":  "llm.provider",
	"model":     "model",
	"category":  "category",
	"addr":      "server.addr",
	"log-level": "log.level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// resolveProvider fills in API keys from the providers' standard
// variables. With no provider chosen, the first key found wins.
func resolveProvider(cfg llm.Config) llm.Config {
	if cfg.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(cfg); ok {
			return discovered
		}
		cfg.Provider = llm.DefaultConfig().Provider
		return cfg
	}

	if cfg.HasKey() {
		return cfg
	}
	switch cfg.Provider {
	case "gemini":
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case "openai":
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case "openrouter":
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	case "anthropic":
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return cfg
}

// withModel overrides the model of the selected provider.
func withModel(cfg llm.Config, model string) llm.Config {
	switch cfg.Provider {
	case "gemini":
		cfg.Gemini.Model = model
	case "openai":
		cfg.OpenAI.Model = model
	case "openrouter":
		cfg.OpenRouter.Model = model
	case "anthropic":
		cfg.Anthropic.Model = model
	}
	return cfg
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "fridayfun"), nil
}
