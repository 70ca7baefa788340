package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fridayfun/internal/questiongen"
)

// isolate clears every variable Load reads so the host environment can't
// leak into assertions.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"FRIDAYFUN_LLM_PROVIDER", "FRIDAYFUN_MODEL", "FRIDAYFUN_CATEGORY", "FRIDAYFUN_DB",
		"FRIDAYFUN_LLM_GEMINI_API_KEY", "FRIDAYFUN_LLM_OPENAI_API_KEY", "FRIDAYFUN_ENV",
		"FRIDAYFUN_LOG_LEVEL", "FRIDAYFUN_SERVER_ADDR",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func load(t *testing.T, opts Options) *Config {
	t.Helper()
	if opts.DotEnv == "" {
		opts.DotEnv = filepath.Join(t.TempDir(), "missing.env")
	}
	cfg, err := Load(opts)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg := load(t, Options{})

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "funny", cfg.Category)
	assert.True(t, cfg.EventLog)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-3-flash", cfg.LLM.Gemini.Model)
	assert.False(t, cfg.LLM.HasKey())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, questiongen.DefaultConfig(), cfg.GeneratorConfig())

	cat, err := cfg.StartCategory()
	require.NoError(t, err)
	assert.Equal(t, questiongen.CategoryFunny, cat)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
category: animal
llm:
  provider: openai
  openai:
    api_key: sk-file
    model: gpt-4.1-mini
generator:
  max_history: 5
server:
  addr: 127.0.0.1:9000
  allowed_origins: ["https://school.example"]
`), 0o644))

	cfg := load(t, Options{ConfigFile: path})

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "animal", cfg.Category)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 5, cfg.Generator.MaxHistory)
	assert.Equal(t, 512, cfg.Generator.MaxTokens)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://school.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_SearchesXDGConfigDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fridayfun"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fridayfun", "fridayfun.yaml"),
		[]byte("category: gross\n"), 0o644))

	cfg := load(t, Options{})
	assert.Equal(t, "gross", cfg.Category)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("category: animal\n"), 0o644))

	t.Setenv("FRIDAYFUN_CATEGORY", "thoughtful")
	t.Setenv("FRIDAYFUN_LLM_PROVIDER", "anthropic")
	t.Setenv("FRIDAYFUN_LLM_ANTHROPIC_API_KEY", "sk-ant-env")

	cfg := load(t, Options{ConfigFile: path})
	assert.Equal(t, "thoughtful", cfg.Category)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-env", cfg.LLM.Anthropic.APIKey)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("FRIDAYFUN_CATEGORY", "thoughtful")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("category", "", "")
	flags.String("provider", "", "")
	flags.String("model", "", "")
	flags.String("db", "", "")
	require.NoError(t, flags.Parse([]string{
		"--category", "gross", "--provider", "mock", "--model", "custom", "--db", "/tmp/x.db",
	}))

	cfg := load(t, Options{Flags: flags})
	assert.Equal(t, "gross", cfg.Category)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.NoError(t, cfg.LLM.Validate())
}

func TestLoad_ModelOverrideAppliesToSelectedProvider(t *testing.T) {
	isolate(t)
	t.Setenv("FRIDAYFUN_LLM_PROVIDER", "openrouter")
	t.Setenv("FRIDAYFUN_MODEL", "meta-llama/llama-3-8b")

	cfg := load(t, Options{})
	assert.Equal(t, "meta-llama/llama-3-8b", cfg.LLM.OpenRouter.Model)
	assert.Equal(t, "gemini-3-flash", cfg.LLM.Gemini.Model)
}

func TestLoad_DiscoversStandardKeys(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg := load(t, Options{})
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-openai", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_ExplicitProviderUsesItsStandardKey(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("FRIDAYFUN_LLM_PROVIDER", "anthropic")

	cfg := load(t, Options{})
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.Anthropic.APIKey)
	assert.Empty(t, cfg.LLM.Gemini.APIKey)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("FRIDAYFUN_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("FRIDAYFUN_LOG_LEVEL") })

	cfg := load(t, Options{DotEnv: envFile})
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidCategory(t *testing.T) {
	isolate(t)
	t.Setenv("FRIDAYFUN_CATEGORY", "spooky")

	_, err := Load(Options{DotEnv: filepath.Join(t.TempDir(), "none.env")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spooky")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(Options{
		ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"),
		DotEnv:     filepath.Join(t.TempDir(), "none.env"),
	})
	require.Error(t, err)
}
