package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "kapro.db"), cfg.DBPath)
	assert.Equal(t, DefaultHistoryKey, cfg.HistoryKey)
	assert.Equal(t, DefaultSystemInstruction, cfg.SystemInstruction)
	assert.Equal(t, DefaultTranscriptTemplate, cfg.TranscriptTemplate)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "legacy-key", cfg.LLM.APIKey)
	assert.False(t, cfg.Debug)
}

func TestLoadFrom_TOML(t *testing.T) {
	t.Setenv("MY_KEY", "secret")
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
db_path = "/tmp/custom.db"
history_key = "custom_history"
debug = true

[llm]
provider = "Bedrock"
model = "anthropic.claude-3-5-sonnet"
api_key_env = "MY_KEY"
region = "eu-west-1"
max_tokens = 4096
temperature = 0.0
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "custom_history", cfg.HistoryKey)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ProviderBedrock, cfg.LLM.Provider)
	assert.Equal(t, "anthropic.claude-3-5-sonnet", cfg.LLM.Model)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "eu-west-1", cfg.LLM.Region)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	assert.Equal(t, 0.0, cfg.LLM.Temperature)
}

func TestLoadFrom_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "system_instruction.txt", "  Be brief.  \n")
	writeFile(t, dir, "transcript_template.txt", "<<{{{transcript}}}>>")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "Be brief.", cfg.SystemInstruction)
	assert.Equal(t, "<<{{{transcript}}}>>", cfg.TranscriptTemplate)
}

func TestLoadFrom_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", "[llm\nprovider=")
	_, err := LoadFrom(dir)
	assert.Error(t, err)

	dir = t.TempDir()
	writeFile(t, dir, "config.toml", "[llm]\nprovider = \"openai\"\n")
	_, err = LoadFrom(dir)
	assert.Error(t, err)
}

func TestDir_Env(t *testing.T) {
	t.Setenv("KAPRO_CONFIG_DIR", "/tmp/kapro-test")
	assert.Equal(t, "/tmp/kapro-test", Dir())
}
