package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultSystemInstruction is the fixed decomposition brief sent with every request
const DefaultSystemInstruction = `You are a world-class "High-Achiever Knowledge Architect" and "Action-to-Execution Systems Designer."
Your goal is to turn a transcript into a clean, visual, interactive execution guide.

RULES:
- Do NOT rewrite ideas into new meaning. Preserve original intent.
- Remove filler words and repetition.
- Separate "Ideas" from "Commitments" from "Random Brainstorm."
- Identify "high leverage" actions.
- Use the provided JSON schema strictly.
- ALWAYS return the full structure even if some arrays are empty.

The user will provide a transcript. Output a single JSON object matching the schema.`

// DefaultTranscriptTemplate wraps the transcript in explicit delimiters.
// Triple braces keep mustache from HTML-escaping the text.
const DefaultTranscriptTemplate = `---TRANSCRIPT START---
{{{transcript}}}
---TRANSCRIPT END---

Respond with a single JSON object that conforms to this JSON Schema:
{{{schema}}}`

// DefaultHistoryKey is the slot holding the saved sessions
const DefaultHistoryKey = "ka_pro_history_v1"

// Provider names
const (
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"
)

type Config struct {
	Dir                string // Config directory (logs, overrides, default database)
	DBPath             string
	HistoryKey         string
	Debug              bool
	SystemInstruction  string
	TranscriptTemplate string
	LLM                LLMConfig
}

// LLMConfig selects and tunes the model provider
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string // Resolved from the environment, never read from disk
	Region      string // Bedrock only
	Profile     string // Bedrock only
	MaxTokens   int
	Temperature float64
}

type tomlConfig struct {
	DBPath     string `toml:"db_path"`
	HistoryKey string `toml:"history_key"`
	Debug      bool   `toml:"debug"`
	LLM        struct {
		Provider    string   `toml:"provider"`
		Model       string   `toml:"model"`
		APIKeyEnv   string   `toml:"api_key_env"`
		Region      string   `toml:"region"`
		Profile     string   `toml:"profile"`
		MaxTokens   int      `toml:"max_tokens"`
		Temperature *float64 `toml:"temperature"`
	} `toml:"llm"`
}

// Dir returns the config directory: $KAPRO_CONFIG_DIR or ~/.config/kapro
func Dir() string {
	if dir := os.Getenv("KAPRO_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	return filepath.Join(home, ".config", "kapro")
}

// Load reads config from Dir()
func Load() (*Config, error) {
	return LoadFrom(Dir())
}

// LoadFrom reads config.toml plus the optional system_instruction.txt and
// transcript_template.txt overrides from dir. A missing file means defaults;
// an unparseable config.toml is an error.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{
		Dir:                dir,
		DBPath:             filepath.Join(dir, "kapro.db"),
		HistoryKey:         DefaultHistoryKey,
		SystemInstruction:  DefaultSystemInstruction,
		TranscriptTemplate: DefaultTranscriptTemplate,
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			MaxTokens:   16384,
			Temperature: 0.4,
		},
	}

	apiKeyEnv := ""
	tomlPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", tomlPath, err)
		}
		if tc.DBPath != "" {
			cfg.DBPath = expandHome(tc.DBPath)
		}
		if tc.HistoryKey != "" {
			cfg.HistoryKey = tc.HistoryKey
		}
		cfg.Debug = tc.Debug
		if tc.LLM.Provider != "" {
			cfg.LLM.Provider = strings.ToLower(tc.LLM.Provider)
		}
		cfg.LLM.Model = tc.LLM.Model
		cfg.LLM.Region = tc.LLM.Region
		cfg.LLM.Profile = tc.LLM.Profile
		if tc.LLM.MaxTokens > 0 {
			cfg.LLM.MaxTokens = tc.LLM.MaxTokens
		}
		if tc.LLM.Temperature != nil {
			cfg.LLM.Temperature = *tc.LLM.Temperature
		}
		apiKeyEnv = tc.LLM.APIKeyEnv
	}

	if data, err := os.ReadFile(filepath.Join(dir, "system_instruction.txt")); err == nil {
		if s := strings.TrimSpace(string(data)); s != "" {
			cfg.SystemInstruction = s
		}
	}
	if data, err := os.ReadFile(filepath.Join(dir, "transcript_template.txt")); err == nil {
		if s := strings.TrimSpace(string(data)); s != "" {
			cfg.TranscriptTemplate = s
		}
	}

	cfg.LLM.APIKey = resolveAPIKey(apiKeyEnv)

	switch cfg.LLM.Provider {
	case ProviderGemini, ProviderBedrock:
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want %s or %s)", cfg.LLM.Provider, ProviderGemini, ProviderBedrock)
	}

	return cfg, nil
}

func resolveAPIKey(envName string) string {
	if envName != "" {
		return os.Getenv(envName)
	}
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
