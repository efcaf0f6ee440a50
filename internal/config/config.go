package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Database  DatabaseConfig  `yaml:"database"`
	Assets    AssetsConfig    `yaml:"assets"`
	AI        AIConfig        `yaml:"ai"`
	Export    ExportConfig    `yaml:"export"`
	Auth      AuthConfig      `yaml:"auth"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// AIConfig configures the vendor gateway. Chat (OpenRouter) and media
// (images/speech at MediaBaseURL) are distinct vendors with distinct
// credentials. Both keys are secrets: supplied via file or environment,
// never logged.
type AIConfig struct {
	ChatAPIKey   string   `yaml:"chat_api_key"`
	MediaAPIKey  string   `yaml:"media_api_key"`
	MediaBaseURL string   `yaml:"media_base_url"`
	PlanModels   []string `yaml:"plan_models"`
	TextModels   []string `yaml:"text_models"`
	ImageModel   string   `yaml:"image_model"`
	ImageSize    string   `yaml:"image_size"`
	SpeechModel  string   `yaml:"speech_model"`
	Voice        string   `yaml:"voice"`
}

type ExportConfig struct {
	ChromePath string `yaml:"chrome_path"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// ImagesDir returns the exercise image cache directory.
func (a AssetsConfig) ImagesDir() string { return filepath.Join(a.Dir, "images") }

// AudioDir returns the generated speech directory.
func (a AssetsConfig) AudioDir() string { return filepath.Join(a.Dir, "audio") }

// MotivationLog returns the append-only motivation text log path.
func (a AssetsConfig) MotivationLog() string { return filepath.Join(a.Dir, "motivation.log") }

// Load reads config from a YAML file, applies defaults, then environment
// variable overrides. Env vars use the prefix PLANFIT_ and underscore-
// separated paths:
//
//	PLANFIT_SERVER_HOST, PLANFIT_SERVER_PORT,
//	PLANFIT_DB_PATH, PLANFIT_ASSETS_DIR,
//	PLANFIT_AI_CHAT_API_KEY, PLANFIT_AI_MEDIA_API_KEY,
//	PLANFIT_AI_MEDIA_BASE_URL,
//	PLANFIT_EXPORT_CHROME_PATH, PLANFIT_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "planfit.db"
	}
	if cfg.Assets.Dir == "" {
		cfg.Assets.Dir = "assets"
	}
	if cfg.AI.MediaBaseURL == "" {
		cfg.AI.MediaBaseURL = "https://api.openai.com/v1"
	}
	if len(cfg.AI.PlanModels) == 0 {
		cfg.AI.PlanModels = []string{"openai/gpt-4o-mini", "openai/gpt-4o"}
	}
	if len(cfg.AI.TextModels) == 0 {
		cfg.AI.TextModels = []string{"openai/gpt-4o-mini", "openai/gpt-4o"}
	}
	if cfg.AI.ImageModel == "" {
		cfg.AI.ImageModel = "dall-e-2"
	}
	if cfg.AI.ImageSize == "" {
		cfg.AI.ImageSize = "1024x1024"
	}
	if cfg.AI.SpeechModel == "" {
		cfg.AI.SpeechModel = "tts-1"
	}
	if cfg.AI.Voice == "" {
		cfg.AI.Voice = "alloy"
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "planfit"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANFIT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PLANFIT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PLANFIT_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PLANFIT_ASSETS_DIR"); v != "" {
		cfg.Assets.Dir = v
	}
	if v := os.Getenv("PLANFIT_AI_CHAT_API_KEY"); v != "" {
		cfg.AI.ChatAPIKey = v
	}
	if v := os.Getenv("PLANFIT_AI_MEDIA_API_KEY"); v != "" {
		cfg.AI.MediaAPIKey = v
	}
	if v := os.Getenv("PLANFIT_AI_MEDIA_BASE_URL"); v != "" {
		cfg.AI.MediaBaseURL = v
	}
	if v := os.Getenv("PLANFIT_EXPORT_CHROME_PATH"); v != "" {
		cfg.Export.ChromePath = v
	}
	if v := os.Getenv("PLANFIT_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.AI.ChatAPIKey == "" {
		return fmt.Errorf("ai.chat_api_key is required (or set PLANFIT_AI_CHAT_API_KEY)")
	}
	if c.AI.MediaAPIKey == "" {
		return fmt.Errorf("ai.media_api_key is required (or set PLANFIT_AI_MEDIA_API_KEY)")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Assets.Dir == "" {
		return fmt.Errorf("assets.dir is required")
	}
	return nil
}
