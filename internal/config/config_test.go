package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  path: "planfit.db"
assets:
  dir: "assets"
ai:
  chat_api_key: "sk-chat-123"
  media_api_key: "sk-media-123"
  plan_models:
    - "openai/gpt-4o-mini"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields
// populated and defaults applied for omitted sections.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.AI.ChatAPIKey != "sk-chat-123" {
		t.Errorf("ai.chat_api_key = %q, want %q", cfg.AI.ChatAPIKey, "sk-chat-123")
	}
	if cfg.AI.MediaAPIKey != "sk-media-123" {
		t.Errorf("ai.media_api_key = %q, want %q", cfg.AI.MediaAPIKey, "sk-media-123")
	}
	// Defaults
	if cfg.AI.MediaBaseURL != "https://api.openai.com/v1" {
		t.Errorf("ai.media_base_url = %q, want default", cfg.AI.MediaBaseURL)
	}
	if cfg.AI.ImageModel != "dall-e-2" {
		t.Errorf("ai.image_model = %q, want dall-e-2", cfg.AI.ImageModel)
	}
	if cfg.AI.Voice != "alloy" {
		t.Errorf("ai.voice = %q, want alloy", cfg.AI.Voice)
	}
	if len(cfg.AI.TextModels) != 2 {
		t.Errorf("ai.text_models = %v, want 2 defaults", cfg.AI.TextModels)
	}
	// Explicit plan model list is not padded with defaults
	if len(cfg.AI.PlanModels) != 1 || cfg.AI.PlanModels[0] != "openai/gpt-4o-mini" {
		t.Errorf("ai.plan_models = %v, want configured value", cfg.AI.PlanModels)
	}
}

// TestEnvOverride verifies that PLANFIT_ env vars take precedence over YAML
// values. This ensures deployments can override config via environment.
func TestEnvOverride(t *testing.T) {
	t.Setenv("PLANFIT_SERVER_PORT", "9999")
	t.Setenv("PLANFIT_AI_CHAT_API_KEY", "sk-chat-env")
	t.Setenv("PLANFIT_AI_MEDIA_API_KEY", "sk-media-env")
	t.Setenv("PLANFIT_ASSETS_DIR", "/var/lib/planfit")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.AI.ChatAPIKey != "sk-chat-env" {
		t.Errorf("ai.chat_api_key = %q, want %q", cfg.AI.ChatAPIKey, "sk-chat-env")
	}
	if cfg.AI.MediaAPIKey != "sk-media-env" {
		t.Errorf("ai.media_api_key = %q, want %q", cfg.AI.MediaAPIKey, "sk-media-env")
	}
	if cfg.Assets.Dir != "/var/lib/planfit" {
		t.Errorf("assets.dir = %q, want override", cfg.Assets.Dir)
	}
	// Unchanged fields keep YAML values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want YAML value", cfg.Server.Host)
	}
}

// TestMissingCredentials verifies validation rejects configs missing either
// vendor credential: chat and media keys authenticate different services and
// neither can stand in for the other.
func TestMissingCredentials(t *testing.T) {
	if _, err := Load(writeTemp(t, "server:\n  port: 8080\n")); err == nil {
		t.Error("expected validation error for missing ai.chat_api_key")
	}

	chatOnly := `
ai:
  chat_api_key: "sk-chat"
`
	if _, err := Load(writeTemp(t, chatOnly)); err == nil {
		t.Error("expected validation error for missing ai.media_api_key")
	}
}

// TestAssetPaths verifies the derived asset layout is stable: images/, audio/
// and motivation.log under the assets dir.
func TestAssetPaths(t *testing.T) {
	a := AssetsConfig{Dir: "assets"}
	if got := a.ImagesDir(); got != filepath.Join("assets", "images") {
		t.Errorf("ImagesDir = %q", got)
	}
	if got := a.AudioDir(); got != filepath.Join("assets", "audio") {
		t.Errorf("AudioDir = %q", got)
	}
	if got := a.MotivationLog(); got != filepath.Join("assets", "motivation.log") {
		t.Errorf("MotivationLog = %q", got)
	}
}
