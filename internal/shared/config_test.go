package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./lineup.db" {
			t.Errorf("expected database path ./lineup.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}

		if config.Uploads.Dir != "./uploads" {
			t.Errorf("expected uploads dir ./uploads, got %s", config.Uploads.Dir)
		}

		if config.Credentials.Anthropic.Model == "" {
			t.Error("expected a default anthropic model")
		}

		if config.Credentials.Anthropic.MaxTokens != 4096 {
			t.Errorf("expected max_tokens 4096, got %d", config.Credentials.Anthropic.MaxTokens)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		err = CreateConfigFile(configPath)
		if err == nil {
			t.Fatal("creating config file again should fail")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already-exists message, got %q", err.Error())
		}
		if strings.Contains(err.Error(), "%!w") {
			t.Errorf("error message carries a malformed wrap verb: %q", err.Error())
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[credentials.anthropic]
api_key = "test_api_key"
model = "claude-sonnet-4-20250514"
max_tokens = 2048
base_url = "http://localhost:9090"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "127.0.0.1"
port = 8080

[uploads]
dir = "/tmp/lineup-uploads"
cdn_base_url = "https://cdn.example.com"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.Anthropic.APIKey != "test_api_key" {
			t.Errorf("expected anthropic api_key test_api_key, got %s", config.Credentials.Anthropic.APIKey)
		}

		if config.Uploads.CDNBaseURL != "https://cdn.example.com" {
			t.Errorf("expected cdn base url, got %s", config.Uploads.CDNBaseURL)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "env_key")
		t.Setenv("UPLOADS_DIR", "/env/uploads")
		t.Setenv("PORT", "9999")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Credentials.Anthropic.APIKey != "env_key" {
			t.Errorf("expected env api key, got %s", config.Credentials.Anthropic.APIKey)
		}
		if config.Uploads.Dir != "/env/uploads" {
			t.Errorf("expected env uploads dir, got %s", config.Uploads.Dir)
		}
		if config.Server.Port != 9999 {
			t.Errorf("expected env port 9999, got %d", config.Server.Port)
		}
	})

	t.Run("ApplyEnv ignores bad port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Server.Port != 5000 {
			t.Errorf("expected default port preserved, got %d", config.Server.Port)
		}
	})
}
