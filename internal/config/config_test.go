package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_API_URL", "OPENAI_API_KEY", "LLM_MODEL_NAME",
		"GIT_REPO_PATH", "CLOUDFLARE_ACCOUNT_ID", "CLOUDFLARE_API_TOKEN",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.InputFile != "README.md" {
		t.Errorf("input_file = %q", cfg.InputFile)
	}
	if cfg.ArchiveFile != "category.md" {
		t.Errorf("archive_file = %q", cfg.ArchiveFile)
	}
	if cfg.RepoPath != "." {
		t.Errorf("repo_path = %q", cfg.RepoPath)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Model == "" {
		t.Error("expected default model")
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_URL", "https://llm.example/v1/chat/completions")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL_NAME", "test-model")
	t.Setenv("GIT_REPO_PATH", "/tmp/repo")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acct")
	t.Setenv("CLOUDFLARE_API_TOKEN", "tok")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIURL != "https://llm.example/v1/chat/completions" {
		t.Errorf("api_url = %q", cfg.LLM.APIURL)
	}
	if cfg.LLM.APIKey != "sk-test" || cfg.LLM.Model != "test-model" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.RepoPath != "/tmp/repo" {
		t.Errorf("repo_path = %q", cfg.RepoPath)
	}
	if !cfg.CloudflareEnabled() {
		t.Error("expected cloudflare enabled from env")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("input_file: links.md\narchive_file: archive.md\nrepo_path: /srv/repo\nllm:\n  api_url: https://x/v1\n  api_key: k\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InputFile != "links.md" || cfg.ArchiveFile != "archive.md" {
		t.Errorf("files = %q, %q", cfg.InputFile, cfg.ArchiveFile)
	}
	if got := cfg.ArchivePath(); got != filepath.Join("/srv/repo", "archive.md") {
		t.Errorf("ArchivePath = %q", got)
	}
	// Model falls back to the default when the file omits it.
	if cfg.LLM.Model == "" {
		t.Error("expected default model fallback")
	}
}

func TestValidateMissingLLM(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingLLMConfig) {
		t.Errorf("expected ErrMissingLLMConfig, got %v", err)
	}

	cfg.LLM.APIURL = "https://x"
	if err := cfg.Validate(); !errors.Is(err, ErrMissingLLMConfig) {
		t.Errorf("expected ErrMissingLLMConfig for missing key, got %v", err)
	}

	cfg.LLM.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validate error: %v", err)
	}
}

func TestCloudflareDisabledByDefault(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CloudflareEnabled() {
		t.Error("cloudflare should be disabled without credentials")
	}
}
