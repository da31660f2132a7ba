package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// ErrMissingLLMConfig is the startup-fatal condition: summarization and
// classification cannot run without an endpoint and key.
var ErrMissingLLMConfig = errors.New("missing LLM configuration")

// LLMConfig points at an OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// CloudflareConfig enables the browser-rendering fetch strategy used for
// pages that plain readers cannot load.
type CloudflareConfig struct {
	AccountID string `yaml:"account_id"`
	APIToken  string `yaml:"api_token"`
}

type Config struct {
	InputFile   string            `yaml:"input_file"`   // tracked bookmarks file
	ArchiveFile string            `yaml:"archive_file"` // categorized archive
	RepoPath    string            `yaml:"repo_path"`
	LLM         LLMConfig         `yaml:"llm"`
	Cloudflare  *CloudflareConfig `yaml:"cloudflare,omitempty"`
}

const defaultModel = "deepseek-ai/DeepSeek-R1-0528-Qwen3-8B"

// CloudflareEnabled reports whether both Cloudflare credentials are set.
func (c *Config) CloudflareEnabled() bool {
	return c.Cloudflare != nil && c.Cloudflare.AccountID != "" && c.Cloudflare.APIToken != ""
}

// ArchivePath resolves the archive file relative to the repository.
func (c *Config) ArchivePath() string {
	if filepath.IsAbs(c.ArchiveFile) {
		return c.ArchiveFile
	}
	return filepath.Join(c.RepoPath, c.ArchiveFile)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "bookmark", "config.yaml")
}

func LedgerPath() string {
	return filepath.Join(xdg.CacheHome, "bookmark", "bookmark.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file (written on first run from embedded
// defaults), then applies environment overrides. Validation of the
// required LLM settings is left to Validate so read-only commands can
// run without credentials.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Non-fatal: keep embedded defaults, try to seed the file.
		writeDefaults(path)
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(cfg)

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LLM_API_URL"); v != "" {
		cfg.LLM.APIURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL_NAME"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("GIT_REPO_PATH"); v != "" {
		cfg.RepoPath = v
	}

	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	apiToken := os.Getenv("CLOUDFLARE_API_TOKEN")
	if accountID != "" || apiToken != "" {
		if cfg.Cloudflare == nil {
			cfg.Cloudflare = &CloudflareConfig{}
		}
		if accountID != "" {
			cfg.Cloudflare.AccountID = accountID
		}
		if apiToken != "" {
			cfg.Cloudflare.APIToken = apiToken
		}
	}
}

// Validate checks the settings required to process links.
func (c *Config) Validate() error {
	if c.LLM.APIURL == "" {
		return fmt.Errorf("%w: set llm.api_url or LLM_API_URL", ErrMissingLLMConfig)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: set llm.api_key or OPENAI_API_KEY", ErrMissingLLMConfig)
	}
	if c.InputFile == "" {
		return fmt.Errorf("input_file is required")
	}
	if c.ArchiveFile == "" {
		return fmt.Errorf("archive_file is required")
	}
	return nil
}
