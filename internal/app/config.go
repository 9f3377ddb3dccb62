package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/dricdias/telegram-bot/core/config"
	"github.com/dricdias/telegram-bot/core/database"
)

// StorageConfig locates the category tree and the upload staging area.
type StorageConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"STORAGE_BASE_DIR"`
	TmpDir  string `yaml:"tmp_dir" envconfig:"STORAGE_TMP_DIR"`
}

// Config is the full application configuration: the reusable core
// sections plus the bot's own storage and optional database sections.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Storage  StorageConfig   `yaml:"storage"`
	Database database.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core sections to the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads the YAML config, applies environment overrides and
// normalizes defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Storage.BaseDir) == "" {
		cfg.Storage.BaseDir = "arquivos"
	}
	return &cfg, nil
}
