package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.BaseDir != "arquivos" {
		t.Errorf("BaseDir = %q, want arquivos", cfg.Storage.BaseDir)
	}
	if cfg.Telegram.RunMode != "longpoll" {
		t.Errorf("RunMode = %q, want longpoll", cfg.Telegram.RunMode)
	}
	if cfg.Database.Enabled() {
		t.Error("database should be disabled with an empty section")
	}
	if cfg.CoreConfig() == nil {
		t.Fatal("CoreConfig returned nil")
	}
}

func TestLoadExplicitSections(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
storage:
  base_dir: /data/arquivos
  tmp_dir: /data/tmp
database:
  host: localhost
  port: "5432"
  name: bot
  user: bot
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.BaseDir != "/data/arquivos" {
		t.Errorf("BaseDir = %q", cfg.Storage.BaseDir)
	}
	if cfg.Storage.TmpDir != "/data/tmp" {
		t.Errorf("TmpDir = %q", cfg.Storage.TmpDir)
	}
	if !cfg.Database.Enabled() {
		t.Error("database should be enabled with host and name set")
	}
}

func TestLoadRejectsMissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	path := writeConfig(t, `
storage:
  base_dir: arquivos
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing telegram token")
	}
}
