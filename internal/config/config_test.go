package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustLoad_Success(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := []byte("env: local\nhttp:\n  port: 12345\n  read_timeout: 2s\n  write_timeout: 4s\n  shutdown_timeout: 8s\npostgres:\n  host: localhost\n  port: 5432\n  user: u\n  password: p\n  dbname: db\n  sslmode: disable\n  max_conns: 5\n  min_conns: 1\n  connect_timeout: 5s\naccount:\n  min_password_len: 6\nmessage:\n  max_text_len: 255\n  fail_open_reads: true\n")
	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg := MustLoad()
	if cfg.HTTP.Port != 12345 || cfg.Account.MinPasswordLen != 6 || cfg.Postgres.MaxConns != 5 {
		t.Fatalf("config not parsed correctly: %+v", cfg)
	}
	if !cfg.Message.FailOpenReads || cfg.Message.MaxTextLen != 255 {
		t.Fatalf("message config not parsed correctly: %+v", cfg.Message)
	}
}

func TestMustLoad_PanicWhenPathEmpty(t *testing.T) {
	// Ensure no env variable set
	t.Setenv("CONFIG_PATH", "")
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic when CONFIG_PATH empty")
		}
	}()
	MustLoad()
}

func TestMustLoad_PanicWhenFileMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nonexistent.yaml"))
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic when config file missing")
		}
	}()
	MustLoad()
}
