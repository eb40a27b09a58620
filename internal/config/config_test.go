package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  port: 3306
  user: portfolio
  password: hunter2
  name: reports
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.RequestTimeout() != 180*time.Second {
		t.Fatalf("budget = %v", cfg.RequestTimeout())
	}
	if cfg.Database.Driver != "mysql" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Providers.DeepSeek.BaseURL != "https://api.deepseek.com" {
		t.Fatalf("deepseek base url = %q", cfg.Providers.DeepSeek.BaseURL)
	}
	if cfg.Providers.Gemini.Model == "" || cfg.Providers.OpenAI.Model == "" {
		t.Fatal("provider model defaults missing")
	}
}

func TestMySQLDSN(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  port: 3306
  user: portfolio
  password: hunter2
  name: reports
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := "portfolio:hunter2@tcp(db.internal:3306)/reports?parseTime=true&charset=utf8mb4&loc=UTC"
	if got := cfg.MySQLDSN(); got != want {
		t.Fatalf("dsn = %q", got)
	}
}

func TestPostgresDSN(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: portfolio
  password: hunter2
  name: reports
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := "host=db.internal port=5432 user=portfolio password=hunter2 dbname=reports sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("dsn = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file should fail")
	}
}
