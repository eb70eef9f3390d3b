package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	prev := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = prev })
}

func TestLoadConfigDefaults(t *testing.T) {
	withEnv(t, nil)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "band_manager.db" {
		t.Fatalf("path = %q", cfg.Database.Path)
	}
	if cfg.Undo.MaxDepth != 0 {
		t.Fatalf("max depth = %d", cfg.Undo.MaxDepth)
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
  allowed_origins: "http://a.test, http://b.test"
database:
  driver: sqlite
  path: /tmp/band.db
undo:
  max_depth: 5
seed:
  sample_data: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	withEnv(t, map[string]string{"SERVER_PORT": "7070", "UNDO_MAX_DEPTH": "3"})

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("port = %q, want env override", cfg.Server.Port)
	}
	if cfg.Undo.MaxDepth != 3 {
		t.Fatalf("max depth = %d, want 3", cfg.Undo.MaxDepth)
	}
	if !cfg.Seed.SampleData {
		t.Fatalf("sample data flag not loaded")
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "http://b.test" {
		t.Fatalf("origins = %v", origins)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"postgres", func(c *Config) { c.Database.Driver = "Postgres" }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }, true},
		{"bad lifetime", func(c *Config) { c.Database.ConnMaxLifetime = "soon" }, true},
		{"negative depth", func(c *Config) { c.Undo.MaxDepth = -1 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tc.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tc.wantErr {
				t.Fatalf("validateConfig err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestEnvRejectsBadValues(t *testing.T) {
	withEnv(t, map[string]string{"SEED_SAMPLE_DATA": "maybe"})
	cfg := &Config{}
	setDefaults(cfg)
	if err := loadFromEnv(cfg); err == nil {
		t.Fatalf("expected error for invalid boolean")
	}
}
