package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Stats         struct {
		Predicate string  `mapstructure:"predicate"`
		Scale     float64 `mapstructure:"scale"`
	} `mapstructure:"stats"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
		}
	})

	t.Run("debug raises log level", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
		}
	})

	t.Run("explicit level wins over debug", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.Logging.Level = "warn"
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "warn" {
			t.Errorf("expected logging level 'warn', got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		c := ServiceConfig{Name: "svc", Environment: env}
		c.Logging.ApplyDefaults()
		return c
	}
	badLogging := valid("production")
	badLogging.Logging.Level = "loud"

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("development"), false, ""},
		{"valid staging", valid("staging"), false, ""},
		{"valid production", valid("production"), false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", valid("invalid"), true, "config.environment must be one of"},
		{"invalid logging", badLogging, true, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: fnstat
environment: staging
logging:
  level: warn
stats:
  predicate: even
  scale: 2.5
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	if err := LoadConfig("fnstat", &cfg, WithConfigFile(configPath), WithEnvPrefix("FNKIT_TEST_NONE")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "fnstat" {
		t.Errorf("expected name 'fnstat', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected logging level 'warn', got %q", cfg.Logging.Level)
	}
	if cfg.Stats.Predicate != "even" || cfg.Stats.Scale != 2.5 {
		t.Errorf("unexpected stats section %+v", cfg.Stats)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("stats:\n  predicate: even\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FNKITTEST_STATS_PREDICATE", "odd")
	t.Setenv("FNKITTEST_STATS_SCALE", "3")

	var cfg testConfig
	if err := LoadConfig("fnstat", &cfg, WithConfigFile(configPath), WithEnvPrefix("fnkittest")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Stats.Predicate != "odd" {
		t.Errorf("expected env to override predicate, got %q", cfg.Stats.Predicate)
	}
	if cfg.Stats.Scale != 3 {
		t.Errorf("expected scale 3 from env, got %v", cfg.Stats.Scale)
	}
}

func TestLoadConfigOverridesWin(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("stats:\n  predicate: even\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FNKITOVR_STATS_PREDICATE", "odd")

	var cfg testConfig
	err := LoadConfig("fnstat", &cfg,
		WithConfigFile(configPath),
		WithEnvPrefix("fnkitovr"),
		WithOverrides(map[string]any{"stats.predicate": "all"}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Stats.Predicate != "all" {
		t.Errorf("expected override to win, got %q", cfg.Stats.Predicate)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("fnstat", &cfg,
		WithFileSystem(&mockFS{}),
		WithEnvPrefix("FNKIT_TEST_NONE"),
		WithDefaults(map[string]any{"name": "fnstat", "stats.scale": 1.0}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "fnstat" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.Stats.Scale != 1.0 {
		t.Errorf("expected default scale 1, got %v", cfg.Stats.Scale)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("FNKITENV_NAME=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("FNKITENV_NAME") })

	var cfg testConfig
	if err := LoadConfig("fnstat", &cfg, WithEnvFile(envPath), WithEnvPrefix("FNKITENV")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "from-dotenv" {
		t.Errorf("expected name from .env, got %q", cfg.Name)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var cfg testConfig
	if err := LoadConfig("fnstat", &cfg, WithConfigFile(configPath)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/fnstat/config.yml": true,
		"./config.yml":            true,
		"./.env.fnstat":           true,
		"./.env":                  true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("fnstat", LoaderConfig{})
	if files.ConfigFile != "./cmd/fnstat/config.yml" {
		t.Errorf("expected config file at ./cmd/fnstat/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env.fnstat" {
		t.Errorf("expected service env file to win, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("fnstat", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("expected explicit paths kept, got %+v", files)
	}
}

func TestResolverNothingFound(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("fnstat", LoaderConfig{})
	if files.ConfigFile != "" || files.EnvFile != "" {
		t.Errorf("expected no files, got %+v", files)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("fnstat")(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if lc.EnvPrefix != "FNSTAT" {
		t.Errorf("expected upper-cased prefix, got %q", lc.EnvPrefix)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("TELEMETRY_SAMPLE_RATE")
	for _, want := range []string{"telemetry_sample_rate", "telemetry.sample.rate", "telemetry.sample_rate", "telemetry_sample.rate"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if single := generateEnvKeyVariants("NAME"); !slices.Equal(single, []string{"name"}) {
		t.Errorf("expected [name], got %v", single)
	}
}

func TestRemoveDuplicates(t *testing.T) {
	got := removeDuplicates([]string{"a", "b", "a", "c", "b"})
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("got %v", got)
	}
}
