package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8080},
		Typesense: TypesenseConfig{URL: "http://localhost:8108", APIKey: "xyz"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_MissingTypesense(t *testing.T) {
	cfg := validConfig()
	cfg.Typesense.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing typesense url")
	}

	cfg = validConfig()
	cfg.Typesense.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing typesense api key")
	}
}

func TestValidate_DefaultPerPageAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultPerPage = 60
	cfg.Search.MaxPerPage = 51

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default_per_page > max_per_page")
	}

	expected := "search.default_per_page must be between 1 and search.max_per_page (51), got 60"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisOptional(t *testing.T) {
	cfg := validConfig()
	if cfg.Redis.Enabled() {
		t.Error("redis must be disabled without addrs")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config without redis must be valid: %v", err)
	}

	cfg.Redis.Addrs = []string{"localhost:6379"}
	if !cfg.Redis.Enabled() {
		t.Error("redis must be enabled with addrs")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Typesense.TimeoutSec != 5 {
		t.Errorf("expected Typesense.TimeoutSec=5, got %d", cfg.Typesense.TimeoutSec)
	}
	if cfg.Typesense.ReadinessTimeout != 10 {
		t.Errorf("expected Typesense.ReadinessTimeout=10, got %d", cfg.Typesense.ReadinessTimeout)
	}
	if cfg.Search.DefaultPerPage != 12 {
		t.Errorf("expected DefaultPerPage=12, got %d", cfg.Search.DefaultPerPage)
	}
	if cfg.Search.MaxPerPage != 51 {
		t.Errorf("expected MaxPerPage=51, got %d", cfg.Search.MaxPerPage)
	}
	if cfg.Search.BrowsePerPage != 6 {
		t.Errorf("expected BrowsePerPage=6, got %d", cfg.Search.BrowsePerPage)
	}
	if cfg.Search.MaxFacetValues != 999 {
		t.Errorf("expected MaxFacetValues=999, got %d", cfg.Search.MaxFacetValues)
	}
	if cfg.Stats.KeyPrefix != "minbar:" {
		t.Errorf("expected KeyPrefix='minbar:', got %q", cfg.Stats.KeyPrefix)
	}
	if cfg.Stats.TTL() != 30*24*time.Hour {
		t.Errorf("expected 30 day TTL, got %s", cfg.Stats.TTL())
	}
	if cfg.Stats.TopLimit != 10 {
		t.Errorf("expected TopLimit=10, got %d", cfg.Stats.TopLimit)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Search: SearchConfig{DefaultPerPage: 20, MaxPerPage: 100, BrowsePerPage: 4, MaxFacetValues: 50},
		Stats:  StatsConfig{KeyPrefix: "custom:", TTLHours: 48},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Search.DefaultPerPage != 20 || cfg.Search.MaxPerPage != 100 {
		t.Errorf("expected paging 20/100, got %d/%d", cfg.Search.DefaultPerPage, cfg.Search.MaxPerPage)
	}
	if cfg.Search.BrowsePerPage != 4 {
		t.Errorf("expected BrowsePerPage=4, got %d", cfg.Search.BrowsePerPage)
	}
	if cfg.Stats.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Stats.KeyPrefix)
	}
	if cfg.Stats.TTL() != 48*time.Hour {
		t.Errorf("expected 48h TTL, got %s", cfg.Stats.TTL())
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MINBAR_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("a: ${MINBAR_TEST_KEY}\nb: ${MINBAR_TEST_UNSET:-fallback}\nc: ${MINBAR_TEST_UNSET}")))
	want := "a: secret\nb: fallback\nc: "
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: 9090
typesense:
  url: ${MINBAR_TEST_TS_URL:-http://typesense:8108}
  api_key: ${MINBAR_TEST_TS_KEY}
redis:
  addrs: ["localhost:6379"]
search:
  default_per_page: 24
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MINBAR_TEST_TS_KEY", "from-env")
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Typesense.URL != "http://typesense:8108" || cfg.Typesense.APIKey != "from-env" {
		t.Errorf("unexpected typesense config: %+v", cfg.Typesense)
	}
	if !cfg.Redis.Enabled() {
		t.Error("expected redis enabled")
	}
	if cfg.Search.DefaultPerPage != 24 || cfg.Search.MaxPerPage != 51 {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
