package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "CACHE_TTL", "USE_SUPABASE", "JWT_TTL", "CORS_ORIGINS", "SESSION_POLL_INTERVAL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected 30s cache TTL, got %s", cfg.CacheTTL)
	}
	if !cfg.UseSupabase {
		t.Error("expected USE_SUPABASE to default to true")
	}
	if cfg.JWTTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day token TTL, got %s", cfg.JWTTTL)
	}
	if cfg.SessionPollInterval != 1200*time.Millisecond {
		t.Errorf("expected 1.2s poll interval, got %s", cfg.SessionPollInterval)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("USE_SUPABASE", "false")
	t.Setenv("CORS_ORIGINS", "https://vanix.studio, ,https://admin.vanix.studio")
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.UseSupabase {
		t.Error("expected USE_SUPABASE=false to be honoured")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("expected invalid duration to fall back, got %s", cfg.HTTPTimeout)
	}
}

func TestSupabaseEnabled(t *testing.T) {
	cfg := &Config{UseSupabase: true}
	if cfg.SupabaseEnabled() {
		t.Error("expected Supabase disabled without URL")
	}
	cfg.SupabaseURL = "https://x.supabase.co"
	if !cfg.SupabaseEnabled() {
		t.Error("expected Supabase enabled")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nVANIX_A=one\nexport VANIX_B=\"two\"\nVANIX_C='three'\nbroken line\nVANIX_KEEP=file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VANIX_KEEP", "env")
	for _, k := range []string{"VANIX_A", "VANIX_B", "VANIX_C"} {
		k := k
		os.Unsetenv(k)
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"VANIX_A": "one", "VANIX_B": "two", "VANIX_C": "three", "VANIX_KEEP": "env"}
	for k, v := range want {
		if got := os.Getenv(k); got != v {
			t.Errorf("%s: expected %q, got %q", k, v, got)
		}
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
