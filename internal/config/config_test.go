package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %v, want :8080", cfg.ListenPort)
	}
	if cfg.RedisEnabled() {
		t.Error("RedisEnabled() = true, want false without BARBACK_REDIS_ADDR")
	}
	if cfg.CatalogFile != "data/default.csv" {
		t.Errorf("CatalogFile = %v, want data/default.csv", cfg.CatalogFile)
	}
	if cfg.RefreshConcurrency != 4 {
		t.Errorf("RefreshConcurrency = %v, want 4", cfg.RefreshConcurrency)
	}
	if cfg.CatalogRefreshInterval != 0 {
		t.Errorf("CatalogRefreshInterval = %v, want 0", cfg.CatalogRefreshInterval)
	}
	if cfg.AllowedCIDRS != nil {
		t.Errorf("AllowedCIDRS = %v, want nil", cfg.AllowedCIDRS)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BARBACK_LISTEN_PORT", ":9090")
	t.Setenv("BARBACK_REDIS_ADDR", "localhost:6379")
	t.Setenv("BARBACK_REDIS_PASSWORD", "secret")
	t.Setenv("BARBACK_REDIS_PASSWORD_REQUIRED", "true")
	t.Setenv("BARBACK_REMOTE_RPS", "2.5")
	t.Setenv("BARBACK_LETTER_TIMEOUT", "3s")
	t.Setenv("BARBACK_ALLOWED_CIDRS", `"10.0.0.0/8", 192.168.1.4`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenPort != ":9090" {
		t.Errorf("ListenPort = %v, want :9090", cfg.ListenPort)
	}
	if !cfg.RedisEnabled() {
		t.Error("RedisEnabled() = false, want true")
	}
	if cfg.RemoteRPS != 2.5 {
		t.Errorf("RemoteRPS = %v, want 2.5", cfg.RemoteRPS)
	}
	if cfg.LetterTimeout != 3*time.Second {
		t.Errorf("LetterTimeout = %v, want 3s", cfg.LetterTimeout)
	}
	if len(cfg.AllowedCIDRS) != 2 || cfg.AllowedCIDRS[0] != "10.0.0.0/8" {
		t.Errorf("AllowedCIDRS = %v, want [10.0.0.0/8 192.168.1.4]", cfg.AllowedCIDRS)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "redis password required but empty",
			env: map[string]string{
				"BARBACK_REDIS_ADDR":              "localhost:6379",
				"BARBACK_REDIS_PASSWORD_REQUIRED": "true",
			},
		},
		{
			name: "concurrency out of range",
			env:  map[string]string{"BARBACK_REFRESH_CONCURRENCY": "27"},
		},
		{
			name: "zero concurrency",
			env:  map[string]string{"BARBACK_REFRESH_CONCURRENCY": "0"},
		},
		{
			name: "negative remote rps",
			env:  map[string]string{"BARBACK_REMOTE_RPS": "-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() expected a validation error")
			}
		})
	}
}

func TestGetenvFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      float64
		expected float64
	}{
		{name: "valid float", value: "1.5", def: 5, expected: 1.5},
		{name: "invalid float uses default", value: "fast", def: 5, expected: 5},
		{name: "missing variable uses default", value: "", def: 7, expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FLOAT", tt.value)

			result := getenvFloat("TEST_FLOAT", tt.def)
			if result != tt.expected {
				t.Errorf("getenvFloat() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: 1 * time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)

			result := mustDuration("TEST_DURATION", tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)

			result := mustBool("TEST_BOOL", tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "bar.example.com", expected: []string{"bar.example.com"}},
		{name: "quoted and spaced", input: ` 'a.example.com' , "b.example.com",, `, expected: []string{"a.example.com", "b.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}
