package config

import (
	"reflect"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		set      bool
		def      string
		expected string
	}{
		{
			name:     "variable set",
			key:      "TEST_GETENV_SET",
			value:    "custom",
			set:      true,
			def:      "fallback",
			expected: "custom",
		},
		{
			name:     "variable not set",
			key:      "TEST_GETENV_MISSING",
			def:      "fallback",
			expected: "fallback",
		},
		{
			name:     "empty value falls back",
			key:      "TEST_GETENV_EMPTY",
			value:    "",
			set:      true,
			def:      "fallback",
			expected: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(tt.key, tt.value)
			}
			result := getenv(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("getenv() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		set      bool
		def      int
		expected int
	}{
		{
			name:     "valid integer",
			key:      "TEST_INT_VALID",
			value:    "42",
			set:      true,
			def:      7,
			expected: 42,
		},
		{
			name:     "invalid integer falls back",
			key:      "TEST_INT_INVALID",
			value:    "not_a_number",
			set:      true,
			def:      7,
			expected: 7,
		},
		{
			name:     "missing variable",
			key:      "TEST_INT_MISSING",
			def:      7,
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(tt.key, tt.value)
			}
			result := getenvInt(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		set      bool
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL_TRUE",
			value:    "true",
			set:      true,
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "0",
			set:      true,
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value falls back",
			key:      "TEST_BOOL_INVALID",
			value:    "maybe",
			set:      true,
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable",
			key:      "TEST_BOOL_MISSING",
			def:      true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(tt.key, tt.value)
			}
			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		set      bool
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION_VALID",
			value:    "250ms",
			set:      true,
			def:      time.Second,
			expected: 250 * time.Millisecond,
		},
		{
			name:     "invalid duration falls back",
			key:      "TEST_DURATION_INVALID",
			value:    "soon",
			set:      true,
			def:      time.Second,
			expected: time.Second,
		},
		{
			name:     "missing variable",
			key:      "TEST_DURATION_MISSING",
			def:      time.Second,
			expected: time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(tt.key, tt.value)
			}
			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
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
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single origin",
			input:    "https://example.com",
			expected: []string{"https://example.com"},
		},
		{
			name:     "multiple with spaces",
			input:    "https://a.com, https://b.com ,https://c.com",
			expected: []string{"https://a.com", "https://b.com", "https://c.com"},
		},
		{
			name:     "quoted entries",
			input:    `"https://a.com",'https://b.com'`,
			expected: []string{"https://a.com", "https://b.com"},
		},
		{
			name:     "blank entries dropped",
			input:    "https://a.com,, ,https://b.com",
			expected: []string{"https://a.com", "https://b.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8787" {
		t.Errorf("ListenPort = %v, want :8787", cfg.ListenPort)
	}
	if cfg.SyncQuotaBytes != 102400 {
		t.Errorf("SyncQuotaBytes = %v, want 102400", cfg.SyncQuotaBytes)
	}
	if cfg.DebounceInterval != time.Second {
		t.Errorf("DebounceInterval = %v, want 1s", cfg.DebounceInterval)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %v, want empty (remote sync disabled)", cfg.RedisAddr)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should never be empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STASH_LISTEN_PORT", ":9999")
	t.Setenv("STASH_SYNC_QUOTA_BYTES", "204800")
	t.Setenv("STASH_DEBOUNCE_INTERVAL", "3s")
	t.Setenv("STASH_ALLOWED_ORIGINS", "chrome-extension://abc, https://stash.local")
	t.Setenv("STASH_REDIS_ADDR", "localhost:6379")

	cfg := Load()

	if cfg.ListenPort != ":9999" {
		t.Errorf("ListenPort = %v, want :9999", cfg.ListenPort)
	}
	if cfg.SyncQuotaBytes != 204800 {
		t.Errorf("SyncQuotaBytes = %v, want 204800", cfg.SyncQuotaBytes)
	}
	if cfg.DebounceInterval != 3*time.Second {
		t.Errorf("DebounceInterval = %v, want 3s", cfg.DebounceInterval)
	}
	want := []string{"chrome-extension://abc", "https://stash.local"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %v, want localhost:6379", cfg.RedisAddr)
	}
}

func TestLoadPasswordRequired(t *testing.T) {
	t.Setenv("STASH_REDIS_ADDR", "localhost:6379")
	t.Setenv("STASH_REDIS_PASSWORD_REQUIRED", "true")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic when a required Redis password is missing")
		}
	}()
	Load()
}
