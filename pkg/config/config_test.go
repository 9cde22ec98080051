package config

import "testing"

func TestSetTargetWordSizes(t *testing.T) {
	tests := []struct {
		qbeTarget string
		wordSize  int
		wordType  string
		stackAlig int
	}{
		{"amd64_sysv", 8, "l", 16},
		{"amd64_apple", 8, "l", 16},
		{"arm64", 8, "l", 16},
		{"arm64_apple", 8, "l", 16},
		{"rv64", 8, "l", 16},
		{"arm", 4, "w", 8},
		{"rv32", 4, "w", 8},
	}

	for _, tt := range tests {
		cfg := NewConfig()
		cfg.SetTarget("linux", "amd64", tt.qbeTarget)
		if cfg.WordSize != tt.wordSize || cfg.WordType != tt.wordType || cfg.StackAlignment != tt.stackAlig {
			t.Errorf("%s: got %d/%s/%d, want %d/%s/%d", tt.qbeTarget,
				cfg.WordSize, cfg.WordType, cfg.StackAlignment,
				tt.wordSize, tt.wordType, tt.stackAlig)
		}
	}
}

func TestSetTargetHostDefault(t *testing.T) {
	cfg := NewConfig()
	cfg.SetTarget("linux", "amd64", "")
	if cfg.QbeTarget != "amd64_sysv" {
		t.Errorf("default target = %q, want amd64_sysv", cfg.QbeTarget)
	}

	cfg = NewConfig()
	cfg.SetTarget("darwin", "arm64", "")
	if cfg.QbeTarget != "arm64_apple" {
		t.Errorf("default target = %q, want arm64_apple", cfg.QbeTarget)
	}
}

func TestUnderscorePrefix(t *testing.T) {
	cfg := NewConfig()
	cfg.SetTarget("darwin", "arm64", "")
	if !cfg.UnderscorePrefix() {
		t.Error("darwin targets should prefix global symbols")
	}

	cfg = NewConfig()
	cfg.SetTarget("linux", "amd64", "")
	if cfg.UnderscorePrefix() {
		t.Error("linux targets should not prefix global symbols")
	}
}

func TestWarningDefaults(t *testing.T) {
	cfg := NewConfig()
	if !cfg.IsWarningEnabled(WarnUnreachableCode) {
		t.Error("unreachable-code should default to enabled")
	}
	if cfg.IsWarningEnabled(WarnExtra) {
		t.Error("extra should default to disabled")
	}
}

func TestApplyFlag(t *testing.T) {
	cfg := NewConfig()

	if err := cfg.ApplyFlag("no-unreachable-code"); err != nil {
		t.Fatalf("ApplyFlag returned error: %v", err)
	}
	if cfg.IsWarningEnabled(WarnUnreachableCode) {
		t.Error("no-unreachable-code did not disable the warning")
	}

	if err := cfg.ApplyFlag("all"); err != nil {
		t.Fatalf("ApplyFlag returned error: %v", err)
	}
	for i := Warning(0); i < WarnCount; i++ {
		if !cfg.IsWarningEnabled(i) {
			t.Errorf("all did not enable warning %d", i)
		}
	}

	if err := cfg.ApplyFlag("no-all"); err != nil {
		t.Fatalf("ApplyFlag returned error: %v", err)
	}
	for i := Warning(0); i < WarnCount; i++ {
		if cfg.IsWarningEnabled(i) {
			t.Errorf("no-all did not disable warning %d", i)
		}
	}

	if err := cfg.ApplyFlag("does-not-exist"); err == nil {
		t.Error("expected an error for an unknown warning name")
	}
}
