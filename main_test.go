package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&flagLevel, "level", "", "")
	cmd.Flags().StringVar(&flagDBPath, "db", "", "")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "")
	addPlayFlags(cmd)
	return cmd
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stargrab.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	flagConfig = writeConfig(t, "level: meadow\nseed: 3\nlog_level: warn\n")
	t.Cleanup(func() { flagConfig = "" })

	cmd := newTestCommand()
	if err := cmd.ParseFlags([]string{"--level", "ledges", "--seed", "42", "--debug"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Level != "ledges" {
		t.Fatalf("expected level flag to win, got %q", cfg.Level)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Seed)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug from flag")
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected log level from file, got %q", cfg.LogLevel)
	}
	if cfg.Watch {
		t.Fatalf("watch should stay off")
	}
}

func TestLoadConfigKeepsFileWhenFlagsUnset(t *testing.T) {
	flagConfig = writeConfig(t, "level: ledges\nseed: 9\nwatch: true\n")
	t.Cleanup(func() { flagConfig = "" })

	cmd := newTestCommand()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Level != "ledges" || cfg.Seed != 9 || !cfg.Watch {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { flagConfig = "" })

	if _, err := loadConfig(newTestCommand()); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"warn", "warn"},
		{"", "info"},
		{"loud", "info"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			logger := newLogger(tc.in)
			if got := logger.GetLevel().String(); got != tc.want {
				t.Fatalf("newLogger(%q) level = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
