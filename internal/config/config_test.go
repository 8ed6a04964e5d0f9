package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/waddle/internal/game"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "waddle.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Rules(); got != game.DefaultRules() {
		t.Errorf("Rules() = %+v, want defaults", got)
	}
	if cfg.Leaderboard.Top != 5 || cfg.Leaderboard.Cap != 100 {
		t.Errorf("leaderboard = %+v", cfg.Leaderboard)
	}
	if cfg.Mirror.URL != "" {
		t.Errorf("mirror should be disabled by default, got %q", cfg.Mirror.URL)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeFile(t, `
game:
  lives: 5
  auto_advance: 1s
  gate: correct
mirror:
  url: http://yaml.example/api/sessions
server:
  port: 9000
`)
	t.Setenv("WADDLE_MIRROR_URL", "http://env.example/api/sessions")
	t.Setenv("WADDLE_SERVER_PORT", "9100")
	t.Setenv("WADDLE_MIRROR_TIMEOUT", "750ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Game.Lives != 5 {
		t.Errorf("Lives = %d, want 5", cfg.Game.Lives)
	}
	if cfg.Game.AutoAdvance != time.Second {
		t.Errorf("AutoAdvance = %v, want 1s", cfg.Game.AutoAdvance)
	}
	if cfg.Game.CorrectPoints != 10 {
		t.Errorf("CorrectPoints = %d, want default 10", cfg.Game.CorrectPoints)
	}
	if cfg.Rules().Gate != game.GateCorrect {
		t.Errorf("Gate = %q, want correct", cfg.Rules().Gate)
	}
	if cfg.Mirror.URL != "http://env.example/api/sessions" {
		t.Errorf("Mirror.URL = %q, env should win", cfg.Mirror.URL)
	}
	if cfg.Mirror.Timeout != 750*time.Millisecond {
		t.Errorf("Mirror.Timeout = %v", cfg.Mirror.Timeout)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Port = %d, want 9100", cfg.Server.Port)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{"zero lives", "game:\n  lives: 0\n", nil},
		{"hinted above correct", "game:\n  hinted_points: 20\n", nil},
		{"unknown gate", "", map[string]string{"WADDLE_GATE": "strict"}},
		{"bad port", "server:\n  port: 70000\n", nil},
		{"bad log level", "log:\n  level: chatty\n", nil},
		{"bad yaml", "game: [", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeFile(t, tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestSlogLevel(t *testing.T) {
	for _, in := range []string{"debug", "INFO", "warn", "error"} {
		if _, err := (LogConfig{Level: in}).SlogLevel(); err != nil {
			t.Errorf("SlogLevel(%q): %v", in, err)
		}
	}
}
