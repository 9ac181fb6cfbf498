package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "polyvm.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
[game]
data-dir = "data"
start-part = "0x3E83"
seed = 77

[display]
scale = 2
headless = true

[audio]
mute = true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(filepath.Dir(path), "data"); cfg.Game.DataDir != want {
		t.Fatalf("expected data dir %s, got %s", want, cfg.Game.DataDir)
	}
	if cfg.Game.Seed != 77 || cfg.Display.Scale != 2 || !cfg.Display.Headless || !cfg.Audio.Mute {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Audio.SampleRate != DEFAULT_SAMPLE_RATE {
		t.Fatalf("expected default sample rate kept, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Path != path {
		t.Fatalf("expected path %s, got %s", path, cfg.Path)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing explicit file")
	}
	if _, err := LoadConfig(writeConfig(t, "[game\n")); err == nil {
		t.Fatal("expected parse error")
	}
	_, err := LoadConfig(writeConfig(t, "[audio]\nsample-rate = 0\n"))
	if err == nil || !strings.Contains(err.Error(), "sample-rate") {
		t.Fatalf("expected sample-rate validation error, got %v", err)
	}
}

func TestLoadConfig_DefaultMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Game.StartPart != "0x3E81" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestConfig_StartPartID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"0x3E81", GAME_PART_INTRO, false},
		{"0x3e89", GAME_PART_LAST, false},
		{"2", GAME_PART_WATER, false},
		{"0", GAME_PART_PROTECTION, false},
		{"10", 0, true},
		{"0x3E8A", 0, true},
		{"intro", 0, true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Game.StartPart = tt.in
		got, err := cfg.StartPartID()
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got 0x%04X", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("%q: expected 0x%04X, got 0x%04X (%v)", tt.in, tt.want, got, err)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"frame limit", func(c *Config) { c.Display.FrameLimit = -1 }},
		{"both traces", func(c *Config) { c.Debug.TraceRecord, c.Debug.TraceVerify = "a", "b" }},
		{"seed", func(c *Config) { c.Game.Seed = 0x10000 }},
		{"part", func(c *Config) { c.Game.StartPart = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestParseCommandLine_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "[game]\nstart-part = \"3\"\nfast-mode = true\n[display]\nscale = 2\n")
	cfg, cl, err := parseCommandLine([]string{"-config", path, "-part", "5", "-scale", "20"})
	if err != nil {
		t.Fatal(err)
	}
	if cl.configPath != path {
		t.Fatalf("expected config path %s, got %s", path, cl.configPath)
	}
	if cfg.Game.StartPart != "5" || !cfg.Game.FastMode {
		t.Fatalf("expected flag part with file fast mode, got %+v", cfg.Game)
	}
	if cfg.Display.Scale != MAX_SCALE {
		t.Fatalf("expected scale clamped to %d, got %d", MAX_SCALE, cfg.Display.Scale)
	}
	if cfg.Path != path {
		t.Fatalf("expected path kept, got %q", cfg.Path)
	}
}

func TestParseCommandLine_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, _, err := parseCommandLine([]string{"-nope"}); err == nil {
		t.Fatal("expected unknown flag error")
	}
	if _, _, err := parseCommandLine([]string{"-part", "0x1234"}); err == nil {
		t.Fatal("expected invalid part error")
	}
	_, cl, err := parseCommandLine([]string{"-version"})
	if err != nil || !cl.showVersion {
		t.Fatalf("expected version request, got %v %v", cl.showVersion, err)
	}
}

func TestClampScale(t *testing.T) {
	for in, want := range map[int]int{-3: MIN_SCALE, 0: MIN_SCALE, 3: 3, 8: 8, 99: MAX_SCALE} {
		if got := clampScale(in); got != want {
			t.Fatalf("clampScale(%d): expected %d, got %d", in, want, got)
		}
	}
}
