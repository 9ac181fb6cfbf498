// config.go - polyvm.toml configuration and command line overrides

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

const (
	CONFIG_FILE         = "polyvm.toml"
	DEFAULT_SAMPLE_RATE = 44100
	MIN_SCALE           = 1
	MAX_SCALE           = 8
)

// Config is the complete runtime configuration.
type Config struct {
	Game    GameConfig      `toml:"game"`
	Display DisplaySettings `toml:"display"`
	Audio   AudioConfig     `toml:"audio"`
	Debug   DebugConfig     `toml:"debug"`

	// Path is the file the configuration was read from (set at load time).
	Path string `toml:"-"`
}

// GameConfig selects the data set and starting point.
type GameConfig struct {
	DataDir          string `toml:"data-dir"`
	StartPart        string `toml:"start-part"`
	BypassProtection bool   `toml:"bypass-protection"`
	FastMode         bool   `toml:"fast-mode"`
	Seed             int    `toml:"seed"`
	Strings          string `toml:"strings"`
}

// DisplaySettings configures the host window.
type DisplaySettings struct {
	Scale      int  `toml:"scale"`
	Fullscreen bool `toml:"fullscreen"`
	Headless   bool `toml:"headless"`
	FrameLimit int  `toml:"frame-limit"`
}

// AudioConfig configures sample playback.
type AudioConfig struct {
	Mute       bool `toml:"mute"`
	SampleRate int  `toml:"sample-rate"`
}

// DebugConfig holds diagnostic options.
type DebugConfig struct {
	Verbosity   int    `toml:"verbosity"`
	LogFile     string `toml:"log-file"`
	TraceRecord string `toml:"trace-record"`
	TraceVerify string `toml:"trace-verify"`
	LuaScript   string `toml:"lua-script"`
	Disasm      bool   `toml:"disasm"`
}

func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			DataDir:   ".",
			StartPart: "0x3E81",
		},
		Display: DisplaySettings{Scale: 3},
		Audio:   AudioConfig{SampleRate: DEFAULT_SAMPLE_RATE},
	}
}

// LoadConfig reads path over the defaults. An empty path tries
// polyvm.toml in the working directory and silently uses defaults when
// it does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = CONFIG_FILE
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	cfg.Path, err = filepath.Abs(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if !filepath.IsAbs(cfg.Game.DataDir) {
		cfg.Game.DataDir = filepath.Join(filepath.Dir(cfg.Path), cfg.Game.DataDir)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if _, err := c.StartPartID(); err != nil {
		return err
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample-rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Display.FrameLimit < 0 {
		return fmt.Errorf("display frame-limit must not be negative, got %d", c.Display.FrameLimit)
	}
	if c.Debug.TraceRecord != "" && c.Debug.TraceVerify != "" {
		return errors.New("trace-record and trace-verify are mutually exclusive")
	}
	if c.Game.Seed < 0 || c.Game.Seed > 0xFFFF {
		return fmt.Errorf("game seed out of range: %d", c.Game.Seed)
	}
	return nil
}

// StartPartID parses the start part as a part id (0x3E80..0x3E89) or a
// part index (0..9).
func (c *Config) StartPartID() (uint16, error) {
	v, err := strconv.ParseUint(c.Game.StartPart, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid start-part %q: %w", c.Game.StartPart, err)
	}
	id := uint16(v)
	if id <= GAME_PART_LAST-GAME_PART_FIRST {
		id += GAME_PART_FIRST
	}
	if id < GAME_PART_FIRST || id > GAME_PART_LAST {
		return 0, fmt.Errorf("start-part 0x%04X is not a game part", id)
	}
	return id, nil
}

// RegisterFlags binds command line overrides onto c.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Game.DataDir, "data", c.Game.DataDir, "Directory containing memlist.bin and bank files")
	fs.StringVar(&c.Game.StartPart, "part", c.Game.StartPart, "Starting part id (0x3E80-0x3E89) or index (0-9)")
	fs.BoolVar(&c.Game.BypassProtection, "bypass-protection", c.Game.BypassProtection, "Skip the code wheel check")
	fs.BoolVar(&c.Game.FastMode, "fast", c.Game.FastMode, "Disable frame pacing")
	fs.IntVar(&c.Game.Seed, "seed", c.Game.Seed, "Random seed (0 picks one)")
	fs.StringVar(&c.Game.Strings, "strings", c.Game.Strings, "TOML message table")
	fs.IntVar(&c.Display.Scale, "scale", c.Display.Scale, "Window scale factor")
	fs.BoolVar(&c.Display.Fullscreen, "fullscreen", c.Display.Fullscreen, "Start fullscreen")
	fs.BoolVar(&c.Display.Headless, "headless", c.Display.Headless, "Run without a window")
	fs.IntVar(&c.Display.FrameLimit, "frames", c.Display.FrameLimit, "Stop after this many frames (0 runs forever)")
	fs.BoolVar(&c.Audio.Mute, "mute", c.Audio.Mute, "Disable audio output")
	fs.IntVar(&c.Debug.Verbosity, "v", c.Debug.Verbosity, "Log verbosity (-2 errors, -1 warnings, 0 notices, 1 info, 2 debug)")
	fs.StringVar(&c.Debug.LogFile, "log", c.Debug.LogFile, "Write logs to this file")
	fs.StringVar(&c.Debug.TraceRecord, "trace-record", c.Debug.TraceRecord, "Record a frame trace to this file")
	fs.StringVar(&c.Debug.TraceVerify, "trace-verify", c.Debug.TraceVerify, "Verify execution against a frame trace")
	fs.StringVar(&c.Debug.LuaScript, "lua", c.Debug.LuaScript, "Lua script with frame hooks")
	fs.BoolVar(&c.Debug.Disasm, "disasm", c.Debug.Disasm, "Print the start part's bytecode and exit")
}

func clampScale(s int) int {
	return max(MIN_SCALE, min(s, MAX_SCALE))
}
