// main.go - Main entry point for PolyVM

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
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tliron/kutil/util"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147mPolyVM\033[0m \033[38;2;255;140;147mpolygon cinematic engine\033[0m")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

// commandLine holds the options that are not part of Config.
type commandLine struct {
	configPath  string
	showVersion bool
}

func newFlagSet(cfg *Config, cl *commandLine) *flag.FlagSet {
	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&cl.configPath, "config", cl.configPath, "Configuration file (default polyvm.toml if present)")
	flagSet.BoolVar(&cl.showVersion, "version", false, "Print version and compiled features")
	cfg.RegisterFlags(flagSet)
	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./polyvm [-config polyvm.toml] [-data dir] [-part 0x3E81] [options]")
		flagSet.PrintDefaults()
	}
	return flagSet
}

// parseCommandLine loads the configuration file named by -config and
// applies the remaining flags over it.
func parseCommandLine(args []string) (Config, commandLine, error) {
	var cl commandLine
	probe := DefaultConfig()
	flagSet := newFlagSet(&probe, &cl)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			flagSet.Usage()
		}
		return probe, cl, err
	}
	if cl.showVersion {
		return probe, cl, nil
	}

	cfg, err := LoadConfig(cl.configPath)
	if err != nil {
		return cfg, cl, err
	}
	path := cfg.Path
	if err := newFlagSet(&cfg, &cl).Parse(args); err != nil {
		return cfg, cl, err
	}
	cfg.Path = path
	cfg.Display.Scale = clampScale(cfg.Display.Scale)
	return cfg, cl, cfg.Validate()
}

func main() {
	cfg, cl, err := parseCommandLine(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cl.showVersion {
		writeVersion(os.Stdout)
		os.Exit(0)
	}
	util.Exit(run(cfg))
}

func run(cfg Config) int {
	configureLogging(cfg.Debug.Verbosity, cfg.Debug.LogFile)

	if cfg.Debug.Disasm {
		engine, err := NewEngine(cfg, nil, nil)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		defer engine.Close()
		if err := engine.Disassemble(os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		return 0
	}

	boilerPlate()

	backend := DISPLAY_BACKEND_EBITEN
	if cfg.Display.Headless {
		backend = DISPLAY_BACKEND_HEADLESS
	}
	output, err := NewDisplayOutput(backend)
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		return 1
	}

	var input InputSource
	if src, ok := output.(InputSource); ok {
		input = src
	} else if StdinIsTerminal() {
		keys := NewTerminalInput()
		host := NewTerminalHost(keys)
		if err := host.Start(); err != nil {
			platformLog.Warningf("terminal input unavailable: %v", err)
		} else {
			defer host.Stop()
		}
		input = keys
	}

	engine, err := NewEngine(cfg, output, input)
	if err != nil {
		fmt.Printf("Failed to load game data: %v\n", err)
		return 1
	}
	defer engine.Close()

	if err := engine.Start(); err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Run(ctx); err != nil {
		var mismatch *TraceMismatch
		if errors.As(err, &mismatch) {
			fmt.Printf("Trace diverged: %v\n", err)
			return 2
		}
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	if v := engine.Verifier(); v != nil {
		fmt.Printf("Trace verified: %d frames\n", v.Frames())
	}
	if r := engine.Recorder(); r != nil {
		fmt.Printf("Trace recorded: %d frames\n", r.Frames())
	}
	return 0
}
