// engine.go - Wires resources, video, audio, VM and host backends together

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
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
)

// hostControls is implemented by outputs with hotkeys and a clipboard.
type hostControls interface {
	SetSnapshotFunc(fn func() (Page, Palette))
	SetHardResetHandler(fn func())
	SetFastModeHandler(fn func())
}

// Engine owns every subsystem of one running game.
type Engine struct {
	cfg       Config
	startPart uint16

	loader   *MemListLoader
	res      *ResourceMemory
	video    *VideoPages
	platform *HostPlatform
	output   DisplayOutput
	mixer    *SampleMixer
	audio    *OtoPlayer
	vm       *VirtualMachine

	hooks     *LuaHooks
	recorder  *TraceRecorder
	verifier  *TraceVerifier
	traceFile *os.File

	frames     atomic.Uint64
	restart    atomic.Bool
	fastToggle atomic.Bool

	hookMu  sync.Mutex
	hookErr error
}

// NewEngine builds an engine reading game data from cfg.Game.DataDir.
func NewEngine(cfg Config, output DisplayOutput, input InputSource) (*Engine, error) {
	return NewEngineFS(cfg, os.DirFS(cfg.Game.DataDir), output, input)
}

// NewEngineFS builds an engine reading game data from fsys.
func NewEngineFS(cfg Config, fsys fs.FS, output DisplayOutput, input InputSource) (*Engine, error) {
	start, err := cfg.StartPartID()
	if err != nil {
		return nil, err
	}
	loader, err := NewMemListLoader(fsys)
	if err != nil {
		return nil, err
	}
	strings, err := LoadMessageTable(cfg.Game.Strings)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		startPart: start,
		loader:    loader,
		res:       NewResourceMemory(loader),
		output:    output,
		mixer:     NewSampleMixer(cfg.Audio.SampleRate),
	}
	e.platform = NewHostPlatform(output, input)
	e.video = NewVideoPages(e.platform)
	e.video.SetPresentHook(e.onPresent)
	loader.SetBitmapSink(e.video.LoadPlanarBitmap)

	e.vm = NewVirtualMachine(e.res, e.video, e.platform, VMOptions{
		BypassProtection: cfg.Game.BypassProtection,
		FastMode:         cfg.Game.FastMode,
		Seed:             int16(cfg.Game.Seed),
	})
	e.vm.SetTextRenderer(NewTextRenderer(strings))
	e.vm.SetSoundDevice(e.mixer)

	if err := e.openDebugHooks(); err != nil {
		e.Close()
		return nil, err
	}
	e.installHostHandlers()
	return e, nil
}

func (e *Engine) openDebugHooks() error {
	d := e.cfg.Debug
	switch {
	case d.TraceRecord != "":
		f, err := os.Create(d.TraceRecord)
		if err != nil {
			return fmt.Errorf("cannot create trace: %w", err)
		}
		e.traceFile = f
		e.recorder = NewTraceRecorder(f)
	case d.TraceVerify != "":
		f, err := os.Open(d.TraceVerify)
		if err != nil {
			return fmt.Errorf("cannot open trace: %w", err)
		}
		e.traceFile = f
		e.verifier = NewTraceVerifier(f)
	}
	if d.LuaScript != "" {
		hooks, err := NewLuaHooks(d.LuaScript, e.vm)
		if err != nil {
			return err
		}
		e.hooks = hooks
	}
	return nil
}

func (e *Engine) installHostHandlers() {
	if sr, ok := e.output.(StatusReporter); ok {
		sr.SetStatusFunc(e.Status)
	}
	if h, ok := e.output.(hostControls); ok {
		h.SetSnapshotFunc(e.platform.Snapshot)
		h.SetHardResetHandler(e.RequestRestart)
		h.SetFastModeHandler(func() { e.fastToggle.Store(true) })
	}
}

// SetHooks replaces the Lua frame hooks.
func (e *Engine) SetHooks(h *LuaHooks) {
	if e.hooks != nil {
		e.hooks.Close()
	}
	e.hooks = h
}

func (e *Engine) VM() *VirtualMachine { return e.vm }
func (e *Engine) Video() *VideoPages { return e.video }
func (e *Engine) Resources() *ResourceMemory { return e.res }
func (e *Engine) Platform() *HostPlatform { return e.platform }
func (e *Engine) Frames() uint64 { return e.frames.Load() }
func (e *Engine) StartPart() uint16 { return e.startPart }
func (e *Engine) RequestRestart() { e.restart.Store(true) }
func (e *Engine) Verifier() *TraceVerifier { return e.verifier }
func (e *Engine) Recorder() *TraceRecorder { return e.recorder }
func (e *Engine) Mixer() *SampleMixer { return e.mixer }

// Status is the one line summary shown in the window status bar.
func (e *Engine) Status() string {
	active := 0
	for i := range NUM_THREADS {
		if e.vm.Thread(i).PC != INACTIVE_THREAD {
			active++
		}
	}
	mode := "paced"
	if e.vm.opts.FastMode {
		mode = "fast"
	}
	return fmt.Sprintf("part %04X  frame %d  threads %d  voices %d  %s",
		e.vm.CurrentPart(), e.frames.Load(), active, e.mixer.ActiveChannels(), mode)
}

func (e *Engine) onPresent(page *Page) {
	frame := e.frames.Add(1)
	var err error
	switch {
	case e.recorder != nil:
		err = e.recorder.Record(e.vm.CurrentPart(), e.vm.Variables(), page)
	case e.verifier != nil:
		err = e.verifier.Verify(e.vm.CurrentPart(), e.vm.Variables(), page)
	}
	if err == nil && e.hooks != nil {
		err = e.hooks.OnFrame(frame)
	}
	if err != nil {
		e.hookMu.Lock()
		if e.hookErr == nil {
			e.hookErr = err
		}
		e.hookMu.Unlock()
	}
}

func (e *Engine) takeHookErr() error {
	e.hookMu.Lock()
	defer e.hookMu.Unlock()
	err := e.hookErr
	e.hookErr = nil
	return err
}

// Boot resets the VM and video state and schedules the start part.
func (e *Engine) Boot() {
	e.mixer.StopAll()
	e.video.Reset()
	e.vm.Reset()
	e.vm.RequestPart(e.startPart)
}

// Start brings up the host output and audio.
func (e *Engine) Start() error {
	if err := e.output.SetDisplayConfig(DisplayConfig{
		Width:      SCREEN_WIDTH,
		Height:     SCREEN_HEIGHT,
		Scale:      clampScale(e.cfg.Display.Scale),
		Fullscreen: e.cfg.Display.Fullscreen,
		Title:      "PolyVM",
	}); err != nil {
		return err
	}
	if err := e.output.Start(); err != nil {
		return &VideoError{Operation: "start", Details: "display output", Err: err}
	}
	if e.cfg.Audio.Mute {
		return nil
	}
	player, err := NewOtoPlayer(e.cfg.Audio.SampleRate, e.mixer)
	if err != nil {
		audioLog.Warningf("audio unavailable, continuing muted: %v", err)
		return nil
	}
	player.Start()
	e.audio = player
	return nil
}

// Run boots the start part and steps frames until the context ends, the
// player quits, the frame limit is reached or a fault occurs.
func (e *Engine) Run(ctx context.Context) error {
	e.Boot()
	limit := uint64(e.cfg.Display.FrameLimit)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if e.restart.Swap(false) {
			vmLog.Notice("hard reset")
			e.Boot()
		}
		if e.fastToggle.Swap(false) {
			fast := !e.vm.opts.FastMode
			e.vm.SetFastMode(fast)
			vmLog.Noticef("fast mode %v", fast)
		}

		in, err := e.vm.Step()
		if err != nil {
			return err
		}
		if err := e.takeHookErr(); err != nil {
			return err
		}
		if in.Quit {
			return nil
		}
		if limit > 0 && e.frames.Load() >= limit {
			return nil
		}
	}
}

// Disassemble writes a listing of the start part's bytecode to w.
func (e *Engine) Disassemble(w io.Writer) error {
	if err := e.res.SetupPart(e.startPart); err != nil {
		return err
	}
	fmt.Fprintf(w, "; part 0x%04X bytecode, %d bytes\n", e.startPart, e.res.Bytecode().Size())
	return WriteDisassembly(w, e.res.Bytecode())
}

// Close releases every host resource. It is safe to call more than once.
func (e *Engine) Close() error {
	var errs []error
	if e.audio != nil {
		e.audio.Close()
		e.audio = nil
	}
	if e.hooks != nil {
		e.hooks.Close()
		e.hooks = nil
	}
	if e.recorder != nil {
		errs = append(errs, e.recorder.Flush())
		e.recorder = nil
	}
	if e.traceFile != nil {
		errs = append(errs, e.traceFile.Close())
		e.traceFile = nil
	}
	if e.output != nil {
		errs = append(errs, e.output.Close())
	}
	return errors.Join(errs...)
}
