//go:build !headless

// video_backend_ebiten.go - Ebiten window, keyboard input and clipboard integration

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
	"bytes"
	"image/color"
	"image/png"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "display:ebiten")
}

const (
	MAX_TYPED_QUEUE   = 256
	MAX_PASTE_BYTES   = 64
	STATUS_BAR_HEIGHT = 30
)

var (
	statusBarBackground = color.RGBA{0, 0, 0, 180}
	statusBarText       = color.RGBA{0, 220, 90, 255}
	statusBarHelp       = color.RGBA{160, 160, 160, 255}
)

// EbitenOutput is the windowed backend. The engine goroutine writes frames
// and reads input; ebiten's game loop draws and polls the keyboard. Both
// sides meet in the fields guarded by mu.
type EbitenOutput struct {
	width, height int
	surface       *ebiten.Image
	face          text.Face
	ready         chan struct{}
	frames        atomic.Uint64
	running       atomic.Bool
	resetting     atomic.Bool

	mu         sync.RWMutex
	cfg        DisplayConfig
	frame      []byte
	done       chan struct{}
	held       PlayerInput
	typed      []byte
	statusBar  bool
	statusFunc func() string
	snapshot   func() (Page, Palette)
	onReset    func()
	onFastMode func()

	clipOnce sync.Once
	clipOK   bool
}

func newEbitenOutput() (DisplayOutput, error) {
	return NewEbitenOutput(), nil
}

func NewEbitenOutput() *EbitenOutput {
	cfg := defaultDisplayConfig()
	return &EbitenOutput{
		width:  cfg.Width,
		height: cfg.Height,
		face:   text.NewGoXFace(basicfont.Face7x13),
		ready:  make(chan struct{}, 1),
		cfg:    cfg,
		frame:  make([]byte, cfg.Width*cfg.Height*4),
		done:   make(chan struct{}),
	}
}

// Start opens the window and returns once the first frame has been drawn.
func (o *EbitenOutput) Start() error {
	if !o.running.CompareAndSwap(false, true) {
		return nil
	}
	o.mu.Lock()
	o.done = make(chan struct{})
	cfg := o.cfg
	o.mu.Unlock()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetFullscreen(cfg.Fullscreen)

	go o.runGame()
	<-o.ready
	return nil
}

func (o *EbitenOutput) runGame() {
	err := ebiten.RunGame(o)
	o.running.Store(false)
	if err != nil {
		platformLog.Errorf("window: %v", err)
	}
	o.mu.RLock()
	done := o.done
	o.mu.RUnlock()
	select {
	case <-done:
	default:
		close(done)
	}
}

func (o *EbitenOutput) Stop() error {
	o.running.Store(false)
	return nil
}

func (o *EbitenOutput) Close() error { return o.Stop() }

func (o *EbitenOutput) IsStarted() bool { return o.running.Load() }

func (o *EbitenOutput) Done() <-chan struct{} {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.done
}

func (o *EbitenOutput) UpdateFrame(rgba []byte) error {
	o.mu.Lock()
	copy(o.frame, rgba)
	o.mu.Unlock()
	return nil
}

func (o *EbitenOutput) GetFrameCount() uint64 { return o.frames.Load() }

// SetDisplayConfig applies scale and fullscreen. The logical size stays
// at the page resolution.
func (o *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	o.mu.Lock()
	o.cfg.Scale = clampScale(config.Scale)
	o.cfg.Fullscreen = config.Fullscreen
	if config.Title != "" {
		o.cfg.Title = config.Title
	}
	cfg := o.cfg
	o.mu.Unlock()

	if o.running.Load() {
		o.applyWindowMode(cfg)
	}
	return nil
}

func (o *EbitenOutput) GetDisplayConfig() DisplayConfig {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cfg
}

func (o *EbitenOutput) applyWindowMode(cfg DisplayConfig) {
	ebiten.SetFullscreen(cfg.Fullscreen)
	if !cfg.Fullscreen {
		ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	}
}

func (o *EbitenOutput) SetStatusFunc(fn func() string) {
	o.mu.Lock()
	o.statusFunc = fn
	o.mu.Unlock()
}

// SetSnapshotFunc supplies the page copied to the clipboard on Ctrl+Shift+C.
func (o *EbitenOutput) SetSnapshotFunc(fn func() (Page, Palette)) {
	o.mu.Lock()
	o.snapshot = fn
	o.mu.Unlock()
}

func (o *EbitenOutput) SetHardResetHandler(fn func()) {
	o.mu.Lock()
	o.onReset = fn
	o.mu.Unlock()
}

func (o *EbitenOutput) SetFastModeHandler(fn func()) {
	o.mu.Lock()
	o.onFastMode = fn
	o.mu.Unlock()
}

// PlayerInput returns the held controls and at most one queued character.
func (o *EbitenOutput) PlayerInput() PlayerInput {
	o.mu.Lock()
	defer o.mu.Unlock()
	in := o.held
	if len(o.typed) > 0 {
		in.LastChar = o.typed[0]
		o.typed = o.typed[1:]
	}
	return in
}

// Update runs on the ebiten goroutine once per tick.
func (o *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() || !o.running.Load() {
		return ebiten.Termination
	}
	hotkeys := [...]struct {
		key    ebiten.Key
		action func()
	}{
		{ebiten.KeyF9, o.toggleFastMode},
		{ebiten.KeyF10, o.hardReset},
		{ebiten.KeyF11, o.toggleFullscreen},
		{ebiten.KeyF12, o.toggleStatusBar},
	}
	for _, hk := range hotkeys {
		if inpututil.IsKeyJustPressed(hk.key) {
			hk.action()
		}
	}
	o.pollKeyboard()
	return nil
}

func (o *EbitenOutput) toggleFastMode() {
	o.mu.RLock()
	fn := o.onFastMode
	o.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// hardReset runs the handler off the game loop; a second F10 while one is
// in flight is ignored.
func (o *EbitenOutput) hardReset() {
	o.mu.RLock()
	fn := o.onReset
	o.mu.RUnlock()
	if fn == nil || !o.resetting.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer o.resetting.Store(false)
		fn()
	}()
}

func (o *EbitenOutput) toggleFullscreen() {
	o.mu.Lock()
	o.cfg.Fullscreen = !o.cfg.Fullscreen
	cfg := o.cfg
	o.mu.Unlock()
	o.applyWindowMode(cfg)
}

func (o *EbitenOutput) toggleStatusBar() {
	o.mu.Lock()
	o.statusBar = !o.statusBar
	o.mu.Unlock()
}

func keyDown(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (o *EbitenOutput) pollKeyboard() {
	ctrl := keyDown(ebiten.KeyControlLeft, ebiten.KeyControlRight)
	shift := keyDown(ebiten.KeyShiftLeft, ebiten.KeyShiftRight)
	if ctrl && shift {
		if inpututil.IsKeyJustPressed(ebiten.KeyV) {
			o.pasteAccessCode()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			o.copyScreenshot()
		}
	}

	in := PlayerInput{
		Left:   keyDown(ebiten.KeyArrowLeft),
		Right:  keyDown(ebiten.KeyArrowRight),
		Up:     keyDown(ebiten.KeyArrowUp),
		Down:   keyDown(ebiten.KeyArrowDown),
		Button: keyDown(ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyNumpadEnter),
		Quit:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	var typed []byte
	if !ctrl {
		typed = appendLetters(typed, ebiten.AppendInputChars(nil), MAX_TYPED_QUEUE)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		typed = append(typed, KEY_BACKSPACE)
	}

	o.mu.Lock()
	in.Quit = in.Quit || o.held.Quit
	o.held = in
	o.enqueue(typed)
	o.mu.Unlock()
}

// enqueue appends to the character queue; callers hold mu.
func (o *EbitenOutput) enqueue(b []byte) {
	room := MAX_TYPED_QUEUE - len(o.typed)
	o.typed = append(o.typed, b[:min(len(b), room)]...)
}

// appendLetters keeps the characters the password screen understands.
func appendLetters(dst []byte, runes []rune, limit int) []byte {
	for _, r := range runes {
		if len(dst) >= limit {
			break
		}
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			dst = append(dst, byte(r))
		}
	}
	return dst
}

func (o *EbitenOutput) clipboardReady() bool {
	o.clipOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			platformLog.Warningf("clipboard unavailable: %v", err)
			return
		}
		o.clipOK = true
	})
	return o.clipOK
}

// pasteAccessCode types clipboard text into the character queue.
func (o *EbitenOutput) pasteAccessCode() {
	if !o.clipboardReady() {
		return
	}
	typed := appendLetters(nil, []rune(string(clipboard.Read(clipboard.FmtText))), MAX_PASTE_BYTES)
	o.mu.Lock()
	o.enqueue(typed)
	o.mu.Unlock()
}

// copyScreenshot puts the displayed page on the clipboard as a PNG.
func (o *EbitenOutput) copyScreenshot() {
	o.mu.RLock()
	snap := o.snapshot
	o.mu.RUnlock()
	if snap == nil || !o.clipboardReady() {
		return
	}
	page, pal := snap()
	var buf bytes.Buffer
	if err := png.Encode(&buf, page.Image(&pal)); err != nil {
		platformLog.Warningf("screenshot encode failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	platformLog.Info("screenshot copied to clipboard")
}

func (o *EbitenOutput) Draw(screen *ebiten.Image) {
	if o.surface == nil {
		o.surface = ebiten.NewImage(o.width, o.height)
	}
	o.mu.RLock()
	o.surface.WritePixels(o.frame)
	var status func() string
	if o.statusBar {
		status = o.statusFunc
	}
	o.mu.RUnlock()

	screen.DrawImage(o.surface, nil)
	if status != nil {
		o.drawStatusBar(screen, status())
	}

	o.frames.Add(1)
	select {
	case o.ready <- struct{}{}:
	default:
	}
}

func (o *EbitenOutput) Layout(_, _ int) (int, int) {
	return o.width, o.height
}

func (o *EbitenOutput) drawStatusBar(screen *ebiten.Image, status string) {
	top := o.height - STATUS_BAR_HEIGHT
	vector.DrawFilledRect(screen, 0, float32(top), float32(o.width), STATUS_BAR_HEIGHT, statusBarBackground, false)
	o.drawLine(screen, status, top+2, statusBarText)
	o.drawLine(screen, "F9 Fast  F10 Restart  F11 Full  F12 Bar", top+16, statusBarHelp)
}

func (o *EbitenOutput) drawLine(screen *ebiten.Image, s string, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(4, float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, o.face, op)
}
