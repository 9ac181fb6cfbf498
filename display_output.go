// display_output.go - Host display backend interface

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
	"fmt"
	"sync"
	"sync/atomic"
)

// VideoError provides detailed error context for display operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error { return e.Err }

// DisplayConfig contains host window configuration
type DisplayConfig struct {
	Width      int
	Height     int
	Scale      int // Integer scaling factor for output
	Fullscreen bool
	Title      string
}

// DisplayOutput is implemented by every frame sink
type DisplayOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	UpdateFrame(buffer []byte) error // Takes 320x200 RGBA pixels

	GetFrameCount() uint64
	// Done is closed when the user closes the output
	Done() <-chan struct{}
}

// StatusReporter lets a backend show engine state in an overlay
type StatusReporter interface {
	SetStatusFunc(fn func() string)
}

// Predefined display backend types
const (
	DISPLAY_BACKEND_EBITEN = iota // Windowed Ebiten backend
	DISPLAY_BACKEND_HEADLESS
)

// NewDisplayOutput creates a display output for the requested backend
func NewDisplayOutput(backend int) (DisplayOutput, error) {
	switch backend {
	case DISPLAY_BACKEND_EBITEN:
		return newEbitenOutput()
	case DISPLAY_BACKEND_HEADLESS:
		return NewHeadlessOutput(), nil
	}
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}

func defaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Width:  SCREEN_WIDTH,
		Height: SCREEN_HEIGHT,
		Scale:  3,
		Title:  "PolyVM",
	}
}

// HeadlessOutput counts frames and keeps the most recent one
type HeadlessOutput struct {
	mu         sync.Mutex
	started    bool
	config     DisplayConfig
	frameCount atomic.Uint64
	last       []byte
	done       chan struct{}
	closeOnce  sync.Once
}

func NewHeadlessOutput() *HeadlessOutput {
	return &HeadlessOutput{config: defaultDisplayConfig(), done: make(chan struct{})}
}

func (h *HeadlessOutput) Start() error {
	h.mu.Lock()
	h.started = true
	h.mu.Unlock()
	return nil
}

func (h *HeadlessOutput) Stop() error {
	h.mu.Lock()
	h.started = false
	h.mu.Unlock()
	return nil
}

func (h *HeadlessOutput) Close() error {
	h.Stop()
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}

func (h *HeadlessOutput) IsStarted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}

func (h *HeadlessOutput) SetDisplayConfig(config DisplayConfig) error {
	h.mu.Lock()
	h.config = config
	h.mu.Unlock()
	return nil
}

func (h *HeadlessOutput) GetDisplayConfig() DisplayConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

func (h *HeadlessOutput) UpdateFrame(buffer []byte) error {
	h.mu.Lock()
	h.last = append(h.last[:0], buffer...)
	h.mu.Unlock()
	h.frameCount.Add(1)
	return nil
}

// LastFrame returns a copy of the most recent frame.
func (h *HeadlessOutput) LastFrame() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]byte(nil), h.last...)
}

func (h *HeadlessOutput) GetFrameCount() uint64 {
	return h.frameCount.Load()
}

func (h *HeadlessOutput) Done() <-chan struct{} {
	return h.done
}
