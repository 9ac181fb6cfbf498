// platform.go - Host services used by the VM: time, display and input

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
	"sync"
	"time"
)

// PlayerInput is a snapshot of the controls for one frame.
type PlayerInput struct {
	Left, Right, Up, Down bool
	Button                bool
	LastChar              byte // Most recent typed character, 0 if none
	Quit                  bool
}

// InputSource produces player input snapshots.
type InputSource interface {
	PlayerInput() PlayerInput
}

// Platform is everything the VM needs from the host.
type Platform interface {
	Display
	Timestamp() uint64 // Milliseconds since start
	Sleep(ms uint64)
	PollInput() PlayerInput
}

// HostPlatform converts presented pages to RGBA and hands them to a
// DisplayOutput.
type HostPlatform struct {
	output DisplayOutput
	input  InputSource
	start  time.Time

	mu      sync.Mutex
	palette Palette
	frame   []byte
	last    Page
	shown   uint64
}

func NewHostPlatform(output DisplayOutput, input InputSource) *HostPlatform {
	return &HostPlatform{
		output:  output,
		input:   input,
		start:   time.Now(),
		palette: DefaultPalette(),
		frame:   make([]byte, SCREEN_WIDTH*SCREEN_HEIGHT*4),
	}
}

func (h *HostPlatform) Timestamp() uint64 {
	return uint64(time.Since(h.start).Milliseconds())
}

func (h *HostPlatform) Sleep(ms uint64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (h *HostPlatform) SetPalette(p *Palette) {
	h.mu.Lock()
	h.palette = *p
	h.mu.Unlock()
}

func (h *HostPlatform) Present(page *Page) {
	h.mu.Lock()
	h.last = *page
	h.shown++
	page.RGBA(&h.palette, h.frame)
	h.mu.Unlock()
	if h.output == nil {
		return
	}
	if err := h.output.UpdateFrame(h.frame); err != nil {
		platformLog.Warningf("frame update failed: %v", err)
	}
}

// PollInput reports quit once the output window has gone away.
func (h *HostPlatform) PollInput() PlayerInput {
	var in PlayerInput
	if h.input != nil {
		in = h.input.PlayerInput()
	}
	if h.output != nil {
		select {
		case <-h.output.Done():
			in.Quit = true
		default:
		}
	}
	return in
}

// Snapshot returns the last presented page and its palette.
func (h *HostPlatform) Snapshot() (Page, Palette) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.palette
}

func (h *HostPlatform) FramesShown() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shown
}
