//go:build windows

// terminal_host_windows.go - Raw console reader feeding TerminalInput

package main

import (
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// TERMINAL_POLL_MS bounds how long Stop waits for the reader to notice.
const TERMINAL_POLL_MS = 50

// TerminalHost puts the console into raw mode and forwards every byte to
// a TerminalInput. Console reads cannot be polled, so Stop abandons a
// read that is still blocked.
type TerminalHost struct {
	input *TerminalInput
	fd    int
	saved *term.State

	quit     chan struct{}
	finished chan struct{}
	once     sync.Once
}

func NewTerminalHost(input *TerminalInput) *TerminalHost {
	return &TerminalHost{
		input:    input,
		fd:       int(os.Stdin.Fd()),
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (h *TerminalHost) Start() error {
	saved, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.finished)
		return err
	}
	h.saved = saved
	go h.readLoop()
	return nil
}

func (h *TerminalHost) readLoop() {
	defer close(h.finished)
	buf := make([]byte, 32)
	for {
		n, err := os.Stdin.Read(buf)
		select {
		case <-h.quit:
			return
		default:
		}
		for _, b := range buf[:n] {
			h.input.Feed(b)
		}
		if err != nil {
			return
		}
	}
}

func (h *TerminalHost) Stop() {
	h.once.Do(func() { close(h.quit) })
	select {
	case <-h.finished:
	case <-time.After(TERMINAL_POLL_MS * time.Millisecond):
	}
	if h.saved != nil {
		if err := term.Restore(h.fd, h.saved); err != nil {
			platformLog.Warningf("terminal restore: %v", err)
		}
		h.saved = nil
	}
}
