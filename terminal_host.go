//go:build !windows

// terminal_host.go - Raw stdin reader feeding TerminalInput

package main

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TERMINAL_POLL_MS bounds how long Stop waits for the reader to notice.
const TERMINAL_POLL_MS = 50

// TerminalHost puts stdin into raw mode and forwards every byte to a
// TerminalInput. It is only created for interactive headless runs.
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
		fd:       unix.Stdin,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// StdinIsTerminal reports whether stdin can be put into raw mode.
func StdinIsTerminal() bool {
	return term.IsTerminal(unix.Stdin)
}

// Start switches the terminal to raw mode and starts the reader. On
// failure input stays idle and the terminal is left untouched.
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

// readLoop polls stdin so it can observe quit without a blocking read.
func (h *TerminalHost) readLoop() {
	defer close(h.finished)
	fds := []unix.PollFd{{Fd: int32(h.fd), Events: unix.POLLIN}}
	buf := make([]byte, 32)
	for {
		select {
		case <-h.quit:
			return
		default:
		}
		n, err := unix.Poll(fds, TERMINAL_POLL_MS)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			platformLog.Warningf("terminal poll: %v", err)
			return
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		got, err := unix.Read(h.fd, buf)
		if err != nil || got == 0 {
			return
		}
		for _, b := range buf[:got] {
			h.input.Feed(b)
		}
	}
}

// Stop ends the reader and restores the saved terminal mode.
func (h *TerminalHost) Stop() {
	h.once.Do(func() { close(h.quit) })
	<-h.finished
	if h.saved != nil {
		if err := term.Restore(h.fd, h.saved); err != nil {
			platformLog.Warningf("terminal restore: %v", err)
		}
		h.saved = nil
	}
}
