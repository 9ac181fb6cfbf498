// terminal_input.go - Raw terminal byte stream decoded into player input

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

// Terminals report key presses but not releases, so a press holds its
// control for KEY_HOLD_TIME.
const (
	KEY_HOLD_TIME      = 150 * time.Millisecond
	MAX_TERMINAL_TYPED = 64
)

type termKey int

const (
	termLeft termKey = iota
	termRight
	termUp
	termDown
	termButton
	numTermKeys
)

const (
	escNone = iota
	escStart
	escBracket
)

// TerminalInput turns bytes read from a raw terminal into PlayerInput.
// Arrow keys steer, space or return fires, Ctrl+C quits and letters are
// queued for the password screen.
type TerminalInput struct {
	mu    sync.Mutex
	now   func() time.Time
	held  [numTermKeys]time.Time
	typed []byte
	quit  bool
	esc   int
}

func NewTerminalInput() *TerminalInput {
	return &TerminalInput{now: time.Now}
}

// Feed decodes one byte from the terminal.
func (t *TerminalInput) Feed(b byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.esc {
	case escStart:
		if b == '[' {
			t.esc = escBracket
			return
		}
		t.esc = escNone
	case escBracket:
		t.esc = escNone
		switch b {
		case 'A':
			t.press(termUp)
		case 'B':
			t.press(termDown)
		case 'C':
			t.press(termRight)
		case 'D':
			t.press(termLeft)
		}
		return
	}

	switch {
	case b == 0x1B:
		t.esc = escStart
	case b == 0x03:
		t.quit = true
	case b == ' ' || b == '\r' || b == '\n':
		t.press(termButton)
	case b == 0x7F || b == KEY_BACKSPACE:
		t.queue(KEY_BACKSPACE)
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		t.queue(b)
	}
}

func (t *TerminalInput) press(k termKey) {
	t.held[k] = t.now().Add(KEY_HOLD_TIME)
}

func (t *TerminalInput) queue(b byte) {
	if len(t.typed) < MAX_TERMINAL_TYPED {
		t.typed = append(t.typed, b)
	}
}

func (t *TerminalInput) PlayerInput() PlayerInput {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	down := func(k termKey) bool { return now.Before(t.held[k]) }
	in := PlayerInput{
		Left:   down(termLeft),
		Right:  down(termRight),
		Up:     down(termUp),
		Down:   down(termDown),
		Button: down(termButton),
		Quit:   t.quit,
	}
	if len(t.typed) > 0 {
		in.LastChar = t.typed[0]
		t.typed = t.typed[1:]
	}
	return in
}
