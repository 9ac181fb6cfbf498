package main

import (
	"testing"
	"time"
)

func newClockedInput() (*TerminalInput, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ti := NewTerminalInput()
	ti.now = func() time.Time { return now }
	return ti, &now
}

func feed(ti *TerminalInput, s string) {
	for i := 0; i < len(s); i++ {
		ti.Feed(s[i])
	}
}

func TestTerminalInput_Arrows(t *testing.T) {
	tests := []struct {
		seq  string
		want PlayerInput
	}{
		{"\x1b[A", PlayerInput{Up: true}},
		{"\x1b[B", PlayerInput{Down: true}},
		{"\x1b[C", PlayerInput{Right: true}},
		{"\x1b[D", PlayerInput{Left: true}},
		{" ", PlayerInput{Button: true}},
		{"\r", PlayerInput{Button: true}},
		{"\x1b[Z", PlayerInput{}},
	}
	for _, tt := range tests {
		ti, _ := newClockedInput()
		feed(ti, tt.seq)
		if got := ti.PlayerInput(); got != tt.want {
			t.Fatalf("%q: expected %+v, got %+v", tt.seq, tt.want, got)
		}
	}
}

func TestTerminalInput_HoldExpires(t *testing.T) {
	ti, now := newClockedInput()
	feed(ti, "\x1b[D")

	*now = now.Add(KEY_HOLD_TIME - time.Millisecond)
	if !ti.PlayerInput().Left {
		t.Fatal("expected left still held")
	}
	*now = now.Add(time.Millisecond)
	if ti.PlayerInput().Left {
		t.Fatal("expected left released after hold time")
	}
}

func TestTerminalInput_TypedQueue(t *testing.T) {
	ti, _ := newClockedInput()
	feed(ti, "ab1\x7f")

	want := []byte{'a', 'b', KEY_BACKSPACE, 0}
	for i, w := range want {
		if got := ti.PlayerInput().LastChar; got != w {
			t.Fatalf("read %d: expected 0x%02X, got 0x%02X", i, w, got)
		}
	}
}

func TestTerminalInput_QueueLimit(t *testing.T) {
	ti, _ := newClockedInput()
	for i := 0; i < MAX_TERMINAL_TYPED+10; i++ {
		ti.Feed('x')
	}
	if len(ti.typed) != MAX_TERMINAL_TYPED {
		t.Fatalf("expected %d queued, got %d", MAX_TERMINAL_TYPED, len(ti.typed))
	}
}

func TestTerminalInput_CtrlC(t *testing.T) {
	ti, _ := newClockedInput()
	ti.Feed(0x03)
	if !ti.PlayerInput().Quit {
		t.Fatal("expected quit")
	}
	// A lone escape followed by a letter still queues the letter.
	feed(ti, "\x1bq")
	if got := ti.PlayerInput().LastChar; got != 'q' {
		t.Fatalf("expected q, got 0x%02X", got)
	}
}
