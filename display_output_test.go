package main

import (
	"errors"
	"testing"
)

func TestNewDisplayOutput_Unknown(t *testing.T) {
	_, err := NewDisplayOutput(99)
	var verr *VideoError
	if !errors.As(err, &verr) {
		t.Fatalf("expected VideoError, got %v", err)
	}
	if verr.Operation != "backend creation" {
		t.Fatalf("expected backend creation, got %q", verr.Operation)
	}
}

func TestHeadlessOutput_Lifecycle(t *testing.T) {
	out, err := NewDisplayOutput(DISPLAY_BACKEND_HEADLESS)
	if err != nil {
		t.Fatal(err)
	}
	h := out.(*HeadlessOutput)
	if h.IsStarted() {
		t.Fatal("expected not started")
	}
	if err := h.Start(); err != nil || !h.IsStarted() {
		t.Fatalf("expected started, got %v", err)
	}

	cfg := h.GetDisplayConfig()
	if cfg.Width != SCREEN_WIDTH || cfg.Height != SCREEN_HEIGHT {
		t.Fatalf("expected %dx%d, got %dx%d", SCREEN_WIDTH, SCREEN_HEIGHT, cfg.Width, cfg.Height)
	}
	cfg.Scale = 5
	h.SetDisplayConfig(cfg)
	if h.GetDisplayConfig().Scale != 5 {
		t.Fatal("expected scale updated")
	}

	frame := []byte{1, 2, 3, 4}
	h.UpdateFrame(frame)
	frame[0] = 9
	if got := h.LastFrame(); got[0] != 1 || h.GetFrameCount() != 1 {
		t.Fatalf("expected copied frame and count 1, got %v %d", got, h.GetFrameCount())
	}

	h.Close()
	h.Close()
	select {
	case <-h.Done():
	default:
		t.Fatal("expected done closed")
	}
	if h.IsStarted() {
		t.Fatal("expected stopped after close")
	}
}
