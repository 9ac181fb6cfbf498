package main

import (
	"math"
	"testing"
)

func soundResource(length, loop uint16, data ...byte) []byte {
	res := []byte{byte(length >> 8), byte(length), byte(loop >> 8), byte(loop), 0, 0, 0, 0}
	return append(res, data...)
}

func TestParseSoundSample(t *testing.T) {
	s, err := ParseSoundSample(soundResource(1, 1, 0x10, 0xF0, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Data) != 4 || s.Data[1] != -16 {
		t.Fatalf("expected 4 signed samples, got %v", s.Data)
	}
	if s.LoopPos != 2 || s.LoopLen != 2 {
		t.Fatalf("expected loop at 2 for 2, got %d/%d", s.LoopPos, s.LoopLen)
	}
}

func TestParseSoundSample_Errors(t *testing.T) {
	if _, err := ParseSoundSample([]byte{0, 1}); err == nil {
		t.Fatal("expected error for missing header")
	}
	if _, err := ParseSoundSample(soundResource(4, 0, 1, 2)); err == nil {
		t.Fatal("expected error for truncated data")
	}
}

func TestSampleMixer_OneShot(t *testing.T) {
	m := NewSampleMixer(1000)
	// 1000 Hz at a 1000 Hz output rate steps one sample per frame.
	m.PlayChannel(0, SoundSample{Data: []int8{64, -64}}, 1000, MAX_SOUND_VOLUME)
	out := make([]float32, 4)
	m.Mix(out)
	want := []float32{64.0 / 512, -64.0 / 512, 0, 0}
	for i := range want {
		if math.Abs(float64(out[i]-want[i])) > 1e-6 {
			t.Fatalf("sample %d: expected %f, got %f", i, want[i], out[i])
		}
	}
	if m.ActiveChannels() != 0 {
		t.Fatal("expected channel to finish")
	}
}

func TestSampleMixer_Loop(t *testing.T) {
	m := NewSampleMixer(1000)
	m.PlayChannel(1, SoundSample{Data: []int8{10, 20, 30}, LoopPos: 1, LoopLen: 2}, 1000, MAX_SOUND_VOLUME)
	out := make([]float32, 7)
	m.Mix(out)
	want := []int8{10, 20, 30, 20, 30, 20, 30}
	for i, w := range want {
		if got := out[i] * 512; math.Abs(float64(got)-float64(w)) > 1e-3 {
			t.Fatalf("sample %d: expected %d, got %f", i, w, got)
		}
	}
	if m.ActiveChannels() != 1 {
		t.Fatal("expected looping channel to stay active")
	}
}

func TestSampleMixer_VolumeAndStop(t *testing.T) {
	m := NewSampleMixer(1000)
	m.PlayChannel(2, SoundSample{Data: []int8{126, 126, 126}}, 1000, 0xFF)
	out := make([]float32, 1)
	m.Mix(out)
	if math.Abs(float64(out[0])-126.0/512) > 1e-6 {
		t.Fatalf("expected volume clamped to maximum, got %f", out[0])
	}
	m.StopChannel(2)
	if m.ActiveChannels() != 0 {
		t.Fatal("expected channel stopped")
	}

	m.PlayChannel(0, SoundSample{Data: []int8{1}}, 1000, 1)
	m.PlayChannel(5, SoundSample{Data: []int8{1}}, 1000, 1)
	if m.ActiveChannels() != 2 {
		t.Fatalf("expected channel 5 to map onto channel 1, got %d active", m.ActiveChannels())
	}
	m.StopAll()
	if m.ActiveChannels() != 0 {
		t.Fatal("expected all channels stopped")
	}
}
