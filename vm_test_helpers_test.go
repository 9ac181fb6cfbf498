package main

import (
	"testing"
)

// fakeLoader serves segments and entries from memory.
type fakeLoader struct {
	parts       map[uint16]SegmentMap
	entries     map[uint16][]byte
	loaded      []uint16
	setups      []uint16
	invalidated int
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		parts:   make(map[uint16]SegmentMap),
		entries: make(map[uint16][]byte),
	}
}

func (f *fakeLoader) SetupPart(part uint16) (SegmentMap, error) {
	segs, ok := f.parts[part]
	if !ok {
		return SegmentMap{}, &ResourceError{Op: "setup part", ID: part, Err: ErrUnknownPart}
	}
	f.setups = append(f.setups, part)
	return segs, nil
}

func (f *fakeLoader) LoadEntry(id uint16) error {
	f.loaded = append(f.loaded, id)
	return nil
}

func (f *fakeLoader) Invalidate() { f.invalidated++ }

func (f *fakeLoader) Entry(id uint16) ([]byte, bool) {
	b, ok := f.entries[id]
	return b, ok
}

// fakePlatform is a deterministic clock, display and input source.
type fakePlatform struct {
	now      uint64
	slept    []uint64
	presents []Page
	palettes []Palette
	input    PlayerInput
}

func (p *fakePlatform) Timestamp() uint64 { return p.now }

func (p *fakePlatform) Sleep(ms uint64) {
	p.slept = append(p.slept, ms)
	p.now += ms
}

func (p *fakePlatform) SetPalette(pal *Palette) { p.palettes = append(p.palettes, *pal) }
func (p *fakePlatform) Present(page *Page) { p.presents = append(p.presents, *page) }
func (p *fakePlatform) PollInput() PlayerInput { return p.input }

// fakeSound records channel operations.
type fakeSound struct {
	played  []playedSound
	stopped []uint8
	stopAll int
}

type playedSound struct {
	channel uint8
	sample  SoundSample
	freq    uint16
	volume  uint8
}

func (s *fakeSound) PlayChannel(ch uint8, sample SoundSample, freq uint16, vol uint8) {
	s.played = append(s.played, playedSound{ch, sample, freq, vol})
}
func (s *fakeSound) StopChannel(ch uint8) { s.stopped = append(s.stopped, ch) }
func (s *fakeSound) StopAll() { s.stopAll++ }

// testRect is a 10x10 polygon with colour 5: bbw, bbh, four clockwise
// points starting top right.
var testRect = []byte{0xC5, 10, 10, 4, 10, 0, 10, 10, 0, 10, 0, 0}

type testVM struct {
	vm       *VirtualMachine
	loader   *fakeLoader
	platform *fakePlatform
	video    *VideoPages
	sound    *fakeSound
}

// newTestVM maps code as the bytecode of the intro part and enters it.
func newTestVM(t *testing.T, code []byte) *testVM {
	t.Helper()
	palettes := make([]byte, MAX_PALETTES*PALETTE_SIZE)
	for i := 0; i < PALETTE_COLORS; i++ {
		palettes[PALETTE_SIZE+i*2] = 0x0F
		palettes[PALETTE_SIZE+i*2+1] = 0x00
	}
	loader := newFakeLoader()
	loader.parts[GAME_PART_INTRO] = SegmentMap{
		Palettes:  NewSegment("palette", palettes),
		Bytecode:  NewSegment("bytecode", code),
		Cinematic: NewSegment("cinematic", testRect),
		Secondary: NewSegment("secondary", []byte{0xC7, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0}),
	}
	loader.parts[GAME_PART_WATER] = SegmentMap{
		Palettes:  NewSegment("palette", palettes),
		Bytecode:  NewSegment("bytecode", []byte{OP_PAUSE_THREAD}),
		Cinematic: NewSegment("cinematic", testRect),
	}
	platform := &fakePlatform{}
	video := NewVideoPages(platform)
	vm := NewVirtualMachine(NewResourceMemory(loader), video, platform, VMOptions{Seed: 0x1234, FastMode: true})
	sound := &fakeSound{}
	vm.SetSoundDevice(sound)
	if err := vm.InitForPart(GAME_PART_INTRO); err != nil {
		t.Fatalf("InitForPart: %v", err)
	}
	return &testVM{vm: vm, loader: loader, platform: platform, video: video, sound: sound}
}

// frame applies staged requests and runs one round of thread slices.
func (tv *testVM) frame(t *testing.T) {
	t.Helper()
	if err := tv.vm.ApplyPendingRequests(); err != nil {
		t.Fatalf("ApplyPendingRequests: %v", err)
	}
	if err := tv.vm.RunFrame(); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
}

func asm(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func movConst(v uint8, val uint16) []byte { return []byte{OP_MOV_CONST, v, byte(val >> 8), byte(val)} }
func jmp(target uint16) []byte { return []byte{OP_JMP, byte(target >> 8), byte(target)} }

var pause = []byte{OP_PAUSE_THREAD}
