package main

import (
	"errors"
	"testing"
)

func TestSegment_Reads(t *testing.T) {
	s := NewSegment("test", []byte{0x12, 0x34, 0x56})
	if b, err := s.Byte(2); err != nil || b != 0x56 {
		t.Fatalf("expected 0x56, got 0x%02X (%v)", b, err)
	}
	if w, err := s.Word(0); err != nil || w != 0x1234 {
		t.Fatalf("expected big-endian 0x1234, got 0x%04X (%v)", w, err)
	}
	if _, err := s.Word(2); !errors.Is(err, ErrSegmentBounds) {
		t.Fatalf("expected ErrSegmentBounds, got %v", err)
	}
	if _, err := s.Byte(-1); !errors.Is(err, ErrSegmentBounds) {
		t.Fatalf("expected ErrSegmentBounds for negative offset, got %v", err)
	}
	if _, err := s.Slice(1, 3); !errors.Is(err, ErrSegmentBounds) {
		t.Fatalf("expected ErrSegmentBounds for long slice, got %v", err)
	}
}

func TestSegment_Unmapped(t *testing.T) {
	var s Segment
	if s.Mapped() {
		t.Fatal("expected zero segment to be unmapped")
	}
	if _, err := s.Byte(0); !errors.Is(err, ErrSegmentUnmapped) {
		t.Fatalf("expected ErrSegmentUnmapped, got %v", err)
	}
}

func TestCursor_LatchesFirstError(t *testing.T) {
	c := NewSegment("test", []byte{0xAB, 0xCD, 0xEF}).Cursor(0)
	if w := c.FetchWord(); w != 0xABCD {
		t.Fatalf("expected 0xABCD, got 0x%04X", w)
	}
	if w := c.FetchWord(); w != 0 || c.Err() == nil {
		t.Fatalf("expected zero and an error past the end, got 0x%04X %v", w, c.Err())
	}
	pos := c.Pos()
	c.Seek(0)
	if b := c.FetchByte(); b != 0 {
		t.Fatalf("expected latched cursor to return zero, got 0x%02X", b)
	}
	if pos != 2 {
		t.Fatalf("expected failed read not to advance, pos=%d", pos)
	}
	c.ClearErr()
	if b := c.FetchByte(); b != 0xAB {
		t.Fatalf("expected 0xAB after ClearErr, got 0x%02X", b)
	}
}

func TestResourceMemory_KeepsSecondaryAcrossParts(t *testing.T) {
	loader := newFakeLoader()
	secondary := NewSegment("secondary", []byte{1, 2, 3})
	loader.parts[GAME_PART_WATER] = SegmentMap{
		Bytecode:  NewSegment("bytecode", []byte{OP_PAUSE_THREAD}),
		Secondary: secondary,
	}
	loader.parts[GAME_PART_ARENE] = SegmentMap{
		Bytecode: NewSegment("bytecode", []byte{OP_PAUSE_THREAD, OP_PAUSE_THREAD}),
	}
	rm := NewResourceMemory(loader)
	if err := rm.SetupPart(GAME_PART_WATER); err != nil {
		t.Fatal(err)
	}
	if err := rm.SetupPart(GAME_PART_ARENE); err != nil {
		t.Fatal(err)
	}
	if rm.CurrentPart() != GAME_PART_ARENE {
		t.Fatalf("expected part 0x3E85, got 0x%04X", rm.CurrentPart())
	}
	if rm.Bytecode().Size() != 2 {
		t.Fatal("expected new bytecode mapped")
	}
	if rm.Secondary().Size() != 3 {
		t.Fatal("expected previous secondary segment retained")
	}
}

func TestResourceMemory_FailedSetupKeepsState(t *testing.T) {
	loader := newFakeLoader()
	loader.parts[GAME_PART_INTRO] = SegmentMap{Bytecode: NewSegment("bytecode", []byte{OP_PAUSE_THREAD})}
	rm := NewResourceMemory(loader)
	if err := rm.SetupPart(GAME_PART_INTRO); err != nil {
		t.Fatal(err)
	}
	if err := rm.SetupPart(GAME_PART_FINAL); !errors.Is(err, ErrUnknownPart) {
		t.Fatalf("expected ErrUnknownPart, got %v", err)
	}
	if rm.CurrentPart() != GAME_PART_INTRO || !rm.Bytecode().Mapped() {
		t.Fatal("expected previous part to stay mapped")
	}
}

func TestResourceMemory_PaletteBlock(t *testing.T) {
	loader := newFakeLoader()
	pal := pattern(PALETTE_SIZE*2, 0)
	loader.parts[GAME_PART_INTRO] = SegmentMap{Palettes: NewSegment("palette", pal)}
	rm := NewResourceMemory(loader)
	if err := rm.SetupPart(GAME_PART_INTRO); err != nil {
		t.Fatal(err)
	}
	block, err := rm.PaletteBlock(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(block) != PALETTE_SIZE || block[0] != PALETTE_SIZE {
		t.Fatalf("expected second 32 byte block, got % X", block)
	}
	if _, err := rm.PaletteBlock(2); !errors.Is(err, ErrSegmentBounds) {
		t.Fatalf("expected ErrSegmentBounds, got %v", err)
	}
}
