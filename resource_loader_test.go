package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"testing/fstest"
)

func memRecord(typ, rank, bank uint8, off uint32, packed, size uint16) []byte {
	rec := make([]byte, MEMLIST_ENTRY_SIZE)
	rec[1] = typ
	rec[6] = rank
	rec[7] = bank
	binary.BigEndian.PutUint32(rec[8:12], off)
	binary.BigEndian.PutUint16(rec[14:16], packed)
	binary.BigEndian.PutUint16(rec[18:20], size)
	return rec
}

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i)
	}
	return b
}

// testGameFS builds a data directory with the intro part, one sound, one
// packed sound and one bitmap.
func testGameFS() fstest.MapFS {
	bank1 := asm(pattern(64, 0x10), []byte{OP_PAUSE_THREAD, 0, 0, 0}, testRect, pattern(12, 0x80))
	var memlist []byte
	for id := 0; id <= 0x19; id++ {
		var rec []byte
		switch id {
		case 0x05:
			rec = memRecord(RT_SOUND, 0, 1, 80, 12, 12)
		case 0x06:
			rec = memRecord(RT_SOUND, 0, 1, 0, 6, 12)
		case 0x12:
			rec = memRecord(RT_BITMAP, 0, 2, 0, 32000, 32000)
		case 0x17:
			rec = memRecord(RT_PALETTE, 1, 1, 0, 64, 64)
		case 0x18:
			rec = memRecord(RT_BYTECODE, 3, 1, 64, 4, 4)
		case 0x19:
			rec = memRecord(RT_CINEMATIC, 2, 1, 68, 12, 12)
		default:
			rec = memRecord(RT_UNKNOWN, 0, 0, 0, 0, 0)
		}
		memlist = append(memlist, rec...)
	}
	memlist = append(memlist, STATE_END)

	return fstest.MapFS{
		"MEMLIST.BIN": {Data: memlist},
		"BANK01":      {Data: bank1},
		"bank02":      {Data: pattern(32000, 0)},
		"res06.bin":   {Data: pattern(12, 0x40)},
	}
}

func newTestLoader(t *testing.T) *MemListLoader {
	t.Helper()
	l, err := NewMemListLoader(testGameFS())
	if err != nil {
		t.Fatalf("NewMemListLoader: %v", err)
	}
	return l
}

func TestParseMemList(t *testing.T) {
	data := asm(memRecord(RT_SOUND, 7, 3, 0x1234, 10, 20), []byte{STATE_END})
	entries, err := ParseMemList(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Type != RT_SOUND || e.RankNum != 7 || e.BankID != 3 || e.BankOffset != 0x1234 || e.PackedSize != 10 || e.Size != 20 {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestParseMemList_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"no end marker", memRecord(RT_SOUND, 0, 1, 0, 1, 1)},
		{"partial record", memRecord(RT_SOUND, 0, 1, 0, 1, 1)[:10]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMemList(tt.data); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMemListLoader_MissingDirectory(t *testing.T) {
	_, err := NewMemListLoader(fstest.MapFS{})
	var resErr *ResourceError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResourceError, got %v", err)
	}
}

func TestMemListLoader_SetupPart(t *testing.T) {
	l := newTestLoader(t)
	segs, err := l.SetupPart(GAME_PART_INTRO)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(segs.Palettes.Bytes(), pattern(64, 0x10)) {
		t.Fatal("palette segment mismatch")
	}
	if !bytes.Equal(segs.Bytecode.Bytes(), []byte{OP_PAUSE_THREAD, 0, 0, 0}) {
		t.Fatalf("bytecode segment mismatch: % X", segs.Bytecode.Bytes())
	}
	if !bytes.Equal(segs.Cinematic.Bytes(), testRect) {
		t.Fatal("cinematic segment mismatch")
	}
	if segs.Secondary.Mapped() {
		t.Fatal("expected no secondary segment for the intro")
	}
}

func TestMemListLoader_SetupPartErrors(t *testing.T) {
	l := newTestLoader(t)
	if _, err := l.SetupPart(0x1000); !errors.Is(err, ErrUnknownPart) {
		t.Fatalf("expected ErrUnknownPart, got %v", err)
	}
	// The water part references entries past the end of the directory.
	if _, err := l.SetupPart(GAME_PART_WATER); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestMemListLoader_LoadAndInvalidate(t *testing.T) {
	l := newTestLoader(t)
	if _, err := l.SetupPart(GAME_PART_INTRO); err != nil {
		t.Fatal(err)
	}
	if err := l.LoadEntry(0x05); err != nil {
		t.Fatal(err)
	}
	data, ok := l.Entry(0x05)
	if !ok || !bytes.Equal(data, pattern(12, 0x80)) {
		t.Fatalf("expected sound entry loaded, got %v % X", ok, data)
	}

	l.Invalidate()
	if _, ok := l.Entry(0x05); ok {
		t.Fatal("expected sound dropped by invalidate")
	}
	if _, ok := l.Entry(0x18); !ok {
		t.Fatal("expected bytecode to survive invalidate")
	}

	// Reloading reuses the arena space released by invalidate.
	if err := l.LoadEntry(0x05); err != nil {
		t.Fatal(err)
	}
	if e := l.Entries()[0x05]; e.Offset != 80 {
		t.Fatalf("expected reload at offset 80, got %d", e.Offset)
	}
}

func TestMemListLoader_Bitmap(t *testing.T) {
	l := newTestLoader(t)
	var got []byte
	l.SetBitmapSink(func(b []byte) { got = append([]byte(nil), b...) })
	if err := l.LoadEntry(0x12); err != nil {
		t.Fatal(err)
	}
	if len(got) != 32000 || got[1] != 1 {
		t.Fatalf("expected 32000 byte bitmap delivered, got %d bytes", len(got))
	}
	if _, ok := l.Entry(0x12); ok {
		t.Fatal("expected bitmap not to stay resident")
	}
}

func TestMemListLoader_PackedEntry(t *testing.T) {
	l := newTestLoader(t)
	if err := l.LoadEntry(0x06); err != nil {
		t.Fatal(err)
	}
	data, ok := l.Entry(0x06)
	if !ok || !bytes.Equal(data, pattern(12, 0x40)) {
		t.Fatalf("expected unpacked copy, got % X", data)
	}

	fsys := testGameFS()
	delete(fsys, "res06.bin")
	l2, err := NewMemListLoader(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if err := l2.LoadEntry(0x06); !errors.Is(err, ErrPackedResource) {
		t.Fatalf("expected ErrPackedResource, got %v", err)
	}
}

func TestMemListLoader_EntryWithoutBankSkipped(t *testing.T) {
	l := newTestLoader(t)
	if err := l.LoadEntry(0x00); err != nil {
		t.Fatalf("expected bankless entry to be skipped, got %v", err)
	}
	if _, ok := l.Entry(0x00); ok {
		t.Fatal("expected bankless entry not loaded")
	}
}

func TestMemListLoader_UnknownEntry(t *testing.T) {
	l := newTestLoader(t)
	if err := l.LoadEntry(0x200); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
	if _, ok := l.Entry(0x200); ok {
		t.Fatal("expected no data for unknown entry")
	}
}

func TestMemListLoader_ShortBank(t *testing.T) {
	fsys := testGameFS()
	fsys["BANK01"] = &fstest.MapFile{Data: pattern(70, 0)}
	l, err := NewMemListLoader(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.SetupPart(GAME_PART_INTRO); err == nil {
		t.Fatal("expected error reading past the end of the bank")
	}
}
