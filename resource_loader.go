// resource_loader.go - MEMLIST.BIN resource directory and bank loader

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
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

const (
	MEM_BLOCK_SIZE     = 600 * 1024
	BITMAP_AREA_SIZE   = 0x8000 // Staging area for planar bitmaps at the end of the arena
	MEMLIST_ENTRY_SIZE = 20
	MEMLIST_FILE       = "memlist.bin"
)

// Entry states
const (
	STATE_NOT_NEEDED = 0
	STATE_LOADED     = 1
	STATE_LOAD_ME    = 2
	STATE_END        = 0xFF
)

// Resource types
const (
	RT_SOUND     = 0
	RT_MUSIC     = 1
	RT_BITMAP    = 2
	RT_PALETTE   = 3
	RT_BYTECODE  = 4
	RT_CINEMATIC = 5
	RT_UNKNOWN   = 6
)

// Game parts
const (
	GAME_PART_FIRST = 0x3E80
	GAME_PART_LAST  = 0x3E89

	GAME_PART_PROTECTION = 0x3E80
	GAME_PART_INTRO      = 0x3E81
	GAME_PART_WATER      = 0x3E82
	GAME_PART_PRISON     = 0x3E83
	GAME_PART_CITE       = 0x3E84
	GAME_PART_ARENE      = 0x3E85
	GAME_PART_LUXE       = 0x3E86
	GAME_PART_FINAL      = 0x3E87
	GAME_PART_PASSWORD   = 0x3E88
	GAME_PART_PASSWORD2  = 0x3E89
)

// partResources names the resource entries a part maps on setup.
type partResources struct {
	Palette   uint16
	Bytecode  uint16
	Cinematic uint16
	Secondary uint16 // 0 when the part has none
}

var partTable = map[uint16]partResources{
	GAME_PART_PROTECTION: {0x14, 0x15, 0x16, 0x00},
	GAME_PART_INTRO:      {0x17, 0x18, 0x19, 0x00},
	GAME_PART_WATER:      {0x1A, 0x1B, 0x1C, 0x11},
	GAME_PART_PRISON:     {0x1D, 0x1E, 0x1F, 0x11},
	GAME_PART_CITE:       {0x20, 0x21, 0x22, 0x11},
	GAME_PART_ARENE:      {0x23, 0x24, 0x25, 0x00},
	GAME_PART_LUXE:       {0x26, 0x27, 0x28, 0x11},
	GAME_PART_FINAL:      {0x29, 0x2A, 0x2B, 0x11},
	GAME_PART_PASSWORD:   {0x7D, 0x7E, 0x7F, 0x00},
	GAME_PART_PASSWORD2:  {0x7D, 0x7E, 0x7F, 0x00},
}

// MemEntry is one record of the resource directory.
type MemEntry struct {
	State      uint8
	Type       uint8
	Offset     int // Position in the arena once loaded
	RankNum    uint8
	BankID     uint8
	BankOffset uint32
	PackedSize uint32
	Size       uint32
}

// ParseMemList decodes big-endian 20 byte directory records up to the
// end marker.
func ParseMemList(data []byte) ([]MemEntry, error) {
	var entries []MemEntry
	for off := 0; ; off += MEMLIST_ENTRY_SIZE {
		if off >= len(data) {
			return nil, fmt.Errorf("memlist truncated at offset %d", off)
		}
		if data[off] == STATE_END {
			return entries, nil
		}
		if off+MEMLIST_ENTRY_SIZE > len(data) {
			return nil, fmt.Errorf("memlist truncated at offset %d", off)
		}
		rec := data[off : off+MEMLIST_ENTRY_SIZE]
		entries = append(entries, MemEntry{
			State:      rec[0],
			Type:       rec[1],
			RankNum:    rec[6],
			BankID:     rec[7],
			BankOffset: binary.BigEndian.Uint32(rec[8:12]),
			PackedSize: uint32(binary.BigEndian.Uint16(rec[14:16])),
			Size:       uint32(binary.BigEndian.Uint16(rec[18:20])),
		})
	}
}

// MemListLoader loads resources from bank files into a fixed arena. Script
// resources are bump allocated from the bottom; bitmaps go through a
// staging area at the top and are delivered to the bitmap sink.
type MemListLoader struct {
	fsys    fs.FS
	entries []MemEntry
	mem     []byte

	scriptCur int
	scriptBak int
	bitmapOff int

	bitmapSink func([]byte)
}

// NewMemListLoader reads the resource directory from fsys.
func NewMemListLoader(fsys fs.FS) (*MemListLoader, error) {
	name, err := findFile(fsys, MEMLIST_FILE)
	if err != nil {
		return nil, &ResourceError{Op: "open directory", Path: MEMLIST_FILE, Err: err}
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &ResourceError{Op: "read directory", Path: name, Err: err}
	}
	entries, err := ParseMemList(data)
	if err != nil {
		return nil, &ResourceError{Op: "parse directory", Path: name, Err: err}
	}
	resourceLog.Infof("resource directory: %d entries", len(entries))
	return &MemListLoader{
		fsys:      fsys,
		entries:   entries,
		mem:       make([]byte, MEM_BLOCK_SIZE),
		bitmapOff: MEM_BLOCK_SIZE - BITMAP_AREA_SIZE,
	}, nil
}

// SetBitmapSink registers the consumer of decoded bitmap resources.
func (l *MemListLoader) SetBitmapSink(fn func([]byte)) {
	l.bitmapSink = fn
}

func (l *MemListLoader) Entries() []MemEntry { return l.entries }

func (l *MemListLoader) SetupPart(part uint16) (SegmentMap, error) {
	pr, ok := partTable[part]
	if !ok {
		return SegmentMap{}, &ResourceError{Op: "setup part", ID: part, Err: ErrUnknownPart}
	}
	for i := range l.entries {
		l.entries[i].State = STATE_NOT_NEEDED
	}
	l.scriptCur = 0

	ids := []uint16{pr.Palette, pr.Bytecode, pr.Cinematic}
	if pr.Secondary != 0 {
		ids = append(ids, pr.Secondary)
	}
	for _, id := range ids {
		if int(id) >= len(l.entries) {
			return SegmentMap{}, &ResourceError{Op: "setup part", ID: id, Err: ErrUnknownResource}
		}
		l.entries[id].State = STATE_LOAD_ME
	}
	if err := l.loadMarked(); err != nil {
		return SegmentMap{}, err
	}

	segs := SegmentMap{
		Palettes:  l.segment("palette", pr.Palette),
		Bytecode:  l.segment("bytecode", pr.Bytecode),
		Cinematic: l.segment("cinematic", pr.Cinematic),
	}
	if pr.Secondary != 0 {
		segs.Secondary = l.segment("secondary", pr.Secondary)
	}
	l.scriptBak = l.scriptCur
	return segs, nil
}

func (l *MemListLoader) segment(name string, id uint16) Segment {
	data, ok := l.Entry(id)
	if !ok {
		return Segment{name: name}
	}
	return NewSegment(name, data)
}

func (l *MemListLoader) LoadEntry(id uint16) error {
	if int(id) >= len(l.entries) {
		return &ResourceError{Op: "load", ID: id, Err: ErrUnknownResource}
	}
	e := &l.entries[id]
	if e.State == STATE_NOT_NEEDED {
		e.State = STATE_LOAD_ME
	}
	return l.loadMarked()
}

func (l *MemListLoader) Invalidate() {
	for i := range l.entries {
		e := &l.entries[i]
		if e.Type <= RT_BITMAP || e.Type > RT_UNKNOWN {
			e.State = STATE_NOT_NEEDED
		}
	}
	l.scriptCur = l.scriptBak
}

func (l *MemListLoader) Entry(id uint16) ([]byte, bool) {
	if int(id) >= len(l.entries) {
		return nil, false
	}
	e := &l.entries[id]
	if e.State != STATE_LOADED {
		return nil, false
	}
	return l.mem[e.Offset : e.Offset+int(e.Size)], true
}

// loadMarked loads every entry flagged STATE_LOAD_ME, highest rank first.
func (l *MemListLoader) loadMarked() error {
	for {
		idx := -1
		for i := range l.entries {
			e := &l.entries[i]
			if e.State == STATE_LOAD_ME && (idx < 0 || e.RankNum > l.entries[idx].RankNum) {
				idx = i
			}
		}
		if idx < 0 {
			return nil
		}
		e := &l.entries[idx]
		if e.BankID == 0 {
			resourceLog.Warningf("entry 0x%02X has no bank, skipping", idx)
			e.State = STATE_NOT_NEEDED
			continue
		}

		dst := l.scriptCur
		if e.Type == RT_BITMAP {
			dst = l.bitmapOff
			if e.Size > BITMAP_AREA_SIZE {
				return &ResourceError{Op: "load", ID: uint16(idx), Err: ErrOutOfMemory}
			}
		} else if dst+int(e.Size) > l.bitmapOff {
			return &ResourceError{Op: "load", ID: uint16(idx), Err: ErrOutOfMemory}
		}

		if err := l.readEntry(uint16(idx), e, l.mem[dst:dst+int(e.Size)]); err != nil {
			return err
		}
		resourceLog.Debugf("loaded entry 0x%02X type=%d size=%d at 0x%05X", idx, e.Type, e.Size, dst)

		if e.Type == RT_BITMAP {
			if l.bitmapSink != nil {
				l.bitmapSink(l.mem[dst : dst+int(e.Size)])
			}
			e.State = STATE_NOT_NEEDED
			continue
		}
		e.Offset = dst
		e.State = STATE_LOADED
		l.scriptCur += int(e.Size)
	}
}

// readEntry copies an entry's payload into dst. Packed entries are read
// from a pre-unpacked resNN.bin file.
func (l *MemListLoader) readEntry(id uint16, e *MemEntry, dst []byte) error {
	if e.PackedSize != e.Size {
		name := fmt.Sprintf("res%02x.bin", id)
		path, err := findFile(l.fsys, name)
		if err != nil {
			return &ResourceError{Op: "load", ID: id, Path: name, Err: ErrPackedResource}
		}
		data, err := fs.ReadFile(l.fsys, path)
		if err != nil {
			return &ResourceError{Op: "load", ID: id, Path: path, Err: err}
		}
		if len(data) < len(dst) {
			return &ResourceError{Op: "load", ID: id, Path: path, Err: io.ErrUnexpectedEOF}
		}
		copy(dst, data)
		return nil
	}

	name := fmt.Sprintf("bank%02x", e.BankID)
	path, err := findFile(l.fsys, name)
	if err != nil {
		return &ResourceError{Op: "load", ID: id, Path: name, Err: err}
	}
	f, err := l.fsys.Open(path)
	if err != nil {
		return &ResourceError{Op: "load", ID: id, Path: path, Err: err}
	}
	defer f.Close()

	if ra, ok := f.(io.ReaderAt); ok {
		var n int
		n, err = ra.ReadAt(dst, int64(e.BankOffset))
		if n == len(dst) {
			err = nil
		}
	} else {
		var data []byte
		data, err = io.ReadAll(f)
		if err == nil {
			end := int64(e.BankOffset) + int64(len(dst))
			if end > int64(len(data)) {
				err = io.ErrUnexpectedEOF
			} else {
				copy(dst, data[e.BankOffset:end])
			}
		}
	}
	if err != nil {
		return &ResourceError{Op: "load", ID: id, Path: path, Err: err}
	}
	return nil
}

// findFile resolves name in fsys trying it as given, lower case and
// upper case.
func findFile(fsys fs.FS, name string) (string, error) {
	candidates := []string{name, strings.ToLower(name), strings.ToUpper(name)}
	var firstErr error
	for _, c := range candidates {
		if _, err := fs.Stat(fsys, c); err == nil {
			return c, nil
		} else if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}
