// resource_memory.go - Bounds-checked segment views over the resource arena

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

import "fmt"

// Segment is a read-only window onto loaded resource memory. The zero
// value is an unmapped segment; every access through it fails.
type Segment struct {
	name string
	mem  []byte
}

// NewSegment returns a view named name over data.
func NewSegment(name string, data []byte) Segment {
	return Segment{name: name, mem: data}
}

func (s Segment) Name() string { return s.name }
func (s Segment) Size() int { return len(s.mem) }
func (s Segment) Mapped() bool { return s.mem != nil }
func (s Segment) Bytes() []byte { return s.mem }

func (s Segment) check(off, n int) error {
	if s.mem == nil {
		return fmt.Errorf("%w: %s", ErrSegmentUnmapped, s.name)
	}
	if off < 0 || n < 0 || off+n > len(s.mem) {
		return fmt.Errorf("%w: %s offset 0x%04X+%d (size 0x%04X)", ErrSegmentBounds, s.name, off, n, len(s.mem))
	}
	return nil
}

// Byte reads one byte at off.
func (s Segment) Byte(off int) (byte, error) {
	if err := s.check(off, 1); err != nil {
		return 0, err
	}
	return s.mem[off], nil
}

// Word reads a big-endian 16-bit value at off.
func (s Segment) Word(off int) (uint16, error) {
	if err := s.check(off, 2); err != nil {
		return 0, err
	}
	return uint16(s.mem[off])<<8 | uint16(s.mem[off+1]), nil
}

// Slice returns n bytes starting at off without copying.
func (s Segment) Slice(off, n int) ([]byte, error) {
	if err := s.check(off, n); err != nil {
		return nil, err
	}
	return s.mem[off : off+n], nil
}

// Cursor returns a reader positioned at off.
func (s Segment) Cursor(off int) Cursor {
	return Cursor{seg: s, pos: off}
}

// Cursor reads bytecode or shape data sequentially. The first out of range
// read latches an error and every later read returns zero; callers check
// Err once after a batch of fetches.
type Cursor struct {
	seg Segment
	pos int
	err error
}

func (c *Cursor) Pos() int { return c.pos }
func (c *Cursor) Seek(pos int) { c.pos = pos }
func (c *Cursor) Skip(n int) { c.pos += n }
func (c *Cursor) Err() error { return c.err }
func (c *Cursor) Segment() Segment { return c.seg }
func (c *Cursor) ClearErr() { c.err = nil }
func (c *Cursor) Reset(s Segment, pos int) {
	c.seg = s
	c.pos = pos
	c.err = nil
}

func (c *Cursor) FetchByte() byte {
	if c.err != nil {
		return 0
	}
	b, err := c.seg.Byte(c.pos)
	if err != nil {
		c.err = err
		return 0
	}
	c.pos++
	return b
}

func (c *Cursor) FetchWord() uint16 {
	if c.err != nil {
		return 0
	}
	w, err := c.seg.Word(c.pos)
	if err != nil {
		c.err = err
		return 0
	}
	c.pos += 2
	return w
}

// SegmentMap holds the segments belonging to the active game part.
type SegmentMap struct {
	Palettes  Segment
	Bytecode  Segment
	Cinematic Segment
	Secondary Segment
}

// ResourceLoader supplies resource data to the VM.
type ResourceLoader interface {
	// SetupPart loads the resources of part and returns their segments.
	SetupPart(part uint16) (SegmentMap, error)
	// LoadEntry loads one resource by id. Bitmap resources are handed to
	// the bitmap sink rather than kept resident.
	LoadEntry(id uint16) error
	// Invalidate drops transient resources loaded since the last part setup.
	Invalidate()
	// Entry returns the bytes of a resident resource.
	Entry(id uint16) ([]byte, bool)
}

// ResourceMemory tracks the part currently mapped and its segments.
type ResourceMemory struct {
	loader ResourceLoader
	segs   SegmentMap
	part   uint16
}

func NewResourceMemory(loader ResourceLoader) *ResourceMemory {
	return &ResourceMemory{loader: loader}
}

// SetupPart switches to part. The previous secondary segment stays mapped
// when the new part does not provide one.
func (rm *ResourceMemory) SetupPart(part uint16) error {
	segs, err := rm.loader.SetupPart(part)
	if err != nil {
		return err
	}
	if !segs.Secondary.Mapped() {
		segs.Secondary = rm.segs.Secondary
	}
	rm.segs = segs
	rm.part = part
	resourceLog.Infof("part 0x%04X mapped: code=%d cinematic=%d secondary=%d",
		part, segs.Bytecode.Size(), segs.Cinematic.Size(), segs.Secondary.Size())
	return nil
}

func (rm *ResourceMemory) CurrentPart() uint16 { return rm.part }
func (rm *ResourceMemory) Segments() SegmentMap { return rm.segs }
func (rm *ResourceMemory) Bytecode() Segment { return rm.segs.Bytecode }
func (rm *ResourceMemory) Cinematic() Segment { return rm.segs.Cinematic }
func (rm *ResourceMemory) Secondary() Segment { return rm.segs.Secondary }
func (rm *ResourceMemory) Palettes() Segment { return rm.segs.Palettes }
func (rm *ResourceMemory) LoadEntry(id uint16) error { return rm.loader.LoadEntry(id) }
func (rm *ResourceMemory) Invalidate() { rm.loader.Invalidate() }

func (rm *ResourceMemory) Entry(id uint16) ([]byte, bool) {
	return rm.loader.Entry(id)
}

// PaletteBlock returns the 32 byte palette record id.
func (rm *ResourceMemory) PaletteBlock(id uint8) ([]byte, error) {
	return rm.segs.Palettes.Slice(int(id)*PALETTE_SIZE, PALETTE_SIZE)
}
