// debug_disasm_script.go - Bytecode disassembler for tracing and the -disasm dump

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
	"fmt"
	"io"
	"strings"
)

// ScriptLine is one decoded instruction.
type ScriptLine struct {
	Offset       int
	HexBytes     string
	Mnemonic     string
	Size         int
	IsBranch     bool
	BranchTarget int
}

func (l ScriptLine) String() string {
	return fmt.Sprintf("%04X  %-20s %s", l.Offset, l.HexBytes, l.Mnemonic)
}

// scriptReader decodes operands without the error latching of Cursor;
// reads past the end yield zero and mark the line truncated.
type scriptReader struct {
	data      []byte
	pos       int
	truncated bool
}

func (r *scriptReader) byte() byte {
	if r.pos >= len(r.data) {
		r.truncated = true
		r.pos++
		return 0
	}
	b := r.data[r.pos]
	r.pos++
	return b
}

func (r *scriptReader) word() uint16 {
	hi := r.byte()
	lo := r.byte()
	return uint16(hi)<<8 | uint16(lo)
}

// DisassembleAt decodes the instruction at off in seg.
func DisassembleAt(seg Segment, off int) ScriptLine {
	data := seg.Bytes()
	if off < 0 || off >= len(data) {
		return ScriptLine{Offset: off, Mnemonic: "<out of range>", Size: 1}
	}
	r := &scriptReader{data: data, pos: off}
	line := ScriptLine{Offset: off}
	line.Mnemonic = decodeScriptInstruction(r, &line)
	if r.truncated {
		line.Mnemonic += " <truncated>"
	}
	line.Size = r.pos - off
	end := min(r.pos, len(data))
	var hex []string
	for _, b := range data[off:end] {
		hex = append(hex, fmt.Sprintf("%02X", b))
	}
	line.HexBytes = strings.Join(hex, " ")
	return line
}

// DisassembleScript decodes up to count instructions starting at off.
// A count of zero runs to the end of the segment.
func DisassembleScript(seg Segment, off, count int) []ScriptLine {
	var lines []ScriptLine
	for off < seg.Size() && (count == 0 || len(lines) < count) {
		line := DisassembleAt(seg, off)
		lines = append(lines, line)
		off += line.Size
	}
	return lines
}

// WriteDisassembly prints a listing of seg to w.
func WriteDisassembly(w io.Writer, seg Segment) error {
	for _, line := range DisassembleScript(seg, 0, 0) {
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

func decodeScriptInstruction(r *scriptReader, line *ScriptLine) string {
	op := r.byte()

	if op&OP_DRAW_POLY_BACKGROUND != 0 {
		lo := r.byte()
		off := (uint16(op)<<8 | uint16(lo)) * 2
		x, y := r.byte(), r.byte()
		return fmt.Sprintf("drawPolyBackground off=0x%04X x=%d y=%d", off, x, y)
	}
	if op&OP_DRAW_POLY_SPRITE != 0 {
		return decodeSprite(r, op)
	}

	branch := func(target uint16) {
		line.IsBranch = true
		line.BranchTarget = int(target)
	}

	switch op {
	case OP_MOV_CONST:
		v := r.byte()
		return fmt.Sprintf("movConst v%02X, %d", v, int16(r.word()))
	case OP_MOV, OP_ADD, OP_SUB:
		d, s := r.byte(), r.byte()
		return fmt.Sprintf("%s v%02X, v%02X", opcodeName(op), d, s)
	case OP_ADD_CONST, OP_AND, OP_OR, OP_SHL, OP_SHR:
		v := r.byte()
		return fmt.Sprintf("%s v%02X, %d", opcodeName(op), v, int16(r.word()))
	case OP_CALL, OP_JMP:
		t := r.word()
		branch(t)
		return fmt.Sprintf("%s 0x%04X", opcodeName(op), t)
	case OP_RET, OP_PAUSE_THREAD, OP_KILL_THREAD:
		return opcodeName(op)
	case OP_SET_VECT:
		id := r.byte()
		return fmt.Sprintf("setVect t%d, 0x%04X", id, r.word())
	case OP_JNZ:
		v := r.byte()
		t := r.word()
		branch(t)
		return fmt.Sprintf("jnz v%02X, 0x%04X", v, t)
	case OP_COND_JMP:
		cond := r.byte()
		v := r.byte()
		var operand string
		switch {
		case cond&0x80 != 0:
			operand = fmt.Sprintf("v%02X", r.byte())
		case cond&0x40 != 0:
			operand = fmt.Sprintf("%d", int16(r.word()))
		default:
			operand = fmt.Sprintf("%d", r.byte())
		}
		t := r.word()
		branch(t)
		return fmt.Sprintf("j%s v%02X, %s, 0x%04X", condName(cond&7), v, operand, t)
	case OP_SET_PALETTE:
		return fmt.Sprintf("setPalette %d", r.word()>>8)
	case OP_RESET_THREAD:
		first, last, mode := r.byte(), r.byte(), r.byte()
		return fmt.Sprintf("resetThread t%d..t%d, %s", first, last&0x3F, resetModeName(mode))
	case OP_SELECT_PAGE, OP_BLIT:
		return fmt.Sprintf("%s %s", opcodeName(op), pageName(r.byte()))
	case OP_FILL_PAGE:
		p, c := r.byte(), r.byte()
		return fmt.Sprintf("fillPage %s, %d", pageName(p), c)
	case OP_COPY_PAGE:
		s, d := r.byte(), r.byte()
		return fmt.Sprintf("copyPage 0x%02X, %s", s, pageName(d))
	case OP_DRAW_STRING:
		id := r.word()
		x, y, c := r.byte(), r.byte(), r.byte()
		return fmt.Sprintf("drawString 0x%03X, %d, %d, %d", id, x, y, c)
	case OP_PLAY_SOUND:
		id := r.word()
		f, v, ch := r.byte(), r.byte(), r.byte()
		return fmt.Sprintf("playSound 0x%04X, freq=%d, vol=%d, ch=%d", id, f, v, ch)
	case OP_UPDATE_MEMLIST:
		id := r.word()
		if id >= GAME_PART_FIRST {
			return fmt.Sprintf("updateMemList part 0x%04X", id)
		}
		return fmt.Sprintf("updateMemList 0x%04X", id)
	case OP_PLAY_MUSIC:
		id := r.word()
		delay := r.word()
		return fmt.Sprintf("playMusic 0x%04X, %d, %d", id, delay, r.byte())
	}
	return fmt.Sprintf("db 0x%02X", op)
}

func decodeSprite(r *scriptReader, op byte) string {
	off := r.word() * 2
	var x, y, zoom string
	seg := "cinematic"

	b := r.byte()
	switch {
	case op&0x20 == 0 && op&0x10 == 0:
		x = fmt.Sprintf("%d", int16(uint16(b)<<8|uint16(r.byte())))
	case op&0x20 == 0:
		x = fmt.Sprintf("v%02X", b)
	case op&0x10 != 0:
		x = fmt.Sprintf("%d", int(b)+0x100)
	default:
		x = fmt.Sprintf("%d", b)
	}

	b = r.byte()
	switch {
	case op&0x08 == 0 && op&0x04 == 0:
		y = fmt.Sprintf("%d", int16(uint16(b)<<8|uint16(r.byte())))
	case op&0x08 == 0:
		y = fmt.Sprintf("v%02X", b)
	default:
		y = fmt.Sprintf("%d", b)
	}

	switch {
	case op&0x02 == 0 && op&0x01 == 0:
		zoom = "64"
	case op&0x02 == 0:
		zoom = fmt.Sprintf("v%02X", r.byte())
	case op&0x01 != 0:
		zoom = "64"
		seg = "secondary"
	default:
		zoom = fmt.Sprintf("%d", r.byte())
	}
	return fmt.Sprintf("drawPolySprite %s:0x%04X x=%s y=%s zoom=%s", seg, off, x, y, zoom)
}

func condName(c byte) string {
	switch c {
	case COND_EQ:
		return "eq"
	case COND_NE:
		return "ne"
	case COND_GT:
		return "gt"
	case COND_GE:
		return "ge"
	case COND_LT:
		return "lt"
	case COND_LE:
		return "le"
	}
	return fmt.Sprintf("cond%d", c)
}

func resetModeName(m byte) string {
	switch m {
	case RESET_MODE_RESUME:
		return "resume"
	case RESET_MODE_PAUSE:
		return "pause"
	case RESET_MODE_KILL:
		return "kill"
	}
	return fmt.Sprintf("mode%d", m)
}

func pageName(p byte) string {
	switch p {
	case PAGE_ALIAS_FRONT:
		return "front"
	case PAGE_ALIAS_BACK:
		return "back"
	}
	return fmt.Sprintf("%d", p)
}
