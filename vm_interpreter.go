// vm_interpreter.go - Opcode decode and execution

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

	"github.com/tliron/commonlog"
)

// executeThread runs the current thread until it yields.
func (vm *VirtualMachine) executeThread() error {
	trace := vmLog.AllowLevel(commonlog.Debug)
	for n := 0; !vm.yield; n++ {
		if n >= MAX_SLICE_INSTRUCTIONS {
			return vm.fault("execute", vm.cursor.Pos(), 0, ErrRunawayThread)
		}
		pc := vm.cursor.Pos()
		op := vm.cursor.FetchByte()
		if err := vm.cursor.Err(); err != nil {
			return vm.fault("fetch", pc, op, err)
		}
		if trace {
			line := DisassembleAt(vm.cursor.Segment(), pc)
			vmLog.Debugf("t%02d %04X: %s", vm.threadID, pc, line.Mnemonic)
		}
		if err := vm.execute(op); err != nil {
			return vm.fault(opName(op), pc, op, err)
		}
		if err := vm.cursor.Err(); err != nil {
			return vm.fault(opName(op), pc, op, err)
		}
	}
	return nil
}

func (vm *VirtualMachine) fault(op string, pc int, opcode byte, err error) error {
	return &VMError{Op: op, Thread: vm.threadID, PC: pc, Opcode: opcode, Err: err}
}

func opName(op byte) string {
	switch {
	case op&OP_DRAW_POLY_BACKGROUND != 0:
		return "drawPolyBackground"
	case op&OP_DRAW_POLY_SPRITE != 0:
		return "drawPolySprite"
	}
	if name := opcodeName(op); name != "" {
		return name
	}
	return fmt.Sprintf("op%02X", op)
}

func (vm *VirtualMachine) execute(op byte) error {
	c := &vm.cursor

	if op&OP_DRAW_POLY_BACKGROUND != 0 {
		return vm.opDrawPolyBackground(op)
	}
	if op&OP_DRAW_POLY_SPRITE != 0 {
		return vm.opDrawPolySprite(op)
	}

	switch op {
	case OP_MOV_CONST:
		v := c.FetchByte()
		vm.vars[v] = int16(c.FetchWord())

	case OP_MOV:
		d := c.FetchByte()
		s := c.FetchByte()
		vm.vars[d] = vm.vars[s]

	case OP_ADD:
		d := c.FetchByte()
		s := c.FetchByte()
		vm.vars[d] += vm.vars[s]

	case OP_ADD_CONST:
		v := c.FetchByte()
		vm.vars[v] += int16(c.FetchWord())

	case OP_CALL:
		target := c.FetchWord()
		if vm.sp >= STACK_SIZE {
			return ErrStackOverflow
		}
		vm.stack[vm.sp] = uint16(c.Pos())
		vm.sp++
		c.Seek(int(target))

	case OP_RET:
		if vm.sp == 0 {
			return ErrStackUnderflow
		}
		vm.sp--
		c.Seek(int(vm.stack[vm.sp]))

	case OP_PAUSE_THREAD:
		vm.yield = true

	case OP_JMP:
		c.Seek(int(c.FetchWord()))

	case OP_SET_VECT:
		id := c.FetchByte()
		pc := c.FetchWord()
		if int(id) >= NUM_THREADS {
			vmLog.Warningf("setVect: invalid thread %d", id)
			break
		}
		vm.requestPC(int(id), pc)

	case OP_JNZ:
		v := c.FetchByte()
		vm.vars[v]--
		vm.jumpIf(vm.vars[v] != 0)

	case OP_COND_JMP:
		vm.opCondJmp()

	case OP_SET_PALETTE:
		return vm.opSetPalette()

	case OP_RESET_THREAD:
		vm.opResetThread()

	case OP_SELECT_PAGE:
		vm.video.SelectDrawPage(c.FetchByte())

	case OP_FILL_PAGE:
		page := c.FetchByte()
		color := c.FetchByte()
		vm.video.FillPage(page, color)

	case OP_COPY_PAGE:
		src := c.FetchByte()
		dst := c.FetchByte()
		vm.video.CopyPage(src, dst, vm.vars[VAR_SCROLL_Y])

	case OP_BLIT:
		vm.opBlit(c.FetchByte())

	case OP_KILL_THREAD:
		c.Seek(INACTIVE_THREAD)
		vm.yield = true

	case OP_DRAW_STRING:
		id := c.FetchWord()
		x := c.FetchByte()
		y := c.FetchByte()
		color := c.FetchByte()
		if vm.text != nil {
			vm.text.DrawString(vm.video.DrawPage(), color, x, y, id)
		}

	case OP_SUB:
		d := c.FetchByte()
		s := c.FetchByte()
		vm.vars[d] -= vm.vars[s]

	case OP_AND:
		v := c.FetchByte()
		vm.vars[v] &= int16(c.FetchWord())

	case OP_OR:
		v := c.FetchByte()
		vm.vars[v] |= int16(c.FetchWord())

	case OP_SHL:
		v := c.FetchByte()
		n := c.FetchWord()
		vm.vars[v] = int16(uint16(vm.vars[v]) << n)

	case OP_SHR:
		v := c.FetchByte()
		n := c.FetchWord()
		vm.vars[v] = int16(uint16(vm.vars[v]) >> n)

	case OP_PLAY_SOUND:
		id := c.FetchWord()
		freq := c.FetchByte()
		vol := c.FetchByte()
		channel := c.FetchByte()
		vm.playSound(id, freq, vol, channel)

	case OP_UPDATE_MEMLIST:
		return vm.opUpdateMemList(c.FetchWord())

	case OP_PLAY_MUSIC:
		id := c.FetchWord()
		delay := c.FetchWord()
		pos := c.FetchByte()
		if !vm.musicWarned {
			vmLog.Warningf("music playback not supported (res 0x%04X delay %d pos %d)", id, delay, pos)
			vm.musicWarned = true
		}

	default:
		return ErrUnknownOpcode
	}
	return nil
}

// jumpIf reads a jump target and takes it when cond holds.
func (vm *VirtualMachine) jumpIf(cond bool) {
	target := vm.cursor.FetchWord()
	if cond {
		vm.cursor.Seek(int(target))
	}
}

// opCondJmp compares a variable with a variable, word or byte operand
// selected by the top bits of the condition byte.
func (vm *VirtualMachine) opCondJmp() {
	c := &vm.cursor
	cond := c.FetchByte()
	b := vm.vars[c.FetchByte()]
	var a int16
	switch {
	case cond&0x80 != 0:
		a = vm.vars[c.FetchByte()]
	case cond&0x40 != 0:
		a = int16(c.FetchWord())
	default:
		a = int16(c.FetchByte())
	}

	var taken bool
	switch cond & 7 {
	case COND_EQ:
		taken = b == a
	case COND_NE:
		taken = b != a
	case COND_GT:
		taken = b > a
	case COND_GE:
		taken = b >= a
	case COND_LT:
		taken = b < a
	case COND_LE:
		taken = b <= a
	default:
		vmLog.Warningf("condJmp: invalid condition %d", cond&7)
	}
	vm.jumpIf(taken)
}

// opResetThread applies a pause, resume or kill request to a thread range.
func (vm *VirtualMachine) opResetThread() {
	c := &vm.cursor
	first := int(c.FetchByte())
	last := int(c.FetchByte() & 0x3F)
	mode := c.FetchByte()
	if last < first {
		vmLog.Warningf("resetThread: invalid range %d..%d", first, last)
		return
	}
	switch {
	case mode == RESET_MODE_KILL:
		for i := first; i <= last; i++ {
			vm.requestPC(i, SET_INACTIVE_THREAD)
		}
	case mode < RESET_MODE_KILL:
		for i := first; i <= last; i++ {
			vm.threads[i].requestedPaused = mode == RESET_MODE_PAUSE
		}
	}
}

func (vm *VirtualMachine) opSetPalette() error {
	id := uint8(vm.cursor.FetchWord() >> 8)
	if id >= MAX_PALETTES {
		vmLog.Warningf("setPalette: invalid palette %d", id)
		return nil
	}
	block, err := vm.res.PaletteBlock(id)
	if err != nil {
		return err
	}
	pal, err := DecodePalette(block)
	if err != nil {
		return err
	}
	vm.video.RequestPalette(pal)
	return nil
}

// opBlit paces the frame, acknowledges it to the scripts and presents.
func (vm *VirtualMachine) opBlit(page uint8) {
	if vm.opts.BypassProtection && vm.res.CurrentPart() == GAME_PART_PROTECTION && vm.vars[VAR_SCREEN_NUM] == 1 {
		vm.vars[VAR_PROTECTION_CODE_3] = 0x21
	}
	vm.paceFrame()
	vm.vars[VAR_BLIT_ACK] = 0
	vm.video.UpdateDisplay(page)
}

// paceFrame sleeps so consecutive presents are VAR_PAUSE_SLICES * 20ms
// apart. A clock that ran backwards counts as no time elapsed.
func (vm *VirtualMachine) paceFrame() {
	if vm.opts.FastMode || vm.platform == nil {
		return
	}
	now := vm.platform.Timestamp()
	var elapsed int64
	if now > vm.lastTimestamp {
		elapsed = int64(now - vm.lastTimestamp)
	}
	wait := int64(vm.vars[VAR_PAUSE_SLICES])*PAUSE_SLICE_MS - elapsed
	if wait > 0 {
		vm.platform.Sleep(uint64(wait))
	}
	vm.lastTimestamp = vm.platform.Timestamp()
}

func (vm *VirtualMachine) opUpdateMemList(id uint16) error {
	switch {
	case id == 0:
		if vm.sound != nil {
			vm.sound.StopAll()
		}
		vm.res.Invalidate()
	case id >= GAME_PART_FIRST:
		vm.pendingPart = id
	default:
		return vm.res.LoadEntry(id)
	}
	return nil
}

func (vm *VirtualMachine) playSound(id uint16, freq, vol, channel uint8) {
	if vm.sound == nil {
		return
	}
	if vol == 0 {
		vm.sound.StopChannel(channel & 3)
		return
	}
	data, ok := vm.res.Entry(id)
	if !ok {
		vmLog.Debugf("playSound: resource 0x%04X not loaded", id)
		return
	}
	if int(freq) >= len(frequencyTable) {
		vmLog.Warningf("playSound: invalid frequency index %d", freq)
		return
	}
	sample, err := ParseSoundSample(data)
	if err != nil {
		vmLog.Warningf("playSound: resource 0x%04X: %v", id, err)
		return
	}
	vm.sound.PlayChannel(channel&3, sample, frequencyTable[freq], vol)
}

// opDrawPolySprite decodes the operand layout selected by the low six
// opcode bits and draws a shape from the cinematic or secondary segment.
func (vm *VirtualMachine) opDrawPolySprite(op byte) error {
	c := &vm.cursor
	offset := int(c.FetchWord() * 2)
	seg := vm.res.Cinematic()

	x := int16(c.FetchByte())
	if op&0x20 == 0 {
		if op&0x10 == 0 {
			x = x<<8 | int16(c.FetchByte())
		} else {
			x = vm.vars[uint8(x)]
		}
	} else if op&0x10 != 0 {
		x += 0x100
	}

	y := int16(c.FetchByte())
	if op&0x08 == 0 {
		if op&0x04 == 0 {
			y = y<<8 | int16(c.FetchByte())
		} else {
			y = vm.vars[uint8(y)]
		}
	}

	zoom := uint16(DEFAULT_ZOOM)
	switch op & 0x03 {
	case 0x01:
		zoom = uint16(vm.vars[c.FetchByte()])
	case 0x02:
		zoom = uint16(c.FetchByte())
	case 0x03:
		seg = vm.res.Secondary()
	}
	if err := c.Err(); err != nil {
		return err
	}
	return vm.raster.DrawShape(seg, offset, COLOR_FROM_SHAPE, zoom, Point{X: x, Y: y})
}

// opDrawPolyBackground draws a full scale cinematic shape whose offset
// is packed into the opcode. Rows below 199 fold into x.
func (vm *VirtualMachine) opDrawPolyBackground(op byte) error {
	c := &vm.cursor
	lo := c.FetchByte()
	offset := int((uint16(op)<<8 | uint16(lo)) * 2)
	x := int16(c.FetchByte())
	y := int16(c.FetchByte())
	if h := y - (SCREEN_HEIGHT - 1); h > 0 {
		y = SCREEN_HEIGHT - 1
		x += h
	}
	if err := c.Err(); err != nil {
		return err
	}
	return vm.raster.DrawShape(vm.res.Cinematic(), offset, COLOR_FROM_SHAPE, DEFAULT_ZOOM, Point{X: x, Y: y})
}
