// vm_constants.go - Bytecode VM constants for the polygon cinematic engine

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

// Machine dimensions
const (
	NUM_VARIABLES = 256
	NUM_THREADS   = 64
	STACK_SIZE    = 0xFF

	// Instructions a single thread may execute before it is considered runaway
	MAX_SLICE_INSTRUCTIONS = 1 << 20
)

// Thread program counter markers
const (
	INACTIVE_THREAD     = 0xFFFF
	SET_INACTIVE_THREAD = 0xFFFE
)

// Drawing defaults
const (
	DEFAULT_ZOOM     = 0x40
	COLOR_FROM_SHAPE = 0xFF // Shape supplies its own color
	MAX_PALETTES     = 32
	PALETTE_SIZE     = 32
)

// Frame pacing
const (
	PAUSE_SLICE_MS = 20
)

// Reserved variable slots
const (
	VAR_RANDOM_SEED          = 0x3C
	VAR_PROTECTION_CHECK     = 0x54
	VAR_SCREEN_NUM           = 0x67
	VAR_PROTECTION_CODE_1    = 0xB6
	VAR_PROTECTION_CODE_2    = 0xC6
	VAR_LAST_KEYCHAR         = 0xDA
	VAR_PROTECTION_CODE_3    = 0xDC
	VAR_PART_INIT            = 0xE4
	VAR_HERO_POS_UP_DOWN     = 0xE5
	VAR_PROTECTION_CODE_4    = 0xF2
	VAR_MUSIC_MARK           = 0xF4
	VAR_BLIT_ACK             = 0xF7
	VAR_SCROLL_Y             = 0xF9
	VAR_HERO_ACTION          = 0xFA
	VAR_HERO_POS_JUMP_DOWN   = 0xFB
	VAR_HERO_POS_LEFT_RIGHT  = 0xFC
	VAR_HERO_POS_MASK        = 0xFD
	VAR_HERO_ACTION_POS_MASK = 0xFE
	VAR_PAUSE_SLICES         = 0xFF
)

// Opcodes
const (
	OP_MOV_CONST      = 0x00
	OP_MOV            = 0x01
	OP_ADD            = 0x02
	OP_ADD_CONST      = 0x03
	OP_CALL           = 0x04
	OP_RET            = 0x05
	OP_PAUSE_THREAD   = 0x06
	OP_JMP            = 0x07
	OP_SET_VECT       = 0x08
	OP_JNZ            = 0x09
	OP_COND_JMP       = 0x0A
	OP_SET_PALETTE    = 0x0B
	OP_RESET_THREAD   = 0x0C
	OP_SELECT_PAGE    = 0x0D
	OP_FILL_PAGE      = 0x0E
	OP_COPY_PAGE      = 0x0F
	OP_BLIT           = 0x10
	OP_KILL_THREAD    = 0x11
	OP_DRAW_STRING    = 0x12
	OP_SUB            = 0x13
	OP_AND            = 0x14
	OP_OR             = 0x15
	OP_SHL            = 0x16
	OP_SHR            = 0x17
	OP_PLAY_SOUND     = 0x18
	OP_UPDATE_MEMLIST = 0x19
	OP_PLAY_MUSIC     = 0x1A

	OP_DRAW_POLY_SPRITE     = 0x40
	OP_DRAW_POLY_BACKGROUND = 0x80
)

// Conditional jump comparison selectors (low three bits of the condition byte)
const (
	COND_EQ = 0
	COND_NE = 1
	COND_GT = 2
	COND_GE = 3
	COND_LT = 4
	COND_LE = 5
)

// Thread reset modes
const (
	RESET_MODE_RESUME = 0
	RESET_MODE_PAUSE  = 1
	RESET_MODE_KILL   = 2
)

var opcodeNames = [...]string{
	OP_MOV_CONST:      "movConst",
	OP_MOV:            "mov",
	OP_ADD:            "add",
	OP_ADD_CONST:      "addConst",
	OP_CALL:           "call",
	OP_RET:            "ret",
	OP_PAUSE_THREAD:   "pauseThread",
	OP_JMP:            "jmp",
	OP_SET_VECT:       "setVect",
	OP_JNZ:            "jnz",
	OP_COND_JMP:       "condJmp",
	OP_SET_PALETTE:    "setPalette",
	OP_RESET_THREAD:   "resetThread",
	OP_SELECT_PAGE:    "selectPage",
	OP_FILL_PAGE:      "fillPage",
	OP_COPY_PAGE:      "copyPage",
	OP_BLIT:           "blit",
	OP_KILL_THREAD:    "killThread",
	OP_DRAW_STRING:    "drawString",
	OP_SUB:            "sub",
	OP_AND:            "and",
	OP_OR:             "or",
	OP_SHL:            "shl",
	OP_SHR:            "shr",
	OP_PLAY_SOUND:     "playSound",
	OP_UPDATE_MEMLIST: "updateMemList",
	OP_PLAY_MUSIC:     "playMusic",
}

// opcodeName returns the mnemonic for op, or "" if op is not a plain opcode.
func opcodeName(op byte) string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return ""
}
