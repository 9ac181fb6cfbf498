// vm.go - Cooperative 64 thread bytecode virtual machine

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
	"math/rand/v2"
)

// Thread is one bytecode execution context. Only the program counter and
// the paused flag survive between frames; requests are staged and applied
// at the next frame boundary.
type Thread struct {
	PC     uint16
	Paused bool

	requestedPC     uint16
	hasRequestedPC  bool
	requestedPaused bool
}

// VMOptions configures a new VirtualMachine.
type VMOptions struct {
	BypassProtection bool
	FastMode         bool
	Seed             int16 // 0 picks a random seed
}

// VirtualMachine executes the bytecode of the current game part.
type VirtualMachine struct {
	vars    [NUM_VARIABLES]int16
	threads [NUM_THREADS]Thread

	stack [STACK_SIZE]uint16
	sp    int

	cursor   Cursor
	threadID int
	yield    bool

	pendingPart uint16

	res      *ResourceMemory
	video    *VideoPages
	raster   *PolygonRasterizer
	text     *TextRenderer
	platform Platform
	sound    SoundDevice

	opts          VMOptions
	lastTimestamp uint64
	musicWarned   bool
}

// NewVirtualMachine wires a VM to its collaborators and seeds the
// reserved variables.
func NewVirtualMachine(res *ResourceMemory, video *VideoPages, platform Platform, opts VMOptions) *VirtualMachine {
	vm := &VirtualMachine{
		res:      res,
		video:    video,
		raster:   NewPolygonRasterizer(video),
		platform: platform,
		opts:     opts,
	}
	vm.Reset()
	return vm
}

// Reset clears every variable and thread and restores the boot values.
func (vm *VirtualMachine) Reset() {
	vm.vars = [NUM_VARIABLES]int16{}
	seed := vm.opts.Seed
	if seed == 0 {
		seed = int16(rand.IntN(0x10000))
	}
	vm.vars[VAR_RANDOM_SEED] = seed
	vm.vars[VAR_PROTECTION_CHECK] = 0x81
	if vm.opts.BypassProtection {
		vm.vars[VAR_PROTECTION_CODE_1] = 0x10
		vm.vars[VAR_PROTECTION_CODE_2] = 0x80
		vm.vars[VAR_PROTECTION_CODE_4] = 4000
		vm.vars[VAR_PROTECTION_CODE_3] = 33
	}
	for i := range vm.threads {
		vm.threads[i] = Thread{PC: INACTIVE_THREAD}
	}
	vm.sp = 0
	vm.pendingPart = 0
}

// SetSoundDevice routes playSound and part switch stops to d.
func (vm *VirtualMachine) SetSoundDevice(d SoundDevice) { vm.sound = d }

// SetTextRenderer supplies the drawString backend.
func (vm *VirtualMachine) SetTextRenderer(t *TextRenderer) { vm.text = t }

// SetFastMode turns blit pacing off or on.
func (vm *VirtualMachine) SetFastMode(on bool) { vm.opts.FastMode = on }

// Var returns variable i.
func (vm *VirtualMachine) Var(i uint8) int16 { return vm.vars[i] }

// SetVar stores v in variable i.
func (vm *VirtualMachine) SetVar(i uint8, v int16) { vm.vars[i] = v }

// Variables exposes the variable store for hashing and hooks.
func (vm *VirtualMachine) Variables() *[NUM_VARIABLES]int16 { return &vm.vars }

// Thread returns a copy of thread slot i.
func (vm *VirtualMachine) Thread(i int) Thread { return vm.threads[i] }

// CurrentPart is the part whose resources are mapped.
func (vm *VirtualMachine) CurrentPart() uint16 { return vm.res.CurrentPart() }

// PendingPart is the part staged for the next frame boundary, 0 if none.
func (vm *VirtualMachine) PendingPart() uint16 { return vm.pendingPart }

// RequestPart schedules a part switch for the next frame boundary.
func (vm *VirtualMachine) RequestPart(part uint16) {
	vm.pendingPart = part
}
