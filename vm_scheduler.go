// vm_scheduler.go - Frame scheduling: part switches, staged thread requests, round robin

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

// InitForPart stops all sound, maps the part's resources and restarts
// execution with only thread 0 active at offset 0.
func (vm *VirtualMachine) InitForPart(part uint16) error {
	if vm.sound != nil {
		vm.sound.StopAll()
	}
	vm.vars[VAR_PART_INIT] = 0x14
	if err := vm.res.SetupPart(part); err != nil {
		return err
	}
	for i := range vm.threads {
		vm.threads[i] = Thread{PC: INACTIVE_THREAD}
	}
	vm.threads[0].PC = 0
	vmLog.Noticef("entering part 0x%04X", part)
	return nil
}

// ApplyPendingRequests performs a pending part switch, then commits every
// thread's staged pause state and program counter redirect.
func (vm *VirtualMachine) ApplyPendingRequests() error {
	if vm.pendingPart != 0 {
		part := vm.pendingPart
		vm.pendingPart = 0
		if err := vm.InitForPart(part); err != nil {
			return err
		}
	}
	for i := range vm.threads {
		t := &vm.threads[i]
		t.Paused = t.requestedPaused
		if t.hasRequestedPC {
			pc := t.requestedPC
			if pc == SET_INACTIVE_THREAD {
				pc = INACTIVE_THREAD
			}
			t.PC = pc
			t.hasRequestedPC = false
		}
	}
	return nil
}

// RunFrame gives every runnable thread one slice in ascending order. A
// slice ends when the thread yields; its resume offset is stored back.
func (vm *VirtualMachine) RunFrame() error {
	code := vm.res.Bytecode()
	for id := range vm.threads {
		t := &vm.threads[id]
		if t.Paused || t.PC == INACTIVE_THREAD {
			continue
		}
		vm.cursor.Reset(code, int(t.PC))
		vm.sp = 0
		vm.yield = false
		vm.threadID = id
		if err := vm.executeThread(); err != nil {
			return err
		}
		t.PC = uint16(vm.cursor.Pos())
	}
	return nil
}

// requestPC stages a program counter redirect for thread id. The last
// request in a frame wins; INACTIVE_THREAD stops the thread like
// SET_INACTIVE_THREAD does.
func (vm *VirtualMachine) requestPC(id int, pc uint16) {
	vm.threads[id].requestedPC = pc
	vm.threads[id].hasRequestedPC = true
}

// Step runs one host frame: pending requests, input, then thread slices.
func (vm *VirtualMachine) Step() (PlayerInput, error) {
	if err := vm.ApplyPendingRequests(); err != nil {
		return PlayerInput{}, err
	}
	var in PlayerInput
	if vm.platform != nil {
		in = vm.platform.PollInput()
	}
	vm.UpdatePlayerInput(in)
	if err := vm.RunFrame(); err != nil {
		return in, err
	}
	return in, nil
}
