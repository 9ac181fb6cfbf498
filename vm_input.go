// vm_input.go - Player input mapping onto reserved VM variables

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

const (
	INPUT_MASK_RIGHT  = 0x01
	INPUT_MASK_LEFT   = 0x02
	INPUT_MASK_DOWN   = 0x04
	INPUT_MASK_UP     = 0x08
	INPUT_MASK_ACTION = 0x80

	KEY_BACKSPACE = 0x08
)

// UpdatePlayerInput publishes in to the scripts. Directions are written
// as -1/0/1 axes plus a bit mask; the password screen also receives the
// last typed character in upper case.
func (vm *VirtualMachine) UpdatePlayerInput(in PlayerInput) {
	if vm.res != nil && vm.res.CurrentPart() == GAME_PART_PASSWORD2 {
		c := in.LastChar
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c == KEY_BACKSPACE || c == 0 || (c >= 'a' && c <= 'z') {
			vm.vars[VAR_LAST_KEYCHAR] = int16(c &^ 0x20)
		}
	}

	var lr, ud int16
	var mask int16
	if in.Right {
		lr = 1
		mask |= INPUT_MASK_RIGHT
	}
	if in.Left {
		lr = -1
		mask |= INPUT_MASK_LEFT
	}
	if in.Down {
		ud = 1
		mask |= INPUT_MASK_DOWN
	}
	vm.vars[VAR_HERO_POS_UP_DOWN] = ud
	if in.Up {
		ud = -1
		vm.vars[VAR_HERO_POS_UP_DOWN] = ud
		mask |= INPUT_MASK_UP
	}
	vm.vars[VAR_HERO_POS_JUMP_DOWN] = ud
	vm.vars[VAR_HERO_POS_LEFT_RIGHT] = lr
	vm.vars[VAR_HERO_POS_MASK] = mask

	var action int16
	if in.Button {
		action = 1
		mask |= INPUT_MASK_ACTION
	}
	vm.vars[VAR_HERO_ACTION] = action
	vm.vars[VAR_HERO_ACTION_POS_MASK] = mask
}
