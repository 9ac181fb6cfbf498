package main

import "testing"

func TestInput_Directions(t *testing.T) {
	tests := []struct {
		name               string
		in                 PlayerInput
		lr, ud, jump, mask int16
		action, actionMask int16
	}{
		{"idle", PlayerInput{}, 0, 0, 0, 0, 0, 0},
		{"right", PlayerInput{Right: true}, 1, 0, 0, INPUT_MASK_RIGHT, 0, INPUT_MASK_RIGHT},
		{"left", PlayerInput{Left: true}, -1, 0, 0, INPUT_MASK_LEFT, 0, INPUT_MASK_LEFT},
		{"down", PlayerInput{Down: true}, 0, 1, 1, INPUT_MASK_DOWN, 0, INPUT_MASK_DOWN},
		{"up", PlayerInput{Up: true}, 0, -1, -1, INPUT_MASK_UP, 0, INPUT_MASK_UP},
		{"button", PlayerInput{Button: true}, 0, 0, 0, 0, 1, INPUT_MASK_ACTION},
		{"up right fire", PlayerInput{Up: true, Right: true, Button: true}, 1, -1, -1,
			INPUT_MASK_UP | INPUT_MASK_RIGHT, 1, INPUT_MASK_UP | INPUT_MASK_RIGHT | INPUT_MASK_ACTION},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := newTestVM(t, pause)
			tv.vm.UpdatePlayerInput(tt.in)
			checks := []struct {
				v    uint8
				want int16
			}{
				{VAR_HERO_POS_LEFT_RIGHT, tt.lr},
				{VAR_HERO_POS_UP_DOWN, tt.ud},
				{VAR_HERO_POS_JUMP_DOWN, tt.jump},
				{VAR_HERO_POS_MASK, tt.mask},
				{VAR_HERO_ACTION, tt.action},
				{VAR_HERO_ACTION_POS_MASK, tt.actionMask},
			}
			for _, c := range checks {
				if got := tv.vm.Var(c.v); got != c.want {
					t.Fatalf("expected v%02X=%d, got %d", c.v, c.want, got)
				}
			}
		})
	}
}

func TestInput_PasswordCharacters(t *testing.T) {
	tests := []struct {
		name string
		char byte
		want int16
	}{
		{"lower case upper-cased", 'q', 'Q'},
		{"upper case kept", 'Z', 'Z'},
		{"backspace", KEY_BACKSPACE, KEY_BACKSPACE},
		{"nothing typed", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := newTestVM(t, pause)
			tv.loader.parts[GAME_PART_PASSWORD2] = tv.loader.parts[GAME_PART_INTRO]
			if err := tv.vm.InitForPart(GAME_PART_PASSWORD2); err != nil {
				t.Fatal(err)
			}
			tv.vm.SetVar(VAR_LAST_KEYCHAR, 0x55)
			tv.vm.UpdatePlayerInput(PlayerInput{LastChar: tt.char})
			if got := tv.vm.Var(VAR_LAST_KEYCHAR); got != tt.want {
				t.Fatalf("expected last key 0x%02X, got 0x%02X", tt.want, got)
			}
		})
	}
}

func TestInput_CharactersIgnoredOutsidePasswordScreen(t *testing.T) {
	tv := newTestVM(t, pause)
	tv.vm.SetVar(VAR_LAST_KEYCHAR, 0x55)
	tv.vm.UpdatePlayerInput(PlayerInput{LastChar: 'a'})
	if got := tv.vm.Var(VAR_LAST_KEYCHAR); got != 0x55 {
		t.Fatalf("expected last key untouched, got 0x%02X", got)
	}
}
