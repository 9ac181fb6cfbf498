// lua_hooks.go - Lua debug hooks run once per host frame

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

	lua "github.com/yuin/gopher-lua"
)

// LuaHooks loads a user script that may define on_frame(n). The script
// sees getvar(i), setvar(i, v), part(), request_part(id) and log(msg).
type LuaHooks struct {
	L       *lua.LState
	vm      *VirtualMachine
	onFrame lua.LValue
}

// NewLuaHooks runs the script at path against vm.
func NewLuaHooks(path string, vm *VirtualMachine) (*LuaHooks, error) {
	h := &LuaHooks{L: lua.NewState(), vm: vm}
	h.register()
	if err := h.L.DoFile(path); err != nil {
		h.L.Close()
		return nil, fmt.Errorf("lua script %s: %w", path, err)
	}
	h.bind()
	return h, nil
}

// NewLuaHooksString runs script source directly.
func NewLuaHooksString(source string, vm *VirtualMachine) (*LuaHooks, error) {
	h := &LuaHooks{L: lua.NewState(), vm: vm}
	h.register()
	if err := h.L.DoString(source); err != nil {
		h.L.Close()
		return nil, fmt.Errorf("lua script: %w", err)
	}
	h.bind()
	return h, nil
}

func (h *LuaHooks) bind() {
	if fn := h.L.GetGlobal("on_frame"); fn.Type() == lua.LTFunction {
		h.onFrame = fn
	}
}

func (h *LuaHooks) register() {
	L := h.L
	L.SetGlobal("getvar", L.NewFunction(func(L *lua.LState) int {
		i := L.CheckInt(1)
		if i < 0 || i >= NUM_VARIABLES {
			L.ArgError(1, "variable index out of range")
			return 0
		}
		L.Push(lua.LNumber(h.vm.Var(uint8(i))))
		return 1
	}))
	L.SetGlobal("setvar", L.NewFunction(func(L *lua.LState) int {
		i := L.CheckInt(1)
		if i < 0 || i >= NUM_VARIABLES {
			L.ArgError(1, "variable index out of range")
			return 0
		}
		h.vm.SetVar(uint8(i), int16(L.CheckInt(2)))
		return 0
	}))
	L.SetGlobal("part", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(h.vm.CurrentPart()))
		return 1
	}))
	L.SetGlobal("request_part", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		if id < GAME_PART_FIRST || id > GAME_PART_LAST {
			L.ArgError(1, "unknown part")
			return 0
		}
		h.vm.RequestPart(uint16(id))
		return 0
	}))
	L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
		scriptLog.Notice(L.CheckString(1))
		return 0
	}))
}

// OnFrame calls on_frame(n) if the script defined it.
func (h *LuaHooks) OnFrame(frame uint64) error {
	if h.onFrame == nil {
		return nil
	}
	return h.L.CallByParam(lua.P{Fn: h.onFrame, NRet: 0, Protect: true}, lua.LNumber(frame))
}

func (h *LuaHooks) Close() {
	h.L.Close()
}
