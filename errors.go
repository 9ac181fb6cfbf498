// errors.go - Error types shared by the VM, resource and video subsystems

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
	"errors"
	"fmt"
)

var (
	ErrStackOverflow   = errors.New("call stack overflow")
	ErrStackUnderflow  = errors.New("call stack underflow")
	ErrUnknownOpcode   = errors.New("unimplemented opcode")
	ErrRunawayThread   = errors.New("thread did not yield")
	ErrBadVertexCount  = errors.New("invalid polygon vertex count")
	ErrSegmentBounds   = errors.New("segment access out of range")
	ErrSegmentUnmapped = errors.New("segment not mapped")
	ErrHierarchyDepth  = errors.New("polygon hierarchy too deep")
	ErrUnknownResource = errors.New("unknown resource")
	ErrUnknownPart     = errors.New("unknown game part")
	ErrPackedResource  = errors.New("packed resource has no unpacked copy")
	ErrOutOfMemory     = errors.New("resource arena exhausted")
)

// VMError reports a fatal fault raised while a thread was executing
type VMError struct {
	Op     string // Operation that faulted
	Thread int    // Thread slot being executed
	PC     int    // Offset of the faulting instruction
	Opcode byte   // Opcode byte at PC
	Err    error  // Underlying cause
}

func (e *VMError) Error() string {
	return fmt.Sprintf("vm %s failed: thread=%d pc=0x%04X opcode=0x%02X: %v", e.Op, e.Thread, e.PC, e.Opcode, e.Err)
}

func (e *VMError) Unwrap() error { return e.Err }

// ResourceError reports a failure loading or addressing a resource entry
type ResourceError struct {
	Op   string // What was being attempted
	ID   uint16 // Resource or part identifier
	Path string // Backing file, if any
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("resource %s failed: id=0x%04X file=%s: %v", e.Op, e.ID, e.Path, e.Err)
	}
	return fmt.Sprintf("resource %s failed: id=0x%04X: %v", e.Op, e.ID, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
