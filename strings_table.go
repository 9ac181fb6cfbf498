// strings_table.go - Message table for the drawString opcode

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
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed assets/strings_en.toml
var builtinStrings []byte

// StringTable resolves drawString ids to text.
type StringTable interface {
	Lookup(id uint16) (string, bool)
}

// MessageTable is a StringTable decoded from TOML. Keys under [strings]
// are ids written in any base strconv accepts ("0x181", "385").
type MessageTable struct {
	entries map[uint16]string
}

type messageFile struct {
	Strings map[string]string `toml:"strings"`
}

// ParseMessageTable decodes a TOML message table.
func ParseMessageTable(data []byte) (*MessageTable, error) {
	var f messageFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse message table: %w", err)
	}
	t := &MessageTable{entries: make(map[uint16]string, len(f.Strings))}
	for k, v := range f.Strings {
		id, err := strconv.ParseUint(k, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("message table key %q: %w", k, err)
		}
		t.entries[uint16(id)] = v
	}
	return t, nil
}

// LoadMessageTable reads path, or the built-in English table when path
// is empty.
func LoadMessageTable(path string) (*MessageTable, error) {
	if path == "" {
		return ParseMessageTable(builtinStrings)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return ParseMessageTable(data)
}

func (t *MessageTable) Lookup(id uint16) (string, bool) {
	s, ok := t.entries[id]
	return s, ok
}

func (t *MessageTable) Len() int { return len(t.entries) }
