// audio_mixer.go - Four channel sample playback for the playSound opcode

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
	"encoding/binary"
	"fmt"
	"sync"
)

const (
	NUM_SOUND_CHANNELS = 4
	MAX_SOUND_VOLUME   = 0x3F
	SOUND_HEADER_SIZE  = 8
	MIXER_FRAC_BITS    = 8
)

// frequencyTable holds the playback rate in Hz for each playSound pitch index.
var frequencyTable = [...]uint16{
	0x0CFF, 0x0DC3, 0x0E91, 0x0F6F, 0x1056, 0x114E, 0x1259, 0x136C,
	0x149F, 0x15D9, 0x1726, 0x1888, 0x19FD, 0x1B86, 0x1D21, 0x1EDE,
	0x20AB, 0x229C, 0x24B3, 0x26D7, 0x293F, 0x2BB2, 0x2E4C, 0x3110,
	0x33FB, 0x370D, 0x3A43, 0x3DDF, 0x4157, 0x4538, 0x4998, 0x4DAE,
	0x5240, 0x5764, 0x5C9A, 0x61C8, 0x6793, 0x6E19, 0x7485, 0x7BBD,
}

// SoundSample is a signed 8-bit sample with an optional loop tail.
type SoundSample struct {
	Data    []int8
	LoopPos int
	LoopLen int
}

// ParseSoundSample decodes a sound resource. The header holds the one-shot
// and loop lengths in words; sample data starts after eight bytes.
func ParseSoundSample(res []byte) (SoundSample, error) {
	if len(res) < SOUND_HEADER_SIZE {
		return SoundSample{}, fmt.Errorf("sound resource too short: %d bytes", len(res))
	}
	length := int(binary.BigEndian.Uint16(res[0:2])) * 2
	loopLen := int(binary.BigEndian.Uint16(res[2:4])) * 2
	total := length + loopLen
	if SOUND_HEADER_SIZE+total > len(res) {
		return SoundSample{}, fmt.Errorf("sound resource truncated: need %d bytes, have %d", SOUND_HEADER_SIZE+total, len(res))
	}
	s := SoundSample{Data: make([]int8, total)}
	for i, b := range res[SOUND_HEADER_SIZE : SOUND_HEADER_SIZE+total] {
		s.Data[i] = int8(b)
	}
	if loopLen > 0 {
		s.LoopPos = length
		s.LoopLen = loopLen
	}
	return s, nil
}

// SoundDevice plays samples on numbered channels.
type SoundDevice interface {
	PlayChannel(channel uint8, sample SoundSample, freq uint16, volume uint8)
	StopChannel(channel uint8)
	StopAll()
}

type mixerChannel struct {
	active bool
	sample SoundSample
	pos    uint32 // Fixed point, MIXER_FRAC_BITS fraction
	inc    uint32
	volume uint8
}

// SampleMixer mixes the sound channels into mono float32 output. It is
// driven by the audio backend's reader goroutine.
type SampleMixer struct {
	mu         sync.Mutex
	channels   [NUM_SOUND_CHANNELS]mixerChannel
	sampleRate int
}

func NewSampleMixer(sampleRate int) *SampleMixer {
	return &SampleMixer{sampleRate: sampleRate}
}

func (m *SampleMixer) PlayChannel(channel uint8, sample SoundSample, freq uint16, volume uint8) {
	if volume > MAX_SOUND_VOLUME {
		volume = MAX_SOUND_VOLUME
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[channel&3] = mixerChannel{
		active: len(sample.Data) > 0,
		sample: sample,
		inc:    uint32(freq) << MIXER_FRAC_BITS / uint32(m.sampleRate),
		volume: volume,
	}
}

func (m *SampleMixer) StopChannel(channel uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[channel&3].active = false
}

func (m *SampleMixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.channels {
		m.channels[i].active = false
	}
}

// Mix fills out with the next len(out) samples.
func (m *SampleMixer) Mix(out []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range out {
		var acc int
		for c := range m.channels {
			ch := &m.channels[c]
			if !ch.active {
				continue
			}
			idx := int(ch.pos >> MIXER_FRAC_BITS)
			if idx >= len(ch.sample.Data) {
				if ch.sample.LoopLen == 0 {
					ch.active = false
					continue
				}
				idx = ch.sample.LoopPos + (idx-ch.sample.LoopPos)%ch.sample.LoopLen
				ch.pos = uint32(idx)<<MIXER_FRAC_BITS | ch.pos&(1<<MIXER_FRAC_BITS-1)
			}
			acc += int(ch.sample.Data[idx]) * int(ch.volume) / MAX_SOUND_VOLUME
			ch.pos += ch.inc
		}
		out[i] = float32(acc) / (128 * NUM_SOUND_CHANNELS)
	}
}

// ActiveChannels reports how many channels are playing.
func (m *SampleMixer) ActiveChannels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ch := range m.channels {
		if ch.active {
			n++
		}
	}
	return n
}
