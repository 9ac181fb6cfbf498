//go:build !headless

// audio_backend_oto.go - OTO v3 audio output for the sample mixer

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
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:oto")
}

// OtoPlayer streams the mixer to the default audio device as mono
// float32. oto pulls samples through Read on its own goroutine.
type OtoPlayer struct {
	mu      sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	mixer   *SampleMixer
	scratch []float32
	playing bool
}

func NewOtoPlayer(sampleRate int, mixer *SampleMixer) (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := &OtoPlayer{ctx: ctx, mixer: mixer}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read renders len(buf)/4 samples. Trailing bytes of a partial sample are
// left for the next call.
func (p *OtoPlayer) Read(buf []byte) (int, error) {
	n := len(buf) / 4
	if n == 0 {
		return 0, nil
	}
	if cap(p.scratch) < n {
		p.scratch = make([]float32, n)
	}
	samples := p.scratch[:n]
	p.mixer.Mix(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

func (p *OtoPlayer) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil && !p.playing {
		p.player.Play()
		p.playing = true
	}
}

func (p *OtoPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil && p.playing {
		p.player.Pause()
		p.playing = false
	}
}

func (p *OtoPlayer) Close() {
	p.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		if err := p.player.Close(); err != nil {
			audioLog.Warningf("closing audio player: %v", err)
		}
		p.player = nil
	}
}

func (p *OtoPlayer) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
