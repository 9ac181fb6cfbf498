//go:build headless

// audio_backend_headless.go - Silent audio clock for headless builds

package main

import (
	"sync"
	"time"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:none")
}

const HEADLESS_AUDIO_TICK = 20 * time.Millisecond

// OtoPlayer without a device still drains the mixer in real time so
// one-shot channels finish as they would with audio output.
type OtoPlayer struct {
	mu      sync.Mutex
	mixer   *SampleMixer
	chunk   []float32
	stop    chan struct{}
	done    chan struct{}
	playing bool
}

func NewOtoPlayer(sampleRate int, mixer *SampleMixer) (*OtoPlayer, error) {
	n := sampleRate * int(HEADLESS_AUDIO_TICK/time.Millisecond) / 1000
	return &OtoPlayer{mixer: mixer, chunk: make([]float32, max(n, 1))}, nil
}

func (p *OtoPlayer) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		return
	}
	p.playing = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.drain(p.stop, p.done)
}

func (p *OtoPlayer) drain(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(HEADLESS_AUDIO_TICK)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.mixer.Mix(p.chunk)
		}
	}
}

func (p *OtoPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	close(p.stop)
	<-p.done
	p.playing = false
}

func (p *OtoPlayer) Close() { p.Stop() }

func (p *OtoPlayer) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
