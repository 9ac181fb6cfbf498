// frame_trace.go - CBOR frame trace recording and verification

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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/fxamacker/cbor/v2"
)

var traceEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("frame trace: failed to create CBOR enc mode: %v", err))
	}
	traceEncMode = em
}

// FrameRecord fingerprints the machine state at one present.
type FrameRecord struct {
	Frame   uint32 `cbor:"1,keyasint"`
	Part    uint16 `cbor:"2,keyasint"`
	VarsCRC uint32 `cbor:"3,keyasint"`
	PageCRC uint32 `cbor:"4,keyasint"`
}

// NewFrameRecord hashes vars and page into a record.
func NewFrameRecord(frame uint32, part uint16, vars *[NUM_VARIABLES]int16, page *Page) FrameRecord {
	var buf [NUM_VARIABLES * 2]byte
	for i, v := range vars {
		binary.BigEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return FrameRecord{
		Frame:   frame,
		Part:    part,
		VarsCRC: crc32.ChecksumIEEE(buf[:]),
		PageCRC: crc32.ChecksumIEEE(page.Data[:]),
	}
}

// TraceMismatch reports the first frame that diverged from a trace.
type TraceMismatch struct {
	Want FrameRecord
	Got  FrameRecord
}

func (e *TraceMismatch) Error() string {
	return fmt.Sprintf("trace mismatch at frame %d: want part=0x%04X vars=%08X page=%08X, got part=0x%04X vars=%08X page=%08X",
		e.Want.Frame, e.Want.Part, e.Want.VarsCRC, e.Want.PageCRC, e.Got.Part, e.Got.VarsCRC, e.Got.PageCRC)
}

// TraceRecorder appends one CBOR record per present.
type TraceRecorder struct {
	w     *bufio.Writer
	enc   *cbor.Encoder
	frame uint32
}

func NewTraceRecorder(w io.Writer) *TraceRecorder {
	bw := bufio.NewWriter(w)
	return &TraceRecorder{w: bw, enc: traceEncMode.NewEncoder(bw)}
}

func (r *TraceRecorder) Record(part uint16, vars *[NUM_VARIABLES]int16, page *Page) error {
	rec := NewFrameRecord(r.frame, part, vars, page)
	r.frame++
	return r.enc.Encode(rec)
}

func (r *TraceRecorder) Frames() uint32 { return r.frame }

func (r *TraceRecorder) Flush() error {
	return r.w.Flush()
}

// TraceVerifier compares presents against a recorded trace.
type TraceVerifier struct {
	dec   *cbor.Decoder
	frame uint32
	ended bool
}

func NewTraceVerifier(r io.Reader) *TraceVerifier {
	return &TraceVerifier{dec: cbor.NewDecoder(bufio.NewReader(r))}
}

// Verify checks the next present. Presents beyond the end of the trace
// are accepted.
func (v *TraceVerifier) Verify(part uint16, vars *[NUM_VARIABLES]int16, page *Page) error {
	got := NewFrameRecord(v.frame, part, vars, page)
	v.frame++
	if v.ended {
		return nil
	}
	var want FrameRecord
	if err := v.dec.Decode(&want); err != nil {
		if errors.Is(err, io.EOF) {
			v.ended = true
			return nil
		}
		return fmt.Errorf("read trace frame %d: %w", got.Frame, err)
	}
	if want != got {
		return &TraceMismatch{Want: want, Got: got}
	}
	return nil
}

func (v *TraceVerifier) Frames() uint32 { return v.frame }
func (v *TraceVerifier) Ended() bool { return v.ended }
