// Package mpeg recognizes MP3 containers by their leading bytes.
// It does not decode audio.
package mpeg

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MPEG-1 Layer III constants used for synthesized frames
const (
	SampleRate   = 44100 // Hz
	Bitrate      = 128000
	FrameSamples = 1152
	FrameSize    = FrameSamples / 8 * Bitrate / SampleRate // 417 bytes, no padding

	headerSize = 10 // ID3v2 header and the bytes needed to check a frame header
)

// ErrNotMPEG is returned when a file starts with neither an ID3v2 tag nor
// an MPEG audio frame header.
var ErrNotMPEG = errors.New("no ID3v2 tag or MPEG frame header")

// Probe checks the first bytes of r.
// Accepted: a well-formed ID3v2.2-2.4 header, or an MPEG audio frame header
// (11-bit sync, no reserved version/layer/bitrate/sample-rate values).
func Probe(r io.Reader) error {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty file", ErrNotMPEG)
		}
		return err
	}
	buf = buf[:n]

	if isID3Header(buf) || isFrameHeader(buf) {
		return nil
	}
	return ErrNotMPEG
}

// ProbeFile opens path read-only and runs Probe on it.
func ProbeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Probe(f)
}

func isID3Header(b []byte) bool {
	if len(b) < headerSize || string(b[0:3]) != "ID3" {
		return false
	}
	// major version 2, 3 or 4; revision never 0xFF
	if b[3] < 2 || b[3] > 4 || b[4] == 0xFF {
		return false
	}
	// tag size is syncsafe: high bit of each byte clear
	for _, c := range b[6:10] {
		if c&0x80 != 0 {
			return false
		}
	}
	return true
}

func isFrameHeader(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return false
	}
	version := (b[1] >> 3) & 0x03
	layer := (b[1] >> 1) & 0x03
	bitrate := b[2] >> 4
	rate := (b[2] >> 2) & 0x03
	return version != 0x01 && layer != 0x00 && bitrate != 0x0F && rate != 0x03
}

// SilentFrames creates n MPEG-1 Layer III frames (128 kbps, 44.1 kHz,
// joint stereo) with zeroed side info and main data.
// This is a pure function: frame count → raw MP3 bytes without a tag.
func SilentFrames(n int) []byte {
	if n < 0 {
		n = 0
	}
	out := make([]byte, n*FrameSize)
	for i := 0; i < n; i++ {
		frame := out[i*FrameSize : (i+1)*FrameSize]
		frame[0] = 0xFF
		frame[1] = 0xFB // sync, MPEG-1, Layer III, no CRC
		frame[2] = 0x90 // 128 kbps, 44.1 kHz, no padding
		frame[3] = 0x44 // joint stereo
	}
	return out
}
