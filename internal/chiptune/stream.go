// Package chiptune synthesizes the square-wave background loop.
package chiptune

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
)

const (
	SampleRate = 44100
	noteLength = 8000 // samples per note
	amplitude  = 0.1
)

var notes = []float64{220, 261, 329, 392, 440, 523}

// Stream is an endless 16-bit little-endian stereo PCM source. Read runs on
// the audio goroutine; Freq and OnBeat are safe to call from the game loop.
type Stream struct {
	rng  *rand.Rand
	tick int
	freq float64
	beat int

	shownFreq atomic.Uint64 // math.Float64bits of freq
	shownBeat atomic.Bool
}

// NewStream returns a stream whose note sequence is fixed by seed.
func NewStream(seed uint64) *Stream {
	s := &Stream{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		freq: 440,
	}
	s.shownFreq.Store(math.Float64bits(s.freq))
	return s
}

// Read fills buf with whole stereo frames (4 bytes each).
func (s *Stream) Read(buf []byte) (int, error) {
	n := len(buf) - len(buf)%4
	for i := 0; i < n; i += 4 {
		s.tick++
		if s.tick%noteLength == 0 {
			s.freq = notes[s.rng.IntN(len(notes))]
			s.beat = 10
		}
		if s.beat > 0 {
			s.beat--
		}

		val := -amplitude
		phase := int(float64(s.tick) * s.freq * 2 * math.Pi / SampleRate)
		if phase%2 == 0 {
			val = amplitude
		}

		v := int16(val * math.MaxInt16)
		buf[i] = byte(v)
		buf[i+1] = byte(v >> 8)
		buf[i+2] = byte(v)
		buf[i+3] = byte(v >> 8)
	}
	s.shownFreq.Store(math.Float64bits(s.freq))
	s.shownBeat.Store(s.beat > 0)
	return n, nil
}

// Freq is the note at the end of the last Read, in Hz.
func (s *Stream) Freq() float64 { return math.Float64frombits(s.shownFreq.Load()) }

// OnBeat reports whether a note started shortly before the end of the last Read.
func (s *Stream) OnBeat() bool { return s.shownBeat.Load() }
