// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"sync/atomic"
)

// Gain scales the samples of src by a per-channel factor.
//
// Channel 0 uses the left factor and channel 1 the right one. Mono streams
// and any channel past the first two use the mean of both. The factors can be
// changed with SetGain while another goroutine reads from the stage.
type Gain struct {
	src Source
	// left and right float32 bits packed so both update together
	bits atomic.Uint64
}

func packGain(left, right float32) uint64 {
	return uint64(math.Float32bits(left))<<32 | uint64(math.Float32bits(right))
}

func unpackGain(v uint64) (left, right float32) {
	return math.Float32frombits(uint32(v >> 32)), math.Float32frombits(uint32(v))
}

// NewGain wraps src with unity gain.
func NewGain(src Source) *Gain {
	g := &Gain{src: src}
	g.bits.Store(packGain(1, 1))
	return g
}

func sanitizeGain(v float64) float32 {
	if v != v || v < 0 { // NaN or negative
		return 0
	}
	return float32(v)
}

// SetGain sets the left and right factors. 1.0 leaves samples unchanged.
// Negative and NaN factors are treated as 0.
func (g *Gain) SetGain(left, right float64) error {
	g.bits.Store(packGain(sanitizeGain(left), sanitizeGain(right)))
	return nil
}

// Factors returns the current left and right factors.
func (g *Gain) Factors() (left, right float64) {
	l, r := unpackGain(g.bits.Load())
	return float64(l), float64(r)
}

func (g *Gain) SampleRate() int { return g.src.SampleRate() }
func (g *Gain) Channels() int   { return g.src.Channels() }
func (g *Gain) BufSize() int    { return g.src.BufSize() }
func (g *Gain) Close() error    { return g.src.Close() }

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.src.ReadSamples(dst)
	if n == 0 {
		return 0, err
	}

	left, right := unpackGain(g.bits.Load())
	if left == 1 && right == 1 {
		return n, err
	}

	channels := g.src.Channels()
	mid := (left + right) * 0.5

	switch channels {
	case 1:
		for i := range n {
			dst[i] *= mid
		}
	case 2:
		for i := 0; i+1 < n; i += 2 {
			dst[i] *= left
			dst[i+1] *= right
		}
		if n%2 == 1 {
			dst[n-1] *= left
		}
	default:
		for i := range n {
			switch i % channels {
			case 0:
				dst[i] *= left
			case 1:
				dst[i] *= right
			default:
				dst[i] *= mid
			}
		}
	}

	return n, err
}
