// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ik5/audmix/audio"
)

// Options describe the format a Chain must produce. Zero values keep the
// source's rate or channel count.
type Options struct {
	SampleRate int
	Channels   int
	Logger     *zap.Logger
}

// Chain converts a decoded source to an output format:
//
//	source -> [resample] -> [downmix|upmix] -> [gain]
//
// The gain stage is only inserted by the first SetGain call and then stays
// for the life of the chain. SetGain may be called while another goroutine
// reads samples.
type Chain struct {
	head   audio.Source
	gain   atomic.Pointer[audio.Gain]
	stages []string
	log    *zap.Logger
}

// New builds a chain reading from src.
func New(src audio.Source, opts Options) (*Chain, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Chain{
		head:   src,
		stages: []string{"source"},
		log:    log.Named("filter"),
	}

	if opts.SampleRate > 0 && opts.SampleRate != src.SampleRate() {
		c.head = audio.NewResampler(c.head, opts.SampleRate)
		c.stages = append(c.stages, "resample")
	}

	in := c.head.Channels()
	switch out := opts.Channels; {
	case out <= 0 || out == in:
	case out == 1:
		c.head = audio.NewMonoMixer(c.head)
		c.stages = append(c.stages, "downmix")
	case in == 1:
		c.head = newUpmix(c.head, out)
		c.stages = append(c.stages, "upmix")
	default:
		return nil, fmt.Errorf("%w: %d to %d channels", ErrUnsupportedLayout, in, out)
	}

	c.log.Debug("chain built",
		zap.Strings("stages", c.stages),
		zap.Int("rate", c.head.SampleRate()),
		zap.Int("channels", c.head.Channels()),
	)

	return c, nil
}

// SetGain inserts the gain stage if needed and sets its factors.
func (c *Chain) SetGain(left, right float64) error {
	g := c.gain.Load()
	if g == nil {
		fresh := audio.NewGain(c.head)
		if c.gain.CompareAndSwap(nil, fresh) {
			c.log.Debug("gain stage inserted")
		}
		g = c.gain.Load()
	}
	return g.SetGain(left, right)
}

// HasGain reports whether the gain stage has been inserted.
func (c *Chain) HasGain() bool {
	return c.gain.Load() != nil
}

// Stages names the active stages in processing order.
func (c *Chain) Stages() []string {
	out := append([]string(nil), c.stages...)
	if c.HasGain() {
		out = append(out, "gain")
	}
	return out
}

func (c *Chain) tail() audio.Source {
	if g := c.gain.Load(); g != nil {
		return g
	}
	return c.head
}

func (c *Chain) SampleRate() int { return c.head.SampleRate() }
func (c *Chain) Channels() int   { return c.head.Channels() }
func (c *Chain) BufSize() int    { return c.head.BufSize() }

// Close closes the source through every stage.
func (c *Chain) Close() error { return c.head.Close() }

func (c *Chain) ReadSamples(dst []float32) (int, error) {
	return c.tail().ReadSamples(dst)
}
