// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
	"github.com/ik5/audmix/utils"
)

// Render plays src through m into memory and returns the interleaved 16-bit
// samples in format f. There is no native volume control, so the mixer's
// state is applied in software.
//
//	pcm16, err := audmix.Render(ctx, m, src, output.Format{SampleRate: 8000, Channels: 1})
func Render(ctx context.Context, m *mixer.Mixer, src audio.Source, f output.Format) ([]int16, error) {
	c := &capture{format: f}
	if err := Play(ctx, m, src, c); err != nil {
		return c.pcm16, err
	}
	return c.pcm16, nil
}

// capture is an in-memory output without a volume control of its own.
type capture struct {
	format output.Format
	pcm16  []int16
}

func (c *capture) Name() string                     { return "capture" }
func (c *capture) Format() output.Format            { return c.format }
func (c *capture) SupportsNativeVolume() bool       { return false }
func (c *capture) SetVolume(float64, float64) error { return mixer.ErrDeviceVolumeUnsupported }
func (c *capture) Close() error                     { return nil }

func (c *capture) Play(ctx context.Context, src audio.Source) error {
	// start with about two seconds and grow as needed
	if c.pcm16 == nil {
		c.pcm16 = make([]int16, 0, c.format.SampleRate*max(c.format.Channels, 1)*2)
	}
	buf := make([]float32, 4096-4096%max(src.Channels(), 1))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := src.ReadSamples(buf)
		if n > 0 {
			if cap(c.pcm16)-len(c.pcm16) < n {
				grown := make([]int16, len(c.pcm16), len(c.pcm16)+max(n, cap(c.pcm16)))
				copy(grown, c.pcm16)
				c.pcm16 = grown
			}

			start := len(c.pcm16)
			c.pcm16 = c.pcm16[:start+n]
			for i := range n {
				c.pcm16[start+i] = utils.Float32ToInt16(buf[i])
			}
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
