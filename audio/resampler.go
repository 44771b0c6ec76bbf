// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. Channel count is preserved. When downsampling, input frames
// pass through a one-pole low-pass first.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// window[1] and window[2] bracket the output position; window[0] and
	// window[3] are the outer interpolation points.
	window [4][]float32
	filled [4]bool
	primed bool

	pos      float64
	frame    []float32
	eof      bool
	lowState []float32
	lowPass  bool
}

const lowPassAlpha = 0.5

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float32, channels),
		lowState: make([]float32, channels),
		lowPass:  step > 1,
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one input frame into r.frame, filtering it when
// downsampling. ok is false when no frame was available.
func (r *Resampler) readFrame() (ok bool, err error) {
	n, err := r.src.ReadSamples(r.frame)
	if n > 0 && r.lowPass {
		for c := range r.channels {
			r.frame[c] = lowPassAlpha*r.frame[c] + (1-lowPassAlpha)*r.lowState[c]
			r.lowState[c] = r.frame[c]
		}
	}
	if err != nil && err != io.EOF {
		return n > 0, fmt.Errorf("%w", err)
	}
	if err == io.EOF {
		r.eof = true
	}
	return n > 0, nil
}

// prime fills the whole window. The last frame is repeated when the source
// is shorter than four frames.
func (r *Resampler) prime() error {
	r.primed = true
	for i := range r.window {
		if r.eof {
			if i == 0 {
				return io.EOF
			}
			copy(r.window[i], r.window[i-1])
			r.filled[i] = true
			continue
		}

		if i == 0 && r.lowPass {
			// seed the filter with the first frame to avoid a fade-in
			n, err := r.src.ReadSamples(r.frame)
			if n > 0 {
				copy(r.lowState, r.frame)
				copy(r.window[0], r.frame)
				r.filled[0] = true
			}
			if err == io.EOF {
				r.eof = true
			} else if err != nil {
				return fmt.Errorf("%w", err)
			}
			if n == 0 && r.eof {
				return io.EOF
			}
			continue
		}

		ok, err := r.readFrame()
		if err != nil {
			return err
		}
		if !ok {
			if i == 0 {
				return io.EOF
			}
			copy(r.window[i], r.window[i-1])
		} else {
			copy(r.window[i], r.frame)
		}
		r.filled[i] = true
	}
	return nil
}

// advance shifts the window by one input frame.
func (r *Resampler) advance() error {
	if r.eof && !r.filled[3] {
		return io.EOF
	}

	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.filled[:], r.filled[1:])
	r.filled[3] = false

	if r.eof {
		if !r.filled[2] {
			return io.EOF
		}
		return nil
	}

	ok, err := r.readFrame()
	if err != nil {
		return err
	}
	if ok {
		copy(r.window[3], r.frame)
		r.filled[3] = true
	} else if !r.filled[2] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces interleaved samples at the target rate.
// len(dst) must be a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return r.finish(written)
				}
				return written * r.channels, err
			}
		}

		if !r.filled[1] || !r.filled[2] {
			return r.finish(written)
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			y0 := r.window[1][c]
			if r.filled[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.filled[3] {
				y3 = r.window[3][c]
			}
			out[c] = utils.CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}

func (r *Resampler) finish(written int) (int, error) {
	if written == 0 {
		return 0, io.EOF
	}
	return written * r.channels, io.EOF
}
