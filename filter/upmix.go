// SPDX-License-Identifier: EPL-2.0

package filter

import "github.com/ik5/audmix/audio"

// upmix copies a mono stream to every output channel.
type upmix struct {
	src      audio.Source
	channels int
	buf      []float32
}

func newUpmix(src audio.Source, channels int) *upmix {
	return &upmix{src: src, channels: channels}
}

func (u *upmix) SampleRate() int { return u.src.SampleRate() }
func (u *upmix) Channels() int   { return u.channels }
func (u *upmix) BufSize() int    { return u.src.BufSize() * u.channels }
func (u *upmix) Close() error    { return u.src.Close() }

func (u *upmix) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / u.channels
	if frames == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if cap(u.buf) < frames {
		u.buf = make([]float32, frames)
	}
	mono := u.buf[:frames]

	n, err := u.src.ReadSamples(mono)
	for i := range n {
		for c := range u.channels {
			dst[i*u.channels+c] = mono[i]
		}
	}
	return n * u.channels, err
}
