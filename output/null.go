// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"sync"
	"time"

	"github.com/ik5/audmix/audio"
)

type NullOptions struct {
	// NativeVolume makes the device report a volume control of its own.
	NativeVolume bool
	// Realtime paces Play at the stream's sample rate instead of draining
	// the source as fast as possible.
	Realtime bool
}

// Null discards audio. It records every volume it is given.
type Null struct {
	format Format
	opts   NullOptions

	mu      sync.Mutex
	volumes [][2]float64
	volErr  error
	samples int64
}

func NewNull(f Format, opts NullOptions) *Null {
	return &Null{format: f, opts: opts}
}

func (n *Null) Name() string               { return "null" }
func (n *Null) Format() Format             { return n.format }
func (n *Null) SupportsNativeVolume() bool { return n.opts.NativeVolume }
func (n *Null) Close() error               { return nil }

// SetVolume records the pair, or returns the error set by FailVolume.
func (n *Null) SetVolume(left, right float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.volErr != nil {
		return n.volErr
	}
	n.volumes = append(n.volumes, [2]float64{left, right})
	return nil
}

// FailVolume makes later SetVolume calls return err. nil restores normal
// behaviour.
func (n *Null) FailVolume(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.volErr = err
}

// Volumes returns the recorded SetVolume calls.
func (n *Null) Volumes() [][2]float64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([][2]float64(nil), n.volumes...)
}

// Samples returns how many samples Play has consumed.
func (n *Null) Samples() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.samples
}

func (n *Null) Play(ctx context.Context, src audio.Source) error {
	if !n.format.matches(src) {
		return ErrFormatMismatch
	}

	perSample := time.Second / time.Duration(max(n.format.SampleRate*n.format.Channels, 1))

	return pump(ctx, src, func(buf []float32) error {
		n.mu.Lock()
		n.samples += int64(len(buf))
		n.mu.Unlock()

		if !n.opts.Realtime {
			return nil
		}

		t := time.NewTimer(perSample * time.Duration(len(buf)))
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	})
}
