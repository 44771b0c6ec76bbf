//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/ik5/audmix/audio"
)

// oto allows a single context per process.
var (
	otoOnce   sync.Once
	otoCtx    *oto.Context
	otoFormat Format
	otoErr    error
)

func otoContext(f Format) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   f.SampleRate,
			ChannelCount: f.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   100 * time.Millisecond,
		})
		if err != nil {
			otoErr = fmt.Errorf("%w: %w", ErrUnavailable, err)
			return
		}
		<-ready
		otoCtx, otoFormat = ctx, f
	})

	if otoErr != nil {
		return nil, otoErr
	}
	if otoFormat != f {
		return nil, fmt.Errorf("%w: speaker already opened at %v", ErrFormatMismatch, otoFormat)
	}
	return otoCtx, nil
}

// speaker plays through the system audio device. Its volume is the oto
// player volume, which has no balance; the mean of both channels is used.
type speaker struct {
	ctx    *oto.Context
	format Format
	log    *zap.Logger

	mu     sync.Mutex
	player *oto.Player
	volume float64
	// flattened is set once a balanced volume was reduced to its mean.
	flattened bool
}

// NewSpeaker opens the system audio device.
func NewSpeaker(f Format, log *zap.Logger) (Device, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, err := otoContext(f)
	if err != nil {
		return nil, err
	}

	return &speaker{ctx: ctx, format: f, log: log.Named("output"), volume: 1}, nil
}

func (s *speaker) Name() string               { return "speaker" }
func (s *speaker) Format() Format             { return s.format }
func (s *speaker) SupportsNativeVolume() bool { return true }

func (s *speaker) SetVolume(left, right float64) error {
	v := math.Max(0, math.Min(1, (left+right)/200))

	s.mu.Lock()
	defer s.mu.Unlock()

	if left != right && !s.flattened {
		s.flattened = true
		s.log.Debug("speaker volume has no balance, using the channel mean; use -softvol yes for balance",
			zap.Float64("left", left),
			zap.Float64("right", right),
		)
	}

	s.volume = v
	if s.player != nil {
		s.player.SetVolume(v)
	}
	return nil
}

func (s *speaker) Play(ctx context.Context, src audio.Source) error {
	if !s.format.matches(src) {
		return ErrFormatMismatch
	}

	r := &floatReader{src: src}

	s.mu.Lock()
	p := s.ctx.NewPlayer(r)
	p.SetVolume(s.volume)
	s.player = p
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.player = nil
		s.mu.Unlock()
		if err := p.Close(); err != nil {
			s.log.Warn("closing player", zap.Error(err))
		}
	}()

	p.Play()

	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-tick.C:
		}
	}

	if r.err != nil {
		return fmt.Errorf("read samples: %w", r.err)
	}
	return p.Err()
}

func (s *speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		s.player.Pause()
	}
	return nil
}

// floatReader serves a Source as little-endian float32 bytes.
type floatReader struct {
	src audio.Source
	buf []float32
	err error
}

func (r *floatReader) Read(p []byte) (int, error) {
	want := len(p) / 4
	if want == 0 {
		return 0, nil
	}
	if cap(r.buf) < want {
		r.buf = make([]float32, want)
	}

	n, err := r.src.ReadSamples(r.buf[:want])
	for i, v := range r.buf[:n] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	switch {
	case err == io.EOF:
		return n * 4, io.EOF
	case err != nil:
		r.err = err
		return n * 4, io.EOF
	}
	return n * 4, nil
}
