// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/filter"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
)

// Player plays streams through a mixer. The zero value is ready to use.
type Player struct {
	Logger *zap.Logger
}

// Play converts src to the device format, binds the mixer to out and the
// chain, and streams until src ends or ctx is done. The mixer is always
// unbound before Play returns. src is not closed.
//
// Failing to apply the initial volume does not stop playback; the mixer
// logs it and retries on the next change.
func (p Player) Play(ctx context.Context, m *mixer.Mixer, src audio.Source, out output.Device) error {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	f := out.Format()
	chain, err := filter.New(src, filter.Options{
		SampleRate: f.SampleRate,
		Channels:   f.Channels,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("build filter chain: %w", err)
	}

	if err := m.ReinitAudio(out, chain); err != nil {
		if errors.Is(err, mixer.ErrNoGainControl) {
			return err
		}
		log.Warn("initial volume not applied", zap.Error(err))
	}
	defer m.UninitAudio()

	mode, _ := m.ActiveMode()
	log.Info("playback started",
		zap.String("device", out.Name()),
		zap.Stringer("format", f),
		zap.Stringer("volume_mode", mode),
		zap.Strings("filters", chain.Stages()),
	)

	if err := out.Play(ctx, chain); err != nil {
		return fmt.Errorf("play on %s: %w", out.Name(), err)
	}

	log.Info("playback finished", zap.String("device", out.Name()))
	return nil
}

// Play is Player{}.Play.
func Play(ctx context.Context, m *mixer.Mixer, src audio.Source, out output.Device) error {
	return Player{}.Play(ctx, m, src, out)
}
