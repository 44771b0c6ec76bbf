// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
)

func newMixer(volume float64) *mixer.Mixer {
	opts := mixer.DefaultOptions()
	opts.Volume = volume
	return mixer.New(opts)
}

func TestPlay_HardwareVolume(t *testing.T) {
	t.Parallel()

	m := newMixer(40)
	dev := output.NewNull(output.Format{SampleRate: 8000, Channels: 2}, output.NullOptions{NativeVolume: true})

	if err := Play(context.Background(), m, audiotest.NewSilentSource(8000, 2, 1000), dev); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if got := dev.Volumes(); len(got) != 1 || got[0] != [2]float64{40, 40} {
		t.Errorf("device volumes = %v, want [[40 40]]", got)
	}
	if dev.Samples() != 2000 {
		t.Errorf("device got %d samples, want 2000", dev.Samples())
	}
	if m.AudioInitialized() {
		t.Error("mixer still bound after Play")
	}
}

func TestPlay_SoftwareVolumeConvertsFormat(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	m := newMixer(100)
	dev := output.NewNull(output.Format{SampleRate: 16000, Channels: 1}, output.NullOptions{})

	p := Player{Logger: zap.New(core)}
	if err := p.Play(context.Background(), m, audiotest.NewSilentSource(8000, 2, 800), dev); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(dev.Volumes()) != 0 {
		t.Errorf("device volume set under software mode: %v", dev.Volumes())
	}

	started := logs.FilterMessage("playback started").All()
	if len(started) != 1 {
		t.Fatalf("got %d start entries, want 1", len(started))
	}
	if got := started[0].ContextMap()["volume_mode"]; got != "software" {
		t.Errorf("volume_mode = %v, want software", got)
	}
}

func TestPlay_VolumeIOErrorDoesNotStopPlayback(t *testing.T) {
	t.Parallel()

	m := newMixer(100)
	dev := output.NewNull(output.Format{SampleRate: 8000, Channels: 1}, output.NullOptions{NativeVolume: true})
	dev.FailVolume(mixer.ErrDeviceVolumeIO)

	if err := Play(context.Background(), m, audiotest.NewSilentSource(8000, 1, 100), dev); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if dev.Samples() != 100 {
		t.Errorf("device got %d samples, want 100", dev.Samples())
	}
}

func TestPlay_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newMixer(100)
	dev := output.NewNull(output.Format{SampleRate: 8000, Channels: 1}, output.NullOptions{})

	err := Play(ctx, m, audiotest.NewSilentSource(8000, 1, 100), dev)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Play() error = %v, want %v", err, context.Canceled)
	}
	if m.AudioInitialized() {
		t.Error("mixer still bound after a canceled Play")
	}
}

func TestPlay_UnsupportedLayout(t *testing.T) {
	t.Parallel()

	dev := output.NewNull(output.Format{SampleRate: 8000, Channels: 6}, output.NullOptions{})
	if err := Play(context.Background(), newMixer(100), audiotest.NewSilentSource(8000, 2, 10), dev); err == nil {
		t.Error("Play(stereo -> 6 channels) error = nil")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(m *mixer.Mixer)
		left  int16
		right int16
	}{
		{"full", func(*mixer.Mixer) {}, 16383, 16383},
		{"half", func(m *mixer.Mixer) { _ = m.SetVolume(50, 50) }, 8191, 8191},
		{"balance right", func(m *mixer.Mixer) { _ = m.SetVolume(0, 100) }, 0, 16383},
		{"muted", func(m *mixer.Mixer) { _ = m.SetMute(true) }, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMixer(100)
			tt.setup(m)

			pcm16, err := Render(context.Background(), m, audiotest.NewConstantSource(8000, 2, 100, 0.5),
				output.Format{SampleRate: 8000, Channels: 2})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if len(pcm16) != 200 {
				t.Fatalf("Render() = %d samples, want 200", len(pcm16))
			}
			if pcm16[0] != tt.left || pcm16[1] != tt.right {
				t.Errorf("first frame = %d/%d, want %d/%d", pcm16[0], pcm16[1], tt.left, tt.right)
			}
		})
	}
}

func TestRender_ResampleToMono(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 44100, 440)
	pcm16, err := Render(context.Background(), newMixer(100), src, output.Format{SampleRate: 8000, Channels: 1})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	const want, tolerance = 8000, 200
	if len(pcm16) < want-tolerance || len(pcm16) > want+tolerance {
		t.Errorf("Render() = %d samples, want about %d", len(pcm16), want)
	}
}
