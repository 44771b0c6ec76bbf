// SPDX-License-Identifier: EPL-2.0

// Command audmix plays an audio file through the volume mixer.
//
//	audmix -volume 60 -softvol auto song.ogg
//	audmix -ao wav -o quiet.wav -volume 30 -softvol yes song.mp3
//	audmix -i song.wav    # +, -, volume, balance, mute ... while playing
//
// The last volume, balance and mute state is saved on exit and restored on
// the next run unless one of -volume, -balance or -mute is given.
package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/avlog"
	"github.com/ik5/audmix/formats"
	"github.com/ik5/audmix/internal/console"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case err != nil:
		fmt.Fprintln(stderr, err)
		return 2
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintln(stderr, "logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	bridge := avlog.New()
	bridge.SetFallback(stderr)
	bridge.Attach(log)
	defer bridge.Detach(log)

	if cfg.Verbose {
		avlog.LogVersions(log)
	}

	if err := play(ctx, cfg, log, bridge); err != nil {
		log.Error("playback failed", zap.String("input", cfg.Input), zap.Error(err))
		return 1
	}
	return 0
}

func play(ctx context.Context, cfg config, log *zap.Logger, bridge *avlog.Bridge) error {
	opts := cfg.Mixer
	opts.Logger = log
	m := mixer.New(opts)

	if !cfg.volumeSet {
		restored, err := loadState(m, cfg.StatePath)
		if err != nil {
			log.Warn("ignoring saved volume", zap.Error(err))
		} else if restored {
			log.Debug("volume restored", zap.String("state", m.VolumeRestoreData()))
		}
	}
	defer func() {
		if err := saveState(m, cfg.StatePath); err != nil {
			log.Warn("volume not saved", zap.Error(err))
		}
	}()

	dec, err := formats.NewRegistry(bridge).ForPath(cfg.Input)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", cfg.Input, err)
	}
	defer src.Close()

	format := output.Format{
		SampleRate: cmp.Or(cfg.Rate, src.SampleRate()),
		Channels:   cmp.Or(cfg.Channels, src.Channels()),
	}
	dev, err := output.Open(cfg.Driver, format, cfg.Output, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Warn("closing output", zap.String("device", dev.Name()), zap.Error(err))
		}
	}()

	player := audmix.Player{Logger: log}

	if !cfg.Interactive {
		return ignoreCanceled(player.Play(ctx, m, src, dev))
	}
	return interactive(ctx, player, m, src, dev, log)
}

// interactive plays in the background while the console reads commands.
// Either side finishing stops the other.
func interactive(ctx context.Context, player audmix.Player, m *mixer.Mixer, src audio.Source, dev output.Device, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "audmix> ",
		AutoComplete: console.Completer(),
		Stdout:       os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("open console: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- player.Play(ctx, m, src, dev)
		_ = rl.Close()
	}()

	con := console.New(m, rl.Stdout(), log)
	if err := con.Run(rl); err != nil {
		log.Debug("console stopped", zap.Error(err))
	}

	cancel()
	return ignoreCanceled(<-done)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
