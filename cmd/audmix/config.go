// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
)

var errUsage = errors.New("usage: audmix [flags] <input>")

type config struct {
	Input    string
	Driver   string
	Output   string
	Rate     int
	Channels int

	Mixer mixer.Options
	// volumeSet is true when -volume, -balance or -mute was given, which
	// takes precedence over the state file.
	volumeSet bool

	StatePath   string
	Interactive bool
	Verbose     bool
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "audmix", "volume")
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		cfg     config
		softvol string
		curve   string
	)

	defaults := mixer.DefaultOptions()

	fs := flag.NewFlagSet("audmix", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), errUsage)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Driver, "ao", "speaker", "audio output: "+strings.Join(output.Drivers, ", "))
	fs.StringVar(&cfg.Output, "o", "-", "file for -ao wav; - writes to stdout")
	fs.IntVar(&cfg.Rate, "rate", 0, "output sample rate; 0 keeps the input rate")
	fs.IntVar(&cfg.Channels, "channels", 0, "output channels; 0 keeps the input layout")
	fs.Float64Var(&cfg.Mixer.Volume, "volume", defaults.Volume, "initial volume, 0-100")
	fs.Float64Var(&cfg.Mixer.Balance, "balance", 0, "initial balance, -1 (left) to 1 (right)")
	fs.BoolVar(&cfg.Mixer.Mute, "mute", false, "start muted")
	fs.StringVar(&softvol, "softvol", defaults.Softvol.String(), "software volume: no, yes or auto (the speaker's own volume has no balance)")
	fs.Float64Var(&cfg.Mixer.VolumeStep, "volstep", defaults.VolumeStep, "volume change per step")
	fs.Float64Var(&cfg.Mixer.SoftvolMax, "softvol-max", defaults.SoftvolMax, "software gain at full volume, in percent")
	fs.StringVar(&curve, "curve", defaults.Curve.String(), "software gain curve: linear or cubic")
	fs.StringVar(&cfg.StatePath, "state", defaultStatePath(), "volume state file; empty disables it")
	fs.BoolVar(&cfg.Interactive, "i", false, "read volume commands from the terminal while playing")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, errUsage
	}
	cfg.Input = fs.Arg(0)

	if !slices.Contains(output.Drivers, cfg.Driver) {
		return cfg, fmt.Errorf("%w: %q", output.ErrUnknownDriver, cfg.Driver)
	}

	var err error
	if cfg.Mixer.Softvol, err = mixer.ParseSoftvolMode(softvol); err != nil {
		return cfg, err
	}
	if cfg.Mixer.Curve, err = mixer.ParseGainCurve(curve); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "volume", "balance", "mute":
			cfg.volumeSet = true
		}
	})

	return cfg, nil
}
