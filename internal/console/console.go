// SPDX-License-Identifier: EPL-2.0

// Package console implements the interactive volume commands of the player.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/ik5/audmix/mixer"
)

var (
	// ErrQuit is returned by Exec for the quit command.
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong arguments")
)

const help = `commands:
  +, -              raise or lower the volume one step
  volume L [R]      set the left and right volume (0-100)
  balance B         set the balance (-1 left .. 1 right)
  mute, unmute      set the mute flag
  toggle            flip the mute flag
  status            show the current state
  restore [TOKEN]   print the restore token, or load one
  help              show this text
  quit              stop playback
`

// Console runs text commands against a mixer and writes replies to out.
type Console struct {
	m   *mixer.Mixer
	out io.Writer
	log *zap.Logger
}

func New(m *mixer.Mixer, out io.Writer, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{m: m, out: out, log: log.Named("console")}
}

// Exec runs one command line. Empty lines are ignored. Errors from the mixer
// are returned after the state has been printed, since the change is kept.
func (c *Console) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "+", "up":
		err = c.m.IncVolume()
	case "-", "down":
		err = c.m.DecVolume()
	case "volume", "vol", "v":
		err = c.volume(args)
	case "balance", "bal", "b":
		err = c.balance(args)
	case "mute":
		err = c.m.SetMute(true)
	case "unmute":
		err = c.m.SetMute(false)
	case "toggle", "m":
		err = c.m.SetMute(!c.m.Mute())
	case "status", "s":
		c.status()
		return nil
	case "restore":
		return c.restore(args)
	case "help", "?":
		_, _ = io.WriteString(c.out, help)
		return nil
	case "quit", "exit", "q":
		return ErrQuit
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, ErrUsage) {
		return err
	}

	c.status()
	if err != nil {
		c.log.Debug("volume change not applied to device", zap.String("command", cmd), zap.Error(err))
	}
	return err
}

func (c *Console) volume(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: volume L [R]", ErrUsage)
	}

	left, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	right := left
	if len(args) == 2 {
		if right, err = strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
	}

	return c.m.SetVolume(left, right)
}

func (c *Console) balance(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: balance B", ErrUsage)
	}

	b, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return c.m.SetBalance(b)
}

func (c *Console) restore(args []string) error {
	switch len(args) {
	case 0:
		_, _ = fmt.Fprintln(c.out, c.m.VolumeRestoreData())
		return nil
	case 1:
		err := c.m.LoadVolumeRestoreData(args[0])
		if errors.Is(err, mixer.ErrInvalidRestoreData) {
			return err
		}
		c.status()
		return err
	default:
		return fmt.Errorf("%w: restore [TOKEN]", ErrUsage)
	}
}

func (c *Console) status() {
	st := c.m.State()

	mode := "unbound"
	if md, err := c.m.ActiveMode(); err == nil {
		mode = md.String()
	}

	mute := "off"
	if st.Mute {
		mute = "on"
	}

	_, _ = fmt.Fprintf(c.out, "volume %.1f/%.1f  balance %+.2f  mute %s  mode %s (softvol %s)\n",
		st.Left, st.Right, st.Balance, mute, mode, st.Softvol)
}

// Completer completes command names for readline.
func Completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("+"),
		readline.PcItem("-"),
		readline.PcItem("volume"),
		readline.PcItem("balance"),
		readline.PcItem("mute"),
		readline.PcItem("unmute"),
		readline.PcItem("toggle"),
		readline.PcItem("status"),
		readline.PcItem("restore"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// LineReader is the part of *readline.Instance used by Run.
type LineReader interface {
	Readline() (string, error)
}

// Run executes lines from rl until quit, end of input or interrupt. Command
// errors are reported to out and do not stop the loop.
func (c *Console) Run(rl LineReader) error {
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("read command: %w", err)
		}

		err = c.Exec(line)
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrUsage), errors.Is(err, mixer.ErrInvalidRestoreData):
			_, _ = fmt.Fprintf(c.out, "error: %v (try help)\n", err)
		case err != nil:
			_, _ = fmt.Fprintf(c.out, "warning: %v\n", err)
		}
	}
}
