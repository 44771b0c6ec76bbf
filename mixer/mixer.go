// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Device is an opened audio output.
type Device interface {
	// SupportsNativeVolume reports whether SetVolume can be used.
	SupportsNativeVolume() bool
	// SetVolume sets the device's own volume control, per channel in [0,100].
	SetVolume(left, right float64) error
}

// FilterChain is the processing chain feeding a Device. SetGain installs or
// updates a per-channel gain stage; 1.0 is unity.
type FilterChain interface {
	SetGain(left, right float64) error
}

type namedDevice interface {
	Name() string
}

// ErrNoGainControl is returned by ReinitAudio when software volume is
// needed but no filter chain was supplied.
var ErrNoGainControl = errors.New("software volume requires a filter chain")

type binding struct {
	dev   Device
	chain FilterChain
	mode  Mode
	// inert is set once the device reports it lost native volume.
	inert atomic.Bool
}

func (b *binding) driver() string {
	if b.mode == ModeSoftware {
		return DriverSoftvol
	}
	if n, ok := b.dev.(namedDevice); ok {
		return n.Name()
	}
	return "native"
}

// Mixer holds the volume state of a player session and applies it to the
// currently bound device or filter chain.
//
// All methods are safe for concurrent use. Device and chain updates happen
// outside the internal lock, using a snapshot of the state.
type Mixer struct {
	mu      sync.Mutex
	state   VolumeState
	binding *binding

	step       float64
	softvolMax float64
	curve      GainCurve
	log        *zap.Logger
}

// New creates a Mixer. Out-of-range options are clamped.
func New(opts Options) *Mixer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	step := opts.VolumeStep
	if step <= 0 {
		step = DefaultOptions().VolumeStep
	}
	softvolMax := opts.SoftvolMax
	if softvolMax <= 0 {
		softvolMax = DefaultOptions().SoftvolMax
	}

	m := &Mixer{
		step:       clamp(step, 0.1, MaxVolume),
		softvolMax: clamp(softvolMax, 10, 1000),
		curve:      opts.Curve,
		log:        log.Named("mixer"),
	}
	m.state.Softvol = opts.Softvol
	m.state.Mute = opts.Mute
	m.state.Balance = clampBalance(opts.Balance)
	m.state.setCombined(opts.Volume)

	return m
}

// ReinitAudio binds the mixer to a newly opened device and its filter chain.
// Any previous binding is dropped first. The volume mechanism is chosen from
// the softvol mode and the device's capability, then the stored state is
// applied. The binding stays in place even when applying the state fails.
func (m *Mixer) ReinitAudio(dev Device, chain FilterChain) error {
	m.UninitAudio()

	native := dev != nil && dev.SupportsNativeVolume()

	m.mu.Lock()
	mode := ResolveMode(m.state.Softvol, native)
	if mode == ModeSoftware && chain == nil {
		m.mu.Unlock()
		return ErrNoGainControl
	}
	b := &binding{dev: dev, chain: chain, mode: mode}
	m.binding = b
	st := m.state
	m.mu.Unlock()

	m.log.Debug("audio bound",
		zap.Stringer("mode", mode),
		zap.Stringer("softvol", st.Softvol),
		zap.Bool("native", native),
	)

	return m.push(b, st)
}

// UninitAudio detaches the current binding, if any. The volume state is kept
// for the next ReinitAudio.
func (m *Mixer) UninitAudio() {
	m.mu.Lock()
	b := m.binding
	m.binding = nil
	m.mu.Unlock()

	if b != nil {
		m.log.Debug("audio unbound", zap.Stringer("mode", b.mode))
	}
}

// AudioInitialized reports whether a device is currently bound.
func (m *Mixer) AudioInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.binding != nil
}

// ActiveMode returns the mechanism of the current binding, or
// ErrNoActiveBinding.
func (m *Mixer) ActiveMode() (Mode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.binding == nil {
		return ModeSoftware, ErrNoActiveBinding
	}
	return m.binding.mode, nil
}

// State returns a copy of the volume state.
func (m *Mixer) State() VolumeState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Volume returns the stored per-channel volume, ignoring mute.
func (m *Mixer) Volume() (left, right float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.Left, m.state.Right
}

// SetVolume sets both channels directly. The balance is derived from their
// ratio. A muted mixer stays muted.
func (m *Mixer) SetVolume(left, right float64) error {
	return m.update(func(s *VolumeState) bool {
		s.setChannels(left, right)
		return true
	})
}

// BothVolume returns the combined volume for single-knob controls.
func (m *Mixer) BothVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.Combined()
}

// IncVolume raises the combined volume by one step.
func (m *Mixer) IncVolume() error { return m.stepVolume(m.step) }

// DecVolume lowers the combined volume by one step.
func (m *Mixer) DecVolume() error { return m.stepVolume(-m.step) }

func (m *Mixer) stepVolume(delta float64) error {
	return m.update(func(s *VolumeState) bool {
		c := s.Combined()
		target := clamp(c+delta, MinVolume, maxCombined(s.Balance))
		if math.Abs(target-c) < 1e-9 {
			return false
		}
		s.setCombined(target)
		return true
	})
}

// Balance returns the stored balance in [-1,1].
func (m *Mixer) Balance() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.Balance
}

// SetBalance stores bal (clamped to [-1,1]) and respreads the requested
// volume over both channels. Volume cut to keep the louder channel in range
// comes back when the balance moves toward center.
func (m *Mixer) SetBalance(bal float64) error {
	return m.update(func(s *VolumeState) bool {
		s.Balance = clampBalance(bal)
		s.spread()
		return true
	})
}

// Mute reports whether output is muted.
func (m *Mixer) Mute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.Mute
}

// SetMute changes the mute flag. Stored volumes are not touched.
func (m *Mixer) SetMute(mute bool) error {
	return m.update(func(s *VolumeState) bool {
		if s.Mute == mute {
			return false
		}
		s.Mute = mute
		return true
	})
}

// Softvol returns the configured softvol mode.
func (m *Mixer) Softvol() SoftvolMode {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.Softvol
}

// SetSoftvol changes the configured mode. It takes effect on the next
// ReinitAudio.
func (m *Mixer) SetSoftvol(mode SoftvolMode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Softvol = mode
}

// RestoreData returns a snapshot suitable for persisting.
func (m *Mixer) RestoreData() RestoreData {
	m.mu.Lock()
	defer m.mu.Unlock()

	driver := "none"
	if m.binding != nil {
		driver = m.binding.driver()
	}
	return RestoreData{
		Driver:  driver,
		Left:    m.state.Left,
		Right:   m.state.Right,
		Balance: m.state.Balance,
		Mute:    m.state.Mute,
	}
}

// VolumeRestoreData returns the RestoreData token as text.
func (m *Mixer) VolumeRestoreData() string {
	return m.RestoreData().String()
}

// LoadVolumeRestoreData applies a token produced by VolumeRestoreData.
func (m *Mixer) LoadVolumeRestoreData(token string) error {
	d, err := ParseRestoreData(token)
	if err != nil {
		return err
	}
	return m.Restore(d)
}

// Restore replaces the volume, balance and mute settings with d.
func (m *Mixer) Restore(d RestoreData) error {
	return m.update(func(s *VolumeState) bool {
		s.Left = clampVolume(d.Left)
		s.Right = clampVolume(d.Right)
		s.Balance = clampBalance(d.Balance)
		s.base = s.Combined()
		s.Mute = d.Mute
		return true
	})
}

// update runs fn under the lock and pushes the result when fn reports a
// change and a binding exists.
func (m *Mixer) update(fn func(s *VolumeState) bool) error {
	m.mu.Lock()
	if !fn(&m.state) {
		m.mu.Unlock()
		return nil
	}
	st := m.state
	b := m.binding
	m.mu.Unlock()

	return m.push(b, st)
}

func (m *Mixer) push(b *binding, st VolumeState) error {
	if b == nil || b.inert.Load() {
		return nil
	}

	left, right := st.Emitted()

	if b.mode == ModeSoftware {
		scale := m.softvolMax / MaxVolume
		gl := m.curve.Gain(left) * scale
		gr := m.curve.Gain(right) * scale
		if err := b.chain.SetGain(gl, gr); err != nil {
			m.log.Warn("filter gain update failed", zap.Error(err))
			return fmt.Errorf("set filter gain: %w", err)
		}
		return nil
	}

	err := b.dev.SetVolume(left, right)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDeviceVolumeUnsupported):
		b.inert.Store(true)
		m.log.Warn("device lost native volume control, ignoring volume changes until audio is reopened",
			zap.Error(err))
		return fmt.Errorf("set device volume: %w", err)
	case errors.Is(err, ErrDeviceVolumeIO):
		m.log.Warn("device volume update failed", zap.Error(err))
		return err
	default:
		m.log.Warn("device volume update failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrDeviceVolumeIO, err)
	}
}
