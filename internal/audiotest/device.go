// SPDX-License-Identifier: EPL-2.0

package audiotest

import "sync"

// Device is a fake audio output that records native volume pushes.
// It satisfies mixer.Device without importing it.
type Device struct {
	mu      sync.Mutex
	name    string
	native  bool
	err     error
	volumes [][2]float64
}

// NewDevice creates a fake device. native controls SupportsNativeVolume.
func NewDevice(name string, native bool) *Device {
	return &Device{name: name, native: native}
}

func (d *Device) Name() string { return d.name }

func (d *Device) SupportsNativeVolume() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.native
}

// SetVolume records the call and returns the configured error.
func (d *Device) SetVolume(left, right float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.volumes = append(d.volumes, [2]float64{left, right})
	return d.err
}

// FailWith makes later SetVolume calls return err. nil clears it.
func (d *Device) FailWith(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// Volumes returns a copy of every SetVolume call so far.
func (d *Device) Volumes() [][2]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][2]float64(nil), d.volumes...)
}

// Chain is a fake filter chain that records gain updates.
type Chain struct {
	mu    sync.Mutex
	err   error
	gains [][2]float64
}

func NewChain() *Chain { return &Chain{} }

func (c *Chain) SetGain(left, right float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gains = append(c.gains, [2]float64{left, right})
	return c.err
}

func (c *Chain) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Gains returns a copy of every SetGain call so far.
func (c *Chain) Gains() [][2]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][2]float64(nil), c.gains...)
}
