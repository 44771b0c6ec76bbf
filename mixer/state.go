// SPDX-License-Identifier: EPL-2.0

package mixer

const (
	MinVolume = 0.0
	MaxVolume = 100.0
)

// VolumeState is the logical loudness setting, independent of any device.
type VolumeState struct {
	Left    float64
	Right   float64
	Balance float64
	Mute    bool
	Softvol SoftvolMode

	// base is the requested combined volume before the balance limit.
	base float64
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampVolume(v float64) float64  { return clamp(v, MinVolume, MaxVolume) }
func clampBalance(b float64) float64 { return clamp(b, -1, 1) }

// Combined is the single-knob volume: the mean of both channels.
func (s VolumeState) Combined() float64 {
	return (s.Left + s.Right) / 2
}

// setChannels stores a direct per-channel volume and derives the balance
// from the channel ratio. Silence keeps the previous balance.
func (s *VolumeState) setChannels(left, right float64) {
	s.Left = clampVolume(left)
	s.Right = clampVolume(right)
	if sum := s.Left + s.Right; sum > 0 {
		s.Balance = (s.Right - s.Left) / sum
	}
	s.base = s.Combined()
}

// maxCombined is the highest combined volume for which neither channel
// exceeds MaxVolume at balance b.
func maxCombined(b float64) float64 {
	if b < 0 {
		b = -b
	}
	return MaxVolume / (1 + b)
}

// setCombined records c as the requested volume and spreads it over both
// channels using the stored balance. The balance itself is left untouched.
func (s *VolumeState) setCombined(c float64) {
	s.base = clampVolume(c)
	s.spread()
}

// spread derives both channels from base, limited so the louder channel
// stays within MaxVolume.
func (s *VolumeState) spread() {
	b := s.Balance
	c := clamp(s.base, MinVolume, maxCombined(b))
	s.Left = c * (1 - b)
	s.Right = c * (1 + b)
}

// Emitted returns the channel volumes that should reach the output.
func (s VolumeState) Emitted() (left, right float64) {
	if s.Mute {
		return 0, 0
	}
	return s.Left, s.Right
}
