// SPDX-License-Identifier: EPL-2.0

package mixer

import "go.uber.org/zap"

// Options configures a Mixer. Zero values are replaced by defaults where
// noted; use DefaultOptions as a starting point.
type Options struct {
	// Volume is the initial volume for both channels, in [0,100].
	Volume float64
	// Balance is the initial balance, in [-1,1].
	Balance float64
	Mute    bool
	Softvol SoftvolMode
	// VolumeStep is the amount IncVolume and DecVolume move the combined
	// volume. Defaults to 3.
	VolumeStep float64
	// SoftvolMax scales software gain: 100 means unity at full volume,
	// 200 allows doubling. Defaults to 100.
	SoftvolMax float64
	Curve      GainCurve
	Logger     *zap.Logger
}

// DefaultOptions returns full volume, centered balance and automatic softvol.
func DefaultOptions() Options {
	return Options{
		Volume:     MaxVolume,
		Softvol:    SoftvolAuto,
		VolumeStep: 3,
		SoftvolMax: 100,
		Curve:      CurveLinear,
	}
}
