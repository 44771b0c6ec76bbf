// SPDX-License-Identifier: EPL-2.0

// Package mixer keeps the logical volume of a playback session and applies it
// to whatever audio output is currently open.
//
// A Mixer outlives devices. The player binds it to each newly opened output
// with ReinitAudio and detaches with UninitAudio; volume, balance and mute
// changes made while nothing is bound are stored and applied on the next bind.
//
// # Hardware and software volume
//
// Each binding uses one mechanism, chosen by ResolveMode from the configured
// SoftvolMode and the device's capability:
//
//   - SoftvolYes always scales samples through FilterChain.SetGain
//   - SoftvolNo and SoftvolAuto use Device.SetVolume when the device supports
//     it and fall back to the filter chain otherwise
//
// The choice is made only at bind time. A device that loses its native
// control mid-session (ErrDeviceVolumeUnsupported) leaves the binding inert
// until the next ReinitAudio.
//
// # Volume and balance
//
// Left and right volumes are percentages in [0,100]. Balance is in [-1,1] and
// relates to the channels as
//
//	left  = c * (1 - balance)
//	right = c * (1 + balance)
//
// where c is the combined volume reported by BothVolume. Out-of-range input is
// clamped, never rejected.
//
// # Persistence
//
// VolumeRestoreData returns a text token that LoadVolumeRestoreData accepts:
//
//	token := m.VolumeRestoreData() // "v1:softvol:50:100:0.3333333333333333:0"
//	...
//	err := m.LoadVolumeRestoreData(token)
package mixer
