// SPDX-License-Identifier: EPL-2.0

// Package filter assembles the processing chain between a decoder and an
// output device.
//
// A Chain is an audio.Source and also the gain control used by the mixer
// when volume is applied in software:
//
//	chain, err := filter.New(src, filter.Options{SampleRate: 48000, Channels: 2})
//	m.ReinitAudio(dev, chain)
package filter
