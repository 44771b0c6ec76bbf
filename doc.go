// SPDX-License-Identifier: EPL-2.0

// Package audmix plays decoded audio through a volume mixer.
//
// The mixer (package mixer) keeps volume, balance and mute for the whole
// session and applies them either through the output device's own volume
// control or through a gain stage in the filter chain, whichever the device
// and the softvol setting allow. Play wires the pieces together for one
// stream:
//
//	m := mixer.New(mixer.DefaultOptions())
//	dec, _ := formats.NewRegistry(nil).ForPath("song.ogg")
//	src, _ := dec.Decode(f)
//	dev, _ := output.Open("speaker", output.Format{SampleRate: 48000, Channels: 2}, "", log)
//	err := audmix.Play(ctx, m, src, dev)
//
// While Play runs, any goroutine may change the volume through the mixer.
// When Play returns the mixer is unbound from the device but keeps its
// state for the next stream.
//
// # Packages
//
//   - mixer: volume state, hardware/software arbitration, restore data
//   - audio: Source interface, decoder registry, resampler, downmix, gain
//   - filter: processing chain between decoder and device
//   - formats/...: WAV, MP3, Ogg Vorbis and AIFF decoders
//   - output: null, WAV file and speaker devices
//   - avlog: routes decoder diagnostics to a zap logger
package audmix
