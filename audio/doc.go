// SPDX-License-Identifier: EPL-2.0

// Package audio provides the stream primitives the filter chain is built from.
//
// Every stage implements Source and wraps another Source:
//   - Resampler changes the sample rate (cubic interpolation)
//   - MonoMixer downmixes to one channel
//   - Gain scales channels by factors that can change during playback
//
// Decoders for the container formats live under formats/ and are looked up
// through a Registry:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("song.wav")
//
// # Sample Format
//
// Samples are interleaved float32 values in [-1.0, 1.0]. A Gain factor above
// 1.0 may push samples outside that range; outputs clamp when converting to
// integer PCM.
//
// # Software Volume
//
// Gain is the software volume stage. It satisfies the mixer's FilterChain
// interface on its own:
//
//	g := audio.NewGain(src)
//	g.SetGain(0.5, 1.0) // left at half amplitude
//
// SetGain is safe to call while another goroutine reads from the stage.
//
// # Error Handling
//
// Stages return io.EOF once the stream is finished. Other errors come from
// the wrapped source:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // process buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
