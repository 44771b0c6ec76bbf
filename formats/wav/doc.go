// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE audio.
//
// Decoding is done by github.com/go-audio/wav and accepts integer PCM at 8,
// 16, 24 or 32 bits, any channel count and any sample rate. Input that is
// not an io.ReadSeeker is buffered in memory. Samples come out as float32 in
// [-1,1].
//
//	src, err := wav.Decoder{Log: bridge}.Decode(f)
//
// The Decoder and the sources it returns implement avlog.Object; header
// details and read failures are reported through the optional Bridge.
//
// WriteWAV16 writes a complete 16-bit file in one call. WriteHeader16 and
// WriteSamples16 write the same layout incrementally for outputs that cannot
// seek back to patch sizes.
package wav
