// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with github.com/hajimehoshi/go-mp3.
//
// Output is always stereo at the stream's sample rate; mono files are
// duplicated to both channels by the decoder library.
//
//	src, err := mp3.Decoder{Log: bridge}.Decode(f)
//
// Decode fails with ErrNotMP3Stream when no frame header can be found. A
// corrupt stream reports its first decode error through the Bridge once and
// returns it on every following read.
package mp3
