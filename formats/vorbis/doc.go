// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// Samples are produced as interleaved float32 in whole frames. Stream
// parameters are reported through the optional
// avlog.Bridge on the demuxer sink; decode errors go to the audio sink.
package vorbis
