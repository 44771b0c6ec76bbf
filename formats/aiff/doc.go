// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format files with
// github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported with any channel count.
// The decoder library needs to seek, so input that is not an io.ReadSeeker
// is read fully into memory before parsing.
//
//	src, err := aiff.Decoder{Log: bridge}.Decode(f)
package aiff
