// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to float32 sample reads.
package pcm

import (
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/utils"
)

// IntDecoder is the part of the go-audio wav and aiff decoders used here.
type IntDecoder interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Reader converts integer PCM from an IntDecoder into float32 samples.
type Reader struct {
	// Bias is added to every raw sample before scaling. Unsigned 8-bit
	// input uses -128.
	Bias int

	dec      IntDecoder
	bitDepth int
	buf      *goaudio.IntBuffer
	done     bool
}

func NewReader(dec IntDecoder, bitDepth int) *Reader {
	return &Reader{dec: dec, bitDepth: bitDepth}
}

// Capacity is the size of the internal integer buffer.
func (r *Reader) Capacity() int {
	if r.buf == nil {
		return 4096
	}
	return cap(r.buf.Data)
}

// Read fills dst. A short read from the decoder is the end of the stream.
func (r *Reader) Read(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if r.done {
		return 0, io.EOF
	}

	if r.buf == nil || cap(r.buf.Data) < len(dst) {
		r.buf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         r.dec.Format(),
			SourceBitDepth: r.bitDepth,
		}
	} else {
		r.buf.Data = r.buf.Data[:len(dst)]
	}

	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && err != io.EOF {
		return 0, err
	}
	if n == 0 {
		r.done = true
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = utils.PCMToFloat32(r.buf.Data[i]+r.Bias, r.bitDepth)
	}

	if n < len(dst) || err == io.EOF {
		r.done = true
		return n, io.EOF
	}
	return n, nil
}
