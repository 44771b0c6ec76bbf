// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/utils"
)

const wavBitDepth = 16

// WAVFile writes 16-bit PCM. Seekable writers go through the go-audio
// encoder, which fixes up chunk sizes on Close. Other writers get a header
// announcing an unknown length followed by raw samples.
type WAVFile struct {
	format Format
	w      io.Writer
	closer io.Closer

	mu      sync.Mutex
	enc     *gowav.Encoder
	started bool
	closed  bool
	ints    *goaudio.IntBuffer
	pcm16   []int16
}

// NewWAVFile writes to w. w is not closed by Close.
func NewWAVFile(w io.Writer, f Format) *WAVFile {
	d := &WAVFile{format: f, w: w}
	if ws, ok := w.(io.WriteSeeker); ok {
		d.enc = gowav.NewEncoder(ws, f.SampleRate, wavBitDepth, f.Channels, 1)
	}
	return d
}

// CreateWAVFile creates or truncates path. Close closes the file.
func CreateWAVFile(path string, f Format) (*WAVFile, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create wav output: %w", err)
	}
	d := NewWAVFile(fh, f)
	d.closer = fh
	return d, nil
}

func (d *WAVFile) Name() string               { return "wav" }
func (d *WAVFile) Format() Format             { return d.format }
func (d *WAVFile) SupportsNativeVolume() bool { return false }

func (d *WAVFile) SetVolume(float64, float64) error {
	return mixer.ErrDeviceVolumeUnsupported
}

func (d *WAVFile) Play(ctx context.Context, src audio.Source) error {
	if !d.format.matches(src) {
		return ErrFormatMismatch
	}
	return pump(ctx, src, d.write)
}

func (d *WAVFile) write(buf []float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	if d.enc != nil {
		return d.writeEncoded(buf)
	}

	if !d.started {
		if err := wav.WriteHeader16(d.w, d.format.SampleRate, d.format.Channels, 0xFFFFFFFF); err != nil {
			return err
		}
		d.started = true
	}

	if cap(d.pcm16) < len(buf) {
		d.pcm16 = make([]int16, len(buf))
	}
	d.pcm16 = d.pcm16[:len(buf)]
	for i, s := range buf {
		d.pcm16[i] = utils.Float32ToInt16(s)
	}
	return wav.WriteSamples16(d.w, d.pcm16)
}

func (d *WAVFile) writeEncoded(buf []float32) error {
	if d.ints == nil {
		d.ints = &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: d.format.Channels, SampleRate: d.format.SampleRate},
			SourceBitDepth: wavBitDepth,
		}
	}
	if cap(d.ints.Data) < len(buf) {
		d.ints.Data = make([]int, len(buf))
	}
	d.ints.Data = d.ints.Data[:len(buf)]
	for i, s := range buf {
		d.ints.Data[i] = utils.Float32ToPCM(s, wavBitDepth)
	}

	d.started = true
	if err := d.enc.Write(d.ints); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

// Close finishes the file. A stream that never received audio still gets a
// valid empty file.
func (d *WAVFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	var err error
	switch {
	case d.enc != nil:
		if !d.started {
			err = d.writeEncoded(nil)
		}
		if cerr := d.enc.Close(); err == nil {
			err = cerr
		}
	case !d.started:
		err = wav.WriteWAV16(d.w, d.format.SampleRate, d.format.Channels, nil)
	}

	if d.closer != nil {
		if cerr := d.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
