// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/avlog"
	"github.com/ik5/audmix/internal/pcm"
)

type source struct {
	pcm        *pcm.Reader
	sampleRate int
	channels   int
	codec      string
	log        *avlog.Bridge
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return s.pcm.Capacity() }

func (s *source) LogClass() avlog.Class {
	return avlog.Class{Name: avlog.ClassCodec, Item: s.codec, Media: avlog.MediaAudio, Decoder: true}
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	n, err := s.pcm.Read(dst)
	if err != nil && err != io.EOF {
		s.log.Logf(s, avlog.LevelError, "read failed: %v\n", err)
		return n, fmt.Errorf("aiff: %w", err)
	}
	return n, err
}

// Decoder reads big-endian integer PCM from AIFF files.
type Decoder struct {
	// Log receives decode diagnostics. May be nil.
	Log *avlog.Bridge
}

func (Decoder) LogClass() avlog.Class {
	return avlog.Class{Name: avlog.ClassFormat, Item: "aiff", Demuxer: true}
}

// Decode parses the headers of r. go-audio needs to seek, so other readers
// are buffered in memory.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		d.Log.Log(d, avlog.LevelError, "missing FORM/COMM chunks\n")
		return nil, ErrNotAiffFile
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	codec := fmt.Sprintf("pcm_s%dbe", bitDepth)
	if bitDepth == 8 {
		codec = "pcm_s8"
	}
	d.Log.Logf(d, avlog.LevelVerbose, "%s, %d Hz, %d channels\n", codec, format.SampleRate, format.NumChannels)

	return &source{
		pcm:        pcm.NewReader(dec, bitDepth),
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		codec:      codec,
		log:        d.Log,
	}, nil
}
