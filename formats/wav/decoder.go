// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/avlog"
	"github.com/ik5/audmix/internal/pcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
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
		return n, fmt.Errorf("wav: %w", err)
	}
	return n, err
}

// Decoder reads RIFF/WAVE files holding 8, 16, 24 or 32-bit integer PCM.
type Decoder struct {
	// Log receives decode diagnostics. May be nil.
	Log *avlog.Bridge
}

func (Decoder) LogClass() avlog.Class {
	return avlog.Class{Name: avlog.ClassFormat, Item: "wav", Demuxer: true}
}

// Decode parses the headers of r. Input that cannot seek is buffered in
// memory first.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		d.Log.Logf(d, avlog.LevelError, "invalid header: %v\n", err)
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}
	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		d.Log.Logf(d, avlog.LevelError, "audio format 0x%x not supported\n", dec.WavAudioFormat)
		return nil, ErrUnsupportedEncoding
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	reader := pcm.NewReader(dec, bitDepth)
	codec := fmt.Sprintf("pcm_s%dle", bitDepth)
	if bitDepth == 8 {
		reader.Bias = -128
		codec = "pcm_u8"
	}

	d.Log.Logf(d, avlog.LevelVerbose, "%s, %d Hz, %d channels\n", codec, dec.SampleRate, dec.NumChans)

	return &source{
		pcm:        reader,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		codec:      codec,
		log:        d.Log,
	}, nil
}
