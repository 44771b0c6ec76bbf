// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/avlog"
)

type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns the count of
	// values written.
	Read(p []float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	log        *avlog.Bridge
	failed     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) LogClass() avlog.Class {
	return avlog.Class{Name: avlog.ClassCodec, Item: "vorbis", Media: avlog.MediaAudio, Decoder: true}
}

// ReadSamples decodes whole frames only; dst is truncated to a multiple of
// the channel count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		if !s.failed {
			s.failed = true
			s.log.Logf(s, avlog.LevelError, "decoding failed: %v\n", err)
		}
		return n, fmt.Errorf("vorbis: %w", err)
	}
	return n, err
}

type Decoder struct {
	// Log receives decode diagnostics. May be nil.
	Log *avlog.Bridge
}

func (Decoder) LogClass() avlog.Class {
	return avlog.Class{Name: avlog.ClassFormat, Item: "ogg", Demuxer: true}
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		d.Log.Logf(d, avlog.LevelError, "%v\n", err)
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisStream, err)
	}

	d.Log.Logf(d, avlog.LevelVerbose, "stream 0: vorbis, %d Hz, %d channels\n", dec.SampleRate(), dec.Channels())

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		log:        d.Log,
	}, nil
}
