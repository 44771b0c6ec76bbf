// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/avlog"
)

// go-mp3 always produces 16-bit little-endian stereo.
const channels = 2

type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// odd holds a byte left over from a read that split a sample.
	odd    []byte
	log    *avlog.Bridge
	failed bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) LogClass() avlog.Class {
	return avlog.Class{Name: avlog.ClassCodec, Item: "mp3", Media: avlog.MediaAudio, Decoder: true}
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	pre := copy(s.buf, s.odd)
	s.odd = s.odd[:0]

	n, err := s.dec.Read(s.buf[pre:])
	n += pre
	if n%2 == 1 {
		s.odd = append(s.odd, s.buf[n-1])
		n--
	}

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768.0
	}

	if err != nil && err != io.EOF {
		if !s.failed {
			s.failed = true
			s.log.Logf(s, avlog.LevelError, "decoding failed after %d samples: %v\n", samples, err)
		}
		return samples, fmt.Errorf("mp3: %w", err)
	}
	return samples, err
}

type Decoder struct {
	// Log receives decode diagnostics. May be nil.
	Log *avlog.Bridge
}

func (Decoder) LogClass() avlog.Class {
	return avlog.Class{Name: avlog.ClassFormat, Item: "mp3", Demuxer: true}
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		d.Log.Logf(d, avlog.LevelError, "%v\n", err)
		return nil, fmt.Errorf("%w: %w", ErrNotMP3Stream, err)
	}

	d.Log.Logf(d, avlog.LevelVerbose, "%d Hz, stereo, %d bytes of PCM\n", dec.SampleRate(), dec.Length())

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
		log:        d.Log,
	}, nil
}
