// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/avlog"
)

func encode(t *testing.T, rate, channels int, samples []int16) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, rate, channels, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	return buf.Bytes()
}

func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 3)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	data := encode(t, 8000, 2, []int16{16384, -16384, 8192, -8192, 0, 32767})
	want := []float32{0.5, -0.5, 0.25, -0.25, 0, 32767.0 / 32768.0}

	tests := []struct {
		name string
		r    io.Reader
	}{
		{"seekable", bytes.NewReader(data)},
		{"stream", io.MultiReader(bytes.NewReader(data))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(tt.r)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer src.Close()

			if src.SampleRate() != 8000 {
				t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
			}
			if src.Channels() != 2 {
				t.Errorf("Channels() = %d, want 2", src.Channels())
			}

			got := readAll(t, src)
			if len(got) != len(want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	valid := encode(t, 8000, 1, []int16{1, 2, 3, 4})
	patched := func(off int, v byte) []byte {
		b := bytes.Clone(valid)
		b[off] = v
		return b
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("this is definitely not a wave file"), ErrNotWavFile},
		{"truncated", valid[:6], ErrNotWavFile},
		{"float samples", patched(20, 3), ErrUnsupportedEncoding},
		{"12-bit", patched(34, 12), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecoder_LogsThroughBridge(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	bridge := avlog.New()
	bridge.Attach(log)

	src, err := Decoder{Log: bridge}.Decode(bytes.NewReader(encode(t, 22050, 1, []int16{0})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	entries := logs.FilterLoggerName("av.demuxer").All()
	if len(entries) != 1 {
		t.Fatalf("got %d demuxer entries, want 1", len(entries))
	}
	if want := "wav: pcm_s16le, 22050 Hz, 1 channels"; entries[0].Message != want {
		t.Errorf("Message = %q, want %q", entries[0].Message, want)
	}

	obj, ok := src.(avlog.Object)
	if !ok {
		t.Fatal("source does not implement avlog.Object")
	}
	cls := obj.LogClass()
	if cls.Name != avlog.ClassCodec || !cls.Decoder || cls.Media != avlog.MediaAudio {
		t.Errorf("LogClass() = %+v, want an audio decoder", cls)
	}
}
