// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type fakeDecoder struct {
	data []int
	err  error
}

func (f *fakeDecoder) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: 1, SampleRate: 8000}
}

func (f *fakeDecoder) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := copy(buf.Data, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	r := NewReader(&fakeDecoder{data: []int{16384, -16384, 0, 8192, 1}}, 16)
	buf := make([]float32, 4)

	n, err := r.Read(buf)
	if n != 4 || err != nil {
		t.Fatalf("Read() = %d, %v, want 4, nil", n, err)
	}
	if buf[0] != 0.5 || buf[1] != -0.5 || buf[3] != 0.25 {
		t.Errorf("Read() samples = %v", buf)
	}

	n, err = r.Read(buf)
	if n != 1 || err != io.EOF {
		t.Errorf("short Read() = %d, %v, want 1, io.EOF", n, err)
	}

	if n, err := r.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("Read() after end = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestReader_Bias(t *testing.T) {
	t.Parallel()

	r := NewReader(&fakeDecoder{data: []int{0, 128, 255}}, 8)
	r.Bias = -128

	buf := make([]float32, 3)
	if _, err := r.Read(buf); err != nil && err != io.EOF {
		t.Fatalf("Read() error = %v", err)
	}
	want := []float32{-1, 0, 127.0 / 128.0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestReader_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := NewReader(&fakeDecoder{err: boom}, 16)

	if _, err := r.Read(make([]float32, 2)); !errors.Is(err, boom) {
		t.Errorf("Read() error = %v, want %v", err, boom)
	}
	if r.Capacity() != 2 {
		t.Errorf("Capacity() = %d, want 2", r.Capacity())
	}
}
